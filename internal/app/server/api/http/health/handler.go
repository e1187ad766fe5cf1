package health

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const (
	StatusOK       = "OK"
	StatusDegraded = "DEGRADED"
)

// Pinger reports whether the mirror storage answers.
type Pinger interface {
	Ready(ctx context.Context) error
}

type Handler struct {
	pinger     Pinger
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(pinger Pinger, log *slog.Logger, middleware huma.Middlewares) *Handler {
	return &Handler{
		pinger:     pinger,
		log:        log,
		middleware: middleware,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.healthCheckOp(), h.healthCheck)
}

func (h *Handler) healthCheck(ctx context.Context, _ *Input) (*Output, error) {
	h.log.Debug("health check request received")

	if err := h.pinger.Ready(ctx); err != nil {
		h.log.Warn("mirror storage is not ready", "error", err)
		return nil, huma.Error503ServiceUnavailable("storage unavailable")
	}

	return &Output{
		Body: Response{
			Status:  StatusOK,
			Storage: StatusOK,
		},
	}, nil
}
