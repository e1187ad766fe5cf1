package license

import (
	"context"
	"errors"

	"licensekeeper/internal/domain/license"
	"licensekeeper/internal/domain/mirror"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

const (
	outcomeFound    = "found"
	outcomeRevoked  = "revoked"
	outcomeNotFound = "not_found"
	outcomeError    = "error"
)

// LookupObserver counts lookup outcomes.
type LookupObserver interface {
	ObserveLookup(outcome string)
}

type Handler struct {
	service    mirror.Servicer
	observer   LookupObserver
	log        *slog.Logger
	middleware huma.Middlewares
	// upsert меняет статус лицензии и требует токена администратора
	adminMiddleware huma.Middlewares
}

func NewHandler(service mirror.Servicer, observer LookupObserver, log *slog.Logger, mws, adminMws huma.Middlewares) *Handler {
	return &Handler{
		service:         service,
		observer:        observer,
		log:             log.With("component", "license_handler"),
		middleware:      mws,
		adminMiddleware: adminMws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.lookupOp(), h.lookup)
	huma.Register(api, h.upsertOp(), h.upsert)
	huma.Register(api, h.preferencesOp(), h.savePreferences)
}

func (h *Handler) lookup(ctx context.Context, input *keyInput) (*lookupOutput, error) {
	entry, err := h.service.Lookup(ctx, input.Key)
	if err != nil {
		if errors.Is(err, mirror.ErrNotFound) {
			h.observe(outcomeNotFound)
		} else {
			h.observe(outcomeError)
		}
		return nil, h.toHTTPError(err)
	}

	if entry.IsRevoked {
		h.observe(outcomeRevoked)
	} else {
		h.observe(outcomeFound)
	}
	return &lookupOutput{Body: *entry}, nil
}

func (h *Handler) upsert(ctx context.Context, input *upsertInput) (*struct{}, error) {
	if err := h.service.Upsert(ctx, input.Body.toUpdate(input.Key)); err != nil {
		return nil, h.toHTTPError(err)
	}
	h.log.Info("license status stored", "key", license.MaskKey(input.Key), "revoked", input.Body.IsRevoked)
	return nil, nil
}

func (h *Handler) savePreferences(ctx context.Context, input *preferencesInput) (*struct{}, error) {
	if err := h.service.SavePreferences(ctx, input.Key, input.Body.toPreferences()); err != nil {
		return nil, h.toHTTPError(err)
	}
	h.log.Info("preferences saved", "key", license.MaskKey(input.Key))
	return nil, nil
}

func (h *Handler) observe(outcome string) {
	if h.observer != nil {
		h.observer.ObserveLookup(outcome)
	}
}

// toHTTPError keeps storage details out of responses.
func (h *Handler) toHTTPError(err error) error {
	switch {
	case errors.Is(err, mirror.ErrNotFound):
		return huma.Error404NotFound("license not found")
	case errors.Is(err, mirror.ErrInvalidInput):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, mirror.ErrUnavailable):
		return huma.Error503ServiceUnavailable("storage unavailable")
	default:
		h.log.Error("unexpected mirror error", "error", err)
		return huma.Error500InternalServerError("internal error")
	}
}
