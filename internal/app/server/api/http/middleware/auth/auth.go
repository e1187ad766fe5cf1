package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"
)

// Auth пропускает запросы с одним из допустимых bearer-токенов
type Auth struct {
	api    huma.API
	tokens [][]byte
	log    *slog.Logger
}

// New принимает допустимые токены; пустые строки пропускаются
func New(api huma.API, log *slog.Logger, tokens ...string) *Auth {
	a := &Auth{
		api: api,
		log: log.With("component", "auth_middleware"),
	}
	for _, t := range tokens {
		if t != "" {
			a.tokens = append(a.tokens, []byte(t))
		}
	}
	return a
}

// Enabled сообщает, задан ли хотя бы один токен; без них проверка отключена
func (a *Auth) Enabled() bool {
	return len(a.tokens) > 0
}

func (a *Auth) accepts(token string) bool {
	ok := false
	for _, t := range a.tokens {
		if subtle.ConstantTimeCompare([]byte(token), t) == 1 {
			ok = true
		}
	}
	return ok
}

// Middleware возвращает middleware для Huma с сигнатурой func(ctx Context, next func(Context))
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !a.Enabled() {
			next(ctx)
			return
		}

		header := ctx.Header("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || !a.accepts(token) {
			a.log.Warn("unauthorized request", "path", ctx.URL().Path, "remote_addr", ctx.RemoteAddr())
			_ = huma.WriteErr(a.api, ctx, http.StatusUnauthorized, "Unauthorized")
			return
		}

		next(ctx)
	}
}
