// GET /api/v1/health                        # Состояние сервиса и хранилища (публичный)
// GET /api/v1/licenses/{key}                # Статус лицензии и сохраненные настройки (auth)
// PUT /api/v1/licenses/{key}                # Выгрузить статус лицензии (admin)
// PUT /api/v1/licenses/{key}/preferences    # Сохранить настройки аккаунта (auth)
// GET /metrics                              # Метрики Prometheus

package api

import (
	healthAPI "licensekeeper/internal/app/server/api/http/health"
	licenseAPI "licensekeeper/internal/app/server/api/http/license"
	"licensekeeper/internal/app/server/api/http/middleware"
	"licensekeeper/internal/app/server/api/http/middleware/auth"
	"licensekeeper/internal/app/server/api/http/middleware/logger"
	"licensekeeper/internal/app/server/metrics"
	"licensekeeper/internal/domain/mirror"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"
)

// Tokens задает bearer-токены зеркала. Read открывает чтение и сохранение
// настроек, Admin дополнительно открывает выгрузку статусов. Пустой Admin
// означает, что выгрузка доступна по токену Read.
type Tokens struct {
	Read  string
	Admin string
}

func (t Tokens) admin() string {
	if t.Admin != "" {
		return t.Admin
	}
	return t.Read
}

type Handlers struct {
	Health  *healthAPI.Handler
	License *licenseAPI.Handler
}

// New создает *chi.Mux с ВСЕМИ операциями через huma.Register
func New(service mirror.Servicer, m *metrics.Metrics, tokens Tokens, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("LicenseKeeper Mirror API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(API, service, m, tokens, log)
	h.Health.SetupRoutes(API)
	h.License.SetupRoutes(API)

	mux.Handle("/metrics", m.Handler())

	return mux
}

func handlers(API huma.API, service mirror.Servicer, m *metrics.Metrics, tokens Tokens, log *slog.Logger) *Handlers {
	readAuth := auth.New(API, log, tokens.Read, tokens.Admin)
	adminAuth := auth.New(API, log, tokens.admin())
	if !readAuth.Enabled() {
		log.Warn("mirror token is empty, license endpoints are not protected")
	}
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(m.Middleware())
	healthHandler := healthAPI.NewHandler(service, log, middlewares.GetAllAndClear())

	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(m.Middleware())
	middlewares.Add(readAuth.Middleware())
	readMws := middlewares.GetAllAndClear()

	middlewares.Add(loggerMW.Middleware())
	middlewares.Add(m.Middleware())
	middlewares.Add(adminAuth.Middleware())
	licenseHandler := licenseAPI.NewHandler(service, m, log, readMws, middlewares.GetAllAndClear())

	return &Handlers{
		Health:  healthHandler,
		License: licenseHandler,
	}
}
