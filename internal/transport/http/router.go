package http

import (
	"net/http"

	"github.com/device-registry/internal/application/auth"
	"github.com/device-registry/internal/application/device"
	"github.com/device-registry/internal/config"
	"github.com/device-registry/internal/transport/http/handler"
	appmiddleware "github.com/device-registry/internal/transport/http/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(appmiddleware.RequestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	deviceSvc := device.NewService(deps.DeviceRepo, deps.Logger)
	authSvc := auth.NewService(deps.DeviceRepo, deps.Logger)

	deviceH := handler.NewDeviceHandler(deviceSvc)
	authH := handler.NewAuthHandler(authSvc)

	r.Get("/health", handler.Health)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/devices", deviceH.List)
		r.Post("/devices", deviceH.Create)
		r.Patch("/devices", deviceH.Update)
		r.Delete("/devices", deviceH.Delete)
		r.Get("/auth", authH.Authenticate)
	})

	// Path the agent CLI calls.
	r.Get("/api/cli_auth", authH.Authenticate)

	return r
}
