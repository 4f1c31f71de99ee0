package router

import (
	"kosan/internal/handlers/auth"
	"kosan/internal/handlers/branch"
	"kosan/internal/handlers/contract"
	"kosan/internal/handlers/health"
	"kosan/internal/handlers/invoice"
	"kosan/internal/handlers/room"
	"kosan/internal/handlers/user"
	"kosan/internal/handlers/utility"
	"kosan/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	User     user.Handler
	Branch   branch.Handler
	Room     room.Handler
	Contract contract.Handler
	Utility  utility.Handler
	Invoice  invoice.Handler
	Health   health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.AppMiddleware
	AuthMiddleware middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.AppMiddleware.Tracing)
	router.Use(r.AppMiddleware.CORS)
	router.Use(r.AppMiddleware.RateLimit())

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Auth.Router(routerGroup)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(r.AuthMiddleware.APIKey)
			protected.Use(r.AuthMiddleware.Auth)
			protected.Use(r.AuthMiddleware.RBAC)

			r.DomainHandlers.Auth.ProtectedRouter(protected)
			r.DomainHandlers.User.Router(protected)
			r.DomainHandlers.Branch.Router(protected)
			r.DomainHandlers.Room.Router(protected)
			r.DomainHandlers.Contract.Router(protected)
			r.DomainHandlers.Utility.Router(protected)
			r.DomainHandlers.Invoice.Router(protected)
		})
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware, authMiddleware middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
		AuthMiddleware: authMiddleware,
	}
}
