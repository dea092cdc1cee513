// Package httpapi wires the REST surface: the chi router, the guard
// middlewares gating each route, and the resource handlers.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"jaayma/auth"
)

// Deps bundles everything the router needs. All services are injected; the
// router owns no state of its own.
type Deps struct {
	Logger         zerolog.Logger
	Guards         *Guards
	Auth           *AuthHandler
	Catalog        *CatalogHandler
	GIEs           *GIEHandler
	Products       *ProductHandler
	Orders         *OrderHandler
	Payments       *PaymentHandler
	AllowedOrigins []string
}

// NewRouter assembles the full route table.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(recoverer(d.Logger))
	r.Use(requestLogger(d.Logger))

	origins := d.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	g := d.Guards

	r.Route("/api", func(r chi.Router) {
		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			Fail(w, http.StatusNotFound, "ressource introuvable")
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", d.Auth.Register)
			r.Post("/login", d.Auth.Login)
			r.Post("/login/livreur", d.Auth.LoginDelivery)
			r.With(g.RequireAuthenticated()).Get("/me", d.Auth.Me)
		})

		r.Post("/password/evaluate", d.Auth.EvaluatePassword)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", d.Catalog.ListCategories)
			r.With(g.RequireAdmin()).Post("/", d.Catalog.CreateCategory)
			r.With(g.RequireAdmin()).Put("/{id}", d.Catalog.UpdateCategory)
			r.With(g.RequireAdmin()).Delete("/{id}", d.Catalog.DeleteCategory)
		})

		r.Route("/regions", func(r chi.Router) {
			r.Get("/", d.Catalog.ListRegions)
			r.With(g.RequireAdmin()).Post("/", d.Catalog.CreateRegion)
			r.With(g.RequireAdmin()).Delete("/{id}", d.Catalog.DeleteRegion)
		})

		r.Route("/addresses", func(r chi.Router) {
			r.Use(g.RequireAuthenticated())
			r.Post("/", d.Catalog.CreateAddress)
			r.Get("/", d.Catalog.ListMyAddresses)
		})

		r.Route("/gies", func(r chi.Router) {
			r.Get("/", d.GIEs.List)
			r.Get("/{id}", d.GIEs.Get)
			r.With(g.RequireAnyRole(auth.RoleGIE, auth.RoleAdmin, auth.RoleSuperAdmin)).Post("/", d.GIEs.Create)
			r.With(g.RequireAnyRole(auth.RoleGIE, auth.RoleAdmin, auth.RoleSuperAdmin)).Put("/{id}", d.GIEs.Update)
			r.With(g.RequireAnyRole(auth.RoleGIE, auth.RoleAdmin, auth.RoleSuperAdmin)).Delete("/{id}", d.GIEs.Delete)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", d.Products.List)
			r.Get("/{id}", d.Products.Get)
			r.With(g.RequireOwnership(ResourceProduit)).Post("/", d.Products.Create)
			r.With(g.RequireOwnership(ResourceProduit)).Put("/{id}", d.Products.Update)
			r.With(g.RequireOwnership(ResourceProduit)).Delete("/{id}", d.Products.Delete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(g.RequireRole(auth.RoleClient)).Post("/", d.Orders.Create)
			r.With(g.RequireAdmin()).Get("/", d.Orders.ListAll)
			r.With(g.RequireRole(auth.RoleClient)).Get("/mine", d.Orders.ListMine)
			r.With(g.RequireOwnership(ResourceCommande)).Get("/{id}", d.Orders.Get)
			r.With(g.RequireOwnership(ResourceCommande)).Post("/{id}/cancel", d.Orders.Cancel)
			r.With(g.RequireAdmin()).Post("/{id}/validate", d.Orders.Validate)
			r.With(g.RequireLivreurScope(OpAssignOrder)).Post("/{id}/assign", d.Orders.Assign)
			r.With(g.RequireLivreurScope(OpMarkDelivered)).Post("/{id}/delivered", d.Orders.MarkDelivered)
			r.With(g.RequireOwnership(ResourceCommande)).Get("/{id}/payments", d.Payments.ListByOrder)
		})

		r.Route("/livreurs", func(r chi.Router) {
			r.With(g.RequireLivreurOrAdmin()).Get("/orders", d.Orders.ListDeliveries)
			r.With(g.RequireLivreurScope("")).Get("/{id}/orders", d.Orders.ListForLivreur)
		})

		r.With(g.RequireAnyRole(auth.RoleClient, auth.RoleAdmin, auth.RoleSuperAdmin)).
			Post("/payments", d.Payments.Create)

		r.Route("/admin", func(r chi.Router) {
			r.With(g.RequireSuperAdmin()).Post("/accounts", d.Auth.CreateAccount)
			r.With(g.RequireDeliveryAdmin()).Get("/livreurs", d.Auth.ListLivreurs)
		})
	})

	return r
}
