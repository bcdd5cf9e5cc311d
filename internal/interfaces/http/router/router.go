package router

import (
	"github.com/gin-gonic/gin"

	"github.com/gomu/backend/internal/interfaces/http/handler"
	"github.com/gomu/backend/internal/interfaces/http/middleware"
	"github.com/gomu/backend/internal/interfaces/realtime"
)

// Handlers collects every HTTP handler the router mounts
type Handlers struct {
	System      *handler.SystemHandler
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Category    *handler.CategoryHandler
	Taxonomy    *handler.TaxonomyHandler
	Product     *handler.ProductHandler
	Discount    *handler.DiscountHandler
	Wholesale   *handler.WholesaleHandler
	Favorite    *handler.FavoriteHandler
	Sale        *handler.SaleHandler
	SiteContent *handler.SiteContentHandler
	Shipping    *handler.ShippingHandler
	Payment     *handler.PaymentHandler
	Chat        *handler.ChatHandler
	Realtime    *realtime.Handler
}

// Router mounts the API on a gin engine in three tiers: public storefront
// routes, routes for signed-in customers, and admin-only routes.
type Router struct {
	engine     *gin.Engine
	auth       *middleware.AuthMiddleware
	apiVersion string
	handlers   Handlers
}

// New creates a Router
func New(engine *gin.Engine, auth *middleware.AuthMiddleware, handlers Handlers) *Router {
	return &Router{
		engine:     engine,
		auth:       auth,
		apiVersion: "v1",
		handlers:   handlers,
	}
}

// Setup registers every route on the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)

	r.registerPublic(api)
	r.registerAuthenticated(api)
	r.registerAdmin(api)

	// The websocket endpoint lives outside the versioned API group. Tokens
	// arrive as a query parameter because browser websocket clients cannot
	// set headers.
	r.engine.GET("/ws/chat", r.handlers.Realtime.Serve)
}

// registerPublic mounts the storefront routes. No authentication required;
// the chat message route applies OptionalAuth so admin tokens are
// recognized when present.
func (r *Router) registerPublic(api *gin.RouterGroup) {
	h := r.handlers

	api.GET("/system/info", h.System.GetSystemInfo)
	api.GET("/system/health", h.System.Health)

	api.POST("/auth/register", h.Auth.Register)
	api.POST("/auth/login", h.Auth.Login)
	api.POST("/auth/refresh", h.Auth.Refresh)

	api.GET("/categories", h.Category.ListCategories)
	api.GET("/categories/:id", h.Category.GetCategory)
	api.GET("/subcategories", h.Category.ListSubcategories)
	api.GET("/materials", h.Taxonomy.ListMaterials)
	api.GET("/tags", h.Taxonomy.ListTags)

	api.GET("/products", h.Product.List)
	api.GET("/products/:id", h.Product.Get)
	api.GET("/products/slug/:slug", h.Product.GetBySlug)
	api.GET("/products/:id/wholesale-tiers", h.Wholesale.ListForProduct)
	api.GET("/products/:id/price", h.Wholesale.PriceFor)

	api.GET("/discounts", h.Discount.List)
	api.GET("/page-config", h.SiteContent.GetPageConfig)

	api.POST("/sales", h.Sale.Create)
	api.GET("/sales/order/:orderNumber", h.Sale.GetByOrderNumber)

	api.POST("/shipping/quote", h.Shipping.Quote)
	api.POST("/payments/intent", h.Payment.CreateIntent)

	api.POST("/conversations", h.Chat.Resolve)
	api.GET("/conversations/:id/messages", r.auth.OptionalAuth(), h.Chat.GetMessages)
}

// registerAuthenticated mounts routes that need a signed-in user of any role
func (r *Router) registerAuthenticated(api *gin.RouterGroup) {
	h := r.handlers

	authed := api.Group("")
	authed.Use(r.auth.RequireAuth())

	authed.POST("/auth/logout", h.Auth.Logout)
	authed.GET("/auth/me", h.Auth.Profile)

	authed.GET("/favorites", h.Favorite.List)
	authed.POST("/favorites/:productId", h.Favorite.Add)
	authed.DELETE("/favorites/:productId", h.Favorite.Remove)
	authed.POST("/favorites/:productId/toggle", h.Favorite.Toggle)
}

// registerAdmin mounts the administration routes
func (r *Router) registerAdmin(api *gin.RouterGroup) {
	h := r.handlers

	admin := api.Group("")
	admin.Use(r.auth.RequireAuth(), r.auth.RequireAdmin())

	admin.GET("/users", h.User.List)
	admin.GET("/users/:id", h.User.Get)
	admin.PUT("/users/:id", h.User.Update)
	admin.DELETE("/users/:id", h.User.Deactivate)

	admin.POST("/categories", h.Category.CreateCategory)
	admin.PUT("/categories/:id", h.Category.UpdateCategory)
	admin.DELETE("/categories/:id", h.Category.DeleteCategory)
	admin.POST("/subcategories", h.Category.CreateSubcategory)
	admin.PUT("/subcategories/:id", h.Category.UpdateSubcategory)
	admin.DELETE("/subcategories/:id", h.Category.DeleteSubcategory)

	admin.POST("/materials", h.Taxonomy.CreateMaterial)
	admin.PUT("/materials/:id", h.Taxonomy.UpdateMaterial)
	admin.DELETE("/materials/:id", h.Taxonomy.DeleteMaterial)
	admin.POST("/tags", h.Taxonomy.CreateTag)
	admin.PUT("/tags/:id", h.Taxonomy.UpdateTag)
	admin.DELETE("/tags/:id", h.Taxonomy.DeleteTag)

	admin.POST("/products", h.Product.Create)
	admin.PUT("/products/:id", h.Product.Update)
	admin.DELETE("/products/:id", h.Product.Delete)

	admin.GET("/discounts/:id", h.Discount.Get)
	admin.POST("/discounts", h.Discount.Create)
	admin.PUT("/discounts/:id", h.Discount.Update)
	admin.DELETE("/discounts/:id", h.Discount.Delete)

	admin.POST("/wholesale-tiers", h.Wholesale.Create)
	admin.PUT("/wholesale-tiers/:id", h.Wholesale.Update)
	admin.DELETE("/wholesale-tiers/:id", h.Wholesale.Delete)

	admin.GET("/sales", h.Sale.List)
	admin.GET("/sales/stats", h.Sale.Stats)
	admin.GET("/sales/:id", h.Sale.Get)
	admin.PATCH("/sales/:id/status", h.Sale.ChangeStatus)
	admin.PATCH("/sales/:id/notes", h.Sale.SetNotes)
	admin.DELETE("/sales/:id", h.Sale.Delete)

	admin.PUT("/page-config", h.SiteContent.UpdatePageConfig)
	admin.GET("/settings", h.SiteContent.GetStoreSettings)
	admin.PUT("/settings", h.SiteContent.UpdateStoreSettings)

	admin.GET("/conversations", h.Chat.List)
	admin.POST("/conversations/:id/messages", h.Chat.PostMessage)
}
