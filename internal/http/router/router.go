package router

import (
	"github.com/gin-gonic/gin"

	"github.com/matheusgmdr7/contratando2/internal/config"
	"github.com/matheusgmdr7/contratando2/internal/domain/valueobject"
	"github.com/matheusgmdr7/contratando2/internal/http/middleware"
	"github.com/matheusgmdr7/contratando2/internal/interface/http/handler"
	"github.com/matheusgmdr7/contratando2/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	tokenManager *service.TokenManager,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	wsHandler *handler.WSHandler,
	proposalHandler *handler.ProposalHandler,
	priceTableHandler *handler.PriceTableHandler,
	productHandler *handler.ProductHandler,
	commissionHandler *handler.CommissionHandler,
	adminUserHandler *handler.AdminUserHandler,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), middleware.Recovery())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	r.MaxMultipartMemory = cfg.MaxUploadSizeMB << 20

	r.GET("/health", healthHandler.Health)
	r.StaticFS("/storage", gin.Dir(cfg.StoragePath, false))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware("auth", 5, cfg.RateLimitPeriod))
	{
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh", authHandler.Refresh)
	}

	api.GET("/ws", wsHandler.Handle)

	// Клиент заполняет proposta по ссылке из письма, без учётной записи
	public := api.Group("/public")
	publicLimit := middleware.RateLimitMiddleware("public", cfg.RateLimitLimit, cfg.RateLimitPeriod)
	{
		public.GET("/proposals/:id", middleware.UUIDValidator("id"), proposalHandler.Get)
		public.POST("/proposals/:id/sign", publicLimit, middleware.UUIDValidator("id"), proposalHandler.Sign)
		public.POST("/proposals", publicLimit, proposalHandler.Create)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(tokenManager))

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole(valueobject.RoleAdmin))
	{
		admin.GET("/price-tables", priceTableHandler.List)
		admin.POST("/price-tables", priceTableHandler.Create)
		admin.GET("/price-tables/:id", middleware.UUIDValidator("id"), priceTableHandler.Get)
		admin.PUT("/price-tables/:id", middleware.UUIDValidator("id"), priceTableHandler.Update)
		admin.POST("/price-tables/:id/brackets", middleware.UUIDValidator("id"), priceTableHandler.AddBracket)
		admin.GET("/price-tables/:id/price", middleware.UUIDValidator("id"), priceTableHandler.Price)
		admin.PUT("/brackets/:id", middleware.UUIDValidator("id"), priceTableHandler.UpdateBracket)
		admin.DELETE("/brackets/:id", middleware.UUIDValidator("id"), priceTableHandler.RemoveBracket)

		admin.GET("/products", productHandler.List)
		admin.POST("/products", productHandler.Create)
		admin.GET("/products/:id", middleware.UUIDValidator("id"), productHandler.Get)
		admin.PUT("/products/:id", middleware.UUIDValidator("id"), productHandler.Update)
		admin.PATCH("/products/:id/availability", middleware.UUIDValidator("id"), productHandler.SetAvailability)
		admin.DELETE("/products/:id", middleware.UUIDValidator("id"), productHandler.Delete)
		admin.GET("/products/:id/tables", middleware.UUIDValidator("id"), productHandler.ListTables)
		admin.POST("/products/:id/tables", middleware.UUIDValidator("id"), productHandler.LinkTable)
		admin.DELETE("/product-tables/:id", middleware.UUIDValidator("id"), productHandler.UnlinkTable)

		admin.GET("/proposals", proposalHandler.List)
		admin.GET("/proposals/:id", middleware.UUIDValidator("id"), proposalHandler.Get)
		admin.PUT("/proposals/:id/status", middleware.UUIDValidator("id"), proposalHandler.UpdateStatus)
		admin.GET("/proposals/:id/dependents", middleware.UUIDValidator("id"), proposalHandler.Dependents)
		admin.POST("/proposals/:id/validation-email", middleware.UUIDValidator("id"), proposalHandler.SendValidationEmail)

		admin.GET("/commissions", commissionHandler.List)
		admin.GET("/commissions/summary", commissionHandler.Summary)
		admin.PUT("/commissions/:id/status", middleware.UUIDValidator("id"), commissionHandler.UpdateStatus)

		admin.GET("/users", adminUserHandler.List)
		admin.POST("/users", adminUserHandler.Create)
		admin.PUT("/users/:id", middleware.UUIDValidator("id"), adminUserHandler.Update)
		admin.PATCH("/users/:id/status", middleware.UUIDValidator("id"), adminUserHandler.ChangeStatus)
		admin.DELETE("/users/:id", middleware.UUIDValidator("id"), adminUserHandler.Delete)
		admin.GET("/profiles/:perfil/permissions", adminUserHandler.ProfilePermissions)
	}

	broker := protected.Group("/broker")
	broker.Use(middleware.RequireRole(valueobject.RoleBroker))
	{
		broker.GET("/products", productHandler.List)
		broker.GET("/products/:id", middleware.UUIDValidator("id"), productHandler.Get)
		broker.GET("/products/:id/tables", middleware.UUIDValidator("id"), productHandler.ListTables)
		broker.GET("/products/:id/price", middleware.UUIDValidator("id"), productHandler.Price)
		broker.GET("/price-tables/:id/price", middleware.UUIDValidator("id"), priceTableHandler.Price)

		broker.GET("/proposals", proposalHandler.List)
		broker.POST("/proposals", proposalHandler.Create)
		broker.GET("/proposals/:id", middleware.UUIDValidator("id"), proposalHandler.Get)
		broker.POST("/proposals/:id/documents", middleware.UUIDValidator("id"), proposalHandler.AttachDocuments)
		broker.POST("/proposals/:id/validation-email", middleware.UUIDValidator("id"), proposalHandler.SendValidationEmail)

		broker.GET("/commissions", commissionHandler.List)
		broker.GET("/commissions/summary", commissionHandler.Summary)
	}

	return r
}
