package api

import (
	"context"
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/shopfront/storefront/docs"
	"github.com/shopfront/storefront/internal/api/handler"
	"github.com/shopfront/storefront/internal/api/middleware"
	"github.com/shopfront/storefront/internal/core/domain"
	"github.com/shopfront/storefront/internal/core/ports"
	"github.com/shopfront/storefront/internal/core/service"
	"github.com/shopfront/storefront/internal/infrastructure/config"
	mongorepo "github.com/shopfront/storefront/internal/infrastructure/db/mongo"
	redisrepo "github.com/shopfront/storefront/internal/infrastructure/db/redis"
	"github.com/shopfront/storefront/internal/infrastructure/storage"
	"github.com/shopfront/storefront/pkg/logger"
)

// Payments is the processor adapter: it opens hosted sessions and verifies
// their webhooks.
type Payments interface {
	ports.PaymentGateway
	ports.WebhookVerifier
}

// Dependencies are the long-lived clients created in main.
type Dependencies struct {
	Config   *config.Config
	DB       *mongo.Database
	Redis    *redis.Client
	Images   ports.ImageStore
	Payments Payments
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	cfg := deps.Config
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.BaseURL},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Dependencies ---
	users := mongorepo.NewUserRepository(deps.DB)
	categories := mongorepo.NewCategoryRepository(deps.DB)
	products := mongorepo.NewProductRepository(deps.DB)
	orders := mongorepo.NewOrderRepository(deps.DB)
	sessions := redisrepo.NewCheckoutRegistry(deps.Redis)
	categoryCache := redisrepo.NewCategoryCache(deps.Redis, cfg.Redis.CategoryTTL)

	authService := service.NewAuthService(users, cfg.JWT.Secret, cfg.JWT.TokenTTL)
	categoryService := service.NewCategoryService(categories, deps.Images, categoryCache, logger.Component("catalog"))
	productService := service.NewProductService(products, categories, deps.Images, logger.Component("catalog"))
	orderService := service.NewOrderService(orders, sessions, logger.Component("orders"))
	adminService := service.NewAdminService(products, orders, users)
	checkoutService := service.NewCheckoutService(deps.Payments, deps.Payments, sessions, logger.Component("checkout"))
	contactService := service.NewContactService(logger.Component("contact"))

	authHandler := handler.NewAuthHandler(authService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	orderHandler := handler.NewOrderHandler(orderService)
	adminHandler := handler.NewAdminHandler(orderService, adminService)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService)
	contactHandler := handler.NewContactHandler(contactService)
	dashboardHandler := handler.NewDashboardHandler()

	authMiddleware := middleware.Auth(cfg.JWT.Secret)
	adminOnly := []echo.MiddlewareFunc{authMiddleware, middleware.RequireRole(domain.RoleAdmin)}
	signedIn := []echo.MiddlewareFunc{authMiddleware, middleware.RequireRole(domain.RoleUser, domain.RoleAdmin)}

	// --- Health probes and tooling (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(
		handler.DependencyCheck{Name: "mongodb", Check: func(ctx context.Context) error {
			return deps.DB.Client().Ping(ctx, nil)
		}},
		handler.DependencyCheck{Name: "redis", Check: func(ctx context.Context) error {
			return deps.Redis.Ping(ctx).Err()
		}},
	)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	if local, ok := deps.Images.(*storage.LocalStore); ok {
		e.Static("/"+storage.UploadDir, local.Dir())
	}

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/user/change-password", authHandler.ChangePassword, signedIn...)

	// --- Catalog ---
	e.GET("/categories", categoryHandler.List)
	e.POST("/categories", categoryHandler.Create, adminOnly...)
	e.PUT("/categories", categoryHandler.Update, adminOnly...)
	e.DELETE("/categories", categoryHandler.Delete, adminOnly...)

	e.GET("/products", productHandler.List)
	e.GET("/products/search", productHandler.Search)
	e.GET("/products/slug/:slug", productHandler.GetBySlug)
	e.GET("/products/:id", productHandler.Get)
	e.POST("/products", productHandler.Create, adminOnly...)
	e.PUT("/products/:id", productHandler.Update, adminOnly...)
	e.DELETE("/products/:id", productHandler.Delete, adminOnly...)

	// --- Checkout ---
	e.POST("/checkout", checkoutHandler.Checkout)
	e.POST("/checkout/webhook", checkoutHandler.Webhook)

	// --- Orders ---
	ordersGroup := e.Group("/orders", signedIn...)
	ordersGroup.POST("", orderHandler.Create)
	ordersGroup.GET("", orderHandler.ListMine)
	ordersGroup.GET("/:id", orderHandler.Get)

	// --- Back office ---
	admin := e.Group("/admin", adminOnly...)
	admin.GET("/orders", adminHandler.ListOrders)
	admin.GET("/orders/recent", adminHandler.RecentOrders)
	admin.PATCH("/orders/:id/status", adminHandler.UpdateOrderStatus)
	admin.GET("/stats", adminHandler.Stats)

	// --- Contact ---
	e.POST("/contact", contactHandler.Submit)

	// --- Guarded pages ---
	e.GET("/dashboard/admin", dashboardHandler.Admin, middleware.Guard(middleware.GuardConfig{
		JWTSecret: cfg.JWT.Secret,
		Roles:     []string{domain.RoleAdmin},
	}))
	e.GET("/dashboard/user", dashboardHandler.User, middleware.Guard(middleware.GuardConfig{
		JWTSecret: cfg.JWT.Secret,
	}))

	return e
}

// requestLogger writes one zerolog entry per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
