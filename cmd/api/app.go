package main

import (
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lojazap/lojazap-backend/internal/adapter/api/controller"
	"github.com/lojazap/lojazap-backend/internal/adapter/repository"
	"github.com/lojazap/lojazap-backend/internal/cep"
	"github.com/lojazap/lojazap-backend/internal/checkout"
	"github.com/lojazap/lojazap-backend/internal/domain/cart"
	"github.com/lojazap/lojazap-backend/internal/domain/catalog"
	"github.com/lojazap/lojazap-backend/internal/domain/customer"
	"github.com/lojazap/lojazap-backend/internal/domain/order"
	"github.com/lojazap/lojazap-backend/internal/domain/tenant"
	"github.com/lojazap/lojazap-backend/internal/domain/user"
	"github.com/lojazap/lojazap-backend/internal/fiado"
	"github.com/lojazap/lojazap-backend/internal/infrastructure/database"
	"github.com/lojazap/lojazap-backend/internal/notification"
	"github.com/lojazap/lojazap-backend/internal/prize"
	"github.com/lojazap/lojazap-backend/pkg/logger"
	pkgtenant "github.com/lojazap/lojazap-backend/pkg/tenant"
)

// App representa a aplicação e suas dependências
type App struct {
	router *gin.Engine
	pool   *pgxpool.Pool
	logger logger.Logger

	tenantMiddleware gin.HandlerFunc

	tenantController   *controller.TenantController
	authController     *controller.AuthController
	catalogController  *controller.CatalogController
	customerController *controller.CustomerController
	orderController    *controller.OrderController
	fiadoController    *controller.FiadoController
	cartController     *controller.CartController
	checkoutController *controller.CheckoutController
}

// NewApp cria uma nova instância do aplicativo.
// Com DATABASE_URL definida os repositórios usam Postgres; sem ela a
// aplicação sobe com repositórios em memória (desenvolvimento e demonstração).
func NewApp() (*App, error) {
	log := logger.NewLogger()

	var (
		pool         *pgxpool.Pool
		tenantRepo   tenant.Repository
		userRepo     user.Repository
		customerRepo customer.Repository
		catalogRepo  catalog.Repository
		orderRepo    order.Repository
		cartRepo     cart.Repository
		validator    pkgtenant.Validator
	)

	if os.Getenv("DATABASE_URL") != "" {
		p, err := database.NewPostgresPool(context.Background())
		if err != nil {
			return nil, err
		}
		pool = p

		tenants := repository.NewPostgresTenantRepository(pool)
		tenantRepo = tenants
		validator = tenants
		userRepo = repository.NewPostgresUserRepository(pool)
		customerRepo = repository.NewPostgresCustomerRepository(pool)
		catalogRepo = repository.NewPostgresCatalogRepository(pool)
		orderRepo = repository.NewPostgresOrderRepository(pool)
		cartRepo = repository.NewPostgresCartRepository(pool)
	} else {
		log.Warn("DATABASE_URL não definida, usando repositórios em memória")

		store := repository.NewMemoryStore()
		tenants := repository.NewMemoryTenantRepository(store)
		tenantRepo = tenants
		validator = tenants
		userRepo = repository.NewMemoryUserRepository()
		customerRepo = repository.NewMemoryCustomerRepository(store)
		catalogRepo = repository.NewMemoryCatalogRepository(store)
		orderRepo = repository.NewMemoryOrderRepository(store)
		cartRepo = repository.NewMemoryCartRepository(store)
	}

	// Núcleo de checkout e fiado
	ledger := fiado.NewLedger(orderRepo, customerRepo, tenantRepo, log)
	notifier := notification.NewWhatsAppNotifier(log)
	finalizer := checkout.NewFinalizer(orderRepo, customerRepo, cartRepo, tenantRepo, notifier, log)
	prizeEngine := prize.NewEngine(rand.New(rand.NewSource(time.Now().UnixNano())))
	checkoutService := checkout.NewService(catalogRepo, customerRepo, cartRepo, tenantRepo, prizeEngine, finalizer, log)
	cepClient := cep.NewClient("")

	app := &App{
		router: gin.New(),
		pool:   pool,
		logger: log,

		tenantMiddleware: pkgtenant.Middleware(validator),

		tenantController:   controller.NewTenantController(tenantRepo),
		authController:     controller.NewAuthController(userRepo, log),
		catalogController:  controller.NewCatalogController(catalogRepo),
		customerController: controller.NewCustomerController(customerRepo, ledger),
		orderController:    controller.NewOrderController(orderRepo),
		fiadoController:    controller.NewFiadoController(ledger),
		cartController:     controller.NewCartController(cartRepo),
		checkoutController: controller.NewCheckoutController(checkoutService, cepClient, notifier),
	}

	app.router.Use(gin.Logger(), gin.Recovery())
	app.router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization", "tenant-id"},
		MaxAge:       12 * time.Hour,
	}))

	app.setupRoutes("/api/v1")
	return app, nil
}

// setupRoutes configura as rotas da aplicação
func (a *App) setupRoutes(basePath string) {
	api := a.router.Group(basePath)

	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Rotas sem tenant: cadastro de lojas, vitrine por slug e consulta de CEP
	tenants := api.Group("/tenants")
	{
		tenants.POST("", a.tenantController.Create)
		tenants.GET("", a.tenantController.List)
		tenants.GET("/:id", a.tenantController.Get)
		tenants.DELETE("/:id", a.tenantController.Delete)
	}
	api.GET("/stores/:slug", a.tenantController.GetBySlug)
	api.GET("/cep/:code", a.checkoutController.LookupCEP)

	// Rotas da vitrine: exigem o cabeçalho tenant-id de uma loja ativa
	store := api.Group("")
	store.Use(a.tenantMiddleware)
	{
		store.POST("/auth/login", a.authController.Login)
		store.POST("/auth/register", a.authController.Register)

		store.POST("/checkout/phone", a.checkoutController.CapturePhone)
		store.POST("/checkout/sessions", a.checkoutController.StartSession)
		store.GET("/checkout/sessions/:id", a.checkoutController.GetSession)
		store.POST("/checkout/sessions/:id/events", a.checkoutController.HandleEvent)
	}

	// Rotas do painel do lojista: exigem token JWT do painel
	admin := store.Group("")
	admin.Use(controller.AuthMiddleware())
	{
		admin.PUT("/tenant", a.tenantController.Update)
		admin.GET("/settings", a.tenantController.GetSettings)
		admin.PUT("/settings", a.tenantController.UpdateSettings)

		admin.POST("/products", a.catalogController.CreateProduct)
		admin.GET("/products", a.catalogController.ListProducts)
		admin.GET("/products/:id", a.catalogController.GetProduct)
		admin.PUT("/products/:id", a.catalogController.UpdateProduct)
		admin.DELETE("/products/:id", a.catalogController.DeleteProduct)

		admin.POST("/categories", a.catalogController.CreateCategory)
		admin.GET("/categories", a.catalogController.ListCategories)

		admin.POST("/upsell-offers", a.catalogController.CreateUpsellOffer)
		admin.GET("/upsell-offers", a.catalogController.ListUpsellOffers)

		admin.POST("/customers", a.customerController.Create)
		admin.GET("/customers", a.customerController.List)
		admin.GET("/customers/:id", a.customerController.Get)
		admin.PUT("/customers/:id", a.customerController.Update)
		admin.GET("/customers/:id/debt", a.customerController.GetDebt)
		admin.POST("/customers/:id/balance", a.customerController.CreditBalance)
		admin.POST("/customers/:id/prizes/:prizeId/claim", a.customerController.ClaimPrize)
		admin.GET("/customers/:id/orders", a.orderController.ListByCustomer)

		admin.GET("/orders", a.orderController.List)
		admin.GET("/orders/:id", a.orderController.Get)
		admin.PATCH("/orders/:id/status", a.orderController.UpdateStatus)

		admin.GET("/fiado/receivables", a.fiadoController.Receivables)
		admin.POST("/fiado/payments", a.fiadoController.Pay)

		admin.GET("/abandoned-carts", a.cartController.List)
		admin.DELETE("/abandoned-carts/:phone", a.cartController.Delete)
	}
}

// Run inicia o servidor HTTP
func (a *App) Run() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	a.logger.Info("servidor iniciado", "port", port)
	return a.router.Run(":" + port)
}

// Close libera os recursos da aplicação
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}
