package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"artstore-backend/internal/config"
	infraCache "artstore-backend/internal/infrastructure/cache"
	"artstore-backend/internal/infrastructure/database"
	"artstore-backend/internal/infrastructure/email"
	"artstore-backend/pkg/cache"
	pkgDatabase "artstore-backend/pkg/database"
	"artstore-backend/pkg/jwt"
	"artstore-backend/pkg/logger"

	analyticsHandler "artstore-backend/internal/domains/analytics/handler"
	analyticsRepo "artstore-backend/internal/domains/analytics/repository"
	analyticsService "artstore-backend/internal/domains/analytics/service"
	authHandler "artstore-backend/internal/domains/auth/handler"
	authService "artstore-backend/internal/domains/auth/service"
	cartHandler "artstore-backend/internal/domains/cart/handler"
	cartRepo "artstore-backend/internal/domains/cart/repository"
	cartService "artstore-backend/internal/domains/cart/service"
	checkoutHandler "artstore-backend/internal/domains/checkout/handler"
	"artstore-backend/internal/domains/checkout/payment"
	checkoutService "artstore-backend/internal/domains/checkout/service"
	couponHandler "artstore-backend/internal/domains/coupon/handler"
	couponRepo "artstore-backend/internal/domains/coupon/repository"
	couponService "artstore-backend/internal/domains/coupon/service"
	orderHandler "artstore-backend/internal/domains/order/handler"
	orderRepo "artstore-backend/internal/domains/order/repository"
	orderService "artstore-backend/internal/domains/order/service"
	productHandler "artstore-backend/internal/domains/product/handler"
	productRepo "artstore-backend/internal/domains/product/repository"
	productService "artstore-backend/internal/domains/product/service"
)

// simulatedChargeDelay approximates a PSP round trip.
const simulatedChargeDelay = 150 * time.Millisecond

// Container is the root of the dependency graph. Everything in it is a
// singleton built once at startup, in dependency order: config, then
// infrastructure, then repositories, services and handlers.
type Container struct {
	Config       *config.Config
	DB           *database.PostgresDB
	Cache        cache.Cache
	JWTManager   *jwt.Manager
	AsynqClient  *asynq.Client
	EmailService email.EmailService

	ProductRepo   productRepo.RepositoryInterface
	CartRepo      cartRepo.RepositoryInterface
	CouponRepo    couponRepo.RepositoryInterface
	OrderRepo     orderRepo.RepositoryInterface
	AnalyticsRepo analyticsRepo.RepositoryInterface

	ProductService   productService.ServiceInterface
	CartService      cartService.ServiceInterface
	CouponService    couponService.ServiceInterface
	OrderService     orderService.ServiceInterface
	CheckoutService  checkoutService.ServiceInterface
	AnalyticsService analyticsService.ServiceInterface
	AuthService      authService.ServiceInterface

	ProductHandler   *productHandler.ProductHandler
	CartHandler      *cartHandler.CartHandler
	CouponHandler    *couponHandler.CouponHandler
	OrderHandler     *orderHandler.OrderHandler
	CheckoutHandler  *checkoutHandler.CheckoutHandler
	AnalyticsHandler *analyticsHandler.AnalyticsHandler
	AuthHandler      *authHandler.AuthHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	db := database.NewPostgresDB(&cfg.Database)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(context.Background()); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
	}
	c.Cache = redisCache

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)
	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	c.EmailService = email.NewSMTPEmailService(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.From)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("Container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.ProductRepo = productRepo.NewPostgresRepository(pool)
	c.CartRepo = cartRepo.NewRedisRepository(c.Cache)
	c.CouponRepo = couponRepo.NewPostgresRepository(pool)
	c.OrderRepo = orderRepo.NewPostgresRepository(pool)
	c.AnalyticsRepo = analyticsRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	// Analytics first: the cart and checkout services report events to it.
	c.AnalyticsService = analyticsService.NewAnalyticsService(c.AnalyticsRepo)

	c.ProductService = productService.NewProductService(c.ProductRepo)
	c.CartService = cartService.NewCartService(c.CartRepo, c.ProductRepo, c.AnalyticsService)
	c.CouponService = couponService.NewCouponService(c.CouponRepo)
	c.OrderService = orderService.NewOrderService(
		pkgDatabase.NewTransactor(c.DB.Pool),
		c.OrderRepo,
		c.ProductRepo,
		c.CouponRepo,
		c.AsynqClient,
	)
	c.CheckoutService = checkoutService.NewCheckoutService(
		c.CartService,
		c.OrderService,
		checkoutService.NewShippingEstimator(c.Config.Shipping),
		payment.NewSimulatedGateway(simulatedChargeDelay),
		c.AnalyticsService,
	)
	c.AuthService = authService.NewAuthService(c.Config.Admin, c.JWTManager)
}

func (c *Container) initHandlers() {
	c.ProductHandler = productHandler.NewProductHandler(c.ProductService)
	c.CartHandler = cartHandler.NewCartHandler(c.CartService)
	c.CouponHandler = couponHandler.NewCouponHandler(c.CouponService)
	c.OrderHandler = orderHandler.NewOrderHandler(c.OrderService)
	c.CheckoutHandler = checkoutHandler.NewCheckoutHandler(c.CheckoutService)
	c.AnalyticsHandler = analyticsHandler.NewAnalyticsHandler(c.AnalyticsService)
	c.AuthHandler = authHandler.NewAuthHandler(c.AuthService)
}

// Cleanup closes the long-lived connections. Called on graceful shutdown.
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			logger.Error("Failed to close asynq client", err)
		}
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				logger.Error("Failed to close redis", err)
			}
		}
	}

	if c.DB != nil {
		c.DB.Close()
	}

	logger.Info("Container cleanup completed", nil)
}
