package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	cardusecases "captr/internal/application/card/usecases"
	chatusecases "captr/internal/application/chat/usecases"
	entitlementusecases "captr/internal/application/entitlement/usecases"
	scanusecases "captr/internal/application/scan/usecases"
	subscriptionusecases "captr/internal/application/subscription/usecases"
	usageusecases "captr/internal/application/usage/usecases"
	userusecases "captr/internal/application/user/usecases"
	"captr/internal/infrastructure/auth"
	"captr/internal/infrastructure/cache"
	"captr/internal/infrastructure/config"
	"captr/internal/infrastructure/ocr"
	"captr/internal/infrastructure/payment"
	"captr/internal/infrastructure/repository"
	"captr/internal/infrastructure/storage"
	"captr/internal/interfaces/http/handlers"
	"captr/internal/interfaces/http/middleware"
	"captr/internal/interfaces/http/routes"
	"captr/internal/shared/logger"
)

// Router wires repositories, use cases and handlers into a gin engine.
type Router struct {
	engine *gin.Engine
	cfg    *config.Config
	log    logger.Interface

	authHandler         *handlers.AuthHandler
	cardHandler         *handlers.CardHandler
	scanHandler         *handlers.ScanHandler
	subscriptionHandler *handlers.SubscriptionHandler
	chatHandler         *handlers.ChatHandler
	authMiddleware      *middleware.AuthMiddleware
}

// NewRouter creates a new HTTP router with all dependencies. redisClient may
// be nil, in which case entitlement resolution always hits the database.
func NewRouter(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, log logger.Interface) (*Router, error) {
	gin.SetMode(ginMode(cfg.Server.Mode))
	engine := gin.New()

	userRepo := repository.NewUserRepository(db, log)
	cardRepo := repository.NewCardRepository(db, log)
	subscriptionRepo := repository.NewSubscriptionRepository(db, log)
	usageRepo := repository.NewScanUsageRepository(db, log)

	hasher := auth.NewBcryptPasswordHasher(cfg.Auth.Password.BcryptCost)
	jwtService := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.AccessExpMinutes, cfg.Auth.JWT.RefreshExpDays)

	var entitlementCache entitlementusecases.EntitlementCache
	if redisClient != nil {
		entitlementCache = cache.NewRedisEntitlementCache(redisClient, log)
	}

	gateway := payment.NewRazorpayGateway(&cfg.Razorpay, log)
	openaiClient := ocr.NewOpenAIClient(&cfg.OpenAI, log)
	imageStore, err := storage.NewS3ImageStore(&cfg.Storage, log)
	if err != nil {
		return nil, err
	}

	registerUC := userusecases.NewRegisterUseCase(userRepo, hasher, jwtService, log)
	loginUC := userusecases.NewLoginUseCase(userRepo, hasher, jwtService, log)
	refreshUC := userusecases.NewRefreshTokenUseCase(userRepo, jwtService, log)

	saveCardUC := cardusecases.NewSaveCardUseCase(cardRepo, log)
	getCardUC := cardusecases.NewGetCardUseCase(cardRepo, log)
	listCardsUC := cardusecases.NewListCardsUseCase(cardRepo, log)
	updateCardUC := cardusecases.NewUpdateCardUseCase(cardRepo, log)
	deleteCardUC := cardusecases.NewDeleteCardUseCase(cardRepo, log)
	exportCardsUC := cardusecases.NewExportCardsUseCase(cardRepo, log)

	resolveUC := entitlementusecases.NewResolveEntitlementUseCase(
		subscriptionRepo, entitlementCache, cfg.Quota.FreeScansPerMonth, log,
	)
	recordScanUC := usageusecases.NewRecordScanUseCase(resolveUC, usageRepo, log)
	getUsageUC := usageusecases.NewGetUsageUseCase(resolveUC, usageRepo, log)

	scanCardUC := scanusecases.NewScanCardUseCase(recordScanUC, openaiClient, log)
	uploadImageUC := scanusecases.NewUploadImageUseCase(imageStore, log)

	createOrderUC := subscriptionusecases.NewCreateOrderUseCase(gateway, log)
	activateUC := subscriptionusecases.NewActivateSubscriptionUseCase(subscriptionRepo, gateway, entitlementCache, log)
	getSubscriptionUC := subscriptionusecases.NewGetSubscriptionUseCase(subscriptionRepo, log)

	chatUC := chatusecases.NewChatUseCase(cardRepo, openaiClient, log)

	return &Router{
		engine:              engine,
		cfg:                 cfg,
		log:                 log,
		authHandler:         handlers.NewAuthHandler(registerUC, loginUC, refreshUC, log),
		cardHandler:         handlers.NewCardHandler(saveCardUC, getCardUC, listCardsUC, updateCardUC, deleteCardUC, exportCardsUC, log),
		scanHandler:         handlers.NewScanHandler(scanCardUC, uploadImageUC, recordScanUC, getUsageUC, log),
		subscriptionHandler: handlers.NewSubscriptionHandler(createOrderUC, activateUC, getSubscriptionUC, log),
		chatHandler:         handlers.NewChatHandler(chatUC, log),
		authMiddleware:      middleware.NewAuthMiddleware(jwtService, log),
	}, nil
}

// SetupRoutes configures all HTTP routes
func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.CORS(r.cfg.Server.AllowedOrigins))
	r.engine.Use(middleware.Logger(r.log))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.SetupAuthRoutes(r.engine, &routes.AuthRouteConfig{
		AuthHandler: r.authHandler,
	})
	routes.SetupCardRoutes(r.engine, &routes.CardRouteConfig{
		CardHandler:    r.cardHandler,
		AuthMiddleware: r.authMiddleware,
	})
	routes.SetupScanRoutes(r.engine, &routes.ScanRouteConfig{
		ScanHandler:    r.scanHandler,
		AuthMiddleware: r.authMiddleware,
	})
	routes.SetupSubscriptionRoutes(r.engine, &routes.SubscriptionRouteConfig{
		SubscriptionHandler: r.subscriptionHandler,
		AuthMiddleware:      r.authMiddleware,
	})
	routes.SetupChatRoutes(r.engine, &routes.ChatRouteConfig{
		ChatHandler:    r.chatHandler,
		AuthMiddleware: r.authMiddleware,
	})
}

// GetEngine returns the Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}

// Run starts the HTTP server
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}

func ginMode(mode string) string {
	switch mode {
	case gin.ReleaseMode, gin.TestMode:
		return mode
	default:
		return gin.DebugMode
	}
}
