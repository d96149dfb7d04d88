// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"crm-service/internal/config"
	"crm-service/internal/db"
	authHandler "crm-service/internal/handlers/auth"
	customerHandler "crm-service/internal/handlers/customer"
	profileHandler "crm-service/internal/handlers/profile"
	wsHandler "crm-service/internal/handlers/websocket"
	"crm-service/internal/middleware"
	"crm-service/internal/pkg/jwt"
	"crm-service/internal/pkg/session"
	"crm-service/internal/repository/postgres"
	authUsecase "crm-service/internal/service/auth"
	customersvc "crm-service/internal/service/customer"
	profileUsecase "crm-service/internal/service/profile"
	"crm-service/internal/websocket"
	wsHandlers "crm-service/internal/websocket/handler"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger

	httpServer  *http.Server
	hubCancel   context.CancelFunc
	pool        *pgxpool.Pool
	redisClient *redis.Client
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.Default()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	s.pool = pool

	// ----- Redis -----
	redisCfg := db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	}

	redisClient, err := db.NewRedisClient(redisCfg)
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Println("[REDIS] connected")
	s.redisClient = redisClient

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- JWT Manager -----
	jwtManager, err := jwt.LoadAndBuild(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT manager: %w", err)
	}

	// ----- Session Manager & Rate Limiter -----
	sessionManager := session.NewManager(redisClient)
	rateLimiter := session.NewRateLimiter(redisClient)

	// ----- Repositories -----
	authRepo := postgres.NewAuthRepository(pool)
	docStore := postgres.NewDocumentStore(pool)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(jwtManager.Verifier, sessionManager)

	// ----- Services (Usecases) -----
	authService := authUsecase.NewAuthService(
		authRepo,
		jwtManager,
		sessionManager,
		rateLimiter,
		logger,
	)
	customerService := customersvc.NewCustomerService(docStore, hub, logger)
	profileService := profileUsecase.NewProfileService(docStore, logger)

	// Register WebSocket handlers
	hub.RegisterHandler(wsHandlers.NewCustomerFeedHandler(hub, customerService))

	// Start hub
	hubCtx, hubCancel := context.WithCancel(context.Background())
	s.hubCancel = hubCancel
	go hub.Run(hubCtx)

	// ----- Handlers -----
	authHandlerInst := authHandler.NewAuthHandler(authService, logger)
	customerHandlerInst := customerHandler.NewCustomerHandler(customerService)
	profileHandlerInst := profileHandler.NewProfileHandler(profileService)
	wsHandlerInst := wsHandler.NewWebSocketHandler(hub, logger)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(authService)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		AuthHandler:     authHandlerInst,
		CustomerHandler: customerHandlerInst,
		ProfileHandler:  profileHandlerInst,
		WSHandler:       wsHandlerInst,
		AuthMiddleware:  authMiddleware,
	}
	SetupRouter(s.engine, logger, handlers)

	// ----- Start HTTP -----
	s.httpServer = &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.engine,
	}

	log.Printf("Server running on %s", s.cfg.HTTPAddr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting new requests, drains in-flight ones until the
// context expires, then tears down the hub and the backing connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	if s.httpServer != nil {
		shutdownErr = s.httpServer.Shutdown(ctx)
	}

	if s.hubCancel != nil {
		s.hubCancel()
	}
	if s.redisClient != nil {
		s.redisClient.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}

	return shutdownErr
}
