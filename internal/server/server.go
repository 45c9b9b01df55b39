package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/ridwanfathin/invoice-dashboard-service/internal/auth"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/config"
	_ "github.com/ridwanfathin/invoice-dashboard-service/internal/docs"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/handler"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/middleware"
)

const shutdownTimeout = 10 * time.Second

// gateExemptPaths bypass the access gate. /logout must stay reachable for
// signed-in users, who would otherwise be redirected to the dashboard.
var gateExemptPaths = []string{"/health", "/api-docs", "/logout"}

// Handlers groups the route handlers the server mounts
type Handlers struct {
	Invoice *handler.InvoiceHandler
	Auth    *handler.AuthHandler
}

// Server represents the HTTP server for the invoice dashboard
type Server struct {
	router        *gin.Engine
	httpServer    *http.Server
	config        *config.Config
	logger        *zap.Logger
	shutdownHooks []func()
}

// NewServer creates and configures a new server instance
func NewServer(cfg *config.Config, logger *zap.Logger, sessions *auth.SessionCodec, handlers Handlers) *Server {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORSAllowedOrigin))
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.LoadSession(sessions))
	router.Use(middleware.AccessGate(gateExemptPaths...))

	server := &Server{
		router: router,
		config: cfg,
		logger: logger,
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}

	server.setupRoutes(handlers)

	return server
}

// OnShutdown registers fn to run after the HTTP server stops
func (s *Server) OnShutdown(fn func()) {
	s.shutdownHooks = append(s.shutdownHooks, fn)
}

// GetRouter returns the gin router instance
func (s *Server) GetRouter() *gin.Engine {
	return s.router
}

// setupRoutes configures all application routes
func (s *Server) setupRoutes(handlers Handlers) {
	// Health check endpoint
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Access the Swagger UI at http://localhost:8080/api-docs/index.html
	swaggerHandler := ginSwagger.WrapHandler(swaggerFiles.Handler)
	s.router.GET("/api-docs/*any", swaggerHandler)

	s.router.GET("/api-docs", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/api-docs/index.html")
	})

	s.router.GET(auth.DashboardPath, handler.Dashboard)

	if handlers.Auth != nil {
		handlers.Auth.RegisterRoutes(s.router)
	}
	if handlers.Invoice != nil {
		handlers.Invoice.RegisterRoutes(s.router)
	}
}

// Start begins listening for requests and handles graceful shutdown
func (s *Server) Start() error {
	// Channel to listen for interrupt signals
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", zap.Int("port", s.config.Port))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("failed to start server: %w", err)
	case <-quit:
	}
	s.logger.Info("shutting down server")

	if err := s.Shutdown(); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	s.logger.Info("server exited gracefully")
	return nil
}

// Shutdown gracefully stops the server and then runs the shutdown hooks
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	for _, hook := range s.shutdownHooks {
		hook()
	}
	return err
}
