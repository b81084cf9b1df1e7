package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ExudusTech/bolao-engine/config"
	"github.com/ExudusTech/bolao-engine/lottery"
	"github.com/ExudusTech/bolao-engine/middleware"
	"github.com/ExudusTech/bolao-engine/pkg/providers"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// App represents the bolão engine application
type App struct {
	engine            *gin.Engine
	config            *config.Config
	logger            zerolog.Logger
	catalog           *lottery.Catalog
	suggestionService *SuggestionService
	suggestionHandler *SuggestionHandler
	resultsHandler    *ResultsHandler
	resultProvider    providers.ResultProvider
	publisher         providers.EventPublisher
	httpServer        *http.Server
	onShutdown        []func()
}

// Options holds server configuration options
type Options struct {
	Config         *config.Config
	Logger         zerolog.Logger
	Catalog        *lottery.Catalog
	ResultProvider providers.ResultProvider
	Publisher      providers.EventPublisher
}

// Router is an alias for gin.Engine for convenience
type Router = gin.Engine

// New creates a new bolão engine application
func New(opts Options) *App {
	// Configure decimal.Decimal to marshal as JSON number instead of string
	// WARNING: This may cause precision loss for decimals with many digits when
	// unmarshaled by clients using IEEE 754 double-precision (e.g., JavaScript)
	decimal.MarshalJSONWithoutQuotes = true

	// Set Gin mode
	if opts.Config.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	app := &App{
		engine:         engine,
		config:         opts.Config,
		logger:         opts.Logger,
		catalog:        opts.Catalog,
		resultProvider: opts.ResultProvider,
		publisher:      opts.Publisher,
	}

	app.suggestionService = NewSuggestionService(opts.Catalog, opts.Publisher, opts.Config.Kafka.Topics, opts.Logger)
	app.suggestionHandler = NewSuggestionHandler(app.suggestionService, opts.Catalog, opts.Logger)
	app.resultsHandler = NewResultsHandler(opts.Catalog, opts.ResultProvider, opts.Publisher, opts.Logger)

	return app
}

// UseCommonMiddlewares adds common middlewares to the application
func (a *App) UseCommonMiddlewares() {
	// Recovery middleware (must be first)
	a.engine.Use(middleware.Recovery(a.logger))

	// Trace ID middleware
	a.engine.Use(middleware.TraceID())

	// Logging middleware
	a.engine.Use(middleware.Logging(a.logger))

	// CORS middleware if enabled
	if a.config.Server.EnableCORS {
		a.engine.Use(middleware.CORS())
	}
}

// UseMiddleware adds a custom middleware
func (a *App) UseMiddleware(m gin.HandlerFunc) {
	a.engine.Use(m)
}

// RegisterHealthCheck adds health check endpoints
func (a *App) RegisterHealthCheck() {
	a.engine.GET("/health", a.healthCheck)
	a.engine.GET("/api/health", a.healthCheck)
}

func (a *App) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now(),
		"service":   a.config.Environment,
		"lotteries": a.catalog.Codes(),
	})
}

// RegisterPoolRoutes registers the pool API routes
//
// Flow: HTTP Request -> poolRoutes -> SuggestionHandler -> SuggestionService -> engine
//
// Routes registered:
//   - GET  /api/lotteries                               -> SuggestionHandler.ListLotteries
//   - POST /api/pools/{pool_code}/analysis              -> SuggestionHandler.Analyze
//   - POST /api/pools/{pool_code}/suggestions/generate  -> SuggestionHandler.GenerateAuto
//   - POST /api/pools/{pool_code}/suggestions/selections -> SuggestionHandler.GenerateSelections
//   - POST /api/pools/{pool_code}/suggestions/custom    -> SuggestionHandler.GenerateCustom
//   - POST /api/pools/{pool_code}/results/check         -> ResultsHandler.CheckResults
func (a *App) RegisterPoolRoutes() {
	api := a.engine.Group("/api")
	{
		api.GET("/lotteries", a.suggestionHandler.ListLotteries)

		pools := api.Group("/pools/:pool_code")
		{
			pools.POST("/analysis", a.suggestionHandler.Analyze)
			pools.POST("/suggestions/generate", a.suggestionHandler.GenerateAuto)
			pools.POST("/suggestions/selections", a.suggestionHandler.GenerateSelections)
			pools.POST("/suggestions/custom", a.suggestionHandler.GenerateCustom)

			// Result checks call the official results API; bound them so a
			// slow upstream cannot hold the connection open indefinitely.
			pools.POST("/results/check",
				middleware.Timeout(a.config.Server.WriteTimeout),
				a.resultsHandler.CheckResults)
		}
	}

	a.logger.Info().Msg("Pool routes registered: /api/pools/:pool_code")
}

// Router returns the Gin engine for custom route registration
func (a *App) Router() *gin.Engine {
	return a.engine
}

// Group creates a route group
func (a *App) Group(path string, handlers ...gin.HandlerFunc) *gin.RouterGroup {
	return a.engine.Group(path, handlers...)
}

// RegisterRoutes registers custom routes using a callback
func (a *App) RegisterRoutes(fn func(*gin.Engine)) {
	fn(a.engine)
}

// OnShutdown registers a function to be called on shutdown
func (a *App) OnShutdown(fn func()) {
	a.onShutdown = append(a.onShutdown, fn)
}

// Run starts the HTTP server
func (a *App) Run() error {
	addr := fmt.Sprintf(":%d", a.config.Server.Port)

	a.httpServer = &http.Server{
		Addr:         addr,
		Handler:      a.engine,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		a.logger.Info().
			Int("port", a.config.Server.Port).
			Str("environment", a.config.Environment).
			Msg("Starting HTTP server")

		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	return a.waitForShutdown()
}

// RunWithContext starts the HTTP server with context
func (a *App) RunWithContext(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", a.config.Server.Port)

	a.httpServer = &http.Server{
		Addr:         addr,
		Handler:      a.engine,
		ReadTimeout:  a.config.Server.ReadTimeout,
		WriteTimeout: a.config.Server.WriteTimeout,
		IdleTimeout:  a.config.Server.IdleTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		a.logger.Info().
			Int("port", a.config.Server.Port).
			Str("environment", a.config.Environment).
			Msg("Starting HTTP server")

		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		return a.shutdown()
	case err := <-errChan:
		return err
	}
}

func (a *App) waitForShutdown() error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	return a.shutdown()
}

func (a *App) shutdown() error {
	a.logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Call registered shutdown handlers
	for _, fn := range a.onShutdown {
		fn()
	}

	// Shutdown HTTP server
	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.logger.Error().Err(err).Msg("Error during server shutdown")
		return err
	}

	a.logger.Info().Msg("Server shutdown complete")
	return nil
}

// Config returns the application configuration
func (a *App) Config() *config.Config {
	return a.config
}

// Logger returns the application logger
func (a *App) Logger() zerolog.Logger {
	return a.logger
}

// SuggestionService returns the built-in suggestion service
func (a *App) SuggestionService() *SuggestionService {
	return a.suggestionService
}
