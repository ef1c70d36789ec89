package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mailforge/mailforge/config"
	"github.com/mailforge/mailforge/internal/database"
	"github.com/mailforge/mailforge/internal/domain"
	httpHandler "github.com/mailforge/mailforge/internal/http"
	"github.com/mailforge/mailforge/internal/http/middleware"
	"github.com/mailforge/mailforge/internal/repository"
	"github.com/mailforge/mailforge/internal/service"
	"github.com/mailforge/mailforge/pkg/liquid"
	"github.com/mailforge/mailforge/pkg/logger"
	"github.com/mailforge/mailforge/pkg/mailer"
	"github.com/mailforge/mailforge/pkg/tracing"

	"contrib.go.opencensus.io/integrations/ocsql"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Start() error
	Shutdown(ctx context.Context) error

	// Getters for app components accessed in tests
	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetDB() *sql.DB
	GetMailer() mailer.Mailer
	GetTemplateRepository() domain.TemplateRepository
	GetCampaignRepository() domain.CampaignRepository
	GetTemplateCreator() domain.TemplateCreator

	// Server status methods
	IsServerCreated() bool
	WaitForServerStart(ctx context.Context) bool

	// Methods for initialization steps
	InitDB() error
	InitMailer() error
	InitTracing() error
	InitRepositories() error
	InitServices() error
	InitHandlers() error

	// Graceful shutdown methods
	SetShutdownTimeout(timeout time.Duration)
	GetActiveRequestCount() int64
	GetShutdownContext() context.Context
}

// App encapsulates the application dependencies and configuration
type App struct {
	config   *config.Config
	logger   logger.Logger
	db       *sql.DB
	mailer   mailer.Mailer
	eventBus domain.EventBus
	renderer liquid.Renderer

	// Repositories
	templateRepo domain.TemplateRepository
	campaignRepo domain.CampaignRepository

	// Services
	templateService *service.TemplateService
	campaignService *service.CampaignService
	sendService     *service.SendService
	builderService  *service.BuilderService
	templateCreator domain.TemplateCreator

	// Telemetry
	telemetry   *tracing.Telemetry
	stopDBStats func()

	// HTTP handlers
	mux    *http.ServeMux
	server *http.Server

	// Server synchronization
	serverMu      sync.RWMutex
	serverStarted chan struct{}

	// Graceful shutdown management
	shutdownCtx     context.Context
	shutdownCancel  context.CancelFunc
	activeRequests  int64          // atomic counter for active HTTP requests
	requestWg       sync.WaitGroup // wait group for active requests
	shutdownTimeout time.Duration
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a mock database
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithMockMailer configures the app to use a mock mailer
func WithMockMailer(m mailer.Mailer) AppOption {
	return func(a *App) {
		a.mailer = m
	}
}

// WithTemplateCreator overrides where the builder stores saved templates
func WithTemplateCreator(creator domain.TemplateCreator) AppOption {
	return func(a *App) {
		a.templateCreator = creator
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) AppInterface {
	shutdownCtx, shutdownCancel := context.WithCancel(context.Background())

	app := &App{
		config:          cfg,
		logger:          logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:             http.NewServeMux(),
		serverStarted:   make(chan struct{}),
		shutdownCtx:     shutdownCtx,
		shutdownCancel:  shutdownCancel,
		shutdownTimeout: 30 * time.Second,
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitTracing initializes OpenCensus tracing
func (a *App) InitTracing() error {
	tracingConfig := &a.config.Tracing

	telemetry, err := tracing.InitTracing(tracingConfig)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.telemetry = telemetry

	if tracingConfig.Enabled {
		a.logger.WithField("trace_exporter", tracingConfig.TraceExporter).
			WithField("metrics_exporter", tracingConfig.MetricsExporter).
			WithField("sampling_rate", tracingConfig.SamplingProbability).
			Info("Tracing initialized successfully")
	}

	return nil
}

// InitDB initializes the database connection
func (a *App) InitDB() error {
	// Skip if the database was injected (e.g., by mock)
	if a.db != nil {
		a.startDBStats()
		return nil
	}

	a.logger.Info(fmt.Sprintf("Connecting to database %s:%d, user %s, sslmode %s, dbname: %s",
		a.config.Database.Host, a.config.Database.Port, a.config.Database.User, a.config.Database.SSLMode, a.config.Database.DBName))

	if err := database.EnsureSystemDatabaseExists(database.GetPostgresDSN(&a.config.Database), a.config.Database.DBName); err != nil {
		a.logger.Error(err.Error())
		return fmt.Errorf("failed to ensure database exists: %w", err)
	}

	// If tracing is enabled, wrap the postgres driver
	driverName := "postgres"
	if a.config.Tracing.Enabled {
		var err error
		driverName, err = ocsql.Register(driverName, ocsql.WithAllTraceOptions())
		if err != nil {
			return fmt.Errorf("failed to register opencensus sql driver: %w", err)
		}
		a.logger.Info("Database driver wrapped with OpenCensus tracing")
	}

	db, err := sql.Open(driverName, database.GetSystemDSN(&a.config.Database))
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	database.ConfigurePool(db, &a.config.Database)

	if err := database.InitializeDatabase(db); err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize database schema: %w", err)
	}

	a.db = db
	a.startDBStats()
	return nil
}

// startDBStats exports connection pool stats every 5s while tracing is on
func (a *App) startDBStats() {
	if a.config.Tracing.Enabled && a.stopDBStats == nil {
		a.stopDBStats = ocsql.RecordStats(a.db, 5*time.Second)
	}
}

// InitMailer initializes the mailer service
func (a *App) InitMailer() error {
	// Skip if mailer already set (e.g., by mock)
	if a.mailer != nil {
		return nil
	}

	if a.config.IsDevelopment() {
		a.mailer = mailer.NewConsoleMailer()
		a.logger.Info("Using console mailer for development")
	} else {
		a.mailer = mailer.NewSMTPMailer(&mailer.Config{
			SMTPHost:     a.config.SMTP.Host,
			SMTPPort:     a.config.SMTP.Port,
			SMTPUsername: a.config.SMTP.Username,
			SMTPPassword: a.config.SMTP.Password,
			FromEmail:    a.config.SMTP.FromEmail,
			FromName:     a.config.SMTP.FromName,
		})
		a.logger.Info("Using SMTP mailer for production")
	}

	return nil
}

// InitRepositories initializes all repositories
func (a *App) InitRepositories() error {
	if a.db == nil {
		return fmt.Errorf("database must be initialized before repositories")
	}

	a.templateRepo = repository.NewTemplateRepository(a.db)
	a.campaignRepo = repository.NewCampaignRepository(a.db)

	return nil
}

// InitServices initializes all application services
func (a *App) InitServices() error {
	if a.templateRepo == nil || a.campaignRepo == nil {
		return fmt.Errorf("repositories must be initialized before services")
	}
	if a.mailer == nil {
		return fmt.Errorf("mailer must be initialized before services")
	}

	a.eventBus = domain.NewInMemoryEventBus()
	a.renderer = liquid.NewSecureEngine()

	a.templateService = service.NewTemplateService(a.templateRepo, a.renderer, a.eventBus, a.logger)
	a.campaignService = service.NewCampaignService(a.campaignRepo, a.logger)
	a.sendService = service.NewSendService(
		a.templateRepo,
		a.campaignRepo,
		a.renderer,
		a.mailer,
		a.eventBus,
		a.config.Send.Concurrency,
		a.logger,
	)

	if a.templateCreator == nil {
		if a.config.UsesRemoteTemplateStore() {
			httpClient := tracing.WrapHTTPClient(&http.Client{Timeout: a.config.TemplateAPI.Timeout})
			a.templateCreator = service.NewTemplateAPIClient(httpClient, a.config.TemplateAPI.Endpoint, a.logger)
			a.logger.WithField("endpoint", a.config.TemplateAPI.Endpoint).Info("Builder saves templates to remote template store")
		} else {
			a.templateCreator = a.templateService
		}
	}

	a.builderService = service.NewBuilderService(
		a.templateCreator,
		a.config.Builder.SessionTTL,
		a.config.Builder.MessageTTL,
		a.logger,
	)

	a.eventBus.Subscribe(domain.EventCampaignSent, func(ctx context.Context, payload domain.EventPayload) {
		a.logger.WithField("campaign_id", payload.EntityID).
			WithFields(payload.Data).
			Info("Campaign send completed")
	})

	if a.config.Webhook.URL != "" {
		notifier, err := service.NewEventWebhookNotifier(
			tracing.WrapHTTPClient(&http.Client{Timeout: 10 * time.Second}),
			a.config.Webhook.URL,
			a.config.Webhook.Secret,
			a.logger,
		)
		if err != nil {
			return err
		}
		notifier.Subscribe(a.eventBus)
		a.logger.WithField("url", a.config.Webhook.URL).Info("Event webhook enabled")
	}

	return nil
}

// InitHandlers initializes all HTTP handlers and routes
func (a *App) InitHandlers() error {
	// Create a new ServeMux to avoid route conflicts on restart
	a.mux = http.NewServeMux()

	templateHandler := httpHandler.NewTemplateHandler(a.templateService, a.logger)
	campaignHandler := httpHandler.NewCampaignHandler(a.campaignService, a.logger)
	sendHandler := httpHandler.NewSendHandler(a.sendService, a.logger)
	builderHandler := httpHandler.NewBuilderHandler(a.builderService, a.logger)

	templateHandler.RegisterRoutes(a.mux)
	campaignHandler.RegisterRoutes(a.mux)
	sendHandler.RegisterRoutes(a.mux)
	builderHandler.RegisterRoutes(a.mux)

	a.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	if a.telemetry != nil && a.telemetry.MetricsHandler != nil {
		a.mux.Handle("/metrics", a.telemetry.MetricsHandler)
	}

	return nil
}

// Handler returns the mux wrapped with the middleware chain
func (a *App) Handler() http.Handler {
	var handler http.Handler = a.mux

	handler = a.gracefulShutdownMiddleware(handler)

	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
	}

	return middleware.CORSMiddleware(a.config.Server.CORSAllowOrigin)(handler)
}

// Start starts the HTTP server
func (a *App) Start() error {
	handler := a.Handler()

	addr := fmt.Sprintf("%s:%d", a.config.Server.Host, a.config.Server.Port)
	a.logger.WithField("address", addr).Info(fmt.Sprintf("Server starting on %s", addr))

	a.serverMu.Lock()
	if a.serverStarted != nil {
		close(a.serverStarted)
	}
	a.serverStarted = make(chan struct{})

	a.server = &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverStarted := a.serverStarted
	a.serverMu.Unlock()

	// Signal that the server has been created and is about to start
	close(serverStarted)

	if a.config.Server.SSL.Enabled {
		a.logger.WithField("cert_file", a.config.Server.SSL.CertFile).Info("SSL enabled")
		return a.server.ListenAndServeTLS(a.config.Server.SSL.CertFile, a.config.Server.SSL.KeyFile)
	}

	return a.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Starting graceful shutdown...")

	a.shutdownCancel()

	a.serverMu.RLock()
	server := a.server
	a.serverMu.RUnlock()

	if server == nil {
		a.logger.Info("No server to shutdown")
		return a.cleanupResources(ctx)
	}

	a.logger.WithField("active_requests", a.getActiveRequestCount()).Info("Active requests at shutdown start")

	shutdownTimeout := a.shutdownTimeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < shutdownTimeout {
			shutdownTimeout = remaining
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	var shutdownErr error
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.logger.WithField("error", err.Error()).Warn("HTTP server shutdown did not complete")
		shutdownErr = err
	} else {
		a.logger.Info("HTTP server shutdown completed")
	}

	// Wait for tracked requests, bounded by the shutdown deadline
	done := make(chan struct{})
	go func() {
		a.requestWg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-shutdownCtx.Done():
		a.logger.WithField("active_requests", a.getActiveRequestCount()).Warn("Shutdown timeout reached, forcing shutdown")
	}

	if cleanupErr := a.cleanupResources(ctx); cleanupErr != nil && shutdownErr == nil {
		shutdownErr = cleanupErr
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Error("Graceful shutdown completed with errors")
	} else {
		a.logger.Info("Graceful shutdown completed successfully")
	}

	return shutdownErr
}

// cleanupResources stops builder sessions and closes the database
func (a *App) cleanupResources(ctx context.Context) error {
	a.logger.Info("Cleaning up resources...")

	if a.builderService != nil {
		a.builderService.Close()
	}

	if a.stopDBStats != nil {
		a.stopDBStats()
		a.stopDBStats = nil
	}
	a.telemetry.Close()

	if a.db != nil {

		a.logger.Info("Closing database connection")
		if err := a.db.Close(); err != nil {
			a.logger.WithField("error", err.Error()).Error("Error closing database connection")
			return err
		}
	}

	a.logger.Info("Resource cleanup completed")
	return nil
}

// IsServerCreated safely checks if the server has been created
func (a *App) IsServerCreated() bool {
	a.serverMu.RLock()
	defer a.serverMu.RUnlock()
	return a.server != nil
}

// WaitForServerStart waits for the server to be created and initialized.
// Returns true if the server started successfully, false if context expired.
func (a *App) WaitForServerStart(ctx context.Context) bool {
	a.serverMu.RLock()
	started := a.serverStarted
	a.serverMu.RUnlock()

	if started == nil {
		a.logger.Error("serverStarted channel is nil - server initialization error")
		<-ctx.Done()
		return false
	}

	select {
	case <-started:
		return a.IsServerCreated()
	case <-ctx.Done():
		return false
	}
}

// Initialize sets up all components of the application
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting Mailforge application")

	if err := a.InitTracing(); err != nil {
		return err
	}

	if err := a.InitDB(); err != nil {
		return err
	}

	if err := a.InitMailer(); err != nil {
		return err
	}

	if err := a.InitRepositories(); err != nil {
		return err
	}

	if err := a.InitServices(); err != nil {
		return err
	}

	if err := a.InitHandlers(); err != nil {
		return err
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

// GetConfig returns the app's configuration
func (a *App) GetConfig() *config.Config {
	return a.config
}

// GetLogger returns the app's logger
func (a *App) GetLogger() logger.Logger {
	return a.logger
}

// GetMux returns the app's HTTP multiplexer
func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

// GetDB returns the app's database connection
func (a *App) GetDB() *sql.DB {
	return a.db
}

// GetMailer returns the app's mailer
func (a *App) GetMailer() mailer.Mailer {
	return a.mailer
}

func (a *App) GetTemplateRepository() domain.TemplateRepository {
	return a.templateRepo
}

func (a *App) GetCampaignRepository() domain.CampaignRepository {
	return a.campaignRepo
}

// GetTemplateCreator returns where builder saves are sent
func (a *App) GetTemplateCreator() domain.TemplateCreator {
	return a.templateCreator
}

func (a *App) incrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, 1)
	a.requestWg.Add(1)
}

func (a *App) decrementActiveRequests() {
	atomic.AddInt64(&a.activeRequests, -1)
	a.requestWg.Done()
}

func (a *App) getActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

// GetActiveRequestCount returns the current number of active requests
func (a *App) GetActiveRequestCount() int64 {
	return a.getActiveRequestCount()
}

// SetShutdownTimeout sets the timeout for graceful shutdown
func (a *App) SetShutdownTimeout(timeout time.Duration) {
	a.shutdownTimeout = timeout
	a.logger.WithField("shutdown_timeout", timeout).Info("Shutdown timeout configured")
}

// GetShutdownContext returns the shutdown context for components that need to watch for shutdown
func (a *App) GetShutdownContext() context.Context {
	return a.shutdownCtx
}

func (a *App) isShuttingDown() bool {
	select {
	case <-a.shutdownCtx.Done():
		return true
	default:
		return false
	}
}

// gracefulShutdownMiddleware rejects new requests once shutdown started and tracks the rest
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.isShuttingDown() {
			httpHandler.WriteJSONError(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		a.incrementActiveRequests()
		defer a.decrementActiveRequests()

		next.ServeHTTP(w, r)
	})
}

// Ensure App implements AppInterface
var _ AppInterface = (*App)(nil)
