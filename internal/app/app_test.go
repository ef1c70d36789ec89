package app

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailforge/mailforge/config"
	"github.com/mailforge/mailforge/internal/domain/mocks"
	"github.com/mailforge/mailforge/internal/service"
	"github.com/mailforge/mailforge/pkg/logger"
	"github.com/mailforge/mailforge/pkg/mailer"
	pkgmocks "github.com/mailforge/mailforge/pkg/mocks"
)

func createTestConfig() *config.Config {
	return &config.Config{
		Environment: "test",
		Database: config.DatabaseConfig{
			User:     "postgres_test",
			Password: "postgres_test",
			Host:     "localhost",
			Port:     5432,
			DBName:   "mailforge_test",
		},
		Server: config.ServerConfig{
			Host:            "localhost",
			Port:            8080,
			CORSAllowOrigin: "*",
		},
		Builder: config.BuilderConfig{
			SessionTTL: time.Hour,
			MessageTTL: 5 * time.Second,
		},
		TemplateAPI: config.TemplateAPIConfig{
			Timeout: 5 * time.Second,
		},
		Send: config.SendConfig{
			Concurrency: 2,
		},
	}
}

// initializedApp runs every init step against a mock database and mailer
func initializedApp(t *testing.T, cfg *config.Config, opts ...AppOption) (*App, sqlmock.Sqlmock) {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	opts = append([]AppOption{
		WithLogger(logger.NewTestLogger(t)),
		WithMockDB(db),
		WithMockMailer(pkgmocks.NewMockMailer(ctrl)),
	}, opts...)

	a := NewApp(cfg, opts...)
	require.NoError(t, a.Initialize())

	appImpl, ok := a.(*App)
	require.True(t, ok, "app should be *App")
	t.Cleanup(func() {
		if appImpl.builderService != nil {
			appImpl.builderService.Close()
		}
	})
	return appImpl, mock
}

func TestNewApp(t *testing.T) {
	cfg := createTestConfig()

	app := NewApp(cfg)
	assert.NotNil(t, app)
	assert.Equal(t, cfg, app.GetConfig())
	assert.NotNil(t, app.GetLogger())
	assert.NotNil(t, app.GetMux())

	ctrl := gomock.NewController(t)
	testLogger := logger.NewTestLogger(t)
	mockDB, _, err := sqlmock.New()
	require.NoError(t, err)
	mockMailer := pkgmocks.NewMockMailer(ctrl)

	app = NewApp(cfg,
		WithLogger(testLogger),
		WithMockDB(mockDB),
		WithMockMailer(mockMailer),
	)

	assert.Equal(t, testLogger, app.GetLogger())
	assert.Equal(t, mockDB, app.GetDB())
	assert.Equal(t, mockMailer, app.GetMailer())
}

func TestAppInitMailer(t *testing.T) {
	t.Run("Development environment uses ConsoleMailer", func(t *testing.T) {
		cfg := createTestConfig()
		cfg.Environment = "development"

		app := NewApp(cfg, WithLogger(logger.NewTestLogger(t)))
		require.NoError(t, app.InitMailer())

		_, isConsoleMailer := app.GetMailer().(*mailer.ConsoleMailer)
		assert.True(t, isConsoleMailer)
	})

	t.Run("Production environment uses SMTPMailer", func(t *testing.T) {
		cfg := createTestConfig()
		cfg.Environment = "production"
		cfg.SMTP = config.SMTPConfig{
			Host:      "smtp.example.com",
			Port:      587,
			FromEmail: "noreply@example.com",
		}

		app := NewApp(cfg, WithLogger(logger.NewTestLogger(t)))
		require.NoError(t, app.InitMailer())

		_, isSMTPMailer := app.GetMailer().(*mailer.SMTPMailer)
		assert.True(t, isSMTPMailer)
	})

	t.Run("Injected mailer is kept", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockMailer := pkgmocks.NewMockMailer(ctrl)

		app := NewApp(createTestConfig(), WithLogger(logger.NewTestLogger(t)), WithMockMailer(mockMailer))
		require.NoError(t, app.InitMailer())
		assert.Equal(t, mockMailer, app.GetMailer())
	})
}

func TestAppInitOrder(t *testing.T) {
	t.Run("Repositories need a database", func(t *testing.T) {
		app := NewApp(createTestConfig(), WithLogger(logger.NewTestLogger(t)))
		assert.Error(t, app.InitRepositories())
	})

	t.Run("Services need repositories", func(t *testing.T) {
		app := NewApp(createTestConfig(), WithLogger(logger.NewTestLogger(t)))
		assert.Error(t, app.InitServices())
	})
}

func TestAppInitServices_TemplateCreator(t *testing.T) {
	t.Run("Local store by default", func(t *testing.T) {
		app, _ := initializedApp(t, createTestConfig())
		_, isLocal := app.GetTemplateCreator().(*service.TemplateService)
		assert.True(t, isLocal)
	})

	t.Run("Remote store when an endpoint is configured", func(t *testing.T) {
		cfg := createTestConfig()
		cfg.TemplateAPI.Endpoint = "https://templates.example.com"

		app, _ := initializedApp(t, cfg)
		_, isRemote := app.GetTemplateCreator().(*service.TemplateAPIClient)
		assert.True(t, isRemote)
	})

	t.Run("Injected creator wins", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		creator := mocks.NewMockTemplateCreator(ctrl)

		app, _ := initializedApp(t, createTestConfig(), WithTemplateCreator(creator))
		assert.Equal(t, creator, app.GetTemplateCreator())
	})
}

func TestAppInitHandlers(t *testing.T) {
	app, mock := initializedApp(t, createTestConfig())

	mock.ExpectQuery(`SELECT .* FROM templates`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "subject", "html_content", "created_at", "updated_at"}))

	handler := app.Handler()

	t.Run("Health check", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Routes are registered", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/templates.list", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Builder session round trip", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/builder.create", nil))
		require.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"document"`)

		w = httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/builder.palette", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Unknown route", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/nothing.here", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/send.campaign", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAppShutdown(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	app := NewApp(createTestConfig(), WithLogger(logger.NewTestLogger(t)), WithMockDB(mockDB))

	// No server, but the database is still closed
	require.NoError(t, app.Shutdown(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppStart(t *testing.T) {
	cfg := createTestConfig()
	cfg.Server.Port = 18080 + (time.Now().Nanosecond() % 1000)

	app, mock := initializedApp(t, cfg)
	mock.ExpectClose()
	app.SetShutdownTimeout(2 * time.Second)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Start()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.True(t, app.WaitForServerStart(ctx), "Server should have started within timeout")
	assert.True(t, app.IsServerCreated())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	assert.NoError(t, app.Shutdown(shutdownCtx))

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			t.Fatalf("Server error: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for server to stop")
	}
}

func TestWaitForServerStartTimeout(t *testing.T) {
	app := NewApp(createTestConfig(), WithLogger(logger.NewTestLogger(t)))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.False(t, app.WaitForServerStart(ctx))
}

func TestGracefulShutdownMiddleware(t *testing.T) {
	testLogger := logger.NewTestLogger(t)
	a := NewApp(createTestConfig(), WithLogger(testLogger)).(*App)

	var seenActive int64
	handler := a.gracefulShutdownMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenActive = a.GetActiveRequestCount()
		w.WriteHeader(http.StatusOK)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), seenActive)
	assert.Equal(t, int64(0), a.GetActiveRequestCount())

	a.shutdownCancel()
	assert.True(t, a.isShuttingDown())
	assert.Error(t, a.GetShutdownContext().Err())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Server is shutting down"))

	a.SetShutdownTimeout(3 * time.Second)
	assert.Equal(t, 3*time.Second, a.shutdownTimeout)
	assert.True(t, testLogger.Contains("Shutdown timeout configured"))
}

func TestAppEventWebhook_DeliversAfterRequestCompletes(t *testing.T) {
	deliveries := make(chan []byte, 1)
	receiver := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(50 * time.Millisecond)
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
		deliveries <- body
	}))
	defer receiver.Close()

	cfg := createTestConfig()
	cfg.Webhook.URL = receiver.URL
	cfg.Webhook.Secret = "whsec_" + base64.StdEncoding.EncodeToString([]byte("event-webhook-secret-32-bytes!!!"))

	testLogger := logger.NewTestLogger(t)
	app, mock := initializedApp(t, cfg, WithLogger(testLogger))
	mock.ExpectQuery(`INSERT INTO templates`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	api := httptest.NewServer(app.Handler())
	defer api.Close()

	resp, err := http.Post(api.URL+"/api/templates.create", "application/json",
		strings.NewReader(`{"template_name":"Welcome","subject":"Hi","html_content":"<p>Hi</p>"}`))
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	select {
	case body := <-deliveries:
		assert.Contains(t, string(body), `"type":"template.created"`)
		assert.Contains(t, string(body), `"entity_id":"9"`)
	case <-time.After(3 * time.Second):
		t.Fatal("event webhook was not delivered")
	}
	assert.Eventually(t, func() bool {
		return testLogger.Contains("Event webhook delivered")
	}, 3*time.Second, 10*time.Millisecond)
	assert.False(t, testLogger.Contains("Failed to deliver event webhook"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppTracing_DatabaseStatsLifecycle(t *testing.T) {
	cfg := createTestConfig()
	cfg.Tracing = config.TracingConfig{
		Enabled:         true,
		ServiceName:     "mailforge_test",
		TraceExporter:   "none",
		MetricsExporter: "prometheus",
	}

	app, mock := initializedApp(t, cfg)
	require.NotNil(t, app.stopDBStats, "pool stats should be recorded while tracing is on")
	require.NotNil(t, app.telemetry)

	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	mock.ExpectClose()
	require.NoError(t, app.Shutdown(context.Background()))
	assert.Nil(t, app.stopDBStats)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAppTracing_DisabledRecordsNoStats(t *testing.T) {
	app, _ := initializedApp(t, createTestConfig())
	assert.Nil(t, app.stopDBStats)

	w := httptest.NewRecorder()
	app.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
