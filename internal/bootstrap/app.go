package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/eddy5885/learning-SheetJS/internal/config"
	"github.com/eddy5885/learning-SheetJS/internal/handler"
	"github.com/eddy5885/learning-SheetJS/internal/logger"
	"github.com/eddy5885/learning-SheetJS/internal/service"
	"github.com/eddy5885/learning-SheetJS/internal/service/serviceutils"
	"github.com/eddy5885/learning-SheetJS/pkg/simpleexcel"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// processStartedAt marks process start; health uptime is measured from it.
var processStartedAt = time.Now()

type App struct {
	Echo      *echo.Echo
	Config    config.EnvConfig
	startedAt time.Time
}

func NewApp() *App {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	return &App{
		Echo:      e,
		startedAt: processStartedAt,
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	// Initialize logging
	if err := logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH, config.DefaultEnvConfig.LOG_LEVEL); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	return a.Setup(ctx, config.DefaultEnvConfig)
}

// Setup wires services, middlewares and routes for cfg.
func (a *App) Setup(ctx context.Context, cfg config.EnvConfig) error {
	a.Config = cfg

	tmpl, err := simpleexcel.DefaultExportTemplate()
	if err != nil {
		return fmt.Errorf("failed to load export template: %w", err)
	}

	// Initialize dependencies
	resolver := service.NewFileResolver(cfg.XLSX_DIR)
	wbSvc := service.NewWorkbookService(resolver, tmpl)
	wbHandler := handler.NewWorkbookHandler(wbSvc)
	sysHandler := handler.NewSystemHandler(a.startedAt)

	a.Echo.HTTPErrorHandler = httpErrorHandler
	a.Echo.Server.ReadTimeout = cfg.READ_TIMEOUT
	a.Echo.Server.WriteTimeout = cfg.WRITE_TIMEOUT

	a.RegisterMiddlewares()
	a.RegisterRoutes(sysHandler, wbHandler)

	logger.DebugLog(ctx, "serving spreadsheets from %s", cfg.XLSX_DIR)
	return nil
}

// RegisterMiddlewares installs the request pipeline, outermost first.
func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithRequestID(req.Context(), id)))
		},
	}))
	a.Echo.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.RequestLog(c.Request().Context(), v.Method, v.URI, v.Status, v.Latency, v.Error)
			return nil
		},
	}))
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:  a.Config.CORS_ALLOW_ORIGINS,
		ExposeHeaders: []string{echo.HeaderContentDisposition},
	}))
	if a.Config.BODY_LIMIT != "" {
		a.Echo.Use(middleware.BodyLimit(a.Config.BODY_LIMIT))
	}

	// Frontend pages first, then the static directory (xlsx samples live in
	// static/xlsx). Unknown paths fall through to the API routes.
	if a.Config.FRONTEND_DIR != "" {
		a.Echo.Use(middleware.StaticWithConfig(middleware.StaticConfig{Root: a.Config.FRONTEND_DIR}))
	}
	if a.Config.STATIC_DIR != "" {
		a.Echo.Use(middleware.StaticWithConfig(middleware.StaticConfig{Root: a.Config.STATIC_DIR}))
	}
}

func (a *App) RegisterRoutes(sysHandler *handler.SystemHandler, wbHandler *handler.WorkbookHandler) {
	api := a.Echo.Group("/api")
	api.GET("/hello", sysHandler.HelloHandler)
	api.GET("/health", sysHandler.HealthHandler)
	api.POST("/data", sysHandler.EchoDataHandler)

	api.GET("/xlsx", wbHandler.ReadHandler)
	api.GET("/xlsxv2", wbHandler.ReadCSVHandler)
	api.POST("/export", wbHandler.ExportHandler)
}

// Run serves until ctx is canceled or SIGINT/SIGTERM arrives, then shuts
// down gracefully.
func (a *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := ":" + a.Config.APP_PORT
	errCh := make(chan error, 1)
	go func() {
		logger.InfoLog(ctx, "Server running at http://localhost%s", addr)
		logger.InfoLog(ctx, "Static files served from: %s, %s", a.Config.FRONTEND_DIR, a.Config.STATIC_DIR)
		if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.InfoLog(context.Background(), "Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.SHUTDOWN_TIMEOUT)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}

// httpErrorHandler renders echo errors (unknown routes, wrong methods,
// oversized bodies, recovered panics) with the API error envelope.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := err.Error()
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		msg = fmt.Sprint(he.Message)
	}

	if code >= http.StatusInternalServerError {
		logger.ErrorLog(c.Request().Context(), "request failed: %v", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(code)
	} else {
		err = serviceutils.ResponseError(c, code, msg, nil)
	}
	if err != nil {
		logger.ErrorLog(c.Request().Context(), "failed to write error response: %v", err)
	}
}
