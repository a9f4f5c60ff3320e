package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"group-scheduler/core/cache"
	"group-scheduler/core/config"
	"group-scheduler/core/database"
	"group-scheduler/core/logger"
	"group-scheduler/core/middleware"
	"group-scheduler/core/queue"
	"group-scheduler/core/storage"
	"group-scheduler/core/utils"
	"group-scheduler/modules/auth"
	"group-scheduler/modules/calendar"
	"group-scheduler/modules/comment"
	"group-scheduler/modules/event"
	"group-scheduler/modules/group"
	"group-scheduler/modules/notification"
	"group-scheduler/modules/user"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Run boots every dependency, serves the API and the task worker, and blocks
// until SIGINT or SIGTERM.
func Run() error {
	cfg, err := config.Init()
	if err != nil {
		return err
	}
	logger.Init(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer closeQuietly("database", db.Close)

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx); err != nil {
			logger.Error("Server:Run:Migrate", "error", err)
			return err
		}
	}

	redisCache, err := cache.InitRedis(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer closeQuietly("redis", redisCache.Close)

	redisOpt := queue.RedisOpt(cfg.Redis)
	queueClient := queue.NewClient(redisOpt)
	defer closeQuietly("queue", queueClient.Close)
	worker := queue.NewWorker(redisOpt, cfg.Queue.Concurrency)

	e := newEcho(cfg.Server)
	v1 := e.Group("/api/v1")
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	signer := utils.NewTokenSigner(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiry)
	files := storage.NewS3Storage(cfg.Storage)

	userService := user.NewService(db, signer, files)
	authService := auth.NewService(redisCache, signer, userService, cfg.GoogleAPI)
	mw := middleware.NewMiddleware(authService)

	groupService := group.NewService(db, queueClient)
	calendarService := calendar.Init(v1, db, mw, groupService)
	group.Init(v1, mw, groupService, calendarService)
	event.Init(v1, db, redisCache, queueClient, mw, groupService)
	comment.Init(v1, db, queueClient, mw, groupService)
	user.Init(v1, mw, userService)
	auth.Init(v1, mw, authService)
	notification.Init(v1, db, mw, groupService, redisCache, worker)

	if err := worker.Start(); err != nil {
		logger.Error("Server:Run:StartWorker", "error", err)
		return err
	}
	defer worker.Shutdown()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Server:Run:Listening", "addr", addr)
		if err := e.Start(addr); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("Server:Run:Start", "error", err)
			return err
		}
	case <-ctx.Done():
		logger.Info("Server:Run:ShuttingDown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server:Run:Shutdown", "error", err)
		return err
	}
	logger.Info("Server:Run:Stopped")
	return nil
}

func newEcho(cfg config.ServerConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.AllowOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(echomw.BodyLimit(fmt.Sprintf("%dB", storage.MaxUploadSize+1<<20)))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			kv := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
				"request_id", v.RequestID,
			}
			if v.Error != nil {
				logger.Warn("HTTP:Request", append(kv, "error", v.Error)...)
				return nil
			}
			logger.Info("HTTP:Request", kv...)
			return nil
		},
	}))
	return e
}

func closeQuietly(name string, closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.Warn("Server:Close", "resource", name, "error", err)
	}
}
