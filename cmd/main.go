package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/AnthoniusHendriyanto/course-service/config"
	"github.com/AnthoniusHendriyanto/course-service/db"
	"github.com/AnthoniusHendriyanto/course-service/internal/auth/domain"
	authhandler "github.com/AnthoniusHendriyanto/course-service/internal/auth/handler"
	"github.com/AnthoniusHendriyanto/course-service/internal/auth/middleware"
	authrepo "github.com/AnthoniusHendriyanto/course-service/internal/auth/repository/postgres"
	authservice "github.com/AnthoniusHendriyanto/course-service/internal/auth/service"
	coursehandler "github.com/AnthoniusHendriyanto/course-service/internal/course/handler"
	courserepo "github.com/AnthoniusHendriyanto/course-service/internal/course/repository/postgres"
	courseservice "github.com/AnthoniusHendriyanto/course-service/internal/course/service"
	"github.com/AnthoniusHendriyanto/course-service/internal/course/storage"
	"github.com/AnthoniusHendriyanto/course-service/internal/health"
	"github.com/AnthoniusHendriyanto/course-service/internal/logger"
	"github.com/AnthoniusHendriyanto/course-service/internal/response"
	"github.com/AnthoniusHendriyanto/course-service/pkg/constant"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	dbPool, err := db.NewPostgresPool(ctx, cfg.DBURL)
	if err != nil {
		return err
	}
	defer dbPool.Close()

	if err := db.Migrate(ctx, dbPool); err != nil {
		return err
	}

	tokenService := authservice.NewTokenService(cfg.AdminTokenSecret, cfg.UserTokenSecret, cfg.TokenExpiryMin)
	hasher := authservice.NewPasswordHasher(cfg.BcryptCost)

	adminService := authservice.NewAccountService(domain.PrincipalAdmin, authrepo.NewPostgresRepository(dbPool, domain.PrincipalAdmin), tokenService, hasher)
	userService := authservice.NewAccountService(domain.PrincipalUser, authrepo.NewPostgresRepository(dbPool, domain.PrincipalUser), tokenService, hasher)

	courseRepo := courserepo.NewCourseRepository(dbPool)
	courseService := courseservice.NewCourseService(courseRepo, storage.NewS3ImageStore(cfg.S3), cfg.MaxImageSizeBytes(), log)
	ledger := courseservice.NewPurchaseLedger(courseRepo, courserepo.NewPurchaseRepository(dbPool))

	adminSession := middleware.NewSession(middleware.SessionConfig{
		Class:    domain.PrincipalAdmin,
		Locator:  middleware.BearerHeader(),
		Verifier: tokenService,
		Logger:   log,
	})
	userSession := middleware.NewSession(middleware.SessionConfig{
		Class:    domain.PrincipalUser,
		Locator:  middleware.Cookie(constant.UserCookieName),
		Verifier: tokenService,
		Logger:   log,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler: response.ErrorHandler(log),
		// Leave room for the multipart framing around the largest image.
		BodyLimit: int(cfg.MaxImageSizeBytes()) + 1<<20,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowCredentials: true,
		AllowMethods:     strings.Join([]string{fiber.MethodGet, fiber.MethodPost, fiber.MethodPut, fiber.MethodDelete}, ","),
		AllowHeaders:     "Content-Type,Authorization",
	}))

	app.Get("/health", health.Handler(dbPool, log))

	api := app.Group("/api/v1")
	authhandler.RegisterRoutes(api, authhandler.NewAccountHandler(adminService, authhandler.Options{
		CookieName:    constant.AdminCookieName,
		AcceptBearer:  true,
		SecureCookies: cfg.IsProduction(),
		Logger:        log,
	}))
	authhandler.RegisterRoutes(api, authhandler.NewAccountHandler(userService, authhandler.Options{
		CookieName:    constant.UserCookieName,
		SecureCookies: cfg.IsProduction(),
		Logger:        log,
	}))
	coursehandler.RegisterRoutes(api, coursehandler.NewCourseHandler(courseService, ledger, log), adminSession, userSession)

	listenErr := make(chan error, 1)
	go func() {
		log.Info("server listening", slog.String("port", cfg.Port), slog.String("env", cfg.Env))
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return nil
}
