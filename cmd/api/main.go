package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/portal-beneficiarios/internal/application/analytics"
	"github.com/jhoicas/portal-beneficiarios/internal/application/auth"
	"github.com/jhoicas/portal-beneficiarios/internal/application/authevents"
	"github.com/jhoicas/portal-beneficiarios/internal/application/login"
	"github.com/jhoicas/portal-beneficiarios/internal/application/usecase"
	"github.com/jhoicas/portal-beneficiarios/internal/infrastructure/metrics"
	"github.com/jhoicas/portal-beneficiarios/internal/infrastructure/notify"
	"github.com/jhoicas/portal-beneficiarios/internal/infrastructure/postgres"
	"github.com/jhoicas/portal-beneficiarios/internal/infrastructure/scheduler"
	httpRouter "github.com/jhoicas/portal-beneficiarios/internal/interfaces/http"
	"github.com/jhoicas/portal-beneficiarios/pkg/config"
	"github.com/jhoicas/portal-beneficiarios/pkg/i18n"
	"github.com/jhoicas/portal-beneficiarios/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	i18n.SetDefault(cfg.App.Language)

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("language", cfg.App.Language).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	userRepo := postgres.NewUserRepository(pool)
	memberRepo := postgres.NewMemberRepository(pool)
	branchRepo := postgres.NewBranchRepository(pool)
	serviceRepo := postgres.NewServiceRepository(pool)
	otpRepo := postgres.NewOTPSessionRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool, time.Duration(cfg.DB.QueryTimeoutS)*time.Second)
	txRunner := postgres.NewTxRunner(pool)

	m := metrics.New()

	// Flujos de inicio de sesión
	identity := auth.NewIdentityService(userRepo, otpRepo,
		notify.NewLogSender(log, cfg.App.IsDev()),
		auth.OTPConfig{
			Length:      cfg.OTP.Length,
			TTL:         time.Duration(cfg.OTP.TTLMinutes) * time.Minute,
			MaxAttempts: cfg.OTP.MaxAttempts,
		},
		log.Component("identity"),
	)
	bus := authevents.NewBus(8, log.Component("authevents"))
	bus.Observe(m.ObserveFlowEvent)
	flows := login.NewFlowService(login.Deps{
		Identity:    identity,
		Credentials: auth.NewAdminAuthenticator(userRepo),
		Registrar:   auth.NewBeneficiaryRegistrar(userRepo, memberRepo, log.Component("registrar")).WithTx(txRunner),
		Issuer: auth.NewSessionIssuer(auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		}),
		Bus:    bus,
		Store:  login.NewStore(time.Duration(cfg.Flow.TTLMinutes) * time.Minute),
		Logger: log.Component("login"),
	})

	dashboardUC := analytics.NewDashboardUseCase(userRepo, statsRepo, m, log.Component("stats"))
	serviceUC := usecase.NewServiceUseCase(serviceRepo)
	branchUC := usecase.NewBranchUseCase(branchRepo, userRepo)
	userUC := usecase.NewUserUseCase(userRepo)
	profileUC := usecase.NewProfileUseCase(memberRepo)

	// Limpieza periódica de flujos y sesiones OTP vencidas
	sched := scheduler.New(log)
	for _, job := range []scheduler.Job{
		scheduler.PurgeFlowsJob(cfg.Flow.CleanupSpec, flows, log),
		scheduler.PurgeOTPSessionsJob(cfg.OTP.CleanupSpec, identity, log),
	} {
		if err := sched.Add(job); err != nil {
			log.Fatal().Err(err).Str("job", job.Name).Msg("registrar job")
		}
	}
	sched.Start()

	app := fiber.New(fiber.Config{
		AppName:     cfg.App.Name,
		ReadTimeout: time.Second * 10,
		// Sin WriteTimeout: el stream SSE de los flujos queda abierto hasta la sesión.
		IdleTimeout: time.Second * 60,
	})
	httpRouter.Setup(app, httpRouter.MiddlewareConfig{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		Logger:       log,
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Portal de Beneficiarios API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	if cfg.Metrics.Enabled {
		app.Get(cfg.Metrics.Path, adaptor.HTTPHandler(m.Handler()))
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Flows:         flows,
		DashboardUC:   dashboardUC,
		ServiceUC:     serviceUC,
		BranchUC:      branchUC,
		UserUC:        userUC,
		ProfileUC:     profileUC,
		JWTSecret:     cfg.JWT.Secret,
		AuthRateLimit: cfg.HTTP.AuthRateLimit,
		Logger:        log,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := sched.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("detener scheduler")
	}
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
