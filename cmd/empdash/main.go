package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/auth"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/employee"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/application/ports"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/config"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/domain"
	infraauth "github.com/AbhishekReddys07/EmployeeDashboard/internal/infrastructure/auth"
	httprouter "github.com/AbhishekReddys07/EmployeeDashboard/internal/infrastructure/http"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/infrastructure/http/handlers"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/infrastructure/http/middleware"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/infrastructure/lockout"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/infrastructure/persistence/postgres"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/infrastructure/queue"
	"github.com/AbhishekReddys07/EmployeeDashboard/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		opt, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("parse REDIS_URL")
		}
		redisClient = redis.NewClient(opt)
		defer redisClient.Close()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("redis ping failed; continuing without redis")
			redisClient = nil
		}
	}

	healthHandler := handlers.NewHealthHandler(pool, redisClient)

	repo := postgres.NewEmployeeRepository(pool)

	var notifier ports.Notifier
	var asynqWorker *queue.Worker
	if redisClient != nil {
		redisOpt, _ := redis.ParseURL(cfg.Redis.URL)
		asynqOpt := asynq.RedisClientOpt{Addr: redisOpt.Addr, Password: redisOpt.Password, DB: redisOpt.DB}
		asynqNotifier := queue.NewAsynqNotifier(asynqOpt, log)
		defer asynqNotifier.Close()
		notifier = asynqNotifier
		asynqWorker = queue.NewWorker(asynqOpt, log)
		go func() {
			if err := asynqWorker.Run(); err != nil {
				log.Warn().Err(err).Msg("asynq worker stopped")
			}
		}()
	} else {
		notifier = queue.NewNoopNotifier()
	}

	hasher := security.NewArgon2Hasher(security.Argon2Params{
		Memory:      cfg.Argon2.Memory,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  16,
		KeyLength:   32,
	})
	gen := security.NewGenerator()
	issuer := infraauth.NewTokenIssuer([]byte(cfg.JWT.Secret), cfg.JWT.Issuer, cfg.JWT.ExpiryMinutes)

	stepUpRoles := make([]domain.Role, 0, len(cfg.OTP.StepUpRoles))
	for _, r := range cfg.OTP.StepUpRoles {
		role := domain.Role(r)
		if !role.Valid() {
			log.Fatal().Str("role", r).Msg("invalid OTP_STEP_UP_ROLES entry")
		}
		stepUpRoles = append(stepUpRoles, role)
	}
	stepUp := auth.NewStepUp(repo, gen, notifier, log, cfg.OTP.ExpiryMinutes, stepUpRoles)

	var lockoutStore ports.LoginLockoutStore
	if cfg.Lockout.MaxAttempts > 0 {
		lockoutStore = lockout.NewMemoryStore(cfg.Lockout.MaxAttempts, int(cfg.Lockout.CooldownSeconds))
	}

	loginUC := auth.NewLogin(repo, hasher, issuer, stepUp, lockoutStore)
	requestOTPUC := auth.NewRequestOTP(repo, stepUp)
	resetPasswordUC := auth.NewResetPassword(repo, hasher, stepUp)

	createUC := employee.NewCreate(repo, hasher, gen, notifier, log)
	directoryUC := employee.NewDirectory(repo)
	updateUC := employee.NewUpdate(repo)
	setStatusUC := employee.NewSetStatus(repo)
	deactivateUC := employee.NewDeactivate(repo)

	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}
	authLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerAuth)
	if err != nil {
		log.Fatal().Err(err).Msg("create auth rate limiter")
	}
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(cfg.Secure.IsDevelopment))

	authHandler := handlers.NewAuthHandler(loginUC, requestOTPUC, resetPasswordUC, log)
	employeesHandler := handlers.NewEmployeesHandler(createUC, directoryUC, updateUC, setStatusUC, deactivateUC, log)
	requireJWT := middleware.NewAuthValidator(issuer, repo).Handler
	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:      authHandler,
		EmployeesHandler: employeesHandler,
		HealthHandler:    healthHandler,
		RequireJWT:       requireJWT,
		Log:              log,
		Secure:           secureMiddleware,
		IPRateLimit:      ipLimit,
		AuthRateLimit:    authLimit,
		Metrics:          true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	if asynqWorker != nil {
		asynqWorker.Shutdown()
	}
	log.Info().Msg("server stopped")
}
