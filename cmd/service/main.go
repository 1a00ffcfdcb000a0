// @title        LabDIC Inventory API
// @version      1.0
// @description  Inventory and loan management backend for the LabDIC laboratory
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"labdic-inventory/internal/cache"
	"labdic-inventory/internal/database"
	"labdic-inventory/internal/router"
	"labdic-inventory/internal/service"
	"labdic-inventory/internal/worker"

	_ "labdic-inventory/docs"
)

// CustomValidator wraps go-playground/validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate calls the underlying validator.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// Indirections for tests.
var (
	newPgxPool      = database.NewPgxPool
	newRedisClient  = cache.NewRedisClient
	runMigrationsFn = database.RunMigrations
	newWorkerPool   = worker.NewPool
	startServer     = func(e *echo.Echo, addr string) error { return e.Start(addr) }
	exitFunc        = log.Fatalf
)

type config struct {
	DatabaseURL     string
	RedisAddr       string
	RedisDB         int
	RedisPassword   string
	JWTSecret       string
	TokenTTL        time.Duration
	ReconcilePolicy service.ReconcilePolicy
	WorkerCount     int
	HTTPAddr        string
}

func loadConfig() (config, error) {
	// A .env file is optional; real deployments set the environment.
	_ = godotenv.Load()

	cfg := config{
		TokenTTL:    time.Hour,
		WorkerCount: 4,
		HTTPAddr:    ":8080",
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL not set")
	}
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	if cfg.RedisAddr == "" {
		return cfg, fmt.Errorf("REDIS_ADDR not set")
	}
	if s := os.Getenv("REDIS_DB"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return cfg, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = n
	}
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET not set")
	}
	if s := os.Getenv("TOKEN_TTL"); s != "" {
		ttl, err := time.ParseDuration(s)
		if err != nil {
			return cfg, fmt.Errorf("invalid TOKEN_TTL: %w", err)
		}
		cfg.TokenTTL = ttl
	}

	policy, err := service.ParseReconcilePolicy(os.Getenv("ROLE_RECONCILE_POLICY"))
	if err != nil {
		return cfg, err
	}
	cfg.ReconcilePolicy = policy

	if s := os.Getenv("WORKER_COUNT"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return cfg, fmt.Errorf("invalid WORKER_COUNT: %w", err)
		}
		cfg.WorkerCount = n
	}
	if s := os.Getenv("HTTP_ADDR"); s != "" {
		cfg.HTTPAddr = s
	}
	return cfg, nil
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if err := runMigrationsFn(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	db, err := newPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	rdb, err := newRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Printf("closing redis: %v", err)
		}
	}()

	wp := newWorkerPool(cfg.WorkerCount)
	defer wp.Stop()

	tokens := &service.Tokens{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.TokenTTL,
		Cache:  rdb,
	}
	accounts := &service.Accounts{
		Hasher: service.NewBcryptHasher(),
		Roles:  service.RoleReconciler{Policy: cfg.ReconcilePolicy},
		Tokens: tokens,
	}

	e := echo.New()
	e.Validator = &CustomValidator{validator: validator.New()}
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	router.Setup(e, db, rdb, wp, tokens, accounts)

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return startServer(e, cfg.HTTPAddr)
}

func main() {
	if err := run(); err != nil {
		exitFunc("service: %v", err)
	}
}
