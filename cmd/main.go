package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/sbilibin2017/clima-dashboard/internal/facades"
	"github.com/sbilibin2017/clima-dashboard/internal/handlers"
	"github.com/sbilibin2017/clima-dashboard/internal/jwt"
	"github.com/sbilibin2017/clima-dashboard/internal/logger"
	"github.com/sbilibin2017/clima-dashboard/internal/middlewares"
	"github.com/sbilibin2017/clima-dashboard/internal/repositories"
	"github.com/sbilibin2017/clima-dashboard/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// config holds every setting read from the environment.
type config struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	JWTSecretKey     string
	ResetTokenTTL    time.Duration
	ResetPasswordURL string
	SessionTTL       time.Duration

	SendGridAPIKey string
	MailFrom       string
	MailFromName   string

	CORSAllowedOrigins []string
	OpenMeteoURL       string
	NominatimURL       string
}

// @title clima-dashboard API
// @version 1.0.0
// @description Backend of the weather dashboard: accounts, password reset, products and forecasts
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s\nCommit: %s\nBuild: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, database, Redis, token, mail and upstream API configuration.
func parseConfig(path string) (cfg config, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string) (int, error) {
		v, err := strconv.Atoi(getEnv(key, defaultValue))
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", getEnv("PORT", "8080"))
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	if cfg.PGPort, err = getInt("POSTGRES_PORT", "5432"); err != nil {
		return
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", "16"); err != nil {
		return
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", "8"); err != nil {
		return
	}

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisPort, err = getInt("REDIS_PORT", "6379"); err != nil {
		return
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", "0"); err != nil {
		return
	}
	if cfg.RedisPoolSize, err = getInt("REDIS_POOL_SIZE", "10"); err != nil {
		return
	}
	if cfg.RedisMinIdleConns, err = getInt("REDIS_MIN_IDLE_CONNS", "2"); err != nil {
		return
	}

	// Tokens and sessions
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	resetTTL, err := getInt("RESET_TOKEN_TTL_SECOND", "900")
	if err != nil {
		return
	}
	cfg.ResetTokenTTL = time.Duration(resetTTL) * time.Second
	sessionTTL, err := getInt("SESSION_TTL_SECOND", "604800")
	if err != nil {
		return
	}
	cfg.SessionTTL = time.Duration(sessionTTL) * time.Second

	// Mail
	cfg.ResetPasswordURL = getEnv("RESET_PASSWORD_URL", "http://localhost:5173/changepassword")
	cfg.SendGridAPIKey = getEnv("SENDGRID_API_KEY", "")
	cfg.MailFrom = getEnv("MAIL_FROM", "no-reply@clima.local")
	cfg.MailFromName = getEnv("MAIL_FROM_NAME", "Clima")

	// HTTP
	for _, origin := range strings.Split(getEnv("CORS_ALLOWED_ORIGINS",
		"https://front-clima-latest.onrender.com,http://localhost:5173"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}
	cfg.OpenMeteoURL = getEnv("OPEN_METEO_URL", facades.DefaultOpenMeteoURL)
	cfg.NominatimURL = getEnv("NOMINATIM_URL", facades.DefaultNominatimURL)

	return
}

// routeHandlers groups the endpoint handlers mounted by newRouter.
type routeHandlers struct {
	register      http.HandlerFunc
	login         http.HandlerFunc
	checkEmail    http.HandlerFunc
	resetRequest  http.HandlerFunc
	resetLink     http.HandlerFunc
	resetPassword http.HandlerFunc
	updateProfile http.HandlerFunc
	addProduct    http.HandlerFunc
	forecast      http.HandlerFunc
}

// newRouter mounts all routes. auth guards the profile update; tx wraps the
// routes that write through the transactional repository.
func newRouter(cfg config, h routeHandlers, auth, tx func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api/users", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
		r.Post("/checkEmail", h.checkEmail)
		r.Post("/reques", h.resetRequest)
		r.Get("/link", h.resetLink)
		r.With(tx).Post("/resetPassword", h.resetPassword)
		r.With(auth, tx).Put("/update", h.updateProfile)
	})
	r.Post("/api/products", h.addProduct)
	r.Get("/api/forecast", h.forecast)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
	))

	return r
}

// run initializes the logger, database, Redis, collaborators and HTTP server.
// It blocks until ctx is done or a shutdown signal arrives.
func run(ctx context.Context, cfg config) error {
	// Initialize logger
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.PGHost, "port", cfg.PGPort, "db", cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Initialize reset token issuer
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(cfg.ResetTokenTTL),
	)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db, middlewares.GetTxFromContext)
	productRepo := repositories.NewProductWriteRepository(db)
	sessionRepo := repositories.NewSessionRepository(rdb)

	// Initialize facades
	if cfg.SendGridAPIKey == "" {
		logger.Log.Warn("SENDGRID_API_KEY is empty, reset emails will only be logged")
	}
	mailer := facades.NewSendGridMailer(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName)
	httpClient := &http.Client{Timeout: 15 * time.Second}
	weather := facades.NewOpenMeteoFacade(httpClient, cfg.OpenMeteoURL)
	geocoder := facades.NewNominatimFacade(httpClient, cfg.NominatimURL)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokens, sessionRepo, mailer, services.AuthConfig{
		ResetURL:   cfg.ResetPasswordURL,
		SessionTTL: cfg.SessionTTL,
	})
	profileService := services.NewProfileService(userWriteRepo)
	productService := services.NewProductService(productRepo)
	forecastService := services.NewForecastService(geocoder, weather)

	// Initialize handlers and router
	router := newRouter(cfg, routeHandlers{
		register:      handlers.NewRegisterHandler(authService),
		login:         handlers.NewLoginHandler(authService),
		checkEmail:    handlers.NewCheckEmailHandler(authService),
		resetRequest:  handlers.NewResetRequestHandler(authService),
		resetLink:     handlers.NewResetLinkHandler(authService),
		resetPassword: handlers.NewResetPasswordHandler(authService),
		updateProfile: handlers.NewUpdateProfileHandler(profileService),
		addProduct:    handlers.NewAddProductHandler(productService),
		forecast:      handlers.NewForecastHandler(forecastService),
	}, middlewares.AuthMiddleware(sessionRepo), middlewares.TxMiddleware(db))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler: router,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
