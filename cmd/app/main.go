package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"pressing/cmd"
	"pressing/internal/adapters/out/postgres"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)
	if err := postgres.MigrateSchema(gormDB); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, logger)
	if err != nil {
		log.Fatalf("Failed to build composition root: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:            goDotEnvVariable("HTTP_PORT"),
		DBHost:              goDotEnvVariable("DB_HOST"),
		DBPort:              goDotEnvVariable("DB_PORT"),
		DBUser:              goDotEnvVariable("DB_USER"),
		DBPassword:          goDotEnvVariable("DB_PASSWORD"),
		DBName:              goDotEnvVariable("DB_NAME"),
		DBSslMode:           goDotEnvVariable("DB_SSLMODE"),
		StripeSecretKey:     goDotEnvVariable("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: goDotEnvVariable("STRIPE_WEBHOOK_SECRET"),
		CheckoutSuccessURL:  goDotEnvVariable("CHECKOUT_SUCCESS_URL"),
		CheckoutCancelURL:   goDotEnvVariable("CHECKOUT_CANCEL_URL"),
		CheckoutCurrency:    goDotEnvVariable("CHECKOUT_CURRENCY"),
		OrderPendingTTL:     parsePendingTTL(goDotEnvVariable("ORDER_PENDING_TTL")),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func parsePendingTTL(raw string) time.Duration {
	ttl, err := time.ParseDuration(raw)
	if err != nil || ttl <= 0 {
		log.Fatalf("ORDER_PENDING_TTL must be a positive duration, got %q", raw)
	}
	return ttl
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	// TranslateError turns driver unique violations into gorm.ErrDuplicatedKey,
	// which the webhook ledger and promo usage repositories depend on.
	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server, err := app.CreateHTTPServer()
	if err != nil {
		log.Fatalf("Failed to create HTTP server: %v", err)
	}
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
