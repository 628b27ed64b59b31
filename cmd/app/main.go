package main

import (
	"fmt"
	stdhttp "net/http"
	"os"

	"labos/cmd"
	labhttp "labos/internal/adapters/in/http"
	"labos/internal/adapters/out/postgres/orderrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := newLogger()
	configs := getConfigs(logger)

	level, err := zerolog.ParseLevel(configs.LogLevel)
	if err == nil && configs.LogLevel != "" {
		logger = logger.Level(level)
	}

	gormDB, err := connectDB(configs)
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	deadlineJob := app.CreateUrgentDeadlineJob()
	if err = deadlineJob.Start(); err != nil {
		logger.Fatal().Err(err).Msg("urgent deadline job failed to start")
	}
	defer deadlineJob.Stop()

	startWebServer(&app, configs.HTTPPort, logger)
}

func newLogger() zerolog.Logger {
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}

func getConfigs(logger zerolog.Logger) cmd.Config {
	if err := godotenv.Load(".env"); err != nil {
		logger.Fatal().Err(err).Msg("error loading .env file")
	}

	return cmd.Config{
		HTTPPort:   os.Getenv("HTTP_PORT"),
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		DBSslMode:  os.Getenv("DB_SSLMODE"),
		LogLevel:   os.Getenv("LOG_LEVEL"),
	}
}

func connectDB(configs cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.ExamItemDTO{},
		&orderrepo.ExamResultDTO{},
	); err != nil {
		return nil, err
	}
	return gormDB, nil
}

func startWebServer(app *cmd.CompositionRoot, port string, logger zerolog.Logger) {
	e := echo.New()
	e.HideBanner = true

	e.GET("/health", func(c echo.Context) error {
		return c.String(stdhttp.StatusOK, "Healthy")
	})

	server := labhttp.NewServer(app.CreateHTTPHandlers(), logger)
	server.RegisterRoutes(e)

	if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil {
		logger.Fatal().Err(err).Msg("http server stopped")
	}
}
