package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/terraincognita07/flarewatch/internal/activity"
	"github.com/terraincognita07/flarewatch/internal/api"
	"github.com/terraincognita07/flarewatch/internal/cli"
	"github.com/terraincognita07/flarewatch/internal/db"
)

const (
	defaultPort          = "8080"
	defaultActivityTopic = "flarewatch.activity"
	minSecretKeyLength   = 32
)

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

func main() {
	_ = godotenv.Load()

	dbPath := getEnv("DB_PATH", filepath.Join("data", "flarewatch.db"))
	if len(os.Args) > 1 && os.Args[1] == "reset-password" {
		email := ""
		if len(os.Args) > 2 {
			email = os.Args[2]
		}
		if err := cli.RunResetPasswordCommand(dbPath, email); err != nil {
			log.Fatalf("reset-password failed: %v", err)
		}
		return
	}

	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey, err := resolveSecretKey()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	port, err := resolvePort()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	cookieSecure := resolveCookieSecure()

	database, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	tracker, closeTracker := newActivityTracker()
	defer closeTracker()

	handler, err := api.NewHandler(database, secretKey, location, cookieSecure, tracker)
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Flarewatch",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	log.Printf("Flarewatch listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, dbPath, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// newActivityTracker publishes activity events to Kafka when KAFKA_BROKERS is
// set and falls back to the process log otherwise.
func newActivityTracker() (activity.Tracker, func()) {
	brokers := parseBrokers(os.Getenv("KAFKA_BROKERS"))
	if len(brokers) == 0 {
		return activity.LogTracker{}, func() {}
	}

	topic := getEnv("KAFKA_ACTIVITY_TOPIC", defaultActivityTopic)
	tracker := activity.NewKafkaTracker(brokers, topic)
	log.Printf("activity events go to kafka topic %s (%s)", topic, strings.Join(brokers, ","))
	return tracker, func() {
		if err := tracker.Close(); err != nil {
			log.Printf("activity tracker close failed: %v", err)
		}
	}
}

func parseBrokers(raw string) []string {
	brokers := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if broker := strings.TrimSpace(part); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[secret]; insecure {
		return "", errors.New("SECRET_KEY uses an insecure placeholder")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolvePort() (string, error) {
	raw := strings.TrimSpace(getEnv("PORT", defaultPort))
	port, err := strconv.Atoi(raw)
	if err != nil || port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid PORT %q", raw)
	}
	return strconv.Itoa(port), nil
}

func resolveCookieSecure() bool {
	value, err := strconv.ParseBool(strings.TrimSpace(getEnv("COOKIE_SECURE", "false")))
	if err != nil {
		log.Printf("invalid COOKIE_SECURE value, using false")
		return false
	}
	return value
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
