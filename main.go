package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rmejia/unified-portfolio-backend/api"
	"github.com/rmejia/unified-portfolio-backend/config"
	"github.com/rmejia/unified-portfolio-backend/database"
	"github.com/rmejia/unified-portfolio-backend/services"
)

func main() {
	fmt.Println("Initializing app...")

	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Warning: Error loading .env file: %v\n", err)
	}

	c := config.New()
	ctx := context.Background()

	backend, err := newBackend(ctx, c)
	if err != nil {
		fmt.Printf("Error initializing storage backend: %v\n", err)
		os.Exit(1)
	}

	notifier := services.NewPublishNotifier(
		config.GetStrings(c, "PUBLISH_WEBHOOKS"),
		config.GetString(c, "BASE_URL", ""),
	)

	store, err := services.NewProjectStore(ctx, backend, notifier)
	if err != nil {
		fmt.Printf("Error loading project store: %v\n", err)
		os.Exit(1)
	}

	media, err := newMediaService(ctx, c)
	if err != nil {
		fmt.Printf("Error initializing media service: %v\n", err)
		os.Exit(1)
	}

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(store, media)
	if err != nil {
		fmt.Printf("Error initializing server: %v\n", err)
		os.Exit(1)
	}

	go server.Start(errChannel)

	// Listen for interrupt signals to gracefully shutdown the server
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	fmt.Printf("Closing server: %v\n", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// newBackend selects the persistence backend from DB_TYPE
func newBackend(ctx context.Context, c map[string]string) (database.Backend, error) {
	dbType := config.GetString(c, "DB_TYPE", "sqlite")
	fmt.Printf("DB_TYPE: %s\n", dbType)

	switch dbType {
	case "postgres":
		connStr := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			config.GetString(c, "DB_HOST", "localhost"),
			config.GetString(c, "DB_USER", "postgres"),
			config.GetString(c, "DB_PASSWORD", ""),
			config.GetString(c, "DB_NAME", "portfolio"),
			config.GetString(c, "DB_PORT", "5432"),
			config.GetString(c, "DB_SSLMODE", "disable"),
		)
		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  connStr,
			PreferSimpleProtocol: true,
		}), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		return database.NewGormBackend(db)

	case "sqlite":
		path := config.GetString(c, "SQLITE_PATH", "portfolio.db")
		db, err := gorm.Open(sqlite.Open(path), gormConfig())
		if err != nil {
			return nil, fmt.Errorf("opening sqlite database: %w", err)
		}
		return database.NewGormBackend(db)

	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     config.GetString(c, "REDIS_ADDR", "localhost:6379"),
			Password: config.GetString(c, "REDIS_PASSWORD", ""),
			DB:       config.GetInt(c, "REDIS_DB", 0),
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("pinging redis: %w", err)
		}
		return database.NewRedisBackend(client, config.GetString(c, "REDIS_KEY", "")), nil

	case "memory":
		return database.NewMemoryBackend(), nil

	default:
		return nil, fmt.Errorf("unsupported DB_TYPE %q", dbType)
	}
}

// newMediaService picks the media resolver: S3 when a bucket is configured,
// otherwise a static resolver that knows no assets
func newMediaService(ctx context.Context, c map[string]string) (services.MediaService, error) {
	bucket := config.GetString(c, "S3_MEDIA_BUCKET", "")
	if bucket == "" {
		return services.NewStaticMediaService(nil), nil
	}
	return services.NewS3MediaService(ctx,
		config.GetString(c, "S3_REGION", "us-east-1"),
		bucket,
		config.GetString(c, "MEDIA_BASE_URL", ""),
	)
}

func gormConfig() *gorm.Config {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             10 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)
	return &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	}
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
