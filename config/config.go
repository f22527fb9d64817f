package config

import (
	"os"

	"waterzone/logger"
	"waterzone/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// JWTSecret used to sign tokens — set by Load
var JWTSecret []byte

// Config holds all runtime settings, read from the environment
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	GinMode   string
	LogLevel  string
	LogJSON   bool
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads configuration from .env (if present) and the environment
func Load() Config {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := Config{
		Port:      getEnv("PORT", "8080"),
		DBPath:    getEnv("DB_PATH", "waterzone.db"),
		JWTSecret: getEnv("JWT_SECRET", "waterzone_dev_secret_2024"),
		GinMode:   getEnv("GIN_MODE", ""),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogJSON:   getEnv("LOG_JSON", "") == "true",
	}
	JWTSecret = []byte(cfg.JWTSecret)
	return cfg
}

// InitDB opens the sqlite database and migrates all models
func InitDB(dbPath string) {
	log := logger.WithComponent("config")

	var err error
	DB, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := Migrate(DB); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	log.Info().Str("db_path", dbPath).Msg("database connected and migrated")
}

// Migrate runs auto-migration for all models on the given connection.
// Exposed separately so tests can migrate an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Driver{},
		&models.DriverStatus{},
		&models.Order{},
		&models.WalletAccount{},
		&models.WalletTransaction{},
		&models.Address{},
	)
}
