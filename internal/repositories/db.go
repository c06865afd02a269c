// Package repositories provides the data access layer: PostgreSQL through
// GORM and a Redis-backed cache for hot reads.
package repositories

import (
	"log"
	"os"
	"time"

	"solifin/internal/config"
	"solifin/internal/models"
	"solifin/internal/repositories/cache"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global database instance used across the application.
var DB *gorm.DB

// CacheService is the global Redis-backed cache.
var CacheService *cache.CacheService

// DBConfig holds database connection pool configuration
type DBConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

var dbConfig = DBConfig{
	MaxIdleConns:    10,
	MaxOpenConns:    100,
	ConnMaxLifetime: time.Hour,
	ConnMaxIdleTime: time.Minute * 30,
}

// InitDB initializes PostgreSQL and Redis, runs migrations and seeds the
// default fee schedule.
func InitDB() error {
	initPostgres()

	redisCfg := &cache.RedisConfig{
		Host:     config.GetEnv("REDIS_HOST", "localhost"),
		Port:     config.GetEnv("REDIS_PORT", "6379"),
		Password: config.GetEnv("REDIS_PASSWORD", ""),
		DB:       config.GetIntEnv("REDIS_DB", 0),
	}
	redisClient := cache.NewRedisClient(redisCfg)
	CacheService = cache.NewCacheService(redisClient, 24*time.Hour)

	err := DB.AutoMigrate(
		&models.User{},
		&models.Wallet{},
		&models.Pack{},
		&models.UserPack{},
		&models.Transaction{},
		&models.TransactionFee{},
	)
	if err != nil {
		return err
	}

	return seedFeeSchedules()
}

func initPostgres() {
	dsn := "host=" + config.GetEnv("DB_HOST", "localhost") +
		" user=" + config.GetEnv("DB_USER", "postgres") +
		" password=" + config.GetEnv("DB_PASSWORD", "postgres") +
		" dbname=" + config.GetEnv("DB_NAME", "solifin") +
		" port=" + config.GetEnv("DB_PORT", "5432") +
		" sslmode=" + config.GetEnv("DB_SSLMODE", "disable")

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("Failed to get database instance:", err)
	}

	sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(dbConfig.ConnMaxIdleTime)

	// Ignore "record not found": lookups treat it as a domain outcome.
	db.Logger = logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	log.Println("PostgreSQL connected & migrations applied")
}

// seedFeeSchedules installs the default fee schedule on an empty table so a
// fresh deployment can quote fees immediately. Back-office tooling owns the
// rows afterwards.
func seedFeeSchedules() error {
	var count int64
	if err := DB.Model(&models.TransactionFee{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []models.TransactionFee{
		{PaymentMethod: models.PaymentMethodCard, IsActive: true, TransferFeePercentage: 5, WithdrawalFeePercentage: 2.5},
		{PaymentMethod: models.PaymentMethodMobileMoney, IsActive: true, TransferFeePercentage: 3, WithdrawalFeePercentage: 2, WithdrawalFeeFixed: 0.5},
		{PaymentMethod: models.PaymentMethodSolifinWallet, IsActive: true, TransferFeePercentage: 0, WithdrawalFeePercentage: 1.5},
	}
	return DB.Create(&defaults).Error
}
