package config

import (
	"log"
	"telemed-service/internal/pkg/utils"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		PostgresDB: PostgresDB{
			Port:     utils.GetEnvString("POSTGRES_PORT", "5432"),
			Host:     utils.GetEnvString("POSTGRES_HOST", "localhost"),
			Username: utils.GetEnvString("POSTGRES_USERNAME", "postgres"),
			Password: utils.GetEnvString("POSTGRES_PASSWORD", "postgres"),
			DBName:   utils.GetEnvString("POSTGRES_DB_NAME", "telemed"),
			SSLMode:  utils.GetEnvString("POSTGRES_SSL_MODE", "disable"),

			ApplicationName:          utils.GetEnvString("POSTGRES_APPLICATION_NAME", "telemed-service"),
			MaxOpenConns:             utils.GetEnvInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:             utils.GetEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeInMinutes: utils.GetEnvInt("POSTGRES_CONN_MAX_LIFETIME_IN_MINUTES", 30),
			ConnectTimeoutInSeconds:  utils.GetEnvInt("POSTGRES_CONNECT_TIMEOUT_IN_SECONDS", 5),
		},
		Redis: Redis{
			Host:                    utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:                    utils.GetEnvString("REDIS_PORT", "6379"),
			Password:                utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:                      utils.GetEnvInt("REDIS_DB", 0),
			PoolSize:                utils.GetEnvInt("REDIS_POOL_SIZE", 10),
			ConnectTimeoutInSeconds: utils.GetEnvInt("REDIS_CONNECT_TIMEOUT_IN_SECONDS", 5),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                        utils.GetEnvString("APP_ENV", "development"),
			Port:                       utils.GetEnvString("APP_PORT", ":8080"),
			Version:                    utils.GetEnvString("APP_VERSION", "v1"),
			Address:                    utils.GetEnvString("APP_ADDRESS", "localhost"),
			BaseUrl:                    utils.GetEnvString("APP_BASE_URL", "http://localhost:8080"),
			Timezone:                   utils.GetEnvString("APP_TIMEZONE", "Asia/Jakarta"),
			EndpointPrefix:             utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			StorageDriver:              utils.GetEnvString("APP_STORAGE_DRIVER", "postgres"),
			MaxRequests:                utils.GetEnvInt("APP_MAX_REQUEST", 20),
			ShutdownTimeoutInSeconds:   utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:    utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 10),
			RequestBodyLimitInMegabyte: utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
		},
		JWT: AppJWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 1),
		},
		Minio: AppMinio{
			BucketName:                     utils.GetEnvString("MINIO_BUCKET_NAME", "consultation-files"),
			ConsultationFileMaxSizeInMB:    utils.GetEnvInt64("APP_MINIO_CONSULTATION_FILE_MAX_SIZE_IN_MB", 10),
			PreSignedUrlExpiryTimeInMinute: utils.GetEnvInt("APP_MINIO_PRE_SIGNED_URL_EXPIRY_TIME_IN_MINUTE", 15),
		},
		RabbitMQ: AppRabbitMQ{
			NotificationQueue: utils.GetEnvString("APP_RABBITMQ_NOTIFICATION_QUEUE", "notifications"),
		},
		Consultation: AppConsultation{
			CommissionRate:          mustParseDecimal("CONSULTATION_COMMISSION_RATE", "0.20"),
			ExpiryGraceInMinutes:    utils.GetEnvInt("CONSULTATION_EXPIRY_GRACE_IN_MINUTES", 30),
			SweeperCronSpec:         utils.GetEnvString("CONSULTATION_SWEEPER_CRON_SPEC", "@every 5m"),
			SweeperLeaderLockTTLSec: utils.GetEnvInt("CONSULTATION_SWEEPER_LEADER_LOCK_TTL_IN_SECONDS", 120),
		},
		Realtime: AppRealtime{
			SendTimeoutInSeconds:  utils.GetEnvInt("REALTIME_SEND_TIMEOUT_IN_SECONDS", 5),
			PongWaitInSeconds:     utils.GetEnvInt("REALTIME_PONG_WAIT_IN_SECONDS", 60),
			MaxMessageSizeInBytes: utils.GetEnvInt64("REALTIME_MAX_MESSAGE_SIZE_IN_BYTES", 64*1024),
			MessagesPerSecond:     utils.GetEnvInt("REALTIME_MESSAGES_PER_SECOND", 50),
			MessageBurst:          utils.GetEnvInt("REALTIME_MESSAGE_BURST", 100),
			SendBufferSize:        utils.GetEnvInt("REALTIME_SEND_BUFFER_SIZE", 256),
		},
		Withdrawal: AppWithdrawal{
			MinimumAmount: mustParseDecimal("WITHDRAWAL_MINIMUM_AMOUNT", "500"),
		},
	}
}

func mustParseDecimal(key, defaultValue string) decimal.Decimal {
	raw := utils.GetEnvString(key, defaultValue)
	value, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}
