package config

import "github.com/shopspring/decimal"

type (
	DriverConfig struct {
		PostgresDB PostgresDB
		Redis      Redis
		Logger     Logger
		RabbitMQ   RabbitMQ
		Minio      Minio
	}
	PostgresDB struct {
		Port                     string
		Host                     string
		Username                 string
		Password                 string
		DBName                   string
		SSLMode                  string
		ApplicationName          string
		MaxOpenConns             int
		MaxIdleConns             int
		ConnMaxLifetimeInMinutes int
		ConnectTimeoutInSeconds  int
	}
	Redis struct {
		Host                    string
		Port                    string
		Password                string
		DB                      int
		PoolSize                int
		ConnectTimeoutInSeconds int
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
)

type InternalConfig struct {
	App          App
	JWT          AppJWT
	Minio        AppMinio
	RabbitMQ     AppRabbitMQ
	Consultation AppConsultation
	Realtime     AppRealtime
	Withdrawal   AppWithdrawal
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	BaseUrl                    string
	Timezone                   string
	EndpointPrefix             string
	StorageDriver              string
	MaxRequests                int
	ShutdownTimeoutInSeconds   int
	RequestTimeoutInSeconds    int
	RequestBodyLimitInMegabyte int
}

type AppJWT struct {
	Secret        string
	ExpTimeInHour int
}

type AppMinio struct {
	BucketName                     string
	ConsultationFileMaxSizeInMB    int64
	PreSignedUrlExpiryTimeInMinute int
}

type AppRabbitMQ struct {
	NotificationQueue string
}

type AppConsultation struct {
	// CommissionRate is the platform share of every completed consultation.
	CommissionRate          decimal.Decimal
	ExpiryGraceInMinutes    int
	SweeperCronSpec         string
	SweeperLeaderLockTTLSec int
}

type AppRealtime struct {
	SendTimeoutInSeconds  int
	PongWaitInSeconds     int
	MaxMessageSizeInBytes int64
	MessagesPerSecond     int
	MessageBurst          int
	SendBufferSize        int
}

type AppWithdrawal struct {
	MinimumAmount decimal.Decimal
}
