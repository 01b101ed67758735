package config

import (
	"time"

	"github.com/spf13/viper"
)

type AppConf struct {
	Env             string `mapstructure:"env"`
	Port            int    `mapstructure:"port"`
	ShutdownSeconds int    `mapstructure:"shutdown_seconds"`
}

type MongoConf struct {
	URI      string `mapstructure:"uri"`
	Database string `mapstructure:"database"`
}

type S3Conf struct {
	Region            string `mapstructure:"region"`
	Bucket            string `mapstructure:"bucket"`
	Endpoint          string `mapstructure:"endpoint"`
	PublicRead        bool   `mapstructure:"public_read"`
	PresignTTLSeconds int    `mapstructure:"presign_ttl_seconds"`
}

type RedisConf struct {
	Addr              string `mapstructure:"addr"`
	Password          string `mapstructure:"password"`
	DB                int    `mapstructure:"db"`
	RateLimit         int    `mapstructure:"rate_limit"`
	RateWindowSeconds int    `mapstructure:"rate_window_seconds"`
}

type KafkaConf struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

type JWTConf struct {
	Secret   string `mapstructure:"secret"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

type Config struct {
	App   AppConf   `mapstructure:"app"`
	Mongo MongoConf `mapstructure:"mongodb"`
	S3    S3Conf    `mapstructure:"s3"`
	Redis RedisConf `mapstructure:"redis"`
	Kafka KafkaConf `mapstructure:"kafka"`
	JWT   JWTConf   `mapstructure:"jwt"`

	// derived
	ShutdownTimeout time.Duration
	PresignTTL      time.Duration
	TokenTTL        time.Duration
	RateWindow      time.Duration
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.App.ShutdownSeconds == 0 {
		cfg.App.ShutdownSeconds = 15
	}
	if cfg.S3.PresignTTLSeconds == 0 {
		cfg.S3.PresignTTLSeconds = 600
	}
	if cfg.JWT.TTLHours == 0 {
		cfg.JWT.TTLHours = 24
	}
	if cfg.Redis.RateLimit == 0 {
		cfg.Redis.RateLimit = 120
	}
	if cfg.Redis.RateWindowSeconds == 0 {
		cfg.Redis.RateWindowSeconds = 60
	}
	cfg.ShutdownTimeout = time.Duration(cfg.App.ShutdownSeconds) * time.Second
	cfg.PresignTTL = time.Duration(cfg.S3.PresignTTLSeconds) * time.Second
	cfg.TokenTTL = time.Duration(cfg.JWT.TTLHours) * time.Hour
	cfg.RateWindow = time.Duration(cfg.Redis.RateWindowSeconds) * time.Second
	return &cfg, nil
}
