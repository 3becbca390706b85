package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr string
	Debug    bool

	MySQLDSN string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	KafkaBrokers []string
	KafkaTopic   string

	AccessSecret  string
	RefreshSecret string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// Load reads .env (if present), then config.yaml, with environment
// variables overriding both. Keys use dots in the file and underscores in
// the environment (e.g. mysql.dsn -> MYSQL_DSN).
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("debug", false)
	v.SetDefault("mysql.dsn", "user:password@tcp(127.0.0.1:3306)/communityhub?charset=utf8mb4&parseTime=True")
	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("kafka.brokers", "")
	v.SetDefault("kafka.topic", "communityhub.audit")
	v.SetDefault("jwt.access_secret", "secret-key")
	v.SetDefault("jwt.refresh_secret", "refresh-key")
	v.SetDefault("jwt.access_ttl", "30m")
	v.SetDefault("jwt.refresh_ttl", "24h")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{
		HTTPAddr:      v.GetString("http.addr"),
		Debug:         v.GetBool("debug"),
		MySQLDSN:      v.GetString("mysql.dsn"),
		RedisAddr:     v.GetString("redis.addr"),
		RedisPassword: v.GetString("redis.password"),
		RedisDB:       v.GetInt("redis.db"),
		KafkaTopic:    v.GetString("kafka.topic"),
		AccessSecret:  v.GetString("jwt.access_secret"),
		RefreshSecret: v.GetString("jwt.refresh_secret"),
		AccessTTL:     v.GetDuration("jwt.access_ttl"),
		RefreshTTL:    v.GetDuration("jwt.refresh_ttl"),
	}
	if brokers := v.GetString("kafka.brokers"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}
	return cfg, nil
}
