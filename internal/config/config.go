package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
}

type Mongo struct {
	URI      string        `yaml:"MONGO_URI" env:"MONGO_URI" env-default:"mongodb://localhost:27017"`
	Database string        `yaml:"MONGO_DATABASE" env:"MONGO_DATABASE" env-required:"true"`
	Timeout  time.Duration `yaml:"MONGO_TIMEOUT" env:"MONGO_TIMEOUT" env-default:"5s"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:""`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD" env-default:""`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type CacheConfig struct {
	Enabled    bool          `yaml:"CACHE_ENABLED" env:"CACHE_ENABLED" env-default:"true"`
	DefaultTTL time.Duration `yaml:"CACHE_DEFAULT_TTL" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

type Storage struct {
	Endpoint  string `yaml:"STORAGE_ENDPOINT" env:"STORAGE_ENDPOINT" env-default:"localhost:4566"`
	AccessKey string `yaml:"STORAGE_ACCESS_KEY" env:"STORAGE_ACCESS_KEY" env-default:"test"`
	SecretKey string `yaml:"STORAGE_SECRET_KEY" env:"STORAGE_SECRET_KEY" env-default:"test"`
	Bucket    string `yaml:"STORAGE_BUCKET" env:"STORAGE_BUCKET" env-default:"ecommerce-bucket"`
	Region    string `yaml:"STORAGE_REGION" env:"STORAGE_REGION" env-default:"us-east-1"`
	UseSSL    bool   `yaml:"STORAGE_USE_SSL" env:"STORAGE_USE_SSL" env-default:"false"`
	PublicURL string `yaml:"STORAGE_PUBLIC_URL" env:"STORAGE_PUBLIC_URL" env-default:"http://localhost:4566"`
}

type Report struct {
	Addr          string        `yaml:"REPORT_ADDRESS" env:"REPORT_ADDRESS" env-default:":8090"`
	DefaultWindow time.Duration `yaml:"REPORT_DEFAULT_WINDOW" env:"REPORT_DEFAULT_WINDOW" env-default:"720h"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	Mongo        Mongo        `yaml:"mongo"`
	RedisConnect RedisConnect `yaml:"redis"`
	Cache        CacheConfig  `yaml:"cache"`
	Storage      Storage      `yaml:"storage"`
	Report       Report       `yaml:"report"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "gets the config flag value")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			log.Fatal("Config path is not set")
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg
}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d", r.Username, r.Password, r.Host, r.Port, r.DB)
}
