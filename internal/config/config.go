package config

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	Env       string
	DBDialect string
	DBPath    string // sqlite file path
	DBUrl     string // postgres dsn
	RedisAddr string
}

// LoadConfig reads the environment, with a local .env file layered in when
// present. All keys are prefixed with SITEPRESS_.
func LoadConfig() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("sitepress")
	v.AutomaticEnv()

	v.SetDefault("env", "development")
	v.SetDefault("db_dialect", "sqlite")
	v.SetDefault("db_path", "./.tmp/sitepress.db")
	v.SetDefault("db_url", "")
	v.SetDefault("redis_addr", "localhost:6379")

	return &Config{
		Env:       v.GetString("env"),
		DBDialect: v.GetString("db_dialect"),
		DBPath:    v.GetString("db_path"),
		DBUrl:     v.GetString("db_url"),
		RedisAddr: v.GetString("redis_addr"),
	}
}

// GetDb opens the configured database.
func GetDb(cnf *Config) *gorm.DB {
	var (
		db  *gorm.DB
		err error
	)

	switch cnf.DBDialect {
	case "postgres":
		db, err = gorm.Open(postgres.Open(cnf.DBUrl), &gorm.Config{})
	default:
		db, err = gorm.Open(sqlite.Open(cnf.DBPath), &gorm.Config{})
	}
	if err != nil {
		logrus.Fatalf("error connecting to the database: %v", err)
	}

	return db
}
