package database

import (
	"fmt"
	"log"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"project/config"
)

// Connect opens the MySQL connection for the mysql store backend, with pooling
// and a short ping retry so the app survives the database coming up after it.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	mc := mysqldriver.NewConfig()
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%s", cfg.DBHost, cfg.DBPort)
	mc.User = cfg.DBUser
	mc.Passwd = cfg.DBPass
	mc.DBName = cfg.DBName
	mc.ParseTime = true
	mc.Loc = time.Local
	if cfg.DBParams != "" {
		mc.Params = map[string]string{}
		for _, pair := range strings.Split(cfg.DBParams, "&") {
			if k, v, ok := strings.Cut(pair, "="); ok && k != "" {
				mc.Params[k] = v
			}
		}
	}

	logLevel := logger.Warn
	if cfg.Env == "development" {
		logLevel = logger.Info
	}
	db, err := gorm.Open(gormmysql.Open(mc.FormatDSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	for attempt := 1; attempt <= 5; attempt++ {
		if err = sqlDB.Ping(); err == nil {
			return db, nil
		}
		log.Printf("database ping failed (attempt %d/5): %v", attempt, err)
		time.Sleep(time.Duration(attempt) * time.Second)
	}
	return nil, err
}
