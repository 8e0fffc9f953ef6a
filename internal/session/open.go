package session

import (
	"context"
	"fmt"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/config"
)

// OpenStorage builds the driver selected by session.driver. The returned
// cleanup closes whatever connection was opened.
func OpenStorage(ctx context.Context, cfg config.Config) (Storage, func(), error) {
	switch cfg.Session.Driver {
	case "db":
		db, err := OpenDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return NewGormStorage(db), func() { _ = sqlDB.Close() }, nil

	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("redis ping: %w", err)
		}
		return NewRedisStorage(rdb, cfg.Redis.Prefix), func() { _ = rdb.Close() }, nil

	case "memory":
		return NewMemoryStorage(), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown session driver %q", cfg.Session.Driver)
}

// OpenDB opens the MySQL pool used by the db driver and the table tool.
func OpenDB(cfg config.Config) (*gorm.DB, error) {
	dsn, err := normalizeDSN(cfg.MySQL.DSN)
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.MySQL.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	}
	if cfg.MySQL.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	}
	if cfg.MySQL.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)
	}
	return db, nil
}

// normalizeDSN forces parseTime and UTC so expires_at compares correctly
// whatever the operator wrote in the DSN.
func normalizeDSN(dsn string) (string, error) {
	c, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	c.ParseTime = true
	c.Loc = time.UTC
	return c.FormatDSN(), nil
}
