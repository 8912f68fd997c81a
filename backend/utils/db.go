package utils

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"learnhub/backend/config"
	"learnhub/backend/models"
)

func InitDB(cfg *config.Config, log *zap.SugaredLogger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: NewGormLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// GormLogger sends gorm's query log through zap.
type GormLogger struct {
	log           *zap.SugaredLogger
	level         gormlogger.LogLevel
	SlowThreshold time.Duration
}

func NewGormLogger(log *zap.SugaredLogger) gormlogger.Interface {
	return &GormLogger{
		log:           log.Named("gorm"),
		level:         gormlogger.Warn,
		SlowThreshold: 200 * time.Millisecond,
	}
}

func (l *GormLogger) LogMode(level gormlogger.LogLevel) gormlogger.Interface {
	clone := *l
	clone.level = level
	return &clone
}

func (l *GormLogger) Info(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Info {
		l.log.Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Warn {
		l.log.Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(_ context.Context, msg string, data ...interface{}) {
	if l.level >= gormlogger.Error {
		l.log.Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.level <= gormlogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.level >= gormlogger.Error:
		sql, rows := fc()
		l.log.Errorw("query failed", "error", err, "elapsed", elapsed, "rows", rows, "sql", sql)
	case elapsed > l.SlowThreshold && l.level >= gormlogger.Warn:
		sql, rows := fc()
		l.log.Warnw("slow query", "elapsed", elapsed, "rows", rows, "sql", sql)
	case l.level >= gormlogger.Info:
		sql, rows := fc()
		l.log.Debugw("query", "elapsed", elapsed, "rows", rows, "sql", sql)
	}
}
