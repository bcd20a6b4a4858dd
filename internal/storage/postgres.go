package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/JoeAtk/GymPT/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVRecord is one named record in the kv_records table.
type KVRecord struct {
	Name  string `gorm:"primaryKey"`
	Value string
}

// TableName keeps the table name stable.
func (KVRecord) TableName() string {
	return "kv_records"
}

// PostgresKV stores records in a single-table Postgres schema via GORM.
type PostgresKV struct {
	db *gorm.DB
}

// NewPostgresKV connects to Postgres and migrates the schema.
func NewPostgresKV(cfg config.DBConfig) (*PostgresKV, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&KVRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &PostgresKV{db: db}, nil
}

func (p *PostgresKV) Get(ctx context.Context, key string) (string, bool, error) {
	var rec KVRecord
	err := p.db.WithContext(ctx).First(&rec, "name = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return rec.Value, true, nil
}

func (p *PostgresKV) Set(ctx context.Context, key, value string) error {
	rec := KVRecord{Name: key, Value: value}
	return p.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&rec).Error
}

func (p *PostgresKV) Remove(ctx context.Context, key string) error {
	return p.db.WithContext(ctx).Delete(&KVRecord{}, "name = ?", key).Error
}

func (p *PostgresKV) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
