package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"jiji-catalog/models"
	"jiji-catalog/utils"
)

// GormProductStore persists catalog products through GORM.
type GormProductStore struct {
	db *gorm.DB
}

// NewGormProductStore wraps an existing gorm.DB and runs schema migration.
func NewGormProductStore(db *gorm.DB) (*GormProductStore, error) {
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &GormProductStore{db: db}, nil
}

// ConnectPostgres opens a PostgreSQL-backed product store, retrying while
// the database comes up, and runs schema migration.
func ConnectPostgres(dsn string, logger *utils.Logger) (*GormProductStore, error) {
	var db *gorm.DB

	retry := &utils.RetryConfig{MaxAttempts: 5, BaseDelay: 2 * time.Second, Logger: logger}
	err := retry.Do("postgres-connect", func() error {
		var err error
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("store: open postgres: %w", err)
	}

	return NewGormProductStore(db)
}

// FindByExternalID returns the product matching externalID, or nil.
func (s *GormProductStore) FindByExternalID(ctx context.Context, externalID string) (*models.Product, error) {
	var p models.Product
	err := s.db.WithContext(ctx).Where("external_id = ?", externalID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: find by external id: %w", err)
	}
	return &p, nil
}

// FindByTitle returns every product with an exact title match, oldest first.
func (s *GormProductStore) FindByTitle(ctx context.Context, title string) ([]*models.Product, error) {
	var products []*models.Product
	err := s.db.WithContext(ctx).Where("title = ?", title).Order("id").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("store: find by title: %w", err)
	}
	return products, nil
}

// Create inserts a new product.
func (s *GormProductStore) Create(ctx context.Context, p *models.Product) error {
	if err := s.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("store: create: %w", err)
	}
	return nil
}

// Save persists all fields of an already-loaded product.
func (s *GormProductStore) Save(ctx context.Context, p *models.Product) error {
	if err := s.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("store: save: %w", err)
	}
	return nil
}
