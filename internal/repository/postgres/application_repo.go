package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/spigell/hh-gateway/internal/domain"
	"github.com/spigell/hh-gateway/internal/repository"
	"gorm.io/gorm"
)

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) repository.ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, record *domain.ApplicationRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *applicationRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&domain.ApplicationRecord{}).
		Where("id = ? AND sent_at IS NULL", id).
		Update("sent_at", &now).Error
}

func (r *applicationRepository) ListByUser(ctx context.Context, userID string) ([]*domain.ApplicationRecord, error) {
	var records []*domain.ApplicationRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
