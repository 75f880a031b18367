package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/spigell/hh-gateway/internal/domain"
)

// ApplicationRepository persists the user's response history.
type ApplicationRepository interface {
	Create(ctx context.Context, record *domain.ApplicationRecord) error
	// MarkSent sets sent_at on the record, but only once: a record that was
	// already sent keeps its original timestamp.
	MarkSent(ctx context.Context, id uuid.UUID) error
	ListByUser(ctx context.Context, userID string) ([]*domain.ApplicationRecord, error)
}
