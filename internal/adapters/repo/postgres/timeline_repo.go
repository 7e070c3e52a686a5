package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phenrril/cotizador/internal/domain"
)

type TimelineRepo struct{ db *gorm.DB }

func NewTimelineRepo(db *gorm.DB) *TimelineRepo { return &TimelineRepo{db: db} }

func (r *TimelineRepo) Append(ctx context.Context, e *domain.TimelineEntry) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *TimelineRepo) ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]domain.TimelineEntry, error) {
	var list []domain.TimelineEntry
	if err := r.db.WithContext(ctx).Where("quote_id = ?", quoteID).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}
