package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/phenrril/cotizador/internal/domain"
)

type QuoteRepo struct{ db *gorm.DB }

func NewQuoteRepo(db *gorm.DB) *QuoteRepo { return &QuoteRepo{db: db} }

func (r *QuoteRepo) Create(ctx context.Context, q *domain.Quote, entry *domain.TimelineEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *QuoteRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Quote, error) {
	var q domain.Quote
	err := r.db.WithContext(ctx).
		Preload("RawMaterials").
		Preload("Machines").
		Preload("Assemblies").
		Preload("Assemblies.RawMaterials").
		Preload("Assemblies.PrintingCosts").
		Preload("Packagings").
		Preload("Transports").
		Preload("Transports.Packaging").
		First(&q, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &q, nil
}

func (r *QuoteRepo) List(ctx context.Context, f domain.QuoteFilter) ([]domain.Quote, int64, error) {
	var list []domain.Quote
	q := r.db.WithContext(ctx).Model(&domain.Quote{})
	if f.ProjectID != uuid.Nil {
		q = q.Where("project_id = ?", f.ProjectID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Query != "" {
		like := "%" + strings.TrimSpace(f.Query) + "%"
		q = q.Where("LOWER(name) LIKE LOWER(?) OR LOWER(client_name) LIKE LOWER(?) OR LOWER(part_number) LIKE LOWER(?)", like, like, like)
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PageSize <= 0 {
		f.PageSize = 20
	}
	offset := (f.Page - 1) * f.PageSize
	if err := q.Order("created_at desc").Offset(offset).Limit(f.PageSize).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// Update graba las columnas propias de la cotización (definición, estado,
// versión) junto con su entrada de timeline. Omite asociaciones a propósito:
// los hijos se mutan de a uno con AddChild/UpdateChild/DeleteChild.
func (r *QuoteRepo) Update(ctx context.Context, q *domain.Quote, entry *domain.TimelineEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(q).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *QuoteRepo) AddChild(ctx context.Context, q *domain.Quote, child any, entry *domain.TimelineEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(q).Error; err != nil {
			return err
		}
		if err := tx.Create(child).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *QuoteRepo) UpdateChild(ctx context.Context, q *domain.Quote, child any, entry *domain.TimelineEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(q).Error; err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Save(child).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *QuoteRepo) DeleteChild(ctx context.Context, q *domain.Quote, child any, entry *domain.TimelineEntry) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(q).Error; err != nil {
			return err
		}
		switch c := child.(type) {
		case *domain.Packaging:
			// Los transportes cuelgan del packaging; se van con él.
			if err := tx.Where("packaging_id = ?", c.ID).Delete(&domain.Transport{}).Error; err != nil {
				return err
			}
		case *domain.Assembly:
			if err := tx.Where("assembly_id = ?", c.ID).Delete(&domain.AssemblyRawMaterial{}).Error; err != nil {
				return err
			}
			if err := tx.Where("assembly_id = ?", c.ID).Delete(&domain.ManufacturingPrintingCost{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(child).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *QuoteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return errors.New("quote id vacío")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&domain.Transport{}, &domain.Packaging{},
			&domain.RawMaterial{}, &domain.MouldingMachineDetail{},
			&domain.TimelineEntry{},
		} {
			if err := tx.Where("quote_id = ?", id).Delete(m).Error; err != nil {
				return err
			}
		}
		var asmIDs []uuid.UUID
		if err := tx.Model(&domain.Assembly{}).Where("quote_id = ?", id).Pluck("id", &asmIDs).Error; err != nil {
			return err
		}
		if len(asmIDs) > 0 {
			if err := tx.Where("assembly_id IN ?", asmIDs).Delete(&domain.AssemblyRawMaterial{}).Error; err != nil {
				return err
			}
			if err := tx.Where("assembly_id IN ?", asmIDs).Delete(&domain.ManufacturingPrintingCost{}).Error; err != nil {
				return err
			}
			if err := tx.Where("quote_id = ?", id).Delete(&domain.Assembly{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&domain.Quote{}, "id = ?", id).Error
	})
}
