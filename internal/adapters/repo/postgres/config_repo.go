package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phenrril/cotizador/internal/domain"
)

type ConfigRepo struct{ db *gorm.DB }

func NewConfigRepo(db *gorm.DB) *ConfigRepo { return &ConfigRepo{db: db} }

func (r *ConfigRepo) SaveGroup(ctx context.Context, g *domain.CustomerGroup) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *ConfigRepo) FindGroup(ctx context.Context, id uuid.UUID) (*domain.CustomerGroup, error) {
	var g domain.CustomerGroup
	if err := r.db.WithContext(ctx).First(&g, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

func (r *ConfigRepo) ListGroups(ctx context.Context) ([]domain.CustomerGroup, error) {
	var list []domain.CustomerGroup
	if err := r.db.WithContext(ctx).Where("active = ?", true).Order("name asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// DeleteGroup borra el grupo solo si nada lo referencia todavía.
func (r *ConfigRepo) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{
			&domain.Quote{}, &domain.MaterialType{}, &domain.MouldingMachineType{},
			&domain.AssemblyType{}, &domain.PackagingType{},
		} {
			var n int64
			if err := tx.Model(m).Where("customer_group_id = ?", id).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				return domain.ErrGroupInUse
			}
		}
		return tx.Delete(&domain.CustomerGroup{}, "id = ?", id).Error
	})
}

func (r *ConfigRepo) SaveMaterialType(ctx context.Context, t *domain.MaterialType) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *ConfigRepo) FindMaterialType(ctx context.Context, id uuid.UUID) (*domain.MaterialType, error) {
	var t domain.MaterialType
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *ConfigRepo) ListMaterialTypes(ctx context.Context, groupID uuid.UUID) ([]domain.MaterialType, error) {
	var list []domain.MaterialType
	q := r.db.WithContext(ctx).Where("active = ?", true)
	if groupID != uuid.Nil {
		q = q.Where("customer_group_id = ?", groupID)
	}
	if err := q.Order("name asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ConfigRepo) DeleteMaterialType(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.MaterialType{}, "id = ?", id).Error
}

func (r *ConfigRepo) SaveMachineType(ctx context.Context, t *domain.MouldingMachineType) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *ConfigRepo) FindMachineType(ctx context.Context, id uuid.UUID) (*domain.MouldingMachineType, error) {
	var t domain.MouldingMachineType
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *ConfigRepo) ListMachineTypes(ctx context.Context, groupID uuid.UUID) ([]domain.MouldingMachineType, error) {
	var list []domain.MouldingMachineType
	q := r.db.WithContext(ctx).Where("active = ?", true)
	if groupID != uuid.Nil {
		q = q.Where("customer_group_id = ?", groupID)
	}
	if err := q.Order("name asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ConfigRepo) DeleteMachineType(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.MouldingMachineType{}, "id = ?", id).Error
}

func (r *ConfigRepo) SaveAssemblyType(ctx context.Context, t *domain.AssemblyType) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *ConfigRepo) ListAssemblyTypes(ctx context.Context, groupID uuid.UUID) ([]domain.AssemblyType, error) {
	var list []domain.AssemblyType
	q := r.db.WithContext(ctx).Where("active = ?", true)
	if groupID != uuid.Nil {
		q = q.Where("customer_group_id = ?", groupID)
	}
	if err := q.Order("name asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ConfigRepo) DeleteAssemblyType(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.AssemblyType{}, "id = ?", id).Error
}

func (r *ConfigRepo) SavePackagingType(ctx context.Context, t *domain.PackagingType) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *ConfigRepo) ListPackagingTypes(ctx context.Context, groupID uuid.UUID) ([]domain.PackagingType, error) {
	var list []domain.PackagingType
	q := r.db.WithContext(ctx).Where("active = ?", true)
	if groupID != uuid.Nil {
		q = q.Where("customer_group_id = ?", groupID)
	}
	if err := q.Order("name asc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ConfigRepo) DeletePackagingType(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.PackagingType{}, "id = ?", id).Error
}
