package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/phenrril/cotizador/internal/domain"
)

// ConfigUC maneja proyectos y datos de referencia por grupo de cliente.
type ConfigUC struct {
	Config   domain.ConfigRepo
	Projects domain.ProjectRepo
}

func (uc *ConfigUC) CreateProject(ctx context.Context, p *domain.Project, actor string) error {
	if p.Name == "" {
		return errors.New("el proyecto necesita un nombre")
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	p.CreatedBy = actor
	p.Active = true
	return uc.Projects.Save(ctx, p)
}

func (uc *ConfigUC) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return uc.Projects.List(ctx)
}

func (uc *ConfigUC) GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	return uc.Projects.FindByID(ctx, id)
}

func (uc *ConfigUC) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return uc.Projects.Delete(ctx, id)
}

func (uc *ConfigUC) SaveGroup(ctx context.Context, g *domain.CustomerGroup, actor string) error {
	if g.Name == "" || g.Value == "" {
		return errors.New("el grupo necesita nombre y código")
	}
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
		g.CreatedBy = actor
		g.Active = true
	}
	return uc.Config.SaveGroup(ctx, g)
}

func (uc *ConfigUC) ListGroups(ctx context.Context) ([]domain.CustomerGroup, error) {
	return uc.Config.ListGroups(ctx)
}

// DeleteGroup falla con ErrGroupInUse cuando quedan cotizaciones o datos de
// referencia colgando del grupo.
func (uc *ConfigUC) DeleteGroup(ctx context.Context, id uuid.UUID) error {
	return uc.Config.DeleteGroup(ctx, id)
}

func (uc *ConfigUC) SaveMaterialType(ctx context.Context, t *domain.MaterialType, actor string) error {
	if t.Name == "" {
		return errors.New("el tipo de material necesita nombre")
	}
	if err := uc.groupExists(ctx, t.CustomerGroupID); err != nil {
		return err
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
		t.CreatedBy = actor
		t.Active = true
	}
	return uc.Config.SaveMaterialType(ctx, t)
}

func (uc *ConfigUC) ListMaterialTypes(ctx context.Context, groupID uuid.UUID) ([]domain.MaterialType, error) {
	return uc.Config.ListMaterialTypes(ctx, groupID)
}

func (uc *ConfigUC) DeleteMaterialType(ctx context.Context, id uuid.UUID) error {
	return uc.Config.DeleteMaterialType(ctx, id)
}

func (uc *ConfigUC) SaveMachineType(ctx context.Context, t *domain.MouldingMachineType, actor string) error {
	if t.Name == "" {
		return errors.New("el tipo de máquina necesita nombre")
	}
	if err := uc.groupExists(ctx, t.CustomerGroupID); err != nil {
		return err
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
		t.CreatedBy = actor
		t.Active = true
	}
	return uc.Config.SaveMachineType(ctx, t)
}

func (uc *ConfigUC) ListMachineTypes(ctx context.Context, groupID uuid.UUID) ([]domain.MouldingMachineType, error) {
	return uc.Config.ListMachineTypes(ctx, groupID)
}

func (uc *ConfigUC) DeleteMachineType(ctx context.Context, id uuid.UUID) error {
	return uc.Config.DeleteMachineType(ctx, id)
}

func (uc *ConfigUC) SaveAssemblyType(ctx context.Context, t *domain.AssemblyType, actor string) error {
	if err := uc.groupExists(ctx, t.CustomerGroupID); err != nil {
		return err
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
		t.CreatedBy = actor
		t.Active = true
	}
	return uc.Config.SaveAssemblyType(ctx, t)
}

func (uc *ConfigUC) ListAssemblyTypes(ctx context.Context, groupID uuid.UUID) ([]domain.AssemblyType, error) {
	return uc.Config.ListAssemblyTypes(ctx, groupID)
}

func (uc *ConfigUC) DeleteAssemblyType(ctx context.Context, id uuid.UUID) error {
	return uc.Config.DeleteAssemblyType(ctx, id)
}

func (uc *ConfigUC) SavePackagingType(ctx context.Context, t *domain.PackagingType, actor string) error {
	if err := uc.groupExists(ctx, t.CustomerGroupID); err != nil {
		return err
	}
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
		t.CreatedBy = actor
		t.Active = true
	}
	return uc.Config.SavePackagingType(ctx, t)
}

func (uc *ConfigUC) ListPackagingTypes(ctx context.Context, groupID uuid.UUID) ([]domain.PackagingType, error) {
	return uc.Config.ListPackagingTypes(ctx, groupID)
}

func (uc *ConfigUC) DeletePackagingType(ctx context.Context, id uuid.UUID) error {
	return uc.Config.DeletePackagingType(ctx, id)
}

func (uc *ConfigUC) groupExists(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return domain.ErrGroupRequired
	}
	_, err := uc.Config.FindGroup(ctx, id)
	return err
}
