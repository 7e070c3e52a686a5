package domain

import (
	"context"

	"github.com/google/uuid"
)

type QuoteFilter struct {
	ProjectID uuid.UUID
	Status    QuoteStatus
	Query     string
	Page      int
	PageSize  int
}

// QuoteRepo persiste la cotización y sus hijos. Toda mutación estructural
// (alta/edición/baja de hijo, edición de definición, transición de estado)
// debe grabar el cambio, el salto de versión y la entrada de timeline en una
// sola transacción.
type QuoteRepo interface {
	Create(ctx context.Context, q *Quote, entry *TimelineEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*Quote, error)
	List(ctx context.Context, f QuoteFilter) ([]Quote, int64, error)
	Update(ctx context.Context, q *Quote, entry *TimelineEntry) error
	AddChild(ctx context.Context, q *Quote, child any, entry *TimelineEntry) error
	UpdateChild(ctx context.Context, q *Quote, child any, entry *TimelineEntry) error
	DeleteChild(ctx context.Context, q *Quote, child any, entry *TimelineEntry) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TimelineRepo interface {
	Append(ctx context.Context, e *TimelineEntry) error
	ListByQuote(ctx context.Context, quoteID uuid.UUID) ([]TimelineEntry, error)
}

type ProjectRepo interface {
	Save(ctx context.Context, p *Project) error
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	List(ctx context.Context) ([]Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ConfigRepo maneja los datos de referencia por grupo de cliente. DeleteGroup
// debe fallar con ErrGroupInUse si el grupo sigue referenciado.
type ConfigRepo interface {
	SaveGroup(ctx context.Context, g *CustomerGroup) error
	FindGroup(ctx context.Context, id uuid.UUID) (*CustomerGroup, error)
	ListGroups(ctx context.Context) ([]CustomerGroup, error)
	DeleteGroup(ctx context.Context, id uuid.UUID) error

	SaveMaterialType(ctx context.Context, t *MaterialType) error
	FindMaterialType(ctx context.Context, id uuid.UUID) (*MaterialType, error)
	ListMaterialTypes(ctx context.Context, groupID uuid.UUID) ([]MaterialType, error)
	DeleteMaterialType(ctx context.Context, id uuid.UUID) error

	SaveMachineType(ctx context.Context, t *MouldingMachineType) error
	FindMachineType(ctx context.Context, id uuid.UUID) (*MouldingMachineType, error)
	ListMachineTypes(ctx context.Context, groupID uuid.UUID) ([]MouldingMachineType, error)
	DeleteMachineType(ctx context.Context, id uuid.UUID) error

	SaveAssemblyType(ctx context.Context, t *AssemblyType) error
	ListAssemblyTypes(ctx context.Context, groupID uuid.UUID) ([]AssemblyType, error)
	DeleteAssemblyType(ctx context.Context, id uuid.UUID) error

	SavePackagingType(ctx context.Context, t *PackagingType) error
	ListPackagingTypes(ctx context.Context, groupID uuid.UUID) ([]PackagingType, error)
	DeletePackagingType(ctx context.Context, id uuid.UUID) error
}
