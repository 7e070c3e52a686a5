package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CustomerGroup agrupa la configuración de referencia por cliente. Toda
// cotización referencia exactamente un grupo.
type CustomerGroup struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:100;uniqueIndex;not null"`
	Value       string    `gorm:"size:100;uniqueIndex;not null"`
	Description string    `gorm:"type:text"`
	CreatedBy   string    `gorm:"size:140"`
	Active      bool      `gorm:"default:true;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MaterialType precarga los datos de una materia prima habitual del grupo.
type MaterialType struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerGroupID uuid.UUID `gorm:"type:uuid;index"`

	Name  string          `gorm:"size:200;not null"`
	Grade string          `gorm:"size:100"`
	Code  string          `gorm:"size:100"`
	Rate  decimal.Decimal `gorm:"type:decimal(12,2);default:0"`

	CreatedBy string `gorm:"size:140"`
	Active    bool   `gorm:"default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MouldingMachineType precarga la economía de turno de una máquina del grupo.
type MouldingMachineType struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerGroupID uuid.UUID `gorm:"type:uuid;index"`

	Name            string          `gorm:"size:200;not null"`
	ShiftRate       decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	ShiftRateForMTC decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	MTCCount        int             `gorm:"not null;default:0"`

	CreatedBy string `gorm:"size:140"`
	Active    bool   `gorm:"default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (t *MouldingMachineType) MTCCost() decimal.Decimal {
	return decimal.NewFromInt(int64(t.MTCCount)).Mul(t.ShiftRateForMTC)
}

type AssemblyType struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerGroupID uuid.UUID `gorm:"type:uuid;index"`

	Name        string `gorm:"size:100;not null"`
	Value       string `gorm:"size:100"`
	Description string `gorm:"type:text"`

	CreatedBy string `gorm:"size:140"`
	Active    bool   `gorm:"default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type PackagingType struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerGroupID uuid.UUID `gorm:"type:uuid;index"`

	Name        string `gorm:"size:100;not null"`
	Value       string `gorm:"size:100"`
	Description string `gorm:"type:text"`

	CreatedBy string `gorm:"size:140"`
	Active    bool   `gorm:"default:true;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
