package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Packaging es una opción de embalaje de la cotización. El costo de la caja
// se amortiza por la cantidad de ciclos de reuso (lifecycle) y las piezas que
// entran por polibolsa.
type Packaging struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	QuoteID         uuid.UUID  `gorm:"type:uuid;index"`
	PackagingTypeID *uuid.UUID `gorm:"type:uuid"`

	Category string `gorm:"size:30;default:'pp_box'"`

	// Dimensiones de la caja en milímetros.
	Length  decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	Breadth decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	Height  decimal.Decimal `gorm:"type:decimal(12,2);default:0"`

	PolybagLength decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	PolybagWidth  decimal.Decimal `gorm:"type:decimal(12,2);default:0"`

	Lifecycle       int             `gorm:"not null;default:0"`
	Cost            decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	MaintenancePct  decimal.Decimal `gorm:"type:decimal(6,2);default:0"`
	PartsPerPolybag int             `gorm:"not null;default:1"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p *Packaging) MaintenanceCost() decimal.Decimal {
	return pctOf(p.Cost, p.MaintenancePct)
}

func (p *Packaging) TotalCost() decimal.Decimal {
	return p.Cost.Add(p.MaintenanceCost())
}

// CostPerPart amortiza el costo total por lifecycle × piezas por polibolsa.
// Lifecycle o piezas en cero dan 0.
func (p *Packaging) CostPerPart() decimal.Decimal {
	if p.Lifecycle <= 0 || p.PartsPerPolybag <= 0 {
		return decimal.Zero
	}
	parts := decimal.NewFromInt(int64(p.Lifecycle)).
		Mul(decimal.NewFromInt(int64(p.PartsPerPolybag)))
	return p.TotalCost().Div(parts)
}

func (p *Packaging) TotalPackagingCost() decimal.Decimal {
	return p.CostPerPart()
}
