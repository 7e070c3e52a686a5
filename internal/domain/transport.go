package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transport calcula cuántas cajas del Packaging referenciado entran en el
// vehículo y reparte el costo del viaje por pieza.
type Transport struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	QuoteID     uuid.UUID  `gorm:"type:uuid;index"`
	PackagingID uuid.UUID  `gorm:"type:uuid;index"`
	Packaging   *Packaging `gorm:"foreignKey:PackagingID"`

	// Dimensiones del vehículo en pies.
	Length  decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	Breadth decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	Height  decimal.Decimal `gorm:"type:decimal(12,2);default:0"`

	TripCost    decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	PartsPerBox int             `gorm:"not null;default:1"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// boxesOnAxis: piso de vehículo(mm) / caja(mm); caja en cero da 0.
func boxesOnAxis(vehicleFeet, boxMM decimal.Decimal) int64 {
	if !boxMM.IsPositive() {
		return 0
	}
	return FeetToMM(vehicleFeet).Div(boxMM).IntPart()
}

func (t *Transport) BoxesOnLength() int64 {
	if t.Packaging == nil {
		return 0
	}
	return boxesOnAxis(t.Length, t.Packaging.Length)
}

func (t *Transport) BoxesOnBreadth() int64 {
	if t.Packaging == nil {
		return 0
	}
	return boxesOnAxis(t.Breadth, t.Packaging.Breadth)
}

func (t *Transport) BoxesOnHeight() int64 {
	if t.Packaging == nil {
		return 0
	}
	return boxesOnAxis(t.Height, t.Packaging.Height)
}

func (t *Transport) TotalBoxes() int64 {
	return t.BoxesOnLength() * t.BoxesOnBreadth() * t.BoxesOnHeight()
}

func (t *Transport) TotalPartsPerTrip() int64 {
	return t.TotalBoxes() * int64(t.PartsPerBox)
}

// TripCostPerPart reparte el costo del viaje; sin piezas por viaje da 0.
func (t *Transport) TripCostPerPart() decimal.Decimal {
	parts := t.TotalPartsPerTrip()
	if parts <= 0 {
		return decimal.Zero
	}
	return t.TripCost.Div(decimal.NewFromInt(parts))
}
