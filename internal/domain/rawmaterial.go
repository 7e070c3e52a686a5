package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RawMaterial es una línea de materia prima de la cotización. Las tarifas se
// cargan por kilogramo sin importar la unidad de los pesos.
type RawMaterial struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	QuoteID        uuid.UUID  `gorm:"type:uuid;index"`
	MaterialTypeID *uuid.UUID `gorm:"type:uuid"`

	MaterialName string   `gorm:"size:200;not null"`
	Grade        string   `gorm:"size:100"`
	RMCode       string   `gorm:"size:100"`
	Unit         MassUnit `gorm:"type:varchar(10);default:'kg'"`

	RMRate     decimal.Decimal     `gorm:"type:decimal(12,2);default:0"`
	FrozenRate decimal.NullDecimal `gorm:"type:decimal(12,2)"`

	PartWeight   decimal.Decimal `gorm:"type:decimal(12,3);default:0"`
	RunnerWeight decimal.Decimal `gorm:"type:decimal(12,3);default:0"`

	ProcessLosses   decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	PurgingLossCost decimal.Decimal `gorm:"type:decimal(12,2);default:0"`

	ICCPct         decimal.Decimal `gorm:"type:decimal(6,2);default:0"`
	RejectionPct   decimal.Decimal `gorm:"type:decimal(6,2);default:0"`
	OverheadPct    decimal.Decimal `gorm:"type:decimal(6,2);default:0"`
	MaintenancePct decimal.Decimal `gorm:"type:decimal(6,2);default:0"`
	ProfitPct      decimal.Decimal `gorm:"type:decimal(6,2);default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// GrossWeight es peso de pieza + peso de colada, en la unidad cargada.
func (m *RawMaterial) GrossWeight() decimal.Decimal {
	return m.PartWeight.Add(m.RunnerWeight)
}

func (m *RawMaterial) GrossWeightGrams() decimal.Decimal {
	return ToGrams(m.GrossWeight(), m.Unit)
}

// EffectiveRatePerKg aplica la tarifa congelada por contrato cuando existe y
// es positiva; si no, la tarifa spot.
func (m *RawMaterial) EffectiveRatePerKg() decimal.Decimal {
	if m.FrozenRate.Valid && m.FrozenRate.Decimal.IsPositive() {
		return m.FrozenRate.Decimal
	}
	return m.RMRate
}

// BaseCost: gramos brutos por tarifa por gramo, más pérdidas de proceso y
// purga, más el recargo ICC sobre ese subtotal.
func (m *RawMaterial) BaseCost() decimal.Decimal {
	ratePerGram := m.EffectiveRatePerKg().Div(gramsPerKilogram)
	base := m.GrossWeightGrams().Mul(ratePerGram).
		Add(m.ProcessLosses).
		Add(m.PurgingLossCost)
	return base.Add(pctOf(base, m.ICCPct))
}

func (m *RawMaterial) RejectionCost() decimal.Decimal {
	return pctOf(m.BaseCost(), m.RejectionPct)
}

func (m *RawMaterial) OverheadCost() decimal.Decimal {
	return pctOf(m.BaseCost(), m.OverheadPct)
}

func (m *RawMaterial) MaintenanceCost() decimal.Decimal {
	return pctOf(m.BaseCost(), m.MaintenancePct)
}

func (m *RawMaterial) ProfitCost() decimal.Decimal {
	return pctOf(m.BaseCost(), m.ProfitPct)
}

// Cost suma la base y los cuatro recargos, todos calculados sobre la misma
// base (no compuestos).
func (m *RawMaterial) Cost() decimal.Decimal {
	base := m.BaseCost()
	return base.
		Add(pctOf(base, m.RejectionPct)).
		Add(pctOf(base, m.OverheadPct)).
		Add(pctOf(base, m.MaintenancePct)).
		Add(pctOf(base, m.ProfitPct))
}
