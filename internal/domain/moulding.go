package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// shiftSeconds es un turno de 8 horas.
const shiftSeconds = 28800

// MouldingMachineDetail describe la economía de inyección de una máquina
// para la cotización: de ahí sale el costo de conversión por pieza.
type MouldingMachineDetail struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	QuoteID       uuid.UUID  `gorm:"type:uuid;index"`
	MachineTypeID *uuid.UUID `gorm:"type:uuid"`

	Cavity         int             `gorm:"not null;default:1"`
	MachineTonnage decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	CycleTime      decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	EfficiencyPct  decimal.Decimal `gorm:"type:decimal(6,2);default:0"`

	ShiftRate       decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	ShiftRateForMTC decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	MTCCount        int             `gorm:"not null;default:0"`

	RejectionPct   decimal.Decimal `gorm:"type:decimal(6,2);default:0"`
	OverheadPct    decimal.Decimal `gorm:"type:decimal(6,2);default:0"`
	MaintenancePct decimal.Decimal `gorm:"type:decimal(6,2);default:0"`
	ProfitPct      decimal.Decimal `gorm:"type:decimal(6,2);default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PartsPerShift: piezas por turno de 8 horas según eficiencia, tiempo de
// ciclo y cavidades. Ciclo o eficiencia en cero dan 0, nunca error.
func (m *MouldingMachineDetail) PartsPerShift() int64 {
	if !m.CycleTime.IsPositive() || !m.EfficiencyPct.IsPositive() {
		return 0
	}
	effective := decimal.NewFromInt(shiftSeconds).Mul(m.EfficiencyPct).Div(hundred)
	parts := effective.Div(m.CycleTime).Mul(decimal.NewFromInt(int64(m.Cavity)))
	return parts.IntPart()
}

// MTCCost amortiza las paradas por cambio de molde.
func (m *MouldingMachineDetail) MTCCost() decimal.Decimal {
	return decimal.NewFromInt(int64(m.MTCCount)).Mul(m.ShiftRateForMTC)
}

func (m *MouldingMachineDetail) BaseConversionCost() decimal.Decimal {
	parts := m.PartsPerShift()
	if parts <= 0 {
		return decimal.Zero
	}
	return m.ShiftRate.Add(m.MTCCost()).Div(decimal.NewFromInt(parts))
}

func (m *MouldingMachineDetail) RejectionCost() decimal.Decimal {
	return pctOf(m.BaseConversionCost(), m.RejectionPct)
}

func (m *MouldingMachineDetail) OverheadCost() decimal.Decimal {
	return pctOf(m.BaseConversionCost(), m.OverheadPct)
}

func (m *MouldingMachineDetail) MaintenanceCost() decimal.Decimal {
	return pctOf(m.BaseConversionCost(), m.MaintenancePct)
}

func (m *MouldingMachineDetail) ProfitCost() decimal.Decimal {
	return pctOf(m.BaseConversionCost(), m.ProfitPct)
}

// ConversionCost es la base más los cuatro recargos independientes.
func (m *MouldingMachineDetail) ConversionCost() decimal.Decimal {
	base := m.BaseConversionCost()
	return base.
		Add(pctOf(base, m.RejectionPct)).
		Add(pctOf(base, m.OverheadPct)).
		Add(pctOf(base, m.MaintenancePct)).
		Add(pctOf(base, m.ProfitPct))
}
