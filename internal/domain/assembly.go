package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Assembly agrupa materiales e hileras de manufactura/impresión de un
// subconjunto. Sus totales nunca se persisten: se recalculan al leer, así un
// alta o baja de hijos no puede dejar un total viejo.
type Assembly struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey"`
	QuoteID        uuid.UUID  `gorm:"type:uuid;index"`
	AssemblyTypeID *uuid.UUID `gorm:"type:uuid"`

	Name    string `gorm:"size:200;not null"`
	Remarks string `gorm:"type:text"`

	ManualCost decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	OtherCost  decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	// Monto fijo, no porcentaje.
	InspectionHandlingCost decimal.Decimal `gorm:"type:decimal(12,2);default:0"`

	ProfitPct    decimal.Decimal `gorm:"type:decimal(6,2);default:0"`
	RejectionPct decimal.Decimal `gorm:"type:decimal(6,2);default:0"`

	RawMaterials  []AssemblyRawMaterial       `gorm:"constraint:OnDelete:CASCADE"`
	PrintingCosts []ManufacturingPrintingCost `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *Assembly) RawMaterialSubtotal() decimal.Decimal {
	total := decimal.Zero
	for i := range a.RawMaterials {
		total = total.Add(a.RawMaterials[i].TotalCost())
	}
	return total
}

func (a *Assembly) PrintingSubtotal() decimal.Decimal {
	total := decimal.Zero
	for i := range a.PrintingCosts {
		total = total.Add(a.PrintingCosts[i].PerCost())
	}
	return total
}

// BaseCost: costo manual más los subtotales de los hijos.
func (a *Assembly) BaseCost() decimal.Decimal {
	return a.ManualCost.Add(a.RawMaterialSubtotal()).Add(a.PrintingSubtotal())
}

func (a *Assembly) ProfitCost() decimal.Decimal {
	return pctOf(a.BaseCost(), a.ProfitPct)
}

func (a *Assembly) RejectionCost() decimal.Decimal {
	return pctOf(a.BaseCost(), a.RejectionPct)
}

func (a *Assembly) TotalCost() decimal.Decimal {
	base := a.BaseCost()
	return base.
		Add(a.OtherCost).
		Add(pctOf(base, a.ProfitPct)).
		Add(pctOf(base, a.RejectionPct)).
		Add(a.InspectionHandlingCost)
}

// AssemblyRawMaterial es un insumo consumido por el subconjunto.
type AssemblyRawMaterial struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssemblyID uuid.UUID `gorm:"type:uuid;index"`

	Description   string          `gorm:"size:200;not null"`
	ProductionQty int             `gorm:"not null;default:1"`
	Unit          string          `gorm:"size:20;default:'kg'"`
	CostPerUnit   decimal.Decimal `gorm:"type:decimal(12,2);default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TotalCost = costo por unidad / cantidad de producción; cantidad 0 da 0.
func (m *AssemblyRawMaterial) TotalCost() decimal.Decimal {
	if m.ProductionQty <= 0 {
		return decimal.Zero
	}
	return m.CostPerUnit.Div(decimal.NewFromInt(int64(m.ProductionQty)))
}

// ManufacturingPrintingCost es una operación de máquina dentro del armado
// (serigrafía, soldadura ultrasónica, etc.).
type ManufacturingPrintingCost struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssemblyID uuid.UUID `gorm:"type:uuid;index"`

	Process       string          `gorm:"size:200;not null"`
	MCTonnage     decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	MCRatePerHour decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	CycleTime     decimal.Decimal `gorm:"type:decimal(12,2);default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PerCost = (tarifa por hora × tiempo de ciclo en segundos) / 3600.
func (c *ManufacturingPrintingCost) PerCost() decimal.Decimal {
	return c.MCRatePerHour.Mul(c.CycleTime).Div(secondsPerHour)
}
