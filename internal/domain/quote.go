package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type QuoteStatus string

const (
	QuoteStatusInProgress QuoteStatus = "in_progress"
	QuoteStatusCompleted  QuoteStatus = "completed"
	QuoteStatusDiscarded  QuoteStatus = "discarded"
)

// Project agrupa cotizaciones de un mismo trabajo/cliente.
type Project struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"size:200;not null"`
	Description string    `gorm:"type:text"`
	CreatedBy   string    `gorm:"size:140"`
	Active      bool      `gorm:"default:true;index"`
	Quotes      []Quote   `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Quote es el agregado raíz del motor de costos. Solo guarda entradas crudas;
// todo costo derivado se recalcula en cada lectura.
type Quote struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey"`
	ProjectID       uuid.UUID   `gorm:"type:uuid;index"`
	CustomerGroupID uuid.UUID   `gorm:"type:uuid;not null;index"`
	Name            string      `gorm:"size:200;not null"`
	ClientName      string      `gorm:"size:200"`
	SAPNumber       string      `gorm:"size:100"`
	PartNumber      string      `gorm:"size:100"`
	PartName        string      `gorm:"size:200"`
	AmendmentNumber string      `gorm:"size:50"`
	Description     string      `gorm:"type:text"`
	Notes           string      `gorm:"type:text"`
	Status          QuoteStatus `gorm:"type:varchar(20);index"`

	Quantity       int             `gorm:"not null;default:1"`
	HandlingCharge decimal.Decimal `gorm:"type:decimal(12,2);default:0"`
	ProfitPct      decimal.Decimal `gorm:"type:decimal(6,2);default:0"`

	MajorVersion int `gorm:"not null;default:1"`
	MinorVersion int `gorm:"not null;default:0"`

	DefinitionComplete  bool `gorm:"default:false"`
	RawMaterialComplete bool `gorm:"default:false"`
	MouldingComplete    bool `gorm:"default:false"`
	AssemblyComplete    bool `gorm:"default:false"`
	PackagingComplete   bool `gorm:"default:false"`
	TransportComplete   bool `gorm:"default:false"`

	RawMaterials []RawMaterial           `gorm:"constraint:OnDelete:CASCADE"`
	Machines     []MouldingMachineDetail `gorm:"constraint:OnDelete:CASCADE"`
	Assemblies   []Assembly              `gorm:"constraint:OnDelete:CASCADE"`
	Packagings   []Packaging             `gorm:"constraint:OnDelete:CASCADE"`
	Transports   []Transport             `gorm:"constraint:OnDelete:CASCADE"`

	CreatedBy string `gorm:"size:140"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Version devuelve la versión como "major.minor", p.ej. "1.5".
func (q *Quote) Version() string {
	return fmt.Sprintf("%d.%d", q.MajorVersion, q.MinorVersion)
}

// CanEdit indica si las secciones de la cotización admiten mutaciones.
func (q *Quote) CanEdit() bool { return q.Status == QuoteStatusInProgress }

// Section identifica cada bloque de la cotización para el avance por flags.
type Section string

const (
	SectionDefinition  Section = "definition"
	SectionRawMaterial Section = "raw_material"
	SectionMoulding    Section = "moulding_machine"
	SectionAssembly    Section = "assembly"
	SectionPackaging   Section = "packaging"
	SectionTransport   Section = "transport"
)

// SetSectionComplete marca el avance de una sección; devuelve false si la
// sección no existe.
func (q *Quote) SetSectionComplete(s Section, done bool) bool {
	switch s {
	case SectionDefinition:
		q.DefinitionComplete = done
	case SectionRawMaterial:
		q.RawMaterialComplete = done
	case SectionMoulding:
		q.MouldingComplete = done
	case SectionAssembly:
		q.AssemblyComplete = done
	case SectionPackaging:
		q.PackagingComplete = done
	case SectionTransport:
		q.TransportComplete = done
	default:
		return false
	}
	return true
}

func (q *Quote) IsComplete() bool {
	return q.DefinitionComplete && q.RawMaterialComplete && q.MouldingComplete &&
		q.AssemblyComplete && q.PackagingComplete && q.TransportComplete
}

func (q *Quote) CompletionPct() int {
	sections := []bool{
		q.DefinitionComplete, q.RawMaterialComplete, q.MouldingComplete,
		q.AssemblyComplete, q.PackagingComplete, q.TransportComplete,
	}
	done := 0
	for _, s := range sections {
		if s {
			done++
		}
	}
	return done * 100 / len(sections)
}

func (q *Quote) TotalRawMaterialCost() decimal.Decimal {
	total := decimal.Zero
	for i := range q.RawMaterials {
		total = total.Add(q.RawMaterials[i].Cost())
	}
	return total
}

func (q *Quote) TotalConversionCost() decimal.Decimal {
	total := decimal.Zero
	for i := range q.Machines {
		total = total.Add(q.Machines[i].ConversionCost())
	}
	return total
}

func (q *Quote) TotalAssemblyCost() decimal.Decimal {
	total := decimal.Zero
	for i := range q.Assemblies {
		total = total.Add(q.Assemblies[i].TotalCost())
	}
	return total
}

func (q *Quote) TotalPackagingCost() decimal.Decimal {
	total := decimal.Zero
	for i := range q.Packagings {
		total = total.Add(q.Packagings[i].TotalPackagingCost())
	}
	return total
}

func (q *Quote) TotalTransportCost() decimal.Decimal {
	total := decimal.Zero
	for i := range q.Transports {
		total = total.Add(q.Transports[i].TripCostPerPart())
	}
	return total
}

// BaseCost suma las cinco categorías, antes de ganancia y manejo.
func (q *Quote) BaseCost() decimal.Decimal {
	return q.TotalRawMaterialCost().
		Add(q.TotalConversionCost()).
		Add(q.TotalAssemblyCost()).
		Add(q.TotalPackagingCost()).
		Add(q.TotalTransportCost())
}

func (q *Quote) ProfitAmount() decimal.Decimal {
	return pctOf(q.BaseCost(), q.ProfitPct)
}

func (q *Quote) GrandTotal() decimal.Decimal {
	return q.BaseCost().Add(q.ProfitAmount()).Add(q.HandlingCharge)
}

// CostPerPart divide el total por la cantidad cotizada; cantidad 0 da 0.
func (q *Quote) CostPerPart() decimal.Decimal {
	if q.Quantity <= 0 {
		return decimal.Zero
	}
	return q.GrandTotal().Div(decimal.NewFromInt(int64(q.Quantity)))
}

// CostSummary es la vista calculada de una cotización para API y export.
type CostSummary struct {
	Version          string          `json:"version"`
	Status           QuoteStatus     `json:"status"`
	CompletionPct    int             `json:"completion_pct"`
	TotalRawMaterial decimal.Decimal `json:"total_raw_material"`
	TotalConversion  decimal.Decimal `json:"total_conversion"`
	TotalAssembly    decimal.Decimal `json:"total_assembly"`
	TotalPackaging   decimal.Decimal `json:"total_packaging"`
	TotalTransport   decimal.Decimal `json:"total_transport"`
	BaseCost         decimal.Decimal `json:"base_cost"`
	ProfitAmount     decimal.Decimal `json:"profit_amount"`
	HandlingCharge   decimal.Decimal `json:"handling_charge"`
	GrandTotal       decimal.Decimal `json:"grand_total"`
	CostPerPart      decimal.Decimal `json:"cost_per_part"`
}

func (q *Quote) Summarize() CostSummary {
	return CostSummary{
		Version:          q.Version(),
		Status:           q.Status,
		CompletionPct:    q.CompletionPct(),
		TotalRawMaterial: q.TotalRawMaterialCost(),
		TotalConversion:  q.TotalConversionCost(),
		TotalAssembly:    q.TotalAssemblyCost(),
		TotalPackaging:   q.TotalPackagingCost(),
		TotalTransport:   q.TotalTransportCost(),
		BaseCost:         q.BaseCost(),
		ProfitAmount:     q.ProfitAmount(),
		HandlingCharge:   q.HandlingCharge,
		GrandTotal:       q.GrandTotal(),
		CostPerPart:      q.CostPerPart(),
	}
}
