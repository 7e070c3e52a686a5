package excel

import (
	"bytes"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/phenrril/cotizador/internal/domain"
)

// ExportQuote vuelca la cotización completa al mismo layout de la plantilla,
// más una hoja de resumen con los costos calculados al momento del export.
func ExportQuote(q *domain.Quote) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#1F4E78"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("estilo de encabezado: %w", err)
	}

	for i, sh := range templateSheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sh.name); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(sh.name); err != nil {
				return nil, err
			}
		}
		if err := writeHeaderColumn(f, sh.name, sh.headers, headerStyle); err != nil {
			return nil, err
		}
	}

	writeColumn(f, SheetDefinition, 1, []any{
		q.Name, q.ClientName, q.SAPNumber, q.PartNumber, q.PartName,
		q.AmendmentNumber, q.Description, q.Quantity,
		num(q.HandlingCharge), num(q.ProfitPct), q.Notes,
	})

	for j := range q.RawMaterials {
		rm := &q.RawMaterials[j]
		frozen := any("")
		if rm.FrozenRate.Valid {
			frozen = num(rm.FrozenRate.Decimal)
		}
		writeColumn(f, SheetRawMat, j+1, []any{
			rm.MaterialName, rm.Grade, rm.RMCode, string(rm.Unit),
			num(rm.RMRate), frozen, num(rm.PartWeight), num(rm.RunnerWeight),
			num(rm.ProcessLosses), num(rm.PurgingLossCost),
			num(rm.ICCPct), num(rm.RejectionPct), num(rm.OverheadPct),
			num(rm.MaintenancePct), num(rm.ProfitPct),
		})
	}

	for j := range q.Machines {
		m := &q.Machines[j]
		writeColumn(f, SheetMoulding, j+1, []any{
			m.Cavity, num(m.MachineTonnage), num(m.CycleTime), num(m.EfficiencyPct),
			num(m.ShiftRate), num(m.ShiftRateForMTC), m.MTCCount,
			num(m.RejectionPct), num(m.OverheadPct), num(m.MaintenancePct), num(m.ProfitPct),
		})
	}

	for j := range q.Assemblies {
		a := &q.Assemblies[j]
		writeColumn(f, SheetAssembly, j+1, []any{
			a.Name, a.Remarks, num(a.ManualCost), num(a.OtherCost),
			num(a.InspectionHandlingCost), num(a.ProfitPct), num(a.RejectionPct),
		})
	}

	packCol := map[uuid.UUID]string{}
	for j := range q.Packagings {
		p := &q.Packagings[j]
		writeColumn(f, SheetPackaging, j+1, []any{
			p.Category, num(p.Length), num(p.Breadth), num(p.Height),
			num(p.PolybagLength), num(p.PolybagWidth),
			p.Lifecycle, num(p.Cost), num(p.MaintenancePct), p.PartsPerPolybag,
		})
		packCol[p.ID] = colName(j + 1)
	}

	for j := range q.Transports {
		t := &q.Transports[j]
		writeColumn(f, SheetTransport, j+1, []any{
			packCol[t.PackagingID], num(t.Length), num(t.Breadth), num(t.Height),
			num(t.TripCost), t.PartsPerBox,
		})
	}

	if err := writeSummarySheet(f, q, headerStyle); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("escribir export: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummarySheet(f *excelize.File, q *domain.Quote, style int) error {
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	s := q.Summarize()
	lines := []struct {
		label string
		value any
	}{
		{"Quote", q.Name},
		{"Version", s.Version},
		{"Status", string(s.Status)},
		{"Completion %", s.CompletionPct},
		{"Total Raw Material Cost", num(s.TotalRawMaterial)},
		{"Total Conversion Cost", num(s.TotalConversion)},
		{"Total Assembly Cost", num(s.TotalAssembly)},
		{"Total Packaging Cost", num(s.TotalPackaging)},
		{"Total Transport Cost", num(s.TotalTransport)},
		{"Base Cost", num(s.BaseCost)},
		{"Profit Amount", num(s.ProfitAmount)},
		{"Handling Charge", num(s.HandlingCharge)},
		{"Grand Total", num(s.GrandTotal)},
		{"Cost per Part", num(s.CostPerPart)},
	}
	width := 12.0
	for i, l := range lines {
		labelCell := fmt.Sprintf("A%d", i+1)
		if err := f.SetCellValue(SheetSummary, labelCell, l.label); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetSummary, labelCell, labelCell, style); err != nil {
			return err
		}
		if err := f.SetCellValue(SheetSummary, fmt.Sprintf("B%d", i+1), l.value); err != nil {
			return err
		}
		if w := float64(len(l.label)) * 1.2; w > width {
			width = w
		}
	}
	return f.SetColWidth(SheetSummary, "A", "A", width)
}

func writeColumn(f *excelize.File, sheet string, j int, values []any) {
	col := colName(j)
	for i, v := range values {
		_ = f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, i+1), v)
	}
}

// num baja a float solo en el borde de presentación; el cálculo sigue siendo
// decimal de punta a punta.
func num(d decimal.Decimal) float64 { return d.InexactFloat64() }
