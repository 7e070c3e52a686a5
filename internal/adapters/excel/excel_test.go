package excel

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/phenrril/cotizador/internal/domain"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestBuildTemplateHasAllSheets(t *testing.T) {
	data, err := BuildTemplate()
	if err != nil {
		t.Fatalf("BuildTemplate: %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("abrir plantilla: %v", err)
	}
	defer f.Close()

	for _, sh := range templateSheets {
		if idx, _ := f.GetSheetIndex(sh.name); idx < 0 {
			t.Fatalf("falta la hoja %q", sh.name)
		}
		got, err := f.GetCellValue(sh.name, "A1")
		if err != nil || got != sh.headers[0] {
			t.Fatalf("%s!A1 = %q, want %q", sh.name, got, sh.headers[0])
		}
	}
}

func TestParseQuoteRejectsEmptyDefinition(t *testing.T) {
	data, err := BuildTemplate()
	if err != nil {
		t.Fatalf("BuildTemplate: %v", err)
	}
	if _, _, err := ParseQuote(data); err == nil {
		t.Fatal("plantilla vacía aceptada como cotización")
	}
}

func sampleQuote() *domain.Quote {
	q := &domain.Quote{
		Name:           "tapa frontal",
		ClientName:     "Acme",
		PartNumber:     "TP-100",
		PartName:       "Tapa",
		Quantity:       1000,
		HandlingCharge: dec("100"),
		ProfitPct:      dec("10"),
		Status:         domain.QuoteStatusInProgress,
		MajorVersion:   1,
		RawMaterials: []domain.RawMaterial{
			{
				MaterialName: "Polipropileno",
				Grade:        "H110MA",
				RMCode:       "PP-H110MA",
				Unit:         domain.UnitKilogram,
				RMRate:       dec("125.5"),
				FrozenRate:   decimal.NewNullDecimal(dec("120")),
				PartWeight:   dec("0.0234"),
				RunnerWeight: dec("0.0045"),
				RejectionPct: dec("3"),
			},
		},
		Machines: []domain.MouldingMachineDetail{
			{
				Cavity:          2,
				MachineTonnage:  dec("120"),
				CycleTime:       dec("30"),
				EfficiencyPct:   dec("75"),
				ShiftRate:       dec("6480"),
				ShiftRateForMTC: dec("720"),
				MTCCount:        1,
			},
		},
		Assemblies: []domain.Assembly{
			{Name: "subconjunto", ManualCost: dec("10"), ProfitPct: dec("10")},
		},
	}
	pack := domain.Packaging{
		Category:        "pp_box",
		Length:          dec("500"),
		Breadth:         dec("400"),
		Height:          dec("300"),
		Lifecycle:       10,
		Cost:            dec("1000"),
		MaintenancePct:  dec("10"),
		PartsPerPolybag: 11,
	}
	q.Packagings = []domain.Packaging{pack}
	q.Transports = []domain.Transport{
		{
			PackagingID: pack.ID,
			Length:      dec("10"),
			Breadth:     dec("8"),
			Height:      dec("8"),
			TripCost:    dec("1440"),
			PartsPerBox: 10,
		},
	}
	return q
}

func TestExportParseRoundTrip(t *testing.T) {
	orig := sampleQuote()
	data, err := ExportQuote(orig)
	if err != nil {
		t.Fatalf("ExportQuote: %v", err)
	}

	got, rep, err := ParseQuote(data)
	if err != nil {
		t.Fatalf("ParseQuote: %v", err)
	}
	if len(rep.Errors) != 0 {
		t.Fatalf("errores de import: %v", rep.Errors)
	}
	if got.Name != orig.Name || got.ClientName != orig.ClientName || got.Quantity != orig.Quantity {
		t.Fatalf("definición: %+v", got)
	}
	if !got.HandlingCharge.Equal(orig.HandlingCharge) || !got.ProfitPct.Equal(orig.ProfitPct) {
		t.Fatalf("cargos: %s %s", got.HandlingCharge, got.ProfitPct)
	}

	if len(got.RawMaterials) != 1 {
		t.Fatalf("raw materials = %d", len(got.RawMaterials))
	}
	rm := got.RawMaterials[0]
	want := orig.RawMaterials[0]
	if rm.MaterialName != want.MaterialName || rm.Grade != want.Grade || rm.RMCode != want.RMCode || rm.Unit != want.Unit {
		t.Fatalf("raw material: %+v", rm)
	}
	if !rm.RMRate.Equal(want.RMRate) || !rm.PartWeight.Equal(want.PartWeight) || !rm.RunnerWeight.Equal(want.RunnerWeight) {
		t.Fatalf("tarifas/pesos: %+v", rm)
	}
	if !rm.FrozenRate.Valid || !rm.FrozenRate.Decimal.Equal(want.FrozenRate.Decimal) {
		t.Fatalf("frozen rate: %+v", rm.FrozenRate)
	}

	if len(got.Machines) != 1 || got.Machines[0].Cavity != 2 || got.Machines[0].MTCCount != 1 {
		t.Fatalf("machines: %+v", got.Machines)
	}
	if !got.Machines[0].CycleTime.Equal(dec("30")) {
		t.Fatalf("cycle time: %s", got.Machines[0].CycleTime)
	}

	if len(got.Assemblies) != 1 || got.Assemblies[0].Name != "subconjunto" {
		t.Fatalf("assemblies: %+v", got.Assemblies)
	}

	if len(got.Packagings) != 1 || got.Packagings[0].Lifecycle != 10 || got.Packagings[0].PartsPerPolybag != 11 {
		t.Fatalf("packagings: %+v", got.Packagings)
	}

	// El transporte tiene que quedar colgado del packaging importado, no del
	// ID original del export.
	if len(got.Transports) != 1 {
		t.Fatalf("transports: %+v", got.Transports)
	}
	if got.Transports[0].PackagingID != got.Packagings[0].ID {
		t.Fatalf("transport referencia %s, packaging importado %s", got.Transports[0].PackagingID, got.Packagings[0].ID)
	}
	if got.Transports[0].PartsPerBox != 10 || !got.Transports[0].TripCost.Equal(dec("1440")) {
		t.Fatalf("transport: %+v", got.Transports[0])
	}
}

func TestParseQuoteCollectsColumnErrors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_ = f.SetSheetName(f.GetSheetName(0), SheetDefinition)
	_ = f.SetCellValue(SheetDefinition, "A1", definitionHeaders[0])
	_ = f.SetCellValue(SheetDefinition, "B1", "tapa")
	_, _ = f.NewSheet(SheetRawMat)
	// Columna con datos pero sin nombre de material: se rechaza el registro.
	_ = f.SetCellValue(SheetRawMat, "B5", "125.5")
	// Columna con nombre pero tarifa ilegible: entra con cero y reporta.
	_ = f.SetCellValue(SheetRawMat, "C1", "ABS")
	_ = f.SetCellValue(SheetRawMat, "C5", "no-numérico")

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write: %v", err)
	}

	q, rep, err := ParseQuote(buf.Bytes())
	if err != nil {
		t.Fatalf("ParseQuote: %v", err)
	}
	if len(q.RawMaterials) != 1 || q.RawMaterials[0].MaterialName != "ABS" {
		t.Fatalf("raw materials: %+v", q.RawMaterials)
	}
	if !q.RawMaterials[0].RMRate.IsZero() {
		t.Fatalf("tarifa ilegible no quedó en cero: %s", q.RawMaterials[0].RMRate)
	}
	if len(rep.Errors) != 2 {
		t.Fatalf("errores = %v, want 2", rep.Errors)
	}
}
