package domain

import "testing"

func TestQuoteGrandTotalEndToEnd(t *testing.T) {
	q := Quote{
		Quantity:       1000,
		ProfitPct:      dec("10"),
		HandlingCharge: dec("100"),
		RawMaterials: []RawMaterial{
			{
				Unit:         UnitKilogram,
				RMRate:       dec("125.50"),
				PartWeight:   dec("0.0234"),
				RunnerWeight: dec("0.0045"),
			},
		},
	}
	eqDec(t, "total rm", q.TotalRawMaterialCost(), "3.50145")
	eqDec(t, "base", q.BaseCost(), "3.50145")
	eqDec(t, "profit", q.ProfitAmount(), "0.350145")
	eqDec(t, "grand total", q.GrandTotal(), "103.851595")
	eqDec(t, "cost per part", q.CostPerPart(), "0.103851595")
}

func TestQuoteCostPerPartZeroQuantity(t *testing.T) {
	q := Quote{HandlingCharge: dec("100")}
	eqDec(t, "qty cero", q.CostPerPart(), "0")
}

func TestQuoteVersionString(t *testing.T) {
	q := Quote{MajorVersion: 2, MinorVersion: 7}
	if got := q.Version(); got != "2.7" {
		t.Fatalf("Version = %q, want %q", got, "2.7")
	}
}

func TestQuoteCanEdit(t *testing.T) {
	q := Quote{Status: QuoteStatusInProgress}
	if !q.CanEdit() {
		t.Fatal("in_progress debería admitir ediciones")
	}
	q.Status = QuoteStatusCompleted
	if q.CanEdit() {
		t.Fatal("completed no debería admitir ediciones")
	}
	q.Status = QuoteStatusDiscarded
	if q.CanEdit() {
		t.Fatal("discarded no debería admitir ediciones")
	}
}

func TestQuoteSections(t *testing.T) {
	q := Quote{}
	if q.CompletionPct() != 0 {
		t.Fatalf("CompletionPct = %d, want 0", q.CompletionPct())
	}
	for _, s := range []Section{
		SectionDefinition, SectionRawMaterial, SectionMoulding,
	} {
		if !q.SetSectionComplete(s, true) {
			t.Fatalf("sección %s no reconocida", s)
		}
	}
	if q.CompletionPct() != 50 {
		t.Fatalf("CompletionPct = %d, want 50", q.CompletionPct())
	}
	if q.IsComplete() {
		t.Fatal("IsComplete con 3 de 6 secciones")
	}
	if q.SetSectionComplete(Section("otra"), true) {
		t.Fatal("sección inexistente aceptada")
	}
	for _, s := range []Section{SectionAssembly, SectionPackaging, SectionTransport} {
		q.SetSectionComplete(s, true)
	}
	if !q.IsComplete() || q.CompletionPct() != 100 {
		t.Fatal("las 6 secciones completas deberían dar 100%")
	}
}

func TestQuoteSummarizeAggregatesAllCategories(t *testing.T) {
	pack := Packaging{
		Cost: dec("1000"), MaintenancePct: dec("10"),
		Lifecycle: 10, PartsPerPolybag: 11,
		Length: dec("500"), Breadth: dec("400"), Height: dec("300"),
	}
	q := Quote{
		Quantity:  100,
		ProfitPct: dec("0"),
		RawMaterials: []RawMaterial{
			{Unit: UnitGram, RMRate: dec("1000"), PartWeight: dec("100")},
		},
		Machines: []MouldingMachineDetail{
			{Cavity: 2, CycleTime: dec("30"), EfficiencyPct: dec("75"), ShiftRate: dec("6480"), ShiftRateForMTC: dec("720"), MTCCount: 1},
		},
		Assemblies: []Assembly{
			{ManualCost: dec("37")},
		},
		Packagings: []Packaging{pack},
		Transports: []Transport{
			{Packaging: &pack, Length: dec("10"), Breadth: dec("8"), Height: dec("8"), TripCost: dec("1440"), PartsPerBox: 10},
		},
	}
	s := q.Summarize()
	eqDec(t, "rm", s.TotalRawMaterial, "100")
	eqDec(t, "conversion", s.TotalConversion, "5")
	eqDec(t, "assembly", s.TotalAssembly, "37")
	eqDec(t, "packaging", s.TotalPackaging, "10")
	eqDec(t, "transport", s.TotalTransport, "0.5")
	eqDec(t, "base", s.BaseCost, "152.5")
	eqDec(t, "grand total", s.GrandTotal, "152.5")
	eqDec(t, "per part", s.CostPerPart, "1.525")
}
