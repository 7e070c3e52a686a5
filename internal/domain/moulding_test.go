package domain

import "testing"

func TestPartsPerShift(t *testing.T) {
	m := MouldingMachineDetail{
		Cavity:        2,
		CycleTime:     dec("30"),
		EfficiencyPct: dec("75"),
	}
	// 28800s * 75% = 21600s efectivos; /30s = 720 ciclos; x2 cavidades.
	if got := m.PartsPerShift(); got != 1440 {
		t.Fatalf("PartsPerShift = %d, want 1440", got)
	}
}

func TestPartsPerShiftZeroGuards(t *testing.T) {
	m := MouldingMachineDetail{Cavity: 2, EfficiencyPct: dec("75")}
	if got := m.PartsPerShift(); got != 0 {
		t.Fatalf("sin ciclo PartsPerShift = %d, want 0", got)
	}
	m = MouldingMachineDetail{Cavity: 2, CycleTime: dec("30")}
	if got := m.PartsPerShift(); got != 0 {
		t.Fatalf("sin eficiencia PartsPerShift = %d, want 0", got)
	}
	eqDec(t, "conversion sin piezas", m.ConversionCost(), "0")
}

func TestConversionCost(t *testing.T) {
	m := MouldingMachineDetail{
		Cavity:          2,
		CycleTime:       dec("30"),
		EfficiencyPct:   dec("75"),
		ShiftRate:       dec("6480"),
		ShiftRateForMTC: dec("720"),
		MTCCount:        1,
		RejectionPct:    dec("10"),
		ProfitPct:       dec("10"),
	}
	eqDec(t, "mtc", m.MTCCost(), "720")
	// (6480 + 720) / 1440 piezas = 5 por pieza.
	eqDec(t, "base", m.BaseConversionCost(), "5")
	eqDec(t, "rejection", m.RejectionCost(), "0.5")
	eqDec(t, "conversion", m.ConversionCost(), "6")
}
