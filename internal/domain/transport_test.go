package domain

import "testing"

func TestTransportBoxesAndCost(t *testing.T) {
	tr := Transport{
		Packaging: &Packaging{
			Length:  dec("500"),
			Breadth: dec("400"),
			Height:  dec("300"),
		},
		Length:      dec("10"),
		Breadth:     dec("8"),
		Height:      dec("8"),
		TripCost:    dec("1440"),
		PartsPerBox: 10,
	}
	// 10ft = 3048mm / 500mm = 6; 8ft = 2438.4mm / 400 = 6; 2438.4 / 300 = 8.
	if got := tr.BoxesOnLength(); got != 6 {
		t.Fatalf("BoxesOnLength = %d, want 6", got)
	}
	if got := tr.BoxesOnBreadth(); got != 6 {
		t.Fatalf("BoxesOnBreadth = %d, want 6", got)
	}
	if got := tr.BoxesOnHeight(); got != 8 {
		t.Fatalf("BoxesOnHeight = %d, want 8", got)
	}
	if got := tr.TotalBoxes(); got != 288 {
		t.Fatalf("TotalBoxes = %d, want 288", got)
	}
	if got := tr.TotalPartsPerTrip(); got != 2880 {
		t.Fatalf("TotalPartsPerTrip = %d, want 2880", got)
	}
	eqDec(t, "per part", tr.TripCostPerPart(), "0.5")
}

func TestTransportZeroGuards(t *testing.T) {
	tr := Transport{
		Packaging:   &Packaging{Length: dec("0"), Breadth: dec("400"), Height: dec("300")},
		Length:      dec("10"),
		Breadth:     dec("8"),
		Height:      dec("8"),
		TripCost:    dec("1440"),
		PartsPerBox: 10,
	}
	if got := tr.TotalBoxes(); got != 0 {
		t.Fatalf("con caja sin largo TotalBoxes = %d, want 0", got)
	}
	eqDec(t, "sin piezas por viaje", tr.TripCostPerPart(), "0")

	tr.Packaging = nil
	if got := tr.TotalBoxes(); got != 0 {
		t.Fatalf("sin packaging TotalBoxes = %d, want 0", got)
	}
}
