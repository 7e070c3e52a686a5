package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func eqDec(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s = %s, want %s", name, got, want)
	}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestToGrams(t *testing.T) {
	eqDec(t, "kg", ToGrams(dec("0.0279"), UnitKilogram), "27.9")
	eqDec(t, "gm", ToGrams(dec("27.9"), UnitGram), "27.9")
	eqDec(t, "ton", ToGrams(dec("0.002"), UnitTon), "2000")
}

func TestFromGramsInverse(t *testing.T) {
	for _, u := range []MassUnit{UnitKilogram, UnitGram, UnitTon} {
		v := dec("123.456")
		got := FromGrams(ToGrams(v, u), u)
		if !got.Equal(v) {
			t.Fatalf("round trip %s = %s, want %s", u, got, v)
		}
	}
}

func TestFeetToMM(t *testing.T) {
	eqDec(t, "1ft", FeetToMM(dec("1")), "304.8")
	eqDec(t, "10ft", FeetToMM(dec("10")), "3048")
}

func TestPctOf(t *testing.T) {
	eqDec(t, "10% de 200", pctOf(dec("200"), dec("10")), "20")
	eqDec(t, "0%", pctOf(dec("200"), decimal.Zero), "0")
}
