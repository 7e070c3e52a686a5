package domain

import "github.com/shopspring/decimal"

// MassUnit es la unidad de masa en la que se cargan los pesos de materia prima.
type MassUnit string

const (
	UnitKilogram MassUnit = "kg"
	UnitGram     MassUnit = "gm"
	UnitTon      MassUnit = "ton"
)

var (
	hundred          = decimal.NewFromInt(100)
	gramsPerKilogram = decimal.NewFromInt(1000)
	gramsPerTon      = decimal.NewFromInt(1000000)
	secondsPerHour   = decimal.NewFromInt(3600)
	mmPerFoot        = decimal.RequireFromString("304.8")
)

// ToGrams convierte una masa expresada en u a gramos. "gm" es identidad.
func ToGrams(v decimal.Decimal, u MassUnit) decimal.Decimal {
	switch u {
	case UnitKilogram:
		return v.Mul(gramsPerKilogram)
	case UnitTon:
		return v.Mul(gramsPerTon)
	default:
		return v
	}
}

// FromGrams es la inversa exacta de ToGrams.
func FromGrams(v decimal.Decimal, u MassUnit) decimal.Decimal {
	switch u {
	case UnitKilogram:
		return v.Div(gramsPerKilogram)
	case UnitTon:
		return v.Div(gramsPerTon)
	default:
		return v
	}
}

// FeetToMM convierte pies a milímetros (1 ft = 304.8 mm).
func FeetToMM(v decimal.Decimal) decimal.Decimal {
	return v.Mul(mmPerFoot)
}

// pctOf devuelve base * pct/100. Todos los recargos porcentuales del motor
// se calculan de forma independiente sobre la misma base, nunca en cadena.
func pctOf(base, pct decimal.Decimal) decimal.Decimal {
	return base.Mul(pct).Div(hundred)
}
