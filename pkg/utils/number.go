package utils

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// PercentageOneDecimal calcula part/total*100 arredondado em uma casa (half-up).
// Retorna 0 quando total não é positivo.
func PercentageOneDecimal(part, total int) float64 {
	if total <= 0 {
		return 0
	}

	pct := decimal.NewFromInt(int64(part)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(total))).
		Round(1)

	f, _ := pct.Float64()
	return f
}

// RoundOneDecimal arredonda valores vindos de planilhas para uma casa decimal
func RoundOneDecimal(f float64) float64 {
	if f == 0 {
		return 0
	}

	r, _ := decimal.NewFromFloat(f).Round(1).Float64()
	return r
}
