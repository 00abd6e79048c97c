package utils

import (
	"fmt"
	"math"
)

// ToYuan converte valores monetários da plataforma (normalmente 1/100000
// de yuan) para yuan, arredondando para o número de casas configurado.
func ToYuan(value, unitMult float64, digits int) float64 {
	factor := math.Pow10(digits)
	return math.Round(value*unitMult*factor) / factor
}

// FormatYuan formata um valor já em unidades da plataforma como yuan com
// casas decimais fixas.
func FormatYuan(value, unitMult float64, digits int) string {
	return fmt.Sprintf("%.*f", digits, ToYuan(value, unitMult, digits))
}
