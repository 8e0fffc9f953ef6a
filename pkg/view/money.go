package view

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money carries the raw amount for scripts and a display string for markup.
type Money struct {
	Amount  decimal.Decimal `json:"amount"`
	Display string          `json:"display"`
}

func VND(d decimal.Decimal) Money {
	return Money{Amount: d, Display: FormatVND(d)}
}

// FormatVND renders d rounded to whole dong with "." thousand separators,
// e.g. 1030000 -> "1.030.000 ₫".
func FormatVND(d decimal.Decimal) string {
	s := d.Round(0).StringFixed(0)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}
	b.WriteString(" ₫")
	return b.String()
}
