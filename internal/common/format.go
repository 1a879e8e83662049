package common

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Round2 rounds to 2 decimal places, used for all money fields.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to 1 decimal place, used for percentage fields.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// FormatMoney formats a USD amount with thousands separators, e.g. "$10,245.50"
func FormatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	parts := strings.SplitN(s, ".", 2)
	whole := parts[0]

	var sb strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%s", sign, sb.String(), parts[1])
}

// FormatSignedPct formats a percentage with an explicit sign, e.g. "+10.0%"
func FormatSignedPct(v float64) string {
	return fmt.Sprintf("%+.1f%%", v)
}

// FormatDateDMY renders a date as DD/MM/YYYY for report display
func FormatDateDMY(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
