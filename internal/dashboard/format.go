package dashboard

import (
	"fmt"
	"strings"

	"harbinger/internal/domain"
)

// FormatInt formats an integer with comma separators.
func FormatInt(n int) string {
	neg := n < 0
	if neg {
		n = -n
	}
	s := fmt.Sprintf("%d", n)
	if len(s) > 3 {
		var b strings.Builder
		start := len(s) % 3
		if start > 0 {
			b.WriteString(s[:start])
		}
		for i := start; i < len(s); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(',')
			}
			b.WriteString(s[i : i+3])
		}
		s = b.String()
	}
	if neg {
		return "-" + s
	}
	return s
}

// FormatPrice formats a price with the instrument's quote precision.
func FormatPrice(instrument string, p float64) string {
	if p == 0 {
		return "-"
	}
	return fmt.Sprintf("%.*f", domain.PriceDigits(instrument), p)
}

// FormatSentiment formats a sentiment score as a signed two-decimal value.
func FormatSentiment(s float64) string {
	return fmt.Sprintf("%+.2f", s)
}

// FormatSpreadPips renders a raw spread as pips for the instrument.
func FormatSpreadPips(instrument string, spread float64) string {
	pip := domain.PipSize(instrument)
	return fmt.Sprintf("%.1fp", spread/pip)
}

// FormatUSD formats a dollar amount, using K/M suffixes for large values.
func FormatUSD(v float64) string {
	switch {
	case v >= 1e6 || v <= -1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e3 || v <= -1e3:
		return fmt.Sprintf("$%.1fK", v/1e3)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}
