package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var displayLocale = language.AmericanEnglish

// FormatCurrency renders whole US dollars with thousands grouping: 82090.11 -> "$82,090".
func FormatCurrency(value float64) string {
	whole := math.Round(value)
	p := message.NewPrinter(displayLocale)
	digits := p.Sprintf("%d", int64(math.Abs(whole)))
	if whole < 0 {
		return "-$" + digits
	}
	return "$" + digits
}

// ParseCurrency reads back the numeric value of a FormatCurrency string.
func ParseCurrency(s string) (float64, error) {
	s = strings.TrimSpace(s)
	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid currency %q: %w", s, err)
	}
	if negative {
		v = -v
	}
	return v, nil
}

// FormatCount renders an integer with thousands grouping: 3985 -> "3,985".
func FormatCount(n int) string {
	return message.NewPrinter(displayLocale).Sprintf("%d", n)
}

// FormatPercent renders a fraction with one decimal place: 0.67 -> "67.0%".
func FormatPercent(fraction float64) string {
	return fmt.Sprintf("%.1f%%", fraction*100)
}

// FormatAxisThousands renders chart axis ticks in thousands: 45000 -> "$45K".
func FormatAxisThousands(value float64) string {
	return "$" + strconv.FormatFloat(value/1000, 'f', -1, 64) + "K"
}
