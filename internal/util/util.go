// Package util holds small helpers shared across layers.
package util

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"
)

// RoundToCents rounds a dollar amount to two decimal places, half away from
// zero. Order totals are always stored rounded.
func RoundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatMoney renders a dollar amount the way it appears in transcripts and
// receipts.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// TruncateTitle shortens free text into a conversation title, appending an
// ellipsis when the text was cut.
func TruncateTitle(text string, maxRunes int) string {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) <= maxRunes {
		return text
	}

	runes := []rune(text)

	return strings.TrimSpace(string(runes[:maxRunes])) + "..."
}
