package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundToCents(t *testing.T) {
	// 6.90 * 1.0825 = 7.46925, which rounds to 7.47.
	assert.Equal(t, 7.47, RoundToCents(6.90*1.0825))
	assert.Equal(t, 0.0, RoundToCents(0))
	assert.Equal(t, 2.5, RoundToCents(2.499999999))
	assert.Equal(t, 1.23, RoundToCents(1.234))
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "$3.45", FormatMoney(3.45))
	assert.Equal(t, "$0.00", FormatMoney(0))
	assert.Equal(t, "$12.85", FormatMoney(12.85))
}

func TestTruncateTitle(t *testing.T) {
	assert.Equal(t, "short", TruncateTitle("short", 30))
	assert.Equal(t, "exactly ten", TruncateTitle("exactly ten", 11))

	long := "I would like two Double-Doubles animal style please"
	got := TruncateTitle(long, 30)
	assert.Equal(t, "I would like two Double-Double...", got)
}
