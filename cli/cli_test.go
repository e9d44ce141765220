package cli

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"income-tax/service"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestWordsCommand(t *testing.T) {
	out, err := runCommand(t, "words", "150000")
	require.NoError(t, err)
	assert.Equal(t, "One Lakh Fifty Thousand\n", out)

	_, err = runCommand(t, "words")
	assert.Error(t, err)

	_, err = runCommand(t, "words", "-5")
	assert.Error(t, err)

	_, err = runCommand(t, "words", "lots")
	assert.Error(t, err)

	for _, arg := range []string{"1e17", "NaN", "Inf"} {
		out, err := runCommand(t, "words", arg)
		assert.ErrorIs(t, err, service.ErrInvalidAmount, arg)
		assert.Empty(t, out, arg)
	}
}

func TestCalcCommand(t *testing.T) {
	out, err := runCommand(t, "calc", "--income", "1200000", "--regime", "new", "--age", "30")
	require.NoError(t, err)

	assert.Contains(t, out, "Regime: NEW (calculator)")
	assert.Contains(t, out, "1,19,600.00")
	assert.Contains(t, out, "In words: Rupees One Lakh Nineteen Thousand Six Hundred only")
}

func TestCalcCommand_Deductions(t *testing.T) {
	out, err := runCommand(t, "calc", "-i", "1000000", "-d", "80C=150000", "--rule-set", "filing-fy2024")
	require.NoError(t, err)

	assert.Contains(t, out, "Regime: OLD (filing-fy2024)")
	assert.Contains(t, out, "80C")
	assert.Contains(t, out, "8,00,000.00")
}

func TestCalcCommand_Errors(t *testing.T) {
	_, err := runCommand(t, "calc")
	assert.Error(t, err, "income is required")

	_, err = runCommand(t, "calc", "-i", "100", "-r", "flat")
	assert.Error(t, err)

	_, err = runCommand(t, "calc", "-i", "-100")
	assert.Error(t, err)
}

func TestCompareCommand(t *testing.T) {
	out, err := runCommand(t, "compare", "-i", "800000", "-d", "150000", "-a", "30")
	require.NoError(t, err)
	assert.Contains(t, out, "Old Regime: ₹33,800.00")
	assert.Contains(t, out, "New Regime: ₹46,800.00")
	assert.Contains(t, out, "Recommendation: Choose Old Regime to save ₹13,000.00")

	out, err = runCommand(t, "compare", "-i", "500000")
	require.NoError(t, err)
	assert.Contains(t, out, "Both regimes result in the same tax amount.")
}

func TestParseDeductions(t *testing.T) {
	got, err := parseDeductions([]string{"80C=150000", "50000", "80D = 2500", "80C=1000"})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"80C": 151_000, "other": 50_000, "80D": 2_500}, got)

	got, err = parseDeductions(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = parseDeductions([]string{"80C=abc"})
	assert.Error(t, err)
}
