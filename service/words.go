package service

import (
	"fmt"
	"math"
	"strings"
)

var units = [...]string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

var scales = []struct {
	value int64
	name  string
}{
	{10_000_000, "Crore"},
	{100_000, "Lakh"},
	{1_000, "Thousand"},
}

// AmountInWords spells a rupee amount in the Indian numbering system, e.g.
// 150000 -> "One Lakh Fifty Thousand". Paise are rounded to two digits and
// appended as "and Paise <words>". Amounts that are not finite or exceed
// MaxIncome in magnitude return ErrInvalidAmount.
func AmountInWords(amount float64) (string, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || math.Abs(amount) > MaxIncome {
		return "", fmt.Errorf("amount %v: %w", amount, ErrInvalidAmount)
	}

	prefix := ""
	if amount < 0 {
		prefix = "Minus "
		amount = -amount
	}

	totalPaise := int64(math.Round(amount * 100))
	rupees, paise := totalPaise/100, totalPaise%100
	if rupees == 0 && paise == 0 {
		return "Zero", nil
	}

	words := []string{"Zero"}
	if rupees > 0 {
		words = integerWords(rupees)
	}
	if paise > 0 {
		words = append(words, "and", "Paise", belowHundred(paise))
	}
	return prefix + strings.Join(words, " "), nil
}

func integerWords(n int64) []string {
	var words []string
	for _, scale := range scales {
		if q := n / scale.value; q > 0 {
			words = append(words, integerWords(q)...)
			words = append(words, scale.name)
			n %= scale.value
		}
	}
	if h := n / 100; h > 0 {
		words = append(words, units[h], "Hundred")
		n %= 100
	}
	if n > 0 {
		if len(words) > 0 {
			words = append(words, "and")
		}
		words = append(words, belowHundred(n))
	}
	return words
}

// belowHundred spells 1..99.
func belowHundred(n int64) string {
	if n < 20 {
		return units[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + units[n%10]
}
