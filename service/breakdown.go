package service

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"income-tax/domain"
)

// FormatRupees renders amount with two decimals and Indian digit grouping:
// 1234567.5 -> "12,34,567.50".
func FormatRupees(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	s := strconv.FormatFloat(roundTo2Decimals(amount), 'f', 2, 64)
	whole, frac := s[:len(s)-3], s[len(s)-2:]

	if len(whole) > 3 {
		head, tail := whole[:len(whole)-3], whole[len(whole)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		groups = append([]string{head}, groups...)
		whole = strings.Join(groups, ",") + "," + tail
	}
	return sign + whole + "." + frac
}

// FormatBreakdown lays out a calculation as aligned text lines.
func FormatBreakdown(in domain.TaxInput, r domain.TaxResult) string {
	var b strings.Builder
	line := func(label string, amount float64) {
		fmt.Fprintf(&b, "%-22s ₹%15s\n", label, FormatRupees(amount))
	}

	fmt.Fprintf(&b, "Regime: %s (%s)\n", r.Regime, r.RuleSet)
	line("Gross Income", in.GrossIncome)
	if len(in.Deductions) > 0 && r.TotalDeductions > 0 {
		categories := make([]string, 0, len(in.Deductions))
		for c := range in.Deductions {
			categories = append(categories, c)
		}
		sort.Strings(categories)
		for _, c := range categories {
			line("  "+c, in.Deductions[c])
		}
	}
	line("Total Deductions", r.TotalDeductions)
	line("Standard Deduction", r.StandardDeduction)
	line("Taxable Income", r.TaxableIncome)
	for _, band := range r.Bands {
		upTo := "above"
		if band.UpTo > 0 {
			upTo = FormatRupees(band.UpTo)
		}
		line(fmt.Sprintf("  @%g%% to %s", math.Round(band.Rate*10000)/100, upTo), band.Amount)
	}
	line("Slab Tax", r.SlabTax)
	line("Rebate u/s 87A", r.Rebate)
	line("Tax after Rebate", r.TaxAfterRebate)
	line("Cess", r.Cess)
	line("Total Tax", r.TotalTax)
	return b.String()
}
