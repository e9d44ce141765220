package service

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"income-tax/domain"
)

var (
	ErrUnknownRegime  = errors.New("unknown tax regime")
	ErrUnknownRuleSet = errors.New("unknown rule set")
	ErrInvalidRules   = errors.New("invalid regime rules")
)

const (
	RuleSetCalculator   = "calculator"
	RuleSetFilingFY2024 = "filing-fy2024"
	DefaultRuleSet      = RuleSetCalculator
)

// AgeBracket holds the slab table used from MinAge onwards. Brackets replace
// each other; they never stack.
type AgeBracket struct {
	MinAge int               `json:"min_age" yaml:"min_age"`
	Slabs  []domain.SlabRule `json:"slabs" yaml:"slabs"`
}

// RegimeRules is the complete parameter set of one regime.
type RegimeRules struct {
	AgeBrackets       []AgeBracket `json:"age_brackets" yaml:"age_brackets"`
	StandardDeduction float64      `json:"standard_deduction" yaml:"standard_deduction"`
	AllowsDeductions  bool         `json:"allows_deductions" yaml:"allows_deductions"`
	RebateCeiling     float64      `json:"rebate_ceiling" yaml:"rebate_ceiling"`
	RebateCap         float64      `json:"rebate_cap" yaml:"rebate_cap"`
	CessRate          float64      `json:"cess_rate" yaml:"cess_rate"`
}

// SlabsFor returns the table of the highest bracket whose MinAge is <= age.
func (r RegimeRules) SlabsFor(age int) []domain.SlabRule {
	var slabs []domain.SlabRule
	for _, b := range r.AgeBrackets {
		if age >= b.MinAge {
			slabs = b.Slabs
		}
	}
	return slabs
}

func (r RegimeRules) validate() error {
	if len(r.AgeBrackets) == 0 {
		return errors.New("no age brackets")
	}
	if r.AgeBrackets[0].MinAge != 0 {
		return errors.New("first age bracket must start at 0")
	}
	for i, b := range r.AgeBrackets {
		if i > 0 && b.MinAge <= r.AgeBrackets[i-1].MinAge {
			return fmt.Errorf("age bracket %d: min_age must increase", b.MinAge)
		}
		if err := validateSlabs(b.Slabs); err != nil {
			return fmt.Errorf("age bracket %d: %w", b.MinAge, err)
		}
	}
	if r.StandardDeduction < 0 || r.RebateCeiling < 0 || r.RebateCap < 0 {
		return errors.New("standard deduction and rebate figures must not be negative")
	}
	if r.CessRate < 0 || r.CessRate > 1 {
		return fmt.Errorf("cess rate %.4f out of [0,1]", r.CessRate)
	}
	return nil
}

func validateSlabs(slabs []domain.SlabRule) error {
	if len(slabs) == 0 {
		return errors.New("empty slab table")
	}
	last := len(slabs) - 1
	for i, s := range slabs {
		if s.Rate < 0 || s.Rate > 1 {
			return fmt.Errorf("band %d: rate %.4f out of [0,1]", i, s.Rate)
		}
		if i == last {
			if s.UpTo != 0 {
				return errors.New("last band must be unbounded")
			}
			break
		}
		if s.UpTo <= 0 {
			return fmt.Errorf("band %d: only the last band may be unbounded", i)
		}
		if i > 0 && s.UpTo <= slabs[i-1].UpTo {
			return fmt.Errorf("band %d: upper bounds must strictly increase", i)
		}
		if s.Rate > slabs[i+1].Rate {
			return fmt.Errorf("band %d: rates must not decrease", i)
		}
	}
	return nil
}

// RuleSet pairs the two regimes as encoded by one tax page.
type RuleSet struct {
	Name string      `json:"name" yaml:"name"`
	Old  RegimeRules `json:"old" yaml:"old"`
	New  RegimeRules `json:"new" yaml:"new"`
}

// Regime returns the rules for reg or ErrUnknownRegime.
func (rs RuleSet) Regime(reg domain.Regime) (RegimeRules, error) {
	switch reg {
	case domain.RegimeOld:
		return rs.Old, nil
	case domain.RegimeNew:
		return rs.New, nil
	}
	return RegimeRules{}, fmt.Errorf("%w: %q", ErrUnknownRegime, reg)
}

// Fingerprint hashes every figure of rs, so two sets sharing a name but not
// their rules never share cached results.
func (rs RuleSet) Fingerprint() string {
	return strconv.FormatUint(xxhash.Sum64String(fmt.Sprintf("%+v", rs)), 16)
}

func (rs RuleSet) validate() error {
	if strings.TrimSpace(rs.Name) == "" {
		return fmt.Errorf("%w: rule set without name", ErrInvalidRules)
	}
	if err := rs.Old.validate(); err != nil {
		return fmt.Errorf("%w: %s/OLD: %v", ErrInvalidRules, rs.Name, err)
	}
	if err := rs.New.validate(); err != nil {
		return fmt.Errorf("%w: %s/NEW: %v", ErrInvalidRules, rs.Name, err)
	}
	return nil
}

// ParseRegime accepts "old", "OLD", "Old Regime" and the same for new.
func ParseRegime(s string) (domain.Regime, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	v = strings.TrimSpace(strings.TrimSuffix(v, "REGIME"))
	switch domain.Regime(v) {
	case domain.RegimeOld:
		return domain.RegimeOld, nil
	case domain.RegimeNew:
		return domain.RegimeNew, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRegime, s)
}

// RuleBook is the registry of named rule sets.
type RuleBook struct {
	sets        map[string]RuleSet
	defaultName string
}

// NewRuleBook validates and registers the given rule sets. The first one is
// the default.
func NewRuleBook(sets ...RuleSet) (*RuleBook, error) {
	b := &RuleBook{sets: make(map[string]RuleSet, len(sets))}
	if err := b.Add(sets...); err != nil {
		return nil, err
	}
	if len(sets) > 0 {
		b.defaultName = sets[0].Name
	}
	return b, nil
}

// DefaultRuleBook holds the calculator and filing rule sets.
func DefaultRuleBook() *RuleBook {
	b, err := NewRuleBook(CalculatorRules(), FilingFY2024Rules())
	if err != nil {
		panic(err)
	}
	return b
}

// Add registers sets, replacing any with the same name.
func (b *RuleBook) Add(sets ...RuleSet) error {
	for _, rs := range sets {
		if err := rs.validate(); err != nil {
			return err
		}
	}
	for _, rs := range sets {
		b.sets[rs.Name] = rs
	}
	return nil
}

// SetDefault changes the rule set used when a request names none.
func (b *RuleBook) SetDefault(name string) error {
	if _, ok := b.sets[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownRuleSet, name)
	}
	b.defaultName = name
	return nil
}

// Get returns the named rule set; an empty name selects the default.
func (b *RuleBook) Get(name string) (RuleSet, error) {
	if name == "" {
		name = b.defaultName
	}
	rs, ok := b.sets[name]
	if !ok {
		return RuleSet{}, fmt.Errorf("%w: %q", ErrUnknownRuleSet, name)
	}
	return rs, nil
}

func (b *RuleBook) DefaultName() string {
	return b.defaultName
}

func (b *RuleBook) Names() []string {
	names := make([]string, 0, len(b.sets))
	for name := range b.sets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CalculatorRules are the figures of the quick calculator page.
func CalculatorRules() RuleSet {
	return RuleSet{
		Name: RuleSetCalculator,
		Old: RegimeRules{
			AgeBrackets: []AgeBracket{
				{MinAge: 0, Slabs: []domain.SlabRule{
					{UpTo: 250_000, Rate: 0},
					{UpTo: 500_000, Rate: 0.05},
					{UpTo: 1_000_000, Rate: 0.20},
					{Rate: 0.30},
				}},
				{MinAge: 60, Slabs: []domain.SlabRule{
					{UpTo: 300_000, Rate: 0},
					{UpTo: 500_000, Rate: 0.05},
					{UpTo: 1_000_000, Rate: 0.20},
					{Rate: 0.30},
				}},
				// a los 80 la exención llega a 5L y la banda del 5% desaparece
				{MinAge: 80, Slabs: []domain.SlabRule{
					{UpTo: 500_000, Rate: 0},
					{UpTo: 1_000_000, Rate: 0.20},
					{Rate: 0.30},
				}},
			},
			StandardDeduction: 50_000,
			AllowsDeductions:  true,
			RebateCeiling:     500_000,
			RebateCap:         12_500,
			CessRate:          0.04,
		},
		New: RegimeRules{
			AgeBrackets: []AgeBracket{
				{MinAge: 0, Slabs: []domain.SlabRule{
					{UpTo: 250_000, Rate: 0},
					{UpTo: 500_000, Rate: 0.05},
					{UpTo: 750_000, Rate: 0.10},
					{UpTo: 1_000_000, Rate: 0.15},
					{UpTo: 1_250_000, Rate: 0.20},
					{UpTo: 1_500_000, Rate: 0.25},
					{Rate: 0.30},
				}},
			},
			RebateCeiling: 700_000,
			RebateCap:     25_000,
			CessRate:      0.04,
		},
	}
}

// FilingFY2024Rules are the figures of the FY 2024-25 filing worksheet. The
// senior table shifts every band by the higher exemption.
func FilingFY2024Rules() RuleSet {
	return RuleSet{
		Name: RuleSetFilingFY2024,
		Old: RegimeRules{
			AgeBrackets: []AgeBracket{
				{MinAge: 0, Slabs: []domain.SlabRule{
					{UpTo: 250_000, Rate: 0},
					{UpTo: 500_000, Rate: 0.05},
					{UpTo: 1_000_000, Rate: 0.20},
					{Rate: 0.30},
				}},
				{MinAge: domain.SeniorCitizenAge, Slabs: []domain.SlabRule{
					{UpTo: 300_000, Rate: 0},
					{UpTo: 550_000, Rate: 0.05},
					{UpTo: 1_050_000, Rate: 0.20},
					{Rate: 0.30},
				}},
			},
			StandardDeduction: 50_000,
			AllowsDeductions:  true,
			RebateCeiling:     500_000,
			RebateCap:         12_500,
			CessRate:          0.04,
		},
		New: RegimeRules{
			AgeBrackets: []AgeBracket{
				{MinAge: 0, Slabs: []domain.SlabRule{
					{UpTo: 300_000, Rate: 0},
					{UpTo: 700_000, Rate: 0.05},
					{UpTo: 1_000_000, Rate: 0.10},
					{UpTo: 1_200_000, Rate: 0.15},
					{UpTo: 1_500_000, Rate: 0.20},
					{Rate: 0.30},
				}},
			},
			RebateCeiling: 700_000,
			RebateCap:     25_000,
			CessRate:      0.04,
		},
	}
}
