package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"income-tax/domain"
	"income-tax/repository"
)

// ComparisonService evaluates both regimes for the same income.
type ComparisonService struct {
	taxService *TaxService
	cache      repository.CacheRepository
	logger     zerolog.Logger
}

func NewComparisonService(
	taxService *TaxService,
	cache repository.CacheRepository,
	logger zerolog.Logger,
) *ComparisonService {
	return &ComparisonService{
		taxService: taxService,
		cache:      cache,
		logger:     logger,
	}
}

// CompareRegimes applies the deductions to the old regime only and recommends
// the regime with the strictly lower total tax. A tie recommends neither.
func (s *ComparisonService) CompareRegimes(
	ctx context.Context,
	input domain.ComparisonInput,
) (domain.RegimeComparison, error) {
	if err := CheckAmount("deductions", input.Deductions); err != nil {
		return domain.RegimeComparison{}, err
	}
	ruleSet, err := s.taxService.Rules().Get(input.RuleSet)
	if err != nil {
		return domain.RegimeComparison{}, err
	}
	input.RuleSet = ruleSet.Name

	key := comparisonKey(ruleSet, input)
	if cached, ok := s.cache.Get(ctx, key); ok {
		var cmp domain.RegimeComparison
		if err := json.Unmarshal([]byte(cached), &cmp); err == nil {
			return cmp, nil
		}
		s.logger.Warn().Str("key", key).Msg("discarding unreadable cached comparison")
	}

	oldResult, err := s.taxService.Evaluate(domain.TaxInput{
		RuleSet:     input.RuleSet,
		GrossIncome: input.GrossIncome,
		Age:         input.Age,
		Regime:      domain.RegimeOld,
		Deductions:  map[string]float64{"total": input.Deductions},
	})
	if err != nil {
		return domain.RegimeComparison{}, err
	}

	newResult, err := s.taxService.Evaluate(domain.TaxInput{
		RuleSet:     input.RuleSet,
		GrossIncome: input.GrossIncome,
		Age:         input.Age,
		Regime:      domain.RegimeNew,
	})
	if err != nil {
		return domain.RegimeComparison{}, err
	}

	cmp := Recommend(oldResult, newResult)

	if payload, err := json.Marshal(cmp); err == nil {
		if err := s.cache.Set(ctx, key, string(payload)); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("failed to cache comparison")
		}
	}
	return cmp, nil
}

// Recommend builds the comparison of two already computed results.
func Recommend(oldResult, newResult domain.TaxResult) domain.RegimeComparison {
	cmp := domain.RegimeComparison{Old: oldResult, New: newResult}
	switch {
	case oldResult.TotalTax < newResult.TotalTax:
		cmp.Recommended = domain.RegimeOld
	case newResult.TotalTax < oldResult.TotalTax:
		cmp.Recommended = domain.RegimeNew
	}
	cmp.Savings = roundTo2Decimals(math.Abs(oldResult.TotalTax - newResult.TotalTax))
	return cmp
}

func comparisonKey(rs RuleSet, in domain.ComparisonInput) string {
	return fmt.Sprintf("compare:%s@%s:%.2f:%.2f:%d",
		rs.Name, rs.Fingerprint(), in.GrossIncome, in.Deductions, in.Age)
}
