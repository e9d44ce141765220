package repository

import (
	"context"

	"income-tax/domain"
)

type TaxRepository interface {
	Save(ctx context.Context, input domain.TaxInput, result domain.TaxResult) (domain.Calculation, error)
	List(ctx context.Context, limit int) ([]domain.Calculation, error)
}
