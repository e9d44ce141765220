package cli

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"income-tax/config"
	httpLayer "income-tax/http"
	"income-tax/repository"
	"income-tax/service"
)

// app holds the wired services and the resources to release on exit.
type app struct {
	tax        *service.TaxService
	comparison *service.ComparisonService
	filing     *service.FilingService
	salary     *service.SalaryService
	auth       *service.AuthService
	closers    []func() error
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

func newRuleBook(cfg config.TaxConfig) (*service.RuleBook, error) {
	book, err := service.LoadRuleBook(cfg.RulesFile)
	if err != nil {
		return nil, err
	}
	if cfg.RuleSet != "" {
		if err := book.SetDefault(cfg.RuleSet); err != nil {
			return nil, err
		}
	}
	return book, nil
}

// newCalculators wires the pure calculation services with in-memory storage.
func newCalculators(cfg config.Config, logger zerolog.Logger) (*app, error) {
	book, err := newRuleBook(cfg.Tax)
	if err != nil {
		return nil, err
	}

	a := &app{}
	var cache repository.CacheRepository = repository.NewMemoryCache()
	if cfg.Redis.Enabled {
		redisCache := repository.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.TTL, logger)
		if err := redisCache.Ping(context.Background()); err != nil {
			logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unavailable, using memory cache")
			_ = redisCache.Close()
		} else {
			cache = redisCache
			a.closers = append(a.closers, redisCache.Close)
		}
	}

	taxRepo := repository.NewTaxRepositoryMemory(cfg.Tax.HistorySize)
	a.tax = service.NewTaxService(book, taxRepo, logger)
	a.comparison = service.NewComparisonService(a.tax, cache, logger)
	a.filing = service.NewFilingService(a.tax, a.comparison, logger)
	a.salary = service.NewSalaryService()
	return a, nil
}

// newApp wires everything, including the user store.
func newApp(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*app, error) {
	a, err := newCalculators(cfg, logger)
	if err != nil {
		return nil, err
	}

	db, err := repository.OpenSQLite(ctx, cfg.Database.Path, cfg.Database.BusyTimeout)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to open user store: %w", err)
	}
	a.closers = append(a.closers, db.Close)

	a.auth, err = newAuthService(db, cfg.Auth, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func newAuthService(db *sqlx.DB, cfg config.AuthConfig, logger zerolog.Logger) (*service.AuthService, error) {
	return service.NewAuthService(repository.NewUserRepositorySQL(db), cfg.BcryptCost, logger)
}

func (a *app) dependencies(limiter *httpLayer.RateLimiter, logger zerolog.Logger) httpLayer.Dependencies {
	deps := httpLayer.Dependencies{
		Tax:         httpLayer.NewTaxHandler(a.tax),
		Comparison:  httpLayer.NewComparisonHandler(a.comparison),
		Filing:      httpLayer.NewFilingHandler(a.filing),
		Salary:      httpLayer.NewSalaryHandler(a.salary),
		RateLimiter: limiter,
		Logger:      logger,
	}
	if a.auth != nil {
		deps.Auth = httpLayer.NewAuthHandler(a.auth)
	}
	return deps
}
