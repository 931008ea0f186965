package report

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/ledger-atlas/pkg/models/domain"
	"github.com/de-tools/ledger-atlas/pkg/services/ledger"
	"github.com/de-tools/ledger-atlas/pkg/services/source"
)

type Fetcher interface {
	FetchAll(ctx context.Context, rng domain.DateRange) source.Result
}

// Builder produces a report for a date range.
type Builder interface {
	Build(ctx context.Context, rng domain.DateRange) (*domain.FinancialReport, error)
}

type Engine struct {
	fetcher    Fetcher
	normalizer *ledger.Normalizer
}

func NewEngine(fetcher Fetcher, normalizer *ledger.Normalizer) *Engine {
	return &Engine{fetcher: fetcher, normalizer: normalizer}
}

// Build fetches every source and derives the full report. Failed sources do not fail the build;
// they are listed in the report's Errors. Only an inverted range or a cancelled context is an error.
func (e *Engine) Build(ctx context.Context, rng domain.DateRange) (*domain.FinancialReport, error) {
	if rng.End.Before(rng.Start) {
		return nil, domain.ErrInvalidRange
	}
	logger := zerolog.Ctx(ctx)

	res := e.fetcher.FetchAll(ctx, rng)
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("report build interrupted: %w", err)
	}

	lookup := ledger.NewCustomerLookup(res.Snapshot.Customers)
	txs := e.normalizer.Normalize(ctx, res.Snapshot, lookup, rng)

	errs := res.Errors
	if errs == nil {
		errs = []string{}
	}
	report := &domain.FinancialReport{
		Range:              rng,
		Transactions:       txs,
		MonthlyBuckets:     Aggregate(txs),
		IncomeDistribution: IncomeDistribution(txs),
		Categories:         Categories(txs),
		Arrears:            ComputeArrears(res.Snapshot, rng),
		Summary:            Summarize(txs),
		Occupancy:          ComputeOccupancy(res.Snapshot),
		Errors:             errs,
	}

	logger.Info().
		Int("transactions", len(txs)).
		Int("degraded_sources", len(errs)).
		Msg("financial report built")
	return report, nil
}
