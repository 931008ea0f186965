package source

import (
	"context"
	"encoding/json"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/de-tools/ledger-atlas/pkg/metrics"
	"github.com/de-tools/ledger-atlas/pkg/models/domain"
	"github.com/de-tools/ledger-atlas/pkg/models/store"
	"github.com/de-tools/ledger-atlas/pkg/store/client"
)

const (
	DefaultPageSize      = 10000
	DefaultOverFetchDays = 31
)

// Getter is the transport collaborator. *client.Client implements it.
type Getter interface {
	Get(ctx context.Context, path string, query url.Values) (*client.Response, error)
}

// Config tunes the fan-out. A zero PageSize or OverFetchDays takes the default. A negative
// OverFetchDays disables widening.
type Config struct {
	PageSize      int
	OverFetchDays int
}

// Result is one fan-out over every source. Errors holds one diagnostic per failed source, in
// registry order.
type Result struct {
	Snapshot store.Snapshot
	Errors   []string
}

type Fetcher struct {
	client   Getter
	recorder *metrics.Recorder
	config   Config
}

func NewFetcher(c Getter, recorder *metrics.Recorder, cfg Config) *Fetcher {
	if cfg.PageSize < 1 {
		cfg.PageSize = DefaultPageSize
	}
	switch {
	case cfg.OverFetchDays == 0:
		cfg.OverFetchDays = DefaultOverFetchDays
	case cfg.OverFetchDays < 0:
		cfg.OverFetchDays = 0
	}
	return &Fetcher{client: c, recorder: recorder, config: cfg}
}

// FetchSource reads one collection. It never fails: any problem yields no records and a
// diagnostic naming the source and the cause.
func (f *Fetcher) FetchSource(ctx context.Context, src store.Source, rng domain.DateRange) ([]json.RawMessage, string) {
	logger := zerolog.Ctx(ctx).With().Str("source", src.Path()).Logger()

	resp, err := f.client.Get(ctx, src.Path(), f.query(rng))
	if err != nil {
		f.recorder.FetchFailed(src.Path())
		logger.Warn().Err(err).Msg("source fetch failed")
		return []json.RawMessage{}, diagnose(src, err)
	}

	items, err := decodeCollection(resp.Body)
	if err != nil {
		f.recorder.FetchFailed(src.Path())
		logger.Warn().Err(err).Msg("source returned an unreadable body")
		return []json.RawMessage{}, diagnose(src, err)
	}

	logger.Debug().Int("records", len(items)).Msg("source fetched")
	return items, ""
}

// FetchAll reads every source concurrently. Each task only writes its own slot, and a failed source
// never stops the others.
func (f *Fetcher) FetchAll(ctx context.Context, rng domain.DateRange) Result {
	raw := make([][]json.RawMessage, len(store.Sources))
	diags := make([]string, len(store.Sources))

	var g errgroup.Group
	for i, src := range store.Sources {
		g.Go(func() error {
			raw[i], diags[i] = f.FetchSource(ctx, src, rng)
			return nil
		})
	}
	_ = g.Wait()

	var res Result
	for i, src := range store.Sources {
		if diags[i] != "" {
			res.Errors = append(res.Errors, diags[i])
		}
		f.assign(ctx, &res.Snapshot, src, raw[i])
	}
	return res
}

func (f *Fetcher) query(rng domain.DateRange) url.Values {
	q := url.Values{}
	q.Set("page_size", strconv.Itoa(f.config.PageSize))
	if !rng.Start.IsZero() && !rng.End.IsZero() {
		wide := rng.Widen(time.Duration(f.config.OverFetchDays) * 24 * time.Hour)
		q.Set("start_date", wide.Start.Format(time.DateOnly))
		q.Set("end_date", wide.End.Format(time.DateOnly))
	}
	return q
}

func (f *Fetcher) assign(ctx context.Context, snap *store.Snapshot, src store.Source, raw []json.RawMessage) {
	switch src {
	case store.SourceExpenditures:
		snap.Expenditures = decodeRecords[store.Expenditure](ctx, f.recorder, src, raw)
	case store.SourceMiscIncome:
		snap.MiscIncome = decodeRecords[store.MiscIncome](ctx, f.recorder, src, raw)
	case store.SourceRent:
		snap.Rent = decodeRecords[store.Charge](ctx, f.recorder, src, raw)
	case store.SourceServices:
		snap.Services = decodeRecords[store.Charge](ctx, f.recorder, src, raw)
	case store.SourceSalaries:
		snap.Salaries = decodeRecords[store.Salary](ctx, f.recorder, src, raw)
	case store.SourceCustomers:
		snap.Customers = decodeRecords[store.Customer](ctx, f.recorder, src, raw)
	case store.SourceAgreements:
		snap.Agreements = decodeRecords[store.Agreement](ctx, f.recorder, src, raw)
	case store.SourceUnitBills:
		snap.UnitBills = decodeRecords[store.UnitBill](ctx, f.recorder, src, raw)
	case store.SourceUnitAdjustments:
		snap.UnitAdjustments = decodeRecords[store.UnitAdjustment](ctx, f.recorder, src, raw)
	}
}
