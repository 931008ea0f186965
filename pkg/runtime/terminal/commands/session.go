package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/de-tools/ledger-atlas/pkg/calendar"
	"github.com/de-tools/ledger-atlas/pkg/models/domain"
	"github.com/de-tools/ledger-atlas/pkg/services/config"
)

const buildTimeout = 2 * time.Minute

type Runner interface {
	Run(ctx context.Context, key string, rng domain.DateRange) (*domain.FinancialReport, error)
}

type Publisher interface {
	Publish(ctx context.Context, report *domain.FinancialReport) (string, error)
}

// Globals holds the persistent flags of the root command.
type Globals struct {
	ConfigPath   string
	ProfilesPath string
	Profile      string
}

// Session is what a command needs to produce a report for the selected backend.
type Session struct {
	Runner    Runner
	Publisher Publisher // nil when publishing is not configured
	Report    config.ReportSettings
}

type Opener interface {
	Open(ctx context.Context, g Globals) (*Session, error)
	ListProfiles(ctx context.Context, g Globals) ([]string, error)
}

type rangeFlags struct {
	from     string
	to       string
	calendar string
	now      func() time.Time
}

func (rf *rangeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&rf.from, "from", "", "First day of the report (YYYY-MM-DD)")
	cmd.Flags().StringVar(&rf.to, "to", "", "Last day of the report (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&rf.calendar, "calendar", "gregorian", "Calendar of --from and --to: gregorian or jalaali")
}

func (rf *rangeFlags) resolve(ctx context.Context, settings config.ReportSettings) (domain.DateRange, error) {
	var jalaali bool
	switch rf.calendar {
	case "", "gregorian":
	case "jalaali":
		jalaali = true
	default:
		return domain.DateRange{}, fmt.Errorf("unsupported calendar %q, use gregorian or jalaali", rf.calendar)
	}

	now := time.Now
	if rf.now != nil {
		now = rf.now
	}
	fallback, err := settings.DefaultRange(ctx, now().UTC())
	if err != nil {
		return domain.DateRange{}, err
	}

	start, end := fallback.Start, fallback.End
	if rf.from != "" {
		if start, err = calendar.ParseDay(rf.from, jalaali); err != nil {
			return domain.DateRange{}, fmt.Errorf("invalid --from date: %w", err)
		}
	}
	if rf.to != "" {
		if end, err = calendar.ParseDay(rf.to, jalaali); err != nil {
			return domain.DateRange{}, fmt.Errorf("invalid --to date: %w", err)
		}
	}
	return domain.NewDateRange(start, end)
}

// build opens the selected backend and produces the report for the command's range.
func build(cmd *cobra.Command, opener Opener, g *Globals, rf *rangeFlags) (*domain.FinancialReport, *Session, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), buildTimeout)
	defer cancel()

	session, err := opener.Open(ctx, *g)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open profile %q: %w", g.Profile, err)
	}

	rng, err := rf.resolve(ctx, session.Report)
	if err != nil {
		return nil, nil, err
	}

	report, err := session.Runner.Run(ctx, "", rng)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build report: %w", err)
	}
	return report, session, nil
}
