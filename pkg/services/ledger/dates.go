package ledger

import (
	"strings"
	"time"

	"github.com/de-tools/ledger-atlas/pkg/calendar"
	"github.com/de-tools/ledger-atlas/pkg/models/domain"
	"github.com/de-tools/ledger-atlas/pkg/models/store"
)

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
}

// ResolveDate picks the record's date: the first explicit date field that parses to a year after
// 1970, otherwise the Jalaali year with month (or time, when month is empty) approximated to the
// 15th. The result is always UTC.
func ResolveDate(d store.Dated) (time.Time, bool) {
	for _, f := range []store.Flex{d.IssueDate, d.PaymentDate, d.TransactionDate, d.Date, d.CreatedAt, d.UpdatedAt} {
		if t, ok := parseTimestamp(f); ok {
			return t, true
		}
	}

	month := d.Month
	if !month.Present() {
		month = d.Time
	}
	if !d.Year.Present() || !month.Present() {
		return time.Time{}, false
	}
	return calendar.ApproximateGregorian(d.Year.String(), month.String())
}

func parseTimestamp(f store.Flex) (time.Time, bool) {
	if !f.Quoted() {
		return time.Time{}, false
	}
	s := strings.TrimSpace(f.String())
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		t = t.UTC()
		if t.Year() <= 1970 {
			return time.Time{}, false
		}
		return t, true
	}
	return time.Time{}, false
}

// InRange keeps the records whose resolved date falls inside rng.
func InRange[R any, P interface {
	*R
	Record() *store.Base
}](records []R, rng domain.DateRange) []R {
	out := make([]R, 0, len(records))
	for i := range records {
		date, ok := ResolveDate(P(&records[i]).Record().Dated)
		if ok && rng.Contains(date) {
			out = append(out, records[i])
		}
	}
	return out
}
