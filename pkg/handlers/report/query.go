package report

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/de-tools/ledger-atlas/pkg/calendar"
	"github.com/de-tools/ledger-atlas/pkg/models/domain"
)

const (
	calendarJalaali = "jalaali"
	dateLayout      = "2006-01-02"
)

type query struct {
	From     string
	To       string
	Calendar string `validate:"omitempty,oneof=gregorian jalaali"`
	Type     string `validate:"omitempty,oneof=income expense"`
	Category string `validate:"max=200"`
	Search   string `validate:"max=200"`
	Page     int    `validate:"min=0"`
	PageSize int    `validate:"min=0,max=500"`
}

var errBadQuery = errors.New("invalid query")

func parseQuery(v *validator.Validate, r *http.Request) (query, error) {
	values := r.URL.Query()
	q := query{
		From:     strings.TrimSpace(values.Get("from")),
		To:       strings.TrimSpace(values.Get("to")),
		Calendar: strings.ToLower(strings.TrimSpace(values.Get("calendar"))),
		Type:     strings.TrimSpace(values.Get("type")),
		Category: values.Get("category"),
		Search:   values.Get("q"),
	}

	for name, dst := range map[string]*int{"page": &q.Page, "page_size": &q.PageSize} {
		raw := values.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return query{}, fmt.Errorf("%w: '%s' must be an integer", errBadQuery, name)
		}
		*dst = n
	}

	if err := v.Struct(q); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return query{}, fmt.Errorf("%w: '%s' failed '%s'", errBadQuery, strings.ToLower(verrs[0].Field()), verrs[0].Tag())
		}
		return query{}, fmt.Errorf("%w: %v", errBadQuery, err)
	}
	return q, nil
}

func (q query) filter() domain.Filter {
	return domain.Filter{
		Type:     domain.TransactionType(q.Type),
		Category: q.Category,
		Search:   q.Search,
	}
}

// dateRange resolves from/to in the requested calendar, defaulting to fallback's bounds.
func (q query) dateRange(fallback domain.DateRange) (domain.DateRange, error) {
	start, end := fallback.Start, fallback.End
	if q.From != "" {
		t, err := q.parseDate(q.From)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("%w: invalid 'from' date. Expected format: YYYY-MM-DD", errBadQuery)
		}
		start = t
	}
	if q.To != "" {
		t, err := q.parseDate(q.To)
		if err != nil {
			return domain.DateRange{}, fmt.Errorf("%w: invalid 'to' date. Expected format: YYYY-MM-DD", errBadQuery)
		}
		end = t
	}
	rng, err := domain.NewDateRange(start, end)
	if err != nil {
		return domain.DateRange{}, fmt.Errorf("%w: %v", errBadQuery, err)
	}
	return rng, nil
}

func (q query) parseDate(s string) (time.Time, error) {
	return calendar.ParseDay(s, q.Calendar == calendarJalaali)
}
