package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/de-tools/ledger-atlas/pkg/adapters"
	"github.com/de-tools/ledger-atlas/pkg/models/api"
	"github.com/de-tools/ledger-atlas/pkg/models/domain"
	"github.com/de-tools/ledger-atlas/pkg/services/config"
	"github.com/de-tools/ledger-atlas/pkg/services/export"
	reports "github.com/de-tools/ledger-atlas/pkg/services/report"
)

// SessionHeader opts a request into latest-wins coordination with earlier requests carrying the
// same value.
const SessionHeader = "X-Report-Session"

type Runner interface {
	Run(ctx context.Context, key string, rng domain.DateRange) (*domain.FinancialReport, error)
}

type Publisher interface {
	Publish(ctx context.Context, report *domain.FinancialReport) (string, error)
}

type Handler struct {
	runner    Runner
	publisher Publisher
	settings  config.ReportSettings
	validate  *validator.Validate
	now       func() time.Time
	render    func(io.Writer, *domain.FinancialReport) error
}

// NewHandler wires the report endpoints. publisher may be nil, which disables publishing.
func NewHandler(runner Runner, publisher Publisher, settings config.ReportSettings) *Handler {
	return &Handler{
		runner:    runner,
		publisher: publisher,
		settings:  settings,
		validate:  validator.New(),
		now:       time.Now,
		render:    export.WriteXLSX,
	}
}

func (h *Handler) GetFinancialReport(w http.ResponseWriter, r *http.Request) {
	report, _, ok := h.build(w, r)
	if !ok {
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, adapters.MapDomainReportToAPI(report))
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	report, q, ok := h.build(w, r)
	if !ok {
		return
	}
	pageSize := q.PageSize
	if pageSize == 0 {
		pageSize = h.settings.PageSize
	}
	page := reports.View(report.Transactions, q.filter(), q.Page, pageSize)
	writeJSON(r.Context(), w, http.StatusOK, adapters.MapDomainPageToAPI(page, report.Errors))
}

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	report, _, ok := h.build(w, r)
	if !ok {
		return
	}
	writeJSON(r.Context(), w, http.StatusOK, api.CategoryList{Categories: report.Categories})
}

func (h *Handler) ExportReport(w http.ResponseWriter, r *http.Request) {
	report, _, ok := h.build(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.render(&buf, report); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to render workbook")
		http.Error(w, "failed to render workbook", http.StatusInternalServerError)
		return
	}

	name := fmt.Sprintf("financial_%s_%s.xlsx", report.Range.Start.Format(dateLayout), report.Range.End.Format(dateLayout))
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to send workbook")
	}
}

func (h *Handler) PublishReport(w http.ResponseWriter, r *http.Request) {
	if h.publisher == nil {
		http.Error(w, "publishing is not configured", http.StatusNotImplemented)
		return
	}
	report, _, ok := h.build(w, r)
	if !ok {
		return
	}

	location, err := h.publisher.Publish(r.Context(), report)
	if err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to publish report")
		http.Error(w, "failed to publish report", http.StatusBadGateway)
		return
	}
	writeJSON(r.Context(), w, http.StatusCreated, api.PublishResult{Location: location})
}

// build parses the query and runs the report, writing the error response itself when it fails.
func (h *Handler) build(w http.ResponseWriter, r *http.Request) (*domain.FinancialReport, query, bool) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	q, err := parseQuery(h.validate, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, query{}, false
	}

	fallback, err := h.settings.DefaultRange(ctx, h.now().UTC())
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve default range")
		http.Error(w, "failed to resolve default range", http.StatusInternalServerError)
		return nil, query{}, false
	}
	rng, err := q.dateRange(fallback)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, query{}, false
	}

	report, err := h.runner.Run(ctx, r.Header.Get(SessionHeader), rng)
	switch {
	case err == nil:
		return report, q, true
	case errors.Is(err, reports.ErrSuperseded):
		http.Error(w, "superseded by a newer request", http.StatusConflict)
	case errors.Is(err, domain.ErrInvalidRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, context.Canceled):
		logger.Debug().Msg("client went away before the report was ready")
	default:
		logger.Error().Err(err).Msg("failed to build report")
		http.Error(w, "failed to build report", http.StatusInternalServerError)
	}
	return nil, query{}, false
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
	}
}
