package report

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/de-tools/ledger-atlas/pkg/models/domain"
)

const DefaultPageSize = 10

// View filters the ledger (all filters must match) and returns the requested page. The page is
// clamped into [1, TotalPages]; a page size below 1 falls back to DefaultPageSize.
func View(txs []domain.Transaction, filter domain.Filter, page, pageSize int) domain.Page {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	fold := cases.Fold()
	needle := fold.String(strings.TrimSpace(filter.Search))

	matched := make([]domain.Transaction, 0, len(txs))
	for _, tx := range txs {
		if filter.Type != "" && tx.Type != filter.Type {
			continue
		}
		if filter.Category != "" && tx.Category != filter.Category {
			continue
		}
		if needle != "" &&
			!strings.Contains(fold.String(tx.Description), needle) &&
			!strings.Contains(fold.String(tx.RelatedName), needle) &&
			!strings.Contains(fold.String(tx.Category), needle) {
			continue
		}
		matched = append(matched, tx)
	}

	total := len(matched)
	pages := max(1, (total+pageSize-1)/pageSize)
	page = min(max(page, 1), pages)

	start := min((page-1)*pageSize, total)
	end := min(start+pageSize, total)

	return domain.Page{
		Items:      matched[start:end],
		Page:       page,
		PageSize:   pageSize,
		TotalItems: total,
		TotalPages: pages,
	}
}

// Categories lists the distinct categories of the ledger in Persian collation order.
func Categories(txs []domain.Transaction) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, tx := range txs {
		if _, ok := seen[tx.Category]; ok {
			continue
		}
		seen[tx.Category] = struct{}{}
		out = append(out, tx.Category)
	}
	collate.New(language.Persian).SortStrings(out)
	return out
}
