package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/de-tools/ledger-atlas/pkg/metrics"
	"github.com/de-tools/ledger-atlas/pkg/models/domain"
	"github.com/de-tools/ledger-atlas/pkg/models/store"
)

var keySpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:ledger-atlas:transaction"))

type relatedKind int

const (
	relatedNone relatedKind = iota
	relatedCustomer
	relatedStaff
	// relatedDisplay carries a name the record already embeds.
	relatedDisplay
)

type relation struct {
	kind   relatedKind
	id     string
	name   string
	shares store.OrderedMap[store.CustomerShare]
}

type entry struct {
	record      *store.Base
	source      store.Source
	index       int
	sub         string
	typ         domain.TransactionType
	amount      store.Flex
	date        time.Time
	description string
	category    string
	related     relation
}

// emitter is the only place ledger entries are created, so every discard rule lives here.
type emitter struct {
	ctx      context.Context
	recorder *metrics.Recorder
	lookup   CustomerLookup
	rng      domain.DateRange
	out      []domain.Transaction
}

func (e *emitter) emit(en entry) {
	switch {
	case en.record == nil, !en.typ.Valid(), en.source == "":
		e.discard(en.source, en.record, metrics.ReasonMissingField)
		return
	case en.date.IsZero():
		e.discard(en.source, en.record, metrics.ReasonInvalidDate)
		return
	}
	amount, ok := ParseAmount(en.amount.String())
	if !ok {
		e.discard(en.source, en.record, metrics.ReasonBadAmount)
		return
	}

	key := fmt.Sprintf("%s|%d|%s|%s", en.source, en.index, en.record.ID.String(), en.sub)
	e.out = append(e.out, domain.Transaction{
		Key:         uuid.NewSHA1(keySpace, []byte(key)).String(),
		Date:        en.date,
		Description: orDefault(en.description, "-"),
		Category:    orDefault(en.category, CategoryUncategorized),
		Amount:      amount,
		Type:        en.typ,
		Source:      en.source.Path(),
		RelatedName: e.relatedName(en.record, en.related),
	})
}

func (e *emitter) discard(src store.Source, rec *store.Base, reason string) {
	e.recorder.Discarded(src.Path(), reason)

	ev := zerolog.Ctx(e.ctx).Debug().Str("source", src.Path()).Str("reason", reason)
	if rec != nil {
		ev = ev.Str("record_id", rec.ID.String())
	}
	ev.Msg("ledger entry discarded")
}

// skipped counts breakdown entries that could not be decoded, one discard each.
func (e *emitter) skipped(src store.Source, rec *store.Base, n int) {
	for range n {
		e.discard(src, rec, metrics.ReasonUndecodable)
	}
}

func (e *emitter) relatedName(rec *store.Base, r relation) string {
	switch r.kind {
	case relatedCustomer:
		if r.id != "" {
			return e.lookup.Name(r.id)
		}
	case relatedStaff:
		if r.name != "" {
			return r.name
		}
		if r.id == "" {
			return "-"
		}
		if share, ok := r.shares.Get(r.id); ok && share.Name.String() != "" {
			return share.Name.String()
		}
		return fmt.Sprintf("Staff %s", r.id)
	case relatedDisplay:
		if r.name != "" {
			return r.name
		}
	}

	if rec != nil && rec.Receiver.Present() {
		if rec.Receiver.Quoted() {
			return rec.Receiver.String()
		}
		return fmt.Sprintf("Receiver %s", rec.Receiver.String())
	}
	if r.id != "" {
		return fmt.Sprintf("ID: %s", r.id)
	}
	return "-"
}

// eachInRange resolves every record's date and calls fn for the ones inside the emitter's range.
// Records without a usable date are counted as discards.
func eachInRange[R any, P interface {
	*R
	Record() *store.Base
}](e *emitter, src store.Source, records []R, fn func(i int, rec *R, date time.Time)) {
	for i := range records {
		base := P(&records[i]).Record()
		date, ok := ResolveDate(base.Dated)
		if !ok {
			e.discard(src, base, metrics.ReasonInvalidDate)
			continue
		}
		if !e.rng.Contains(date) {
			continue
		}
		fn(i, &records[i], date)
	}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// firstText returns the first present value's text.
func firstText(values ...store.Flex) string {
	for _, v := range values {
		if v.Present() {
			return v.String()
		}
	}
	return ""
}
