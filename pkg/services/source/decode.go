package source

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/de-tools/ledger-atlas/pkg/metrics"
	"github.com/de-tools/ledger-atlas/pkg/models/store"
)

// decodeCollection accepts a bare array or a paginated envelope with "results". Valid JSON of any
// other shape is an empty collection.
func decodeCollection(body []byte) ([]json.RawMessage, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return []json.RawMessage{}, nil
	}
	if !json.Valid(body) {
		return nil, errInvalidBody
	}

	switch body[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
		}
		return items, nil
	case '{':
		var envelope struct {
			Results json.RawMessage `json:"results"`
		}
		if err := json.Unmarshal(body, &envelope); err != nil {
			return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
		}
		var items []json.RawMessage
		if len(envelope.Results) > 0 && envelope.Results[0] == '[' {
			if err := json.Unmarshal(envelope.Results, &items); err != nil {
				return nil, fmt.Errorf("%w: %v", errInvalidBody, err)
			}
			return items, nil
		}
	}
	return []json.RawMessage{}, nil
}

// decodeRecords decodes each raw record into its source's variant, dropping the ones that do not fit.
func decodeRecords[T any](ctx context.Context, recorder *metrics.Recorder, src store.Source, raw []json.RawMessage) []T {
	out := make([]T, 0, len(raw))
	for i, r := range raw {
		var rec T
		if bytes.Equal(bytes.TrimSpace(r), []byte("null")) {
			recorder.Discarded(src.Path(), metrics.ReasonUndecodable)
			continue
		}
		if err := json.Unmarshal(r, &rec); err != nil {
			recorder.Discarded(src.Path(), metrics.ReasonUndecodable)
			zerolog.Ctx(ctx).Debug().Err(err).Str("source", src.Path()).Int("index", i).Msg("record does not match source shape")
			continue
		}
		out = append(out, rec)
	}
	return out
}
