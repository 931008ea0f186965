package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/de-tools/ledger-atlas/pkg/models/store"
	"github.com/de-tools/ledger-atlas/pkg/store/client"
)

var errInvalidBody = errors.New("invalid response body")

const maxDetailLen = 200

// diagnose turns a fetch failure into the message shown next to a degraded report.
func diagnose(src store.Source, err error) string {
	return fmt.Sprintf("failed to fetch %s: %s", src.Path(), cause(err))
}

func cause(err error) string {
	var se *client.StatusError
	var ne net.Error

	switch {
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.As(err, &se):
		if se.StatusCode == http.StatusNotFound {
			return "not found"
		}
		if detail := serverDetail(se.Body); detail != "" {
			return detail
		}
		return fmt.Sprintf("server returned %d %s", se.StatusCode, http.StatusText(se.StatusCode))
	case errors.As(err, &ne):
		if ne.Timeout() {
			return "request timed out"
		}
		return "network error"
	case errors.Is(err, errInvalidBody):
		return "invalid response body"
	}
	return err.Error()
}

// serverDetail extracts {"detail": ...}, {"message": ...}, a JSON string or a plain text body.
func serverDetail(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}

	var obj struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &obj); err == nil {
		if obj.Detail != "" {
			return truncate(obj.Detail)
		}
		return truncate(obj.Message)
	}
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return truncate(s)
	}
	if json.Valid(body) {
		return ""
	}
	return truncate(text)
}

func truncate(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) <= maxDetailLen {
		return s
	}
	return string([]rune(s)[:maxDetailLen]) + "…"
}
