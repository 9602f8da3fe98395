package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/phrazzld/jobs-api/internal/api/shared"
)

// XSSSanitizer strips HTML from query parameters and from every string in a
// JSON request body before handlers see them. Bodies that are not valid JSON
// pass through untouched and are rejected by the handler's decoder.
type XSSSanitizer struct {
	policy *bluemonday.Policy
}

// NewXSSSanitizer creates a sanitizer that allows no markup at all.
func NewXSSSanitizer() *XSSSanitizer {
	return &XSSSanitizer{policy: bluemonday.StrictPolicy()}
}

// Handler sanitizes the request and calls next.
func (x *XSSSanitizer) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			q := r.URL.Query()
			for key, values := range q {
				for i, v := range values {
					values[i] = x.Sanitize(v)
				}
				q[key] = values
			}
			r.URL.RawQuery = q.Encode()
		}

		if r.Body != nil && shared.IsJSONContentType(r.Header.Get("Content-Type")) {
			raw, err := io.ReadAll(io.LimitReader(r.Body, shared.MaxRequestBodyBytes+1))
			_ = r.Body.Close()
			if err == nil && len(raw) <= shared.MaxRequestBodyBytes {
				raw = x.sanitizeJSON(raw)
			}
			r.Body = io.NopCloser(bytes.NewReader(raw))
			r.ContentLength = int64(len(raw))
		}

		next.ServeHTTP(w, r)
	})
}

// Sanitize removes markup from s. Strings without angle brackets are
// returned unchanged so ordinary text keeps its ampersands and quotes.
func (x *XSSSanitizer) Sanitize(s string) string {
	if !strings.ContainsAny(s, "<>") {
		return s
	}
	return x.policy.Sanitize(s)
}

func (x *XSSSanitizer) sanitizeJSON(raw []byte) []byte {
	var v interface{}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return raw
	}
	if _, err := dec.Token(); err != io.EOF {
		return raw
	}
	clean, err := json.Marshal(x.walk(v))
	if err != nil {
		return raw
	}
	return clean
}

func (x *XSSSanitizer) walk(v interface{}) interface{} {
	switch val := v.(type) {
	case string:
		return x.Sanitize(val)
	case map[string]interface{}:
		for k, item := range val {
			val[k] = x.walk(item)
		}
		return val
	case []interface{}:
		for i, item := range val {
			val[i] = x.walk(item)
		}
		return val
	default:
		return v
	}
}
