package shared

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxRequestBodyBytes bounds every JSON request body.
const MaxRequestBodyBytes = 1 << 20

// ErrInvalidJSON is returned by DecodeJSON for malformed or oversized bodies
// and for bodies not declared as application/json.
var ErrInvalidJSON = errors.New("invalid request format")

var validate = newValidator()

// newValidator reports fields by their JSON names so validation messages
// match what the client sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// IsJSONContentType reports whether contentType names application/json,
// with or without parameters.
func IsJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	return err == nil && mediaType == "application/json"
}

// DecodeJSON decodes the request body into v. Unknown fields are ignored so
// that clients may send server-owned fields such as owner_id without effect.
// Only application/json bodies are accepted, which is also the only media
// type the XSS middleware rewrites.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if !IsJSONContentType(r.Header.Get("Content-Type")) {
		return fmt.Errorf("%w: content type must be application/json", ErrInvalidJSON)
	}
	if r.Body == nil {
		return fmt.Errorf("%w: empty body", ErrInvalidJSON)
	}
	body := http.MaxBytesReader(w, r.Body, MaxRequestBodyBytes)

	dec := json.NewDecoder(body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after JSON value", ErrInvalidJSON)
	}
	return nil
}

// ValidateRequest validates v with its own Validate method when it has one,
// otherwise with the struct tags.
func ValidateRequest(v interface{}) error {
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}
	return validate.Struct(v)
}
