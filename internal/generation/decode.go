package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dangerclosesec/audiencelab/internal/domain"
	"github.com/go-playground/validator/v10"
)

// Decode parses raw into out and validates it. Any failure is reported as
// domain.ErrSchemaMismatch so nothing downstream persists a partial object.
func Decode(v *validator.Validate, raw []byte, out any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSchemaMismatch, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: trailing data after object", domain.ErrSchemaMismatch)
	}
	if err := domain.Validate(v, out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrSchemaMismatch, err)
	}
	return nil
}

// CheckPlatforms verifies the result holds exactly the requested platforms.
func (r *ContentResult) CheckPlatforms(requested []string) error {
	want := make(map[string]bool, len(requested))
	for _, p := range requested {
		want[p] = true
		if _, ok := r.Platforms[p]; !ok {
			return fmt.Errorf("%w: missing platform %q", domain.ErrSchemaMismatch, p)
		}
	}

	var extra []string
	for p := range r.Platforms {
		if !want[p] {
			extra = append(extra, p)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		return fmt.Errorf("%w: unexpected platforms %s", domain.ErrSchemaMismatch, strings.Join(extra, ", "))
	}
	return nil
}

var dateLayouts = []string{time.RFC3339, time.DateOnly}

// ParseDate accepts RFC 3339 timestamps and plain dates. An empty string means
// the date was not suggested.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: unrecognized date %q", domain.ErrSchemaMismatch, s)
}
