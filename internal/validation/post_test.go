package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostValidator(t *testing.T) {
	v := NewPostValidator()

	tests := []struct {
		name        string
		inName      string
		inMessage   string
		wantName    Kind
		wantMessage Kind
	}{
		{name: "valid", inName: "anon", inMessage: "hello"},
		{name: "empty name", inName: "", inMessage: "hello", wantName: Empty},
		{name: "blank name", inName: "   ", inMessage: "hello", wantName: Empty},
		{name: "name at limit", inName: strings.Repeat("a", 32), inMessage: "hello"},
		{name: "name over limit", inName: strings.Repeat("a", 33), inMessage: "hi", wantName: TooLong},
		{name: "empty message", inName: "anon", inMessage: "", wantMessage: Empty},
		{name: "blank message", inName: "anon", inMessage: "\t\n ", wantMessage: Empty},
		{name: "message at limit", inName: "anon", inMessage: strings.Repeat("x", 1000)},
		{name: "message over limit", inName: "anon", inMessage: strings.Repeat("x", 1001), wantMessage: TooLong},
		{name: "both invalid", inName: "", inMessage: strings.Repeat("x", 1001), wantName: Empty, wantMessage: TooLong},
		{name: "multibyte name at limit", inName: strings.Repeat("あ", 32), inMessage: "hello"},
		{name: "multibyte name over limit", inName: strings.Repeat("あ", 33), inMessage: "hello", wantName: TooLong},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			verrs := v.Post(tc.inName, tc.inMessage)

			if tc.wantName == "" && tc.wantMessage == "" {
				assert.Nil(t, verrs)
				return
			}
			if assert.NotNil(t, verrs) {
				kind, ok := verrs.Field("name")
				assert.Equal(t, tc.wantName != "", ok, "name violation presence")
				assert.Equal(t, tc.wantName, kind)

				kind, ok = verrs.Field("message")
				assert.Equal(t, tc.wantMessage != "", ok, "message violation presence")
				assert.Equal(t, tc.wantMessage, kind)
			}
		})
	}
}

// All violations are reported at once, not just the first one.
func TestPostValidator_CollectsAllViolations(t *testing.T) {
	v := NewPostValidator()

	verrs := v.Post("", "")
	if assert.NotNil(t, verrs) {
		assert.Len(t, verrs.Violations, 2)
	}
}

func TestPostViolations_Error(t *testing.T) {
	verrs := &PostViolations{Violations: []FieldViolation{
		{Field: "name", Kind: TooLong},
	}}
	assert.Contains(t, verrs.Error(), "name:TOO_LONG")
}
