package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestTruncateForLog(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"short string untouched", "hello", 10, "hello"},
		{"exact limit untouched", "hello", 5, "hello"},
		{"long string truncated", "hello world", 5, "hello..."},
		{"whitespace trimmed first", "  hello  ", 10, "hello"},
		{"zero limit", "hello", 0, ""},
		{"negative limit", "hello", -1, ""},
		{"multibyte runes", "héllo wörld", 6, "héllo ..."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateForLog(tc.in, tc.limit); got != tc.want {
				t.Fatalf("TruncateForLog(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}

func TestStringFieldsSkipsEmptyEntries(t *testing.T) {
	fields := StringFields(
		StringField{Key: FieldProvider, Value: "Remotive API"},
		StringField{Key: "", Value: "ignored"},
		StringField{Key: FieldModel, Value: "   "},
	)

	if len(fields) != 1 {
		t.Fatalf("expected 1 field, got %d", len(fields))
	}
	if fields[0].Key != FieldProvider {
		t.Fatalf("unexpected field key: %q", fields[0].Key)
	}
}

func TestWithFieldsNilLogger(t *testing.T) {
	if got := WithFields(nil); got == nil {
		t.Fatal("expected a usable logger for nil input")
	}

	if got := WithCommonFields(nil, "Jobicy API", ""); got == nil {
		t.Fatal("expected a usable logger for nil input")
	}
}

func TestCommonFields(t *testing.T) {
	fields := CommonFields("AI-Powered Search", "gemini-2.5-flash")
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}

	if got := CommonFields("", ""); len(got) != 0 {
		t.Fatalf("expected no fields for empty values, got %v", got)
	}
}

func TestNew(t *testing.T) {
	for _, json := range []bool{true, false} {
		logger, err := New(json, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if logger == nil {
			t.Fatal("expected a logger")
		}
		logger.Debug("probe", zap.Bool("json", json))
	}
}
