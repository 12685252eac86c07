package drafts

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func strp(s string) *string { return &s }

func TestSanitizeNameTrims(t *testing.T) {
	got := SanitizeName(strp("  Friday Run  "))
	if got == nil || *got != "Friday Run" {
		t.Fatalf("SanitizeName = %v, want Friday Run", got)
	}
}

func TestSanitizeNameBlankToNil(t *testing.T) {
	for _, in := range []*string{nil, strp(""), strp("   "), strp("\t\n")} {
		if got := SanitizeName(in); got != nil {
			t.Fatalf("blank name should collapse to nil, got %q", *got)
		}
	}
}

func TestSanitizeNameHardCutAt120(t *testing.T) {
	long := strings.Repeat("x", 200)
	got := SanitizeName(&long)
	if got == nil || len([]rune(*got)) != 120 {
		t.Fatalf("expected exactly 120 runes, got %v", got)
	}
}

func TestSanitizeNameCountsRunes(t *testing.T) {
	long := strings.Repeat("é", 130)
	got := SanitizeName(&long)
	if got == nil || len([]rune(*got)) != 120 {
		t.Fatalf("multibyte names must cut by rune count, got %d runes", len([]rune(*got)))
	}
}

func TestSanitizeCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"usd", "usd"},
		{"EUR", "eur"},
		{" gbp ", "gbp"},
		{"us", "usd"},
		{"usdd", "usd"},
		{"u5d", "usd"},
		{"", "usd"},
		{"USD!", "usd"},
	}
	for _, tc := range tests {
		if got := SanitizeCurrency(tc.in); got != tc.want {
			t.Fatalf("SanitizeCurrency(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizePayloadEnvelope(t *testing.T) {
	payload := json.RawMessage(`{"items":[{"product_id":"` + uuid.NewString() + `","name":"Beans","order_unit":"piece","qty":2,"unit_price":"7.50"}]}`)
	lines := NormalizePayload(payload)
	if len(lines) != 1 {
		t.Fatalf("expected one line, got %d", len(lines))
	}
	if lines[0].Qty != 2 || lines[0].UnitPrice != 7.5 {
		t.Fatalf("unexpected line: %+v", lines[0])
	}
}

func TestNormalizePayloadBareArray(t *testing.T) {
	payload := json.RawMessage(`[{"product_id":"` + uuid.NewString() + `","name":"Tea","order_unit":"case","qty":1,"unit_price":30}]`)
	lines := NormalizePayload(payload)
	if len(lines) != 1 || lines[0].UnitPrice != 30 {
		t.Fatalf("bare array payloads must load: %+v", lines)
	}
}

func TestNormalizePayloadGarbage(t *testing.T) {
	for _, payload := range []json.RawMessage{nil, json.RawMessage(`"oops"`), json.RawMessage(`{"items":"nope"}`), json.RawMessage(`{{{`)} {
		lines := NormalizePayload(payload)
		if lines == nil || len(lines) != 0 {
			t.Fatalf("garbage payload %s should yield empty lines, got %+v", payload, lines)
		}
	}
}

func TestNormalizePayloadDropsInvalidItems(t *testing.T) {
	payload := json.RawMessage(`{"items":[
		{"product_id":"not-a-uuid","order_unit":"piece","qty":1,"unit_price":1},
		{"product_id":"` + uuid.NewString() + `","name":"Keeper","order_unit":"piece","qty":3,"unit_price":2}
	]}`)
	lines := NormalizePayload(payload)
	if len(lines) != 1 || lines[0].Name != "Keeper" {
		t.Fatalf("only the valid item should survive: %+v", lines)
	}
}

func TestValidateNoteStripsMarkupAndControlChars(t *testing.T) {
	note, reason := ValidateNote("<b>Leave at front desk</b>\n")
	if reason != "" {
		t.Fatalf("unexpected rejection: %q", reason)
	}
	if note == nil || *note != "Leave at front desk" {
		t.Fatalf("ValidateNote = %v", note)
	}
}

func TestValidateNoteRejectsNonString(t *testing.T) {
	for _, raw := range []any{42, true, []string{"a"}, map[string]string{}} {
		if _, reason := ValidateNote(raw); reason != "Invalid note format" {
			t.Fatalf("non-string %T should be rejected, got %q", raw, reason)
		}
	}
}

func TestValidateNoteRejectsTooLongWithoutTruncating(t *testing.T) {
	long := strings.Repeat("a", 501)
	note, reason := ValidateNote(long)
	if note != nil {
		t.Fatal("over-limit note must not be truncated into a value")
	}
	if reason != "Note must be 500 characters or less" {
		t.Fatalf("unexpected reason: %q", reason)
	}
}

func TestValidateNoteLengthCheckedAfterCleaning(t *testing.T) {
	// markup is stripped before the length check, so a padded note that
	// cleans down to the limit passes
	long := "<div>" + strings.Repeat("a", 500) + "</div>"
	note, reason := ValidateNote(long)
	if reason != "" || note == nil || len([]rune(*note)) != 500 {
		t.Fatalf("cleaned note at the limit should pass: note=%v reason=%q", note, reason)
	}
}

func TestValidateNoteNilAndEmpty(t *testing.T) {
	if note, reason := ValidateNote(nil); note != nil || reason != "" {
		t.Fatalf("nil note should pass through: %v %q", note, reason)
	}
	if note, reason := ValidateNote("   "); note != nil || reason != "" {
		t.Fatalf("whitespace note should collapse to nil: %v %q", note, reason)
	}
}

func TestValidateNoteNormalizesCRLF(t *testing.T) {
	note, reason := ValidateNote("line one\r\nline two")
	if reason != "" || note == nil || *note != "line one\nline two" {
		t.Fatalf("CRLF should normalize to LF: %v", note)
	}
}
