package drafts

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode"

	"github.com/marisolvega/vendorhub-backend/internal/cart"
)

const (
	maxNameRunes = 120
	maxNoteRunes = 500
)

var (
	currencyPattern = regexp.MustCompile(`^[a-z]{3}$`)
	htmlTagPattern  = regexp.MustCompile(`<[^>]*>`)
)

// SanitizeName trims the draft name and hard-cuts it at 120 runes. Blank
// input collapses to nil so the store never holds empty-string names.
func SanitizeName(name *string) *string {
	if name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*name)
	if trimmed == "" {
		return nil
	}
	runes := []rune(trimmed)
	if len(runes) > maxNameRunes {
		trimmed = string(runes[:maxNameRunes])
	}
	return &trimmed
}

// SanitizeCurrency lowercases the code and falls back to "usd" for
// anything that is not exactly three ASCII letters.
func SanitizeCurrency(code string) string {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if !currencyPattern.MatchString(normalized) {
		return "usd"
	}
	return normalized
}

// payloadEnvelope is the persisted draft payload shape. Legacy rows stored
// a bare item array, newer ones wrap it in an object.
type payloadEnvelope struct {
	Items []cart.RawLine `json:"items"`
}

// NormalizePayload rebuilds trusted cart lines from a stored draft
// payload. Both the `{"items": [...]}` envelope and a bare array are
// accepted; anything else yields an empty line set rather than an error,
// since a corrupt draft must still be loadable for deletion.
func NormalizePayload(payload json.RawMessage) []cart.Line {
	if len(payload) == 0 {
		return []cart.Line{}
	}

	var envelope payloadEnvelope
	if err := json.Unmarshal(payload, &envelope); err == nil && envelope.Items != nil {
		return cart.NormalizeLines(envelope.Items)
	}

	var bare []cart.RawLine
	if err := json.Unmarshal(payload, &bare); err == nil {
		return cart.NormalizeLines(bare)
	}

	return []cart.Line{}
}

// ValidateNote checks and cleans a free-text note. Unlike names, notes are
// rejected when too long instead of truncated, since silently dropping the
// tail of delivery instructions is worse than asking the vendor to shorten
// them. Returns the cleaned note, or a non-empty reason when invalid.
func ValidateNote(raw any) (*string, string) {
	if raw == nil {
		return nil, ""
	}
	text, ok := raw.(string)
	if !ok {
		return nil, "Invalid note format"
	}

	cleaned := htmlTagPattern.ReplaceAllString(text, "")
	cleaned = strings.ReplaceAll(cleaned, "\r\n", "\n")
	cleaned = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, cleaned)
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return nil, ""
	}
	if len([]rune(cleaned)) > maxNoteRunes {
		return nil, "Note must be 500 characters or less"
	}
	return &cleaned, ""
}
