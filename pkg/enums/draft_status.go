package enums

import "fmt"

// DraftStatus tracks whether a saved draft order is still resumable.
type DraftStatus string

const (
	DraftStatusActive   DraftStatus = "active"
	DraftStatusArchived DraftStatus = "archived"
)

var validDraftStatuses = []DraftStatus{
	DraftStatusActive,
	DraftStatusArchived,
}

// String implements fmt.Stringer.
func (s DraftStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known DraftStatus.
func (s DraftStatus) IsValid() bool {
	for _, candidate := range validDraftStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseDraftStatus converts raw input into a DraftStatus.
func ParseDraftStatus(value string) (DraftStatus, error) {
	for _, candidate := range validDraftStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid draft status %q", value)
}
