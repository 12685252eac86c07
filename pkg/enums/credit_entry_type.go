package enums

import "fmt"

// CreditEntryType classifies an append-only credit ledger entry. The sign
// of the balance contribution is carried entirely by the type; entry
// amounts are always non-negative.
type CreditEntryType string

const (
	CreditEntryTypeAdd      CreditEntryType = "credit_add"
	CreditEntryTypeDeduct   CreditEntryType = "credit_deduct"
	CreditEntryTypeApply    CreditEntryType = "credit_apply"
	CreditEntryTypeReversal CreditEntryType = "credit_reversal"
)

var validCreditEntryTypes = []CreditEntryType{
	CreditEntryTypeAdd,
	CreditEntryTypeDeduct,
	CreditEntryTypeApply,
	CreditEntryTypeReversal,
}

// String implements fmt.Stringer.
func (t CreditEntryType) String() string {
	return string(t)
}

// IsValid reports whether the value is a known CreditEntryType.
func (t CreditEntryType) IsValid() bool {
	for _, candidate := range validCreditEntryTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// Sign returns the balance direction for the entry type: +1 for additions
// and reversals, -1 for deductions and applications. Unrecognized types
// contribute zero so the fold stays forward compatible with entry kinds
// appended by newer writers.
func (t CreditEntryType) Sign() int {
	switch t {
	case CreditEntryTypeAdd, CreditEntryTypeReversal:
		return 1
	case CreditEntryTypeDeduct, CreditEntryTypeApply:
		return -1
	default:
		return 0
	}
}

// ParseCreditEntryType converts raw input into a CreditEntryType.
func ParseCreditEntryType(value string) (CreditEntryType, error) {
	for _, candidate := range validCreditEntryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid credit entry type %q", value)
}
