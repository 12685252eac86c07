package analytics

import "time"

// Range is a requested reporting window.
type Range struct {
	From time.Time
	To   time.Time
}

// EffectiveWindow is the window the aggregation layer should actually
// query after accounting for the distributor's latest reset checkpoint.
type EffectiveWindow struct {
	Range Range
	// SelectedRangeBeforeReset reports that the requested range ends at or
	// before the reset, so the caller is viewing purely pre-reset history.
	SelectedRangeBeforeReset bool
}

// EffectiveRange derives the window used for aggregation. Callers must not
// assume input ordering: a from after to is swapped first. Without a reset
// the request passes through unchanged. A range ending exactly at the
// reset timestamp counts as pre-reset and is kept whole; a range
// straddling the reset has its start clamped to the reset point so
// post-reset figures exclude checkpointed history.
func EffectiveRange(requested Range, resetAt *time.Time) EffectiveWindow {
	if requested.From.After(requested.To) {
		requested.From, requested.To = requested.To, requested.From
	}
	if resetAt == nil {
		return EffectiveWindow{Range: requested}
	}

	if !requested.To.After(*resetAt) {
		return EffectiveWindow{Range: requested, SelectedRangeBeforeReset: true}
	}

	if requested.From.Before(*resetAt) {
		requested.From = *resetAt
	}
	return EffectiveWindow{Range: requested}
}
