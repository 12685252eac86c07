package analytics

import (
	"testing"
	"time"
)

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestEffectiveRangeNoReset(t *testing.T) {
	requested := Range{From: day(1), To: day(10)}
	got := EffectiveRange(requested, nil)
	if got.SelectedRangeBeforeReset {
		t.Fatal("no reset cannot classify the range as pre-reset")
	}
	if got.Range != requested {
		t.Fatalf("range should pass through unchanged: %+v", got.Range)
	}
}

func TestEffectiveRangeSwapsReversedInput(t *testing.T) {
	got := EffectiveRange(Range{From: day(10), To: day(1)}, nil)
	if !got.Range.From.Equal(day(1)) || !got.Range.To.Equal(day(10)) {
		t.Fatalf("reversed input must be swapped: %+v", got.Range)
	}
}

func TestEffectiveRangeEntirelyBeforeReset(t *testing.T) {
	reset := day(15)
	got := EffectiveRange(Range{From: day(1), To: day(10)}, &reset)
	if !got.SelectedRangeBeforeReset {
		t.Fatal("range ending before the reset is pre-reset")
	}
	if !got.Range.From.Equal(day(1)) || !got.Range.To.Equal(day(10)) {
		t.Fatalf("pre-reset range must be kept whole: %+v", got.Range)
	}
}

func TestEffectiveRangeEndingExactlyAtResetIsPreReset(t *testing.T) {
	reset := day(10)
	got := EffectiveRange(Range{From: day(1), To: day(10)}, &reset)
	if !got.SelectedRangeBeforeReset {
		t.Fatal("range ending exactly at the reset must classify as pre-reset")
	}
	if !got.Range.From.Equal(day(1)) {
		t.Fatalf("boundary range must not be clamped: %+v", got.Range)
	}
}

func TestEffectiveRangeStraddlingResetClampsStart(t *testing.T) {
	reset := day(5)
	got := EffectiveRange(Range{From: day(1), To: day(10)}, &reset)
	if got.SelectedRangeBeforeReset {
		t.Fatal("a straddling range is not pre-reset")
	}
	if !got.Range.From.Equal(day(5)) || !got.Range.To.Equal(day(10)) {
		t.Fatalf("straddling range should clamp its start to the reset: %+v", got.Range)
	}
}

func TestEffectiveRangeEntirelyAfterReset(t *testing.T) {
	reset := day(5)
	got := EffectiveRange(Range{From: day(6), To: day(10)}, &reset)
	if got.SelectedRangeBeforeReset {
		t.Fatal("post-reset range is not pre-reset")
	}
	if !got.Range.From.Equal(day(6)) {
		t.Fatalf("post-reset range must pass through unchanged: %+v", got.Range)
	}
}

func TestEffectiveRangeSwapHappensBeforeResetLogic(t *testing.T) {
	reset := day(10)
	// reversed input that, once swapped, ends exactly at the reset
	got := EffectiveRange(Range{From: day(10), To: day(1)}, &reset)
	if !got.SelectedRangeBeforeReset {
		t.Fatal("swap must happen before the boundary check")
	}
}
