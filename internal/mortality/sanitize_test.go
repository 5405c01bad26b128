package mortality

import (
	"math"
	"testing"

	"mortality-engine/internal/model"
)

func TestSanitizeSortsAndClamps(t *testing.T) {
	points := []model.MortalityPoint{
		{Age: 62, Qx: 1.5},
		{Age: 60, Qx: -0.1},
		{Age: 61, Qx: 0.02},
	}

	out, report := SanitizeWithReport(points)

	if len(out) != 3 {
		t.Fatalf("expected 3 points, got %d", len(out))
	}
	for i, want := range []int{60, 61, 62} {
		if out[i].Age != want {
			t.Fatalf("expected age %d at index %d, got %d", want, i, out[i].Age)
		}
	}
	if out[0].Qx != 0 {
		t.Fatalf("expected negative qx clamped to 0, got %v", out[0].Qx)
	}
	if out[2].Qx != 1 {
		t.Fatalf("expected qx > 1 clamped to 1, got %v", out[2].Qx)
	}
	if report.Clamped != 2 {
		t.Fatalf("expected 2 clamped, got %d", report.Clamped)
	}
}

func TestSanitizeDropsNonFinite(t *testing.T) {
	points := []model.MortalityPoint{
		{Age: 60, Qx: math.NaN()},
		{Age: 61, Qx: math.Inf(1)},
		{Age: 62, Qx: 0.05},
	}

	out, report := SanitizeWithReport(points)

	if len(out) != 1 {
		t.Fatalf("expected 1 point, got %d", len(out))
	}
	if out[0].Age != 62 {
		t.Fatalf("expected age 62, got %d", out[0].Age)
	}
	if report.Dropped != 2 {
		t.Fatalf("expected 2 dropped, got %d", report.Dropped)
	}
}

func TestSanitizeKeepsFirstDuplicateAge(t *testing.T) {
	points := []model.MortalityPoint{
		{Age: 61, Qx: 0.02},
		{Age: 60, Qx: 0.01},
		{Age: 61, Qx: 0.99},
	}

	out, report := SanitizeWithReport(points)

	if len(out) != 2 {
		t.Fatalf("expected 2 points, got %d", len(out))
	}
	if out[1].Qx != 0.02 {
		t.Fatalf("expected first duplicate kept (qx 0.02), got %v", out[1].Qx)
	}
	if report.Deduplicated != 1 {
		t.Fatalf("expected 1 deduplicated, got %d", report.Deduplicated)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	points := []model.MortalityPoint{
		{Age: 62, Qx: 1.5},
		{Age: 60, Qx: -0.1},
		{Age: 60, Qx: 0.3},
		{Age: 61, Qx: 0.02},
	}

	once := Sanitize(points)
	twice, report := SanitizeWithReport(once)

	if len(once) != len(twice) {
		t.Fatalf("expected same length, got %d and %d", len(once), len(twice))
	}
	for i := range once {
		if once[i] != twice[i] {
			t.Fatalf("expected sanitize to be idempotent, mismatch at %d: %v vs %v", i, once[i], twice[i])
		}
	}
	if report != (SanitizeReport{}) {
		t.Fatalf("expected no repairs on second pass, got %+v", report)
	}
}

func TestSanitizeEmpty(t *testing.T) {
	out := Sanitize(nil)
	if len(out) != 0 {
		t.Fatalf("expected empty output, got %d points", len(out))
	}
}
