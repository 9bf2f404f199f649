package sim

import (
	"errors"
	"math"
	"testing"
)

func testSource() *Source {
	return NewSource(NewSimulationKey(1234))
}

func TestNormal_OutputShapeIsBroadcastShape(t *testing.T) {
	mean, err := NewTensor([]int{2, 3}, []float64{0, 0, 0, 0, 0, 0})
	if err != nil {
		t.Fatal(err)
	}
	got, err := Normal(testSource(), mean, Scalar(1), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !sameShape(got.Shape(), []int{2, 3}) {
		t.Fatalf("output shape = %v, want [2 3]", got.Shape())
	}
}

func TestNormal_LeadingShapeIsPrepended(t *testing.T) {
	mean, _ := NewTensor([]int{2, 3}, make([]float64, 6))
	got, err := Normal(testSource(), mean, Scalar(1), []int{5})
	if err != nil {
		t.Fatal(err)
	}
	if !sameShape(got.Shape(), []int{5, 2, 3}) {
		t.Fatalf("output shape = %v, want [5 2 3]", got.Shape())
	}
	if got.Len() != 30 {
		t.Fatalf("output length = %d, want 30", got.Len())
	}
}

func TestNormal_IncompatibleParamsFail(t *testing.T) {
	mean := Vector([]float64{0, 0, 0})
	std := Vector([]float64{1, 1})
	_, err := Normal(testSource(), mean, std, nil)
	var shape *ShapeMismatchError
	if !errors.As(err, &shape) {
		t.Fatalf("expected ShapeMismatchError, got %v", err)
	}
}

func TestUniform_WithinHalfOpenInterval(t *testing.T) {
	got, err := Uniform(testSource(), Scalar(2), Scalar(5), []int{10000})
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range got.Data() {
		if v < 2 || v >= 5 {
			t.Fatalf("uniform draw %v outside [2, 5)", v)
		}
	}
}

func TestUniform_BroadcastsBounds(t *testing.T) {
	low := Vector([]float64{0, 10, 100})
	got, err := Uniform(testSource(), low, Scalar(1000), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !sameShape(got.Shape(), []int{3}) {
		t.Fatalf("output shape = %v, want [3]", got.Shape())
	}
	for i, v := range got.Data() {
		if v < low.Data()[i] {
			t.Fatalf("draw %d = %v below its lower bound %v", i, v, low.Data()[i])
		}
	}
}

func TestTruncatedNormal_AllDrawsWithinBounds(t *testing.T) {
	vmin, vmax := -0.5, 0.5
	// Wide spread so clipping actually engages on both sides.
	got, err := TruncatedNormal(testSource(), Scalar(0), Scalar(5), []int{10000}, &vmin, &vmax)
	if err != nil {
		t.Fatal(err)
	}
	clippedLow, clippedHigh := false, false
	for _, v := range got.Data() {
		if v < vmin || v > vmax {
			t.Fatalf("draw %v outside [%v, %v]", v, vmin, vmax)
		}
		if v == vmin {
			clippedLow = true
		}
		if v == vmax {
			clippedHigh = true
		}
	}
	// Hard clipping piles mass on the bounds, unlike resampling.
	if !clippedLow || !clippedHigh {
		t.Error("expected draws pinned exactly at both truncation bounds")
	}
}

func TestTruncatedNormal_OneSidedBound(t *testing.T) {
	vmin := 0.0
	got, err := TruncatedNormal(testSource(), Scalar(0), Scalar(3), []int{1000}, &vmin, nil)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range got.Data() {
		if v < 0 {
			t.Fatalf("draw %v below one-sided lower bound", v)
		}
	}
}

func TestTruncatedNormal_InvalidRange(t *testing.T) {
	vmin, vmax := 1.0, 1.0
	_, err := TruncatedNormal(testSource(), Scalar(0), Scalar(1), nil, &vmin, &vmax)
	var rng *InvalidRangeError
	if !errors.As(err, &rng) {
		t.Fatalf("expected InvalidRangeError, got %v", err)
	}
}

func TestPoisson_NonNegativeIntegerCounts(t *testing.T) {
	got, err := Poisson(testSource(), Scalar(4.2), []int{5000})
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range got.Data() {
		if v < 0 || v != math.Trunc(v) {
			t.Fatalf("poisson draw %v is not a non-negative integer", v)
		}
	}
}

func TestPoisson_ShapeFollowsLambda(t *testing.T) {
	lam, _ := NewTensor([]int{4}, []float64{1, 2, 3, 4})
	got, err := Poisson(testSource(), lam, []int{3})
	if err != nil {
		t.Fatal(err)
	}
	if !sameShape(got.Shape(), []int{3, 4}) {
		t.Fatalf("output shape = %v, want [3 4]", got.Shape())
	}
}

func TestBinomial_OutOfRangeProbsSilentlyClamped(t *testing.T) {
	// probs outside [0,1] never raise; they behave as the nearest boundary.
	over, err := Binomial(testSource(), Scalar(10), Scalar(1.7), []int{100})
	if err != nil {
		t.Fatalf("probs > 1 must not fail: %v", err)
	}
	for _, v := range over.Data() {
		if v != 10 {
			t.Fatalf("p clamped to 1 must always yield all successes, got %v", v)
		}
	}

	under, err := Binomial(testSource(), Scalar(10), Scalar(-0.3), []int{100})
	if err != nil {
		t.Fatalf("probs < 0 must not fail: %v", err)
	}
	for _, v := range under.Data() {
		if v != 0 {
			t.Fatalf("p clamped to 0 must always yield zero successes, got %v", v)
		}
	}
}

func TestBinomial_DrawsBoundedByCounts(t *testing.T) {
	got, err := Binomial(testSource(), Scalar(20), Scalar(0.5), []int{5000})
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range got.Data() {
		if v < 0 || v > 20 || v != math.Trunc(v) {
			t.Fatalf("binomial draw %v outside {0..20}", v)
		}
	}
}

func TestBinomial_BroadcastsCountsAgainstProbs(t *testing.T) {
	counts := Vector([]float64{5, 10, 20})
	probs, _ := NewTensor([]int{2, 1}, []float64{0.2, 0.8})
	got, err := Binomial(testSource(), counts, probs, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !sameShape(got.Shape(), []int{2, 3}) {
		t.Fatalf("output shape = %v, want [2 3]", got.Shape())
	}
}
