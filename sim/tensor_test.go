package sim

import (
	"errors"
	"testing"
)

func TestBroadcastShapes(t *testing.T) {
	cases := []struct {
		name string
		a, b []int
		want []int
	}{
		{"scalar-scalar", nil, nil, []int{}},
		{"scalar-vector", nil, []int{4}, []int{4}},
		{"equal", []int{2, 3}, []int{2, 3}, []int{2, 3}},
		{"stretch-left", []int{1, 3}, []int{2, 3}, []int{2, 3}},
		{"stretch-right", []int{2, 1}, []int{2, 3}, []int{2, 3}},
		{"rank-lift", []int{3}, []int{2, 3}, []int{2, 3}},
		{"both-stretch", []int{2, 1}, []int{1, 3}, []int{2, 3}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := BroadcastShapes(tc.a, tc.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !sameShape(got, tc.want) {
				t.Errorf("BroadcastShapes(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}

func TestBroadcastShapes_Incompatible(t *testing.T) {
	_, err := BroadcastShapes([]int{2, 3}, []int{4})
	var shape *ShapeMismatchError
	if !errors.As(err, &shape) {
		t.Fatalf("expected ShapeMismatchError, got %v", err)
	}
}

func TestNewTensor_ShapeElementCountMismatch(t *testing.T) {
	_, err := NewTensor([]int{2, 3}, []float64{1, 2, 3})
	var shape *ShapeMismatchError
	if !errors.As(err, &shape) {
		t.Fatalf("expected ShapeMismatchError, got %v", err)
	}
}

func TestTensor_ExpandTo_TilesStretchedAxes(t *testing.T) {
	// Column vector (2,1) stretched across 3 columns.
	col, err := NewTensor([]int{2, 1}, []float64{10, 20})
	if err != nil {
		t.Fatal(err)
	}
	got := col.expandTo([]int{2, 3})
	want := []float64{10, 10, 10, 20, 20, 20}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expandTo = %v, want %v", got, want)
		}
	}
}

func TestTensor_Sub_Broadcasts(t *testing.T) {
	a := Vector([]float64{5, 7, 9})
	got, err := a.Sub(Scalar(2))
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{3, 5, 7}
	for i, v := range got.Data() {
		if v != want[i] {
			t.Fatalf("Sub = %v, want %v", got.Data(), want)
		}
	}
}

func TestTensor_Apply_DoesNotMutate(t *testing.T) {
	a := Vector([]float64{1, 2})
	b := a.Apply(func(v float64) float64 { return v * 10 })
	if a.Data()[0] != 1 || b.Data()[0] != 10 {
		t.Fatalf("Apply mutated its receiver: a=%v b=%v", a.Data(), b.Data())
	}
}

func TestVector_CopiesInput(t *testing.T) {
	src := []float64{1, 2, 3}
	v := Vector(src)
	src[0] = 99
	if v.Data()[0] != 1 {
		t.Fatal("Vector aliased the caller's slice")
	}
}

func TestScalar_Shape(t *testing.T) {
	s := Scalar(3.5)
	if s.Shape() != nil || s.Len() != 1 || s.Data()[0] != 3.5 {
		t.Fatalf("Scalar(3.5) = shape %v len %d", s.Shape(), s.Len())
	}
}
