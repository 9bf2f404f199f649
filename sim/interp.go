package sim

import (
	"fmt"
	"math"
	"sort"
)

// distEpsilon floors neighbor distances so a query coinciding with a
// reference point does not divide by zero.
const distEpsilon = 1e-6

// KNN is an inverse-distance-weighted k-nearest-neighbor interpolator over
// scattered reference points in arbitrary dimension. Immutable after
// construction. Cost is O(N log N) per query point over N reference points.
type KNN struct {
	points [][]float64
	values []float64
	k      int
	dim    int
}

// NewKNN builds a KNN table from N reference points of equal dimension and
// their N values. The number of reference points must exceed k.
func NewKNN(points [][]float64, values []float64, k int) (*KNN, error) {
	if len(points) != len(values) {
		return nil, &ShapeMismatchError{
			Reason: fmt.Sprintf("%d reference points but %d values", len(points), len(values)),
		}
	}
	if k < 1 {
		return nil, &InsufficientReferenceDataError{Reason: fmt.Sprintf("k must be at least 1, got %d", k)}
	}
	if len(points) <= k {
		return nil, &InsufficientReferenceDataError{
			Reason: fmt.Sprintf("need more than k=%d reference points, got %d", k, len(points)),
		}
	}
	dim := len(points[0])
	pts := make([][]float64, len(points))
	for i, p := range points {
		if len(p) != dim {
			return nil, &ShapeMismatchError{
				Reason: fmt.Sprintf("reference point %d has dimension %d, want %d", i, len(p), dim),
			}
		}
		pts[i] = append([]float64(nil), p...)
	}
	return &KNN{
		points: pts,
		values: append([]float64(nil), values...),
		k:      k,
		dim:    dim,
	}, nil
}

// Interp evaluates the table at each query point: the k nearest reference
// points by Euclidean distance are averaged, each weighted by the inverse
// of its (epsilon-floored) distance. Ties in distance resolve to the lower
// reference index.
func (t *KNN) Interp(query [][]float64) ([]float64, error) {
	out := make([]float64, len(query))
	d2 := make([]float64, len(t.points))
	idx := make([]int, len(t.points))
	for qi, q := range query {
		if len(q) != t.dim {
			return nil, &ShapeMismatchError{
				Reason: fmt.Sprintf("query point %d has dimension %d, want %d", qi, len(q), t.dim),
			}
		}
		for i, p := range t.points {
			s := 0.0
			for d := 0; d < t.dim; d++ {
				dr := q[d] - p[d]
				s += dr * dr
			}
			d2[i] = s
			idx[i] = i
		}
		sort.Slice(idx, func(a, b int) bool {
			ia, ib := idx[a], idx[b]
			if d2[ia] != d2[ib] {
				return d2[ia] < d2[ib]
			}
			return ia < ib
		})
		num, den := 0.0, 0.0
		for _, i := range idx[:t.k] {
			w := 1.0 / math.Max(math.Sqrt(d2[i]), distEpsilon)
			num += w * t.values[i]
			den += w
		}
		out[qi] = num / den
	}
	return out, nil
}

// GridAxis describes one axis of a regular grid: n evenly spaced points
// from Lower to Upper inclusive.
type GridAxis struct {
	Lower, Upper float64
	N            int
}

func (a GridAxis) step() float64 {
	return (a.Upper - a.Lower) / float64(a.N-1)
}

// RegularGrid interpolates a dense values tensor on an axis-aligned lattice
// in arbitrary dimension D. For each query the containing cell is located
// by floor division (clipped at the edges, so out-of-range queries degrade
// to edge-cell behavior), and the result is the inverse-distance-weighted
// average over the cell's 2^D corner values.
//
// This is NOT multilinear interpolation: a query at a grid vertex
// reproduces that vertex's value exactly, but a query at a cell midpoint
// does not equal the plain corner average unless the corners already agree.
// Downstream response maps depend on this exact weighting, so it must not
// be "fixed" to textbook bilinear blending.
type RegularGrid struct {
	values  []float64
	axes    []GridAxis
	strides []int
	corners [][]int
}

// NewRegularGrid builds a grid table from a row-major values tensor of
// shape (axes[0].N, ..., axes[D-1].N) and its axis descriptors.
func NewRegularGrid(values []float64, axes []GridAxis) (*RegularGrid, error) {
	if len(axes) == 0 {
		return nil, &InsufficientReferenceDataError{Reason: "regular grid needs at least one axis"}
	}
	n := 1
	for i, ax := range axes {
		if ax.N < 2 {
			return nil, &InsufficientReferenceDataError{
				Reason: fmt.Sprintf("axis %d needs at least 2 points, got %d", i, ax.N),
			}
		}
		n *= ax.N
	}
	if n != len(values) {
		return nil, &ShapeMismatchError{
			Reason: fmt.Sprintf("axes describe %d grid points but %d values given", n, len(values)),
		}
	}

	dim := len(axes)
	strides := make([]int, dim)
	acc := 1
	for d := dim - 1; d >= 0; d-- {
		strides[d] = acc
		acc *= axes[d].N
	}

	// One row per cell corner; bit d selects the lower or upper cell
	// boundary on axis d.
	corners := make([][]int, 1<<dim)
	for m := range corners {
		row := make([]int, dim)
		for d := 0; d < dim; d++ {
			row[d] = (m >> (dim - 1 - d)) & 1
		}
		corners[m] = row
	}

	return &RegularGrid{
		values:  append([]float64(nil), values...),
		axes:    append([]GridAxis(nil), axes...),
		strides: strides,
		corners: corners,
	}, nil
}

// Interp evaluates the grid at each query point.
func (g *RegularGrid) Interp(query [][]float64) ([]float64, error) {
	dim := len(g.axes)
	out := make([]float64, len(query))
	cell := make([]int, dim)
	for qi, q := range query {
		if len(q) != dim {
			return nil, &ShapeMismatchError{
				Reason: fmt.Sprintf("query point %d has dimension %d, want %d", qi, len(q), dim),
			}
		}
		for d, ax := range g.axes {
			c := int(math.Floor((q[d] - ax.Lower) / ax.step()))
			cell[d] = clipInt(c, 0, ax.N-2)
		}
		num, den := 0.0, 0.0
		for _, row := range g.corners {
			flat := 0
			d2 := 0.0
			for d, ax := range g.axes {
				idx := cell[d] + row[d]
				flat += idx * g.strides[d]
				dr := q[d] - (ax.Lower + float64(idx)*ax.step())
				d2 += dr * dr
			}
			w := 1.0 / math.Max(math.Sqrt(d2), distEpsilon)
			num += w * g.values[flat]
			den += w
		}
		out[qi] = num / den
	}
	return out, nil
}

// Linear1D is a piecewise-linear interpolator over irregularly spaced 1-D
// reference points. Outside the table's domain the result clamps to the
// boundary value; there is no linear extrapolation.
type Linear1D struct {
	points []float64
	values []float64
}

// NewLinear1D builds a 1-D table from reference points and their values.
// The pairs are sorted by point ascending at construction.
func NewLinear1D(points, values []float64) (*Linear1D, error) {
	if len(points) != len(values) {
		return nil, &ShapeMismatchError{
			Reason: fmt.Sprintf("%d reference points but %d values", len(points), len(values)),
		}
	}
	if len(points) == 0 {
		return nil, &InsufficientReferenceDataError{Reason: "1-d table needs at least one reference point"}
	}
	order := make([]int, len(points))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return points[order[a]] < points[order[b]] })
	t := &Linear1D{
		points: make([]float64, len(points)),
		values: make([]float64, len(values)),
	}
	for i, j := range order {
		t.points[i] = points[j]
		t.values[i] = values[j]
	}
	return t, nil
}

// Interp evaluates the table at each query value. The bracketing interval
// is found by counting reference points at or below the query; a
// zero-width bracket (at the boundaries, or on duplicate points) falls
// back to that single point's value.
func (t *Linear1D) Interp(query []float64) []float64 {
	n := len(t.points)
	out := make([]float64, len(query))
	for qi, q := range query {
		c := sort.Search(n, func(i int) bool { return t.points[i] > q })
		left := clipInt(c-1, 0, n-1)
		right := clipInt(c, 0, n-1)
		if t.points[right] == t.points[left] {
			out[qi] = t.values[left]
			continue
		}
		frac := (q - t.points[left]) / (t.points[right] - t.points[left])
		out[qi] = t.values[left] + frac*(t.values[right]-t.values[left])
	}
	return out
}

// Linear1DGrid is a piecewise-linear interpolator over a regular 1-D grid,
// with constant (clamped) extrapolation outside [Lower, Upper].
type Linear1DGrid struct {
	values []float64
	axis   GridAxis
}

// NewLinear1DGrid builds the table from a dense values vector and its axis.
func NewLinear1DGrid(values []float64, axis GridAxis) (*Linear1DGrid, error) {
	if axis.N < 2 {
		return nil, &InsufficientReferenceDataError{
			Reason: fmt.Sprintf("grid needs at least 2 points, got %d", axis.N),
		}
	}
	if axis.N != len(values) {
		return nil, &ShapeMismatchError{
			Reason: fmt.Sprintf("axis describes %d grid points but %d values given", axis.N, len(values)),
		}
	}
	return &Linear1DGrid{
		values: append([]float64(nil), values...),
		axis:   axis,
	}, nil
}

// Interp evaluates the table at each query value.
func (t *Linear1DGrid) Interp(query []float64) []float64 {
	out := make([]float64, len(query))
	last := float64(t.axis.N - 1)
	for qi, q := range query {
		pos := (q - t.axis.Lower) / t.axis.step()
		switch {
		case pos <= 0:
			out[qi] = t.values[0]
		case pos >= last:
			out[qi] = t.values[t.axis.N-1]
		default:
			i := int(math.Floor(pos))
			frac := pos - float64(i)
			out[qi] = t.values[i] + frac*(t.values[i+1]-t.values[i])
		}
	}
	return out
}

func clipInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
