package sim

import "fmt"

// Tensor is a dense, row-major float64 array with an explicit shape.
// A rank-0 tensor (empty shape) holds exactly one scalar value. Tensors
// flowing between stages are treated as immutable; transforms return new
// tensors rather than writing in place.
type Tensor struct {
	shape []int
	data  []float64
}

// Scalar wraps a single value as a rank-0 tensor.
func Scalar(v float64) *Tensor {
	return &Tensor{shape: nil, data: []float64{v}}
}

// Vector wraps a slice as a rank-1 tensor. The slice is copied.
func Vector(values []float64) *Tensor {
	data := make([]float64, len(values))
	copy(data, values)
	return &Tensor{shape: []int{len(values)}, data: data}
}

// NewTensor builds a tensor of the given shape from row-major data.
func NewTensor(shape []int, data []float64) (*Tensor, error) {
	for _, n := range shape {
		if n < 0 {
			return nil, &ShapeMismatchError{Reason: fmt.Sprintf("negative dimension in shape %v", shape)}
		}
	}
	if want := prodInts(shape); want != len(data) {
		return nil, &ShapeMismatchError{
			Reason: fmt.Sprintf("shape %v requires %d elements, got %d", shape, want, len(data)),
		}
	}
	s := make([]int, len(shape))
	copy(s, shape)
	d := make([]float64, len(data))
	copy(d, data)
	return &Tensor{shape: s, data: d}, nil
}

// Shape returns a copy of the tensor's shape. Rank-0 tensors return nil.
func (t *Tensor) Shape() []int {
	if len(t.shape) == 0 {
		return nil
	}
	s := make([]int, len(t.shape))
	copy(s, t.shape)
	return s
}

// Len returns the number of elements.
func (t *Tensor) Len() int { return len(t.data) }

// Data returns the backing row-major element slice. Callers must not
// modify it.
func (t *Tensor) Data() []float64 { return t.data }

// Apply returns a new tensor with f applied elementwise.
func (t *Tensor) Apply(f func(float64) float64) *Tensor {
	out := make([]float64, len(t.data))
	for i, v := range t.data {
		out[i] = f(v)
	}
	return &Tensor{shape: t.Shape(), data: out}
}

// Sub returns t - o elementwise after broadcasting.
func (t *Tensor) Sub(o *Tensor) (*Tensor, error) {
	av, bv, shape, err := broadcastPair(t, o)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(av))
	for i := range out {
		out[i] = av[i] - bv[i]
	}
	return &Tensor{shape: shape, data: out}, nil
}

// BroadcastShapes resolves two shapes under the trailing-dimension rule:
// shapes align from the right, a size-1 dimension stretches to match the
// other operand, and any other disagreement is a ShapeMismatchError.
func BroadcastShapes(a, b []int) ([]int, error) {
	rank := len(a)
	if len(b) > rank {
		rank = len(b)
	}
	out := make([]int, rank)
	for i := 1; i <= rank; i++ {
		da, db := 1, 1
		if i <= len(a) {
			da = a[len(a)-i]
		}
		if i <= len(b) {
			db = b[len(b)-i]
		}
		switch {
		case da == db:
			out[rank-i] = da
		case da == 1:
			out[rank-i] = db
		case db == 1:
			out[rank-i] = da
		default:
			return nil, &ShapeMismatchError{
				Reason: fmt.Sprintf("cannot broadcast shape %v with %v", a, b),
			}
		}
	}
	return out, nil
}

// broadcastPair expands both tensors to their common broadcast shape and
// returns the flattened element views alongside that shape.
func broadcastPair(a, b *Tensor) ([]float64, []float64, []int, error) {
	shape, err := BroadcastShapes(a.shape, b.shape)
	if err != nil {
		return nil, nil, nil, err
	}
	return a.expandTo(shape), b.expandTo(shape), shape, nil
}

// expandTo returns t's elements tiled out to the given shape, which must be
// a valid broadcast target for t's own shape.
func (t *Tensor) expandTo(shape []int) []float64 {
	if sameShape(t.shape, shape) {
		return t.data
	}
	rank := len(shape)
	src := make([]int, rank)
	for i := range src {
		src[i] = 1
	}
	copy(src[rank-len(t.shape):], t.shape)

	// Row-major strides over the source, zeroed on stretched axes.
	strides := make([]int, rank)
	acc := 1
	for i := rank - 1; i >= 0; i-- {
		if src[i] != 1 {
			strides[i] = acc
		}
		acc *= src[i]
	}

	out := make([]float64, prodInts(shape))
	idx := make([]int, rank)
	for i := range out {
		off := 0
		for d := 0; d < rank; d++ {
			off += idx[d] * strides[d]
		}
		out[i] = t.data[off]
		for d := rank - 1; d >= 0; d-- {
			idx[d]++
			if idx[d] < shape[d] {
				break
			}
			idx[d] = 0
		}
	}
	return out
}

func sameShape(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func prodInts(shape []int) int {
	n := 1
	for _, v := range shape {
		n *= v
	}
	return n
}
