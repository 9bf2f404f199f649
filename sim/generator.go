package sim

import (
	"gonum.org/v1/gonum/stat/distuv"
)

// The samplers below are the stochastic primitives stages are built from.
// Distribution parameters are tensors broadcast against each other by the
// trailing-dimension rule; when shape is nil the output takes exactly the
// broadcast shape, otherwise shape is prepended to it. Draws come from the
// caller's Source, never from ambient process state.

// Uniform draws from the continuous uniform on [low, high) elementwise.
func Uniform(src *Source, low, high *Tensor, shape []int) (*Tensor, error) {
	lo, hi, bshape, err := broadcastPair(low, high)
	if err != nil {
		return nil, err
	}
	out, outShape := drawBuffer(shape, bshape)
	n := len(lo)
	for i := range out {
		d := distuv.Uniform{Min: lo[i%n], Max: hi[i%n], Src: src.src}
		out[i] = d.Rand()
	}
	return &Tensor{shape: outShape, data: out}, nil
}

// Normal draws from a Gaussian with the given mean and standard deviation
// elementwise.
func Normal(src *Source, mean, std *Tensor, shape []int) (*Tensor, error) {
	mu, sigma, bshape, err := broadcastPair(mean, std)
	if err != nil {
		return nil, err
	}
	out, outShape := drawBuffer(shape, bshape)
	n := len(mu)
	for i := range out {
		d := distuv.Normal{Mu: mu[i%n], Sigma: sigma[i%n], Src: src.src}
		out[i] = d.Rand()
	}
	return &Tensor{shape: outShape, data: out}, nil
}

// TruncatedNormal draws a Gaussian variate and clamps it into [vmin, vmax].
// This is hard clipping, not resampling: probability mass beyond a bound
// piles up on that bound. Either bound may be nil to leave that side open.
// When both bounds are given vmin must be smaller than vmax, otherwise the
// call fails with an InvalidRangeError.
func TruncatedNormal(src *Source, mean, std *Tensor, shape []int, vmin, vmax *float64) (*Tensor, error) {
	if vmin != nil && vmax != nil && *vmin >= *vmax {
		return nil, &InvalidRangeError{Min: *vmin, Max: *vmax}
	}
	rv, err := Normal(src, mean, std, shape)
	if err != nil {
		return nil, err
	}
	for i, v := range rv.data {
		if vmin != nil && v <= *vmin {
			rv.data[i] = *vmin
		}
		if vmax != nil && v >= *vmax {
			rv.data[i] = *vmax
		}
	}
	return rv, nil
}

// Poisson draws non-negative integer counts with the given rate tensor.
func Poisson(src *Source, lambda *Tensor, shape []int) (*Tensor, error) {
	lam := lambda.data
	out, outShape := drawBuffer(shape, lambda.shape)
	n := len(lam)
	for i := range out {
		d := distuv.Poisson{Lambda: lam[i%n], Src: src.src}
		out[i] = d.Rand()
	}
	return &Tensor{shape: outShape, data: out}, nil
}

// Binomial draws success counts for the given trial counts and
// probabilities. Probabilities are silently clamped into [0, 1] before
// sampling; out-of-range values are a leniency of this sampler, not an
// error. Trial counts may be fractional and are handled as real-valued
// counts by the underlying sampler.
func Binomial(src *Source, counts, probs *Tensor, shape []int) (*Tensor, error) {
	cnt, pr, bshape, err := broadcastPair(counts, probs)
	if err != nil {
		return nil, err
	}
	out, outShape := drawBuffer(shape, bshape)
	n := len(cnt)
	for i := range out {
		p := pr[i%n]
		if p < 0 {
			p = 0
		} else if p > 1 {
			p = 1
		}
		d := distuv.Binomial{N: cnt[i%n], P: p, Src: src.src}
		out[i] = d.Rand()
	}
	return &Tensor{shape: outShape, data: out}, nil
}

// drawBuffer allocates the output buffer for a draw whose parameters
// broadcast to bshape, with an optional leading shape prepended.
func drawBuffer(leading, bshape []int) ([]float64, []int) {
	outShape := make([]int, 0, len(leading)+len(bshape))
	outShape = append(outShape, leading...)
	outShape = append(outShape, bshape...)
	if len(outShape) == 0 {
		outShape = nil
	}
	return make([]float64, prodInts(outShape)), outShape
}
