package filters

import (
	"fmt"
	"math"

	"github.com/mayomeir007/quadfx"
)

// sigmaPerRadius relates the spread of the blur kernel to its radius.
const sigmaPerRadius = 0.3

// Kernel is a normalized 1-D Gaussian weight vector.
type Kernel struct {
	Radius int
	Sigma  float64
	// Weights has 2*Radius+1 entries centered on index Radius.
	Weights []float64
}

// GaussianKernel returns a kernel of the given radius where weight i is proportional
// to exp(-(i-radius)²/(2σ²)) and all weights sum to 1.
func GaussianKernel(radius int, sigma float64) (Kernel, error) {
	if !(sigma > 0) || math.IsInf(sigma, 0) {
		return Kernel{}, fmt.Errorf("%w: gaussian sigma %v must be positive", quadfx.ErrInvalidParameter, sigma)
	} else if radius < 0 {
		return Kernel{}, fmt.Errorf("%w: gaussian radius %d is negative", quadfx.ErrInvalidParameter, radius)
	}
	weights := make([]float64, 2*radius+1)
	sfactor := -0.5 / (sigma * sigma)
	var sum float64
	for i := -radius; i <= radius; i++ {
		x := float64(i)
		w := math.Exp(sfactor * x * x)
		weights[i+radius] = w
		sum += w
	}
	for i := range weights {
		weights[i] /= sum
	}
	return Kernel{Radius: radius, Sigma: sigma, Weights: weights}, nil
}

// kernelForRadius builds the blur kernel used for a pass of the given radius.
func kernelForRadius(radius int) (Kernel, error) {
	return GaussianKernel(radius, sigmaPerRadius*float64(radius))
}

// Sum returns the sum of the kernel weights.
func (k Kernel) Sum() (sum float64) {
	for _, w := range k.Weights {
		sum += w
	}
	return sum
}

// Len returns the number of taps of the kernel.
func (k Kernel) Len() int { return len(k.Weights) }
