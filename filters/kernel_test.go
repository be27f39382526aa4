package filters

import (
	"errors"
	"math"
	"testing"

	"github.com/mayomeir007/quadfx"
)

func TestGaussianKernelNormalized(t *testing.T) {
	for _, radius := range []int{1, 2, 3, 7, 25, 120} {
		for _, sigma := range []float64{0.05, 0.3, 1, 0.3 * float64(radius), 40} {
			k, err := GaussianKernel(radius, sigma)
			if err != nil {
				t.Fatalf("radius=%d sigma=%v: %v", radius, sigma, err)
			}
			if k.Len() != 2*radius+1 {
				t.Fatalf("radius=%d: got %d weights, want %d", radius, k.Len(), 2*radius+1)
			}
			if sum := k.Sum(); math.Abs(sum-1) > 1e-6 {
				t.Errorf("radius=%d sigma=%v: weights sum to %v", radius, sigma, sum)
			}
			for i := 0; i < radius; i++ {
				if k.Weights[i] != k.Weights[2*radius-i] {
					t.Errorf("radius=%d sigma=%v: asymmetric weights at %d: %v != %v",
						radius, sigma, i, k.Weights[i], k.Weights[2*radius-i])
				}
				if k.Weights[i] > k.Weights[i+1] {
					t.Errorf("radius=%d sigma=%v: weights not increasing towards center at %d", radius, sigma, i)
				}
			}
		}
	}
}

func TestGaussianKernelRatio(t *testing.T) {
	const radius, sigma = 4, 1.5
	k, err := GaussianKernel(radius, sigma)
	if err != nil {
		t.Fatal(err)
	}
	for i := -radius; i <= radius; i++ {
		want := math.Exp(-float64(i*i) / (2 * sigma * sigma))
		got := k.Weights[i+radius] / k.Weights[radius]
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("offset %d: relative weight %v, want %v", i, got, want)
		}
	}
}

func TestGaussianKernelInvalid(t *testing.T) {
	tests := []struct {
		radius int
		sigma  float64
	}{
		{1, 0},
		{1, -0.3},
		{3, math.NaN()},
		{3, math.Inf(1)},
		{-1, 1},
	}
	for _, tc := range tests {
		_, err := GaussianKernel(tc.radius, tc.sigma)
		if !errors.Is(err, quadfx.ErrInvalidParameter) {
			t.Errorf("radius=%d sigma=%v: got err %v, want ErrInvalidParameter", tc.radius, tc.sigma, err)
		}
	}
}

func TestGaussianKernelZeroRadius(t *testing.T) {
	k, err := GaussianKernel(0, 0.3)
	if err != nil {
		t.Fatal(err)
	}
	if len(k.Weights) != 1 || k.Weights[0] != 1 {
		t.Errorf("got weights %v, want [1]", k.Weights)
	}
}
