package main

import "math/rand"

// syntheticTwoBlobs generates a deterministic two-Gaussian-blob stream
// in two dimensions: the first half of samples scattered around
// centerA, the second half around centerB, with the given per-blob
// standard deviation. Deterministic seeding keeps a demo run
// reproducible across invocations.
func syntheticTwoBlobs(n int, centerA, centerB [2]float64, stddev float64, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	samples := make([][]float64, 0, n)
	half := n / 2

	for i := 0; i < n; i++ {
		center := centerA
		if i >= half {
			center = centerB
		}
		samples = append(samples, []float64{
			center[0] + rng.NormFloat64()*stddev,
			center[1] + rng.NormFloat64()*stddev,
		})
	}
	return samples
}
