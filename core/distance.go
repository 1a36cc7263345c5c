package core

import "gonum.org/v1/gonum/floats"

// EuclideanDistance returns the L2 distance between a microcluster's
// center and a sample, used by the Distance Stage to pick the nearest
// reachable candidate.
func EuclideanDistance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}
