package neighbors

import "github.com/YuminosukeSato/knnloo/metrics"

// Option is a function that configures KNeighborsClassifier
type Option func(*KNeighborsClassifier)

// WithNNeighbors sets K, the number of neighbors that vote
func WithNNeighbors(k int) Option {
	return func(c *KNeighborsClassifier) {
		c.nNeighbors = k
	}
}

// WithEpsilon sets the constant added to each distance before inverting it
func WithEpsilon(eps float64) Option {
	return func(c *KNeighborsClassifier) {
		c.epsilon = eps
	}
}

// WithMetric sets the distance function
func WithMetric(metric metrics.DistanceFunc) Option {
	return func(c *KNeighborsClassifier) {
		c.metric = metric
	}
}
