// Package mean implements an incremental arithmetic mean.
package mean

// Mean accumulates observations and reports their average without
// retaining them.
type Mean struct {
	count int
	total float64
}

// Push adds an observation.
func (m *Mean) Push(x float64) {
	m.count++
	m.total += x
}

// Mean returns the average of all pushed observations, or 0 if none.
func (m *Mean) Mean() float64 {
	if m.count == 0 {
		return 0
	}
	return m.total / float64(m.count)
}

// Count returns the number of observations pushed.
func (m *Mean) Count() int {
	return m.count
}
