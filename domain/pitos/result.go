package pitos

// Result is the outcome of one test call.
type Result struct {
	PValue      float64   `json:"p_value"`
	SampleSize  int       `json:"sample_size"`
	PairCount   int       `json:"pair_count"`
	PairPValues []float64 `json:"pair_p_values,omitempty"`
}

// Rejects reports whether the null of uniformity is rejected at level alpha.
func (r *Result) Rejects(alpha float64) bool {
	return r.PValue < alpha
}
