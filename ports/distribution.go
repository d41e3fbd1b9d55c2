package ports

// DistributionPort supplies the distribution functions the PITOS core needs.
// Implementations must be pure and safe for concurrent use.
type DistributionPort interface {
	// BetaQuantile is the inverse CDF of Beta(alpha, beta) at p in [0,1]
	BetaQuantile(p, alpha, beta float64) float64

	// BetaCDF is the CDF of Beta(alpha, beta); 0 below the support and 1 above it
	BetaCDF(x, alpha, beta float64) float64

	// CauchySurvival is 1 - CDF of the standard Cauchy distribution
	CauchySurvival(x float64) float64
}
