package tea

// geometricSum returns the partial geometric series sum 1 + r + ... + r^n.
func geometricSum(r float64, n int) float64 {
	sum := 0.0
	term := 1.0
	for i := 0; i <= n; i++ {
		sum += term
		term *= r
	}
	return sum
}

// powi returns r^n for a non-negative integer exponent.
func powi(r float64, n int) float64 {
	p := 1.0
	for i := 0; i < n; i++ {
		p *= r
	}
	return p
}
