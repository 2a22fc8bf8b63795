package render

// Factorize picks a grid of n rows and m columns (n <= m) with n*m >= x,
// trading the unused cells n*m-x (weight alpha) against how far the grid is
// from square (weight beta). Ties go to the smaller n.
func Factorize(x int, alpha, beta float64) (n, m int) {
	if x <= 0 {
		return 0, 0
	}
	best := -1.0
	for rows := 1; rows <= x; rows++ {
		// For a fixed row count both terms grow with the column count, so
		// the narrowest grid that fits is the best one.
		cols := max(rows, (x+rows-1)/rows)
		loss := alpha*float64(rows*cols-x) + beta*float64(cols-rows)
		if best < 0 || loss < best {
			n, m, best = rows, cols, loss
		}
	}
	return n, m
}
