package msdf

import "math"

// Polynomial root solvers used by the quadratic distance search, scanline
// intersection of curves and the diagonal artifact test.
//
// Based on algorithms from kurbo (https://github.com/linebender/kurbo).

// solveQuadratic finds real roots of ax^2 + bx + c = 0 in ascending order.
// A vanishing a degrades to the linear case; all-zero coefficients yield
// the single root 0.
func solveQuadratic(a, b, c float64) []float64 {
	sc0 := c / a
	sc1 := b / a
	if !isFinite(sc0) || !isFinite(sc1) {
		return solveLinear(b, c)
	}

	arg := sc1*sc1 - 4.0*sc0
	if !isFinite(arg) {
		// Discriminant overflow: one root from sc1*x + x^2 = 0.
		return orderedRoots(-sc1, sc0/-sc1)
	}
	if arg < 0.0 {
		return nil
	}
	if arg == 0.0 {
		return []float64{-0.5 * sc1}
	}

	// Numerically stable form avoiding cancellation.
	root1 := -0.5 * (sc1 + math.Copysign(math.Sqrt(arg), sc1))
	return orderedRoots(root1, sc0/root1)
}

func orderedRoots(root1, root2 float64) []float64 {
	if !isFinite(root2) {
		return []float64{root1}
	}
	if root1 > root2 {
		return []float64{root2, root1}
	}
	return []float64{root1, root2}
}

func solveLinear(b, c float64) []float64 {
	root := -c / b
	if isFinite(root) {
		return []float64{root}
	}
	if c == 0.0 && b == 0.0 {
		return []float64{0.0}
	}
	return nil
}

// solveCubic finds real roots of ax^3 + bx^2 + cx + d = 0 (unsorted).
//
// Uses Blinn's method as described in
// https://momentsingraphics.de/CubicRoots.html
func solveCubic(a, b, c, d float64) []float64 {
	aRecip := 1.0 / a
	const oneThird = 1.0 / 3.0

	scaledB := b * (oneThird * aRecip)
	scaledC := c * (oneThird * aRecip)
	scaledD := d * aRecip
	if !isFinite(scaledB) || !isFinite(scaledC) || !isFinite(scaledD) {
		return solveQuadratic(b, c, d)
	}

	c0, c1, c2 := scaledD, scaledC, scaledB

	d0 := (-c2)*c2 + c1
	d1 := (-c1)*c2 + c0
	d2 := c2*c0 - c1*c1

	disc := 4.0*d0*d2 - d1*d1
	de := (-2.0*c2)*d0 + d1

	if disc < 0.0 {
		sq := math.Sqrt(-0.25 * disc)
		r := -0.5 * de
		t1 := math.Cbrt(r+sq) + math.Cbrt(r-sq)
		return []float64{t1 - c2}
	} else if disc == 0.0 {
		t1 := math.Copysign(math.Sqrt(-d0), de)
		return []float64{t1 - c2, -2.0*t1 - c2}
	}

	th := math.Atan2(math.Sqrt(disc), -de) * oneThird
	thSin, thCos := math.Sincos(th)

	r0 := thCos
	ss3 := thSin * math.Sqrt(3.0)
	r1 := 0.5 * (-thCos + ss3)
	r2 := 0.5 * (-thCos - ss3)
	t := 2.0 * math.Sqrt(-d0)

	return []float64{
		t*r0 - c2,
		t*r1 - c2,
		t*r2 - c2,
	}
}

// isFinite returns true if x is neither infinite nor NaN.
func isFinite(x float64) bool {
	return !math.IsInf(x, 0) && !math.IsNaN(x)
}
