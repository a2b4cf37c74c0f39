package msdf

import (
	"math"

	"github.com/gogpu/msdf/internal/parallel"
)

// Stencil flags used by ErrorCorrector.
const (
	// StencilError marks a texel whose channels will be flattened to
	// their median.
	StencilError byte = 1

	// StencilProtected marks a texel that carries a legitimate sharp
	// feature and may only be corrected for sign inversions.
	StencilProtected byte = 2
)

const (
	// artifactTEpsilon excludes interpolation ratios next to the texels,
	// where two channels are equal almost always.
	artifactTEpsilon = 0.01

	// protectionRadiusTolerance widens the edge protection radius slightly
	// beyond one texel worth of distance change.
	protectionRadiusTolerance = 1.001
)

// ErrorCorrector detects texels whose interpolation with a neighbour
// produces a median that a plain distance field would not, and flattens
// them to single-channel values.
//
// The intended sequence is ProtectCorners, ProtectEdges, FindErrors and
// Apply. Correct repeats it until nothing changes.
type ErrorCorrector struct {
	bitmap            *Bitmap
	stencil           []byte
	proj              Projection
	invRange          float64
	minDeviationRatio float64
	workers           int
}

// NewErrorCorrector creates a corrector for bm, which was generated with
// the given projection and distance range.
func NewErrorCorrector(bm *Bitmap, proj Projection, distanceRange float64) *ErrorCorrector {
	return &ErrorCorrector{
		bitmap:            bm,
		stencil:           make([]byte, bm.Width*bm.Height),
		proj:              proj,
		invRange:          1 / distanceRange,
		minDeviationRatio: DefaultMinDeviationRatio,
	}
}

// SetMinDeviationRatio sets the tolerance of artifact detection.
func (ec *ErrorCorrector) SetMinDeviationRatio(ratio float64) {
	ec.minDeviationRatio = ratio
}

// SetWorkers sets the number of goroutines used by FindErrors.
func (ec *ErrorCorrector) SetWorkers(workers int) {
	ec.workers = workers
}

// Stencil returns the per-texel flags, indexed by y*width+x.
func (ec *ErrorCorrector) Stencil() []byte {
	return ec.stencil
}

// ErrorCount returns the number of texels flagged as errors.
func (ec *ErrorCorrector) ErrorCount() int {
	n := 0
	for _, s := range ec.stencil {
		if s&StencilError != 0 {
			n++
		}
	}
	return n
}

// texelDelta returns the change of a normalized value across one texel
// step (dx, dy) at unit distance gradient.
func (ec *ErrorCorrector) texelDelta(dx, dy float64) float64 {
	return ec.proj.UnprojectVector(Point{dx * ec.invRange, dy * ec.invRange}).Length()
}

// ProtectCorners protects the four texels around every vertex where the
// colors of the adjoining edges share at most one channel.
func (ec *ErrorCorrector) ProtectCorners(shape *Shape) {
	w, h := ec.bitmap.Width, ec.bitmap.Height
	for _, c := range shape.Contours {
		if len(c.Edges) == 0 {
			continue
		}
		prev := c.Edges[len(c.Edges)-1].Color
		for i := range c.Edges {
			e := &c.Edges[i]
			common := prev & e.Color
			prev = e.Color
			if common&(common-1) != 0 {
				continue
			}

			p := ec.proj.Project(e.Point(0))
			if shape.InverseYAxis {
				p.Y = float64(h) - p.Y
			}
			l := int(math.Floor(p.X - 0.5))
			b := int(math.Floor(p.Y - 0.5))
			r, t := l+1, b+1
			if l >= w || b >= h || r < 0 || t < 0 {
				continue
			}
			if l >= 0 && b >= 0 {
				ec.stencil[b*w+l] |= StencilProtected
			}
			if r < w && b >= 0 {
				ec.stencil[b*w+r] |= StencilProtected
			}
			if l >= 0 && t < h {
				ec.stencil[t*w+l] |= StencilProtected
			}
			if r < w && t < h {
				ec.stencil[t*w+r] |= StencilProtected
			}
		}
	}
}

// edgeBetweenTexelsChannel reports whether channel crosses 0.5 between a
// and b at a point where it is the median.
func edgeBetweenTexelsChannel(a, b []float32, channel int) bool {
	t := float64(a[channel]-0.5) / float64(a[channel]-b[channel])
	if t > 0 && t < 1 {
		c0 := mix(a[0], b[0], t)
		c1 := mix(a[1], b[1], t)
		c2 := mix(a[2], b[2], t)
		return median(c0, c1, c2) == [3]float32{c0, c1, c2}[channel]
	}
	return false
}

// edgeBetweenTexels returns the mask of channels forming an edge between
// a and b.
func edgeBetweenTexels(a, b []float32) EdgeColor {
	var mask EdgeColor
	for c := range 3 {
		if edgeBetweenTexelsChannel(a, b, c) {
			mask |= 1 << c
		}
	}
	return mask
}

// protectExtremeChannels protects a texel when a channel in mask is not
// its median.
func protectExtremeChannels(stencil *byte, px []float32, m float32, mask EdgeColor) {
	if (mask&ColorRed != 0 && px[0] != m) ||
		(mask&ColorGreen != 0 && px[1] != m) ||
		(mask&ColorBlue != 0 && px[2] != m) {
		*stencil |= StencilProtected
	}
}

// ProtectEdges protects texel pairs straddling the outline whose edge is
// carried by a channel other than the median.
func (ec *ErrorCorrector) ProtectEdges() {
	bm := ec.bitmap
	w, h := bm.Width, bm.Height
	protectPair := func(x0, y0, x1, y1 int, radius float64) {
		a, b := bm.pixel(x0, y0), bm.pixel(x1, y1)
		am, bmed := bm.Median(x0, y0), bm.Median(x1, y1)
		if math.Abs(float64(am)-0.5)+math.Abs(float64(bmed)-0.5) < radius {
			mask := edgeBetweenTexels(a, b)
			protectExtremeChannels(&ec.stencil[y0*w+x0], a, am, mask)
			protectExtremeChannels(&ec.stencil[y1*w+x1], b, bmed, mask)
		}
	}

	radius := protectionRadiusTolerance * ec.texelDelta(1, 0)
	for y := range h {
		for x := 0; x < w-1; x++ {
			protectPair(x, y, x+1, y, radius)
		}
	}

	radius = protectionRadiusTolerance * ec.texelDelta(0, 1)
	for y := 0; y < h-1; y++ {
		for x := range w {
			protectPair(x, y, x, y+1, radius)
		}
	}

	radius = protectionRadiusTolerance * ec.texelDelta(1, 1)
	for y := 0; y < h-1; y++ {
		for x := 0; x < w-1; x++ {
			protectPair(x, y, x+1, y+1, radius)
			protectPair(x+1, y, x, y+1, radius)
		}
	}
}

// artifactClassifier decides whether an interpolated median is an artifact.
type artifactClassifier struct {
	span      float64
	protected bool
}

// rangeTest reports whether the median xm interpolated at xt, between am
// at at and bm at bt, indicates an artifact.
func (ac artifactClassifier) rangeTest(at, bt, xt float64, am, bm, xm float32) bool {
	if (am > 0.5 && bm > 0.5 && xm <= 0.5) ||
		(am < 0.5 && bm < 0.5 && xm >= 0.5) ||
		(!ac.protected && median(am, bm, xm) != xm) {
		axSpan := (xt - at) * ac.span
		bxSpan := (bt - xt) * ac.span
		x := float64(xm)
		inRange := x >= float64(am)-axSpan && x <= float64(am)+axSpan &&
			x >= float64(bm)-bxSpan && x <= float64(bm)+bxSpan
		return !inRange
	}
	return false
}

func interpolatedMedian(a, b []float32, t float64) float32 {
	return median(mix(a[0], b[0], t), mix(a[1], b[1], t), mix(a[2], b[2], t))
}

// bilinearMedian evaluates the median of t*(t*q + l) + a per channel.
func bilinearMedian(a []float32, l, q [3]float32, t float64) float32 {
	var v [3]float64
	for c := range v {
		v[c] = t*(t*float64(q[c])+float64(l[c])) + float64(a[c])
	}
	return float32(median(v[0], v[1], v[2]))
}

func hasLinearArtifactInner(ac artifactClassifier, am, bm float32, a, b []float32, dA, dB float32) bool {
	t := float64(dA) / float64(dA-dB)
	if t > artifactTEpsilon && t < 1-artifactTEpsilon {
		xm := interpolatedMedian(a, b, t)
		return ac.rangeTest(0, 1, t, am, bm, xm)
	}
	return false
}

// hasLinearArtifact tests the interpolation between adjacent texels a and
// b at each point where two channels meet. Only the texel farther from the
// outline is reported.
func hasLinearArtifact(ac artifactClassifier, am float32, a, b []float32) bool {
	bm := median(b[0], b[1], b[2])
	if math.Abs(float64(am)-0.5) < math.Abs(float64(bm)-0.5) {
		return false
	}
	return hasLinearArtifactInner(ac, am, bm, a, b, a[1]-a[0], b[1]-b[0]) ||
		hasLinearArtifactInner(ac, am, bm, a, b, a[2]-a[1], b[2]-b[1]) ||
		hasLinearArtifactInner(ac, am, bm, a, b, a[0]-a[2], b[0]-b[2])
}

func hasDiagonalArtifactInner(ac artifactClassifier, am, dm float32, a []float32, l, q [3]float32,
	dA, dBC, dD float32, tEx0, tEx1 float64) bool {
	roots := solveQuadratic(float64(dD-dBC+dA), float64(dBC-dA-dA), float64(dA))
	for _, t := range roots {
		if t <= artifactTEpsilon || t >= 1-artifactTEpsilon {
			continue
		}
		xm := bilinearMedian(a, l, q, t)
		artifact := ac.rangeTest(0, 1, t, am, dm, xm)

		for _, tEx := range [2]float64{tEx0, tEx1} {
			if !(tEx > 0 && tEx < 1) {
				continue
			}
			tEnd := [2]float64{0, 1}
			em := [2]float32{am, dm}
			k := 0
			if tEx > t {
				k = 1
			}
			tEnd[k] = tEx
			em[k] = bilinearMedian(a, l, q, tEx)
			artifact = artifact || ac.rangeTest(tEnd[0], tEnd[1], t, em[0], em[1], xm)
		}
		if artifact {
			return true
		}
	}
	return false
}

// hasDiagonalArtifact tests the bilinear interpolation between diagonal
// texels a and d, where b and c are the texels of the other diagonal.
func hasDiagonalArtifact(ac artifactClassifier, am float32, a, b, c, d []float32) bool {
	dm := median(d[0], d[1], d[2])
	if math.Abs(float64(am)-0.5) < math.Abs(float64(dm)-0.5) {
		return false
	}
	var abc, l, q [3]float32
	var tEx [3]float64
	for i := range 3 {
		abc[i] = a[i] - b[i] - c[i]
		l[i] = -a[i] - abc[i]
		q[i] = d[i] + abc[i]
		tEx[i] = -0.5 * float64(l[i]) / float64(q[i])
	}
	return hasDiagonalArtifactInner(ac, am, dm, a, l, q, a[1]-a[0], b[1]-b[0]+c[1]-c[0], d[1]-d[0], tEx[0], tEx[1]) ||
		hasDiagonalArtifactInner(ac, am, dm, a, l, q, a[2]-a[1], b[2]-b[1]+c[2]-c[1], d[2]-d[1], tEx[1], tEx[2]) ||
		hasDiagonalArtifactInner(ac, am, dm, a, l, q, a[0]-a[2], b[0]-b[2]+c[0]-c[2], d[0]-d[2], tEx[2], tEx[0])
}

// FindErrors flags every texel that produces an artifact when
// interpolated with any of its eight neighbours. Protected texels are only
// flagged for sign inversions.
func (ec *ErrorCorrector) FindErrors() {
	bm := ec.bitmap
	w, h := bm.Width, bm.Height
	hSpan := ec.minDeviationRatio * ec.texelDelta(1, 0)
	vSpan := ec.minDeviationRatio * ec.texelDelta(0, 1)
	dSpan := ec.minDeviationRatio * ec.texelDelta(1, 1)

	parallel.Rows(h, ec.workers, func(band parallel.Band) {
		for y := band.Start; y < band.End; y++ {
			for x := range w {
				c := bm.pixel(x, y)
				cm := median(c[0], c[1], c[2])
				protected := ec.stencil[y*w+x]&StencilProtected != 0
				hc := artifactClassifier{span: hSpan, protected: protected}
				vc := artifactClassifier{span: vSpan, protected: protected}
				dc := artifactClassifier{span: dSpan, protected: protected}

				var l, b, r, t []float32
				if x > 0 {
					l = bm.pixel(x-1, y)
				}
				if y > 0 {
					b = bm.pixel(x, y-1)
				}
				if x < w-1 {
					r = bm.pixel(x+1, y)
				}
				if y < h-1 {
					t = bm.pixel(x, y+1)
				}

				found := (l != nil && hasLinearArtifact(hc, cm, c, l)) ||
					(b != nil && hasLinearArtifact(vc, cm, c, b)) ||
					(r != nil && hasLinearArtifact(hc, cm, c, r)) ||
					(t != nil && hasLinearArtifact(vc, cm, c, t)) ||
					(l != nil && b != nil && hasDiagonalArtifact(dc, cm, c, l, b, bm.pixel(x-1, y-1))) ||
					(r != nil && b != nil && hasDiagonalArtifact(dc, cm, c, r, b, bm.pixel(x+1, y-1))) ||
					(l != nil && t != nil && hasDiagonalArtifact(dc, cm, c, l, t, bm.pixel(x-1, y+1))) ||
					(r != nil && t != nil && hasDiagonalArtifact(dc, cm, c, r, t, bm.pixel(x+1, y+1)))
				if found {
					ec.stencil[y*w+x] |= StencilError
				}
			}
		}
	})
}

// Apply replaces all channels of every flagged texel with their median
// and returns the number of texels changed. Flagged texels that are
// already flat are not counted.
func (ec *ErrorCorrector) Apply() int {
	bm := ec.bitmap
	n := 0
	for i, s := range ec.stencil {
		if s&StencilError == 0 {
			continue
		}
		px := bm.Pix[i*3 : i*3+3]
		if px[0] == px[1] && px[1] == px[2] {
			continue
		}
		m := median(px[0], px[1], px[2])
		px[0], px[1], px[2] = m, m, m
		n++
	}
	return n
}

// Reset clears all stencil flags.
func (ec *ErrorCorrector) Reset() {
	clear(ec.stencil)
}

// Correct runs the protect, find and apply sequence until a pass changes
// no texel, so that a corrected bitmap is a fixed point of the corrector.
// It returns the total number of corrected texels.
//
// Every pass that continues flattens at least one texel and flat texels
// stay flat, so the loop ends after at most width*height passes.
func (ec *ErrorCorrector) Correct(shape *Shape) int {
	total := 0
	for {
		ec.Reset()
		ec.ProtectCorners(shape)
		ec.ProtectEdges()
		ec.FindErrors()
		n := ec.Apply()
		if n == 0 {
			return total
		}
		total += n
	}
}

// CorrectErrors runs error correction on bm until it reaches a fixed point
// and returns the number of corrected texels.
func CorrectErrors(bm *Bitmap, shape *Shape, proj Projection, distanceRange float64) int {
	return NewErrorCorrector(bm, proj, distanceRange).Correct(shape)
}
