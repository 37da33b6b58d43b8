package pluton

// identityTransform is the identity affine matrix.
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular (determinant ~ 0).
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityTransform
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// sceneMatrix maps scene coordinates (origin at the viewport centre, Y up)
// to viewport coordinates:
//
//	Translate(cx + panX*m, cy + panY*m) * Scale(s, -s)
//
// where m converts the camera's pixel pan into viewport units.
func sceneMatrix(vp Rect, cam CameraState) [6]float64 {
	cx := vp.X + vp.Width/2
	cy := vp.Y + vp.Height/2
	m := cam.Multiplier
	if m == 0 {
		m = 1
	}
	s := cam.Scale
	if s == 0 {
		s = 1
	}
	return [6]float64{s, 0, 0, -s, cx + cam.PanX*m, cy + cam.PanY*m}
}

// sceneTransformAttr renders sceneMatrix as an SVG transform attribute.
func sceneTransformAttr(vp Rect, cam CameraState) string {
	m := sceneMatrix(vp, cam)
	return "translate(" + formatNum(m[4]) + ", " + formatNum(m[5]) + ") scale(" +
		formatNum(m[0]) + ", " + formatNum(m[3]) + ")"
}
