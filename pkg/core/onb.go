package core

import "math"

// ONB is an orthonormal basis {U, V, W} used to express directions in a local frame
type ONB struct {
	U, V, W Vec3
}

// NewONB builds a frame whose W axis is the direction of w.
// The reference axis switches from X to Y when w is nearly parallel to X,
// so the cross product never collapses.
func NewONB(w Vec3) ONB {
	unitW := w.Normalize()
	if unitW.Norm2() == 0 {
		unitW = NewVec3(0, 0, 1)
	}

	a := NewVec3(1, 0, 0)
	if math.Abs(unitW.X) > 0.9 {
		a = NewVec3(0, 1, 0)
	}

	v := unitW.Cross(a).Normalize()
	u := unitW.Cross(v)
	return ONB{U: u, V: v, W: unitW}
}

// Local maps coordinates expressed in this frame to world space
func (o ONB) Local(a Vec3) Vec3 {
	return o.U.Mul(a.X).Add(o.V.Mul(a.Y)).Add(o.W.Mul(a.Z))
}
