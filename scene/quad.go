// Package scene models the collaborators around the pixel store: the textured
// quad placed in 3D space and the properties panel that drives effects.
package scene

import (
	"github.com/chewxy/math32"
	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"
)

// Mat4 is a column-major 4x4 matrix as consumed by shader uniforms.
type Mat4 [16]float32

// Identity returns the identity matrix.
func Identity() Mat4 {
	return Mat4{0: 1, 5: 1, 10: 1, 15: 1}
}

// Mul returns m·n.
func (m Mat4) Mul(n Mat4) (r Mat4) {
	for c := 0; c < 4; c++ {
		for row := 0; row < 4; row++ {
			var sum float32
			for k := 0; k < 4; k++ {
				sum += m[k*4+row] * n[c*4+k]
			}
			r[c*4+row] = sum
		}
	}
	return r
}

// Apply transforms point p, w=1.
func (m Mat4) Apply(p ms3.Vec) ms3.Vec {
	return ms3.Vec{
		X: m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12],
		Y: m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13],
		Z: m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14],
	}
}

func translation(v ms3.Vec) Mat4 {
	m := Identity()
	m[12], m[13], m[14] = v.X, v.Y, v.Z
	return m
}

func scaling(v ms3.Vec) Mat4 {
	return Mat4{0: v.X, 5: v.Y, 10: v.Z, 15: 1}
}

func rotationX(deg float32) Mat4 {
	s, c := sincosDeg(deg)
	m := Identity()
	m[5], m[6] = c, s
	m[9], m[10] = -s, c
	return m
}

func rotationY(deg float32) Mat4 {
	s, c := sincosDeg(deg)
	m := Identity()
	m[0], m[2] = c, -s
	m[8], m[10] = s, c
	return m
}

func rotationZ(deg float32) Mat4 {
	s, c := sincosDeg(deg)
	m := Identity()
	m[0], m[1] = c, s
	m[4], m[5] = -s, c
	return m
}

func sincosDeg(deg float32) (sin, cos float32) {
	rad := deg * math32.Pi / 180
	return math32.Sin(rad), math32.Cos(rad)
}

// Quad is the unit quad the image texture is drawn on.
// Rotation is in degrees about the X, Y and Z axes, applied in that order.
type Quad struct {
	position ms3.Vec
	rotation ms3.Vec
	scale    ms2.Vec
	model    Mat4
	dirty    bool
}

// NewQuad returns a quad at the default position.
func NewQuad() *Quad {
	q := &Quad{}
	q.SetDefault()
	q.Update()
	return q
}

func (q *Quad) Position() ms3.Vec { return q.position }
func (q *Quad) Rotation() ms3.Vec { return q.rotation }
func (q *Quad) Scale() ms2.Vec    { return q.scale }

func (q *Quad) SetPosition(v ms3.Vec) {
	q.position = v
	q.dirty = true
}

func (q *Quad) SetRotation(v ms3.Vec) {
	q.rotation = v
	q.dirty = true
}

func (q *Quad) SetScale(v ms2.Vec) {
	q.scale = v
	q.dirty = true
}

// SetDefault centers the quad at the origin, unrotated at unit scale.
func (q *Quad) SetDefault() {
	q.position = ms3.Vec{}
	q.rotation = ms3.Vec{}
	q.scale = ms2.Vec{X: 1, Y: 1}
	q.dirty = true
}

// Dirty reports whether the model matrix is stale.
func (q *Quad) Dirty() bool { return q.dirty }

// Update recomputes the model matrix if the transform changed since the last update.
func (q *Quad) Update() {
	if !q.dirty {
		return
	}
	q.model = translation(q.position).
		Mul(rotationX(q.rotation.X)).
		Mul(rotationY(q.rotation.Y)).
		Mul(rotationZ(q.rotation.Z)).
		Mul(scaling(ms3.Vec{X: q.scale.X, Y: q.scale.Y, Z: 1}))
	q.dirty = false
}

// Model returns the model matrix as of the last Update.
func (q *Quad) Model() Mat4 { return q.model }
