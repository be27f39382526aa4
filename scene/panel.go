package scene

import (
	"fmt"

	"github.com/soypat/geometry/ms2"
	"github.com/soypat/geometry/ms3"

	"github.com/mayomeir007/quadfx"
	"github.com/mayomeir007/quadfx/codec"
	"github.com/mayomeir007/quadfx/store"
	"github.com/mayomeir007/quadfx/texture"
)

// Picker selects files for opening and saving. A cancelled dialog returns ok=false
// and no error.
type Picker interface {
	Open() (path string, ok bool, err error)
	Save() (path string, ok bool, err error)
}

// DrawFunc draws the quad with the given model matrix. tex is nil when no image is loaded.
type DrawFunc func(model Mat4, tex texture.Handle) error

// Panel is the properties window: buttons to load and save, transform sliders,
// and the invert checkbox and blur slider that drive the pixel store.
type Panel struct {
	store  *store.Store
	quad   *Quad
	picker Picker

	Position quadfx.ControlVec3
	Rotation quadfx.ControlVec3
	Scale    quadfx.ControlVec2
	Invert   quadfx.ControlBool
	Blur     quadfx.ControlOrdered[float32]
}

// NewPanel wires the panel controls to s and q. Files are selected through picker.
func NewPanel(s *store.Store, q *Quad, picker Picker) *Panel {
	p := &Panel{store: s, quad: q, picker: picker}
	p.Position = quadfx.ControlVec3{
		Name:        "Position",
		Description: "Position of the quad in world units",
		Value:       q.Position(),
		Min:         -10,
		Max:         10,
		OnChange: func(v ms3.Vec) error {
			q.SetPosition(v)
			return nil
		},
	}
	p.Rotation = quadfx.ControlVec3{
		Name:        "Rotation",
		Description: "Pitch, yaw and roll of the quad in degrees",
		Value:       q.Rotation(),
		Min:         -360,
		Max:         360,
		OnChange: func(v ms3.Vec) error {
			q.SetRotation(v)
			return nil
		},
	}
	p.Scale = quadfx.ControlVec2{
		Name:        "Scale",
		Description: "Width and height scale of the quad",
		Value:       q.Scale(),
		Min:         0.001,
		Max:         10,
		OnChange: func(v ms2.Vec) error {
			q.SetScale(v)
			return nil
		},
	}
	p.Invert = quadfx.ControlBool{
		Name:        "Invert colors",
		Description: "Invert the color channels of the image",
		OnChange: func(bool) error {
			if !s.Loaded() {
				return quadfx.ErrNotLoaded
			}
			return s.Invert()
		},
	}
	p.Blur = quadfx.ControlOrdered[float32]{
		Name:        "Gaussian Blur",
		Description: "Blur strength as a percentage of the image size",
		Min:         0,
		Max:         5,
		Step:        0.01,
		OnChange: func(v float32) error {
			if !s.Loaded() {
				return quadfx.ErrNotLoaded
			}
			return s.Blur(float64(v), p.Invert.Value)
		},
	}
	return p
}

// Controls returns the panel controls in display order.
func (p *Panel) Controls() []quadfx.Control {
	return []quadfx.Control{&p.Position, &p.Rotation, &p.Scale, &p.Invert, &p.Blur}
}

// LoadClicked asks the picker for an image and loads it. Effects and the quad
// transform are reset on success. Paths that are not PNG or JPEG are rejected
// with [quadfx.ErrUnsupportedPath].
func (p *Panel) LoadClicked() error {
	path, ok, err := p.picker.Open()
	if err != nil || !ok {
		return err
	}
	if !codec.Acceptable(path) {
		return fmt.Errorf("%w: %s", quadfx.ErrUnsupportedPath, path)
	}
	if err := p.store.Load(path); err != nil {
		return err
	}
	p.Invert.Value = false
	p.Blur.Value = 0
	p.DefaultPositionClicked()
	return nil
}

// SaveClicked asks the picker for a destination and saves the image with or
// without effects. Does nothing when no image is loaded.
func (p *Panel) SaveClicked(withEffects bool) error {
	if !p.store.Loaded() {
		return nil
	}
	path, ok, err := p.picker.Save()
	if err != nil || !ok {
		return err
	}
	if withEffects {
		return p.store.SaveWithEffects(path)
	}
	return p.store.SaveWithoutEffects(path)
}

// DefaultPositionClicked restores the default quad transform.
func (p *Panel) DefaultPositionClicked() {
	p.quad.SetDefault()
	p.Position.Value = p.quad.Position()
	p.Rotation.Value = p.quad.Rotation()
	p.Scale.Value = p.quad.Scale()
}

// Render updates the quad transform and draws it with the image texture bound.
func (p *Panel) Render(draw DrawFunc) error {
	p.quad.Update()
	if !p.store.Loaded() {
		return draw(p.quad.Model(), nil)
	}
	h, err := p.store.Bind()
	if err != nil {
		return err
	}
	defer p.store.Unbind()
	return draw(p.quad.Model(), h)
}
