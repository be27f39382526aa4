package scene

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/soypat/geometry/ms3"

	"github.com/mayomeir007/quadfx"
	"github.com/mayomeir007/quadfx/store"
	"github.com/mayomeir007/quadfx/texture"
)

type fakePicker struct {
	open, save string
	cancel     bool
}

func (p *fakePicker) Open() (string, bool, error) { return p.open, !p.cancel, nil }
func (p *fakePicker) Save() (string, bool, error) { return p.save, !p.cancel, nil }

func writeImage(t *testing.T, dir string) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 24, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 24; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(10 * x), uint8(15 * y), 200, 255})
		}
	}
	img.SetNRGBA(0, 0, color.NRGBA{1, 2, 3, 4}) // keep NRGBA layout
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "in.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newPanel(t *testing.T) (*Panel, *store.Store, *texture.Memory, *fakePicker) {
	t.Helper()
	mem := &texture.Memory{}
	s := store.New(mem)
	t.Cleanup(func() { s.Close() })
	picker := &fakePicker{open: writeImage(t, t.TempDir())}
	return NewPanel(s, NewQuad(), picker), s, mem, picker
}

func TestPanelLoadResetsState(t *testing.T) {
	p, s, _, _ := newPanel(t)
	if err := p.LoadClicked(); err != nil {
		t.Fatal(err)
	}
	if err := p.Invert.ChangeValue(true); err != nil {
		t.Fatal(err)
	}
	if err := p.Blur.ChangeValue(float32(2)); err != nil {
		t.Fatal(err)
	}
	if err := p.Position.ChangeValue(ms3.Vec{X: 1}); err != nil {
		t.Fatal(err)
	}
	if s.Effects().Equal(s.Source()) {
		t.Fatal("effects not applied")
	}

	if err := p.LoadClicked(); err != nil {
		t.Fatal(err)
	}
	if p.Invert.Value || p.Blur.Value != 0 {
		t.Errorf("effect controls not reset: invert=%v blur=%v", p.Invert.Value, p.Blur.Value)
	}
	if p.Position.Value != (ms3.Vec{}) || p.quad.Position() != (ms3.Vec{}) {
		t.Error("quad transform not reset")
	}
	if !s.Effects().Equal(s.Source()) {
		t.Error("effects not reset to source on load")
	}
}

func TestPanelInvertToggle(t *testing.T) {
	p, s, _, _ := newPanel(t)
	if err := p.LoadClicked(); err != nil {
		t.Fatal(err)
	}
	for _, v := range []bool{true, false} {
		if err := p.Invert.ChangeValue(v); err != nil {
			t.Fatal(err)
		}
	}
	if !s.Effects().Equal(s.Source()) {
		t.Error("invert on then off changed the image")
	}
}

func TestPanelBlurKeepsInvert(t *testing.T) {
	p, s, _, _ := newPanel(t)
	if err := p.LoadClicked(); err != nil {
		t.Fatal(err)
	}
	if err := p.Invert.ChangeValue(true); err != nil {
		t.Fatal(err)
	}
	inverted, _ := s.Effects().Clone()
	// Blur radii are zero at this strength so the result is the inverted source.
	if err := p.Blur.ChangeValue(float32(1)); err != nil {
		t.Fatal(err)
	}
	if !s.Effects().Equal(inverted) {
		t.Error("blur dropped the active invert")
	}
	if err := p.Blur.ChangeValue(float32(6)); !errors.Is(err, quadfx.ErrInvalidParameter) {
		t.Errorf("blur above slider range: got %v", err)
	}
}

func TestPanelUnloaded(t *testing.T) {
	p, s, _, picker := newPanel(t)
	if err := p.Invert.ChangeValue(true); !errors.Is(err, quadfx.ErrNotLoaded) {
		t.Errorf("invert: got %v, want ErrNotLoaded", err)
	}
	if p.Invert.Value {
		t.Error("invert toggle kept while nothing loaded")
	}
	if err := p.Blur.ChangeValue(float32(3)); !errors.Is(err, quadfx.ErrNotLoaded) {
		t.Errorf("blur: got %v, want ErrNotLoaded", err)
	}
	if p.Blur.Value != 0 {
		t.Error("blur value kept while nothing loaded")
	}
	if err := p.SaveClicked(true); err != nil {
		t.Errorf("save while unloaded: %v", err)
	}

	picker.cancel = true
	if err := p.LoadClicked(); err != nil || s.Loaded() {
		t.Errorf("cancelled load: err=%v loaded=%v", err, s.Loaded())
	}
	picker.cancel = false
	picker.open = "picture.bmp"
	if err := p.LoadClicked(); !errors.Is(err, quadfx.ErrUnsupportedPath) || s.Loaded() {
		t.Errorf("bmp load: err=%v loaded=%v", err, s.Loaded())
	}
}

func TestPanelSave(t *testing.T) {
	p, s, _, picker := newPanel(t)
	if err := p.LoadClicked(); err != nil {
		t.Fatal(err)
	}
	if err := p.Invert.ChangeValue(true); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	for _, withEffects := range []bool{false, true} {
		picker.save = filepath.Join(dir, "out.png")
		if err := p.SaveClicked(withEffects); err != nil {
			t.Fatal(err)
		}
		check := store.New(&texture.Memory{})
		if err := check.Load(picker.save); err != nil {
			t.Fatal(err)
		}
		want := s.Source()
		if withEffects {
			want = s.Effects()
		}
		if !check.Source().Equal(want) {
			t.Errorf("withEffects=%v: saved image differs", withEffects)
		}
		check.Close()
	}
	picker.cancel = true
	picker.save = filepath.Join(dir, "never.png")
	if err := p.SaveClicked(true); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(picker.save); !os.IsNotExist(err) {
		t.Error("cancelled save wrote a file")
	}
}

func TestPanelRender(t *testing.T) {
	p, _, mem, _ := newPanel(t)
	var gotTex texture.Handle
	draw := func(model Mat4, tex texture.Handle) error {
		gotTex = tex
		return nil
	}
	if err := p.Render(draw); err != nil {
		t.Fatal(err)
	}
	if gotTex != nil {
		t.Error("texture handle passed while nothing loaded")
	}
	if err := p.LoadClicked(); err != nil {
		t.Fatal(err)
	}
	if err := p.Render(draw); err != nil {
		t.Fatal(err)
	}
	if gotTex == nil {
		t.Error("no texture handle while loaded")
	}
	if mem.Bound() {
		t.Error("texture left bound after render")
	}
}
