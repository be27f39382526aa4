// Package store owns the pixels of the image shown on the quad: an immutable
// source buffer decoded from disk and an effects buffer that receives every edit.
package store

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mayomeir007/quadfx"
	"github.com/mayomeir007/quadfx/codec"
	"github.com/mayomeir007/quadfx/filters"
	"github.com/mayomeir007/quadfx/texture"
)

// Store is the pixel store of a single loaded image. The zero value is not usable; use [New].
// A Store is not safe for concurrent use.
type Store struct {
	sync texture.Sync
	log  *slog.Logger
	cur  *generation
	// shown is the buffer last written to the texture.
	shown *quadfx.Buffer
}

// generation groups the resources created by one Load. They are released together.
type generation struct {
	path    string
	format  quadfx.Format
	source  *quadfx.Buffer
	effects *quadfx.Buffer
}

func (g *generation) release() {
	g.source.Release()
	g.effects.Release()
}

type Option func(*Store)

// WithLogger sets the logger used by the store. Defaults to [quadfx.Logger].
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// New returns an empty store that keeps the texture of sync in step with its buffers.
func New(sync texture.Sync, opts ...Option) *Store {
	s := &Store{sync: sync, log: quadfx.Logger()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load decodes the image file at path and makes it the current image.
// On failure the previously loaded image stays current and untouched.
func (s *Store) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return s.LoadBytes(data, path)
}

// LoadBytes decodes data and makes it the current image, name being used for the path.
// The source buffer is uploaded to the texture.
func (s *Store) LoadBytes(data []byte, name string) error {
	source, format, err := codec.Decode(data)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	effects, err := source.Clone()
	if err != nil {
		return err
	}
	if err = s.sync.Upload(source); err != nil {
		s.restoreTexture()
		return fmt.Errorf("load %s: upload texture: %w", name, err)
	}
	if s.cur != nil {
		s.cur.release()
	}
	s.cur = &generation{path: name, format: format, source: source, effects: effects}
	s.shown = source
	d := source.Dims()
	s.log.Info("loaded image", "path", name, "width", d.Width, "height", d.Height, "depth", d.Depth(), "format", format)
	return nil
}

// restoreTexture puts the last shown buffer of the current generation back
// on the texture after a failed upload of a new image.
func (s *Store) restoreTexture() {
	if s.cur == nil {
		s.sync.Release()
		return
	}
	if err := s.sync.Upload(s.shown); err != nil {
		s.log.Warn("restoring texture failed", "path", s.cur.path, "err", err)
	}
}

// Unload releases both buffers and the texture. No-op when nothing is loaded.
func (s *Store) Unload() {
	if s.cur == nil {
		return
	}
	s.sync.Release()
	s.cur.release()
	s.log.Debug("unloaded image", "path", s.cur.path)
	s.cur = nil
	s.shown = nil
}

// Close is an alias of Unload.
func (s *Store) Close() error {
	s.Unload()
	return nil
}

// Loaded reports whether an image is loaded.
func (s *Store) Loaded() bool { return s.cur != nil }

// Source returns the buffer of decoded pixels, or nil if nothing is loaded.
// Callers must not modify it.
func (s *Store) Source() *quadfx.Buffer {
	if s.cur == nil {
		return nil
	}
	return s.cur.source
}

// Effects returns the buffer holding the pixels with effects applied, or nil if nothing is loaded.
func (s *Store) Effects() *quadfx.Buffer {
	if s.cur == nil {
		return nil
	}
	return s.cur.effects
}

// Format returns the pixel format of the loaded image.
func (s *Store) Format() quadfx.Format {
	if s.cur == nil {
		return 0
	}
	return s.cur.format
}

// Path returns the path the current image was loaded from.
func (s *Store) Path() string {
	if s.cur == nil {
		return ""
	}
	return s.cur.path
}

// Invert inverts the color channels of the effects buffer and reloads the texture.
func (s *Store) Invert() error {
	if s.cur == nil {
		return quadfx.ErrNotLoaded
	}
	if err := filters.Invert(s.cur.effects); err != nil {
		return err
	}
	s.log.Debug("inverted effects", "path", s.cur.path)
	return s.reload()
}

// Blur recomputes the effects buffer from the source buffer as a Gaussian blur of
// strengthPercent, inverting it afterwards if alsoInvert is set, and reloads the texture.
func (s *Store) Blur(strengthPercent float64, alsoInvert bool) error {
	if s.cur == nil {
		return quadfx.ErrNotLoaded
	}
	if err := filters.Blur(s.cur.effects, s.cur.source, strengthPercent, alsoInvert); err != nil {
		return err
	}
	s.log.Debug("blurred effects", "path", s.cur.path, "strength", strengthPercent, "invert", alsoInvert)
	return s.reload()
}

func (s *Store) reload() error {
	if err := s.sync.Reload(s.cur.effects); err != nil {
		return fmt.Errorf("reload texture: %w", err)
	}
	s.shown = s.cur.effects
	return nil
}

// SaveWithoutEffects saves the source pixels to path. A ".jpg" extension saves
// lossy at quality 100, any other extension saves PNG.
func (s *Store) SaveWithoutEffects(path string) error {
	if s.cur == nil {
		return quadfx.ErrNotLoaded
	}
	return codec.Save(path, s.cur.source, s.cur.format)
}

// SaveWithEffects saves the effects pixels to path, choosing the codec like [Store.SaveWithoutEffects].
func (s *Store) SaveWithEffects(path string) error {
	if s.cur == nil {
		return quadfx.ErrNotLoaded
	}
	return codec.Save(path, s.cur.effects, s.cur.format)
}

// Bind exposes the texture to the renderer.
func (s *Store) Bind() (texture.Handle, error) {
	if s.cur == nil {
		return nil, quadfx.ErrNotLoaded
	}
	return s.sync.Bind()
}

func (s *Store) Unbind() {
	s.sync.Unbind()
}
