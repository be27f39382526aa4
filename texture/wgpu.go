package texture

import (
	"errors"
	"fmt"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/mayomeir007/quadfx"
)

// WGPU is a [Sync] backed by a WebGPU texture. Texels are always stored as
// RGBA8Unorm since WebGPU has no 3 byte texel format; RGB buffers are expanded
// on upload.
type WGPU struct {
	mu    sync.Mutex
	gpu   gpuResources
	label string
	bound bool
}

var _ Sync = (*WGPU)(nil)

type gpuResources struct {
	device        *wgpu.Device
	queue         *wgpu.Queue
	texture       *wgpu.Texture
	view          *wgpu.TextureView
	width, height int
	staging       []byte
}

// ViewHandle is the [Handle] returned by [WGPU.Bind]. Renderers type assert
// to reach the texture view for their bind groups.
type ViewHandle struct {
	View  *wgpu.TextureView
	label string
}

func (h ViewHandle) Label() string { return h.label }

// OpenDevice requests a low power adapter and device from the default WebGPU instance.
func OpenDevice() (*wgpu.Device, *wgpu.Queue, error) {
	instance := wgpu.CreateInstance(nil)
	if instance == nil {
		return nil, nil, errors.New("webgpu not available")
	}
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceLowPower,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("adapter: %w", err)
	}
	device, err := adapter.RequestDevice(nil)
	if err != nil {
		return nil, nil, fmt.Errorf("device: %w", err)
	}
	return device, device.GetQueue(), nil
}

// NewWGPU returns a texture sync that allocates textures on device and writes through queue.
func NewWGPU(device *wgpu.Device, queue *wgpu.Queue, label string) *WGPU {
	return &WGPU{
		gpu:   gpuResources{device: device, queue: queue},
		label: label,
	}
}

// Upload implements [Sync]. The texture is reallocated only when the dimensions change.
func (w *WGPU) Upload(b *quadfx.Buffer) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	d := b.Dims()
	if err := w.ensureTexture(d.Width, d.Height); err != nil {
		return err
	}
	return w.write(b)
}

// Reload implements [Sync].
func (w *WGPU) Reload(b *quadfx.Buffer) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.gpu.texture == nil {
		return ErrNoTexture
	}
	d := b.Dims()
	if d.Width != w.gpu.width || d.Height != w.gpu.height {
		return fmt.Errorf("%w: %dx%d into %dx%d", ErrSizeMismatch, d.Width, d.Height, w.gpu.width, w.gpu.height)
	}
	return w.write(b)
}

func (w *WGPU) ensureTexture(width, height int) error {
	if w.gpu.texture != nil && width == w.gpu.width && height == w.gpu.height {
		return nil
	}

	w.releaseTexture()

	var err error
	w.gpu.texture, err = w.gpu.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         w.label,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst | wgpu.TextureUsageCopySrc,
		Dimension:     wgpu.TextureDimension2D,
		Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		Format:        wgpu.TextureFormatRGBA8Unorm,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return fmt.Errorf("texture: %w", err)
	}
	w.gpu.width, w.gpu.height = width, height
	quadfx.Logger().Debug("allocated texture", "label", w.label, "width", width, "height", height)
	return nil
}

func (w *WGPU) write(b *quadfx.Buffer) error {
	var err error
	w.gpu.staging, err = Staged(w.gpu.staging[:0], b)
	if err != nil {
		return err
	}
	err = w.gpu.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  w.gpu.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		w.gpu.staging,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(4 * w.gpu.width),
			RowsPerImage: uint32(w.gpu.height),
		},
		&wgpu.Extent3D{Width: uint32(w.gpu.width), Height: uint32(w.gpu.height), DepthOrArrayLayers: 1},
	)
	if err != nil {
		return fmt.Errorf("write texture: %w", err)
	}
	return nil
}

// Bind implements [Sync]. The texture view is created on first bind.
func (w *WGPU) Bind() (Handle, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.gpu.texture == nil {
		return nil, ErrNoTexture
	}
	if w.gpu.view == nil {
		view, err := w.gpu.texture.CreateView(nil)
		if err != nil {
			return nil, fmt.Errorf("texture view: %w", err)
		}
		w.gpu.view = view
	}
	w.bound = true
	return ViewHandle{View: w.gpu.view, label: w.label}, nil
}

// Unbind implements [Sync].
func (w *WGPU) Unbind() {
	w.mu.Lock()
	w.bound = false
	w.mu.Unlock()
}

// Valid implements [Sync].
func (w *WGPU) Valid() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gpu.texture != nil
}

func (w *WGPU) releaseTexture() {
	if w.gpu.view != nil {
		w.gpu.view.Release()
		w.gpu.view = nil
	}
	if w.gpu.texture != nil {
		w.gpu.texture.Release()
		w.gpu.texture = nil
	}
	w.gpu.width, w.gpu.height = 0, 0
	w.bound = false
}

// Release implements [Sync].
func (w *WGPU) Release() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.releaseTexture()
	w.gpu.staging = nil
}
