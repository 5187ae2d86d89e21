package glmem

import (
	"fmt"
	"sync"

	"github.com/glstream/glmem/glcore"
	"github.com/glstream/glmem/video"
)

// transferState is the coherence state between the two copies of a
// memory's pixels: the CPU-visible bytes and the GL texture. It replaces
// a pair of independent dirty bits with a single tagged state mutated only
// by documented transitions (construction, transfer resolution, and unmap
// after a write).
type transferState uint32

const (
	// stateConsistent means neither side holds newer data.
	stateConsistent transferState = iota

	// stateCPUNewer means the CPU bytes are newer; the texture must be
	// refreshed before a GPU-side read.
	stateCPUNewer

	// stateGPUNewer means the texture is newer; the CPU view must be
	// refreshed before a CPU-side read.
	stateGPUNewer
)

// String returns the state name.
func (s transferState) String() string {
	switch s {
	case stateConsistent:
		return "consistent"
	case stateCPUNewer:
		return "cpu-newer"
	case stateGPUNewer:
		return "gpu-newer"
	default:
		return "unknown"
	}
}

// Memory is one plane of a video frame backed by a GL texture, kept lazily
// consistent with a CPU-visible copy of the same bytes. Transfers between
// the two run through a staging buffer when the context supports it and
// through direct synchronous GL calls otherwise.
//
// Memory is safe for concurrent use; a per-object lock serializes the
// transfer sequences so partial transfers never interleave.
type Memory struct {
	mu  sync.Mutex
	ctx *glcore.Context

	tex     uint32
	target  glcore.TextureTarget
	wrapped bool // texture handle owned by the caller, not deleted on Destroy

	info  video.Info // frame geometry as requested
	ainfo video.Info // geometry with alignment applied
	align video.Alignment
	plane int
	off   int // extra byte offset into the padded plane block

	glFormat uint32
	glType   uint32

	state transferState

	// pbo is the staging buffer; nil when the context does not support
	// staged transfers or the target is external.
	pbo *Buffer

	// backing is the CPU-visible storage used when no staging buffer
	// exists. For wrapped data without staging it aliases caller memory.
	backing []byte

	release   func()
	destroyed bool
}

// Option configures a Memory at construction.
type Option func(*Memory)

// WithRelease registers a callback invoked exactly once when the memory is
// destroyed, after its GL resources are released.
func WithRelease(fn func()) Option {
	return func(m *Memory) { m.release = fn }
}

// WithOffset places the plane's pixel data at an extra byte offset inside
// the padded allocation.
func WithOffset(off int) Option {
	return func(m *Memory) { m.off = off }
}

func newMemory(ctx *glcore.Context, target glcore.TextureTarget, info video.Info, plane int, align video.Alignment, opts ...Option) (*Memory, error) {
	if plane < 0 || plane >= info.Planes() {
		return nil, fmt.Errorf("glmem: plane %d out of range for %v", plane, info.Format)
	}
	format, typ := planeTexFormat(info.Format, plane)
	m := &Memory{
		ctx:      ctx,
		target:   target,
		info:     info,
		ainfo:    info.Align(align),
		align:    align,
		plane:    plane,
		glFormat: format,
		glType:   typ,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Alloc creates a memory object with a fresh, uninitialized texture of the
// plane's size. A staging buffer is allocated alongside when the context
// supports staged transfers. The new object is consistent: content is
// undefined but no transfer is pending.
func Alloc(ctx *glcore.Context, target glcore.TextureTarget, info video.Info, plane int, align video.Alignment, opts ...Option) (*Memory, error) {
	m, err := newMemory(ctx, target, info, plane, align, opts...)
	if err != nil {
		return nil, err
	}
	if err := ctx.Run(func() error { return m.create(true) }); err != nil {
		return nil, err
	}
	return m, nil
}

// WrapTexture wraps a caller-owned texture handle. The handle is not
// deleted on Destroy, and the object starts with the texture side newer:
// any CPU view must first be refreshed from the caller's texture.
func WrapTexture(ctx *glcore.Context, target glcore.TextureTarget, tex uint32, info video.Info, plane int, opts ...Option) (*Memory, error) {
	m, err := newMemory(ctx, target, info, plane, video.Alignment{}, opts...)
	if err != nil {
		return nil, err
	}
	m.tex = tex
	m.wrapped = true
	m.state = stateGPUNewer
	if err := ctx.Run(func() error { return m.create(false) }); err != nil {
		return nil, err
	}
	return m, nil
}

// WrapData creates a memory object whose CPU-visible bytes are the
// caller's slice, without copying. The object starts with the CPU side
// newer: the texture is refreshed from data on the first GPU-side read.
// data must cover the plane's padded byte size.
func WrapData(ctx *glcore.Context, target glcore.TextureTarget, data []byte, info video.Info, plane int, opts ...Option) (*Memory, error) {
	m, err := newMemory(ctx, target, info, plane, video.Alignment{}, opts...)
	if err != nil {
		return nil, err
	}
	if len(data) < m.maxSize() {
		return nil, fmt.Errorf("glmem: wrapped data too small: %d < %d", len(data), m.maxSize())
	}
	m.state = stateCPUNewer
	err = ctx.Run(func() error {
		if err := m.create(true); err != nil {
			return err
		}
		if m.pbo != nil {
			m.pbo.data = data
			m.pbo.wrapped = true
			m.pbo.markDataWritten()
		} else {
			m.backing = data
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// create builds the GL side of the object: the texture (unless wrapping an
// existing handle) and, when supported, the staging buffer. On failure
// nothing survives. Must run on the context thread.
func (m *Memory) create(allocTexture bool) error {
	gl := m.ctx.GL()
	if allocTexture {
		m.tex = newTexture(m.ctx, m.target, m.glFormat, m.glType, m.planeWidth(), m.planeHeight())
		if m.tex == 0 {
			return ErrAllocation
		}
	}
	if m.target != glcore.TargetExternalOES && m.ctx.SupportsPBOUpload() && gl.HasBuffers() {
		pbo, err := newBuffer(m.ctx, m.maxSize())
		if err != nil {
			if allocTexture {
				gl.DeleteTexture(m.tex)
				m.tex = 0
			}
			return err
		}
		m.pbo = pbo
	}
	Logger().Debug("created memory",
		"texture", m.tex, "target", m.target, "plane", m.plane,
		"size", m.maxSize(), "staging", m.pbo != nil)
	return nil
}

// Destroy releases the staging buffer and, unless the texture was wrapped
// from an external owner, the texture handle, then fires the release
// callback. Destroy is idempotent.
func (m *Memory) Destroy() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return nil
	}
	err := m.ctx.Run(func() error {
		if m.pbo != nil {
			m.pbo.destroy()
		}
		if !m.wrapped && m.tex != 0 {
			m.ctx.GL().DeleteTexture(m.tex)
		}
		return nil
	})
	if err != nil {
		return err
	}
	m.destroyed = true
	m.pbo = nil
	m.tex = 0
	if m.release != nil {
		m.release()
		m.release = nil
	}
	return nil
}

// Texture returns the GL texture name, or zero after Destroy.
func (m *Memory) Texture() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tex
}

// The remaining accessors read geometry fixed at construction and are
// safe to call concurrently with Destroy.

// Target returns the texture target.
func (m *Memory) Target() glcore.TextureTarget { return m.target }

// Plane returns the plane index this memory represents.
func (m *Memory) Plane() int { return m.plane }

// Width returns the plane's component width in pixels.
func (m *Memory) Width() int { return m.planeWidth() }

// Height returns the plane's component height in rows.
func (m *Memory) Height() int { return m.planeHeight() }

// Stride returns the plane's aligned bytes per row.
func (m *Memory) Stride() int { return m.ainfo.PlaneStride(m.plane) }

// Size returns the plane's padded byte size, which is also the staging
// buffer size.
func (m *Memory) Size() int { return m.maxSize() }

// HasStaging reports whether the memory transfers through a staging
// buffer.
func (m *Memory) HasStaging() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pbo != nil
}

func (m *Memory) planeWidth() int  { return m.info.PlaneWidth(m.plane) }
func (m *Memory) planeHeight() int { return m.info.PlaneHeight(m.plane) }

func (m *Memory) maxSize() int {
	return m.ainfo.PlaneAllocSize(m.align, m.plane)
}

// planeStart is the byte offset of the first unpadded pixel inside the
// padded plane block, including any extra construction offset.
func (m *Memory) planeStart() int {
	return m.ainfo.PlaneContentOffset(m.align, m.plane) + m.off
}

// rowLength is the plane stride expressed in pixels, for the row-length
// pixel store state. Aligned strides must be multiples of the texel size.
func (m *Memory) rowLength() int {
	return m.ainfo.PlaneStride(m.plane) / texelBytes(m.glFormat, m.glType)
}

// cpuBytes returns the CPU-visible storage for the plane, allocating the
// fallback backing when no staging buffer exists.
func (m *Memory) cpuBytes() []byte {
	if m.pbo != nil {
		return m.pbo.cpuBytes()
	}
	if m.backing == nil {
		m.backing = make([]byte, m.maxSize())
	}
	return m.backing
}
