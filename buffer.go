package glmem

import "github.com/glstream/glmem/glcore"

// bufferState tracks which copy of the staging buffer's bytes is newer:
// the CPU-visible data slice or the GL buffer object's data store.
type bufferState uint32

const (
	bufConsistent bufferState = iota
	bufDataNewer              // CPU bytes must be flushed before GL reads
	bufStoreNewer             // GL store must be read back before CPU reads
)

// Buffer is the staging pixel buffer object backing one Memory: a GL
// buffer object sized to the plane's padded byte size plus a CPU-visible
// data slice. The buffer is re-bound between the pack and unpack targets
// at the point of use depending on the transfer direction.
//
// All methods issuing GL calls must run on the context thread. The owning
// Memory serializes access under its own lock.
type Buffer struct {
	ctx  *glcore.Context
	id   uint32
	size int

	// data is the CPU-visible view: caller memory for wrapped buffers,
	// otherwise allocated on first CPU access.
	data    []byte
	wrapped bool

	state bufferState
}

// newBuffer creates a staging buffer with a GL data store of the given
// size. Must run on the context thread.
func newBuffer(ctx *glcore.Context, size int) (*Buffer, error) {
	gl := ctx.GL()
	id := gl.GenBuffer()
	if id == 0 {
		return nil, ErrAllocation
	}
	gl.BindBuffer(glcore.GLPixelUnpackBuffer, id)
	gl.BufferData(glcore.GLPixelUnpackBuffer, size, glcore.GLStreamDraw)
	gl.BindBuffer(glcore.GLPixelUnpackBuffer, 0)
	Logger().Debug("generated staging buffer", "pbo", id, "size", size)
	return &Buffer{ctx: ctx, id: id, size: size}, nil
}

// ID returns the GL buffer object name.
func (b *Buffer) ID() uint32 { return b.id }

// Size returns the buffer's byte size.
func (b *Buffer) Size() int { return b.size }

// cpuBytes returns the CPU-visible view, allocating it on first use.
func (b *Buffer) cpuBytes() []byte {
	if b.data == nil {
		b.data = make([]byte, b.size)
	}
	return b.data
}

// mapCPU returns the CPU-visible bytes, first reading the GL store back
// when it holds newer data. Must run on the context thread.
func (b *Buffer) mapCPU(read bool) ([]byte, error) {
	data := b.cpuBytes()
	if read && b.state == bufStoreNewer {
		gl := b.ctx.GL()
		gl.BindBuffer(glcore.GLPixelPackBuffer, b.id)
		s := gl.MapBuffer(glcore.GLPixelPackBuffer, glcore.GLReadOnly)
		if s == nil {
			gl.BindBuffer(glcore.GLPixelPackBuffer, 0)
			return nil, ErrTransferMap
		}
		copy(data, s)
		gl.UnmapBuffer(glcore.GLPixelPackBuffer)
		gl.BindBuffer(glcore.GLPixelPackBuffer, 0)
		b.state = bufConsistent
	}
	return data, nil
}

// markDataWritten records that the CPU view now holds the newer bytes.
func (b *Buffer) markDataWritten() { b.state = bufDataNewer }

// markStoreWritten records that the GL store now holds the newer bytes,
// after a readback wrote into it.
func (b *Buffer) markStoreWritten() { b.state = bufStoreNewer }

// acquireGLRead makes the GL store current, flushing pending CPU bytes,
// and returns the buffer name for binding. Must run on the context thread.
func (b *Buffer) acquireGLRead() uint32 {
	if b.state == bufDataNewer && b.data != nil {
		gl := b.ctx.GL()
		gl.BindBuffer(glcore.GLPixelUnpackBuffer, b.id)
		gl.BufferSubData(glcore.GLPixelUnpackBuffer, 0, b.data)
		gl.BindBuffer(glcore.GLPixelUnpackBuffer, 0)
		b.state = bufConsistent
	}
	return b.id
}

// destroy deletes the GL buffer object. Wrapped caller memory is left
// untouched. Must run on the context thread.
func (b *Buffer) destroy() {
	if b.id != 0 {
		b.ctx.GL().DeleteBuffer(b.id)
		b.id = 0
	}
}
