// Package gltest provides an in-memory implementation of the glcore.Funcs
// table for tests. Textures, buffer objects and framebuffers are plain
// byte-slice stores; pixel transfer calls honor pack/unpack buffer binding
// and row-length pixel store state the way a GL driver would.
//
// The fake counts resource and transfer calls with atomic counters so
// tests can assert how many uploads, readbacks or deletions an operation
// performed.
package gltest

import (
	"sync"
	"sync/atomic"

	"github.com/glstream/glmem/glcore"
)

// texture is one fake texture: dimensions, texel format and a tightly
// packed pixel store.
type texture struct {
	target uint32
	width  int
	height int
	format uint32
	typ    uint32
	pix    []byte
}

// buffer is one fake buffer object data store.
type buffer struct {
	store  []byte
	mapped bool
}

// framebuffer tracks the color attachment of a fake FBO.
type framebuffer struct {
	attached uint32
}

// Fake is an in-memory GL implementation. The zero value is not usable;
// construct with New.
//
// Failure injection fields may be set before the operation under test:
// FailGenTexture and FailGenBuffer make the corresponding Gen call return
// zero (the engine treats a zero name as an allocation failure) and
// FailMapBuffer makes MapBuffer return nil. DisableBuffers and
// DisableFramebuffers remove the optional entry points from the table
// returned by Funcs.
type Fake struct {
	mu sync.Mutex

	nextID       uint32
	textures     map[uint32]*texture
	buffers      map[uint32]*buffer
	framebuffers map[uint32]*framebuffer

	boundTextures map[uint32]uint32 // GL target -> texture name
	boundBuffers  map[uint32]uint32 // GL target -> buffer name
	boundFBO      uint32

	unpackRowLength int
	packRowLength   int

	// Failure injection.
	FailGenTexture bool
	FailGenBuffer  bool
	FailMapBuffer  bool

	// Optional entry point removal.
	DisableBuffers      bool
	DisableFramebuffers bool

	// Call counters.
	TexturesCreated     atomic.Int32
	TexturesDeleted     atomic.Int32
	BuffersCreated      atomic.Int32
	BuffersDeleted      atomic.Int32
	FramebuffersCreated atomic.Int32
	FramebuffersDeleted atomic.Int32
	TexUploads          atomic.Int32 // TexSubImage2D calls
	Readbacks           atomic.Int32 // ReadPixels calls
	TexelCopies         atomic.Int32 // CopyTexSubImage2D calls
	BufferMaps          atomic.Int32
	BufferUnmaps        atomic.Int32
}

// New creates an empty fake GL state.
func New() *Fake {
	return &Fake{
		textures:      make(map[uint32]*texture),
		buffers:       make(map[uint32]*buffer),
		framebuffers:  make(map[uint32]*framebuffer),
		boundTextures: make(map[uint32]uint32),
		boundBuffers:  make(map[uint32]uint32),
	}
}

// Funcs returns a glcore.Funcs table backed by the fake. Optional entry
// points are nil when the corresponding Disable field is set.
func (f *Fake) Funcs() *glcore.Funcs {
	t := &glcore.Funcs{
		GenTexture:    f.genTexture,
		DeleteTexture: f.deleteTexture,
		BindTexture:   f.bindTexture,
		TexImage2D:    f.texImage2D,
		TexSubImage2D: f.texSubImage2D,
		TexParameteri: func(uint32, uint32, int32) {},
		PixelStorei:   f.pixelStorei,
		ReadPixels:    f.readPixels,
	}
	if !f.DisableBuffers {
		t.GenBuffer = f.genBuffer
		t.DeleteBuffer = f.deleteBuffer
		t.BindBuffer = f.bindBuffer
		t.BufferData = f.bufferData
		t.BufferSubData = f.bufferSubData
		t.MapBuffer = f.mapBuffer
		t.UnmapBuffer = f.unmapBuffer
	}
	if !f.DisableFramebuffers {
		t.GenFramebuffer = f.genFramebuffer
		t.DeleteFramebuffer = f.deleteFramebuffer
		t.BindFramebuffer = f.bindFramebuffer
		t.FramebufferTexture2D = f.framebufferTexture2D
		t.CheckFramebufferStatus = f.checkFramebufferStatus
		t.CopyTexSubImage2D = f.copyTexSubImage2D
	}
	return t
}

func (f *Fake) genTexture() uint32 {
	if f.FailGenTexture {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := f.nextID
	f.textures[id] = &texture{}
	f.TexturesCreated.Add(1)
	return id
}

func (f *Fake) deleteTexture(tex uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.textures[tex]; ok {
		delete(f.textures, tex)
		f.TexturesDeleted.Add(1)
	}
}

func (f *Fake) bindTexture(target, tex uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.boundTextures[target] = tex
}

func (f *Fake) texImage2D(target uint32, internalFormat uint32, width, height int, format, typ uint32) {
	_ = internalFormat
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.textures[f.boundTextures[target]]
	if t == nil {
		return
	}
	t.target = target
	t.width = width
	t.height = height
	t.format = format
	t.typ = typ
	t.pix = make([]byte, width*height*texelSize(format, typ))
}

func (f *Fake) pixelStorei(pname uint32, param int32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch pname {
	case glcore.GLUnpackRowLength:
		f.unpackRowLength = int(param)
	case glcore.GLPackRowLength:
		f.packRowLength = int(param)
	}
}

func (f *Fake) texSubImage2D(target uint32, x, y, width, height int, format, typ uint32, data []byte, off int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TexUploads.Add(1)
	t := f.textures[f.boundTextures[target]]
	if t == nil || t.pix == nil {
		return
	}
	src := data
	if src == nil {
		b := f.buffers[f.boundBuffers[glcore.GLPixelUnpackBuffer]]
		if b == nil {
			return
		}
		src = b.store[off:]
	}
	bpp := texelSize(format, typ)
	srcPitch := width * bpp
	if f.unpackRowLength > 0 {
		srcPitch = f.unpackRowLength * bpp
	}
	dstPitch := t.width * texelSize(t.format, t.typ)
	for row := 0; row < height; row++ {
		dst := t.pix[(y+row)*dstPitch+x*bpp:]
		copy(dst[:width*bpp], src[row*srcPitch:])
	}
}

func (f *Fake) readPixels(x, y, width, height int, format, typ uint32, dst []byte, off int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Readbacks.Add(1)
	fb := f.framebuffers[f.boundFBO]
	if fb == nil {
		return
	}
	t := f.textures[fb.attached]
	if t == nil || t.pix == nil {
		return
	}
	out := dst
	if out == nil {
		b := f.buffers[f.boundBuffers[glcore.GLPixelPackBuffer]]
		if b == nil {
			return
		}
		out = b.store[off:]
	}
	bpp := texelSize(format, typ)
	dstPitch := width * bpp
	if f.packRowLength > 0 {
		dstPitch = f.packRowLength * bpp
	}
	srcPitch := t.width * texelSize(t.format, t.typ)
	for row := 0; row < height; row++ {
		src := t.pix[(y+row)*srcPitch+x*bpp:]
		copy(out[row*dstPitch:row*dstPitch+width*bpp], src)
	}
}

func (f *Fake) genBuffer() uint32 {
	if f.FailGenBuffer {
		return 0
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := f.nextID
	f.buffers[id] = &buffer{}
	f.BuffersCreated.Add(1)
	return id
}

func (f *Fake) deleteBuffer(buf uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.buffers[buf]; ok {
		delete(f.buffers, buf)
		f.BuffersDeleted.Add(1)
	}
}

func (f *Fake) bindBuffer(target, buf uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.boundBuffers[target] = buf
}

func (f *Fake) bufferData(target uint32, size int, usage uint32) {
	_ = usage
	f.mu.Lock()
	defer f.mu.Unlock()
	if b := f.buffers[f.boundBuffers[target]]; b != nil {
		b.store = make([]byte, size)
	}
}

func (f *Fake) bufferSubData(target uint32, off int, data []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b := f.buffers[f.boundBuffers[target]]; b != nil {
		copy(b.store[off:], data)
	}
}

func (f *Fake) mapBuffer(target, access uint32) []byte {
	_ = access
	if f.FailMapBuffer {
		return nil
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.buffers[f.boundBuffers[target]]
	if b == nil {
		return nil
	}
	b.mapped = true
	f.BufferMaps.Add(1)
	return b.store
}

func (f *Fake) unmapBuffer(target uint32) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.buffers[f.boundBuffers[target]]
	if b == nil || !b.mapped {
		return false
	}
	b.mapped = false
	f.BufferUnmaps.Add(1)
	return true
}

func (f *Fake) genFramebuffer() uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := f.nextID
	f.framebuffers[id] = &framebuffer{}
	f.FramebuffersCreated.Add(1)
	return id
}

func (f *Fake) deleteFramebuffer(fbo uint32) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.framebuffers[fbo]; ok {
		delete(f.framebuffers, fbo)
		f.FramebuffersDeleted.Add(1)
	}
}

func (f *Fake) bindFramebuffer(target, fbo uint32) {
	_ = target
	f.mu.Lock()
	defer f.mu.Unlock()
	f.boundFBO = fbo
}

func (f *Fake) framebufferTexture2D(target, attachment, texTarget, tex uint32, level int) {
	_, _, _ = target, attachment, level
	_ = texTarget
	f.mu.Lock()
	defer f.mu.Unlock()
	if fb := f.framebuffers[f.boundFBO]; fb != nil {
		fb.attached = tex
	}
}

func (f *Fake) checkFramebufferStatus(target uint32) uint32 {
	_ = target
	f.mu.Lock()
	defer f.mu.Unlock()
	fb := f.framebuffers[f.boundFBO]
	if fb == nil || fb.attached == 0 {
		return 0
	}
	return glcore.GLFramebufferComplete
}

// LiveTextures returns the number of textures not yet deleted.
func (f *Fake) LiveTextures() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.textures)
}

// LiveBuffers returns the number of buffer objects not yet deleted.
func (f *Fake) LiveBuffers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.buffers)
}

// LiveFramebuffers returns the number of framebuffers not yet deleted.
func (f *Fake) LiveFramebuffers() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.framebuffers)
}

// TexturePixels returns a copy of a texture's tightly packed pixel store,
// or nil if the texture does not exist.
func (f *Fake) TexturePixels(tex uint32) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.textures[tex]
	if t == nil {
		return nil
	}
	out := make([]byte, len(t.pix))
	copy(out, t.pix)
	return out
}

// SetTexturePixels overwrites a texture's pixel store. The length must
// match the store allocated by TexImage2D.
func (f *Fake) SetTexturePixels(tex uint32, pix []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := f.textures[tex]
	if t == nil || len(pix) != len(t.pix) {
		return
	}
	copy(t.pix, pix)
}

// BufferStore returns a copy of a buffer object's data store.
func (f *Fake) BufferStore(buf uint32) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	b := f.buffers[buf]
	if b == nil {
		return nil
	}
	out := make([]byte, len(b.store))
	copy(out, b.store)
	return out
}

// texelSize returns bytes per texel for a format/type pair.
func texelSize(format, typ uint32) int {
	if typ == glcore.GLUnsignedShort565 {
		return 2
	}
	switch format {
	case glcore.GLRGBA, glcore.GLBGRA:
		return 4
	case glcore.GLRGB:
		return 3
	case glcore.GLLuminanceAlpha, glcore.GLRG:
		return 2
	case glcore.GLLuminance, glcore.GLRed:
		return 1
	default:
		return 1
	}
}
