package glcore

// Funcs is the table of GL entry points the memory engine calls. It is the
// Go rendition of a GL vtable: production code fills it from a real binding
// (see funcs_gl.go), tests fill it from glcore/gltest.
//
// Entry points that depend on optional driver support may be nil:
// GenBuffer and friends are nil when buffer objects are unavailable, and
// GenFramebuffer and friends are nil without framebuffer object support.
// Callers nil-check before use and fall back or fail accordingly.
//
// Pixel transfer calls follow GL's buffer-binding semantics: when a pixel
// pack/unpack buffer is bound, the data slice must be nil and off is a byte
// offset into the bound buffer's store; otherwise data supplies (or
// receives) the pixels and off is ignored.
type Funcs struct {
	// Textures.
	GenTexture    func() uint32
	DeleteTexture func(tex uint32)
	BindTexture   func(target, tex uint32)
	TexImage2D    func(target uint32, internalFormat uint32, width, height int, format, typ uint32)
	TexSubImage2D func(target uint32, x, y, width, height int, format, typ uint32, data []byte, off int)
	TexParameteri func(target, pname uint32, param int32)

	// Pixel store state.
	PixelStorei func(pname uint32, param int32)

	// Readback. Reads from the texture attached to the bound framebuffer.
	ReadPixels func(x, y, width, height int, format, typ uint32, dst []byte, off int)

	// Buffer objects (nil when unsupported).
	GenBuffer     func() uint32
	DeleteBuffer  func(buf uint32)
	BindBuffer    func(target, buf uint32)
	BufferData    func(target uint32, size int, usage uint32)
	BufferSubData func(target uint32, off int, data []byte)
	MapBuffer     func(target, access uint32) []byte
	UnmapBuffer   func(target uint32) bool

	// Framebuffer objects (nil when unsupported).
	GenFramebuffer         func() uint32
	DeleteFramebuffer      func(fbo uint32)
	BindFramebuffer        func(target, fbo uint32)
	FramebufferTexture2D   func(target, attachment, texTarget, tex uint32, level int)
	CheckFramebufferStatus func(target uint32) uint32

	// Texel copy from the bound read framebuffer into the bound texture.
	CopyTexSubImage2D func(target uint32, x, y, width, height int)
}

// HasBuffers reports whether buffer objects are available.
func (f *Funcs) HasBuffers() bool { return f.GenBuffer != nil }

// HasFramebuffers reports whether framebuffer objects are available.
func (f *Funcs) HasFramebuffers() bool { return f.GenFramebuffer != nil }
