package glcore

// GL enum values used by the engine. Defined locally so that glcore does
// not force a binding dependency onto consumers; the values are fixed by
// the GL specification.
const (
	// Texture targets.
	GLTexture2D          = 0x0DE1
	GLTextureRectangle   = 0x84F5
	GLTextureExternalOES = 0x8D65

	// Buffer binding targets. The staging buffer is re-bound between these
	// two depending on the transfer direction.
	GLPixelPackBuffer   = 0x88EB
	GLPixelUnpackBuffer = 0x88EC

	// Buffer usage hints.
	GLStreamDraw = 0x88E0
	GLStreamRead = 0x88E1
	GLStreamCopy = 0x88E2

	// Pixel store parameters.
	GLUnpackRowLength = 0x0CF2
	GLUnpackAlignment = 0x0CF5
	GLPackRowLength   = 0x0D02

	// Texel formats.
	GLRGBA           = 0x1908
	GLRGB            = 0x1907
	GLBGRA           = 0x80E1
	GLLuminance      = 0x1909
	GLLuminanceAlpha = 0x190A
	GLRed            = 0x1903
	GLRG             = 0x8227

	// Texel types.
	GLUnsignedByte     = 0x1401
	GLUnsignedShort565 = 0x8363

	// Buffer map access.
	GLReadOnly  = 0x88B8
	GLWriteOnly = 0x88B9
	GLReadWrite = 0x88BA

	// Framebuffer.
	GLFramebuffer         = 0x8D40
	GLColorAttachment0    = 0x8CE0
	GLFramebufferComplete = 0x8CD5

	// Texture parameters.
	GLTextureMagFilter = 0x2800
	GLTextureMinFilter = 0x2801
	GLTextureWrapS     = 0x2802
	GLTextureWrapT     = 0x2803
	GLLinear           = 0x2601
	GLClampToEdge      = 0x812F
)
