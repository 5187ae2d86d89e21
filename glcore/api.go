package glcore

// API identifies a graphics API family. APIs combine as a bitmask in
// version checks so a single check can cover desktop GL and GLES at once.
type API uint32

const (
	// APIOpenGL is desktop OpenGL with a compatibility profile.
	APIOpenGL API = 1 << iota

	// APIOpenGL3 is desktop OpenGL with a core profile (3.1+).
	APIOpenGL3

	// APIGLES2 is OpenGL ES 2.0 and later.
	APIGLES2
)

// String returns the API family name.
func (a API) String() string {
	switch a {
	case APIOpenGL:
		return "opengl"
	case APIOpenGL3:
		return "opengl3"
	case APIGLES2:
		return "gles2"
	default:
		return "unknown"
	}
}

// TextureTarget identifies the kind of texture a memory object is backed by.
type TextureTarget uint32

const (
	// Target2D is an ordinary two-dimensional texture.
	Target2D TextureTarget = iota + 1

	// TargetRectangle is a rectangle texture (non-normalized coordinates).
	TargetRectangle

	// TargetExternalOES is a platform-surface-backed texture whose content
	// cannot be read or written through ordinary texture calls.
	TargetExternalOES
)

// ToGL returns the GL enum for the target.
func (t TextureTarget) ToGL() uint32 {
	switch t {
	case Target2D:
		return GLTexture2D
	case TargetRectangle:
		return GLTextureRectangle
	case TargetExternalOES:
		return GLTextureExternalOES
	default:
		return 0
	}
}

// String returns the target name.
func (t TextureTarget) String() string {
	switch t {
	case Target2D:
		return "2D"
	case TargetRectangle:
		return "rectangle"
	case TargetExternalOES:
		return "external-oes"
	default:
		return "unknown"
	}
}

// Check reports whether the context's API is one of api and its version is
// at least major.minor.
func (c *Context) Check(api API, major, minor int) bool {
	if c.api&api == 0 {
		return false
	}
	if c.major != major {
		return c.major > major
	}
	return c.minor >= minor
}

// SupportsPBOUpload reports whether staged uploads through a pixel unpack
// buffer are usable on this context.
func (c *Context) SupportsPBOUpload() bool {
	return c.Check(APIOpenGL|APIOpenGL3, 2, 1) || c.Check(APIGLES2, 3, 0)
}

// SupportsPBODownload reports whether staged downloads through a pixel pack
// buffer are usable on this context.
func (c *Context) SupportsPBODownload() bool {
	return c.Check(APIOpenGL|APIOpenGL3|APIGLES2, 3, 0)
}

// IsGLES2Only reports whether the context is restricted to GLES2 semantics
// (no desktop GL profile available).
func (c *Context) IsGLES2Only() bool {
	return c.api&APIGLES2 != 0 && c.api&(APIOpenGL|APIOpenGL3) == 0
}
