package glmem

import (
	"github.com/glstream/glmem/glcore"
	"github.com/glstream/glmem/video"
)

// planeTexFormat returns the GL texel format and type for one plane of a
// video format. Subsampled YUV planes are single- or two-channel textures.
func planeTexFormat(f video.Format, plane int) (format, typ uint32) {
	typ = glcore.GLUnsignedByte
	switch f {
	case video.FormatRGBA:
		format = glcore.GLRGBA
	case video.FormatBGRA:
		format = glcore.GLBGRA
	case video.FormatRGB:
		format = glcore.GLRGB
	case video.FormatRGB16:
		format = glcore.GLRGB
		typ = glcore.GLUnsignedShort565
	case video.FormatGray8, video.FormatI420:
		format = glcore.GLLuminance
	case video.FormatGrayAlpha:
		format = glcore.GLLuminanceAlpha
	case video.FormatNV12:
		if plane == 1 {
			format = glcore.GLLuminanceAlpha
		} else {
			format = glcore.GLLuminance
		}
	}
	return format, typ
}

// isLuminance reports whether a GL texel format is luminance or
// luminance-alpha. Those formats are never eligible for staged download.
func isLuminance(format uint32) bool {
	return format == glcore.GLLuminance || format == glcore.GLLuminanceAlpha
}

// texelBytes returns bytes per texel for a format/type pair.
func texelBytes(format, typ uint32) int {
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
	default:
		return 1
	}
}

// newTexture creates and sizes a texture for the given target and format.
// Returns zero when the driver refuses. Must run on the context thread.
func newTexture(ctx *glcore.Context, target glcore.TextureTarget, format, typ uint32, width, height int) uint32 {
	gl := ctx.GL()
	tex := gl.GenTexture()
	if tex == 0 {
		return 0
	}
	t := target.ToGL()
	gl.BindTexture(t, tex)
	if target == glcore.Target2D || target == glcore.TargetRectangle {
		gl.TexImage2D(t, format, width, height, format, typ)
	}
	gl.TexParameteri(t, glcore.GLTextureMagFilter, glcore.GLLinear)
	gl.TexParameteri(t, glcore.GLTextureMinFilter, glcore.GLLinear)
	gl.TexParameteri(t, glcore.GLTextureWrapS, glcore.GLClampToEdge)
	gl.TexParameteri(t, glcore.GLTextureWrapT, glcore.GLClampToEdge)
	gl.BindTexture(t, 0)
	return tex
}
