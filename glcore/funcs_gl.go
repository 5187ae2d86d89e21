//go:build gl

package glcore

import (
	"unsafe"

	"github.com/go-gl/gl/v3.2-core/gl"
)

// LoadFuncs fills a Funcs table from the go-gl binding. It must be called
// on the thread where the GL context is current, after gl.Init().
//
// The returned table assumes a context with buffer object and framebuffer
// object support, which any 3.2 core context provides.
func LoadFuncs() *Funcs {
	return &Funcs{
		GenTexture: func() uint32 {
			var tex uint32
			gl.GenTextures(1, &tex)
			return tex
		},
		DeleteTexture: func(tex uint32) {
			gl.DeleteTextures(1, &tex)
		},
		BindTexture: func(target, tex uint32) {
			gl.BindTexture(target, tex)
		},
		TexImage2D: func(target uint32, internalFormat uint32, width, height int, format, typ uint32) {
			gl.TexImage2D(target, 0, int32(internalFormat), int32(width), int32(height), 0, format, typ, nil)
		},
		TexSubImage2D: func(target uint32, x, y, width, height int, format, typ uint32, data []byte, off int) {
			gl.TexSubImage2D(target, 0, int32(x), int32(y), int32(width), int32(height), format, typ, pixelPtr(data, off))
		},
		TexParameteri: func(target, pname uint32, param int32) {
			gl.TexParameteri(target, pname, param)
		},
		PixelStorei: func(pname uint32, param int32) {
			gl.PixelStorei(pname, param)
		},
		ReadPixels: func(x, y, width, height int, format, typ uint32, dst []byte, off int) {
			gl.ReadPixels(int32(x), int32(y), int32(width), int32(height), format, typ, pixelPtr(dst, off))
		},
		GenBuffer: func() uint32 {
			var buf uint32
			gl.GenBuffers(1, &buf)
			return buf
		},
		DeleteBuffer: func(buf uint32) {
			gl.DeleteBuffers(1, &buf)
		},
		BindBuffer: func(target, buf uint32) {
			gl.BindBuffer(target, buf)
		},
		BufferData: func(target uint32, size int, usage uint32) {
			gl.BufferData(target, size, nil, usage)
		},
		BufferSubData: func(target uint32, off int, data []byte) {
			gl.BufferSubData(target, off, len(data), gl.Ptr(data))
		},
		MapBuffer: func(target, access uint32) []byte {
			var size int32
			gl.GetBufferParameteriv(target, gl.BUFFER_SIZE, &size)
			p := gl.MapBuffer(target, access)
			if p == nil || size <= 0 {
				return nil
			}
			return unsafe.Slice((*byte)(p), int(size))
		},
		UnmapBuffer: func(target uint32) bool {
			return gl.UnmapBuffer(target)
		},
		GenFramebuffer: func() uint32 {
			var fbo uint32
			gl.GenFramebuffers(1, &fbo)
			return fbo
		},
		DeleteFramebuffer: func(fbo uint32) {
			gl.DeleteFramebuffers(1, &fbo)
		},
		BindFramebuffer: func(target, fbo uint32) {
			gl.BindFramebuffer(target, fbo)
		},
		FramebufferTexture2D: func(target, attachment, texTarget, tex uint32, level int) {
			gl.FramebufferTexture2D(target, attachment, texTarget, tex, int32(level))
		},
		CheckFramebufferStatus: func(target uint32) uint32 {
			return gl.CheckFramebufferStatus(target)
		},
		CopyTexSubImage2D: func(target uint32, x, y, width, height int) {
			gl.CopyTexSubImage2D(target, 0, int32(x), int32(y), 0, 0, int32(width), int32(height))
		},
	}
}

// pixelPtr resolves the data/offset convention of pixel transfer calls:
// with a pack/unpack buffer bound, data is nil and off addresses into the
// bound buffer's store.
func pixelPtr(data []byte, off int) unsafe.Pointer {
	if data == nil {
		return unsafe.Pointer(uintptr(off))
	}
	return gl.Ptr(data)
}
