package gltest

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/glstream/glmem/glcore"
)

func newTexture2D(f *Fake, format, typ uint32, w, h int) uint32 {
	gl := f.Funcs()
	tex := gl.GenTexture()
	gl.BindTexture(glcore.GLTexture2D, tex)
	gl.TexImage2D(glcore.GLTexture2D, format, w, h, format, typ)
	gl.BindTexture(glcore.GLTexture2D, 0)
	return tex
}

func TestTexSubImageFromClientMemory(t *testing.T) {
	f := New()
	gl := f.Funcs()
	tex := newTexture2D(f, glcore.GLRGBA, glcore.GLUnsignedByte, 2, 2)

	src := []byte{
		1, 2, 3, 4, 5, 6, 7, 8,
		9, 10, 11, 12, 13, 14, 15, 16,
	}
	gl.BindTexture(glcore.GLTexture2D, tex)
	gl.TexSubImage2D(glcore.GLTexture2D, 0, 0, 2, 2, glcore.GLRGBA, glcore.GLUnsignedByte, src, 0)
	gl.BindTexture(glcore.GLTexture2D, 0)

	if diff := cmp.Diff(src, f.TexturePixels(tex)); diff != "" {
		t.Errorf("texture pixels mismatch (-want +got):\n%s", diff)
	}
	if got := f.TexUploads.Load(); got != 1 {
		t.Errorf("TexUploads = %d, want 1", got)
	}
}

func TestUnpackRowLengthSkipsStridePadding(t *testing.T) {
	f := New()
	gl := f.Funcs()
	tex := newTexture2D(f, glcore.GLLuminance, glcore.GLUnsignedByte, 2, 2)

	// 2x2 pixels inside rows of 4 bytes.
	src := []byte{
		1, 2, 0xEE, 0xEE,
		3, 4, 0xEE, 0xEE,
	}
	gl.BindTexture(glcore.GLTexture2D, tex)
	gl.PixelStorei(glcore.GLUnpackRowLength, 4)
	gl.TexSubImage2D(glcore.GLTexture2D, 0, 0, 2, 2, glcore.GLLuminance, glcore.GLUnsignedByte, src, 0)
	gl.PixelStorei(glcore.GLUnpackRowLength, 0)
	gl.BindTexture(glcore.GLTexture2D, 0)

	want := []byte{1, 2, 3, 4}
	if diff := cmp.Diff(want, f.TexturePixels(tex)); diff != "" {
		t.Errorf("texture pixels mismatch (-want +got):\n%s", diff)
	}
}

func TestPixelBufferTransfers(t *testing.T) {
	f := New()
	gl := f.Funcs()
	tex := newTexture2D(f, glcore.GLRGBA, glcore.GLUnsignedByte, 2, 1)

	pix := []byte{10, 20, 30, 40, 50, 60, 70, 80}

	// Upload sourced from a bound unpack buffer.
	buf := gl.GenBuffer()
	gl.BindBuffer(glcore.GLPixelUnpackBuffer, buf)
	gl.BufferData(glcore.GLPixelUnpackBuffer, len(pix), glcore.GLStreamDraw)
	gl.BufferSubData(glcore.GLPixelUnpackBuffer, 0, pix)
	gl.BindTexture(glcore.GLTexture2D, tex)
	gl.TexSubImage2D(glcore.GLTexture2D, 0, 0, 2, 1, glcore.GLRGBA, glcore.GLUnsignedByte, nil, 0)
	gl.BindTexture(glcore.GLTexture2D, 0)
	gl.BindBuffer(glcore.GLPixelUnpackBuffer, 0)

	if diff := cmp.Diff(pix, f.TexturePixels(tex)); diff != "" {
		t.Fatalf("upload through unpack buffer mismatch (-want +got):\n%s", diff)
	}

	// Readback into a bound pack buffer.
	dst := gl.GenBuffer()
	gl.BindBuffer(glcore.GLPixelPackBuffer, dst)
	gl.BufferData(glcore.GLPixelPackBuffer, len(pix), glcore.GLStreamDraw)

	fbo := gl.GenFramebuffer()
	gl.BindFramebuffer(glcore.GLFramebuffer, fbo)
	gl.FramebufferTexture2D(glcore.GLFramebuffer, glcore.GLColorAttachment0, glcore.GLTexture2D, tex, 0)
	if status := gl.CheckFramebufferStatus(glcore.GLFramebuffer); status != glcore.GLFramebufferComplete {
		t.Fatalf("framebuffer status = %#x", status)
	}
	gl.ReadPixels(0, 0, 2, 1, glcore.GLRGBA, glcore.GLUnsignedByte, nil, 0)
	gl.BindFramebuffer(glcore.GLFramebuffer, 0)
	gl.DeleteFramebuffer(fbo)
	gl.BindBuffer(glcore.GLPixelPackBuffer, 0)

	if diff := cmp.Diff(pix, f.BufferStore(dst)); diff != "" {
		t.Errorf("readback through pack buffer mismatch (-want +got):\n%s", diff)
	}
}

func TestMapBuffer(t *testing.T) {
	f := New()
	gl := f.Funcs()

	buf := gl.GenBuffer()
	gl.BindBuffer(glcore.GLPixelPackBuffer, buf)
	gl.BufferData(glcore.GLPixelPackBuffer, 4, glcore.GLStreamDraw)

	s := gl.MapBuffer(glcore.GLPixelPackBuffer, glcore.GLReadOnly)
	if len(s) != 4 {
		t.Fatalf("mapped %d bytes, want 4", len(s))
	}
	if !gl.UnmapBuffer(glcore.GLPixelPackBuffer) {
		t.Error("UnmapBuffer returned false for a mapped buffer")
	}
	if gl.UnmapBuffer(glcore.GLPixelPackBuffer) {
		t.Error("UnmapBuffer returned true for an unmapped buffer")
	}

	f.FailMapBuffer = true
	if gl.MapBuffer(glcore.GLPixelPackBuffer, glcore.GLReadOnly) != nil {
		t.Error("MapBuffer should fail when FailMapBuffer is set")
	}
}

func TestCopyTexSubImageConverts(t *testing.T) {
	f := New()
	gl := f.Funcs()

	src := newTexture2D(f, glcore.GLRGBA, glcore.GLUnsignedByte, 1, 1)
	f.SetTexturePixels(src, []byte{200, 100, 50, 255})

	fbo := gl.GenFramebuffer()
	gl.BindFramebuffer(glcore.GLFramebuffer, fbo)
	gl.FramebufferTexture2D(glcore.GLFramebuffer, glcore.GLColorAttachment0, glcore.GLTexture2D, src, 0)

	tests := []struct {
		name   string
		format uint32
		typ    uint32
		want   []byte
	}{
		{"rgb drops alpha", glcore.GLRGB, glcore.GLUnsignedByte, []byte{200, 100, 50}},
		{"bgra swaps channels", glcore.GLBGRA, glcore.GLUnsignedByte, []byte{50, 100, 200, 255}},
		{"luminance reduces", glcore.GLLuminance, glcore.GLUnsignedByte, []byte{(299*200 + 587*100 + 114*50) / 1000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := newTexture2D(f, tt.format, tt.typ, 1, 1)
			gl.BindTexture(glcore.GLTexture2D, dst)
			gl.CopyTexSubImage2D(glcore.GLTexture2D, 0, 0, 1, 1)
			gl.BindTexture(glcore.GLTexture2D, 0)
			if got := f.TexturePixels(dst); !bytes.Equal(got, tt.want) {
				t.Errorf("converted pixels = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDisabledEntryPoints(t *testing.T) {
	f := New()
	f.DisableBuffers = true
	f.DisableFramebuffers = true
	gl := f.Funcs()
	if gl.HasBuffers() {
		t.Error("HasBuffers() = true with buffers disabled")
	}
	if gl.HasFramebuffers() {
		t.Error("HasFramebuffers() = true with framebuffers disabled")
	}

	full := New().Funcs()
	if !full.HasBuffers() || !full.HasFramebuffers() {
		t.Error("full table should expose buffers and framebuffers")
	}
}

func TestResourceAccounting(t *testing.T) {
	f := New()
	gl := f.Funcs()

	tex := gl.GenTexture()
	buf := gl.GenBuffer()
	fbo := gl.GenFramebuffer()
	if f.LiveTextures() != 1 || f.LiveBuffers() != 1 || f.LiveFramebuffers() != 1 {
		t.Fatalf("live counts = %d/%d/%d, want 1/1/1",
			f.LiveTextures(), f.LiveBuffers(), f.LiveFramebuffers())
	}

	gl.DeleteTexture(tex)
	gl.DeleteBuffer(buf)
	gl.DeleteFramebuffer(fbo)
	// Deleting twice must not double-count.
	gl.DeleteTexture(tex)
	if f.TexturesDeleted.Load() != 1 {
		t.Errorf("TexturesDeleted = %d, want 1", f.TexturesDeleted.Load())
	}
	if f.LiveTextures() != 0 || f.LiveBuffers() != 0 || f.LiveFramebuffers() != 0 {
		t.Errorf("live counts = %d/%d/%d after delete, want 0/0/0",
			f.LiveTextures(), f.LiveBuffers(), f.LiveFramebuffers())
	}
}
