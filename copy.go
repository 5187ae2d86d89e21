package glmem

import (
	"github.com/glstream/glmem/glcore"
	"github.com/glstream/glmem/video"
)

// CopyParams describes the destination of a texture-to-texture copy.
type CopyParams struct {
	// Texture is the destination texture name; zero means create a new
	// texture of the destination format and size.
	Texture uint32

	// Target is the destination texture target.
	Target glcore.TextureTarget

	// Format selects the destination texel layout (plane 0 of the video
	// format).
	Format video.Format

	// Width, Height and Stride describe the destination geometry.
	Width  int
	Height int
	Stride int

	// Respecify reinterprets the source's backing bytes under the
	// destination format instead of converting texel by texel. The
	// destination byte size (Height x Stride) must equal the source's.
	Respecify bool
}

// CopyInto copies the memory's contents into the destination texture and
// returns the destination texture name (newly created when
// CopyParams.Texture is zero).
//
// With Respecify false the copy is a texel-for-texel conversion through
// the GL pipeline: the source is attached to a transient framebuffer and
// copied into the destination, letting the driver convert formats. With
// Respecify true the same backing bytes are re-read into the staging
// buffer and uploaded under the destination format, splitting or merging
// channels without conversion; this requires staging support and equal
// backing sizes.
//
// On failure the destination is never mutated, and a destination created
// by this call is deleted again.
func (m *Memory) CopyInto(p *CopyParams) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return 0, ErrDestroyed
	}
	if m.target == glcore.TargetExternalOES {
		return 0, ErrExternalTexture
	}

	var out uint32
	err := m.ctx.Run(func() error {
		var err error
		out, err = m.copyInto(p)
		return err
	})
	if err != nil {
		return 0, err
	}
	return out, nil
}

// copyInto is the context-thread body of CopyInto.
func (m *Memory) copyInto(p *CopyParams) (uint32, error) {
	gl := m.ctx.GL()

	inSize := m.planeHeight() * m.ainfo.PlaneStride(m.plane)
	outSize := p.Height * p.Stride
	if p.Respecify {
		if inSize != outSize {
			Logger().Debug("rejecting respecify copy of different sizes",
				"in", inSize, "out", outSize)
			return 0, ErrIncompatibleRespecify
		}
		if m.pbo == nil || !gl.HasBuffers() {
			return 0, ErrRespecifyRequiresStaging
		}
		if !m.ctx.SupportsPBODownload() {
			return 0, ErrRespecifyRequiresDownload
		}
		if m.ctx.IsGLES2Only() && (m.glFormat != glcore.GLRGBA || m.glType != glcore.GLUnsignedByte) {
			return 0, ErrUnsupportedRespecifyFormat
		}
		if isLuminance(m.glFormat) {
			return 0, ErrUnsupportedRespecifyFormat
		}
	}
	if !gl.HasFramebuffers() {
		return 0, ErrFramebufferUnsupported
	}

	// A pending CPU-side write must reach the source texture before its
	// content is copied anywhere.
	if m.state == stateCPUNewer {
		if err := m.resolveUpload(); err != nil {
			return 0, err
		}
		m.state = stateConsistent
	}

	outFormat, outType := planeTexFormat(p.Format, 0)
	tex := p.Texture
	created := false
	if tex == 0 {
		tex = newTexture(m.ctx, p.Target, outFormat, outType, p.Width, p.Height)
		if tex == 0 {
			return 0, ErrAllocation
		}
		created = true
	}

	Logger().Debug("copying memory into texture",
		"source", m.tex, "dest", tex, "respecify", p.Respecify)

	var err error
	if p.Respecify {
		err = m.copyRespecify(tex, p, outFormat, outType)
	} else {
		err = m.copyTexels(tex, p)
	}
	if err != nil {
		if created {
			gl.DeleteTexture(tex)
		}
		return 0, err
	}
	return tex, nil
}

// copyRespecify uploads the source's backing bytes into the destination
// texture under the destination format. The source bytes are always
// re-read from the texture first so the staging buffer's store is current.
func (m *Memory) copyRespecify(tex uint32, p *CopyParams, outFormat, outType uint32) error {
	gl := m.ctx.GL()
	if !m.readPixelsToPBO() {
		return ErrRespecifyRequiresStaging
	}

	target := p.Target.ToGL()
	gl.BindBuffer(glcore.GLPixelUnpackBuffer, m.pbo.ID())
	gl.BindTexture(target, tex)
	gl.TexSubImage2D(target, 0, 0, p.Width, p.Height, outFormat, outType, nil, m.planeStart())
	gl.BindTexture(target, 0)
	gl.BindBuffer(glcore.GLPixelUnpackBuffer, 0)
	return nil
}

// copyTexels converts the source into the destination texel by texel: the
// source texture is attached to a transient framebuffer and the GL
// pipeline copies (and format-converts) the overlapping region.
func (m *Memory) copyTexels(tex uint32, p *CopyParams) error {
	gl := m.ctx.GL()
	w := min(p.Width, m.planeWidth())
	h := min(p.Height, m.planeHeight())
	return m.withFramebuffer(func() error {
		target := p.Target.ToGL()
		gl.BindTexture(target, tex)
		gl.CopyTexSubImage2D(target, 0, 0, w, h)
		gl.BindTexture(target, 0)
		return nil
	})
}

// Copy duplicates the whole memory object, staging buffer state included.
// Sources with pending CPU-side writes are copied without touching the
// GPU; otherwise the texture is copied texel for texel and the duplicate
// starts with its texture side newer.
func (m *Memory) Copy() (*Memory, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return nil, ErrDestroyed
	}
	if m.target == glcore.TargetExternalOES {
		return nil, ErrExternalTexture
	}

	dst, err := Alloc(m.ctx, m.target, m.info, m.plane, m.align)
	if err != nil {
		return nil, err
	}

	if m.state == stateCPUNewer {
		var src []byte
		err = m.ctx.Run(func() error {
			var err error
			src, err = m.resolveCPUView(true)
			return err
		})
		if err == nil {
			err = m.ctx.Run(func() error {
				dbytes, derr := dst.resolveCPUView(false)
				if derr != nil {
					return derr
				}
				copy(dbytes, src)
				if dst.pbo != nil {
					dst.pbo.markDataWritten()
				}
				return nil
			})
		}
		if err != nil {
			dst.Destroy()
			return nil, err
		}
		dst.state = stateCPUNewer
		return dst, nil
	}

	err = m.ctx.Run(func() error {
		_, err := m.copyInto(&CopyParams{
			Texture: dst.tex,
			Target:  dst.target,
			Format:  m.info.Format,
			Width:   dst.planeWidth(),
			Height:  dst.planeHeight(),
			Stride:  dst.Stride(),
		})
		return err
	})
	if err != nil {
		dst.Destroy()
		return nil, err
	}
	dst.state = stateGPUNewer
	return dst, nil
}
