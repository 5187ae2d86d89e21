package glmem

import "github.com/glstream/glmem/glcore"

// The transfer engine. Uploads move CPU bytes into the texture, downloads
// move texture pixels back to CPU-visible storage; both prefer the staging
// buffer and fall back to direct synchronous GL calls when staging is
// unsupported. Everything here issues GL calls and must run on the context
// thread, under the owning Memory's lock.

// resolveUpload refreshes the texture from the CPU bytes.
func (m *Memory) resolveUpload() error {
	if m.pbo != nil && m.ctx.SupportsPBOUpload() {
		m.uploadFromPBO()
		return nil
	}
	return m.uploadDirect(m.cpuBytes())
}

// resolveCPUView returns the CPU-visible bytes, refreshing them from the
// texture first when the texture side is newer and read access was
// requested.
func (m *Memory) resolveCPUView(read bool) ([]byte, error) {
	if m.pbo != nil {
		if read && m.state == stateGPUNewer {
			if m.readPixelsToPBO() {
				Logger().Debug("downloaded texture via staging buffer",
					"texture", m.tex, "pbo", m.pbo.ID())
			} else if err := m.downloadDirect(m.pbo.cpuBytes()); err != nil {
				return nil, err
			}
		}
		bytes, err := m.pbo.mapCPU(read)
		if err == nil {
			return bytes, nil
		}
		Logger().Warn("staging buffer map failed, using direct readback",
			"texture", m.tex, "pbo", m.pbo.ID())
		// The GL store holds pixels the CPU view never saw; re-read them
		// straight from the texture instead.
		if read && m.pbo.state == bufStoreNewer {
			if err := m.downloadDirect(m.pbo.cpuBytes()); err != nil {
				return nil, err
			}
			m.pbo.state = bufConsistent
		}
		return m.pbo.cpuBytes(), nil
	}

	bytes := m.cpuBytes()
	if read && m.state == stateGPUNewer {
		if err := m.downloadDirect(bytes); err != nil {
			return nil, err
		}
	}
	return bytes, nil
}

// readPixelsToPBO reads the texture into the staging buffer's GL store at
// the plane's content offset. Returns false when the preconditions for a
// staged download do not hold (no staging buffer, download unsupported, or
// a luminance format); callers fall back to the direct readback path.
func (m *Memory) readPixelsToPBO() bool {
	if m.pbo == nil || !m.ctx.SupportsPBODownload() || isLuminance(m.glFormat) {
		return false
	}
	if m.Stride()%texelBytes(m.glFormat, m.glType) != 0 {
		return false
	}
	gl := m.ctx.GL()
	if !gl.HasFramebuffers() {
		return false
	}
	err := m.withFramebuffer(func() error {
		gl.BindBuffer(glcore.GLPixelPackBuffer, m.pbo.ID())
		gl.PixelStorei(glcore.GLPackRowLength, int32(m.rowLength()))
		gl.ReadPixels(0, 0, m.planeWidth(), m.planeHeight(), m.glFormat, m.glType, nil, m.planeStart())
		gl.PixelStorei(glcore.GLPackRowLength, 0)
		gl.BindBuffer(glcore.GLPixelPackBuffer, 0)
		return nil
	})
	if err != nil {
		return false
	}
	m.pbo.markStoreWritten()
	return true
}

// uploadFromPBO refreshes the texture from the staging buffer: the buffer
// is bound as the unpack source and a sub-image upload reads from it at
// the plane's content offset. This is the only place the row-length pixel
// store state is mutated, and it is restored before returning.
func (m *Memory) uploadFromPBO() {
	gl := m.ctx.GL()
	target := m.target.ToGL()
	pbo := m.pbo.acquireGLRead()

	Logger().Debug("uploading texture via staging buffer",
		"texture", m.tex, "pbo", pbo,
		"width", m.planeWidth(), "height", m.planeHeight())

	m.setUnpackState(gl)
	gl.BindBuffer(glcore.GLPixelUnpackBuffer, pbo)
	gl.BindTexture(target, m.tex)
	gl.TexSubImage2D(target, 0, 0, m.planeWidth(), m.planeHeight(), m.glFormat, m.glType, nil, m.planeStart())
	gl.BindBuffer(glcore.GLPixelUnpackBuffer, 0)
	gl.BindTexture(target, 0)
	m.resetUnpackState(gl)
}

// uploadDirect refreshes the texture straight from CPU memory, bypassing
// the staging buffer.
func (m *Memory) uploadDirect(src []byte) error {
	gl := m.ctx.GL()
	target := m.target.ToGL()

	Logger().Debug("uploading texture directly", "texture", m.tex)

	m.setUnpackState(gl)
	gl.BindTexture(target, m.tex)
	gl.TexSubImage2D(target, 0, 0, m.planeWidth(), m.planeHeight(), m.glFormat, m.glType, src[m.planeStart():], 0)
	gl.BindTexture(target, 0)
	m.resetUnpackState(gl)
	return nil
}

// downloadDirect reads the texture into dst at the plane's content offset
// through a transient framebuffer, bypassing the staging buffer.
func (m *Memory) downloadDirect(dst []byte) error {
	gl := m.ctx.GL()
	Logger().Debug("downloading texture directly", "texture", m.tex)
	return m.withFramebuffer(func() error {
		if m.useRowLength() {
			gl.PixelStorei(glcore.GLPackRowLength, int32(m.rowLength()))
			defer gl.PixelStorei(glcore.GLPackRowLength, 0)
		}
		gl.ReadPixels(0, 0, m.planeWidth(), m.planeHeight(), m.glFormat, m.glType, dst[m.planeStart():], 0)
		return nil
	})
}

// setUnpackState configures the row layout of upload sources: row-length
// where the API supports it and the stride is a whole number of texels,
// alignment otherwise.
func (m *Memory) setUnpackState(gl *glcore.Funcs) {
	if m.useRowLength() {
		gl.PixelStorei(glcore.GLUnpackRowLength, int32(m.rowLength()))
	} else {
		gl.PixelStorei(glcore.GLUnpackAlignment, alignmentForStride(m.Stride()))
	}
}

// resetUnpackState restores the default pixel store state so no global GL
// state leaks to unrelated draws.
func (m *Memory) resetUnpackState(gl *glcore.Funcs) {
	if m.useRowLength() {
		gl.PixelStorei(glcore.GLUnpackRowLength, 0)
	} else {
		gl.PixelStorei(glcore.GLUnpackAlignment, 4)
	}
}

func (m *Memory) useRowLength() bool {
	if m.Stride()%texelBytes(m.glFormat, m.glType) != 0 {
		return false
	}
	return m.ctx.Check(glcore.APIOpenGL|glcore.APIOpenGL3, 1, 0) ||
		m.ctx.Check(glcore.APIGLES2, 3, 0)
}

// alignmentForStride returns the largest power-of-two alignment that
// divides the stride, capped at 8.
func alignmentForStride(stride int) int32 {
	switch {
	case stride%8 == 0:
		return 8
	case stride%4 == 0:
		return 4
	case stride%2 == 0:
		return 2
	default:
		return 1
	}
}

// withFramebuffer runs fn with a transient framebuffer bound and the
// memory's texture attached as its color target. The framebuffer is always
// deleted before returning, on success and failure alike.
func (m *Memory) withFramebuffer(fn func() error) error {
	return withFramebufferTexture(m.ctx, m.target.ToGL(), m.tex, fn)
}

func withFramebufferTexture(ctx *glcore.Context, texTarget uint32, tex uint32, fn func() error) error {
	gl := ctx.GL()
	if !gl.HasFramebuffers() {
		return ErrFramebufferUnsupported
	}
	fbo := gl.GenFramebuffer()
	gl.BindFramebuffer(glcore.GLFramebuffer, fbo)
	defer func() {
		gl.BindFramebuffer(glcore.GLFramebuffer, 0)
		gl.DeleteFramebuffer(fbo)
	}()
	gl.FramebufferTexture2D(glcore.GLFramebuffer, glcore.GLColorAttachment0, texTarget, tex, 0)
	if gl.CheckFramebufferStatus != nil &&
		gl.CheckFramebufferStatus(glcore.GLFramebuffer) != glcore.GLFramebufferComplete {
		return ErrFramebufferUnsupported
	}
	return fn()
}

// RequestDownload eagerly reads the texture into the staging buffer so a
// later CPU mapping finds the pixels already transferred. The call blocks
// until the work completes on the context thread; without staged download
// support it does nothing.
func (m *Memory) RequestDownload() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return ErrDestroyed
	}
	if m.state != stateGPUNewer {
		return nil
	}
	return m.ctx.Run(func() error {
		if m.readPixelsToPBO() {
			Logger().Debug("optimistic download of texture",
				"texture", m.tex, "pbo", m.pbo.ID())
			m.state = stateConsistent
		}
		return nil
	})
}

// RequestUpload eagerly flushes pending CPU bytes into the staging
// buffer's GL store so the later texture upload sources it without a
// client-memory copy. The texture itself refreshes on the next GPU-side
// read.
func (m *Memory) RequestUpload() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.destroyed {
		return ErrDestroyed
	}
	if m.pbo == nil || !m.ctx.SupportsPBOUpload() {
		return nil
	}
	return m.ctx.Run(func() error {
		m.pbo.acquireGLRead()
		return nil
	})
}
