// Package glmem manages GL-texture-backed video memory that stays
// consistent with a CPU-accessible copy of the same pixels, deferring
// expensive CPU/GPU transfers until the opposite side is actually read.
//
// # Overview
//
// A [Memory] owns one GL texture holding one plane of a video frame, plus
// (when the context supports it) a staging pixel buffer object used to
// move pixels between the texture and CPU-visible storage without a
// blocking readback or upload. A tagged transfer state records which side
// holds the newer data; [Memory.Map] resolves any pending transfer before
// handing out the requested view.
//
//	ctx := glcore.NewContext(glcore.APIOpenGL3, 3, 3, funcs)
//	info, _ := video.NewInfo(video.FormatRGBA, 640, 480)
//	mem, err := glmem.Alloc(ctx, glcore.Target2D, info, 0, video.Alignment{})
//	if err != nil { ... }
//	defer mem.Destroy()
//
//	m, err := mem.Map(glmem.SideCPU, glmem.ModeWrite)
//	copy(m.Bytes, frame)
//	m.Unmap()
//
//	g, err := mem.Map(glmem.SideGPU, glmem.ModeRead) // uploads lazily
//	draw(g.Texture)
//	g.Unmap()
//
// # Thread affinity
//
// GL calls are only valid on the thread owning the context, so every
// transfer is marshalled onto the context's worker thread through
// [glcore.Context.Run] and blocks the caller until it completes. The
// package's own API may be called from any goroutine.
//
// # Logging
//
// glmem produces no log output by default. Call [SetLogger] to enable it.
package glmem
