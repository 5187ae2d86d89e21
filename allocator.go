package glmem

import (
	"github.com/glstream/glmem/glcore"
	"github.com/glstream/glmem/video"
)

// Allocator binds a context, a texture target and a default alignment so
// pipeline code can create memory objects without threading those through
// every call site. It is an explicit value with no hidden registration:
// construct one with NewAllocator and pass it to whoever allocates.
//
// Allocator is safe for concurrent use; it holds no mutable state of its
// own.
type Allocator struct {
	ctx    *glcore.Context
	target glcore.TextureTarget
	align  video.Alignment
}

// AllocatorOption configures an Allocator.
type AllocatorOption func(*Allocator)

// WithTarget sets the texture target for allocations (default Target2D).
func WithTarget(t glcore.TextureTarget) AllocatorOption {
	return func(a *Allocator) { a.target = t }
}

// WithAlignment sets the default alignment applied to allocations.
func WithAlignment(al video.Alignment) AllocatorOption {
	return func(a *Allocator) { a.align = al }
}

// NewAllocator creates an allocator for the given context.
func NewAllocator(ctx *glcore.Context, opts ...AllocatorOption) *Allocator {
	a := &Allocator{ctx: ctx, target: glcore.Target2D}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Context returns the allocator's context.
func (a *Allocator) Context() *glcore.Context { return a.ctx }

// Alloc allocates one plane of the frame geometry.
func (a *Allocator) Alloc(info video.Info, plane int, opts ...Option) (*Memory, error) {
	return Alloc(a.ctx, a.target, info, plane, a.align, opts...)
}

// AllocPlanes allocates all planes of the frame geometry.
func (a *Allocator) AllocPlanes(info video.Info, opts ...Option) ([]*Memory, error) {
	return AllocPlanes(a.ctx, a.target, info, a.align, opts...)
}

// WrapTexture wraps a caller-owned texture handle.
func (a *Allocator) WrapTexture(tex uint32, info video.Info, plane int, opts ...Option) (*Memory, error) {
	return WrapTexture(a.ctx, a.target, tex, info, plane, opts...)
}

// WrapData wraps caller memory as one plane's CPU-side bytes.
func (a *Allocator) WrapData(data []byte, info video.Info, plane int, opts ...Option) (*Memory, error) {
	return WrapData(a.ctx, a.target, data, info, plane, opts...)
}

// WrapPlanes wraps caller memory for every plane.
func (a *Allocator) WrapPlanes(info video.Info, data [][]byte, opts ...Option) ([]*Memory, error) {
	return WrapPlanes(a.ctx, a.target, info, data, opts...)
}
