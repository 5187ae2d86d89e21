package glmem

import (
	"fmt"

	"github.com/glstream/glmem/glcore"
	"github.com/glstream/glmem/video"
)

// AllocPlanes allocates one memory object per plane of the frame geometry.
// On failure every already created plane is destroyed and nothing is
// returned.
func AllocPlanes(ctx *glcore.Context, target glcore.TextureTarget, info video.Info, align video.Alignment, opts ...Option) ([]*Memory, error) {
	mems := make([]*Memory, 0, info.Planes())
	for p := 0; p < info.Planes(); p++ {
		m, err := Alloc(ctx, target, info, p, align, opts...)
		if err != nil {
			for _, prev := range mems {
				prev.Destroy()
			}
			return nil, fmt.Errorf("glmem: allocating plane %d: %w", p, err)
		}
		mems = append(mems, m)
	}
	return mems, nil
}

// WrapPlanes wraps one caller-supplied byte slice per plane. data must
// hold exactly one slice per plane of the format. On failure every already
// created plane is destroyed.
func WrapPlanes(ctx *glcore.Context, target glcore.TextureTarget, info video.Info, data [][]byte, opts ...Option) ([]*Memory, error) {
	if len(data) != info.Planes() {
		return nil, fmt.Errorf("glmem: %d data planes for %d-plane format %v", len(data), info.Planes(), info.Format)
	}
	mems := make([]*Memory, 0, info.Planes())
	for p := 0; p < info.Planes(); p++ {
		m, err := WrapData(ctx, target, data[p], info, p, opts...)
		if err != nil {
			for _, prev := range mems {
				prev.Destroy()
			}
			return nil, fmt.Errorf("glmem: wrapping plane %d: %w", p, err)
		}
		mems = append(mems, m)
	}
	return mems, nil
}
