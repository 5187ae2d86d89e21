package video

import "fmt"

// MaxPlanes is the largest plane count any supported format uses.
const MaxPlanes = 4

// Info describes the geometry of one video frame: its format, frame
// dimensions, and the stride and byte offset of every plane inside the
// frame's allocation. Construct with NewInfo and treat as immutable;
// Align returns an adjusted copy rather than mutating in place.
type Info struct {
	Format Format
	Width  int
	Height int

	// Strides holds bytes per row for each plane.
	Strides [MaxPlanes]int

	// Offsets holds each plane's byte offset from the allocation start.
	Offsets [MaxPlanes]int
}

// NewInfo computes the default (unpadded, tightly packed) geometry for a
// format and frame size.
func NewInfo(format Format, width, height int) (Info, error) {
	if format == FormatUnknown || format.Planes() == 0 {
		return Info{}, fmt.Errorf("video: unsupported format %v", format)
	}
	if width <= 0 || height <= 0 {
		return Info{}, fmt.Errorf("video: invalid dimensions %dx%d", width, height)
	}
	info := Info{Format: format, Width: width, Height: height}
	off := 0
	for p := 0; p < format.Planes(); p++ {
		info.Strides[p] = info.PlaneWidth(p) * format.PlaneBytesPerPixel(p)
		info.Offsets[p] = off
		off += info.Strides[p] * info.PlaneHeight(p)
	}
	return info, nil
}

// Planes returns the number of planes.
func (i Info) Planes() int { return i.Format.Planes() }

// PlaneWidth returns the component width of a plane in pixels. Subsampled
// YUV planes report their component width; packed formats report the frame
// width.
func (i Info) PlaneWidth(plane int) int {
	sw, _ := i.Format.planeSubsampling(plane)
	return (i.Width + int(1<<sw) - 1) >> sw
}

// PlaneHeight returns the component height of a plane in rows.
func (i Info) PlaneHeight(plane int) int {
	_, sh := i.Format.planeSubsampling(plane)
	return (i.Height + int(1<<sh) - 1) >> sh
}

// PlaneStride returns the bytes per row of a plane.
func (i Info) PlaneStride(plane int) int { return i.Strides[plane] }

// PlaneOffset returns a plane's byte offset inside the allocation.
func (i Info) PlaneOffset(plane int) int { return i.Offsets[plane] }

// PlaneSize returns the byte size of one plane including stride padding.
func (i Info) PlaneSize(plane int) int {
	return i.PlaneHeight(plane) * i.Strides[plane]
}

// Size returns the total byte size of the frame allocation.
func (i Info) Size() int {
	size := 0
	for p := 0; p < i.Planes(); p++ {
		end := i.Offsets[p] + i.PlaneSize(p)
		if end > size {
			size = end
		}
	}
	return size
}

// Alignment describes padding around the frame and per-plane stride
// alignment applied to an allocation.
type Alignment struct {
	PaddingTop    int
	PaddingBottom int
	PaddingLeft   int
	PaddingRight  int

	// StrideAlign holds a per-plane stride multiple; zero means no
	// additional alignment.
	StrideAlign [MaxPlanes]int
}

// Zero reports whether the alignment applies no padding at all.
func (a Alignment) Zero() bool {
	if a.PaddingTop != 0 || a.PaddingBottom != 0 || a.PaddingLeft != 0 || a.PaddingRight != 0 {
		return false
	}
	for _, s := range a.StrideAlign {
		if s > 1 {
			return false
		}
	}
	return true
}

// Align returns a copy of the info with strides and offsets recomputed for
// the padded frame described by a. The logical Width and Height are
// unchanged; only strides and plane offsets grow.
func (i Info) Align(a Alignment) Info {
	out := i
	paddedW := i.Width + a.PaddingLeft + a.PaddingRight
	paddedH := i.Height + a.PaddingTop + a.PaddingBottom
	off := 0
	for p := 0; p < i.Planes(); p++ {
		sw, sh := i.Format.planeSubsampling(p)
		w := (paddedW + int(1<<sw) - 1) >> sw
		h := (paddedH + int(1<<sh) - 1) >> sh
		stride := w * i.Format.PlaneBytesPerPixel(p)
		if m := a.StrideAlign[p]; m > 1 {
			stride = (stride + m - 1) / m * m
		}
		out.Strides[p] = stride
		out.Offsets[p] = off
		off += stride * h
	}
	return out
}

// PlaneAllocSize returns the byte size of one plane's padded block: the
// aligned stride times the padded plane height.
func (i Info) PlaneAllocSize(a Alignment, plane int) int {
	_, sh := i.Format.planeSubsampling(plane)
	paddedH := (i.Height + a.PaddingTop + a.PaddingBottom + int(1<<sh) - 1) >> sh
	return i.Strides[plane] * paddedH
}

// PlaneContentOffset returns the byte offset of a plane's first unpadded
// pixel within that plane's own padded block.
func (i Info) PlaneContentOffset(a Alignment, plane int) int {
	sw, sh := i.Format.planeSubsampling(plane)
	top := a.PaddingTop >> sh
	left := a.PaddingLeft >> sw
	return top*i.Strides[plane] + left*i.Format.PlaneBytesPerPixel(plane)
}

// PlaneStart returns the byte offset of a plane's first unpadded pixel
// inside the padded allocation described by info (already aligned via
// Align) and a.
func (i Info) PlaneStart(a Alignment, plane int) int {
	return i.Offsets[plane] + i.PlaneContentOffset(a, plane)
}
