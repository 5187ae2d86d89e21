package video

// Format identifies a raw video pixel format.
type Format uint32

const (
	// FormatUnknown is the zero value.
	FormatUnknown Format = iota

	// FormatRGBA is packed 8-bit RGBA.
	FormatRGBA

	// FormatBGRA is packed 8-bit BGRA.
	FormatBGRA

	// FormatRGB is packed 8-bit RGB.
	FormatRGB

	// FormatRGB16 is packed RGB 5-6-5 in 16 bits.
	FormatRGB16

	// FormatGray8 is single-channel 8-bit luminance.
	FormatGray8

	// FormatGrayAlpha is two-channel 8-bit luminance plus alpha.
	FormatGrayAlpha

	// FormatI420 is planar 4:2:0 YUV with separate U and V planes.
	FormatI420

	// FormatNV12 is semi-planar 4:2:0 YUV with an interleaved UV plane.
	FormatNV12
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatRGBA:
		return "RGBA"
	case FormatBGRA:
		return "BGRA"
	case FormatRGB:
		return "RGB"
	case FormatRGB16:
		return "RGB16"
	case FormatGray8:
		return "GRAY8"
	case FormatGrayAlpha:
		return "GRAY8A"
	case FormatI420:
		return "I420"
	case FormatNV12:
		return "NV12"
	default:
		return "unknown"
	}
}

// Planes returns the number of planes the format carries.
func (f Format) Planes() int {
	switch f {
	case FormatI420:
		return 3
	case FormatNV12:
		return 2
	case FormatUnknown:
		return 0
	default:
		return 1
	}
}

// IsYUV reports whether the format is a YUV format with subsampled planes.
func (f Format) IsYUV() bool {
	return f == FormatI420 || f == FormatNV12
}

// PlaneBytesPerPixel returns the bytes per pixel of one plane.
func (f Format) PlaneBytesPerPixel(plane int) int {
	switch f {
	case FormatRGBA, FormatBGRA:
		return 4
	case FormatRGB:
		return 3
	case FormatRGB16, FormatGrayAlpha:
		return 2
	case FormatGray8, FormatI420:
		return 1
	case FormatNV12:
		if plane == 1 {
			return 2
		}
		return 1
	default:
		return 0
	}
}

// planeSubsampling returns the horizontal and vertical subsampling shifts
// of a plane. The component width of a subsampled plane is the frame width
// shifted right by sw, likewise for height.
func (f Format) planeSubsampling(plane int) (sw, sh uint) {
	if f.IsYUV() && plane > 0 {
		return 1, 1
	}
	return 0, 0
}
