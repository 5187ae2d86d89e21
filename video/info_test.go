package video

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewInfo(t *testing.T) {
	tests := []struct {
		name    string
		format  Format
		w, h    int
		strides []int
		offsets []int
		size    int
	}{
		{"rgba", FormatRGBA, 64, 64, []int{256}, []int{0}, 16384},
		{"rgb odd width", FormatRGB, 33, 7, []int{99}, []int{0}, 693},
		{"rgb16", FormatRGB16, 10, 10, []int{20}, []int{0}, 200},
		{"gray8", FormatGray8, 17, 3, []int{17}, []int{0}, 51},
		{"i420", FormatI420, 320, 240, []int{320, 160, 160}, []int{0, 76800, 96000}, 115200},
		{"i420 odd", FormatI420, 5, 5, []int{5, 3, 3}, []int{0, 25, 34}, 43},
		{"nv12", FormatNV12, 320, 240, []int{320, 320}, []int{0, 76800}, 115200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := NewInfo(tt.format, tt.w, tt.h)
			if err != nil {
				t.Fatalf("NewInfo: %v", err)
			}
			for p := 0; p < info.Planes(); p++ {
				if got := info.PlaneStride(p); got != tt.strides[p] {
					t.Errorf("plane %d stride = %d, want %d", p, got, tt.strides[p])
				}
				if got := info.PlaneOffset(p); got != tt.offsets[p] {
					t.Errorf("plane %d offset = %d, want %d", p, got, tt.offsets[p])
				}
			}
			if got := info.Size(); got != tt.size {
				t.Errorf("Size() = %d, want %d", got, tt.size)
			}
		})
	}
}

func TestNewInfoRejectsInvalid(t *testing.T) {
	if _, err := NewInfo(FormatUnknown, 10, 10); err == nil {
		t.Error("unknown format accepted")
	}
	if _, err := NewInfo(FormatRGBA, 0, 10); err == nil {
		t.Error("zero width accepted")
	}
	if _, err := NewInfo(FormatRGBA, 10, -1); err == nil {
		t.Error("negative height accepted")
	}
}

func TestPlaneGeometrySubsampling(t *testing.T) {
	info, err := NewInfo(FormatI420, 5, 5)
	if err != nil {
		t.Fatal(err)
	}
	if w, h := info.PlaneWidth(0), info.PlaneHeight(0); w != 5 || h != 5 {
		t.Errorf("luma plane = %dx%d, want 5x5", w, h)
	}
	// Chroma planes round up on odd dimensions.
	if w, h := info.PlaneWidth(1), info.PlaneHeight(1); w != 3 || h != 3 {
		t.Errorf("chroma plane = %dx%d, want 3x3", w, h)
	}
}

func TestAlign(t *testing.T) {
	info, err := NewInfo(FormatRGBA, 10, 10)
	if err != nil {
		t.Fatal(err)
	}
	a := Alignment{
		PaddingTop: 2, PaddingBottom: 2, PaddingLeft: 2, PaddingRight: 2,
		StrideAlign: [MaxPlanes]int{64},
	}
	got := info.Align(a)

	want := info
	want.Strides[0] = 64 // 14 px * 4 bytes = 56, rounded up
	want.Offsets[0] = 0
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("aligned info mismatch (-want +got):\n%s", diff)
	}
	if got.Width != 10 || got.Height != 10 {
		t.Errorf("logical size changed to %dx%d", got.Width, got.Height)
	}

	if size := got.PlaneAllocSize(a, 0); size != 64*14 {
		t.Errorf("PlaneAllocSize = %d, want %d", size, 64*14)
	}
	if off := got.PlaneContentOffset(a, 0); off != 2*64+2*4 {
		t.Errorf("PlaneContentOffset = %d, want %d", off, 2*64+2*4)
	}
	if start := got.PlaneStart(a, 0); start != 2*64+2*4 {
		t.Errorf("PlaneStart = %d, want %d", start, 2*64+2*4)
	}
}

func TestAlignSubsampledPlanes(t *testing.T) {
	info, err := NewInfo(FormatI420, 320, 240)
	if err != nil {
		t.Fatal(err)
	}
	a := Alignment{PaddingTop: 4, PaddingBottom: 4}
	got := info.Align(a)

	if got.Strides[0] != 320 || got.Strides[1] != 160 || got.Strides[2] != 160 {
		t.Errorf("strides = %v", got.Strides)
	}
	// Luma gains 8 padded rows, chroma 4.
	if got.Offsets[1] != 320*248 {
		t.Errorf("chroma offset = %d, want %d", got.Offsets[1], 320*248)
	}
	if got.Offsets[2] != 320*248+160*124 {
		t.Errorf("second chroma offset = %d, want %d", got.Offsets[2], 320*248+160*124)
	}
	// Chroma content starts below 2 padded rows.
	if off := got.PlaneContentOffset(a, 1); off != 2*160 {
		t.Errorf("chroma content offset = %d, want %d", off, 2*160)
	}
}

func TestAlignmentZero(t *testing.T) {
	if !(Alignment{}).Zero() {
		t.Error("empty alignment should be zero")
	}
	if !(Alignment{StrideAlign: [MaxPlanes]int{1, 1}}).Zero() {
		t.Error("stride align of 1 should still be zero")
	}
	if (Alignment{PaddingLeft: 1}).Zero() {
		t.Error("padded alignment should not be zero")
	}
	if (Alignment{StrideAlign: [MaxPlanes]int{16}}).Zero() {
		t.Error("stride-aligned alignment should not be zero")
	}
}

func TestFormatProperties(t *testing.T) {
	tests := []struct {
		format Format
		planes int
		yuv    bool
		bpp0   int
	}{
		{FormatRGBA, 1, false, 4},
		{FormatBGRA, 1, false, 4},
		{FormatRGB, 1, false, 3},
		{FormatRGB16, 1, false, 2},
		{FormatGray8, 1, false, 1},
		{FormatGrayAlpha, 1, false, 2},
		{FormatI420, 3, true, 1},
		{FormatNV12, 2, true, 1},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.Planes(); got != tt.planes {
				t.Errorf("Planes() = %d, want %d", got, tt.planes)
			}
			if got := tt.format.IsYUV(); got != tt.yuv {
				t.Errorf("IsYUV() = %v, want %v", got, tt.yuv)
			}
			if got := tt.format.PlaneBytesPerPixel(0); got != tt.bpp0 {
				t.Errorf("PlaneBytesPerPixel(0) = %d, want %d", got, tt.bpp0)
			}
		})
	}
	if got := FormatNV12.PlaneBytesPerPixel(1); got != 2 {
		t.Errorf("NV12 chroma bytes per pixel = %d, want 2", got)
	}
}
