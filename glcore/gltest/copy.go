package gltest

import (
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/glstream/glmem/glcore"
)

// copyTexSubImage2D copies a width x height region from the texture
// attached to the bound framebuffer into the texture bound at target,
// converting texel formats the way the GL pipeline would.
func (f *Fake) copyTexSubImage2D(target uint32, x, y, width, height int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TexelCopies.Add(1)

	fb := f.framebuffers[f.boundFBO]
	if fb == nil {
		return
	}
	src := f.textures[fb.attached]
	dst := f.textures[f.boundTextures[target]]
	if src == nil || dst == nil || src.pix == nil || dst.pix == nil {
		return
	}

	srcImg := decodeRGBA(src)
	region := image.Rect(0, 0, width, height)
	dstImg := image.NewRGBA(region)
	xdraw.Copy(dstImg, image.Point{}, srcImg, region, xdraw.Src, nil)
	encodeRGBA(dst, dstImg, x, y, width, height)
}

// decodeRGBA expands a texture's pixel store to 8-bit RGBA.
func decodeRGBA(t *texture) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	bpp := texelSize(t.format, t.typ)
	for row := 0; row < t.height; row++ {
		for col := 0; col < t.width; col++ {
			px := t.pix[(row*t.width+col)*bpp:]
			o := img.PixOffset(col, row)
			switch {
			case t.typ == glcore.GLUnsignedShort565:
				v := uint16(px[0]) | uint16(px[1])<<8
				img.Pix[o+0] = expand5(uint8(v >> 11))
				img.Pix[o+1] = expand6(uint8(v >> 5 & 0x3F))
				img.Pix[o+2] = expand5(uint8(v & 0x1F))
				img.Pix[o+3] = 0xFF
			case t.format == glcore.GLRGBA:
				copy(img.Pix[o:o+4], px[:4])
			case t.format == glcore.GLBGRA:
				img.Pix[o+0] = px[2]
				img.Pix[o+1] = px[1]
				img.Pix[o+2] = px[0]
				img.Pix[o+3] = px[3]
			case t.format == glcore.GLRGB:
				copy(img.Pix[o:o+3], px[:3])
				img.Pix[o+3] = 0xFF
			case t.format == glcore.GLLuminance:
				img.Pix[o+0] = px[0]
				img.Pix[o+1] = px[0]
				img.Pix[o+2] = px[0]
				img.Pix[o+3] = 0xFF
			case t.format == glcore.GLLuminanceAlpha:
				img.Pix[o+0] = px[0]
				img.Pix[o+1] = px[0]
				img.Pix[o+2] = px[0]
				img.Pix[o+3] = px[1]
			case t.format == glcore.GLRed:
				img.Pix[o+0] = px[0]
				img.Pix[o+3] = 0xFF
			case t.format == glcore.GLRG:
				img.Pix[o+0] = px[0]
				img.Pix[o+1] = px[1]
				img.Pix[o+3] = 0xFF
			}
		}
	}
	return img
}

// encodeRGBA writes an RGBA image into a texture's pixel store at (x, y),
// narrowing to the texture's texel format.
func encodeRGBA(t *texture, img *image.RGBA, x, y, width, height int) {
	bpp := texelSize(t.format, t.typ)
	for row := 0; row < height; row++ {
		if y+row >= t.height {
			break
		}
		for col := 0; col < width; col++ {
			if x+col >= t.width {
				break
			}
			o := img.PixOffset(col, row)
			r, g, b, a := img.Pix[o], img.Pix[o+1], img.Pix[o+2], img.Pix[o+3]
			px := t.pix[((y+row)*t.width+x+col)*bpp:]
			switch {
			case t.typ == glcore.GLUnsignedShort565:
				v := uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
				px[0] = byte(v)
				px[1] = byte(v >> 8)
			case t.format == glcore.GLRGBA:
				px[0], px[1], px[2], px[3] = r, g, b, a
			case t.format == glcore.GLBGRA:
				px[0], px[1], px[2], px[3] = b, g, r, a
			case t.format == glcore.GLRGB:
				px[0], px[1], px[2] = r, g, b
			case t.format == glcore.GLLuminance:
				px[0] = luma(r, g, b)
			case t.format == glcore.GLLuminanceAlpha:
				px[0] = luma(r, g, b)
				px[1] = a
			case t.format == glcore.GLRed:
				px[0] = r
			case t.format == glcore.GLRG:
				px[0], px[1] = r, g
			}
		}
	}
}

func expand5(v uint8) uint8 { return v<<3 | v>>2 }
func expand6(v uint8) uint8 { return v<<2 | v>>4 }

// luma reduces RGB to a single luminance channel (BT.601 weights).
func luma(r, g, b uint8) uint8 {
	return uint8((299*int(r) + 587*int(g) + 114*int(b)) / 1000)
}
