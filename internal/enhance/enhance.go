// Package enhance implements the page enhancement pipeline for scanned
// notes: full color inversion, optional grayscale, then contrast,
// brightness and sharpness adjustments. The stage order is fixed;
// downstream visual expectations depend on it.
package enhance

import (
	"image"
	"image/draw"
)

// Params holds the enhancement factors. 1.0 leaves a stage unchanged.
// Pure value type, owned by the caller.
type Params struct {
	Contrast   float64 `mapstructure:"contrast" json:"contrast"`
	Brightness float64 `mapstructure:"brightness" json:"brightness"`
	Sharpness  float64 `mapstructure:"sharpness" json:"sharpness"`
	Grayscale  bool    `mapstructure:"grayscale" json:"grayscale"`
}

// DefaultParams are the built-in enhancement defaults.
func DefaultParams() Params {
	return Params{Contrast: 1.2, Brightness: 1.0, Sharpness: 1.0, Grayscale: true}
}

// Neutral returns parameters that reduce the pipeline to inversion only.
func Neutral() Params {
	return Params{Contrast: 1.0, Brightness: 1.0, Sharpness: 1.0, Grayscale: false}
}

// Process applies the pipeline to src and returns a new image of the same
// dimensions. src is never modified, so the processed page is always
// re-derivable from its original. Deterministic: the same input and
// parameters always produce the same output.
//
// Stage order: invert -> grayscale (optional) -> contrast -> brightness
// -> sharpness. Inversion turns dark-background/light-text scans into
// printable light-background pages.
func Process(src *image.RGBA, p Params) *image.RGBA {
	img := invert(src)
	if p.Grayscale {
		grayscaleInPlace(img)
	}
	if p.Contrast != 1.0 {
		contrastInPlace(img, p.Contrast)
	}
	if p.Brightness != 1.0 {
		brightnessInPlace(img, p.Brightness)
	}
	if p.Sharpness != 1.0 {
		img = sharpen(img, p.Sharpness)
	}
	return img
}

// Clone returns a deep copy of src. Used for revert, which replaces a
// processed page with an untouched copy of its original.
func Clone(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}

func invert(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	for i := 0; i < len(src.Pix); i += 4 {
		dst.Pix[i] = 255 - src.Pix[i]
		dst.Pix[i+1] = 255 - src.Pix[i+1]
		dst.Pix[i+2] = 255 - src.Pix[i+2]
		dst.Pix[i+3] = 255
	}
	return dst
}

// luminance uses the ITU-R 601 integer weights.
func luminance(r, g, b uint8) uint8 {
	return uint8((299*int(r) + 587*int(g) + 114*int(b)) / 1000)
}

// grayscaleInPlace converts to single-channel luminance and expands back
// to three channels, so later stages operate uniformly on RGB data.
func grayscaleInPlace(img *image.RGBA) {
	for i := 0; i < len(img.Pix); i += 4 {
		l := luminance(img.Pix[i], img.Pix[i+1], img.Pix[i+2])
		img.Pix[i] = l
		img.Pix[i+1] = l
		img.Pix[i+2] = l
	}
}

// contrastInPlace scales each channel away from the image's mean
// luminance: v' = mean + factor*(v-mean). Factor 1.0 is the identity,
// larger factors increase contrast around the mean.
func contrastInPlace(img *image.RGBA, factor float64) {
	var sum int64
	n := 0
	for i := 0; i < len(img.Pix); i += 4 {
		sum += int64(luminance(img.Pix[i], img.Pix[i+1], img.Pix[i+2]))
		n++
	}
	if n == 0 {
		return
	}
	mean := float64(sum) / float64(n)
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = clamp(mean + factor*(float64(img.Pix[i])-mean))
		img.Pix[i+1] = clamp(mean + factor*(float64(img.Pix[i+1])-mean))
		img.Pix[i+2] = clamp(mean + factor*(float64(img.Pix[i+2])-mean))
	}
}

func brightnessInPlace(img *image.RGBA, factor float64) {
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = clamp(factor * float64(img.Pix[i]))
		img.Pix[i+1] = clamp(factor * float64(img.Pix[i+1]))
		img.Pix[i+2] = clamp(factor * float64(img.Pix[i+2]))
	}
}

// smoothKernel is a 3x3 low-pass kernel (sum 13). Sharpening blends the
// original against this smoothed version: v' = smooth + factor*(v-smooth),
// so factor > 1 pushes pixel values away from their local average.
var smoothKernel = [9]int{
	1, 1, 1,
	1, 5, 1,
	1, 1, 1,
}

func sharpen(src *image.RGBA, factor float64) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := Clone(src)
	if w < 3 || h < 3 {
		return dst
	}
	// The one-pixel border is copied through unfiltered.
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			for ch := 0; ch < 3; ch++ {
				acc := 0
				k := 0
				for ky := -1; ky <= 1; ky++ {
					for kx := -1; kx <= 1; kx++ {
						acc += smoothKernel[k] * int(src.Pix[src.PixOffset(b.Min.X+x+kx, b.Min.Y+y+ky)+ch])
						k++
					}
				}
				smooth := float64(acc) / 13.0
				orig := float64(src.Pix[src.PixOffset(b.Min.X+x, b.Min.Y+y)+ch])
				dst.Pix[dst.PixOffset(b.Min.X+x, b.Min.Y+y)+ch] = clamp(smooth + factor*(orig-smooth))
			}
		}
	}
	return dst
}

func clamp(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
