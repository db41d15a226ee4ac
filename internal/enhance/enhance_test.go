package enhance

import (
	"bytes"
	"image"
	"testing"
)

// gradientImage builds a deterministic test page with varied pixel values.
func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = uint8((x * 255) / w)
			img.Pix[i+1] = uint8((y * 255) / h)
			img.Pix[i+2] = uint8(((x + y) * 255) / (w + h))
			img.Pix[i+3] = 255
		}
	}
	return img
}

func TestProcessIsDeterministic(t *testing.T) {
	src := gradientImage(32, 24)
	p := Params{Contrast: 1.4, Brightness: 1.1, Sharpness: 1.3, Grayscale: true}

	first := Process(src, p)
	second := Process(src, p)
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("two runs with identical inputs produced different outputs")
	}
}

func TestProcessPreservesDimensions(t *testing.T) {
	src := gradientImage(37, 19)
	out := Process(src, Params{Contrast: 2.0, Brightness: 0.8, Sharpness: 1.5, Grayscale: true})
	if out.Bounds() != src.Bounds() {
		t.Errorf("output bounds %v, want %v", out.Bounds(), src.Bounds())
	}
}

func TestNeutralParamsInvertOnly(t *testing.T) {
	src := gradientImage(16, 16)
	out := Process(src, Neutral())
	for i := 0; i < len(src.Pix); i += 4 {
		for ch := 0; ch < 3; ch++ {
			if out.Pix[i+ch] != 255-src.Pix[i+ch] {
				t.Fatalf("pixel %d channel %d = %d, want %d", i/4, ch, out.Pix[i+ch], 255-src.Pix[i+ch])
			}
		}
	}
}

func TestProcessNeverMutatesSource(t *testing.T) {
	src := gradientImage(16, 16)
	before := append([]uint8(nil), src.Pix...)
	Process(src, Params{Contrast: 1.8, Brightness: 1.4, Sharpness: 2.0, Grayscale: true})
	if !bytes.Equal(src.Pix, before) {
		t.Error("source image was mutated")
	}
}

func TestGrayscaleExpandsToThreeEqualChannels(t *testing.T) {
	src := gradientImage(16, 16)
	out := Process(src, Params{Contrast: 1.0, Brightness: 1.0, Sharpness: 1.0, Grayscale: true})
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] != out.Pix[i+1] || out.Pix[i+1] != out.Pix[i+2] {
			t.Fatalf("pixel %d channels differ: %d %d %d", i/4, out.Pix[i], out.Pix[i+1], out.Pix[i+2])
		}
	}
}

func TestBrightnessClampsAt255(t *testing.T) {
	// A black source inverts to white; doubling brightness must clamp.
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i] = 255
	}
	out := Process(src, Params{Contrast: 1.0, Brightness: 2.0, Sharpness: 1.0, Grayscale: false})
	for i := 0; i < len(out.Pix); i += 4 {
		if out.Pix[i] != 255 {
			t.Fatalf("pixel %d = %d, want 255", i/4, out.Pix[i])
		}
	}
}

func TestContrastPushesAwayFromMean(t *testing.T) {
	src := gradientImage(32, 32)
	plain := Process(src, Neutral())
	boosted := Process(src, Params{Contrast: 2.0, Brightness: 1.0, Sharpness: 1.0, Grayscale: false})

	// Find a pixel well below and one well above the mean and check they
	// moved in opposite directions.
	var movedDown, movedUp bool
	for i := 0; i < len(plain.Pix); i += 4 {
		if boosted.Pix[i] < plain.Pix[i] {
			movedDown = true
		}
		if boosted.Pix[i] > plain.Pix[i] {
			movedUp = true
		}
	}
	if !movedDown || !movedUp {
		t.Errorf("contrast boost should spread values both ways (down=%t up=%t)", movedDown, movedUp)
	}
}

func TestSharpenTinyImagePassthrough(t *testing.T) {
	src := gradientImage(2, 2)
	out := Process(src, Params{Contrast: 1.0, Brightness: 1.0, Sharpness: 3.0, Grayscale: false})
	inv := Process(src, Neutral())
	if !bytes.Equal(out.Pix, inv.Pix) {
		t.Error("images too small to convolve should pass through the sharpen stage")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	src := gradientImage(8, 8)
	dup := Clone(src)
	dup.Pix[0] = ^dup.Pix[0]
	if src.Pix[0] == dup.Pix[0] {
		t.Error("clone shares pixel storage with source")
	}
}
