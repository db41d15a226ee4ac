package codec

import (
	"image"
	"testing"
)

func samplePage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i] = uint8(x * 6)
			img.Pix[i+1] = uint8(y * 8)
			img.Pix[i+2] = uint8((x + y) * 3)
			img.Pix[i+3] = 255
		}
	}
	return img
}

func TestJPEGRoundTripPreservesDimensions(t *testing.T) {
	src := samplePage()
	data, err := EncodeJPEG(src, 85)
	if err != nil {
		t.Fatal(err)
	}
	back, err := DecodeJPEG(data)
	if err != nil {
		t.Fatal(err)
	}
	if back.Bounds() != src.Bounds() {
		t.Errorf("decoded bounds %v, want %v", back.Bounds(), src.Bounds())
	}
}

func TestQualityAffectsPayloadSize(t *testing.T) {
	src := samplePage()
	low, err := EncodeJPEG(src, 20)
	if err != nil {
		t.Fatal(err)
	}
	high, err := EncodeJPEG(src, 95)
	if err != nil {
		t.Fatal(err)
	}
	if len(high) <= len(low) {
		t.Errorf("quality 95 payload (%d) not larger than quality 20 (%d)", len(high), len(low))
	}
}

func TestDimensions(t *testing.T) {
	data, err := EncodeJPEG(samplePage(), 85)
	if err != nil {
		t.Fatal(err)
	}
	w, h, err := Dimensions(data)
	if err != nil {
		t.Fatal(err)
	}
	if w != 40 || h != 30 {
		t.Errorf("Dimensions = %dx%d, want 40x30", w, h)
	}

	if _, _, err := Dimensions([]byte("not an image")); err == nil {
		t.Error("expected error for junk bytes")
	}
}

func TestEncodePNGDecodable(t *testing.T) {
	data, err := EncodePNG(samplePage())
	if err != nil {
		t.Fatal(err)
	}
	w, h, err := Dimensions(data)
	if err != nil {
		t.Fatal(err)
	}
	if w != 40 || h != 30 {
		t.Errorf("PNG dimensions = %dx%d, want 40x30", w, h)
	}
}
