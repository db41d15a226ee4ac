package document

import (
	"bytes"
	"context"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/local/notespress/internal/enhance"
)

func solidPage(w, h int, v uint8) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = v
		img.Pix[i+1] = v
		img.Pix[i+2] = v
		img.Pix[i+3] = 255
	}
	return img
}

func loadedDoc(t *testing.T, n int, params enhance.Params) *Document {
	t.Helper()
	pages := make([]*image.RGBA, n)
	for i := range pages {
		pages[i] = solidPage(20, 30, uint8(10*i))
	}
	doc := New()
	require.NoError(t, doc.Load(context.Background(), pages, params, nil))
	return doc
}

func TestLoadSelectsAllPages(t *testing.T) {
	doc := loadedDoc(t, 4, enhance.DefaultParams())
	require.Equal(t, 4, doc.Len())
	for i := 0; i < doc.Len(); i++ {
		assert.True(t, doc.Page(i).Selected, "page %d should start selected", i)
		assert.Equal(t, doc.Page(i).Original.Bounds(), doc.Page(i).Processed.Bounds())
	}
}

func TestLoadReportsMonotonicProgress(t *testing.T) {
	pages := []*image.RGBA{solidPage(8, 8, 0), solidPage(8, 8, 50), solidPage(8, 8, 100)}
	var fracs []float64
	doc := New()
	require.NoError(t, doc.Load(context.Background(), pages, enhance.Neutral(), func(f float64) {
		fracs = append(fracs, f)
	}))

	require.Len(t, fracs, 3)
	for i := 1; i < len(fracs); i++ {
		assert.GreaterOrEqual(t, fracs[i], fracs[i-1])
	}
	assert.Equal(t, 1.0, fracs[len(fracs)-1])
}

func TestLoadHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := New()
	err := doc.Load(ctx, []*image.RGBA{solidPage(8, 8, 0)}, enhance.Neutral(), nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, doc.Len())
}

func TestRevertThenReprocessMatchesFreshLoad(t *testing.T) {
	params := enhance.Params{Contrast: 1.5, Brightness: 1.1, Sharpness: 1.2, Grayscale: true}
	doc := loadedDoc(t, 3, params)
	fresh := loadedDoc(t, 3, params)

	doc.RevertAll()
	require.NoError(t, doc.ReprocessAll(context.Background(), params, nil))

	for i := 0; i < doc.Len(); i++ {
		assert.True(t, bytes.Equal(doc.Page(i).Processed.Pix, fresh.Page(i).Processed.Pix),
			"page %d differs after revert/reprocess round-trip", i)
	}
}

func TestRevertRestoresOriginalPixels(t *testing.T) {
	doc := loadedDoc(t, 2, enhance.DefaultParams())
	doc.RevertPage(0)
	assert.True(t, bytes.Equal(doc.Page(0).Processed.Pix, doc.Page(0).Original.Pix))
	// Reverted page owns a copy, not the original itself.
	assert.NotSame(t, doc.Page(0).Original, doc.Page(0).Processed)
}

func TestInsertBlankMatchesReferenceSize(t *testing.T) {
	doc := loadedDoc(t, 2, enhance.Neutral())
	require.NoError(t, doc.InsertBlank(1))

	require.Equal(t, 3, doc.Len())
	inserted := doc.Page(1)
	assert.Equal(t, doc.Page(0).Original.Bounds(), inserted.Original.Bounds())
	assert.True(t, inserted.Selected)
	// Blank pages are white.
	assert.Equal(t, uint8(255), inserted.Original.Pix[0])
}

func TestInsertOnEmptyDocumentFails(t *testing.T) {
	doc := New()
	assert.ErrorIs(t, doc.InsertBlank(0), ErrNoReferencePage)
	assert.ErrorIs(t, doc.InsertText(0, "hi"), ErrNoReferencePage)
}

func TestInsertTextRendersInk(t *testing.T) {
	doc := loadedDoc(t, 1, enhance.Neutral())
	require.NoError(t, doc.InsertText(1, "chapter notes"))

	page := doc.Page(1).Original
	ink := false
	for i := 0; i < len(page.Pix); i += 4 {
		if page.Pix[i] != 255 {
			ink = true
			break
		}
	}
	assert.True(t, ink, "text page should contain non-white pixels")
}

func TestInsertAtBoundaries(t *testing.T) {
	doc := loadedDoc(t, 2, enhance.Neutral())
	require.NoError(t, doc.InsertBlank(0))
	require.NoError(t, doc.InsertBlank(doc.Len()))
	assert.Equal(t, 4, doc.Len())
	for i := 0; i < doc.Len(); i++ {
		p := doc.Page(i)
		require.NotNil(t, p.Original)
		require.NotNil(t, p.Processed)
	}
}

func TestMoveSwapsAndIgnoresOutOfBounds(t *testing.T) {
	doc := loadedDoc(t, 3, enhance.Neutral())
	first := doc.Page(0).Original
	second := doc.Page(1).Original

	doc.Move(0, 1)
	assert.Same(t, second, doc.Page(0).Original)
	assert.Same(t, first, doc.Page(1).Original)

	// Boundary moves are no-ops, not errors.
	doc.Move(0, -1)
	doc.Move(2, 1)
	doc.Move(-1, 1)
	assert.Equal(t, 3, doc.Len())
	assert.Same(t, second, doc.Page(0).Original)
}

func TestSelectedProcessedSkipsDeselected(t *testing.T) {
	doc := loadedDoc(t, 4, enhance.Neutral())
	doc.SetSelected(1, false)

	imgs := doc.SelectedProcessed([]int{0, 1, 2, 99})
	assert.Len(t, imgs, 2)
}
