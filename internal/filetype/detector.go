// Package filetype validates input documents by magic bytes, not
// filename, before they reach the rasterizer.
package filetype

import (
	"fmt"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// Info contains detected file type information.
type Info struct {
	MIMEType    string
	Extension   string
	Supported   bool
	Description string
}

// renderable lists the MIME types the MuPDF rasterizer accepts.
var renderable = map[string]string{
	"application/pdf":                "PDF document",
	"application/oxps":               "XPS document",
	"application/epub+zip":           "EPUB document",
	"application/x-mobipocket-ebook": "MOBI document",
}

// Detect inspects the file at path and reports whether it can be
// rasterized.
func Detect(path string) (*Info, error) {
	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to detect file type: %w", err)
	}

	info := &Info{
		MIMEType:  mtype.String(),
		Extension: mtype.Extension(),
	}
	if desc, ok := renderable[info.MIMEType]; ok {
		info.Supported = true
		info.Description = desc
	} else {
		info.Description = fmt.Sprintf("unsupported file type: %s", info.MIMEType)
	}

	log.Debug().Str("mime", info.MIMEType).Str("ext", info.Extension).Bool("supported", info.Supported).Str("file", path).Msg("detected file type")
	return info, nil
}
