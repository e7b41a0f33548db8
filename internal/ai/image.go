package ai

import (
	"strings"

	"github.com/local/contextblog/internal/filetype"
)

// DefaultImageFormat is used when neither a data URL prefix nor the payload
// bytes reveal the format.
const DefaultImageFormat = "jpeg"

// ImagePayload is a base64 image split from an optional data URL prefix.
type ImagePayload struct {
	Data   string
	Format string
}

var detector = filetype.New()

// ParseImage accepts either "data:image/<fmt>;base64,<data>" or bare base64.
// A bare payload is sniffed from its magic bytes and otherwise defaults to jpeg.
func ParseImage(raw string) ImagePayload {
	raw = strings.TrimSpace(raw)
	p := ImagePayload{Data: raw}

	if i := strings.Index(raw, ","); i >= 0 {
		prefix := raw[:i]
		p.Data = raw[i+1:]
		if j := strings.Index(prefix, "image/"); j >= 0 {
			format := prefix[j+len("image/"):]
			if k := strings.Index(format, ";"); k >= 0 {
				format = format[:k]
			}
			p.Format = strings.ToLower(strings.TrimSpace(format))
		}
	}

	if p.Format == "" {
		if info := detector.DetectBase64(p.Data); info != nil && info.Subtype != "" {
			p.Format = info.Subtype
		}
	}
	if p.Format == "" {
		p.Format = DefaultImageFormat
	}
	return p
}

// URL reconstructs the data URL sent to vision models.
func (p ImagePayload) URL() string {
	format := p.Format
	if format == "" {
		format = DefaultImageFormat
	}
	return "data:image/" + format + ";base64," + p.Data
}
