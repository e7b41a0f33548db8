package filetype

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
)

// ImageTypeInfo contains detected image type information
type ImageTypeInfo struct {
	MIMEType  string
	Subtype   string // "png", "jpeg", ... as used in data URLs
	Extension string
	Supported bool
}

// Detector handles image type detection using magic bytes
type Detector struct{}

// New creates a new image type detector
func New() *Detector {
	return &Detector{}
}

// Detect detects the image type of raw bytes using magic bytes
func (d *Detector) Detect(data []byte) *ImageTypeInfo {
	mtype := mimetype.Detect(data)
	mimeType := mtype.String()
	// mimetype may append parameters (e.g. "; charset=...")
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	info := &ImageTypeInfo{
		MIMEType:  mimeType,
		Extension: mtype.Extension(),
	}
	d.classify(info)

	log.Debug().Str("mime", info.MIMEType).Bool("supported", info.Supported).Msg("detected image type")
	return info
}

// DetectBase64 decodes a base64 payload (standard or unpadded) and detects it.
// Returns nil when the payload is not valid base64.
func (d *Detector) DetectBase64(payload string) *ImageTypeInfo {
	payload = strings.TrimSpace(payload)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		data, err = base64.RawStdEncoding.DecodeString(payload)
		if err != nil {
			return nil
		}
	}
	return d.Detect(data)
}

// classify maps the MIME type to the subtype vision models accept in data URLs
func (d *Detector) classify(info *ImageTypeInfo) {
	switch info.MIMEType {
	case "image/jpeg":
		info.Subtype = "jpeg"
		info.Supported = true
	case "image/png":
		info.Subtype = "png"
		info.Supported = true
	case "image/gif":
		info.Subtype = "gif"
		info.Supported = true
	case "image/webp":
		info.Subtype = "webp"
		info.Supported = true
	default:
		// Other image/* types (bmp, tiff, heic) are passed through but most
		// providers reject them.
		if strings.HasPrefix(info.MIMEType, "image/") {
			info.Subtype = strings.TrimPrefix(info.MIMEType, "image/")
		}
		info.Supported = false
	}
}
