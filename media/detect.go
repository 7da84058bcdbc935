package media

import (
	"mime"

	"github.com/gabriel-vasile/mimetype"
)

// ResolveMediaType returns the declared type of a payload, falling back to content
// sniffing when the client sent none or only the generic binary type.
func ResolveMediaType(declared string, data []byte) string {
	if declared != "" {
		if parsed, _, err := mime.ParseMediaType(declared); err == nil && parsed != "application/octet-stream" {
			return parsed
		}
	}
	if len(data) == 0 {
		return declared
	}
	detected, _, _ := mime.ParseMediaType(mimetype.Detect(data).String())
	return detected
}
