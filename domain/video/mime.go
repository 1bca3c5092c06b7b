package video

import (
	"path/filepath"
	"strings"
)

// DefaultContentType is the generic binary fallback used when the file
// extension is not a recognized video format
const DefaultContentType = "application/octet-stream"

// contentTypes maps video file extensions to MIME types
var contentTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
}

// ResolveContentType returns the content type to declare for a file.
// An explicit override wins; otherwise the extension lookup table is
// consulted, falling back to DefaultContentType.
func ResolveContentType(path, explicit string) string {
	if explicit != "" {
		return explicit
	}
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(path))]; ok {
		return ct
	}
	return DefaultContentType
}
