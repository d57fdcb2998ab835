package constants

import (
	"path/filepath"
	"strings"
)

// Material file categories persisted alongside uploads.
const (
	FileTypeAudio   = "audio"
	FileTypeDoc     = "document"
	FileTypePDF     = "pdf"
	FileTypeSlide   = "slide"
	FileTypeImage   = "image"
	FileTypeVideo   = "video"
	FileTypeUnknown = "other"
)

func DetectFileTypeFromExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".mp3", ".wav":
		return FileTypeAudio
	case ".doc", ".docx", ".txt":
		return FileTypeDoc
	case ".pdf":
		return FileTypePDF
	case ".ppt", ".pptx":
		return FileTypeSlide
	case ".png", ".jpg", ".jpeg", ".webp":
		return FileTypeImage
	case ".mp4", ".mkv", ".webm":
		return FileTypeVideo
	default:
		return FileTypeUnknown
	}
}
