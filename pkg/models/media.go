package models

import "strings"

// MediaClass is a coarse category derived from a file extension
type MediaClass string

const (
	MediaUnknown  MediaClass = "unknown"
	MediaImage    MediaClass = "image"
	MediaVideo    MediaClass = "video"
	MediaAudio    MediaClass = "audio"
	MediaMetadata MediaClass = "metadata"
	MediaDocument MediaClass = "document"
)

// ClassifyExtension maps an extension to its media class.
// Matching is case-insensitive and the leading dot is optional.
func ClassifyExtension(ext string) MediaClass {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".") {
	case "jpg", "jpeg", "png", "gif", "bmp", "tif", "tiff", "heic", "heif", "webp",
		"dng", "raw", "cr2", "cr3", "nef", "arw", "orf", "rw2", "raf", "srw":
		return MediaImage
	case "mp4", "mov", "avi", "mkv", "m4v", "3gp", "mts", "m2ts", "wmv", "mpg", "mpeg", "webm":
		return MediaVideo
	case "mp3", "wav", "aac", "m4a", "flac", "ogg", "wma", "amr", "opus":
		return MediaAudio
	case "thm", "xmp", "aae", "lrv", "xml", "json", "ctg":
		return MediaMetadata
	case "pdf", "txt", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "csv", "rtf", "odt":
		return MediaDocument
	default:
		return MediaUnknown
	}
}
