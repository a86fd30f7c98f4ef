package files

import (
	"path/filepath"
	"strings"
)

// Display categories used by the listing filters.
const (
	CategoryDocuments = "Documents"
	CategoryPhotos    = "Photos"
	CategoryVideos    = "Videos"
	CategoryAudio     = "Audio"
	CategoryOthers    = "Others"
)

// Icon identifies which icon the UI should render for an object.
type Icon string

const (
	IconFolder  Icon = "folder"
	IconImage   Icon = "image"
	IconVideo   Icon = "video"
	IconAudio   Icon = "audio"
	IconPDF     Icon = "pdf"
	IconText    Icon = "text"
	IconWord    Icon = "word"
	IconExcel   Icon = "excel"
	IconArchive Icon = "archive"
	IconGeneric Icon = "file"
)

var (
	imageExts   = extSet("jpg", "jpeg", "png", "gif", "bmp", "webp", "svg")
	videoExts   = extSet("mp4", "avi", "mov", "wmv", "flv", "webm")
	audioExts   = extSet("mp3", "wav", "ogg", "aac", "flac")
	textExts    = extSet("txt", "log", "md")
	wordExts    = extSet("doc", "docx")
	excelExts   = extSet("xls", "xlsx")
	archiveExts = extSet("zip", "rar", "7z", "tar", "gz")
)

func extSet(exts ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(exts))
	for _, e := range exts {
		s[e] = struct{}{}
	}
	return s
}

// extOf returns the lowercased extension of the key without the leading dot.
func extOf(key string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(key)), ".")
}

// Category derives the display category from the object's key extension.
// Categories are a presentation concept only; the store knows nothing of them.
func Category(o Object) string {
	if o.IsFolder() {
		return CategoryOthers
	}

	ext := extOf(o.Key)
	switch {
	case inSet(ext, wordExts), ext == "pdf", inSet(ext, textExts):
		return CategoryDocuments
	case inSet(ext, imageExts):
		return CategoryPhotos
	case inSet(ext, videoExts):
		return CategoryVideos
	case inSet(ext, audioExts):
		return CategoryAudio
	default:
		return CategoryOthers
	}
}

// IconFor derives the icon from the object's key extension.
func IconFor(o Object) Icon {
	if o.IsFolder() {
		return IconFolder
	}

	ext := extOf(o.Key)
	switch {
	case inSet(ext, imageExts):
		return IconImage
	case inSet(ext, videoExts):
		return IconVideo
	case inSet(ext, audioExts):
		return IconAudio
	case ext == "pdf":
		return IconPDF
	case inSet(ext, textExts):
		return IconText
	case inSet(ext, wordExts):
		return IconWord
	case inSet(ext, excelExts):
		return IconExcel
	case inSet(ext, archiveExts):
		return IconArchive
	default:
		return IconGeneric
	}
}

func inSet(ext string, set map[string]struct{}) bool {
	_, ok := set[ext]
	return ok
}
