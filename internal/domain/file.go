package domain

// FileType classifies uploads for size and MIME validation and selects the
// upload endpoint's resource type.
type FileType string

const (
	FileTypeImage    FileType = "image"
	FileTypeDocument FileType = "document"
	FileTypeVideo    FileType = "video"
)

// MaxFileSize is the per-type upload ceiling in bytes.
var MaxFileSize = map[FileType]int64{
	FileTypeImage:    100 * 1024 * 1024,
	FileTypeDocument: 100 * 1024 * 1024,
	FileTypeVideo:    1024 * 1024 * 1024,
}

// AllowedMIMETypes is the per-type MIME allow-list checked before any upload
// is attempted.
var AllowedMIMETypes = map[FileType][]string{
	FileTypeImage: {"image/jpeg", "image/png", "image/webp"},
	FileTypeDocument: {
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	},
	FileTypeVideo: {
		"video/mp4",
		"video/avi",
		"video/mov",
		"video/quicktime",
		"video/x-msvideo",
		"video/x-ms-wmv",
		"video/webm",
		"video/mpeg",
		"video/ogv",
	},
}

func (t FileType) Valid() bool {
	switch t {
	case FileTypeImage, FileTypeDocument, FileTypeVideo:
		return true
	}
	return false
}

// ResourceType maps the file type to the upload service's resource type
// segment. Documents upload as raw blobs.
func (t FileType) ResourceType() string {
	if t == FileTypeDocument {
		return "raw"
	}
	return string(t)
}
