package entity

// VideoAsset is a fetched video sitting in a request-scoped working
// directory.
type VideoAsset struct {
	Path     string
	MimeType string
	Size     int64
}
