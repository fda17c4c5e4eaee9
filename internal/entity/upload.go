package entity

// Upload is the plain value form of an uploaded file: bytes plus the metadata
// the extractor dispatches on. Preview concerns stay in the presentation layer.
type Upload struct {
	Bytes    []byte
	Filename string
	MimeType string
}
