package models

// ImageFile is an uploaded reference image as stored by the backend.
type ImageFile struct {
	ID         int64     `json:"id"`
	Filename   string    `json:"filename"`
	StoredPath string    `json:"stored_path"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	CreatedAt  Timestamp `json:"created_at"`
}

// SizeKB is the rounded size shown next to the upload preview.
func (f ImageFile) SizeKB() int64 {
	return (f.SizeBytes + 512) / 1024
}
