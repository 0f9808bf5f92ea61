package models

// MediaItem is an image or video owned by exactly one business. The binary
// is immutable after upload; only metadata and existence change.
type MediaItem struct {
	ID          string `json:"id"`
	BusinessID  string `json:"businessId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	Type        string `json:"type"`
	FileSize    int64  `json:"fileSize,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// DocumentItem is a document (pdf, certificate, brochure) owned by one
// business.
type DocumentItem struct {
	ID          string `json:"id"`
	BusinessID  string `json:"businessId"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	URL         string `json:"url"`
	FileType    string `json:"fileType"`
	FileSize    int64  `json:"fileSize,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// UploadMetadata is the optional title/description attached to an upload.
type UploadMetadata struct {
	Title       string
	Description string
}
