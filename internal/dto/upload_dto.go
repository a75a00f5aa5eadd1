package dto

// UploadedImage describes one stored photo as returned by the upload service.
type UploadedImage struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Mimetype     string `json:"mimetype"`
	URL          string `json:"url"`
	UploadedAt   string `json:"uploadedAt,omitempty"`
}

type UploadResponse struct {
	Success bool `json:"success"`
	UploadedImage
	Message string `json:"message,omitempty"`
}

type MultiUploadResponse struct {
	Success bool            `json:"success"`
	Images  []UploadedImage `json:"images"`
	Count   int             `json:"count"`
	Message string          `json:"message,omitempty"`
}

// UploadErrorResponse is the upload service's failure body.
type UploadErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type AccountDeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}
