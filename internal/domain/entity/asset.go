package entity

import (
	"time"
)

// Asset is the metadata record for an uploaded site image (merch photos,
// backgrounds, logos). The bytes live in Cloud Storage; this lives in
// Firestore.
type Asset struct {
	ID         string    `json:"id" firestore:"id"`
	URL        string    `json:"url" firestore:"url"`
	ObjectName string    `json:"object_name" firestore:"objectName"`
	Kind       string    `json:"kind" firestore:"kind"` // "merch", "background", "logo"
	Filename   string    `json:"filename" firestore:"filename"`
	FileType   string    `json:"file_type" firestore:"fileType"`
	FileSize   int64     `json:"file_size" firestore:"fileSize"`
	UploadedBy string    `json:"uploaded_by" firestore:"uploadedBy"`
	CreatedAt  time.Time `json:"created_at" firestore:"createdAt"`
}
