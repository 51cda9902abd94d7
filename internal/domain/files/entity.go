package files

import "time"

// File links a blob on disk to a patient record. Rows are never updated
// after creation; a correction is a delete followed by a fresh upload.
type File struct {
	ID         int64     `gorm:"column:id;primaryKey" json:"id"`
	PatientID  int64     `gorm:"column:patient_id;index" json:"patient_id"`
	FilePath   string    `gorm:"column:file_path" json:"-"` // relative to the blob root, never exposed
	FileType   string    `gorm:"column:file_type" json:"file_type"`
	UploadedAt time.Time `gorm:"column:uploaded_at" json:"uploaded_at"`
}

func (File) TableName() string { return "files" }
