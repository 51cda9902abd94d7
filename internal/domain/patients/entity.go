package patients

import "time"

// Patient is a clinic patient record. File blobs reference patients by id
// but patient lifecycle is owned here, not by the files subsystem.
type Patient struct {
	ID        int64     `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name" json:"name"`
	DOB       string    `gorm:"column:dob" json:"dob"`
	UniqueID  string    `gorm:"column:unique_id;uniqueIndex" json:"unique_id"`
	Tags      string    `gorm:"column:tags" json:"tags"`
	Notes     string    `gorm:"column:notes" json:"notes"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Patient) TableName() string { return "patients" }

// PatientWithFileCount is the list projection: each patient plus how many
// files are stored for them.
type PatientWithFileCount struct {
	Patient
	FileCount int64 `gorm:"column:file_count" json:"file_count"`
}
