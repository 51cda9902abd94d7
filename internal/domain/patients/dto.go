package patients

// CreatePatientRequest is the payload for registering a new patient.
type CreatePatientRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	DOB      string `json:"dob" validate:"required"`
	UniqueID string `json:"unique_id" validate:"required,min=1,max=64"`
	Tags     string `json:"tags"`
	Notes    string `json:"notes"`
}
