package dto

type EducationRecordRequest struct {
	Institution   string `json:"institution" validate:"required,max=200"`
	Qualification string `json:"qualification" validate:"required,max=200"`
	FieldOfStudy  string `json:"field_of_study" validate:"omitempty,max=200"`
	StartYear     int    `json:"start_year" validate:"required,min=1900,max=2100"`
	EndYear       int    `json:"end_year" validate:"omitempty,min=1900,max=2100"`
}
