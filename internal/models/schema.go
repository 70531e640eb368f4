package models

// ResumeData is the structured shape the extraction model is asked to
// produce. List fields are always non-nil after validation so that an
// absent section persists as an empty collection.
type ResumeData struct {
	PersonalInfo   *PersonalInfo        `json:"personal_info"`
	Education      []EducationData      `json:"education"`
	WorkExperience []WorkExperienceData `json:"work_experience"`
	Skills         []SkillData          `json:"skills"`
}

type PersonalInfo struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Linkedin string `json:"linkedin"`
	Website  string `json:"website"`
	Summary  string `json:"summary"`
}

type EducationData struct {
	Institution  string `json:"institution"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Description  string `json:"description"`
}

type WorkExperienceData struct {
	Company      string `json:"company"`
	JobTitle     string `json:"job_title"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	IsCurrentJob bool   `json:"is_current_job"`
	Description  string `json:"description"`
}

type SkillData struct {
	Name     string `json:"name"`
	Category string `json:"category"`
}

type ParseStatus string

const (
	StatusSuccess ParseStatus = "success"
	StatusPartial ParseStatus = "partial"
	StatusError   ParseStatus = "error"
)

// ParseOutcome is the ephemeral result of one extraction run. It is never
// persisted; the handler maps it onto the response envelope.
type ParseOutcome struct {
	Status  ParseStatus
	Message string
	Data    *ResumeData
	Err     string
}
