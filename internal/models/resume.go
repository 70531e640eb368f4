package models

import (
	"encoding/json"
	"time"
)

type Resume struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	FileName  string    `gorm:"type:text" json:"file_name"`
	RawData   string    `gorm:"type:text" json:"-"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations (resume exclusively owns its children)
	Education      []Education      `gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" json:"education"`
	WorkExperience []WorkExperience `gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" json:"work_experience"`
	Skills         []Skill          `gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" json:"skills"`
}

func (Resume) TableName() string {
	return "resumes"
}

type Education struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	ResumeID     uint   `gorm:"index;not null" json:"resume_id"`
	Institution  string `gorm:"type:text" json:"institution"`
	Degree       string `gorm:"type:text" json:"degree"`
	FieldOfStudy string `gorm:"type:text" json:"field_of_study"`
	StartDate    string `gorm:"type:text" json:"start_date"`
	EndDate      string `gorm:"type:text" json:"end_date"`
	Description  string `gorm:"type:text" json:"description"`
}

func (Education) TableName() string {
	return "education"
}

type WorkExperience struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	ResumeID     uint       `gorm:"index;not null" json:"resume_id"`
	Company      string     `gorm:"type:text" json:"company"`
	JobTitle     string     `gorm:"type:text" json:"job_title"`
	StartDate    *time.Time `gorm:"type:date" json:"start_date"`
	EndDate      *time.Time `gorm:"type:date" json:"end_date"`
	IsCurrentJob bool       `gorm:"not null;default:false" json:"is_current_job"`
	Description  string     `gorm:"type:text" json:"description"`
}

func (WorkExperience) TableName() string {
	return "work_experience"
}

type Skill struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	ResumeID uint   `gorm:"index;not null" json:"resume_id"`
	Name     string `gorm:"type:text;not null" json:"name"`
	Category string `gorm:"type:text" json:"category"`
}

func (Skill) TableName() string {
	return "skills"
}

// ToResumeData rebuilds the API shape from persisted rows. Child rows are
// the source of truth for the collections; personal info lives only in the
// raw parsed payload. Collection order is preserved as loaded.
func (r *Resume) ToResumeData() *ResumeData {
	data := &ResumeData{
		PersonalInfo:   &PersonalInfo{},
		Education:      make([]EducationData, 0, len(r.Education)),
		WorkExperience: make([]WorkExperienceData, 0, len(r.WorkExperience)),
		Skills:         make([]SkillData, 0, len(r.Skills)),
	}

	if r.RawData != "" {
		var raw ResumeData
		if err := json.Unmarshal([]byte(r.RawData), &raw); err == nil && raw.PersonalInfo != nil {
			data.PersonalInfo = raw.PersonalInfo
		}
	}

	for _, edu := range r.Education {
		data.Education = append(data.Education, EducationData{
			Institution:  edu.Institution,
			Degree:       edu.Degree,
			FieldOfStudy: edu.FieldOfStudy,
			StartDate:    edu.StartDate,
			EndDate:      edu.EndDate,
			Description:  edu.Description,
		})
	}

	for _, exp := range r.WorkExperience {
		data.WorkExperience = append(data.WorkExperience, WorkExperienceData{
			Company:      exp.Company,
			JobTitle:     exp.JobTitle,
			StartDate:    formatDate(exp.StartDate),
			EndDate:      formatDate(exp.EndDate),
			IsCurrentJob: exp.IsCurrentJob,
			Description:  exp.Description,
		})
	}

	for _, skill := range r.Skills {
		data.Skills = append(data.Skills, SkillData{
			Name:     skill.Name,
			Category: skill.Category,
		})
	}

	return data
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}
