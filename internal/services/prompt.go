package services

import (
	"fmt"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeExtractionPrompt creates the fixed extraction instruction plus
// the candidate's resume text.
func (pb *PromptBuilder) BuildResumeExtractionPrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert resume parser. Extract the following information from the resume text:

1. Personal Information (name, email, phone, location, linkedin, website, summary)
2. Education History (institution, degree, field of study, dates)
3. Work Experience (company, job title, dates, whether it is the current job, responsibilities)
4. Skills (technical skills, soft skills, tools)

Return the extracted information as a valid JSON with the following structure:
{
  "personal_info": {
    "name": "",
    "email": "",
    "phone": "",
    "location": "",
    "linkedin": "",
    "website": "",
    "summary": ""
  },
  "education": [
    {
      "institution": "",
      "degree": "",
      "field_of_study": "",
      "start_date": "",
      "end_date": "",
      "description": ""
    }
  ],
  "work_experience": [
    {
      "company": "",
      "job_title": "",
      "start_date": "",
      "end_date": "",
      "is_current_job": false,
      "description": ""
    }
  ],
  "skills": [
    {
      "name": "",
      "category": ""
    }
  ]
}

Dates must use YYYY-MM-DD, YYYY-MM or YYYY format. Use empty strings for missing information and an empty end_date for ongoing roles. Ensure this is valid JSON format with no trailing commas.

RESUME TEXT:
%s`, resumeText)
}
