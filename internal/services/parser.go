package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"careerforge/resume-parser/internal/config"
	"careerforge/resume-parser/internal/models"
)

// extractionTemperature is kept low to favor deterministic structured
// output over creativity.
const extractionTemperature = 0.1

type ResumeParserService interface {
	ParseResume(ctx context.Context, text string) *models.ParseOutcome
}

type resumeParserService struct {
	generator     TextGenerator
	promptBuilder *PromptBuilder
	cfg           config.ParserConfig
}

func NewResumeParserService(generator TextGenerator, cfg config.ParserConfig) ResumeParserService {
	return &resumeParserService{
		generator:     generator,
		promptBuilder: NewPromptBuilder(),
		cfg:           cfg,
	}
}

// ParseResume implements ResumeParserService. Given a fixed generator
// response the orchestration here is deterministic: truncation, retries
// and validation introduce no nondeterminism of their own.
func (p *resumeParserService) ParseResume(ctx context.Context, text string) *models.ParseOutcome {
	if strings.TrimSpace(text) == "" {
		return &models.ParseOutcome{
			Status:  models.StatusError,
			Message: "Failed to parse resume",
			Err:     "no text content could be extracted from the document",
		}
	}

	prepared := TruncateText(CleanText(text), p.cfg.MaxTextLength)
	prompt := p.promptBuilder.BuildResumeExtractionPrompt(prepared)

	response, err := p.generator.GenerateTextWithRetry(ctx, prompt, extractionTemperature, p.cfg.MaxRetries)
	if err != nil {
		log.Printf("❌ Resume extraction failed: %v\n", err)
		return &models.ParseOutcome{
			Status:  models.StatusError,
			Message: "Failed to parse resume",
			Err:     err.Error(),
		}
	}

	var data models.ResumeData
	if err := json.Unmarshal([]byte(extractJSON(response)), &data); err != nil {
		log.Printf("❌ Failed to decode extraction response: %v\n", err)
		return &models.ParseOutcome{
			Status:  models.StatusError,
			Message: "Failed to parse resume",
			Err:     fmt.Sprintf("model returned malformed output: %v", err),
		}
	}

	issues := validateResumeData(&data)

	if data.PersonalInfo == nil && len(data.Education) == 0 &&
		len(data.WorkExperience) == 0 && len(data.Skills) == 0 {
		return &models.ParseOutcome{
			Status:  models.StatusError,
			Message: "Failed to parse resume",
			Err:     "model output contained no usable resume data",
		}
	}

	if data.PersonalInfo == nil {
		issues = append(issues, "personal_info is missing")
		data.PersonalInfo = &models.PersonalInfo{}
	}

	if len(issues) > 0 {
		return &models.ParseOutcome{
			Status:  models.StatusPartial,
			Message: "Resume parsed with warnings",
			Data:    &data,
			Err:     strings.Join(issues, "; "),
		}
	}

	return &models.ParseOutcome{
		Status:  models.StatusSuccess,
		Message: "Resume parsed successfully",
		Data:    &data,
	}
}

// validateResumeData enforces the schema constraints in place: absent
// sections become fresh empty slices (an empty section is a valid, if
// sparse, result), unnamed skills are dropped, and a work entry whose
// normalized dates are inverted is dropped. Returned issues degrade the
// outcome to partial.
func validateResumeData(data *models.ResumeData) []string {
	var issues []string

	if data.Education == nil {
		data.Education = []models.EducationData{}
	}
	if data.WorkExperience == nil {
		data.WorkExperience = []models.WorkExperienceData{}
	}
	if data.Skills == nil {
		data.Skills = []models.SkillData{}
	}

	validSkills := data.Skills[:0:0]
	for _, skill := range data.Skills {
		if strings.TrimSpace(skill.Name) == "" {
			issues = append(issues, "dropped skill with empty name")
			continue
		}
		validSkills = append(validSkills, skill)
	}
	data.Skills = validSkills

	validWork := data.WorkExperience[:0:0]
	for _, exp := range data.WorkExperience {
		start, startErr := NormalizeDate(exp.StartDate)
		end, endErr := NormalizeDate(exp.EndDate)
		if startErr == nil && endErr == nil && end.Before(start) {
			issues = append(issues, fmt.Sprintf("dropped work experience at %q: end_date precedes start_date", exp.Company))
			continue
		}
		validWork = append(validWork, exp)
	}
	data.WorkExperience = validWork

	return issues
}

// extractJSON strips markdown fences and trims to the outermost JSON
// object, since the model sometimes wraps its output in formatting.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end != -1 && end > start {
		return text[start : end+1]
	}

	return text
}
