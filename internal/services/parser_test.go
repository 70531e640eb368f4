package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerforge/resume-parser/internal/config"
	"careerforge/resume-parser/internal/models"
)

type fakeGenerator struct {
	response   string
	err        error
	calls      int
	lastPrompt string
}

func (f *fakeGenerator) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	f.calls++
	f.lastPrompt = prompt
	return f.response, f.err
}

func testParserConfig() config.ParserConfig {
	return config.ParserConfig{
		MaxTextLength:  6000,
		RequestTimeout: time.Second,
		MaxRetries:     3,
	}
}

const fullResumeJSON = `{
	"personal_info": {"name": "Jane Doe", "email": "jane@example.com", "phone": "", "location": "Berlin", "linkedin": "", "website": "", "summary": "Backend engineer"},
	"education": [{"institution": "TU Berlin", "degree": "BSc", "field_of_study": "Computer Science", "start_date": "2014", "end_date": "2018", "description": ""}],
	"work_experience": [{"company": "Acme", "job_title": "Engineer", "start_date": "2018-06", "end_date": "2021-02", "is_current_job": false, "description": "APIs"}],
	"skills": [{"name": "Go", "category": "language"}, {"name": "PostgreSQL", "category": "database"}]
}`

func TestParseResumeSuccess(t *testing.T) {
	gen := &fakeGenerator{response: fullResumeJSON}
	parser := NewResumeParserService(gen, testParserConfig())

	outcome := parser.ParseResume(context.Background(), "some resume text")

	require.Equal(t, models.StatusSuccess, outcome.Status)
	require.NotNil(t, outcome.Data)
	assert.Empty(t, outcome.Err)
	assert.Equal(t, "Jane Doe", outcome.Data.PersonalInfo.Name)
	assert.Len(t, outcome.Data.Education, 1)
	assert.Len(t, outcome.Data.WorkExperience, 1)
	assert.Len(t, outcome.Data.Skills, 2)
}

func TestParseResumeMarkdownWrappedResponse(t *testing.T) {
	gen := &fakeGenerator{response: "```json\n" + fullResumeJSON + "\n```"}
	parser := NewResumeParserService(gen, testParserConfig())

	outcome := parser.ParseResume(context.Background(), "some resume text")

	require.Equal(t, models.StatusSuccess, outcome.Status)
	assert.Equal(t, "Jane Doe", outcome.Data.PersonalInfo.Name)
}

func TestParseResumeEmptyTextSkipsModel(t *testing.T) {
	gen := &fakeGenerator{response: fullResumeJSON}
	parser := NewResumeParserService(gen, testParserConfig())

	outcome := parser.ParseResume(context.Background(), "   \n\t ")

	assert.Equal(t, models.StatusError, outcome.Status)
	assert.Nil(t, outcome.Data)
	assert.NotEmpty(t, outcome.Err)
	assert.Equal(t, 0, gen.calls, "model must not be called for empty input")
}

func TestParseResumeGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("deadline exceeded")}
	parser := NewResumeParserService(gen, testParserConfig())

	outcome := parser.ParseResume(context.Background(), "some resume text")

	assert.Equal(t, models.StatusError, outcome.Status)
	assert.Nil(t, outcome.Data)
	assert.Contains(t, outcome.Err, "deadline exceeded")
}

func TestParseResumeMalformedResponse(t *testing.T) {
	gen := &fakeGenerator{response: "I could not process this resume, sorry."}
	parser := NewResumeParserService(gen, testParserConfig())

	outcome := parser.ParseResume(context.Background(), "some resume text")

	assert.Equal(t, models.StatusError, outcome.Status)
	assert.Nil(t, outcome.Data)
}

func TestParseResumeMissingSkillsPersistsEmptyList(t *testing.T) {
	gen := &fakeGenerator{response: `{
		"personal_info": {"name": "Jane Doe"},
		"education": [],
		"work_experience": []
	}`}
	parser := NewResumeParserService(gen, testParserConfig())

	outcome := parser.ParseResume(context.Background(), "some resume text")

	require.Equal(t, models.StatusSuccess, outcome.Status)
	require.NotNil(t, outcome.Data.Skills)
	assert.Empty(t, outcome.Data.Skills)
	assert.NotNil(t, outcome.Data.Education)
	assert.NotNil(t, outcome.Data.WorkExperience)
}

func TestParseResumeMissingPersonalInfoIsPartial(t *testing.T) {
	gen := &fakeGenerator{response: `{
		"education": [{"institution": "TU Berlin"}],
		"work_experience": [],
		"skills": []
	}`}
	parser := NewResumeParserService(gen, testParserConfig())

	outcome := parser.ParseResume(context.Background(), "some resume text")

	require.Equal(t, models.StatusPartial, outcome.Status)
	require.NotNil(t, outcome.Data)
	require.NotNil(t, outcome.Data.PersonalInfo)
	assert.Contains(t, outcome.Err, "personal_info")
}

func TestParseResumeEmptyOutputIsError(t *testing.T) {
	gen := &fakeGenerator{response: `{"education": [], "work_experience": [], "skills": []}`}
	parser := NewResumeParserService(gen, testParserConfig())

	outcome := parser.ParseResume(context.Background(), "some resume text")

	assert.Equal(t, models.StatusError, outcome.Status)
	assert.Nil(t, outcome.Data)
}

func TestParseResumeDropsInvalidEntries(t *testing.T) {
	gen := &fakeGenerator{response: `{
		"personal_info": {"name": "Jane Doe"},
		"education": [],
		"work_experience": [
			{"company": "Acme", "job_title": "Engineer", "start_date": "2020-01", "end_date": "2018-01", "is_current_job": false, "description": ""},
			{"company": "Umbrella", "job_title": "Engineer", "start_date": "2021-01", "end_date": "2022-01", "is_current_job": false, "description": ""}
		],
		"skills": [{"name": "  ", "category": ""}, {"name": "Go", "category": "language"}]
	}`}
	parser := NewResumeParserService(gen, testParserConfig())

	outcome := parser.ParseResume(context.Background(), "some resume text")

	require.Equal(t, models.StatusPartial, outcome.Status)
	require.NotNil(t, outcome.Data)
	require.Len(t, outcome.Data.WorkExperience, 1)
	assert.Equal(t, "Umbrella", outcome.Data.WorkExperience[0].Company)
	require.Len(t, outcome.Data.Skills, 1)
	assert.Equal(t, "Go", outcome.Data.Skills[0].Name)
	assert.Contains(t, outcome.Err, "end_date precedes start_date")
	assert.Contains(t, outcome.Err, "empty name")
}

func TestParseResumeTruncatesLongInput(t *testing.T) {
	gen := &fakeGenerator{response: fullResumeJSON}
	cfg := testParserConfig()
	cfg.MaxTextLength = 100
	parser := NewResumeParserService(gen, cfg)

	outcome := parser.ParseResume(context.Background(), strings.Repeat("x", 500))

	require.Equal(t, models.StatusSuccess, outcome.Status)
	assert.Contains(t, gen.lastPrompt, TruncationMarker)
	assert.NotContains(t, gen.lastPrompt, strings.Repeat("x", 101))
}
