package services

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"
	"strings"

	"github.com/qdrant/go-client/qdrant"

	"careerforge/resume-parser/internal/models"
)

type ResumeIndexService interface {
	InitCollection() error
	UpsertResume(ctx context.Context, userID uint, fileName string, summary string, embedding []float32) error
	SearchResumes(ctx context.Context, queryEmbedding []float32, limit int) ([]models.SearchMatch, error)
	DeleteResume(ctx context.Context, userID uint) error
}

type resumeIndexService struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
}

func NewResumeIndexService(urlStr, apiKey, collectionName string) (ResumeIndexService, error) {
	// Parse URL to extract host, port, and TLS usage
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &resumeIndexService{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 size
	}, nil
}

// InitCollection implements ResumeIndexService.
func (q *resumeIndexService) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		log.Println("✅ Collection already exists")
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})

	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	log.Printf("✅ Qdrant collection '%s' created successfully\n", q.collectionName)
	return nil
}

// UpsertResume implements ResumeIndexService. One point per user keyed by
// user ID, so reindexing a user replaces the previous point.
func (q *resumeIndexService) UpsertResume(ctx context.Context, userID uint, fileName string, summary string, embedding []float32) error {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(uint64(userID)),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"user_id":   int64(userID),
			"file_name": fileName,
			"summary":   summary,
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		return fmt.Errorf("failed to upsert resume point: %w", err)
	}

	return nil
}

// SearchResumes implements ResumeIndexService.
func (q *resumeIndexService) SearchResumes(ctx context.Context, queryEmbedding []float32, limit int) ([]models.SearchMatch, error) {
	searchResult, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Query:          qdrant.NewQuery(queryEmbedding...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search resumes: %w", err)
	}

	var matches []models.SearchMatch
	for _, point := range searchResult {
		payload := point.Payload

		match := models.SearchMatch{
			Score: point.Score,
		}

		if userID, ok := payload["user_id"]; ok {
			if val, ok := userID.GetKind().(*qdrant.Value_IntegerValue); ok {
				match.UserID = uint(val.IntegerValue)
			}
		}
		if fileName, ok := payload["file_name"]; ok {
			if val, ok := fileName.GetKind().(*qdrant.Value_StringValue); ok {
				match.FileName = val.StringValue
			}
		}
		if summary, ok := payload["summary"]; ok {
			if val, ok := summary.GetKind().(*qdrant.Value_StringValue); ok {
				match.Summary = val.StringValue
			}
		}

		matches = append(matches, match)
	}

	return matches, nil
}

// DeleteResume implements ResumeIndexService.
func (q *resumeIndexService) DeleteResume(ctx context.Context, userID uint) error {
	_, err := q.client.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: q.collectionName,
		Points:         qdrant.NewPointsSelector(qdrant.NewIDNum(uint64(userID))),
	})
	if err != nil {
		return fmt.Errorf("failed to delete resume point: %w", err)
	}

	return nil
}

// IndexText builds the compact profile string that gets embedded for a
// resume: name, role history, fields of study and skill names.
func IndexText(data *models.ResumeData) string {
	var parts []string

	if data.PersonalInfo != nil {
		for _, field := range []string{data.PersonalInfo.Name, data.PersonalInfo.Location, data.PersonalInfo.Summary} {
			if field != "" {
				parts = append(parts, field)
			}
		}
	}

	for _, exp := range data.WorkExperience {
		entry := strings.TrimSpace(exp.JobTitle + " at " + exp.Company)
		if entry != "at" {
			parts = append(parts, entry)
		}
		if exp.Description != "" {
			parts = append(parts, exp.Description)
		}
	}

	for _, edu := range data.Education {
		entry := strings.TrimSpace(strings.Join([]string{edu.Degree, edu.FieldOfStudy, edu.Institution}, " "))
		if entry != "" {
			parts = append(parts, entry)
		}
	}

	var skills []string
	for _, skill := range data.Skills {
		skills = append(skills, skill.Name)
	}
	if len(skills) > 0 {
		parts = append(parts, "Skills: "+strings.Join(skills, ", "))
	}

	return strings.Join(parts, "\n")
}
