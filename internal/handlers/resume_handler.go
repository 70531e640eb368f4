package handlers

import (
	"errors"
	"io"
	"log"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"careerforge/resume-parser/internal/models"
	"careerforge/resume-parser/internal/repositories"
	"careerforge/resume-parser/internal/services"
)

type ResumeHandler struct {
	resumeRepo  repositories.ResumeRepository
	extractor   services.TextExtractorService
	parser      services.ResumeParserService
	storage     services.StorageService
	indexer     services.Indexer
	index       services.ResumeIndexService
	embedder    services.EmbeddingGenerator
	maxFileSize int64
}

func NewResumeHandler(
	resumeRepo repositories.ResumeRepository,
	extractor services.TextExtractorService,
	parser services.ResumeParserService,
	storage services.StorageService,
	indexer services.Indexer,
	index services.ResumeIndexService,
	embedder services.EmbeddingGenerator,
	maxFileSize int64,
) *ResumeHandler {
	return &ResumeHandler{
		resumeRepo:  resumeRepo,
		extractor:   extractor,
		parser:      parser,
		storage:     storage,
		indexer:     indexer,
		index:       index,
		embedder:    embedder,
		maxFileSize: maxFileSize,
	}
}

// HandleParse handles POST /resume/parse: extract text from the uploaded
// document, run the structured extraction, and reconcile the result into
// the user's singleton resume. Nothing is persisted on an error outcome.
func (h *ResumeHandler) HandleParse(c *fiber.Ctx) error {
	userID, err := parseUserID(c.FormValue("user_id", c.Query("user_id")))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.ErrorResponse("Invalid request", "user_id is required and must be a positive integer"))
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.ErrorResponse("Invalid request", "file is required"))
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.ErrorResponse("Invalid request", "file too large"))
	}

	ext := filepath.Ext(fileHeader.Filename)
	if !services.IsSupportedExtension(ext) {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.ErrorResponse("Invalid request", "unsupported file type: only .pdf, .txt and .docx are accepted"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(
			models.ErrorResponse("Failed to parse resume", "could not read uploaded file"))
	}
	data, err := io.ReadAll(src)
	src.Close()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(
			models.ErrorResponse("Failed to parse resume", "could not read uploaded file"))
	}

	text := h.extractor.ExtractText(services.ByteStream(data), ext)
	if strings.TrimSpace(text) == "" {
		// Empty extraction short-circuits without ever calling the model.
		return c.Status(fiber.StatusUnprocessableEntity).JSON(
			models.ErrorResponse("Failed to parse resume", "no text content could be extracted from the document"))
	}

	outcome := h.parser.ParseResume(c.UserContext(), text)
	if outcome.Status == models.StatusError {
		return c.Status(fiber.StatusBadGateway).JSON(models.FromOutcome(outcome))
	}

	// Keep only the latest stored copy of the file; storage is best effort
	// and never fails the request.
	if err := h.storage.DeleteUserFiles(userID); err != nil {
		log.Printf("⚠️  Failed to clean up stored files for user %d: %v\n", userID, err)
	}
	if _, _, err := h.storage.SaveUpload(fileHeader, userID); err != nil {
		log.Printf("⚠️  Failed to store uploaded file for user %d: %v\n", userID, err)
	}

	resume, err := h.resumeRepo.SaveParsed(c.UserContext(), userID, fileHeader.Filename, outcome.Data)
	if err != nil {
		log.Printf("❌ Failed to save resume for user %d: %v\n", userID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(
			models.ErrorResponse("Failed to save resume", "database error while saving parsed resume"))
	}

	h.indexer.Enqueue(services.IndexJob{
		UserID:   userID,
		FileName: fileHeader.Filename,
		Summary:  services.IndexText(outcome.Data),
	})

	persisted := resume.ToResumeData()
	if outcome.Status == models.StatusPartial {
		return c.JSON(models.PartialResponse("Resume parsed and saved with warnings", persisted, outcome.Err))
	}
	return c.JSON(models.SuccessResponse("Resume parsed and saved successfully", persisted))
}

// HandleGet handles GET /resume/:user_id
func (h *ResumeHandler) HandleGet(c *fiber.Ctx) error {
	userID, err := parseUserID(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.ErrorResponse("Invalid request", "user_id must be a positive integer"))
	}

	resume, err := h.resumeRepo.FindByUser(c.UserContext(), userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(
				models.ErrorResponse("Resume not found", "no resume exists for this user"))
		}
		return c.Status(fiber.StatusInternalServerError).JSON(
			models.ErrorResponse("Failed to retrieve resume", "database error"))
	}

	return c.JSON(models.SuccessResponse("Resume retrieved successfully", resume.ToResumeData()))
}

// HandleDelete handles DELETE /resume/:user_id
func (h *ResumeHandler) HandleDelete(c *fiber.Ctx) error {
	userID, err := parseUserID(c.Params("user_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(
			models.ErrorResponse("Invalid request", "user_id must be a positive integer"))
	}

	deleted, err := h.resumeRepo.DeleteByUser(c.UserContext(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(
			models.ErrorResponse("Failed to delete resume", "database error"))
	}
	if !deleted {
		return c.Status(fiber.StatusNotFound).JSON(
			models.ErrorResponse("Resume not found", "no resume exists for this user"))
	}

	if err := h.storage.DeleteUserFiles(userID); err != nil {
		log.Printf("⚠️  Failed to delete stored files for user %d: %v\n", userID, err)
	}
	if h.index != nil {
		if err := h.index.DeleteResume(c.UserContext(), userID); err != nil {
			log.Printf("⚠️  Failed to remove user %d from the index: %v\n", userID, err)
		}
	}

	return c.JSON(fiber.Map{
		"message": "Resume deleted successfully",
	})
}

// HandleSearch handles POST /resume/search: embed the query and return
// the closest resumes from the vector index.
func (h *ResumeHandler) HandleSearch(c *fiber.Ctx) error {
	var req models.SearchRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if strings.TrimSpace(req.Query) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "query is required",
		})
	}
	if req.Limit <= 0 {
		req.Limit = 5
	}

	embedding, err := h.embedder.GenerateEmbedding(c.UserContext(), req.Query)
	if err != nil {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "failed to embed query",
		})
	}

	matches, err := h.index.SearchResumes(c.UserContext(), embedding, req.Limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "search failed",
		})
	}

	return c.JSON(fiber.Map{
		"results": matches,
	})
}

func parseUserID(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil || value == 0 {
		return 0, errors.New("invalid user id")
	}
	return uint(value), nil
}
