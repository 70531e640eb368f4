package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"careerforge/resume-parser/internal/models"
	"careerforge/resume-parser/internal/services"
)

type ResumeRepository interface {
	// SaveParsed creates or updates the singleton resume for a user. Child
	// collections are fully replaced by the supplied payload inside a
	// single transaction.
	SaveParsed(ctx context.Context, userID uint, fileName string, data *models.ResumeData) (*models.Resume, error)
	FindByUser(ctx context.Context, userID uint) (*models.Resume, error)
	// DeleteByUser removes the resume and all child rows, reporting
	// whether a record existed.
	DeleteByUser(ctx context.Context, userID uint) (bool, error)
	All(ctx context.Context) ([]models.Resume, error)
}

type resumeRepository struct {
	db        *gorm.DB
	userLocks sync.Map
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

// userLock serializes concurrent saves for the same user in-process, so
// one request's delete-then-insert cannot interleave with another's.
func (r *resumeRepository) userLock(userID uint) *sync.Mutex {
	lock, _ := r.userLocks.LoadOrStore(userID, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// SaveParsed implements ResumeRepository.
func (r *resumeRepository) SaveParsed(ctx context.Context, userID uint, fileName string, data *models.ResumeData) (*models.Resume, error) {
	lock := r.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode parsed payload: %w", err)
	}

	var resumeID uint
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx
		if tx.Dialector.Name() == "postgres" {
			// Row-level lock guards against writers from other processes.
			query = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var resume models.Resume
		findErr := query.Where("user_id = ?", userID).First(&resume).Error
		switch {
		case findErr == nil:
			updates := map[string]interface{}{
				"file_name":  fileName,
				"raw_data":   string(raw),
				"updated_at": time.Now(),
			}
			if err := tx.Model(&models.Resume{}).Where("id = ?", resume.ID).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update resume: %w", err)
			}

			// Full replace: every existing child row goes before reinsert.
			if err := tx.Where("resume_id = ?", resume.ID).Delete(&models.Education{}).Error; err != nil {
				return fmt.Errorf("failed to clear education entries: %w", err)
			}
			if err := tx.Where("resume_id = ?", resume.ID).Delete(&models.WorkExperience{}).Error; err != nil {
				return fmt.Errorf("failed to clear work experience entries: %w", err)
			}
			if err := tx.Where("resume_id = ?", resume.ID).Delete(&models.Skill{}).Error; err != nil {
				return fmt.Errorf("failed to clear skill entries: %w", err)
			}

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			resume = models.Resume{
				UserID:   userID,
				FileName: fileName,
				RawData:  string(raw),
			}
			if err := tx.Create(&resume).Error; err != nil {
				return fmt.Errorf("failed to create resume: %w", err)
			}

		default:
			return fmt.Errorf("failed to look up resume: %w", findErr)
		}

		resumeID = resume.ID

		if rows := educationRows(resume.ID, data.Education); len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to insert education entries: %w", err)
			}
		}
		if rows := workExperienceRows(resume.ID, data.WorkExperience); len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to insert work experience entries: %w", err)
			}
		}
		if rows := skillRows(resume.ID, data.Skills); len(rows) > 0 {
			if err := tx.Create(&rows).Error; err != nil {
				return fmt.Errorf("failed to insert skill entries: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	var saved models.Resume
	if err := withChildren(r.db.WithContext(ctx)).Where("id = ?", resumeID).First(&saved).Error; err != nil {
		return nil, fmt.Errorf("failed to reload saved resume: %w", err)
	}

	return &saved, nil
}

// FindByUser implements ResumeRepository.
func (r *resumeRepository) FindByUser(ctx context.Context, userID uint) (*models.Resume, error) {
	var resume models.Resume
	if err := withChildren(r.db.WithContext(ctx)).Where("user_id = ?", userID).First(&resume).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}

	return &resume, nil
}

// DeleteByUser implements ResumeRepository.
func (r *resumeRepository) DeleteByUser(ctx context.Context, userID uint) (bool, error) {
	lock := r.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	found := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var resume models.Resume
		if err := tx.Where("user_id = ?", userID).First(&resume).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return fmt.Errorf("failed to look up resume: %w", err)
		}

		if err := tx.Where("resume_id = ?", resume.ID).Delete(&models.Education{}).Error; err != nil {
			return fmt.Errorf("failed to delete education entries: %w", err)
		}
		if err := tx.Where("resume_id = ?", resume.ID).Delete(&models.WorkExperience{}).Error; err != nil {
			return fmt.Errorf("failed to delete work experience entries: %w", err)
		}
		if err := tx.Where("resume_id = ?", resume.ID).Delete(&models.Skill{}).Error; err != nil {
			return fmt.Errorf("failed to delete skill entries: %w", err)
		}
		if err := tx.Delete(&resume).Error; err != nil {
			return fmt.Errorf("failed to delete resume: %w", err)
		}

		found = true
		return nil
	})
	if err != nil {
		return false, err
	}

	return found, nil
}

// All implements ResumeRepository.
func (r *resumeRepository) All(ctx context.Context) ([]models.Resume, error) {
	var resumes []models.Resume
	if err := withChildren(r.db.WithContext(ctx)).Find(&resumes).Error; err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}

	return resumes, nil
}

// withChildren eager-loads all child collections. Work experience is
// ordered most recent first, entries without a start date last; the same
// ordering applies on every read path.
func withChildren(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Education").
		Preload("Skills").
		Preload("WorkExperience", func(db *gorm.DB) *gorm.DB {
			return db.Order("(start_date IS NULL), start_date DESC")
		})
}

func educationRows(resumeID uint, entries []models.EducationData) []models.Education {
	rows := make([]models.Education, 0, len(entries))
	for _, edu := range entries {
		rows = append(rows, models.Education{
			ResumeID:     resumeID,
			Institution:  edu.Institution,
			Degree:       edu.Degree,
			FieldOfStudy: edu.FieldOfStudy,
			StartDate:    edu.StartDate,
			EndDate:      edu.EndDate,
			Description:  edu.Description,
		})
	}
	return rows
}

func workExperienceRows(resumeID uint, entries []models.WorkExperienceData) []models.WorkExperience {
	rows := make([]models.WorkExperience, 0, len(entries))
	for _, exp := range entries {
		row := models.WorkExperience{
			ResumeID:     resumeID,
			Company:      exp.Company,
			JobTitle:     exp.JobTitle,
			IsCurrentJob: exp.IsCurrentJob,
			Description:  exp.Description,
		}

		// A date that fails to normalize stays NULL rather than failing
		// the whole save.
		if start, err := services.NormalizeDate(exp.StartDate); err == nil {
			row.StartDate = &start
		}
		// An ongoing role keeps a NULL end date regardless of what the
		// extraction produced.
		if !exp.IsCurrentJob {
			if end, err := services.NormalizeDate(exp.EndDate); err == nil {
				row.EndDate = &end
			}
		}

		rows = append(rows, row)
	}
	return rows
}

func skillRows(resumeID uint, entries []models.SkillData) []models.Skill {
	rows := make([]models.Skill, 0, len(entries))
	for _, skill := range entries {
		rows = append(rows, models.Skill{
			ResumeID: resumeID,
			Name:     skill.Name,
			Category: skill.Category,
		})
	}
	return rows
}
