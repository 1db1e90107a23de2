package repository

import (
	"errors"

	"wellmind_backend/internal/model"

	"gorm.io/gorm"
)

// ScreeningRepository is the read-only accessor over the versioned content
// catalog. Lookups report not-found as a nil result, not an error; the
// engine owns no catalog mutations.
type ScreeningRepository struct {
	DB *gorm.DB
}

func NewScreeningRepository(db *gorm.DB) *ScreeningRepository {
	return &ScreeningRepository{DB: db}
}

func (r *ScreeningRepository) WithTx(tx *gorm.DB) *ScreeningRepository {
	return &ScreeningRepository{DB: tx}
}

func (r *ScreeningRepository) FindScreeningByID(id uint) (*model.Screening, error) {
	var s model.Screening
	err := r.DB.First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ScreeningRepository) FindVersionByID(id uint) (*model.ScreeningVersion, error) {
	var v model.ScreeningVersion
	err := r.DB.First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// FindActiveVersion resolves a screening's active-version pointer.
func (r *ScreeningRepository) FindActiveVersion(screeningID uint) (*model.ScreeningVersion, error) {
	s, err := r.FindScreeningByID(screeningID)
	if err != nil || s == nil {
		return nil, err
	}
	if s.ActiveVersionID == nil {
		return nil, nil
	}
	return r.FindVersionByID(*s.ActiveVersionID)
}

// ListQuestions returns a version's questions with their options, both in
// display order.
func (r *ScreeningRepository) ListQuestions(versionID uint) ([]model.ScreeningQuestion, error) {
	var qs []model.ScreeningQuestion
	err := r.DB.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc, id asc")
		}).
		Where("screening_version_id = ?", versionID).
		Order("display_order asc, id asc").
		Find(&qs).Error
	return qs, err
}

func (r *ScreeningRepository) FindQuestionByID(id uint) (*model.ScreeningQuestion, error) {
	var q model.ScreeningQuestion
	err := r.DB.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc, id asc")
		}).
		First(&q, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// VersionInUse reports whether any session references the version. A version
// in use is immutable; authoring tools must check this before editing.
func (r *ScreeningRepository) VersionInUse(versionID uint) (bool, error) {
	var count int64
	err := r.DB.Model(&model.ScreeningSessionScreening{}).
		Where("screening_version_id = ?", versionID).
		Count(&count).Error
	return count > 0, err
}
