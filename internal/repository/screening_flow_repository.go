package repository

import (
	"errors"

	"wellmind_backend/internal/model"

	"gorm.io/gorm"
)

type ScreeningFlowRepository struct {
	DB *gorm.DB
}

func NewScreeningFlowRepository(db *gorm.DB) *ScreeningFlowRepository {
	return &ScreeningFlowRepository{DB: db}
}

func (r *ScreeningFlowRepository) WithTx(tx *gorm.DB) *ScreeningFlowRepository {
	return &ScreeningFlowRepository{DB: tx}
}

func (r *ScreeningFlowRepository) FindFlowByID(id uint) (*model.ScreeningFlow, error) {
	var f model.ScreeningFlow
	err := r.DB.First(&f, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *ScreeningFlowRepository) FindFlowVersionByID(id uint) (*model.ScreeningFlowVersion, error) {
	var v model.ScreeningFlowVersion
	err := r.DB.First(&v, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *ScreeningFlowRepository) FindActiveVersion(flowID uint) (*model.ScreeningFlowVersion, error) {
	f, err := r.FindFlowByID(flowID)
	if err != nil || f == nil {
		return nil, err
	}
	if f.ActiveVersionID == nil {
		return nil, nil
	}
	return r.FindFlowVersionByID(*f.ActiveVersionID)
}

func (r *ScreeningFlowRepository) ListFlowsByInstitution(institutionID uint) ([]model.ScreeningFlow, error) {
	var flows []model.ScreeningFlow
	err := r.DB.Where("institution_id = ?", institutionID).Order("name asc").Find(&flows).Error
	return flows, err
}
