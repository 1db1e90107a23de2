package service

import (
	"wellmind_backend/internal/model"
	"wellmind_backend/internal/repository"
)

// ScreeningCatalogService is the read-only view over the content and flow
// catalogs. Not-found is an empty result, never an error; the engine owns no
// catalog mutations.
type ScreeningCatalogService struct {
	Catalog *repository.ScreeningRepository
	Flows   *repository.ScreeningFlowRepository
}

func NewScreeningCatalogService(catalog *repository.ScreeningRepository, flows *repository.ScreeningFlowRepository) *ScreeningCatalogService {
	return &ScreeningCatalogService{Catalog: catalog, Flows: flows}
}

func (s *ScreeningCatalogService) ListFlows(institutionID uint) ([]model.ScreeningFlow, error) {
	return s.Flows.ListFlowsByInstitution(institutionID)
}

// FlowDetail joins a flow with its active version.
type FlowDetail struct {
	Flow          model.ScreeningFlow         `json:"flow"`
	ActiveVersion *model.ScreeningFlowVersion `json:"activeVersion,omitempty"`
}

func (s *ScreeningCatalogService) GetFlow(id uint) (*FlowDetail, error) {
	flow, err := s.Flows.FindFlowByID(id)
	if err != nil || flow == nil {
		return nil, err
	}
	version, err := s.Flows.FindActiveVersion(id)
	if err != nil {
		return nil, err
	}
	return &FlowDetail{Flow: *flow, ActiveVersion: version}, nil
}

// ScreeningDetail joins a screening with its active version's ordered
// questions and options, ready for a front end to render.
type ScreeningDetail struct {
	Screening     model.Screening           `json:"screening"`
	ActiveVersion *model.ScreeningVersion   `json:"activeVersion,omitempty"`
	Questions     []model.ScreeningQuestion `json:"questions,omitempty"`
}

func (s *ScreeningCatalogService) GetScreening(id uint) (*ScreeningDetail, error) {
	screening, err := s.Catalog.FindScreeningByID(id)
	if err != nil || screening == nil {
		return nil, err
	}
	detail := &ScreeningDetail{Screening: *screening}

	version, err := s.Catalog.FindActiveVersion(id)
	if err != nil {
		return nil, err
	}
	if version == nil {
		return detail, nil
	}
	detail.ActiveVersion = version

	questions, err := s.Catalog.ListQuestions(version.ID)
	if err != nil {
		return nil, err
	}
	detail.Questions = questions
	return detail, nil
}
