package model

// ScreeningFlow is an institution's branchable composition of screenings.
// swagger:model ScreeningFlow
type ScreeningFlow struct {
	BaseModel
	InstitutionID   uint   `gorm:"index;type:bigint unsigned" json:"institutionId"`
	Name            string `gorm:"size:255;not null" json:"name"`
	ActiveVersionID *uint  `gorm:"type:bigint unsigned" json:"activeVersionId"`
}

func (ScreeningFlow) TableName() string {
	return "screening_flows"
}

// ScreeningFlowVersion pins the initial screening and the orchestration rule
// that decides branching, crisis indication and termination for a session.
// swagger:model ScreeningFlowVersion
type ScreeningFlowVersion struct {
	BaseModel
	ScreeningFlowID    uint   `gorm:"index;type:bigint unsigned" json:"screeningFlowId"`
	VersionNumber      int    `gorm:"default:1" json:"versionNumber"`
	InitialScreeningID uint   `gorm:"type:bigint unsigned;not null" json:"initialScreeningId"`
	OrchestrationRule  string `gorm:"type:text;not null" json:"orchestrationRule"`
}

func (ScreeningFlowVersion) TableName() string {
	return "screening_flow_versions"
}
