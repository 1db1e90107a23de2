package model

// ScreeningSession is one participant's run through a flow. Completed is
// terminal and CrisisIndicated is sticky; neither ever reverts to false.
// swagger:model ScreeningSession
type ScreeningSession struct {
	BaseModel
	ScreeningFlowVersionID uint `gorm:"index;type:bigint unsigned" json:"screeningFlowVersionId"`
	TargetAccountID        uint `gorm:"index;type:bigint unsigned" json:"targetAccountId"`
	CreatedByAccountID     uint `gorm:"index;type:bigint unsigned" json:"createdByAccountId"`
	Completed              bool `gorm:"default:false" json:"completed"`
	CrisisIndicated        bool `gorm:"default:false" json:"crisisIndicated"`
}

func (ScreeningSession) TableName() string {
	return "screening_sessions"
}

// ScreeningSessionScreening is one visited screening within a session.
// ScreeningOrder values form a contiguous ascending sequence starting at 1;
// the highest-order row is the current screening and the only one that may
// still be in progress.
// swagger:model ScreeningSessionScreening
type ScreeningSessionScreening struct {
	BaseModel
	ScreeningSessionID uint `gorm:"index;type:bigint unsigned" json:"screeningSessionId"`
	ScreeningVersionID uint `gorm:"index;type:bigint unsigned" json:"screeningVersionId"`
	ScreeningOrder     int  `gorm:"not null" json:"screeningOrder"`
	Completed          bool `gorm:"default:false" json:"completed"`
	Score              int  `gorm:"default:0" json:"score"`
}

func (ScreeningSessionScreening) TableName() string {
	return "screening_session_screenings"
}
