package model

// ScreeningAnswer is an append-only ledger row. Rows are never updated or
// deleted; re-answering a question appends new rows and the projection in
// the answer repository decides which row is current. SubmissionID groups
// the rows written by one submission; timestamps are informational only
// since MySQL truncates them too coarsely to discriminate batches.
// swagger:model ScreeningAnswer
type ScreeningAnswer struct {
	BaseModel
	ScreeningSessionScreeningID uint   `gorm:"index;type:bigint unsigned" json:"screeningSessionScreeningId"`
	ScreeningAnswerOptionID     uint   `gorm:"index;type:bigint unsigned" json:"screeningAnswerOptionId"`
	CreatedByAccountID          uint   `gorm:"index;type:bigint unsigned" json:"createdByAccountId"`
	SubmissionID                string `gorm:"size:36;index" json:"submissionId"`
	Text                        string `gorm:"type:text" json:"text,omitempty"`
}

func (ScreeningAnswer) TableName() string {
	return "screening_answers"
}
