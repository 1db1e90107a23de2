package model

// AnswerFormat constrains how a question is answered and therefore how
// submitted answers are validated.
type AnswerFormat string

const (
	SingleSelect AnswerFormat = "single_select"
	MultiSelect  AnswerFormat = "multi_select"
	FreeText     AnswerFormat = "free_text"
)

// ContentHint marks a free-text question whose text must normalize to a
// well-known format before it is accepted.
type ContentHint string

const (
	HintNone        ContentHint = ""
	HintPhoneNumber ContentHint = "phone_number"
	HintEmail       ContentHint = "email_address"
)

// Screening is a named instrument. ActiveVersionID points at the version a
// new session screening is created against; versions already referenced by a
// session are immutable.
// swagger:model Screening
type Screening struct {
	BaseModel
	Name            string `gorm:"size:255;not null" json:"name"`
	ActiveVersionID *uint  `gorm:"type:bigint unsigned" json:"activeVersionId"`
}

func (Screening) TableName() string {
	return "screenings"
}

// swagger:model ScreeningVersion
type ScreeningVersion struct {
	BaseModel
	ScreeningID   uint                `gorm:"index;type:bigint unsigned" json:"screeningId"`
	VersionNumber int                 `gorm:"default:1" json:"versionNumber"`
	ScoringRule   string              `gorm:"type:text;not null" json:"scoringRule"`
	Questions     []ScreeningQuestion `gorm:"foreignKey:ScreeningVersionID" json:"questions,omitempty"`
}

func (ScreeningVersion) TableName() string {
	return "screening_versions"
}

// swagger:model ScreeningQuestion
type ScreeningQuestion struct {
	BaseModel
	ScreeningVersionID uint                    `gorm:"index;type:bigint unsigned" json:"screeningVersionId"`
	Text               string                  `gorm:"type:text;not null" json:"text"`
	AnswerFormat       AnswerFormat            `gorm:"size:30;not null" json:"answerFormat"`
	ContentHint        ContentHint             `gorm:"size:30;default:''" json:"contentHint,omitempty"`
	DisplayOrder       int                     `gorm:"default:0" json:"displayOrder"`
	Options            []ScreeningAnswerOption `gorm:"foreignKey:ScreeningQuestionID" json:"options,omitempty"`
}

func (ScreeningQuestion) TableName() string {
	return "screening_questions"
}

// swagger:model ScreeningAnswerOption
type ScreeningAnswerOption struct {
	BaseModel
	ScreeningQuestionID uint   `gorm:"index;type:bigint unsigned" json:"screeningQuestionId"`
	Text                string `gorm:"type:text" json:"text"`
	Score               int    `gorm:"default:0" json:"score"`
	IndicatesCrisis     bool   `gorm:"default:false" json:"indicatesCrisis"`
	DisplayOrder        int    `gorm:"default:0" json:"displayOrder"`
}

func (ScreeningAnswerOption) TableName() string {
	return "screening_answer_options"
}
