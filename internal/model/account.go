package model

type AccountRole string

const (
	Patient   AccountRole = "patient"
	Clinician AccountRole = "clinician"
	Admin     AccountRole = "admin"
)

// swagger:model Account
type Account struct {
	BaseModel
	Name          string      `gorm:"size:255;not null" json:"name"`
	Email         string      `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password      string      `gorm:"size:255;not null" json:"-"`
	Role          AccountRole `gorm:"size:20;default:'patient'" json:"role"`
	InstitutionID uint        `gorm:"index;type:bigint unsigned" json:"institutionId"`
}

func (Account) TableName() string {
	return "accounts"
}
