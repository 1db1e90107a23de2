package model

// swagger:model Institution
type Institution struct {
	BaseModel
	Name string `gorm:"size:255;not null" json:"name"`
}

func (Institution) TableName() string {
	return "institutions"
}
