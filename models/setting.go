package models

type Setting struct {
	ID    string `gorm:"primaryKey;size:36" json:"id"`
	Key   string `gorm:"size:100;uniqueIndex;not null" json:"key"`
	Value string `gorm:"type:text;not null" json:"value"`
}

func (Setting) TableName() string {
	return "settings"
}
