package models

import "github.com/itops-inc/itdesk/internal/shared/constants"

type EmailRequestModel struct {
	ID          uint   `gorm:"primaryKey"`
	ThaiName    string `gorm:"size:200;not null"`
	EnglishName string `gorm:"size:200;not null"`
	Phone       string `gorm:"size:20"`
	Nickname    string `gorm:"size:50"`
	Position    string `gorm:"size:100"`
	Department  string `gorm:"size:100"`
	ReplyEmail  string `gorm:"size:255;not null"`
	RequestedBy uint   `gorm:"not null;index"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (EmailRequestModel) TableName() string {
	return constants.TableEmailRequests
}
