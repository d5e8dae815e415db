package models

import (
	"time"

	"gorm.io/gorm"
)

// Alert is the audit row recorded for each SOS dispatch.
type Alert struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"userId"`
	AlertType string    `json:"alertType" gorm:"size:32"` // "SOS"
	Location  Location  `json:"location" gorm:"embedded"`
	Attempted int       `json:"attempted"`
	Failed    int       `json:"failed"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

func CreateAlert(db *gorm.DB, alert *Alert) error {
	return db.Create(alert).Error
}

// GetAlertsByUser returns a user's SOS history, newest first.
func GetAlertsByUser(db *gorm.DB, userID uint) ([]Alert, error) {
	var alerts []Alert
	if err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&alerts).Error; err != nil {
		return nil, err
	}
	return alerts, nil
}
