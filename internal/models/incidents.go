package models

import (
	"time"

	"gorm.io/gorm"
)

// Location is the canonical GPS shape. Every read path serves this nested
// object; nothing serves flat latitude/longitude fields.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Incident is a user-submitted safety report. Rows are immutable after
// creation; there is no edit or delete path.
type Incident struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"userId"` // stamped at write time, never read back
	Description string    `json:"description" gorm:"size:1024"`
	Cause       string    `json:"cause" gorm:"size:512"`
	ImageURI    *string   `json:"imageUri" gorm:"size:512"`
	Location    Location  `json:"location" gorm:"embedded"`
	Timestamp   time.Time `json:"timestamp" gorm:"column:reported_at;autoCreateTime;index"`
}

// CreateIncident writes one incident row. No idempotency key: two identical
// submissions create two rows.
func CreateIncident(db *gorm.DB, incident *Incident) error {
	return db.Create(incident).Error
}

// ListIncidents returns every incident, newest first.
func ListIncidents(db *gorm.DB) ([]Incident, error) {
	var incidents []Incident
	if err := db.Order("reported_at DESC, id DESC").Find(&incidents).Error; err != nil {
		return nil, err
	}
	return incidents, nil
}

// GetIncidentsByIDs fetches the given incidents, newest first.
func GetIncidentsByIDs(db *gorm.DB, ids []uint) ([]Incident, error) {
	var incidents []Incident
	if len(ids) == 0 {
		return incidents, nil
	}
	if err := db.Where("id IN ?", ids).Order("reported_at DESC, id DESC").Find(&incidents).Error; err != nil {
		return nil, err
	}
	return incidents, nil
}
