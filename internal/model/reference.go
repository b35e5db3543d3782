// internal/model/reference.go
package model

import "time"

// Industry and AgeRange are read-only lists offered to integrations when they
// report platform users.
type Industry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Industry  string    `gorm:"type:text;uniqueIndex;not null" json:"industry"`
	CreatedAt time.Time `json:"createdAt"`
}

type AgeRange struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AgeRange  string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"ageRange"`
	CreatedAt time.Time `json:"createdAt"`
}
