package model

import "time"

// Genre represents a movie genre ("Drama", "Comedy", …) used to classify titles.
// Names are unique across the catalog; comparisons are case-insensitive at the
// service layer but the DB constraint is on the raw value.
type Genre struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:text;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// TableName overrides GORM's pluralization — the table has always been
// named in the singular and every consumer depends on that.
func (Genre) TableName() string { return "genre" }
