package models

import "time"

// DateLayout is the display format posts carry. The day is zero-padded, so
// early-month posts read "September 05, 2026".
const DateLayout = "January 02, 2006"

// Post represents a blog entry authored by the admin account.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Title     string    `gorm:"size:250;uniqueIndex;not null" json:"title"`
	Subtitle  string    `gorm:"size:250;not null" json:"subtitle"`
	Date      string    `gorm:"size:250;not null" json:"date"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	ImgURL    string    `gorm:"size:250;not null" json:"img_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Comments  []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments"`
}
