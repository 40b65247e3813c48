package domain

import "time"

type Course struct {
	ID           uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug         string    `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Title        string    `gorm:"column:title;not null" json:"title"`
	Subtitle     string    `gorm:"column:subtitle" json:"subtitle"`
	Description  string    `gorm:"column:description;type:text" json:"description"`
	Category     string    `gorm:"column:category;index" json:"category"`
	Price        float64   `gorm:"column:price;type:numeric" json:"price"`
	Currency     string    `gorm:"column:currency;default:EUR" json:"currency"`
	ThumbnailURL string    `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	IsPublished  bool      `gorm:"column:is_published;default:false" json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseMapping associates a legacy product identifier with a course.
type CourseMapping struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID string    `gorm:"column:product_id;uniqueIndex;not null" json:"product_id"`
	CourseID  uint64    `gorm:"column:course_id;not null" json:"course_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (CourseMapping) TableName() string {
	return "course_mapping"
}

type CourseFilter struct {
	Category string `query:"category"`
	Search   string `query:"search"`
	Limit    int    `query:"limit"`
}
