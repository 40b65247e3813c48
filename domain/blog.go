package domain

import "time"

type Blog struct {
	ID           uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Slug         string     `gorm:"column:slug;uniqueIndex;not null" json:"slug"`
	Title        string     `gorm:"column:title;not null" json:"title"`
	Excerpt      string     `gorm:"column:excerpt" json:"excerpt"`
	Content      string     `gorm:"column:content;type:text" json:"content,omitempty"`
	Category     string     `gorm:"column:category;index" json:"category"`
	Author       string     `gorm:"column:author" json:"author"`
	ThumbnailURL string     `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	IsPublished  bool       `gorm:"column:is_published;default:false" json:"is_published"`
	PublishedAt  *time.Time `gorm:"column:published_at" json:"published_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (Blog) TableName() string {
	return "blogs"
}

type BlogFilter struct {
	Category string `query:"category"`
	Search   string `query:"search"`
	Limit    int    `query:"limit"`
}
