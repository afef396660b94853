package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID        string    `gorm:"size:36;primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Slug      string    `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Published bool      `gorm:"not null;default:false;index" json:"published"`
	AuthorID  string    `gorm:"size:36;not null;index" json:"authorId"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Author   *Author   `gorm:"foreignKey:AuthorID;constraint:-" json:"author,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"comments,omitempty"`

	// Filled only by list queries.
	CommentCount *int64 `gorm:"->;-:migration" json:"commentCount,omitempty"`
	Excerpt      string `gorm:"-" json:"excerpt,omitempty"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

type Comment struct {
	ID        string    `gorm:"size:36;primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	AuthorID  string    `gorm:"size:36;not null;index" json:"authorId"`
	PostID    string    `gorm:"size:36;not null;index" json:"postId"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Author *Author `gorm:"foreignKey:AuthorID;constraint:-" json:"author,omitempty"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
