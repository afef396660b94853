package model

import "time"

const (
	ActionUserRegistered = "user.registered"
	ActionUserUpdated    = "user.updated"
	ActionUserDeleted    = "user.deleted"
	ActionPostCreated    = "post.created"
	ActionPostUpdated    = "post.updated"
	ActionPostDeleted    = "post.deleted"
	ActionCommentCreated = "comment.created"
	ActionCommentUpdated = "comment.updated"
	ActionCommentDeleted = "comment.deleted"
)

// Activity is an audit entry recorded off the request path by the activity worker.
type Activity struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Action       string    `gorm:"size:32;not null;index" json:"action"`
	ActorID      string    `gorm:"size:36;not null;index" json:"actorId"`
	ResourceType string    `gorm:"size:16;not null" json:"resourceType"`
	ResourceID   string    `gorm:"size:36;not null" json:"resourceId"`
	CreatedAt    time.Time `json:"createdAt"`
}
