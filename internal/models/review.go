package models

import "time"

const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// Review is authored by an anonymous visitor. The visitorId string is the
// only ownership credential: edit, delete and like all key off it.
type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"    json:"id"`
	VisitorID string    `gorm:"index;not null"              json:"visitorId"`
	Nom       string    `gorm:"not null"                    json:"nom"`
	Prenom    string    `gorm:"not null"                    json:"prenom"`
	Photo     string    `gorm:"not null"                    json:"photo"`
	Message   string    `gorm:"size:1000;not null"          json:"message"`
	Status    string    `gorm:"not null;default:approved;index" json:"status"`
	Likes     int       `gorm:"default:0"                   json:"likes"`
	LikedBy   []string  `gorm:"serializer:json"             json:"likedBy"`
	CreatedAt time.Time `gorm:"index"                       json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToggleLike flips the visitor's like. Presence in LikedBy is the sole
// state; the counter follows it and never drops below zero. Returns the
// resulting liked state for the visitor.
func (r *Review) ToggleLike(visitorID string) bool {
	for i, id := range r.LikedBy {
		if id == visitorID {
			r.LikedBy = append(r.LikedBy[:i], r.LikedBy[i+1:]...)
			if r.Likes > 0 {
				r.Likes--
			}
			return false
		}
	}
	r.LikedBy = append(r.LikedBy, visitorID)
	r.Likes++
	return true
}
