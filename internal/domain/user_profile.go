package domain

import "time"

// UserProfile is a member's profile. ID is the auth provider's subject id.
// Gym is a denormalized snapshot of the member's gym taken at save time; it
// may go stale relative to the master record, but GymID is authoritative.
type UserProfile struct {
	ID          string    `bson:"_id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	PhoneNumber string    `bson:"phoneNumber" json:"phoneNumber"`
	Age         int       `bson:"age" json:"age"`
	Gender      string    `bson:"gender" json:"gender"`
	GymID       string    `bson:"gymId" json:"gymId"`
	Gym         *Gym      `bson:"gym,omitempty" json:"gym,omitempty"`
	Weight      float64   `bson:"weight" json:"weight"` // kg
	Height      float64   `bson:"height" json:"height"` // cm
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// ReconcileGym forces the snapshot's id to match GymID.
func (p *UserProfile) ReconcileGym() {
	if p.Gym != nil && p.Gym.ID != p.GymID {
		p.Gym.ID = p.GymID
	}
}
