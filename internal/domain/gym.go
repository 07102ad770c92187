package domain

// DefaultGymColor is used when a gym has no brand color configured.
const DefaultGymColor = "#FDD835"

// Gym is the master record for a gym location.
type Gym struct {
	ID       string `bson:"_id" json:"id"`
	Address  string `bson:"address" json:"address"`
	Name     string `bson:"name" json:"name" validate:"required"`
	Owner    string `bson:"owner" json:"owner"`
	Phone    string `bson:"phone" json:"phone"`
	IsActive bool   `bson:"isActive" json:"isActive"`
	Color    string `bson:"color,omitempty" json:"color,omitempty" validate:"omitempty,hexcolor"` // Brand color, hex
}

// ApplyDefaults fills optional fields that have a documented default.
func (g *Gym) ApplyDefaults() {
	if g.Color == "" {
		g.Color = DefaultGymColor
	}
}

// GymMachine links a machine to a gym. A machine may be linked to several gyms.
type GymMachine struct {
	ID        string `bson:"_id,omitempty" json:"id,omitempty"`
	GymID     string `bson:"gymId" json:"gymId"`
	MachineID string `bson:"machineId" json:"machineId"`
}
