package domain

// Tag is the record behind a QR code stuck on a machine.
// Tags are created by operators and never modified afterwards.
type Tag struct {
	ID        string `bson:"_id" json:"tag"` // The tag string itself
	GymID     string `bson:"gymId" json:"gymId"`
	MachineID string `bson:"machineId" json:"machineId"`
}

// TagRef is the result of resolving a tag.
type TagRef struct {
	GymID     string `json:"gymId"`
	MachineID string `json:"machineId"`
}

// Valid reports whether both ids are present.
func (t Tag) Valid() bool {
	return t.GymID != "" && t.MachineID != ""
}
