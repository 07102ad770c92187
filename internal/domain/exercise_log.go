package domain

import "time"

// DayLayout formats the calendar-day component of an exercise log's uniqueness key.
const DayLayout = "2006-01-02"

// ExerciseLog records that a user completed a video's exercise.
// At most one log exists per (UserID, VideoID, Day).
type ExerciseLog struct {
	ID           string    `bson:"_id" json:"id"`
	UserID       string    `bson:"userId" json:"userId"`
	MachineID    string    `bson:"machineId" json:"machineId"`
	MachineName  string    `bson:"machineName" json:"machineName"`
	VideoID      string    `bson:"videoId" json:"videoId"`
	VideoTitle   string    `bson:"videoTitle" json:"videoTitle"`
	MuscleGroups []string  `bson:"muscleGroups" json:"muscleGroups"`
	MainMuscle   string    `bson:"mainMuscle" json:"mainMuscle"`
	Timestamp    time.Time `bson:"timestamp" json:"timestamp"` // Server assigned
	Day          string    `bson:"day" json:"day"`             // YYYY-MM-DD in the user's zone
}
