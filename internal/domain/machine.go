package domain

import (
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Machine is a piece of gym equipment with its instructional videos.
type Machine struct {
	ID            string  `bson:"_id" json:"id"`
	GymID         string  `bson:"gymId,omitempty" json:"gymId,omitempty"` // Direct link, optional (see GymMachine)
	Name          string  `bson:"name" json:"name" validate:"required"`
	Description   string  `bson:"description" json:"description"`
	ImageURL      string  `bson:"imageUrl" json:"imageUrl"`
	DefaultVideos []Video `bson:"defaultVideos" json:"defaultVideos" validate:"dive"` // Order drives the tutorial carousel
}

// Video is an instructional video for a machine.
type Video struct {
	ID            string            `bson:"id" json:"id"`
	Title         string            `bson:"title" json:"title" validate:"required"`
	URLVideo      string            `bson:"urlVideo" json:"urlVideo"`
	Cover         string            `bson:"cover" json:"cover"`
	MusclesWorked map[string]Muscle `bson:"musclesWorked" json:"musclesWorked" validate:"dive"`
	Segments      []Segment         `bson:"segments,omitempty" json:"segments,omitempty" validate:"dive"`
}

// Muscle is the involvement of one muscle group in a video. Weights need not sum to 100.
type Muscle struct {
	Weight int    `bson:"weight" json:"weight" validate:"min=0,max=100"`
	Icon   string `bson:"icon" json:"icon"`
}

// Segment is a timed sub-range of a video paired with a coaching tip. Times are milliseconds.
type Segment struct {
	ID    string `bson:"id" json:"id"`
	Start int64  `bson:"start" json:"start" validate:"min=0"`
	End   int64  `bson:"end" json:"end" validate:"gtfield=Start"`
	Tip   string `bson:"tip" json:"tip"`
}

// EnsureIDs assigns ids to videos and segments that were stored without one.
// Ids derive from the machine id and the item's position, so every read of
// the same record yields the same ids.
func (m *Machine) EnsureIDs() {
	for i := range m.DefaultVideos {
		v := &m.DefaultVideos[i]
		if v.ID == "" {
			v.ID = derivedID(m.ID, strconv.Itoa(i))
		}
		for j := range v.Segments {
			if v.Segments[j].ID == "" {
				v.Segments[j].ID = derivedID(m.ID, strconv.Itoa(i), strconv.Itoa(j))
			}
		}
	}
}

func derivedID(parts ...string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte("machine/"+strings.Join(parts, "/"))).String()
}

// FindVideo returns the machine's video with the given id.
func (m *Machine) FindVideo(videoID string) (*Video, bool) {
	for i := range m.DefaultVideos {
		if m.DefaultVideos[i].ID == videoID {
			return &m.DefaultVideos[i], true
		}
	}
	return nil, false
}

// MainMuscle returns the muscle with the highest weight.
// Ties go to the lexicographically smallest name so the result does not
// depend on map iteration order. Returns "" when no muscles are set.
func (v *Video) MainMuscle() string {
	main := ""
	best := -1
	for name, m := range v.MusclesWorked {
		if m.Weight > best || (m.Weight == best && name < main) {
			main = name
			best = m.Weight
		}
	}
	return main
}

// MuscleGroups lists the worked muscles, heaviest first, ties by name.
func (v *Video) MuscleGroups() []string {
	names := make([]string, 0, len(v.MusclesWorked))
	for name := range v.MusclesWorked {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		wi, wj := v.MusclesWorked[names[i]].Weight, v.MusclesWorked[names[j]].Weight
		if wi != wj {
			return wi > wj
		}
		return names[i] < names[j]
	})
	return names
}
