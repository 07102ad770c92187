package domain

import (
	"reflect"
	"testing"
)

func TestVideoMainMuscle(t *testing.T) {
	tests := []struct {
		name    string
		muscles map[string]Muscle
		want    string
	}{
		{
			name:    "clear winner",
			muscles: map[string]Muscle{"A": {Weight: 50}, "B": {Weight: 25}, "C": {Weight: 25}},
			want:    "A",
		},
		{
			name:    "tie goes to smallest name",
			muscles: map[string]Muscle{"Glúteos": {Weight: 40}, "Cuádriceps": {Weight: 40}, "Isquiotibiales": {Weight: 20}},
			want:    "Cuádriceps",
		},
		{
			name:    "zero weights",
			muscles: map[string]Muscle{"B": {Weight: 0}, "A": {Weight: 0}},
			want:    "A",
		},
		{
			name:    "no muscles",
			muscles: nil,
			want:    "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Repeat to shake out map iteration order dependence.
			for i := 0; i < 20; i++ {
				v := Video{MusclesWorked: tt.muscles}
				if got := v.MainMuscle(); got != tt.want {
					t.Fatalf("MainMuscle() = %q, want %q", got, tt.want)
				}
			}
		})
	}
}

func TestVideoMuscleGroupsOrdersByWeight(t *testing.T) {
	v := Video{MusclesWorked: map[string]Muscle{
		"Glúteos":    {Weight: 30},
		"Cuádriceps": {Weight: 60},
		"Gemelos":    {Weight: 30},
	}}
	want := []string{"Cuádriceps", "Gemelos", "Glúteos"}
	if got := v.MuscleGroups(); !reflect.DeepEqual(got, want) {
		t.Fatalf("MuscleGroups() = %v, want %v", got, want)
	}
}

func TestMachineEnsureIDsKeepsExistingAndFillsMissing(t *testing.T) {
	m := Machine{
		ID: "m_1",
		DefaultVideos: []Video{
			{ID: "v_1", Segments: []Segment{{ID: "s_1", Start: 0, End: 1000}, {Start: 1000, End: 2000}}},
			{Title: "sin id"},
		},
	}
	m.EnsureIDs()

	if m.DefaultVideos[0].ID != "v_1" {
		t.Fatalf("existing video id replaced: %q", m.DefaultVideos[0].ID)
	}
	if m.DefaultVideos[0].Segments[0].ID != "s_1" {
		t.Fatalf("existing segment id replaced: %q", m.DefaultVideos[0].Segments[0].ID)
	}
	if m.DefaultVideos[0].Segments[1].ID == "" {
		t.Fatal("expected generated segment id")
	}
	if m.DefaultVideos[1].ID == "" {
		t.Fatal("expected generated video id")
	}
	if m.DefaultVideos[1].Title != "sin id" {
		t.Fatal("video order changed")
	}

	again := Machine{
		ID: "m_1",
		DefaultVideos: []Video{
			{ID: "v_1", Segments: []Segment{{ID: "s_1", Start: 0, End: 1000}, {Start: 1000, End: 2000}}},
			{Title: "sin id"},
		},
	}
	again.EnsureIDs()
	if again.DefaultVideos[1].ID != m.DefaultVideos[1].ID || again.DefaultVideos[0].Segments[1].ID != m.DefaultVideos[0].Segments[1].ID {
		t.Fatal("generated ids differ between reads of the same machine")
	}

	other := Machine{ID: "m_2", DefaultVideos: []Video{{}, {}}}
	other.EnsureIDs()
	if other.DefaultVideos[0].ID == other.DefaultVideos[1].ID || other.DefaultVideos[1].ID == m.DefaultVideos[1].ID {
		t.Fatal("generated ids collide")
	}
}

func TestMachineFindVideo(t *testing.T) {
	m := Machine{DefaultVideos: []Video{{ID: "v_1", Title: "uno"}, {ID: "v_2", Title: "dos"}}}
	v, ok := m.FindVideo("v_2")
	if !ok || v.Title != "dos" {
		t.Fatalf("FindVideo(v_2) = %+v, %v", v, ok)
	}
	if _, ok := m.FindVideo("missing"); ok {
		t.Fatal("expected missing video to be absent")
	}
}

func TestUserProfileReconcileGym(t *testing.T) {
	p := UserProfile{ID: "u_1", GymID: "gym_2", Gym: &Gym{ID: "gym_1", Name: "InnovaFit Gym"}}
	p.ReconcileGym()
	if p.Gym.ID != "gym_2" {
		t.Fatalf("snapshot id = %q, want gym_2", p.Gym.ID)
	}

	noSnapshot := UserProfile{ID: "u_2", GymID: "gym_1"}
	noSnapshot.ReconcileGym()
	if noSnapshot.Gym != nil {
		t.Fatal("expected nil snapshot to stay nil")
	}
}

func TestGymApplyDefaults(t *testing.T) {
	g := Gym{ID: "gym_1"}
	g.ApplyDefaults()
	if g.Color != DefaultGymColor {
		t.Fatalf("Color = %q, want %q", g.Color, DefaultGymColor)
	}
	custom := Gym{Color: "#000000"}
	custom.ApplyDefaults()
	if custom.Color != "#000000" {
		t.Fatalf("custom color overwritten: %q", custom.Color)
	}
}

func TestFeedbackAnswerValid(t *testing.T) {
	if !AnswerGood.Valid() {
		t.Fatal("expected buena to be valid")
	}
	if FeedbackAnswer("meh").Valid() {
		t.Fatal("expected unknown answer to be invalid")
	}
}
