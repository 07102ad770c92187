package service

import (
	"context"
	"innovafit/gym-backend/internal/domain"
	"innovafit/gym-backend/internal/repository/memory"
	"reflect"
	"testing"
	"time"
)

func TestMuscleDistribution(t *testing.T) {
	logs := []domain.ExerciseLog{
		{MuscleGroups: []string{"Cuádriceps"}},
		{MuscleGroups: []string{"Cuádriceps", "Glúteos"}},
	}
	want := map[string]int{"Cuádriceps": 2, "Glúteos": 1}
	if got := MuscleDistribution(logs); !reflect.DeepEqual(got, want) {
		t.Fatalf("MuscleDistribution() = %v, want %v", got, want)
	}
	repeated := []domain.ExerciseLog{
		{MuscleGroups: []string{"Cuádriceps", "Cuádriceps"}},
		{MuscleGroups: []string{"Glúteos"}},
	}
	if got := MuscleDistribution(repeated); !reflect.DeepEqual(got, map[string]int{"Cuádriceps": 1, "Glúteos": 1}) {
		t.Fatalf("MuscleDistribution(repeated) = %v, want each log counted once per muscle", got)
	}
	if got := MuscleDistribution(nil); len(got) != 0 {
		t.Fatalf("MuscleDistribution(nil) = %v, want empty", got)
	}
}

func TestRecentLogs(t *testing.T) {
	base := time.Date(2026, 10, 12, 8, 0, 0, 0, time.UTC)
	var logs []domain.ExerciseLog
	for i := 0; i < 7; i++ {
		logs = append(logs, domain.ExerciseLog{ID: string(rune('a' + i)), Timestamp: base.Add(time.Duration(i) * time.Hour)})
	}

	cases := []struct {
		name  string
		limit int
		want  []string
	}{
		{"default", 0, []string{"g", "f", "e", "d", "c"}},
		{"negative", -1, []string{"g", "f", "e", "d", "c"}},
		{"two", 2, []string{"g", "f"}},
		{"more than available", 20, []string{"g", "f", "e", "d", "c", "b", "a"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := RecentLogs(logs, c.limit)
			ids := make([]string, len(got))
			for i, l := range got {
				ids[i] = l.ID
			}
			if !reflect.DeepEqual(ids, c.want) {
				t.Fatalf("RecentLogs(%d) = %v, want %v", c.limit, ids, c.want)
			}
		})
	}
	if logs[0].ID != "a" {
		t.Fatal("RecentLogs reordered its input")
	}
}

func TestWeekdayCounts(t *testing.T) {
	logs := []domain.ExerciseLog{
		{Timestamp: time.Date(2026, 10, 12, 10, 0, 0, 0, time.UTC)}, // Monday
		{Timestamp: time.Date(2026, 10, 12, 18, 0, 0, 0, time.UTC)}, // Monday
		{Timestamp: time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)}, // Sunday
	}
	want := [7]int{2, 0, 0, 0, 0, 0, 1}
	if got := WeekdayCounts(logs, time.UTC); got != want {
		t.Fatalf("WeekdayCounts() = %v, want %v", got, want)
	}

	// 02:00 UTC Tuesday is still Monday evening five hours west.
	west := time.FixedZone("UTC-5", -5*3600)
	if got := WeekdayCounts([]domain.ExerciseLog{{Timestamp: time.Date(2026, 10, 13, 2, 0, 0, 0, time.UTC)}}, west); got[0] != 1 {
		t.Fatalf("WeekdayCounts(west) = %v, want Monday bucket", got)
	}
}

func TestFetchLogsForCurrentWeek(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := store.ExerciseLogs()
	entries := []domain.ExerciseLog{
		{ID: "prev", UserID: "u_1", VideoID: "v_1", Day: "2026-10-11", Timestamp: time.Date(2026, 10, 11, 23, 0, 0, 0, time.UTC), MuscleGroups: []string{"Pecho"}},
		{ID: "mon", UserID: "u_1", VideoID: "v_1", Day: "2026-10-12", Timestamp: time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC), MuscleGroups: []string{"Cuádriceps"}},
		{ID: "wed", UserID: "u_1", VideoID: "v_2", Day: "2026-10-14", Timestamp: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC), MuscleGroups: []string{"Cuádriceps", "Glúteos"}},
		{ID: "other", UserID: "u_2", VideoID: "v_1", Day: "2026-10-14", Timestamp: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)},
	}
	for i := range entries {
		if err := repo.Create(ctx, &entries[i]); err != nil {
			t.Fatal(err)
		}
	}

	svc := NewHistoryService(repo, fixedClock(time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)))
	logs, err := svc.FetchLogsForCurrentWeek(ctx, "u_1", time.UTC)
	if err != nil {
		t.Fatalf("FetchLogsForCurrentWeek() error = %v", err)
	}
	if len(logs) != 2 || logs[0].ID != "wed" || logs[1].ID != "mon" {
		t.Fatalf("FetchLogsForCurrentWeek() = %+v", logs)
	}

	summary, err := svc.WeeklySummary(ctx, "u_1", time.UTC)
	if err != nil {
		t.Fatalf("WeeklySummary() error = %v", err)
	}
	if summary.TotalLogs != 2 || summary.MuscleDistribution["Cuádriceps"] != 2 || summary.WeekdayCounts[2] != 1 {
		t.Fatalf("WeeklySummary() = %+v", summary)
	}
	if !summary.WeekStart.Equal(time.Date(2026, 10, 12, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("WeekStart = %v", summary.WeekStart)
	}
}
