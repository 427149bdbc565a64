package schedule

import (
	"math"
	"testing"

	"weekly-agenda/internal/model"
)

func task(id uint, start string, duration int) model.Task {
	return model.Task{ID: id, Date: "2024-01-15", StartTime: start, Duration: duration}
}

func TestFindConflict(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		candidate Slot
		siblings  []model.Task
		wantID    uint
	}{
		{
			name:      "overlap inside existing",
			candidate: Slot{Date: "2024-01-15", StartTime: "09:30", Duration: 30},
			siblings:  []model.Task{task(1, "09:00", 60)},
			wantID:    1,
		},
		{
			name:      "touching end is free",
			candidate: Slot{Date: "2024-01-15", StartTime: "10:00", Duration: 30},
			siblings:  []model.Task{task(1, "09:00", 60)},
		},
		{
			name:      "touching start is free",
			candidate: Slot{Date: "2024-01-15", StartTime: "08:00", Duration: 60},
			siblings:  []model.Task{task(1, "09:00", 60)},
		},
		{
			name:      "candidate covers existing",
			candidate: Slot{Date: "2024-01-15", StartTime: "08:00", Duration: 180},
			siblings:  []model.Task{task(1, "09:00", 15)},
			wantID:    1,
		},
		{
			name:      "first conflict wins",
			candidate: Slot{Date: "2024-01-15", StartTime: "09:00", Duration: 120},
			siblings:  []model.Task{task(1, "07:00", 60), task(2, "10:00", 30), task(3, "09:15", 15)},
			wantID:    2,
		},
		{
			name:      "no siblings",
			candidate: Slot{Date: "2024-01-15", StartTime: "09:00", Duration: 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindConflict(tt.candidate, tt.siblings)
			switch {
			case tt.wantID == 0 && got != nil:
				t.Errorf("unexpected conflict with task %d", got.ID)
			case tt.wantID != 0 && got == nil:
				t.Errorf("expected conflict with task %d, got none", tt.wantID)
			case tt.wantID != 0 && got.ID != tt.wantID:
				t.Errorf("conflict with task %d, want %d", got.ID, tt.wantID)
			}
		})
	}
}

func TestOverlapsIsSymmetric(t *testing.T) {
	t.Parallel()

	starts := []string{"08:00", "08:45", "09:00", "09:30", "10:00", "11:00"}
	durations := []int{15, 30, 60, 90}

	for _, as := range starts {
		for _, ad := range durations {
			for _, bs := range starts {
				for _, bd := range durations {
					a := Slot{Date: "2024-01-15", StartTime: as, Duration: ad}
					b := Slot{Date: "2024-01-15", StartTime: bs, Duration: bd}
					if Overlaps(a, b) != Overlaps(b, a) {
						t.Fatalf("Overlaps not symmetric for %+v and %+v", a, b)
					}

					aStart, aEnd, _ := a.span()
					bStart, bEnd, _ := b.span()
					want := aStart < bEnd && aEnd > bStart
					if got := FindConflict(a, []model.Task{{ID: 7, Date: b.Date, StartTime: b.StartTime, Duration: b.Duration}}) != nil; got != want {
						t.Fatalf("FindConflict(%+v, %+v) = %v, want %v", a, b, got, want)
					}
				}
			}
		}
	}
}

func TestFindConflictExcludingSelf(t *testing.T) {
	t.Parallel()

	self := task(4, "09:00", 60)
	others := []model.Task{task(5, "10:00", 60)}

	if got := FindConflict(SlotOf(self), others); got != nil {
		t.Errorf("unchanged task conflicted with %d", got.ID)
	}
	if got := FindConflict(SlotOf(self), append(others, self)); got == nil || got.ID != 4 {
		t.Error("expected a self-inclusive sibling set to report the task itself")
	}
}

func TestFindConflict_HugeDuration(t *testing.T) {
	t.Parallel()

	siblings := []model.Task{task(1, "09:00", 60)}
	candidate := Slot{Date: "2024-01-15", StartTime: "08:00", Duration: math.MaxInt}
	if got := FindConflict(candidate, siblings); got == nil || got.ID != 1 {
		t.Errorf("FindConflict() = %v, want task 1", got)
	}
	if !Overlaps(Slot{StartTime: "09:30", Duration: 30}, SlotOf(task(2, "08:00", math.MaxInt))) {
		t.Error("a stored slot with a huge duration must still block later starts")
	}
}
