package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"clockdeck/internal/core/model"
)

func at(year int, month time.Month, day, hour, minute, second int) time.Time {
	return time.Date(year, month, day, hour, minute, second, 0, time.Local)
}

func TestNextFire(t *testing.T) {
	tests := []struct {
		name  string
		now   time.Time
		endAt model.EndAt
		want  time.Time
	}{
		{
			name:  "passed today rolls to tomorrow",
			now:   at(2026, 10, 15, 14, 5, 0),
			endAt: model.EndAt{Hour: 2, Minute: 0, Phase: model.PM},
			want:  at(2026, 10, 16, 14, 0, 0),
		},
		{
			name:  "later today",
			now:   at(2026, 10, 15, 6, 30, 0),
			endAt: model.EndAt{Hour: 7, Minute: 15, Phase: model.AM},
			want:  at(2026, 10, 15, 7, 15, 0),
		},
		{
			name:  "exactly now rolls to tomorrow",
			now:   at(2026, 10, 15, 7, 15, 0),
			endAt: model.EndAt{Hour: 7, Minute: 15, Phase: model.AM},
			want:  at(2026, 10, 16, 7, 15, 0),
		},
		{
			name:  "twelve AM is midnight",
			now:   at(2026, 10, 15, 23, 0, 0),
			endAt: model.EndAt{Hour: 12, Minute: 0, Phase: model.AM},
			want:  at(2026, 10, 16, 0, 0, 0),
		},
		{
			name:  "twelve PM is noon",
			now:   at(2026, 10, 15, 9, 0, 0),
			endAt: model.EndAt{Hour: 12, Minute: 30, Phase: model.PM},
			want:  at(2026, 10, 15, 12, 30, 0),
		},
		{
			name:  "month rollover",
			now:   at(2026, 1, 31, 22, 0, 0),
			endAt: model.EndAt{Hour: 6, Minute: 0, Phase: model.AM},
			want:  at(2026, 2, 1, 6, 0, 0),
		},
		{
			name:  "year rollover",
			now:   at(2026, 12, 31, 23, 59, 30),
			endAt: model.EndAt{Hour: 11, Minute: 59, Phase: model.PM},
			want:  at(2027, 1, 1, 23, 59, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextFire(tt.now, tt.endAt))
		})
	}
}

func TestRemaining(t *testing.T) {
	now := at(2026, 10, 15, 14, 5, 0)
	hours, minutes := Remaining(now, at(2026, 10, 16, 14, 0, 0))
	assert.Equal(t, 23, hours)
	assert.Equal(t, 55, minutes)

	hours, minutes = Remaining(now, now.Add(59*time.Second))
	assert.Zero(t, hours)
	assert.Zero(t, minutes)

	hours, minutes = Remaining(now, now.Add(-time.Minute))
	assert.Zero(t, hours)
	assert.Zero(t, minutes)
}

func TestInRingWindow(t *testing.T) {
	fire := at(2026, 10, 15, 7, 0, 0)
	assert.False(t, InRingWindow(at(2026, 10, 15, 6, 59, 0), fire))
	assert.True(t, InRingWindow(at(2026, 10, 15, 6, 59, 1), fire))
	assert.True(t, InRingWindow(at(2026, 10, 15, 6, 59, 59), fire))
	assert.False(t, InRingWindow(at(2026, 10, 15, 5, 59, 30), fire), "hours left blocks ringing")
}
