package stopwatch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func rankAll(elapsed ...int64) []Lap {
	var laps []Lap
	for _, value := range elapsed {
		laps = RankLap(laps, value)
	}
	return laps
}

func TestRankLapFirstHasNoFlags(t *testing.T) {
	got := rankAll(100)
	want := []Lap{{TS: 100, Diff: 100}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("laps mismatch (-want +got):\n%s", diff)
	}
}

func TestRankLapSecondSlower(t *testing.T) {
	got := rankAll(100, 300)
	want := []Lap{
		{TS: 300, Diff: 200, Slowest: true},
		{TS: 100, Diff: 100, Fastest: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("laps mismatch (-want +got):\n%s", diff)
	}
}

func TestRankLapSecondFaster(t *testing.T) {
	got := rankAll(200, 250)
	want := []Lap{
		{TS: 250, Diff: 50, Fastest: true},
		{TS: 200, Diff: 200, Slowest: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("laps mismatch (-want +got):\n%s", diff)
	}
}

func TestRankLapSecondEqualIsSlowest(t *testing.T) {
	got := rankAll(100, 200)
	assert.True(t, got[0].Slowest)
	assert.True(t, got[1].Fastest)
}

func TestRankLapMiddleGetsNoFlag(t *testing.T) {
	got := rankAll(100, 300, 450)
	want := []Lap{
		{TS: 450, Diff: 150},
		{TS: 300, Diff: 200, Slowest: true},
		{TS: 100, Diff: 100, Fastest: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("laps mismatch (-want +got):\n%s", diff)
	}
}

func TestRankLapNewFastestMovesFlag(t *testing.T) {
	got := rankAll(100, 300, 350)
	want := []Lap{
		{TS: 350, Diff: 50, Fastest: true},
		{TS: 300, Diff: 200, Slowest: true},
		{TS: 100, Diff: 100},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("laps mismatch (-want +got):\n%s", diff)
	}
}

func TestRankLapNewSlowestMovesFlag(t *testing.T) {
	got := rankAll(100, 300, 800)
	want := []Lap{
		{TS: 800, Diff: 500, Slowest: true},
		{TS: 300, Diff: 200},
		{TS: 100, Diff: 100, Fastest: true},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("laps mismatch (-want +got):\n%s", diff)
	}
}

func TestRankLapTieClaimsFastest(t *testing.T) {
	got := rankAll(100, 300, 400)
	assert.True(t, got[0].Fastest, "diff equal to fastest claims fastest")
	assert.False(t, got[2].Fastest)
	assert.True(t, got[1].Slowest)
}

func TestRankLapAtMostOneFlagEach(t *testing.T) {
	laps := rankAll(120, 250, 260, 500, 530, 900, 910, 1500)
	fastest, slowest := 0, 0
	for _, lap := range laps {
		if lap.Fastest {
			fastest++
		}
		if lap.Slowest {
			slowest++
		}
	}
	assert.Equal(t, 1, fastest)
	assert.Equal(t, 1, slowest)

	fastLap, ok := Fastest(laps)
	assert.True(t, ok)
	assert.Equal(t, int64(10), fastLap.Diff)
	slowLap, ok := Slowest(laps)
	assert.True(t, ok)
	assert.Equal(t, int64(590), slowLap.Diff)
}

func TestRankLapDoesNotMutateInput(t *testing.T) {
	laps := rankAll(100, 300)
	before := append([]Lap(nil), laps...)
	_ = RankLap(laps, 320)
	assert.Equal(t, before, laps)
}

func TestFastestSlowestEmpty(t *testing.T) {
	_, ok := Fastest(nil)
	assert.False(t, ok)
	_, ok = Slowest(rankAll(10))
	assert.False(t, ok)
}
