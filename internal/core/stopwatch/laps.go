package stopwatch

// Lap is a recorded split. TS is the elapsed tick count when it was taken
// and Diff the ticks since the previous lap.
type Lap struct {
	TS      int64
	Diff    int64
	Fastest bool
	Slowest bool
}

// RankLap returns a new newest-first lap list with a lap taken at elapsed
// prepended and fastest/slowest flags updated. The input is not modified.
func RankLap(laps []Lap, elapsed int64) []Lap {
	if len(laps) == 0 {
		return []Lap{{TS: elapsed, Diff: elapsed}}
	}

	ranked := make([]Lap, 0, len(laps)+1)
	ranked = append(ranked, Lap{TS: elapsed, Diff: elapsed - laps[0].TS})
	ranked = append(ranked, laps...)
	current := &ranked[0]
	previous := &ranked[1]

	fastest, slowest := rankedIndexes(ranked[1:])
	if fastest < 0 || slowest < 0 {
		if current.Diff < previous.Diff {
			current.Fastest = true
			previous.Slowest = true
		} else {
			current.Slowest = true
			previous.Fastest = true
		}
		return ranked
	}

	// Indexes are relative to ranked[1:].
	fastestLap := &ranked[fastest+1]
	slowestLap := &ranked[slowest+1]
	switch {
	case current.Diff <= fastestLap.Diff:
		fastestLap.Fastest = false
		current.Fastest = true
	case current.Diff >= slowestLap.Diff:
		slowestLap.Slowest = false
		current.Slowest = true
	}
	return ranked
}

// Fastest returns the lap currently flagged fastest.
func Fastest(laps []Lap) (Lap, bool) {
	fastest, _ := rankedIndexes(laps)
	if fastest < 0 {
		return Lap{}, false
	}
	return laps[fastest], true
}

// Slowest returns the lap currently flagged slowest.
func Slowest(laps []Lap) (Lap, bool) {
	_, slowest := rankedIndexes(laps)
	if slowest < 0 {
		return Lap{}, false
	}
	return laps[slowest], true
}

func rankedIndexes(laps []Lap) (fastest, slowest int) {
	fastest, slowest = -1, -1
	for index, lap := range laps {
		if lap.Fastest && fastest < 0 {
			fastest = index
		}
		if lap.Slowest && slowest < 0 {
			slowest = index
		}
	}
	return fastest, slowest
}
