package entity

import "math"

// IntervalEndOffsetSeconds is the fixed duration added past the last
// qualifying sample when an interval is closed.
const IntervalEndOffsetSeconds = 1.0

// contiguityEps absorbs float error when checking that two samples sit
// exactly one sampling step apart.
const contiguityEps = 1e-6

// Interval is a coalesced run of consecutive frames sharing one emotion.
// Confidence is the peak confidence observed inside the run, and the peak
// fields locate the sample that produced it.
type Interval struct {
	Emotion       Emotion
	Start         string
	End           string
	StartSeconds  float64
	EndSeconds    float64
	Confidence    float64
	PeakSeconds   float64
	PeakTimestamp string
}

// Timeline is the full outcome of analyzing one video: intervals bucketed by
// category plus the counters callers report back.
type Timeline struct {
	Intervals      map[Emotion][]Interval
	Duration       float64
	FramesAnalyzed int
	SampleInterval float64
}

// Coalesce reduces an ordered sequence of per-frame verdicts into labeled
// intervals. A frame joins the current run when its label is a known
// category, its confidence is strictly above threshold, the label matches
// the run, and the frame sits exactly one sampling step after the previous
// member; anything else closes the run. A closed run becomes one interval
// ending a fixed offset past its final sample.
func Coalesce(frames []FrameEmotion, threshold, step float64) []Interval {
	var (
		intervals  []Interval
		run        []FrameEmotion
		runEmotion Emotion
	)

	flush := func() {
		if len(run) == 0 {
			return
		}
		intervals = append(intervals, closeRun(runEmotion, run))
		run = run[:0]
	}

	for _, f := range frames {
		emotion, ok := ParseEmotion(f.Label)
		if !ok || f.Confidence <= threshold {
			flush()
			continue
		}
		if len(run) > 0 {
			prev := run[len(run)-1]
			if emotion != runEmotion || math.Abs(f.Seconds-(prev.Seconds+step)) > contiguityEps {
				flush()
			}
		}
		if len(run) == 0 {
			runEmotion = emotion
		}
		run = append(run, f)
	}
	flush()

	return intervals
}

func closeRun(emotion Emotion, run []FrameEmotion) Interval {
	first := run[0]
	peak := run[0]
	for _, f := range run[1:] {
		if f.Confidence > peak.Confidence {
			peak = f
		}
	}
	endSeconds := run[len(run)-1].Seconds + IntervalEndOffsetSeconds
	return Interval{
		Emotion:       emotion,
		Start:         first.Timestamp,
		End:           FormatTimestamp(endSeconds),
		StartSeconds:  first.Seconds,
		EndSeconds:    endSeconds,
		Confidence:    peak.Confidence,
		PeakSeconds:   peak.Seconds,
		PeakTimestamp: peak.Timestamp,
	}
}

// GroupIntervals buckets intervals by category, seeding every category so
// downstream reports always carry the full key set.
func GroupIntervals(intervals []Interval) map[Emotion][]Interval {
	grouped := make(map[Emotion][]Interval, len(Emotions()))
	for _, e := range Emotions() {
		grouped[e] = []Interval{}
	}
	for _, iv := range intervals {
		grouped[iv.Emotion] = append(grouped[iv.Emotion], iv)
	}
	return grouped
}

// SelectExpressions applies a request's expression filter. "all" (or empty)
// keeps every category; any other value yields a single-key map holding that
// category's intervals, empty when the name matches nothing.
func (t *Timeline) SelectExpressions(expression string) map[string][]Interval {
	if expression == "" || expression == ExpressionAll {
		selected := make(map[string][]Interval, len(t.Intervals))
		for e, ivs := range t.Intervals {
			selected[string(e)] = ivs
		}
		return selected
	}
	ivs := t.Intervals[Emotion(expression)]
	if ivs == nil {
		ivs = []Interval{}
	}
	return map[string][]Interval{expression: ivs}
}
