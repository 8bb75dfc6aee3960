package entity

// FrameSample is one frame pulled from the video at a sampling step,
// written to disk and awaiting classification.
type FrameSample struct {
	Path      string
	Timestamp string
	Seconds   float64
	Index     int
}

// EmotionReading is the raw classifier verdict for a single image: the
// dominant label, its confidence on a 0..1 scale, and the full score map.
type EmotionReading struct {
	Label      string
	Confidence float64
	Scores     map[string]float64
}

// FrameEmotion ties a classifier verdict back to the sampled frame it came
// from. Label is kept verbatim so unclassifiable verdicts still count toward
// the frames-analyzed total.
type FrameEmotion struct {
	Timestamp  string
	Label      string
	Confidence float64
	Seconds    float64
}
