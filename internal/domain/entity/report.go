package entity

// AnalyzeRequest is the body accepted by the analyze endpoint.
type AnalyzeRequest struct {
	VideoURL   string `json:"videoUrl"`
	Expression string `json:"expression"`
}

// ImageRef points at one uploaded representative frame for an interval.
type ImageRef struct {
	URL        string  `json:"url"`
	Timestamp  string  `json:"timestamp"`
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Confidence float64 `json:"confidence"`
}

// AnalysisReport is the analyze endpoint's response body.
type AnalysisReport struct {
	Expressions    map[string][]ImageRef `json:"expressions"`
	Duration       float64               `json:"duration"`
	FramesAnalyzed int                   `json:"frames_analyzed"`
	Interval       float64               `json:"interval"`
}

// Occurrence is one interval in the offline analyzer's document, stripped to
// the fields that survive without an uploaded image.
type Occurrence struct {
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Confidence float64 `json:"confidence"`
}

// AnalysisDocument is the JSON document the offline analyzer writes.
type AnalysisDocument struct {
	Analysis            map[string][]Occurrence `json:"analysis"`
	Duration            float64                 `json:"duration"`
	TotalFramesAnalyzed int                     `json:"total_frames_analyzed"`
	IntervalUsed        float64                 `json:"interval_used"`
}

// Document renders the timeline as an offline analysis document covering
// every category.
func (t *Timeline) Document() *AnalysisDocument {
	analysis := make(map[string][]Occurrence, len(t.Intervals))
	for e, ivs := range t.Intervals {
		occurrences := make([]Occurrence, 0, len(ivs))
		for _, iv := range ivs {
			occurrences = append(occurrences, Occurrence{
				Start:      iv.Start,
				End:        iv.End,
				Confidence: iv.Confidence,
			})
		}
		analysis[string(e)] = occurrences
	}
	return &AnalysisDocument{
		Analysis:            analysis,
		Duration:            t.Duration,
		TotalFramesAnalyzed: t.FramesAnalyzed,
		IntervalUsed:        t.SampleInterval,
	}
}
