package entity

import "strings"

// Emotion is one of the fixed facial-emotion categories the service reports.
type Emotion string

const (
	EmotionHappy     Emotion = "happy"
	EmotionSad       Emotion = "sad"
	EmotionAngry     Emotion = "angry"
	EmotionSurprised Emotion = "surprised"
	EmotionNeutral   Emotion = "neutral"
	EmotionFear      Emotion = "fear"
	EmotionDisgust   Emotion = "disgust"
)

// ExpressionAll selects every category in an analyze request.
const ExpressionAll = "all"

// Emotions lists every category in report order.
func Emotions() []Emotion {
	return []Emotion{
		EmotionHappy,
		EmotionSad,
		EmotionAngry,
		EmotionSurprised,
		EmotionNeutral,
		EmotionFear,
		EmotionDisgust,
	}
}

// emotionAliases maps classifier vocabulary onto the category set where the
// two diverge. DeepFace-style backends label the surprised category
// "surprise".
var emotionAliases = map[string]Emotion{
	"surprise": EmotionSurprised,
}

// ParseEmotion normalizes a classifier label to a canonical category.
func ParseEmotion(label string) (Emotion, bool) {
	l := strings.ToLower(strings.TrimSpace(label))
	if e, ok := emotionAliases[l]; ok {
		return e, true
	}
	for _, e := range Emotions() {
		if Emotion(l) == e {
			return e, true
		}
	}
	return "", false
}
