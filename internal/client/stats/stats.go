// Package stats derives the mood and trigger summaries shown next to the
// journal history, plus the small presentation helpers that go with them.
package stats

import (
	"math/rand/v2"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/moodjournal/internal/client/models"
)

// Moods lists the known moods in display order.
var Moods = []string{"happy", "sad", "neutral", "excited", "angry"}

var moodEmoji = map[string]string{
	"sad":     "😔",
	"neutral": "😐",
	"happy":   "😊",
	"excited": "🤩",
	"angry":   "😡",
}

// Emoji returns the face shown for mood, or a generic one for unknown moods.
func Emoji(mood string) string {
	if e, ok := moodEmoji[mood]; ok {
		return e
	}
	return "🙂"
}

// IsKnownMood reports whether mood is one of Moods.
func IsKnownMood(mood string) bool {
	_, ok := moodEmoji[mood]
	return ok
}

// Capitalize upper-cases the first letter of mood; empty input is "Unknown".
func Capitalize(mood string) string {
	if mood == "" {
		return "Unknown"
	}
	r, size := utf8.DecodeRuneInString(mood)
	return string(unicode.ToUpper(r)) + mood[size:]
}

type MoodCount struct {
	Mood  string
	Count int
}

type TriggerCount struct {
	Trigger string
	Count   int
}

type Summary struct {
	Moods    []MoodCount
	Triggers []TriggerCount
}

// MoodCounts counts entries per known mood, in Moods order. Every known
// mood is present, with zero when unused; unknown moods are ignored.
func MoodCounts(entries []models.Entry) []MoodCount {
	counts := make(map[string]int, len(Moods))
	for _, e := range entries {
		counts[e.Mood]++
	}

	out := make([]MoodCount, 0, len(Moods))
	for _, m := range Moods {
		out = append(out, MoodCount{Mood: m, Count: counts[m]})
	}
	return out
}

// TriggerCounts counts non-empty triggers, most frequent first. Ties keep
// the order in which triggers first appear.
func TriggerCounts(entries []models.Entry) []TriggerCount {
	var out []TriggerCount
	index := map[string]int{}

	for _, e := range entries {
		t := strings.TrimSpace(e.Trigger)
		if t == "" {
			continue
		}
		if i, ok := index[t]; ok {
			out[i].Count++
			continue
		}
		index[t] = len(out)
		out = append(out, TriggerCount{Trigger: t, Count: 1})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func Summarize(entries []models.Entry) Summary {
	return Summary{Moods: MoodCounts(entries), Triggers: TriggerCounts(entries)}
}

var calmingMessages = []string{
	"🌱 Take a deep breath. You’re doing the best you can.",
	"🌼 It’s okay to feel overwhelmed. Be kind to yourself.",
	"🫧 Breathe in calm, breathe out stress.",
	"💛 You are safe in this moment. Nothing needs to be fixed immediately.",
	"🌈 Small steps are still progress. You’re not alone.",
}

// CalmingMessages returns a copy of the fixed message list.
func CalmingMessages() []string {
	return append([]string(nil), calmingMessages...)
}

// CalmingMessage picks one message using pick, which must return a value in
// [0, n). A nil pick uses math/rand.
func CalmingMessage(pick func(n int) int) string {
	if pick == nil {
		pick = rand.IntN
	}
	return calmingMessages[pick(len(calmingMessages))]
}
