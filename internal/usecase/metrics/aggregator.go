// Package metrics derives talk time and engagement scores from an ended
// meeting session. Every result is a pure function of the session's final
// state: the same roster, duration and event log always give the same numbers.
package metrics

import (
	"fmt"
	"math"

	"github.com/johnquangdev/scrum-assistant/internal/domain/entities"
)

const (
	// DefaultTargetEditsPerMinute is the edit density that scores as fully engaged
	DefaultTargetEditsPerMinute = 1.0

	engagementCoverageWeight = 0.6
	engagementDensityWeight  = 0.4

	productivityCompletionWeight = 0.6
	productivityActionWeight     = 0.25
	productivityDensityWeight    = 0.15

	// mean score thresholds of the sentiment labels
	positiveSentimentScore = 70
	neutralSentimentScore  = 40
)

// Aggregator computes a MetricsSnapshot from an ended session
type Aggregator struct {
	fallback    map[string]float64
	targetEdits float64
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithFallbackWeights sets the talk-time weights used when no event can be
// attributed to a participant. Names missing from weights get zero.
func WithFallbackWeights(weights map[string]float64) Option {
	return func(a *Aggregator) {
		a.fallback = make(map[string]float64, len(weights))
		for name, w := range weights {
			if w > 0 && !math.IsInf(w, 0) {
				a.fallback[name] = w
			}
		}
	}
}

// WithTargetEditsPerMinute changes the density that maps to a full density score
func WithTargetEditsPerMinute(target float64) Option {
	return func(a *Aggregator) {
		if target > 0 {
			a.targetEdits = target
		}
	}
}

// NewAggregator creates an aggregator with an even fallback split
func NewAggregator(opts ...Option) *Aggregator {
	a := &Aggregator{targetEdits: DefaultTargetEditsPerMinute}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Compute derives the metrics snapshot; the session must be ended
func (a *Aggregator) Compute(session *entities.MeetingSession) (entities.MetricsSnapshot, error) {
	if !session.IsEnded() {
		return entities.MetricsSnapshot{}, fmt.Errorf("%w: metrics need an ended session, got %s", entities.ErrInvalidState, session.Status())
	}

	participants := session.Participants()
	events := session.Events()
	duration := session.DurationSeconds()

	talk := a.talkTime(participants, events, duration)

	edits := 0
	actions := 0
	actors := make(map[string]struct{})
	for _, e := range events {
		if e.IsSpeakerActivity() {
			edits++
		}
		if e.Kind == entities.EventActionItemAdded {
			actions++
		}
		if e.Actor != "" {
			actors[e.Actor] = struct{}{}
		}
	}

	density := 0.0
	if duration > 0 {
		density = float64(edits) / (float64(duration) / 60)
	}
	densityScore := math.Min(1, density/a.targetEdits)

	coverage := 0.0
	if len(participants) > 0 {
		covered := 0
		for _, p := range participants {
			if _, ok := actors[p.Name]; ok {
				covered++
			}
		}
		coverage = float64(covered) / float64(len(participants))
	}

	states := session.ObjectiveStates()
	completion := 0.0
	if len(states) > 0 {
		completion = float64(countTrue(states)) / float64(len(states))
	}
	actionScore := math.Min(1, float64(actions)/float64(max(1, len(states))))

	engagement := score(engagementCoverageWeight*coverage + engagementDensityWeight*densityScore)
	productivity := score(productivityCompletionWeight*completion + productivityActionWeight*actionScore + productivityDensityWeight*densityScore)

	return entities.MetricsSnapshot{
		TalkTime:          talk,
		EngagementScore:   engagement,
		ProductivityScore: productivity,
		Sentiment:         Sentiment(engagement, productivity),
	}, nil
}

// Sentiment labels a meeting by the mean of its engagement and productivity scores
func Sentiment(engagement, productivity int) entities.Sentiment {
	switch mean := (engagement + productivity) / 2; {
	case mean >= positiveSentimentScore:
		return entities.SentimentPositive
	case mean >= neutralSentimentScore:
		return entities.SentimentNeutral
	default:
		return entities.SentimentNegative
	}
}

// Percentages splits 100 across counts by the largest remainder method, so
// the parts always add up to 100 unless every count is zero
func Percentages(counts []int64) []int {
	weights := make([]float64, len(counts))
	for i, c := range counts {
		weights[i] = float64(c)
	}
	parts := apportion(100, weights)
	out := make([]int, len(parts))
	for i, p := range parts {
		out[i] = int(p)
	}
	return out
}

// talkTime splits duration across the roster. Speaker activity attributed to
// a participant decides the weights; without any, the fallback weights apply.
func (a *Aggregator) talkTime(participants []entities.Participant, events []entities.SessionEvent, duration int64) []entities.TalkTime {
	out := make([]entities.TalkTime, len(participants))
	if len(participants) == 0 {
		return out
	}

	index := make(map[string]int, len(participants))
	for i, p := range participants {
		index[p.Name] = i
		out[i].Name = p.Name
	}

	weights := make([]float64, len(participants))
	attributed := false
	for _, e := range events {
		if !e.IsSpeakerActivity() {
			continue
		}
		if i, ok := index[e.Actor]; ok {
			weights[i]++
			attributed = true
		}
	}
	if !attributed {
		weights = a.fallbackWeights(participants)
	}

	seconds := apportion(duration, weights)
	for i := range out {
		out[i].TalkSeconds = seconds[i]
	}

	shares := make([]float64, len(seconds))
	for i, s := range seconds {
		shares[i] = float64(s)
	}
	for i, p := range apportion(100, shares) {
		out[i].TalkPercentage = int(p)
	}
	return out
}

func (a *Aggregator) fallbackWeights(participants []entities.Participant) []float64 {
	weights := make([]float64, len(participants))
	total := 0.0
	for i, p := range participants {
		weights[i] = a.fallback[p.Name]
		total += weights[i]
	}
	if total > 0 {
		return weights
	}
	for i := range weights {
		weights[i] = 1
	}
	return weights
}

// apportion splits total into integer parts proportional to weights using
// the largest remainder method; ties go to the earlier index. A zero total
// or zero weight sum yields all zeros.
func apportion(total int64, weights []float64) []int64 {
	parts := make([]int64, len(weights))
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if total <= 0 || sum <= 0 {
		return parts
	}

	remainders := make([]float64, len(weights))
	assigned := int64(0)
	for i, w := range weights {
		exact := float64(total) * w / sum
		parts[i] = int64(math.Floor(exact))
		remainders[i] = exact - float64(parts[i])
		assigned += parts[i]
	}

	for left := total - assigned; left > 0; left-- {
		best := -1
		for i, r := range remainders {
			if weights[i] <= 0 {
				continue
			}
			if best < 0 || r > remainders[best] {
				best = i
			}
		}
		if best < 0 {
			break
		}
		parts[best]++
		remainders[best] = -1
	}
	return parts
}

func score(v float64) int {
	return int(math.Round(100 * math.Max(0, math.Min(1, v))))
}

func countTrue(values []bool) int {
	n := 0
	for _, v := range values {
		if v {
			n++
		}
	}
	return n
}
