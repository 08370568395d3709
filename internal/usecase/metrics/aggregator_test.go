package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/scrum-assistant/internal/domain/entities"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func at(sec int) time.Time { return t0.Add(time.Duration(sec) * time.Second) }

func endedSession(t *testing.T, names []string, objectives []string, durationSec int, events ...entities.SessionEvent) *entities.MeetingSession {
	t.Helper()
	roster := make([]entities.Participant, len(names))
	for i, n := range names {
		roster[i] = entities.Participant{Name: n}
	}
	s, err := entities.NewMeetingSession("s1", "Sprint review", entities.MeetingTypeReview, roster, objectives, t0)
	require.NoError(t, err)
	require.NoError(t, s.Start(t0))
	for i, e := range events {
		_, err := s.Record(at(i+1), e)
		require.NoError(t, err)
	}
	require.NoError(t, s.End(at(durationSec)))
	return s
}

func sumPercent(tt []entities.TalkTime) int {
	total := 0
	for _, x := range tt {
		total += x.TalkPercentage
	}
	return total
}

func TestCompute_RequiresEndedSession(t *testing.T) {
	s, err := entities.NewMeetingSession("s1", "x", entities.MeetingTypeStandup, nil, nil, t0)
	require.NoError(t, err)

	_, err = NewAggregator().Compute(s)
	require.ErrorIs(t, err, entities.ErrInvalidState)

	require.NoError(t, s.Start(t0))
	_, err = NewAggregator().Compute(s)
	require.ErrorIs(t, err, entities.ErrInvalidState)
}

func TestCompute_EvenFallbackSplit(t *testing.T) {
	s := endedSession(t, []string{"Alice", "Bob", "Carol"}, nil, 100)

	m, err := NewAggregator().Compute(s)
	require.NoError(t, err)
	require.Len(t, m.TalkTime, 3)

	assert.Equal(t, []entities.TalkTime{
		{Name: "Alice", TalkSeconds: 34, TalkPercentage: 34},
		{Name: "Bob", TalkSeconds: 33, TalkPercentage: 33},
		{Name: "Carol", TalkSeconds: 33, TalkPercentage: 33},
	}, m.TalkTime)
	assert.Equal(t, 100, sumPercent(m.TalkTime))
}

func TestCompute_AttributedActivity(t *testing.T) {
	s := endedSession(t, []string{"Alice", "Bob"}, []string{"Demo"}, 60,
		entities.NoteEdited("Alice", "a"),
		entities.NoteEdited("Alice", "b"),
		entities.AgendaEdited("Alice", "c"),
		entities.NoteEdited("Bob", "d"),
		entities.MicToggled("Bob", false),
	)

	m, err := NewAggregator().Compute(s)
	require.NoError(t, err)

	assert.Equal(t, int64(45), m.TalkTime[0].TalkSeconds)
	assert.Equal(t, int64(15), m.TalkTime[1].TalkSeconds)
	assert.Equal(t, 75, m.TalkTime[0].TalkPercentage)
	assert.Equal(t, 25, m.TalkTime[1].TalkPercentage)
}

func TestCompute_ConfiguredFallbackWeights(t *testing.T) {
	s := endedSession(t, []string{"Alice", "Bob"}, nil, 40)

	agg := NewAggregator(WithFallbackWeights(map[string]float64{"Alice": 3, "Bob": 1, "Nobody": 10}))
	m, err := agg.Compute(s)
	require.NoError(t, err)

	assert.Equal(t, int64(30), m.TalkTime[0].TalkSeconds)
	assert.Equal(t, int64(10), m.TalkTime[1].TalkSeconds)
	assert.Equal(t, 100, sumPercent(m.TalkTime))
}

func TestCompute_ZeroDurationAndEmptyRoster(t *testing.T) {
	s := endedSession(t, []string{"Alice", "Bob"}, nil, 0)
	m, err := NewAggregator().Compute(s)
	require.NoError(t, err)
	for _, tt := range m.TalkTime {
		assert.Zero(t, tt.TalkSeconds)
		assert.Zero(t, tt.TalkPercentage)
	}
	assert.Zero(t, m.EngagementScore)
	assert.Zero(t, m.ProductivityScore)

	empty := endedSession(t, nil, nil, 30)
	m, err = NewAggregator().Compute(empty)
	require.NoError(t, err)
	assert.Empty(t, m.TalkTime)
}

func TestCompute_Scores(t *testing.T) {
	s := endedSession(t, []string{"Alice", "Bob"}, []string{"Goal A", "Goal B", "Goal C"}, 120,
		entities.NoteEdited("Alice", "notes"),
		entities.ObjectiveToggled("Alice", 0, true),
		entities.ActionItemAdded("Bob", entities.ActionItem{Task: "Fix CI", Assignee: "Bob"}),
	)

	m, err := NewAggregator().Compute(s)
	require.NoError(t, err)

	// 2 edits over 2 minutes = 1/min, full density score; both participants acted
	assert.Equal(t, 100, m.EngagementScore)
	// 0.6*(1/3) + 0.25*(1/3) + 0.15*1
	assert.Equal(t, 43, m.ProductivityScore)
	assert.Equal(t, entities.SentimentPositive, m.Sentiment)
}

func TestSentiment(t *testing.T) {
	for _, tc := range []struct {
		engagement, productivity int
		want                     entities.Sentiment
	}{
		{100, 100, entities.SentimentPositive},
		{100, 40, entities.SentimentPositive},
		{100, 39, entities.SentimentNeutral},
		{40, 40, entities.SentimentNeutral},
		{40, 39, entities.SentimentNegative},
		{0, 0, entities.SentimentNegative},
	} {
		assert.Equal(t, tc.want, Sentiment(tc.engagement, tc.productivity), "%d/%d", tc.engagement, tc.productivity)
	}
}

func TestPercentages(t *testing.T) {
	assert.Equal(t, []int{67, 33}, Percentages([]int64{2, 1}))
	assert.Equal(t, []int{34, 33, 33, 0}, Percentages([]int64{1, 1, 1, 0}))
	assert.Equal(t, []int{0, 0}, Percentages([]int64{0, 0}))
	assert.Equal(t, []int{}, Percentages(nil))
}

func TestCompute_IsDeterministic(t *testing.T) {
	build := func() *entities.MeetingSession {
		return endedSession(t, []string{"Alice", "Bob", "Carol"}, []string{"One"}, 97,
			entities.NoteEdited("Carol", "x"),
			entities.ObjectiveToggled("", 0, true),
			entities.NoteEdited("Alice", "y"),
		)
	}
	agg := NewAggregator()
	a, err := agg.Compute(build())
	require.NoError(t, err)
	b, err := agg.Compute(build())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestApportion(t *testing.T) {
	assert.Equal(t, []int64{1, 1, 1}, apportion(3, []float64{1, 1, 1}))
	assert.Equal(t, []int64{34, 33, 33}, apportion(100, []float64{1, 1, 1}))
	assert.Equal(t, []int64{0, 0}, apportion(10, []float64{0, 0}))
	assert.Equal(t, []int64{0, 0}, apportion(0, []float64{1, 1}))
	assert.Equal(t, []int64{10, 0}, apportion(10, []float64{2, 0}))
	assert.Equal(t, []int64{}, apportion(10, nil))
}
