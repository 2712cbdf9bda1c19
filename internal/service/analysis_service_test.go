package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-tracker/internal/ai"
	"gym-tracker/internal/domain"
)

// stubGenerator records the prompt it was handed and returns a canned
// result.
type stubGenerator struct {
	prompt string
	result ai.Result
}

func (s *stubGenerator) Generate(_ context.Context, prompt string) ai.Result {
	s.prompt = prompt
	return s.result
}

func TestWeekWindow(t *testing.T) {
	cases := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "midweek",
			now:  time.Date(2026, 8, 26, 15, 30, 0, 0, time.UTC), // Wednesday
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "sunday belongs to the week that started the prior monday",
			now:  time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC),
			want: time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "monday midnight starts a new week",
			now:  time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
			want: time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end := WeekWindow(tc.now)
			assert.Equal(t, tc.want, start)
			assert.Equal(t, tc.want.AddDate(0, 0, 7), end)
			assert.Equal(t, time.Monday, start.Weekday())
		})
	}
}

func TestWeeklyAnalysisPromptContents(t *testing.T) {
	env := newTestEnv(t)
	access := NewAccessService(env.partners)
	gen := &stubGenerator{result: ai.Result{Response: "looking solid"}}
	analysis := NewAnalysisService(env.workouts, env.exercises, access, gen)
	workouts := NewWorkoutService(env.workouts, env.plans, access)
	alice := env.createUser(t, "Alice", "alice@example.com")
	bench := env.createExercise(t, alice, "Bench Press", domain.CategoryChest)
	ctx := context.Background()

	weekStart, _ := WeekWindow(time.Now().UTC())

	inWeek, err := workouts.CreateWorkout(ctx, alice.ID, nil, "Push Day", "", weekStart.AddDate(0, 0, 1))
	require.NoError(t, err)
	_, err = workouts.QuickAddSet(ctx, alice.ID, nil, inWeek.ID, SetInput{
		ExerciseID: bench.ID, Reps: 8, Weight: 80,
	})
	require.NoError(t, err)

	_, err = workouts.CreateWorkout(ctx, alice.ID, nil, "Last Month", "", weekStart.AddDate(0, 0, -20))
	require.NoError(t, err)

	result, err := analysis.WeeklyAnalysis(ctx, alice.ID, nil)
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Equal(t, "looking solid", result.Response)

	assert.Contains(t, gen.prompt, "Push Day")
	assert.Contains(t, gen.prompt, "Bench Press")
	assert.Contains(t, gen.prompt, "8 reps @ 80.0 kg")
	assert.NotContains(t, gen.prompt, "Last Month", "sessions outside the current week stay out of the prompt")
}

func TestWeeklyAnalysisEmptyWeek(t *testing.T) {
	env := newTestEnv(t)
	access := NewAccessService(env.partners)
	gen := &stubGenerator{result: ai.Result{Response: "rest week"}}
	analysis := NewAnalysisService(env.workouts, env.exercises, access, gen)
	alice := env.createUser(t, "Alice", "alice@example.com")

	result, err := analysis.WeeklyAnalysis(context.Background(), alice.ID, nil)
	require.NoError(t, err)
	assert.True(t, result.OK())
	assert.Contains(t, gen.prompt, "No workouts were logged this week.")
}

func TestWeeklyAnalysisGenerationFailureIsNotAnError(t *testing.T) {
	env := newTestEnv(t)
	access := NewAccessService(env.partners)
	gen := &stubGenerator{result: ai.Result{Err: &ai.Failure{Kind: ai.FailureTimeout, Message: "generation timed out"}}}
	analysis := NewAnalysisService(env.workouts, env.exercises, access, gen)
	alice := env.createUser(t, "Alice", "alice@example.com")

	result, err := analysis.WeeklyAnalysis(context.Background(), alice.ID, nil)
	require.NoError(t, err, "generation failures are data, not errors")
	assert.False(t, result.OK())
	assert.Equal(t, ai.FailureTimeout, result.Err.Kind)
}

func TestWeeklyAnalysisAccessDenied(t *testing.T) {
	env := newTestEnv(t)
	access := NewAccessService(env.partners)
	gen := &stubGenerator{}
	analysis := NewAnalysisService(env.workouts, env.exercises, access, gen)
	alice := env.createUser(t, "Alice", "alice@example.com")
	bob := env.createUser(t, "Bob", "bob@example.com")

	_, err := analysis.WeeklyAnalysis(context.Background(), bob.ID, &alice.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.Empty(t, gen.prompt, "no prompt is built for denied callers")
}
