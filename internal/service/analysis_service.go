package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gym-tracker/internal/ai"
	"gym-tracker/internal/domain"
	"gym-tracker/internal/repository"
)

// analysisWorkoutWindow is how many recent workouts are considered before
// the calendar-week filter is applied.
const analysisWorkoutWindow = 30

// Generator produces text from a prompt. Satisfied by *ai.Client.
type Generator interface {
	Generate(ctx context.Context, prompt string) ai.Result
}

// AnalysisService builds a weekly training summary and forwards it to the
// external generation endpoint. Failures cross this boundary as a typed
// result, never as an error, so callers can render an inline error state.
type AnalysisService interface {
	WeeklyAnalysis(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID) (ai.Result, error)
}

// analysisService implements the AnalysisService interface.
type analysisService struct {
	workoutRepo  repository.WorkoutRepository
	exerciseRepo repository.ExerciseRepository
	access       AccessService
	generator    Generator
}

// NewAnalysisService creates a new instance of analysisService.
func NewAnalysisService(workoutRepo repository.WorkoutRepository, exerciseRepo repository.ExerciseRepository, access AccessService, generator Generator) AnalysisService {
	return &analysisService{
		workoutRepo:  workoutRepo,
		exerciseRepo: exerciseRepo,
		access:       access,
		generator:    generator,
	}
}

// WeeklyAnalysis summarises the current Monday-to-Sunday week. The returned
// error covers authorization and store failures only; generation problems
// (timeout, upstream) live inside the result.
func (s *analysisService) WeeklyAnalysis(ctx context.Context, callerID uuid.UUID, targetUserID *uuid.UUID) (ai.Result, error) {
	ownerID, err := s.access.ResolveOwner(ctx, callerID, targetUserID)
	if err != nil {
		return ai.Result{}, err
	}

	weekStart, weekEnd := WeekWindow(time.Now().UTC())
	recent, err := s.workoutRepo.ListByOwner(ctx, ownerID, analysisWorkoutWindow)
	if err != nil {
		return ai.Result{}, err
	}

	var inWeek []domain.WorkoutSession
	for _, w := range recent {
		if !w.Date.Before(weekStart) && w.Date.Before(weekEnd) {
			inWeek = append(inWeek, w)
		}
	}

	names, err := s.exerciseNames(ctx)
	if err != nil {
		return ai.Result{}, err
	}

	prompt := buildWeeklyPrompt(weekStart, inWeek, names)
	return s.generator.Generate(ctx, prompt), nil
}

// WeekWindow returns the [start, end) bounds of the calendar week containing
// now: Monday 00:00 UTC through the following Monday.
func WeekWindow(now time.Time) (time.Time, time.Time) {
	day := now.Truncate(24 * time.Hour)
	// time.Weekday has Sunday=0; shift so Monday opens the week.
	offset := (int(day.Weekday()) + 6) % 7
	start := day.AddDate(0, 0, -offset)
	return start, start.AddDate(0, 0, 7)
}

func (s *analysisService) exerciseNames(ctx context.Context) (map[uuid.UUID]string, error) {
	exercises, err := s.exerciseRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(exercises))
	for _, e := range exercises {
		names[e.ID] = e.Name
	}
	return names, nil
}

// buildWeeklyPrompt formats the week's sessions into a plain-text summary
// the generation endpoint can reason about.
func buildWeeklyPrompt(weekStart time.Time, workouts []domain.WorkoutSession, exerciseNames map[uuid.UUID]string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "You are a personal strength coach. Analyse this training week (starting %s) and give concise, practical feedback on volume, balance across muscle groups, and recovery.\n\n",
		weekStart.Format("2006-01-02"))

	if len(workouts) == 0 {
		b.WriteString("No workouts were logged this week.\n")
		return b.String()
	}

	for _, w := range workouts {
		name := w.Name
		if name == "" {
			name = "Workout"
		}
		fmt.Fprintf(&b, "%s (%s, %s", name, w.Date.Format("Mon 2006-01-02"), w.Status)
		if w.Duration > 0 {
			fmt.Fprintf(&b, ", %d min", w.Duration)
		}
		b.WriteString(")\n")

		for _, set := range w.Sets {
			exercise := exerciseNames[set.ExerciseID]
			if exercise == "" {
				exercise = "Unknown exercise"
			}
			fmt.Fprintf(&b, "  %s set %d: %d reps @ %.1f kg", exercise, set.SetNumber, set.Reps, set.Weight)
			if set.Warmup {
				b.WriteString(" (warmup)")
			}
			if set.RPE != nil {
				fmt.Fprintf(&b, " RPE %d", *set.RPE)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
