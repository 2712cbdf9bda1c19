package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-tracker/internal/domain"
)

func newPlanFixture(t *testing.T) (*testEnv, PlanService, *domain.User, []*domain.Exercise) {
	t.Helper()
	env := newTestEnv(t)
	access := NewAccessService(env.partners)
	plans := NewPlanService(env.plans, env.exercises, access)
	alice := env.createUser(t, "Alice", "alice@example.com")
	exercises := []*domain.Exercise{
		env.createExercise(t, alice, "Bench Press", domain.CategoryChest),
		env.createExercise(t, alice, "Squat", domain.CategoryLegs),
		env.createExercise(t, alice, "Deadlift", domain.CategoryBack),
	}
	return env, plans, alice, exercises
}

func TestCreatePlanWithExercises(t *testing.T) {
	_, plans, alice, exercises := newPlanFixture(t)

	plan, err := plans.CreatePlan(context.Background(), alice.ID, nil, "Push Day",
		weekdayPtr(domain.Monday), []uuid.UUID{exercises[0].ID, exercises[1].ID})
	require.NoError(t, err)
	require.Len(t, plan.Exercises, 2)
	assert.Equal(t, 0, plan.Exercises[0].Position)
	assert.Equal(t, exercises[0].ID, plan.Exercises[0].ExerciseID)
	assert.Equal(t, 1, plan.Exercises[1].Position)

	got, err := plans.GetPlan(context.Background(), alice.ID, nil, plan.ID)
	require.NoError(t, err)
	require.Len(t, got.Exercises, 2)
	assert.Equal(t, exercises[0].ID, got.Exercises[0].ExerciseID)
}

func TestCreatePlanValidation(t *testing.T) {
	_, plans, alice, exercises := newPlanFixture(t)
	ctx := context.Background()

	_, err := plans.CreatePlan(ctx, alice.ID, nil, "", nil, nil)
	assert.ErrorIs(t, err, ErrValidationFailed, "name is required")

	bad := domain.Weekday("FUNDAY")
	_, err = plans.CreatePlan(ctx, alice.ID, nil, "Leg Day", &bad, nil)
	assert.ErrorIs(t, err, ErrValidationFailed, "day must be a real weekday")

	_, err = plans.CreatePlan(ctx, alice.ID, nil, "Leg Day", nil,
		[]uuid.UUID{exercises[0].ID, exercises[0].ID})
	assert.ErrorIs(t, err, ErrDuplicatePlanExercise)

	_, err = plans.CreatePlan(ctx, alice.ID, nil, "Leg Day", nil,
		[]uuid.UUID{uuid.New()})
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}

func TestUpdatePlanReplacesExerciseList(t *testing.T) {
	_, plans, alice, exercises := newPlanFixture(t)
	ctx := context.Background()

	plan, err := plans.CreatePlan(ctx, alice.ID, nil, "Full Body", nil,
		[]uuid.UUID{exercises[0].ID, exercises[1].ID})
	require.NoError(t, err)

	updated, err := plans.UpdatePlan(ctx, alice.ID, nil, plan.ID, "Full Body v2", nil,
		[]uuid.UUID{exercises[2].ID})
	require.NoError(t, err)
	assert.Equal(t, "Full Body v2", updated.Name)
	require.Len(t, updated.Exercises, 1)
	assert.Equal(t, exercises[2].ID, updated.Exercises[0].ExerciseID)
}

func TestUpdatePlanNilExercisesKeepsList(t *testing.T) {
	_, plans, alice, exercises := newPlanFixture(t)
	ctx := context.Background()

	plan, err := plans.CreatePlan(ctx, alice.ID, nil, "Full Body", nil,
		[]uuid.UUID{exercises[0].ID, exercises[1].ID})
	require.NoError(t, err)

	_, err = plans.UpdatePlan(ctx, alice.ID, nil, plan.ID, "Renamed", nil, nil)
	require.NoError(t, err)

	got, err := plans.GetPlan(ctx, alice.ID, nil, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Name)
	assert.Len(t, got.Exercises, 2, "a nil exercise list leaves the slots untouched")
}

func TestAssignDayMovesAndClears(t *testing.T) {
	_, plans, alice, _ := newPlanFixture(t)
	ctx := context.Background()

	plan, err := plans.CreatePlan(ctx, alice.ID, nil, "Pull Day", weekdayPtr(domain.Tuesday), nil)
	require.NoError(t, err)

	moved, err := plans.AssignDay(ctx, alice.ID, nil, plan.ID, weekdayPtr(domain.Friday))
	require.NoError(t, err)
	require.NotNil(t, moved.Day)
	assert.Equal(t, domain.Friday, *moved.Day)

	cleared, err := plans.AssignDay(ctx, alice.ID, nil, plan.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.Day, "nil day parks the plan in the unscheduled pool")
}

func TestPlanAccessDenied(t *testing.T) {
	env, plans, alice, _ := newPlanFixture(t)
	bob := env.createUser(t, "Bob", "bob@example.com")

	_, err := plans.ListPlans(context.Background(), bob.ID, &alice.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestPlanVisibleToGrantedPartner(t *testing.T) {
	env, plans, alice, _ := newPlanFixture(t)
	bob := env.createUser(t, "Bob", "bob@example.com")
	env.grantAccess(t, alice, bob)
	ctx := context.Background()

	created, err := plans.CreatePlan(ctx, bob.ID, &alice.ID, "Partner Plan", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, created.OwnerID, "a plan created on behalf of a partner belongs to the partner")

	listed, err := plans.ListPlans(ctx, bob.ID, &alice.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, created.ID, listed[0].ID)
}

func TestSortPlansForDisplay(t *testing.T) {
	base := time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC)
	plans := []domain.WorkoutPlan{
		{Name: "Unscheduled", Day: nil, UpdatedAt: base},
		{Name: "Friday", Day: weekdayPtr(domain.Friday), UpdatedAt: base},
		{Name: "Monday old", Day: weekdayPtr(domain.Monday), UpdatedAt: base.Add(-time.Hour)},
		{Name: "Sunday", Day: weekdayPtr(domain.Sunday), UpdatedAt: base},
		{Name: "Monday new", Day: weekdayPtr(domain.Monday), UpdatedAt: base},
	}

	SortPlansForDisplay(plans)

	names := make([]string, len(plans))
	for i, p := range plans {
		names[i] = p.Name
	}
	assert.Equal(t, []string{"Monday new", "Monday old", "Friday", "Sunday", "Unscheduled"}, names)
}

func TestDayRank(t *testing.T) {
	assert.Equal(t, 1, domain.DayRank(weekdayPtr(domain.Monday)))
	assert.Equal(t, 7, domain.DayRank(weekdayPtr(domain.Sunday)))
	assert.Equal(t, 8, domain.DayRank(nil), "plans without a day sort after every weekday")
}
