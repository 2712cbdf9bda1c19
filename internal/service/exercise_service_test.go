package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gym-tracker/internal/domain"
)

func TestCreateExerciseValidation(t *testing.T) {
	env := newTestEnv(t)
	exercises := NewExerciseService(env.exercises)
	alice := env.createUser(t, "Alice", "alice@example.com")
	ctx := context.Background()

	_, err := exercises.CreateExercise(ctx, alice.ID, "", domain.CategoryChest, "")
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = exercises.CreateExercise(ctx, alice.ID, "Bench", domain.ExerciseCategory("ARMS"), "")
	assert.ErrorIs(t, err, ErrValidationFailed)

	created, err := exercises.CreateExercise(ctx, alice.ID, "Bench Press", domain.CategoryChest, "barbell flat bench")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, created.OwnerID)
}

func TestExerciseLibraryIsShared(t *testing.T) {
	env := newTestEnv(t)
	exercises := NewExerciseService(env.exercises)
	alice := env.createUser(t, "Alice", "alice@example.com")
	env.createExercise(t, alice, "Squat", domain.CategoryLegs)

	list, err := exercises.ListExercises(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1, "every user sees the full library")
}

func TestUpdateExerciseOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	exercises := NewExerciseService(env.exercises)
	alice := env.createUser(t, "Alice", "alice@example.com")
	bob := env.createUser(t, "Bob", "bob@example.com")
	squat := env.createExercise(t, alice, "Squat", domain.CategoryLegs)
	ctx := context.Background()

	// Someone else's exercise looks like a missing one.
	_, err := exercises.UpdateExercise(ctx, bob.ID, squat.ID, "Front Squat", domain.CategoryLegs, "")
	assert.ErrorIs(t, err, ErrExerciseNotFound)

	updated, err := exercises.UpdateExercise(ctx, alice.ID, squat.ID, "Front Squat", domain.CategoryLegs, "")
	require.NoError(t, err)
	assert.Equal(t, "Front Squat", updated.Name)
}

func TestDeleteExerciseOwnerOnly(t *testing.T) {
	env := newTestEnv(t)
	exercises := NewExerciseService(env.exercises)
	alice := env.createUser(t, "Alice", "alice@example.com")
	bob := env.createUser(t, "Bob", "bob@example.com")
	squat := env.createExercise(t, alice, "Squat", domain.CategoryLegs)
	ctx := context.Background()

	assert.ErrorIs(t, exercises.DeleteExercise(ctx, bob.ID, squat.ID), ErrExerciseNotFound)
	require.NoError(t, exercises.DeleteExercise(ctx, alice.ID, squat.ID))

	_, err := exercises.GetExercise(ctx, squat.ID)
	assert.ErrorIs(t, err, ErrExerciseNotFound)
}
