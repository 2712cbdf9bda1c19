package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	gormdb "gorm.io/gorm"

	"gym-tracker/internal/domain"
	"gym-tracker/internal/repository"
	gormrepo "gym-tracker/internal/repository/gorm"
)

// testEnv bundles real repositories over an in-memory database so service
// tests exercise the full query path.
type testEnv struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	partners  repository.PartnerRepository
	exercises repository.ExerciseRepository
	plans     repository.PlanRepository
	workouts  repository.WorkoutRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gormdb.Open(sqlite.Open(":memory:"), &gormdb.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, gormrepo.AutoMigrate(db))

	return &testEnv{
		users:     gormrepo.NewUserRepository(db),
		sessions:  gormrepo.NewSessionRepository(db),
		partners:  gormrepo.NewPartnerRepository(db),
		exercises: gormrepo.NewExerciseRepository(db),
		plans:     gormrepo.NewPlanRepository(db),
		workouts:  gormrepo.NewWorkoutRepository(db),
	}
}

func (e *testEnv) createUser(t *testing.T, name, email string) *domain.User {
	t.Helper()
	user := &domain.User{Name: name, Email: email}
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *testEnv) createExercise(t *testing.T, owner *domain.User, name string, category domain.ExerciseCategory) *domain.Exercise {
	t.Helper()
	exercise := &domain.Exercise{OwnerID: owner.ID, Name: name, Category: category}
	require.NoError(t, e.exercises.Create(context.Background(), exercise))
	return exercise
}

// grantAccess creates a directed partner edge: viewer may see owner's data.
func (e *testEnv) grantAccess(t *testing.T, owner, viewer *domain.User) {
	t.Helper()
	require.NoError(t, e.partners.Create(context.Background(), &domain.Partner{
		OwnerID:  owner.ID,
		ViewerID: viewer.ID,
	}))
}

func weekdayPtr(d domain.Weekday) *domain.Weekday {
	return &d
}

// timeZero lets callers fall through to the service's default date.
func timeZero() time.Time {
	return time.Time{}
}
