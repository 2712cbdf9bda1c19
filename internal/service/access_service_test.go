package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAccessSelfAlwaysAllowed(t *testing.T) {
	env := newTestEnv(t)
	access := NewAccessService(env.partners)
	alice := env.createUser(t, "Alice", "alice@example.com")

	ok, err := access.CheckAccess(context.Background(), alice.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok, "a user always has access to their own data")
}

func TestCheckAccessIsDirectional(t *testing.T) {
	env := newTestEnv(t)
	access := NewAccessService(env.partners)
	alice := env.createUser(t, "Alice", "alice@example.com")
	bob := env.createUser(t, "Bob", "bob@example.com")

	// Alice grants Bob access to her data.
	env.grantAccess(t, alice, bob)

	ok, err := access.CheckAccess(context.Background(), bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, ok, "the viewer can see the owner's data")

	ok, err = access.CheckAccess(context.Background(), alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok, "the grant does not flow back the other way")
}

func TestCheckAccessNoGrant(t *testing.T) {
	env := newTestEnv(t)
	access := NewAccessService(env.partners)
	alice := env.createUser(t, "Alice", "alice@example.com")
	bob := env.createUser(t, "Bob", "bob@example.com")

	ok, err := access.CheckAccess(context.Background(), bob.ID, alice.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestResolveOwnerDefaultsToCaller(t *testing.T) {
	env := newTestEnv(t)
	access := NewAccessService(env.partners)
	alice := env.createUser(t, "Alice", "alice@example.com")

	ownerID, err := access.ResolveOwner(context.Background(), alice.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, ownerID)

	// Naming yourself explicitly is the same as omitting the target.
	ownerID, err = access.ResolveOwner(context.Background(), alice.ID, &alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, ownerID)
}

func TestResolveOwnerSubstitutesTarget(t *testing.T) {
	env := newTestEnv(t)
	access := NewAccessService(env.partners)
	alice := env.createUser(t, "Alice", "alice@example.com")
	bob := env.createUser(t, "Bob", "bob@example.com")
	env.grantAccess(t, alice, bob)

	ownerID, err := access.ResolveOwner(context.Background(), bob.ID, &alice.ID)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, ownerID)
}

func TestResolveOwnerDeniedWithoutGrant(t *testing.T) {
	env := newTestEnv(t)
	access := NewAccessService(env.partners)
	alice := env.createUser(t, "Alice", "alice@example.com")
	bob := env.createUser(t, "Bob", "bob@example.com")

	_, err := access.ResolveOwner(context.Background(), bob.ID, &alice.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
