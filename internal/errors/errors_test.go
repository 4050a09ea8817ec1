package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundErrorIs(t *testing.T) {
	assert.True(t, IsNotFound(ErrProjectNotFound))
	assert.True(t, IsNotFound(NewNotFoundError("widget")))

	// Matching is by type, so wrapping still classifies correctly.
	wrapped := fmt.Errorf("failed to get project: %w", ErrProjectNotFound)
	assert.True(t, IsNotFound(wrapped))

	assert.False(t, IsNotFound(ErrDeveloperExists))
	assert.False(t, IsNotFound(nil))
}

func TestAlreadyExistsErrorIs(t *testing.T) {
	assert.True(t, IsAlreadyExists(ErrMembershipExists))
	assert.True(t, IsAlreadyExists(NewAlreadyExistsError("rating", "for this project")))

	wrapped := fmt.Errorf("failed to create membership: %w", ErrMembershipExists)
	assert.True(t, IsAlreadyExists(wrapped))

	assert.False(t, IsAlreadyExists(ErrProjectNotFound))
}

func TestValidationError(t *testing.T) {
	err := NewValidationError("deploy_url", "required for the deployed stage")
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "deploy_url")
	assert.Contains(t, err.Error(), "required for the deployed stage")

	assert.False(t, IsValidation(ErrProjectNotFound))
}

func TestAuthenticationAndAuthorization(t *testing.T) {
	assert.True(t, IsAuthentication(ErrInvalidCredentials))
	assert.True(t, IsAuthentication(ErrNotAuthenticated))
	assert.False(t, IsAuthentication(ErrPermissionDenied))

	assert.True(t, IsAuthorization(ErrPermissionDenied))
	assert.True(t, IsAuthorization(ErrNotProjectOwner))
	assert.False(t, IsAuthorization(ErrNotAuthenticated))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "project not found", ErrProjectNotFound.Error())
	assert.Contains(t, ErrDeveloperExists.Error(), "already exists")
}
