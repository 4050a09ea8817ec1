package errors

import (
	"errors"
	"fmt"
)

// NotFoundError represents an error when an entity is not found
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

// Is enables errors.Is() comparison for NotFoundError
func (e *NotFoundError) Is(target error) bool {
	t, ok := target.(*NotFoundError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// AlreadyExistsError represents a conflict with an existing entity or an
// already-processed operation
type AlreadyExistsError struct {
	Entity  string
	Context string // Additional context like "for this project"
}

func (e *AlreadyExistsError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("%s already exists %s", e.Entity, e.Context)
	}
	return fmt.Sprintf("%s already exists", e.Entity)
}

// Is enables errors.Is() comparison for AlreadyExistsError
func (e *AlreadyExistsError) Is(target error) bool {
	t, ok := target.(*AlreadyExistsError)
	if !ok {
		return false
	}
	return e.Entity == t.Entity
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// AuthenticationError represents authentication-related errors
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string {
	return e.Message
}

// AuthorizationError represents a failed capability or ownership check
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// Entity Not Found Errors
var (
	ErrDeveloperNotFound   = &NotFoundError{Entity: "developer"}
	ErrProjectNotFound     = &NotFoundError{Entity: "project"}
	ErrMembershipNotFound  = &NotFoundError{Entity: "membership"}
	ErrOpenRoleNotFound    = &NotFoundError{Entity: "open role"}
	ErrApplicationNotFound = &NotFoundError{Entity: "application"}
	ErrRatingNotFound      = &NotFoundError{Entity: "rating"}
	ErrTaskNotFound        = &NotFoundError{Entity: "task"}
	ErrTagNotFound         = &NotFoundError{Entity: "tag"}
)

// Conflict Errors
var (
	ErrDeveloperExists   = &AlreadyExistsError{Entity: "developer", Context: "with this username or email"}
	ErrMembershipExists  = &AlreadyExistsError{Entity: "membership", Context: "for this developer and project"}
	ErrRatingExists      = &AlreadyExistsError{Entity: "rating", Context: "by this developer for this project"}
	ErrApplicationExists = &AlreadyExistsError{Entity: "application", Context: "and is currently under review"}
)

// Business Logic Errors
var (
	ErrApplicationProcessed = errors.New("application already processed")
	ErrAlreadyMember        = errors.New("applicant is already a member of the project")
	ErrCannotApplyOwn       = errors.New("cannot apply to a project you belong to")
	ErrCannotRateOwn        = errors.New("cannot rate a project you belong to")
	ErrProjectNotDeployed   = errors.New("only deployed projects can be rated")
	ErrAssigneeNotMember    = errors.New("assignee must be a member of the project")
	ErrOwnerMembership      = errors.New("the owner's membership cannot be removed")
	ErrInvalidStage         = errors.New("invalid development stage")
	ErrInvalidRole          = errors.New("invalid membership role")
)

// Authentication Errors
var (
	ErrInvalidCredentials  = &AuthenticationError{Message: "invalid username or password"}
	ErrNotAuthenticated    = &AuthenticationError{Message: "authentication required"}
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token has expired")
)

// Authorization Errors
var (
	ErrPermissionDenied = &AuthorizationError{Message: "you do not have permission to perform this action"}
	ErrNotProjectOwner  = &AuthorizationError{Message: "only the project owner can perform this action"}
)

// Helper Functions

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsAlreadyExists checks if an error is an AlreadyExistsError
func IsAlreadyExists(err error) bool {
	var existsErr *AlreadyExistsError
	return errors.As(err, &existsErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsAuthentication checks if an error is an AuthenticationError
func IsAuthentication(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorization checks if an error is an AuthorizationError
func IsAuthorization(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}

// NewNotFoundError creates a new NotFoundError for a custom entity
func NewNotFoundError(entity string) error {
	return &NotFoundError{Entity: entity}
}

// NewAlreadyExistsError creates a new AlreadyExistsError for a custom entity
func NewAlreadyExistsError(entity, context string) error {
	return &AlreadyExistsError{Entity: entity, Context: context}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewAuthenticationError creates a new AuthenticationError
func NewAuthenticationError(message string) error {
	return &AuthenticationError{Message: message}
}

// NewAuthorizationError creates a new AuthorizationError
func NewAuthorizationError(message string) error {
	return &AuthorizationError{Message: message}
}
