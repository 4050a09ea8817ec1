package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "teammate-backend/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func recordError(err error) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	respondError(c, err)
	return recorder
}

func TestRespondErrorStatusCodes(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", apperrors.ErrProjectNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("failed to get project: %w", apperrors.ErrProjectNotFound), http.StatusNotFound},
		{"already exists", apperrors.ErrMembershipExists, http.StatusConflict},
		{"validation", apperrors.NewValidationError("domain", "unknown domain"), http.StatusBadRequest},
		{"request validation", errors.New("validation failed: Field 'Name' is required"), http.StatusBadRequest},
		{"authentication", apperrors.ErrNotAuthenticated, http.StatusUnauthorized},
		{"authorization", apperrors.ErrPermissionDenied, http.StatusForbidden},
		{"not owner", apperrors.ErrNotProjectOwner, http.StatusForbidden},
		{"application processed", apperrors.ErrApplicationProcessed, http.StatusConflict},
		{"already member", apperrors.ErrAlreadyMember, http.StatusConflict},
		{"cannot apply own", apperrors.ErrCannotApplyOwn, http.StatusConflict},
		{"cannot rate own", apperrors.ErrCannotRateOwn, http.StatusConflict},
		{"owner membership", apperrors.ErrOwnerMembership, http.StatusConflict},
		{"not deployed", apperrors.ErrProjectNotDeployed, http.StatusBadRequest},
		{"assignee not member", apperrors.ErrAssigneeNotMember, http.StatusBadRequest},
		{"invalid stage", apperrors.ErrInvalidStage, http.StatusBadRequest},
		{"invalid role", apperrors.ErrInvalidRole, http.StatusBadRequest},
		{"unclassified", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := recordError(tc.err)
			assert.Equal(t, tc.status, recorder.Code)
			assert.Contains(t, recorder.Body.String(), "error")
		})
	}
}
