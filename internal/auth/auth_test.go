package auth

import (
	"testing"

	"teammate-backend/internal/database/models"
	apperrors "teammate-backend/internal/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fakeDeveloperStore is an in-memory DeveloperStore for auth tests
type fakeDeveloperStore struct {
	developers map[uuid.UUID]*models.Developer
}

func newFakeDeveloperStore() *fakeDeveloperStore {
	return &fakeDeveloperStore{developers: make(map[uuid.UUID]*models.Developer)}
}

func (s *fakeDeveloperStore) GetByID(id uuid.UUID) (*models.Developer, error) {
	if dev, ok := s.developers[id]; ok {
		return dev, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeDeveloperStore) GetByUsername(username string) (*models.Developer, error) {
	for _, dev := range s.developers {
		if dev.Username == username {
			return dev, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeDeveloperStore) GetByEmail(email string) (*models.Developer, error) {
	for _, dev := range s.developers {
		if dev.Email == email {
			return dev, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeDeveloperStore) GetByGitHubID(githubID int64) (*models.Developer, error) {
	for _, dev := range s.developers {
		if dev.GitHubID != nil && *dev.GitHubID == githubID {
			return dev, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeDeveloperStore) Create(developer *models.Developer) error {
	if developer.ID == uuid.Nil {
		developer.ID = uuid.New()
	}
	s.developers[developer.ID] = developer
	return nil
}

func (s *fakeDeveloperStore) Update(developer *models.Developer) error {
	s.developers[developer.ID] = developer
	return nil
}

func testAuthConfig() *AuthConfig {
	return &AuthConfig{
		JWTSecret:   "test-signing-key",
		RedirectURL: "http://localhost:3000",
		GitHub: ProviderConfig{
			ClientID:     "dev-client-id",
			ClientSecret: "dev-client-secret",
		},
	}
}

func newTestAuthService(t *testing.T, store DeveloperStore) *AuthService {
	service, err := NewAuthService(testAuthConfig(), store)
	require.NoError(t, err)
	return service
}

func seedDeveloper(t *testing.T, store *fakeDeveloperStore, username, password string) *models.Developer {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	dev := &models.Developer{
		BaseModel:    models.BaseModel{ID: uuid.New()},
		Username:     username,
		Email:        username + "@test.com",
		PasswordHash: string(hash),
		Position:     models.PositionBackend,
	}
	require.NoError(t, store.Create(dev))
	return dev
}

func TestAuthConfigValidation(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		config := testAuthConfig()
		assert.NoError(t, config.ValidateConfig())
		assert.True(t, config.GitHubConfigured())
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		config := testAuthConfig()
		config.JWTSecret = ""

		err := config.ValidateConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "JWT secret is required")
	})

	t.Run("missing redirect url", func(t *testing.T) {
		config := testAuthConfig()
		config.RedirectURL = ""

		err := config.ValidateConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "redirect URL is required")
	})

	t.Run("github not configured", func(t *testing.T) {
		config := testAuthConfig()
		config.GitHub.ClientSecret = ""
		assert.False(t, config.GitHubConfigured())
	})
}

func TestGenerateAndValidateJWT(t *testing.T) {
	store := newFakeDeveloperStore()
	service := newTestAuthService(t, store)
	dev := seedDeveloper(t, store, "alice", "s3cret")

	token, err := service.GenerateJWT(dev, "local")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, dev.ID.String(), claims.DeveloperID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "local", claims.Provider)
	assert.Equal(t, "teammate-backend", claims.Issuer)
}

func TestValidateJWTRejectsBadTokens(t *testing.T) {
	store := newFakeDeveloperStore()
	service := newTestAuthService(t, store)
	dev := seedDeveloper(t, store, "alice", "s3cret")

	_, err := service.ValidateJWT("not-a-token")
	assert.Error(t, err)

	// A token signed with a different secret must not validate.
	otherConfig := testAuthConfig()
	otherConfig.JWTSecret = "other-signing-key"
	otherService, err := NewAuthService(otherConfig, store)
	require.NoError(t, err)

	token, err := otherService.GenerateJWT(dev, "local")
	require.NoError(t, err)

	_, err = service.ValidateJWT(token)
	assert.Error(t, err)
}

func TestLogin(t *testing.T) {
	store := newFakeDeveloperStore()
	service := newTestAuthService(t, store)
	seedDeveloper(t, store, "alice", "s3cret")

	t.Run("success", func(t *testing.T) {
		pair, err := service.Login("alice", "s3cret")
		require.NoError(t, err)
		assert.NotEmpty(t, pair.AccessToken)
		assert.NotEmpty(t, pair.RefreshToken)
		assert.Equal(t, "Bearer", pair.TokenType)
		assert.EqualValues(t, 3600, pair.ExpiresIn)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := service.Login("alice", "wrong")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := service.Login("nobody", "s3cret")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})

	t.Run("oauth-only account has no password", func(t *testing.T) {
		githubID := int64(42)
		require.NoError(t, store.Create(&models.Developer{
			BaseModel: models.BaseModel{ID: uuid.New()},
			Username:  "bob",
			Email:     "bob@test.com",
			GitHubID:  &githubID,
		}))

		_, err := service.Login("bob", "anything")
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	})
}

func TestRefreshTokenRotation(t *testing.T) {
	store := newFakeDeveloperStore()
	service := newTestAuthService(t, store)
	seedDeveloper(t, store, "alice", "s3cret")

	pair, err := service.Login("alice", "s3cret")
	require.NoError(t, err)

	refreshed, err := service.RefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, refreshed.RefreshToken)

	// The original refresh token was rotated out and cannot be reused.
	_, err = service.RefreshToken(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestLogoutInvalidatesRefreshToken(t *testing.T) {
	store := newFakeDeveloperStore()
	service := newTestAuthService(t, store)
	seedDeveloper(t, store, "alice", "s3cret")

	pair, err := service.Login("alice", "s3cret")
	require.NoError(t, err)

	service.Logout(pair.RefreshToken)

	_, err = service.RefreshToken(pair.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestGenerateState(t *testing.T) {
	service := newTestAuthService(t, newFakeDeveloperStore())

	first, err := service.GenerateState()
	require.NoError(t, err)
	second, err := service.GenerateState()
	require.NoError(t, err)

	assert.NotEmpty(t, first)
	assert.NotEqual(t, first, second)
}
