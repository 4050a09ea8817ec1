package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"teammate-backend/internal/database/models"
	apperrors "teammate-backend/internal/errors"
	"teammate-backend/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

// DeveloperStore defines the developer lookups the auth service needs
type DeveloperStore interface {
	GetByID(id uuid.UUID) (*models.Developer, error)
	GetByUsername(username string) (*models.Developer, error)
	GetByEmail(email string) (*models.Developer, error)
	GetByGitHubID(githubID int64) (*models.Developer, error)
	Create(developer *models.Developer) error
	Update(developer *models.Developer) error
}

// RefreshTokenData stores information about a refresh token
type RefreshTokenData struct {
	DeveloperID uuid.UUID `json:"developer_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Provider    string    `json:"provider"`
	ExpiresAt   time.Time `json:"expires_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// AuthClaims represents JWT token claims
type AuthClaims struct {
	DeveloperID string `json:"developer_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	Provider    string `json:"provider"`
	jwt.RegisteredClaims
}

// TokenPairResponse represents an issued access/refresh token pair
type TokenPairResponse struct {
	AccessToken  string      `json:"accessToken"`
	TokenType    string      `json:"tokenType"`
	ExpiresIn    int64       `json:"expiresIn"`
	RefreshToken string      `json:"refreshToken,omitempty"`
	Developer    interface{} `json:"developer,omitempty"`
}

// RefreshTokenRequest represents the request for token refresh
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// LoginRequest represents a local username/password login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthValidateResponse represents the response from the token validation endpoint
type AuthValidateResponse struct {
	Valid  bool        `json:"valid"`
	Claims *AuthClaims `json:"claims"`
}

// AuthService provides authentication functionality: local logins against
// bcrypt password hashes and a GitHub OAuth flow that links or creates
// developer accounts. Refresh tokens live in an in-memory store.
type AuthService struct {
	config        *AuthConfig
	githubClient  *GitHubClient
	developers    DeveloperStore
	refreshTokens map[string]*RefreshTokenData
	tokenMutex    sync.RWMutex
}

// NewAuthService creates a new authentication service
func NewAuthService(config *AuthConfig, developers DeveloperStore) (*AuthService, error) {
	if err := config.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("invalid auth config: %w", err)
	}

	return &AuthService{
		config:        config,
		githubClient:  NewGitHubClient(&config.GitHub),
		developers:    developers,
		refreshTokens: make(map[string]*RefreshTokenData),
	}, nil
}

// Login authenticates a developer with username and password
func (s *AuthService) Login(username, password string) (*TokenPairResponse, error) {
	developer, err := s.developers.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get developer: %w", err)
	}

	// OAuth-only accounts carry no password hash
	if developer.PasswordHash == "" {
		return nil, apperrors.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(developer.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueTokens(developer, "local")
}

// GetAuthURL generates the GitHub OAuth2 authorization URL
func (s *AuthService) GetAuthURL(state string) (string, error) {
	if !s.config.GitHubConfigured() {
		return "", fmt.Errorf("github oauth is not configured")
	}

	callbackURL := fmt.Sprintf("%s/api/v1/auth/github/callback", s.config.RedirectURL)
	oauth2Config := s.githubClient.GetOAuth2Config(callbackURL)
	return oauth2Config.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

// HandleCallback processes the GitHub OAuth2 callback: it exchanges the
// code, fetches the GitHub profile, and links it to an existing developer
// by GitHub ID or email, creating a fresh account when neither matches.
func (s *AuthService) HandleCallback(ctx context.Context, code string) (*TokenPairResponse, error) {
	if !s.config.GitHubConfigured() {
		return nil, fmt.Errorf("github oauth is not configured")
	}

	callbackURL := fmt.Sprintf("%s/api/v1/auth/github/callback", s.config.RedirectURL)
	oauth2Config := s.githubClient.GetOAuth2Config(callbackURL)

	// Exchange authorization code for access token
	token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	// Get user profile from GitHub
	profile, err := s.githubClient.GetUserProfile(ctx, token.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	developer, err := s.findOrCreateDeveloper(profile)
	if err != nil {
		return nil, err
	}

	logger.WithContext(ctx).WithFields(map[string]interface{}{
		"developer_id": developer.ID,
		"github_login": profile.Username,
	}).Info("GitHub OAuth login completed")

	return s.issueTokens(developer, "github")
}

// findOrCreateDeveloper links a GitHub profile to a developer account
func (s *AuthService) findOrCreateDeveloper(profile *UserProfile) (*models.Developer, error) {
	developer, err := s.developers.GetByGitHubID(profile.ID)
	if err == nil {
		return developer, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up developer: %w", err)
	}

	// Fall back to email matching for accounts registered locally
	if profile.Email != "" {
		developer, err = s.developers.GetByEmail(profile.Email)
		if err == nil {
			githubID := profile.ID
			developer.GitHubID = &githubID
			if err := s.developers.Update(developer); err != nil {
				return nil, fmt.Errorf("failed to link github account: %w", err)
			}
			return developer, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up developer: %w", err)
		}
	}

	githubID := profile.ID
	developer = &models.Developer{
		Username: profile.Username,
		Email:    profile.Email,
		GitHubID: &githubID,
		Position: models.PositionBackend,
	}
	if err := s.developers.Create(developer); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDeveloperExists
		}
		return nil, fmt.Errorf("failed to create developer: %w", err)
	}
	return developer, nil
}

// RefreshToken generates a new token pair from a refresh token. The old
// refresh token is rotated out.
func (s *AuthService) RefreshToken(refreshToken string) (*TokenPairResponse, error) {
	s.tokenMutex.RLock()
	tokenData, exists := s.refreshTokens[refreshToken]
	s.tokenMutex.RUnlock()

	if !exists {
		return nil, apperrors.ErrInvalidRefreshToken
	}

	if time.Now().After(tokenData.ExpiresAt) {
		// Clean up expired token
		s.tokenMutex.Lock()
		delete(s.refreshTokens, refreshToken)
		s.tokenMutex.Unlock()
		return nil, apperrors.ErrRefreshTokenExpired
	}

	developer, err := s.developers.GetByID(tokenData.DeveloperID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to get developer: %w", err)
	}

	s.tokenMutex.Lock()
	delete(s.refreshTokens, refreshToken)
	s.tokenMutex.Unlock()

	return s.issueTokens(developer, tokenData.Provider)
}

// Logout invalidates a refresh token
func (s *AuthService) Logout(refreshToken string) {
	if refreshToken == "" {
		return
	}
	s.tokenMutex.Lock()
	delete(s.refreshTokens, refreshToken)
	s.tokenMutex.Unlock()
}

// issueTokens creates a JWT and a rotating refresh token for a developer
func (s *AuthService) issueTokens(developer *models.Developer, provider string) (*TokenPairResponse, error) {
	jwtToken, err := s.GenerateJWT(developer, provider)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JWT: %w", err)
	}

	refreshToken, err := s.generateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	s.tokenMutex.Lock()
	s.refreshTokens[refreshToken] = &RefreshTokenData{
		DeveloperID: developer.ID,
		Username:    developer.Username,
		Email:       developer.Email,
		Provider:    provider,
		ExpiresAt:   time.Now().Add(30 * 24 * time.Hour), // 30 days
		CreatedAt:   time.Now(),
	}
	s.tokenMutex.Unlock()

	return &TokenPairResponse{
		AccessToken:  jwtToken,
		TokenType:    "Bearer",
		ExpiresIn:    3600, // 1 hour
		RefreshToken: refreshToken,
		Developer:    developer,
	}, nil
}

// GenerateJWT creates a JWT token for the developer
func (s *AuthService) GenerateJWT(developer *models.Developer, provider string) (string, error) {
	now := time.Now()
	claims := &AuthClaims{
		DeveloperID: developer.ID.String(),
		Username:    developer.Username,
		Email:       developer.Email,
		Provider:    provider,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "teammate-backend",
			Subject:   developer.ID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// ValidateJWT validates and parses a JWT token
func (s *AuthService) ValidateJWT(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.JWTSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*AuthClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// GenerateState generates a random state parameter for OAuth2
func (s *AuthService) GenerateState() (string, error) {
	return s.generateRandomString(32)
}

// generateRefreshToken generates a random refresh token
func (s *AuthService) generateRefreshToken() (string, error) {
	return s.generateRandomString(64)
}

// generateRandomString generates a random base64 encoded string
func (s *AuthService) generateRandomString(length int) (string, error) {
	bytes := make([]byte, length)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}
