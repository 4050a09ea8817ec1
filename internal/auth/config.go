package auth

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// AuthConfig holds all authentication configuration for the application
type AuthConfig struct {
	JWTSecret   string         `mapstructure:"jwt_secret" yaml:"jwt_secret" json:"jwt_secret"`
	RedirectURL string         `mapstructure:"redirect_url" yaml:"redirect_url" json:"redirect_url"`
	GitHub      ProviderConfig `mapstructure:"github" yaml:"github" json:"github"`
}

// ProviderConfig holds OAuth client configuration for GitHub
type ProviderConfig struct {
	ClientID          string `mapstructure:"client_id" yaml:"client_id" json:"client_id"`
	ClientSecret      string `mapstructure:"client_secret" yaml:"client_secret" json:"client_secret"`
	EnterpriseBaseURL string `mapstructure:"enterprise_base_url" yaml:"enterprise_base_url,omitempty" json:"enterprise_base_url,omitempty"`
}

// LoadAuthConfig loads and validates authentication configuration
func LoadAuthConfig(configPath string) (*AuthConfig, error) {
	// Create a new viper instance for auth config
	v := viper.New()

	// Set config file details
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("auth")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Set default values
	v.SetDefault("redirect_url", "http://localhost:3000")

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading auth config file: %w", err)
		}
		// Config file not found, use defaults and environment variables
	}

	// Override with environment variables
	v.AutomaticEnv()

	var config AuthConfig
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling auth config: %w", err)
	}

	// Override with environment variables for sensitive data
	if jwtSecret := os.Getenv("JWT_SECRET"); jwtSecret != "" {
		config.JWTSecret = jwtSecret
	}
	if redirectURL := os.Getenv("AUTH_REDIRECT_URL"); redirectURL != "" {
		config.RedirectURL = redirectURL
	}
	if clientID := os.Getenv("GITHUB_APP_CLIENT_ID"); clientID != "" {
		config.GitHub.ClientID = clientID
	}
	if clientSecret := os.Getenv("GITHUB_APP_CLIENT_SECRET"); clientSecret != "" {
		config.GitHub.ClientSecret = clientSecret
	}
	if baseURL := os.Getenv("GITHUB_ENTERPRISE_BASE_URL"); baseURL != "" {
		config.GitHub.EnterpriseBaseURL = baseURL
	}

	// Validate configuration
	if err := config.ValidateConfig(); err != nil {
		return nil, fmt.Errorf("auth config validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfig validates the authentication configuration
func (c *AuthConfig) ValidateConfig() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.RedirectURL == "" {
		return fmt.Errorf("redirect URL is required")
	}
	return nil
}

// GitHubConfigured reports whether the GitHub OAuth flow is usable
func (c *AuthConfig) GitHubConfigured() bool {
	return c.GitHub.ClientID != "" && c.GitHub.ClientSecret != ""
}
