package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"teammate-backend/internal/config"
	"teammate-backend/internal/database"
	"teammate-backend/internal/database/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Simple structures that directly match DB schema
type DeveloperData struct {
	Username  string `yaml:"username"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password,omitempty"`
	Position  string `yaml:"position"`
	TechStack string `yaml:"tech_stack,omitempty"`
}

type OpenRoleData struct {
	RoleName string `yaml:"role_name"`
	Message  string `yaml:"message,omitempty"`
}

type MembershipData struct {
	Username string `yaml:"username"`
	Role     string `yaml:"role"`
}

type ProjectData struct {
	Name             string           `yaml:"name"`
	OwnerUsername    string           `yaml:"owner_username"`
	Description      string           `yaml:"description"`
	Domain           string           `yaml:"domain"`
	DevelopmentStage string           `yaml:"development_stage"`
	DeployURL        string           `yaml:"deploy_url,omitempty"`
	ProjectURL       string           `yaml:"project_url,omitempty"`
	Members          []MembershipData `yaml:"members,omitempty"`
	OpenRoles        []OpenRoleData   `yaml:"open_roles,omitempty"`
}

// File structures
type DevelopersFile struct {
	Developers []DeveloperData `yaml:"developers"`
}

type ProjectsFile struct {
	Projects []ProjectData `yaml:"projects"`
}

func main() {
	log.Println("Loading initial data from YAML files...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database with retry (for dockerized Postgres startup)
	db, err := connectWithRetry(cfg.DatabaseURL, 60, time.Second)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := loadDataFromYAMLFiles(db, "scripts/data"); err != nil {
		log.Fatalf("Failed to load data from YAML files: %v", err)
	}

	log.Println("Initial data loaded successfully")
}

// connectWithRetry attempts to initialize the DB with retries to wait for Postgres readiness.
func connectWithRetry(dsn string, maxAttempts int, delay time.Duration) (*gorm.DB, error) {
	// Suppress verbose GORM logging during data loading
	opts := &database.Options{
		LogLevel: logger.Silent,
	}

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		db, err := database.Initialize(dsn, opts)
		if err == nil {
			return db, nil
		}
		if attempt%10 == 0 || attempt == maxAttempts {
			log.Printf("Database not ready (%d/%d): %v", attempt, maxAttempts, err)
		}
		time.Sleep(delay)
	}
	return nil, fmt.Errorf("database not ready after %d attempts", maxAttempts)
}

func loadDataFromYAMLFiles(db *gorm.DB, dataDir string) error {
	developers, err := loadDevelopers(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load developers: %w", err)
	}

	projects, err := loadProjects(dataDir)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	if err := seedDevelopers(db, developers); err != nil {
		return err
	}
	if err := seedProjects(db, projects); err != nil {
		return err
	}

	log.Printf("Seeded %d developers and %d projects", len(developers), len(projects))
	return nil
}

func loadDevelopers(dataDir string) ([]DeveloperData, error) {
	var file DevelopersFile
	if err := readYAML(filepath.Join(dataDir, "developers.yaml"), &file); err != nil {
		return nil, err
	}
	return file.Developers, nil
}

func loadProjects(dataDir string) ([]ProjectData, error) {
	var file ProjectsFile
	if err := readYAML(filepath.Join(dataDir, "projects.yaml"), &file); err != nil {
		return nil, err
	}
	return file.Projects, nil
}

func readYAML(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Skipping %s: file not found", path)
			return nil
		}
		return err
	}
	return yaml.Unmarshal(data, out)
}

func seedDevelopers(db *gorm.DB, developers []DeveloperData) error {
	for _, data := range developers {
		var existing models.Developer
		err := db.Where("username = ?", data.Username).First(&existing).Error
		if err == nil {
			continue // already seeded
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to check developer %s: %w", data.Username, err)
		}

		developer := models.Developer{
			Username:  data.Username,
			Email:     data.Email,
			Position:  models.DeveloperPosition(strings.ToLower(data.Position)),
			TechStack: data.TechStack,
		}
		if !developer.Position.IsValid() {
			return fmt.Errorf("developer %s has invalid position %q", data.Username, data.Position)
		}
		if data.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(data.Password), bcrypt.DefaultCost)
			if err != nil {
				return fmt.Errorf("failed to hash password for %s: %w", data.Username, err)
			}
			developer.PasswordHash = string(hash)
		}

		if err := db.Create(&developer).Error; err != nil {
			return fmt.Errorf("failed to create developer %s: %w", data.Username, err)
		}
		log.Printf("Created developer: %s", data.Username)
	}
	return nil
}

func seedProjects(db *gorm.DB, projects []ProjectData) error {
	for _, data := range projects {
		var owner models.Developer
		if err := db.Where("username = ?", data.OwnerUsername).First(&owner).Error; err != nil {
			return fmt.Errorf("owner %s for project %s not found: %w", data.OwnerUsername, data.Name, err)
		}

		var existing models.Project
		err := db.Where("name = ? AND owner_id = ?", data.Name, owner.ID).First(&existing).Error
		if err == nil {
			continue // already seeded
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to check project %s: %w", data.Name, err)
		}

		stage := models.DevelopmentStage(strings.ToLower(data.DevelopmentStage))
		if data.DevelopmentStage == "" {
			stage = models.StageInitiation
		}
		if !stage.IsValid() {
			return fmt.Errorf("project %s has invalid stage %q", data.Name, data.DevelopmentStage)
		}

		project := models.Project{
			Name:             data.Name,
			Description:      data.Description,
			Domain:           models.ProjectDomain(strings.ToLower(data.Domain)),
			DevelopmentStage: stage,
			DeployURL:        data.DeployURL,
			ProjectURL:       data.ProjectURL,
			OwnerID:          owner.ID,
		}
		if !project.Domain.IsValid() {
			return fmt.Errorf("project %s has invalid domain %q", data.Name, data.Domain)
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&project).Error; err != nil {
				return err
			}

			// The owner joins as a lead with every capability granted
			ownerMembership := models.Membership{
				ProjectID:   project.ID,
				DeveloperID: owner.ID,
				Role:        models.RoleTeamLead,
			}
			ownerMembership.GrantAll()
			if err := tx.Create(&ownerMembership).Error; err != nil {
				return err
			}

			for _, member := range data.Members {
				var developer models.Developer
				if err := tx.Where("username = ?", member.Username).First(&developer).Error; err != nil {
					return fmt.Errorf("member %s not found: %w", member.Username, err)
				}
				role := models.MembershipRole(member.Role)
				if !role.IsValid() {
					return fmt.Errorf("member %s has invalid role %q", member.Username, member.Role)
				}
				membership := models.Membership{
					ProjectID:   project.ID,
					DeveloperID: developer.ID,
					Role:        role,
				}
				if err := tx.Create(&membership).Error; err != nil {
					return err
				}
			}

			for _, role := range data.OpenRoles {
				roleName := models.MembershipRole(role.RoleName)
				if !roleName.IsValid() {
					return fmt.Errorf("open role %q is not a valid role", role.RoleName)
				}
				openRole := models.ProjectOpenRole{
					ProjectID: project.ID,
					RoleName:  roleName,
					Message:   role.Message,
				}
				if err := tx.Create(&openRole).Error; err != nil {
					return err
				}
			}

			if len(data.OpenRoles) > 0 {
				if err := tx.Model(&models.Project{}).Where("id = ?", project.ID).
					Update("open_to_candidates", true).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to create project %s: %w", data.Name, err)
		}
		log.Printf("Created project: %s", data.Name)
	}
	return nil
}
