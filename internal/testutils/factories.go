package testutils

import (
	"fmt"
	"time"

	"teammate-backend/internal/database/models"

	"github.com/google/uuid"
)

// DeveloperFactory provides methods to create test Developer data
type DeveloperFactory struct{}

// NewDeveloperFactory creates a new DeveloperFactory
func NewDeveloperFactory() *DeveloperFactory {
	return &DeveloperFactory{}
}

// Create creates a test Developer with default values.
// Username and email include part of the UUID to avoid unique-index conflicts.
func (f *DeveloperFactory) Create() *models.Developer {
	id := uuid.New()
	short := id.String()[:8]

	return &models.Developer{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Username:  "dev-" + short,
		Email:     fmt.Sprintf("dev-%s@test.com", short),
		Position:  models.PositionBackend,
		TechStack: "go,postgres",
	}
}

// WithUsername sets a custom username for the developer
func (f *DeveloperFactory) WithUsername(username string) *models.Developer {
	dev := f.Create()
	dev.Username = username
	dev.Email = username + "@test.com"
	return dev
}

// WithPosition sets a custom position for the developer
func (f *DeveloperFactory) WithPosition(position models.DeveloperPosition) *models.Developer {
	dev := f.Create()
	dev.Position = position
	return dev
}

// WithGitHubID sets a GitHub account ID for the developer
func (f *DeveloperFactory) WithGitHubID(githubID int64) *models.Developer {
	dev := f.Create()
	dev.GitHubID = &githubID
	return dev
}

// ProjectFactory provides methods to create test Project data
type ProjectFactory struct{}

// NewProjectFactory creates a new ProjectFactory
func NewProjectFactory() *ProjectFactory {
	return &ProjectFactory{}
}

// Create creates a test Project owned by the given developer
func (f *ProjectFactory) Create(ownerID uuid.UUID) *models.Project {
	id := uuid.New()

	return &models.Project{
		BaseModel: models.BaseModel{
			ID:        id,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		UID:              id.String(),
		Name:             "Test Project " + id.String()[:8],
		Description:      "A test project",
		Domain:           models.DomainTechnology,
		DevelopmentStage: models.StageInitiation,
		OwnerID:          ownerID,
	}
}

// WithStage sets the development stage for the project
func (f *ProjectFactory) WithStage(ownerID uuid.UUID, stage models.DevelopmentStage) *models.Project {
	project := f.Create(ownerID)
	project.DevelopmentStage = stage
	if stage.RequiresDeployURL() {
		project.DeployURL = "https://example.com"
	}
	return project
}

// WithDomain sets the business domain for the project
func (f *ProjectFactory) WithDomain(ownerID uuid.UUID, domain models.ProjectDomain) *models.Project {
	project := f.Create(ownerID)
	project.Domain = domain
	return project
}

// MembershipFactory provides methods to create test Membership data
type MembershipFactory struct{}

// NewMembershipFactory creates a new MembershipFactory
func NewMembershipFactory() *MembershipFactory {
	return &MembershipFactory{}
}

// Create creates a test Membership with the developer role and no capabilities
func (f *MembershipFactory) Create(projectID, developerID uuid.UUID) *models.Membership {
	return &models.Membership{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		ProjectID:   projectID,
		DeveloperID: developerID,
		Role:        models.RoleDeveloper,
	}
}

// WithRole sets a custom role for the membership
func (f *MembershipFactory) WithRole(projectID, developerID uuid.UUID, role models.MembershipRole) *models.Membership {
	membership := f.Create(projectID, developerID)
	membership.Role = role
	return membership
}

// WithAllCapabilities creates a membership holding every capability
func (f *MembershipFactory) WithAllCapabilities(projectID, developerID uuid.UUID) *models.Membership {
	membership := f.Create(projectID, developerID)
	membership.GrantAll()
	return membership
}

// OpenRoleFactory provides methods to create test ProjectOpenRole data
type OpenRoleFactory struct{}

// NewOpenRoleFactory creates a new OpenRoleFactory
func NewOpenRoleFactory() *OpenRoleFactory {
	return &OpenRoleFactory{}
}

// Create creates a test open role advertising a developer position
func (f *OpenRoleFactory) Create(projectID uuid.UUID) *models.ProjectOpenRole {
	return &models.ProjectOpenRole{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		ProjectID: projectID,
		RoleName:  models.RoleDeveloper,
		Message:   "Looking for a backend developer",
	}
}

// WithRoleName sets the advertised role name
func (f *OpenRoleFactory) WithRoleName(projectID uuid.UUID, roleName models.MembershipRole) *models.ProjectOpenRole {
	role := f.Create(projectID)
	role.RoleName = roleName
	return role
}

// ApplicationFactory provides methods to create test ProjectApplication data
type ApplicationFactory struct{}

// NewApplicationFactory creates a new ApplicationFactory
func NewApplicationFactory() *ApplicationFactory {
	return &ApplicationFactory{}
}

// Create creates a pending test application
func (f *ApplicationFactory) Create(projectID, developerID, openRoleID uuid.UUID) *models.ProjectApplication {
	return &models.ProjectApplication{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		ProjectID:   projectID,
		DeveloperID: developerID,
		OpenRoleID:  openRoleID,
		Status:      models.ApplicationPending,
		Message:     "I would like to join",
	}
}

// WithStatus sets a custom status for the application
func (f *ApplicationFactory) WithStatus(projectID, developerID, openRoleID uuid.UUID, status models.ApplicationStatus) *models.ProjectApplication {
	application := f.Create(projectID, developerID, openRoleID)
	application.Status = status
	return application
}

// RatingFactory provides methods to create test ProjectRating data
type RatingFactory struct{}

// NewRatingFactory creates a new RatingFactory
func NewRatingFactory() *RatingFactory {
	return &RatingFactory{}
}

// Create creates a test rating with the given score
func (f *RatingFactory) Create(projectID, raterID uuid.UUID, score int) *models.ProjectRating {
	return &models.ProjectRating{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		ProjectID: projectID,
		RaterID:   raterID,
		Score:     score,
		Comment:   "Solid work",
	}
}

// TaskFactory provides methods to create test Task data
type TaskFactory struct{}

// NewTaskFactory creates a new TaskFactory
func NewTaskFactory() *TaskFactory {
	return &TaskFactory{}
}

// Create creates a test Task in the todo status
func (f *TaskFactory) Create(projectID uuid.UUID, createdByID uuid.UUID) *models.Task {
	return &models.Task{
		BaseModel: models.BaseModel{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		ProjectID:   projectID,
		Title:       "Test Task " + uuid.New().String()[:8],
		Description: "A test task",
		Status:      models.TaskTodo,
		CreatedByID: &createdByID,
	}
}

// WithAssignee sets the assignee for the task
func (f *TaskFactory) WithAssignee(projectID, createdByID, assigneeID uuid.UUID) *models.Task {
	task := f.Create(projectID, createdByID)
	task.AssigneeID = &assigneeID
	return task
}

// FactorySet provides access to all factories
type FactorySet struct {
	Developer   *DeveloperFactory
	Project     *ProjectFactory
	Membership  *MembershipFactory
	OpenRole    *OpenRoleFactory
	Application *ApplicationFactory
	Rating      *RatingFactory
	Task        *TaskFactory
}

// NewFactorySet creates a new FactorySet with all factories initialized
func NewFactorySet() *FactorySet {
	return &FactorySet{
		Developer:   NewDeveloperFactory(),
		Project:     NewProjectFactory(),
		Membership:  NewMembershipFactory(),
		OpenRole:    NewOpenRoleFactory(),
		Application: NewApplicationFactory(),
		Rating:      NewRatingFactory(),
		Task:        NewTaskFactory(),
	}
}

// CreateProjectWithOwner creates an owner developer, their project, and the
// owner's membership carrying every capability. Nothing is persisted.
func (fs *FactorySet) CreateProjectWithOwner() (*models.Developer, *models.Project, *models.Membership) {
	owner := fs.Developer.Create()
	project := fs.Project.Create(owner.ID)
	membership := fs.Membership.WithRole(project.ID, owner.ID, models.RoleTeamLead)
	membership.GrantAll()
	return owner, project, membership
}
