//go:build integration
// +build integration

package service

import (
	"testing"

	"teammate-backend/internal/database/models"
	apperrors "teammate-backend/internal/errors"
	"teammate-backend/internal/repository"
	"teammate-backend/internal/testutils"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/suite"
)

// ProjectServiceTestSuite tests the ProjectService
type ProjectServiceTestSuite struct {
	suite.Suite
	baseTestSuite  *testutils.BaseTestSuite
	service        *ProjectService
	developerRepo  *repository.DeveloperRepository
	membershipRepo *repository.MembershipRepository
	factories      *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *ProjectServiceTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	db := suite.baseTestSuite.DB
	suite.developerRepo = repository.NewDeveloperRepository(db)
	suite.membershipRepo = repository.NewMembershipRepository(db)
	suite.service = NewProjectService(repository.NewProjectRepository(db), validator.New())
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *ProjectServiceTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *ProjectServiceTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *ProjectServiceTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// createOwner persists a developer to own test projects
func (suite *ProjectServiceTestSuite) createOwner() *models.Developer {
	owner := suite.factories.Developer.Create()
	suite.Require().NoError(suite.developerRepo.Create(owner))
	return owner
}

// TestCreateProjectEnrollsOwner tests that creation writes the owner's membership
func (suite *ProjectServiceTestSuite) TestCreateProjectEnrollsOwner() {
	owner := suite.createOwner()

	response, err := suite.service.CreateProject(owner.ID, &CreateProjectRequest{
		Name:   "Recipe Hub",
		Domain: "technology",
	})

	suite.NoError(err)
	suite.Equal("Recipe Hub", response.Name)
	suite.Equal(owner.ID, response.OwnerID)
	suite.NotEmpty(response.UID)
	suite.Equal(string(models.StageInitiation), response.DevelopmentStage)
	suite.False(response.OpenToCandidates)

	membership, err := suite.membershipRepo.GetByProjectAndDeveloper(response.ID, owner.ID)
	suite.NoError(err)
	suite.Equal(models.RoleTeamLead, membership.Role)
	suite.True(membership.EditProjectInfoPerm)
	suite.True(membership.AddTaskPerm)
	suite.True(membership.UpdateProjectStagePerm)
	suite.True(membership.ManageOpenRolesPerm)
}

// TestCreateProjectInvalidDomain tests domain validation
func (suite *ProjectServiceTestSuite) TestCreateProjectInvalidDomain() {
	owner := suite.createOwner()

	_, err := suite.service.CreateProject(owner.ID, &CreateProjectRequest{
		Name:   "Recipe Hub",
		Domain: "gaming",
	})

	suite.Error(err)
	suite.True(apperrors.IsValidation(err))
}

// TestUpdateStage tests stage transitions and the deploy URL rule
func (suite *ProjectServiceTestSuite) TestUpdateStage() {
	owner := suite.createOwner()

	created, err := suite.service.CreateProject(owner.ID, &CreateProjectRequest{
		Name:   "Budget Tracker",
		Domain: "finance",
	})
	suite.Require().NoError(err)

	updated, err := suite.service.UpdateStage(created.ID, &UpdateStageRequest{
		DevelopmentStage: string(models.StageImplementation),
	})
	suite.NoError(err)
	suite.Equal(string(models.StageImplementation), updated.DevelopmentStage)

	// The deployed stage needs a deploy URL
	_, err = suite.service.UpdateStage(created.ID, &UpdateStageRequest{
		DevelopmentStage: string(models.StageDeployed),
	})
	suite.Error(err)
	suite.True(apperrors.IsValidation(err))

	deployed, err := suite.service.UpdateStage(created.ID, &UpdateStageRequest{
		DevelopmentStage: string(models.StageDeployed),
		DeployURL:        "https://budget.example.com",
	})
	suite.NoError(err)
	suite.Equal(string(models.StageDeployed), deployed.DevelopmentStage)
	suite.Equal("https://budget.example.com", deployed.DeployURL)
}

// TestUpdateStageInvalid tests rejection of unknown stages
func (suite *ProjectServiceTestSuite) TestUpdateStageInvalid() {
	owner := suite.createOwner()

	created, err := suite.service.CreateProject(owner.ID, &CreateProjectRequest{
		Name:   "Budget Tracker",
		Domain: "finance",
	})
	suite.Require().NoError(err)

	_, err = suite.service.UpdateStage(created.ID, &UpdateStageRequest{
		DevelopmentStage: "production",
	})
	suite.ErrorIs(err, apperrors.ErrInvalidStage)
}

// TestUpdateProjectPartial tests that only provided fields change
func (suite *ProjectServiceTestSuite) TestUpdateProjectPartial() {
	owner := suite.createOwner()

	created, err := suite.service.CreateProject(owner.ID, &CreateProjectRequest{
		Name:        "Recipe Hub",
		Description: "Share recipes",
		Domain:      "technology",
	})
	suite.Require().NoError(err)

	newName := "Recipe Hub 2"
	updated, err := suite.service.UpdateProject(created.ID, &UpdateProjectRequest{Name: &newName})
	suite.NoError(err)
	suite.Equal("Recipe Hub 2", updated.Name)
	suite.Equal("Share recipes", updated.Description)
	suite.Equal("technology", updated.Domain)
}

// TestDeleteProject tests removal
func (suite *ProjectServiceTestSuite) TestDeleteProject() {
	owner := suite.createOwner()

	created, err := suite.service.CreateProject(owner.ID, &CreateProjectRequest{
		Name:   "Recipe Hub",
		Domain: "technology",
	})
	suite.Require().NoError(err)

	suite.NoError(suite.service.DeleteProject(created.ID))

	_, err = suite.service.GetProject(created.ID)
	suite.ErrorIs(err, apperrors.ErrProjectNotFound)
}

// TestListProjectsFirstPage tests that a default listing returns seeded projects
func (suite *ProjectServiceTestSuite) TestListProjectsFirstPage() {
	owner := suite.createOwner()

	for _, name := range []string{"Recipe Hub", "Payment Gateway", "Study Planner"} {
		_, err := suite.service.CreateProject(owner.ID, &CreateProjectRequest{
			Name:   name,
			Domain: "technology",
		})
		suite.Require().NoError(err)
	}

	listing, err := suite.service.ListProjects(&ProjectListFilters{})
	suite.NoError(err)
	suite.Equal(int64(3), listing.Total)
	suite.Len(listing.Projects, 3)
	suite.Equal(1, listing.Page)
	suite.Equal(20, listing.PageSize)
}

// TestListProjectsPagination tests that page and page size slice the listing
func (suite *ProjectServiceTestSuite) TestListProjectsPagination() {
	owner := suite.createOwner()

	for _, name := range []string{"Recipe Hub", "Payment Gateway", "Study Planner"} {
		_, err := suite.service.CreateProject(owner.ID, &CreateProjectRequest{
			Name:   name,
			Domain: "technology",
		})
		suite.Require().NoError(err)
	}

	first, err := suite.service.ListProjects(&ProjectListFilters{Page: 1, PageSize: 2})
	suite.NoError(err)
	suite.Equal(int64(3), first.Total)
	suite.Len(first.Projects, 2)

	second, err := suite.service.ListProjects(&ProjectListFilters{Page: 2, PageSize: 2})
	suite.NoError(err)
	suite.Equal(int64(3), second.Total)
	suite.Len(second.Projects, 1)
}

// TestListProjectsFilters tests narrowing the listing by name and domain
func (suite *ProjectServiceTestSuite) TestListProjectsFilters() {
	owner := suite.createOwner()

	_, err := suite.service.CreateProject(owner.ID, &CreateProjectRequest{
		Name:   "Payment Gateway",
		Domain: "finance",
	})
	suite.Require().NoError(err)
	_, err = suite.service.CreateProject(owner.ID, &CreateProjectRequest{
		Name:   "Recipe Hub",
		Domain: "technology",
	})
	suite.Require().NoError(err)

	byName, err := suite.service.ListProjects(&ProjectListFilters{Name: "payment"})
	suite.NoError(err)
	suite.Equal(int64(1), byName.Total)
	suite.Len(byName.Projects, 1)
	suite.Equal("Payment Gateway", byName.Projects[0].Name)

	byDomain, err := suite.service.ListProjects(&ProjectListFilters{Domain: "technology"})
	suite.NoError(err)
	suite.Equal(int64(1), byDomain.Total)
	suite.Len(byDomain.Projects, 1)
	suite.Equal("Recipe Hub", byDomain.Projects[0].Name)
}

// TestProjectServiceTestSuite runs the test suite
func TestProjectServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectServiceTestSuite))
}
