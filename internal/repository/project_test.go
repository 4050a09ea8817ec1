//go:build integration
// +build integration

package repository

import (
	"testing"

	"teammate-backend/internal/database/models"
	"teammate-backend/internal/testutils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// ProjectRepositoryTestSuite tests the ProjectRepository
type ProjectRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite  *testutils.BaseTestSuite
	repo           *ProjectRepository
	developerRepo  *DeveloperRepository
	membershipRepo *MembershipRepository
	factories      *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *ProjectRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewProjectRepository(suite.baseTestSuite.DB)
	suite.developerRepo = NewDeveloperRepository(suite.baseTestSuite.DB)
	suite.membershipRepo = NewMembershipRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *ProjectRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *ProjectRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *ProjectRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// createOwner persists a developer to own test projects
func (suite *ProjectRepositoryTestSuite) createOwner() *models.Developer {
	owner := suite.factories.Developer.Create()
	suite.Require().NoError(suite.developerRepo.Create(owner))
	return owner
}

// TestCreateWithOwnerMembership tests that creating a project also enrolls the owner
func (suite *ProjectRepositoryTestSuite) TestCreateWithOwnerMembership() {
	owner := suite.createOwner()

	project := suite.factories.Project.Create(owner.ID)
	membership := suite.factories.Membership.WithRole(project.ID, owner.ID, models.RoleTeamLead)
	membership.GrantAll()

	err := suite.repo.Create(project, membership)
	suite.NoError(err)
	suite.NotEqual(uuid.Nil, project.ID)
	suite.NotEmpty(project.UID)

	// The owner's membership was written in the same transaction
	stored, err := suite.membershipRepo.GetByProjectAndDeveloper(project.ID, owner.ID)
	suite.NoError(err)
	suite.Equal(models.RoleTeamLead, stored.Role)
	suite.True(stored.EditProjectInfoPerm)
	suite.True(stored.AddTaskPerm)
	suite.True(stored.UpdateProjectStagePerm)
	suite.True(stored.ManageOpenRolesPerm)
}

// TestGetByUID tests retrieving a project via its external identifier
func (suite *ProjectRepositoryTestSuite) TestGetByUID() {
	owner := suite.createOwner()
	project := suite.factories.Project.Create(owner.ID)
	membership := suite.factories.Membership.WithRole(project.ID, owner.ID, models.RoleTeamLead)
	suite.Require().NoError(suite.repo.Create(project, membership))

	found, err := suite.repo.GetByUID(project.UID)
	suite.NoError(err)
	suite.Equal(project.ID, found.ID)

	_, err = suite.repo.GetByUID("no-such-uid")
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestListFilters tests the listing filters
func (suite *ProjectRepositoryTestSuite) TestListFilters() {
	owner := suite.createOwner()

	techProject := suite.factories.Project.WithDomain(owner.ID, models.DomainTechnology)
	techProject.Name = "Payment Gateway"
	suite.Require().NoError(suite.repo.Create(techProject,
		suite.factories.Membership.WithRole(techProject.ID, owner.ID, models.RoleTeamLead)))

	financeProject := suite.factories.Project.WithDomain(owner.ID, models.DomainFinance)
	financeProject.Name = "Budget Tracker"
	suite.Require().NoError(suite.repo.Create(financeProject,
		suite.factories.Membership.WithRole(financeProject.ID, owner.ID, models.RoleTeamLead)))

	projects, total, err := suite.repo.List(ProjectFilters{Domain: models.DomainFinance}, 20, 0)
	suite.NoError(err)
	suite.EqualValues(1, total)
	suite.Len(projects, 1)
	suite.Equal("Budget Tracker", projects[0].Name)

	// Name filter matches case-insensitively on a substring
	projects, total, err = suite.repo.List(ProjectFilters{Name: "payment"}, 20, 0)
	suite.NoError(err)
	suite.EqualValues(1, total)
	suite.Equal("Payment Gateway", projects[0].Name)

	ownerID := owner.ID
	_, total, err = suite.repo.List(ProjectFilters{OwnerID: &ownerID}, 20, 0)
	suite.NoError(err)
	suite.EqualValues(2, total)
}

// TestListOpenToCandidatesFilter tests filtering by the derived flag
func (suite *ProjectRepositoryTestSuite) TestListOpenToCandidatesFilter() {
	owner := suite.createOwner()
	project := suite.factories.Project.Create(owner.ID)
	suite.Require().NoError(suite.repo.Create(project,
		suite.factories.Membership.WithRole(project.ID, owner.ID, models.RoleTeamLead)))

	open := true
	_, total, err := suite.repo.List(ProjectFilters{OpenToCandidates: &open}, 20, 0)
	suite.NoError(err)
	suite.EqualValues(0, total)

	suite.Require().NoError(suite.repo.UpdateOpenToCandidates(project.ID, true))

	_, total, err = suite.repo.List(ProjectFilters{OpenToCandidates: &open}, 20, 0)
	suite.NoError(err)
	suite.EqualValues(1, total)
}

// TestUpdateScore tests persisting the derived rating score
func (suite *ProjectRepositoryTestSuite) TestUpdateScore() {
	owner := suite.createOwner()
	project := suite.factories.Project.Create(owner.ID)
	suite.Require().NoError(suite.repo.Create(project,
		suite.factories.Membership.WithRole(project.ID, owner.ID, models.RoleTeamLead)))

	suite.Require().NoError(suite.repo.UpdateScore(project.ID, 4.33))

	stored, err := suite.repo.GetByID(project.ID)
	suite.NoError(err)
	suite.Equal(4.33, stored.Score)
}

// TestDeleteCascades tests that deleting a project removes dependent rows
func (suite *ProjectRepositoryTestSuite) TestDeleteCascades() {
	owner := suite.createOwner()
	project := suite.factories.Project.Create(owner.ID)
	suite.Require().NoError(suite.repo.Create(project,
		suite.factories.Membership.WithRole(project.ID, owner.ID, models.RoleTeamLead)))

	openRoleRepo := NewOpenRoleRepository(suite.baseTestSuite.DB)
	role := suite.factories.OpenRole.Create(project.ID)
	suite.Require().NoError(openRoleRepo.Create(role))

	suite.Require().NoError(suite.repo.Delete(project.ID))

	_, err := suite.repo.GetByID(project.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	_, err = suite.membershipRepo.GetByProjectAndDeveloper(project.ID, owner.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)

	count, err := openRoleRepo.CountByProject(project.ID)
	suite.NoError(err)
	suite.EqualValues(0, count)
}

// TestProjectRepositoryTestSuite runs the test suite
func TestProjectRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectRepositoryTestSuite))
}
