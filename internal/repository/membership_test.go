//go:build integration
// +build integration

package repository

import (
	"testing"

	"teammate-backend/internal/database/models"
	"teammate-backend/internal/testutils"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// MembershipRepositoryTestSuite tests the MembershipRepository
type MembershipRepositoryTestSuite struct {
	suite.Suite
	baseTestSuite *testutils.BaseTestSuite
	repo          *MembershipRepository
	developerRepo *DeveloperRepository
	projectRepo   *ProjectRepository
	factories     *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *MembershipRepositoryTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	suite.repo = NewMembershipRepository(suite.baseTestSuite.DB)
	suite.developerRepo = NewDeveloperRepository(suite.baseTestSuite.DB)
	suite.projectRepo = NewProjectRepository(suite.baseTestSuite.DB)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *MembershipRepositoryTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *MembershipRepositoryTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *MembershipRepositoryTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// createProject persists an owner and their project for membership tests
func (suite *MembershipRepositoryTestSuite) createProject() *models.Project {
	owner := suite.factories.Developer.Create()
	suite.Require().NoError(suite.developerRepo.Create(owner))

	project := suite.factories.Project.Create(owner.ID)
	membership := suite.factories.Membership.WithRole(project.ID, owner.ID, models.RoleTeamLead)
	suite.Require().NoError(suite.projectRepo.Create(project, membership))
	return project
}

// TestCreate tests creating a membership
func (suite *MembershipRepositoryTestSuite) TestCreate() {
	project := suite.createProject()

	developer := suite.factories.Developer.Create()
	suite.Require().NoError(suite.developerRepo.Create(developer))

	membership := suite.factories.Membership.Create(project.ID, developer.ID)
	err := suite.repo.Create(membership)

	suite.NoError(err)
	suite.Equal(models.RoleDeveloper, membership.Role)
	suite.False(membership.EditProjectInfoPerm)
}

// TestCreateDuplicatePair tests the unique index on (project, developer)
func (suite *MembershipRepositoryTestSuite) TestCreateDuplicatePair() {
	project := suite.createProject()

	developer := suite.factories.Developer.Create()
	suite.Require().NoError(suite.developerRepo.Create(developer))

	first := suite.factories.Membership.Create(project.ID, developer.ID)
	suite.Require().NoError(suite.repo.Create(first))

	second := suite.factories.Membership.WithRole(project.ID, developer.ID, models.RolePM)
	err := suite.repo.Create(second)

	suite.ErrorIs(err, gorm.ErrDuplicatedKey)
}

// TestGetByProjectAndDeveloper tests the pair lookup
func (suite *MembershipRepositoryTestSuite) TestGetByProjectAndDeveloper() {
	project := suite.createProject()

	developer := suite.factories.Developer.Create()
	suite.Require().NoError(suite.developerRepo.Create(developer))

	membership := suite.factories.Membership.WithRole(project.ID, developer.ID, models.RoleMentor)
	suite.Require().NoError(suite.repo.Create(membership))

	found, err := suite.repo.GetByProjectAndDeveloper(project.ID, developer.ID)
	suite.NoError(err)
	suite.Equal(models.RoleMentor, found.Role)

	other := suite.factories.Developer.Create()
	suite.Require().NoError(suite.developerRepo.Create(other))

	_, err = suite.repo.GetByProjectAndDeveloper(project.ID, other.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestExistsByProjectAndDeveloper tests the existence check
func (suite *MembershipRepositoryTestSuite) TestExistsByProjectAndDeveloper() {
	project := suite.createProject()

	developer := suite.factories.Developer.Create()
	suite.Require().NoError(suite.developerRepo.Create(developer))

	exists, err := suite.repo.ExistsByProjectAndDeveloper(project.ID, developer.ID)
	suite.NoError(err)
	suite.False(exists)

	suite.Require().NoError(suite.repo.Create(suite.factories.Membership.Create(project.ID, developer.ID)))

	exists, err = suite.repo.ExistsByProjectAndDeveloper(project.ID, developer.ID)
	suite.NoError(err)
	suite.True(exists)
}

// TestUpdateAndDelete tests mutating and removing a membership
func (suite *MembershipRepositoryTestSuite) TestUpdateAndDelete() {
	project := suite.createProject()

	developer := suite.factories.Developer.Create()
	suite.Require().NoError(suite.developerRepo.Create(developer))

	membership := suite.factories.Membership.Create(project.ID, developer.ID)
	suite.Require().NoError(suite.repo.Create(membership))

	membership.AddTaskPerm = true
	membership.Role = models.RolePM
	suite.Require().NoError(suite.repo.Update(membership))

	stored, err := suite.repo.GetByID(membership.ID)
	suite.NoError(err)
	suite.True(stored.AddTaskPerm)
	suite.Equal(models.RolePM, stored.Role)

	suite.Require().NoError(suite.repo.Delete(membership.ID))

	_, err = suite.repo.GetByID(membership.ID)
	suite.ErrorIs(err, gorm.ErrRecordNotFound)
}

// TestMembershipRepositoryTestSuite runs the test suite
func TestMembershipRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(MembershipRepositoryTestSuite))
}
