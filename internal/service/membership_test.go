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

// MembershipServiceTestSuite tests roster management
type MembershipServiceTestSuite struct {
	suite.Suite
	baseTestSuite  *testutils.BaseTestSuite
	service        *MembershipService
	developerRepo  *repository.DeveloperRepository
	projectRepo    *repository.ProjectRepository
	membershipRepo *repository.MembershipRepository
	factories      *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *MembershipServiceTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	db := suite.baseTestSuite.DB
	suite.developerRepo = repository.NewDeveloperRepository(db)
	suite.projectRepo = repository.NewProjectRepository(db)
	suite.membershipRepo = repository.NewMembershipRepository(db)
	suite.service = NewMembershipService(suite.membershipRepo, suite.projectRepo, validator.New())
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *MembershipServiceTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *MembershipServiceTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *MembershipServiceTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// setupProject persists a project with its owner membership and one member
func (suite *MembershipServiceTestSuite) setupProject() (*models.Project, *models.Membership, *models.Membership) {
	owner := suite.factories.Developer.Create()
	suite.Require().NoError(suite.developerRepo.Create(owner))

	project := suite.factories.Project.Create(owner.ID)
	ownerMembership := suite.factories.Membership.WithRole(project.ID, owner.ID, models.RoleTeamLead)
	ownerMembership.GrantAll()
	suite.Require().NoError(suite.projectRepo.Create(project, ownerMembership))

	member := suite.factories.Developer.Create()
	suite.Require().NoError(suite.developerRepo.Create(member))
	memberMembership := suite.factories.Membership.Create(project.ID, member.ID)
	suite.Require().NoError(suite.membershipRepo.Create(memberMembership))

	return project, ownerMembership, memberMembership
}

// TestListByProject tests the roster listing
func (suite *MembershipServiceTestSuite) TestListByProject() {
	project, _, _ := suite.setupProject()

	memberships, err := suite.service.ListByProject(project.ID)
	suite.NoError(err)
	suite.Len(memberships, 2)
}

// TestUpdateMembership tests role and capability changes
func (suite *MembershipServiceTestSuite) TestUpdateMembership() {
	project, _, memberMembership := suite.setupProject()

	role := string(models.RolePM)
	addTask := true
	updated, err := suite.service.UpdateMembership(project.ID, memberMembership.ID, &UpdateMembershipRequest{
		Role:        &role,
		AddTaskPerm: &addTask,
	})

	suite.NoError(err)
	suite.Equal(models.RolePM, updated.Role)
	suite.True(updated.AddTaskPerm)
	suite.False(updated.EditProjectInfoPerm)
}

// TestUpdateOwnerMembershipRejected tests that the owner's membership is immutable
func (suite *MembershipServiceTestSuite) TestUpdateOwnerMembershipRejected() {
	project, ownerMembership, _ := suite.setupProject()

	role := string(models.RoleDeveloper)
	_, err := suite.service.UpdateMembership(project.ID, ownerMembership.ID, &UpdateMembershipRequest{
		Role: &role,
	})
	suite.ErrorIs(err, apperrors.ErrOwnerMembership)
}

// TestUpdateInvalidRole tests rejection of unknown role names
func (suite *MembershipServiceTestSuite) TestUpdateInvalidRole() {
	project, _, memberMembership := suite.setupProject()

	role := "ADMIN"
	_, err := suite.service.UpdateMembership(project.ID, memberMembership.ID, &UpdateMembershipRequest{
		Role: &role,
	})
	suite.ErrorIs(err, apperrors.ErrInvalidRole)
}

// TestRemoveMembership tests removing a member
func (suite *MembershipServiceTestSuite) TestRemoveMembership() {
	project, _, memberMembership := suite.setupProject()

	suite.NoError(suite.service.RemoveMembership(project.ID, memberMembership.ID))

	memberships, err := suite.service.ListByProject(project.ID)
	suite.NoError(err)
	suite.Len(memberships, 1)
}

// TestRemoveOwnerMembershipRejected tests that the owner cannot be removed
func (suite *MembershipServiceTestSuite) TestRemoveOwnerMembershipRejected() {
	project, ownerMembership, _ := suite.setupProject()

	err := suite.service.RemoveMembership(project.ID, ownerMembership.ID)
	suite.ErrorIs(err, apperrors.ErrOwnerMembership)
}

// TestMembershipFromOtherProject tests that membership IDs are scoped to the project
func (suite *MembershipServiceTestSuite) TestMembershipFromOtherProject() {
	project, _, _ := suite.setupProject()
	_, _, otherMembership := suite.setupProject()

	err := suite.service.RemoveMembership(project.ID, otherMembership.ID)
	suite.ErrorIs(err, apperrors.ErrMembershipNotFound)
}

// TestMembershipServiceTestSuite runs the test suite
func TestMembershipServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MembershipServiceTestSuite))
}
