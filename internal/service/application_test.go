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
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// ApplicationServiceTestSuite tests the application workflow
type ApplicationServiceTestSuite struct {
	suite.Suite
	baseTestSuite  *testutils.BaseTestSuite
	service        *ApplicationService
	developerRepo  *repository.DeveloperRepository
	projectRepo    *repository.ProjectRepository
	membershipRepo *repository.MembershipRepository
	openRoleRepo   *repository.OpenRoleRepository
	factories      *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *ApplicationServiceTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	db := suite.baseTestSuite.DB
	suite.developerRepo = repository.NewDeveloperRepository(db)
	suite.projectRepo = repository.NewProjectRepository(db)
	suite.membershipRepo = repository.NewMembershipRepository(db)
	suite.openRoleRepo = repository.NewOpenRoleRepository(db)
	suite.service = NewApplicationService(
		repository.NewApplicationRepository(db),
		suite.projectRepo,
		suite.membershipRepo,
		suite.openRoleRepo,
		validator.New(),
	)
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *ApplicationServiceTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *ApplicationServiceTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *ApplicationServiceTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// setupOpenRole persists a project advertising one open role plus a candidate
func (suite *ApplicationServiceTestSuite) setupOpenRole() (*models.Developer, *models.Project, *models.ProjectOpenRole, *models.Developer) {
	owner := suite.factories.Developer.Create()
	suite.Require().NoError(suite.developerRepo.Create(owner))

	project := suite.factories.Project.Create(owner.ID)
	membership := suite.factories.Membership.WithRole(project.ID, owner.ID, models.RoleTeamLead)
	suite.Require().NoError(suite.projectRepo.Create(project, membership))

	role := suite.factories.OpenRole.WithRoleName(project.ID, models.RolePM)
	suite.Require().NoError(suite.openRoleRepo.Create(role))

	candidate := suite.factories.Developer.Create()
	suite.Require().NoError(suite.developerRepo.Create(candidate))

	return owner, project, role, candidate
}

// TestApply tests submitting an application
func (suite *ApplicationServiceTestSuite) TestApply() {
	_, project, role, candidate := suite.setupOpenRole()

	response, err := suite.service.Apply(candidate.ID, project.ID, &ApplyRequest{
		OpenRoleID: role.ID,
		Message:    "I have shipped three PM-led projects",
	})

	suite.NoError(err)
	suite.Equal(models.ApplicationPending, response.Status)
	suite.Equal(candidate.ID, response.DeveloperID)
}

// TestApplyOwnerRejected tests that a project member cannot apply
func (suite *ApplicationServiceTestSuite) TestApplyOwnerRejected() {
	owner, project, role, _ := suite.setupOpenRole()

	_, err := suite.service.Apply(owner.ID, project.ID, &ApplyRequest{OpenRoleID: role.ID})
	suite.ErrorIs(err, apperrors.ErrCannotApplyOwn)
}

// TestApplyForeignOpenRole tests that the role must belong to the target project
func (suite *ApplicationServiceTestSuite) TestApplyForeignOpenRole() {
	_, project, _, candidate := suite.setupOpenRole()
	_, _, otherRole, _ := suite.setupOpenRole()

	_, err := suite.service.Apply(candidate.ID, project.ID, &ApplyRequest{OpenRoleID: otherRole.ID})
	suite.ErrorIs(err, apperrors.ErrOpenRoleNotFound)
}

// TestApplyDuplicatePending tests that a second pending application conflicts
func (suite *ApplicationServiceTestSuite) TestApplyDuplicatePending() {
	_, project, role, candidate := suite.setupOpenRole()

	_, err := suite.service.Apply(candidate.ID, project.ID, &ApplyRequest{OpenRoleID: role.ID})
	suite.Require().NoError(err)

	_, err = suite.service.Apply(candidate.ID, project.ID, &ApplyRequest{OpenRoleID: role.ID})
	suite.ErrorIs(err, apperrors.ErrApplicationExists)
}

// TestApproveCreatesMembership tests the accept path end to end
func (suite *ApplicationServiceTestSuite) TestApproveCreatesMembership() {
	_, project, role, candidate := suite.setupOpenRole()

	applied, err := suite.service.Apply(candidate.ID, project.ID, &ApplyRequest{OpenRoleID: role.ID})
	suite.Require().NoError(err)

	approved, err := suite.service.Approve(applied.ID)
	suite.NoError(err)
	suite.Equal(models.ApplicationAccepted, approved.Status)

	// The membership carries the advertised role and no capabilities
	membership, err := suite.membershipRepo.GetByProjectAndDeveloper(project.ID, candidate.ID)
	suite.NoError(err)
	suite.Equal(models.RolePM, membership.Role)
	suite.False(membership.EditProjectInfoPerm)
	suite.False(membership.AddTaskPerm)
	suite.False(membership.UpdateProjectStagePerm)
	suite.False(membership.ManageOpenRolesPerm)
}

// TestApproveTwice tests that a processed application cannot be approved again
func (suite *ApplicationServiceTestSuite) TestApproveTwice() {
	_, project, role, candidate := suite.setupOpenRole()

	applied, err := suite.service.Apply(candidate.ID, project.ID, &ApplyRequest{OpenRoleID: role.ID})
	suite.Require().NoError(err)

	_, err = suite.service.Approve(applied.ID)
	suite.Require().NoError(err)

	_, err = suite.service.Approve(applied.ID)
	suite.ErrorIs(err, apperrors.ErrApplicationProcessed)
}

// TestReject tests the reject path and reapplying afterwards
func (suite *ApplicationServiceTestSuite) TestReject() {
	_, project, role, candidate := suite.setupOpenRole()

	applied, err := suite.service.Apply(candidate.ID, project.ID, &ApplyRequest{OpenRoleID: role.ID})
	suite.Require().NoError(err)

	rejected, err := suite.service.Reject(applied.ID)
	suite.NoError(err)
	suite.Equal(models.ApplicationRejected, rejected.Status)

	// A rejected application is terminal
	_, err = suite.service.Reject(applied.ID)
	suite.ErrorIs(err, apperrors.ErrApplicationProcessed)

	// The candidate may apply again
	_, err = suite.service.Apply(candidate.ID, project.ID, &ApplyRequest{OpenRoleID: role.ID})
	suite.NoError(err)
}

// TestGetApplicationNotFound tests the missing-application path
func (suite *ApplicationServiceTestSuite) TestGetApplicationNotFound() {
	_, err := suite.service.GetApplication(uuid.New())
	suite.ErrorIs(err, apperrors.ErrApplicationNotFound)
}

// TestApplicationServiceTestSuite runs the test suite
func TestApplicationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicationServiceTestSuite))
}
