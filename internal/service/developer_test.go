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

// DeveloperServiceTestSuite tests account management and profile scoring
type DeveloperServiceTestSuite struct {
	suite.Suite
	baseTestSuite  *testutils.BaseTestSuite
	service        *DeveloperService
	developerRepo  *repository.DeveloperRepository
	projectRepo    *repository.ProjectRepository
	membershipRepo *repository.MembershipRepository
	factories      *testutils.FactorySet
}

// SetupSuite runs before all tests in the suite
func (suite *DeveloperServiceTestSuite) SetupSuite() {
	suite.baseTestSuite = testutils.SetupTestSuite(suite.T())
	db := suite.baseTestSuite.DB
	suite.developerRepo = repository.NewDeveloperRepository(db)
	suite.projectRepo = repository.NewProjectRepository(db)
	suite.membershipRepo = repository.NewMembershipRepository(db)
	suite.service = NewDeveloperService(suite.developerRepo, validator.New())
	suite.factories = testutils.NewFactorySet()
}

// TearDownSuite runs after all tests in the suite
func (suite *DeveloperServiceTestSuite) TearDownSuite() {
	suite.baseTestSuite.TeardownTestSuite()
}

// SetupTest runs before each test
func (suite *DeveloperServiceTestSuite) SetupTest() {
	suite.baseTestSuite.SetupTest()
}

// TearDownTest runs after each test
func (suite *DeveloperServiceTestSuite) TearDownTest() {
	suite.baseTestSuite.TearDownTest()
}

// TestRegister tests account registration
func (suite *DeveloperServiceTestSuite) TestRegister() {
	response, err := suite.service.Register(&RegisterDeveloperRequest{
		Username: "alice",
		Email:    "alice@test.com",
		Password: "correcthorse",
		Position: "Backend",
	})

	suite.NoError(err)
	suite.Equal("alice", response.Username)
	// Position is normalized to lower case
	suite.Equal("backend", response.Position)

	stored, err := suite.developerRepo.GetByUsername("alice")
	suite.NoError(err)
	suite.NotEmpty(stored.PasswordHash)
	suite.NotEqual("correcthorse", stored.PasswordHash)
}

// TestRegisterDuplicate tests the unique username/email rule
func (suite *DeveloperServiceTestSuite) TestRegisterDuplicate() {
	_, err := suite.service.Register(&RegisterDeveloperRequest{
		Username: "alice",
		Email:    "alice@test.com",
		Password: "correcthorse",
		Position: "backend",
	})
	suite.Require().NoError(err)

	_, err = suite.service.Register(&RegisterDeveloperRequest{
		Username: "alice",
		Email:    "other@test.com",
		Password: "correcthorse",
		Position: "backend",
	})
	suite.ErrorIs(err, apperrors.ErrDeveloperExists)
}

// TestRegisterInvalidPosition tests position validation
func (suite *DeveloperServiceTestSuite) TestRegisterInvalidPosition() {
	_, err := suite.service.Register(&RegisterDeveloperRequest{
		Username: "alice",
		Email:    "alice@test.com",
		Password: "correcthorse",
		Position: "wizard",
	})
	suite.Error(err)
	suite.True(apperrors.IsValidation(err))
}

// TestGetProfileScore tests that the profile carries the rounded member-project average
func (suite *DeveloperServiceTestSuite) TestGetProfileScore() {
	developer := suite.factories.Developer.Create()
	suite.Require().NoError(suite.developerRepo.Create(developer))

	// Enroll the developer in two scored projects
	for _, score := range []float64{4.0, 5.0} {
		owner := suite.factories.Developer.Create()
		suite.Require().NoError(suite.developerRepo.Create(owner))

		project := suite.factories.Project.Create(owner.ID)
		membership := suite.factories.Membership.WithRole(project.ID, owner.ID, models.RoleTeamLead)
		suite.Require().NoError(suite.projectRepo.Create(project, membership))
		suite.Require().NoError(suite.projectRepo.UpdateScore(project.ID, score))

		suite.Require().NoError(suite.membershipRepo.Create(
			suite.factories.Membership.Create(project.ID, developer.ID)))
	}

	profile, err := suite.service.GetProfile(developer.ID)
	suite.NoError(err)
	suite.Equal(4.5, profile.Score)
}

// TestSearch tests the paginated username search
func (suite *DeveloperServiceTestSuite) TestSearch() {
	for _, username := range []string{"alice", "alicia", "bob"} {
		_, err := suite.service.Register(&RegisterDeveloperRequest{
			Username: username,
			Email:    username + "@test.com",
			Password: "correcthorse",
			Position: "backend",
		})
		suite.Require().NoError(err)
	}

	result, err := suite.service.Search("ali", 1, 10)
	suite.NoError(err)
	suite.EqualValues(2, result.Total)
	suite.Len(result.Developers, 2)
}

// TestLeaderboard tests the score-ordered ranking
func (suite *DeveloperServiceTestSuite) TestLeaderboard() {
	high := suite.factories.Developer.WithUsername("high")
	low := suite.factories.Developer.WithUsername("low")
	suite.Require().NoError(suite.developerRepo.Create(high))
	suite.Require().NoError(suite.developerRepo.Create(low))

	for developer, score := range map[*models.Developer]float64{high: 5.0, low: 2.0} {
		project := suite.factories.Project.Create(developer.ID)
		membership := suite.factories.Membership.WithRole(project.ID, developer.ID, models.RoleTeamLead)
		suite.Require().NoError(suite.projectRepo.Create(project, membership))
		suite.Require().NoError(suite.projectRepo.UpdateScore(project.ID, score))
	}

	ranked, err := suite.service.Leaderboard(10)
	suite.NoError(err)
	suite.Require().Len(ranked, 2)
	suite.Equal("high", ranked[0].Username)
	suite.Equal(5.0, ranked[0].Score)
	suite.Equal("low", ranked[1].Username)
}

// TestDeveloperServiceTestSuite runs the test suite
func TestDeveloperServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DeveloperServiceTestSuite))
}
