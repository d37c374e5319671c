package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lanewise/freight_tms_app/internal/apperrors"
	"github.com/lanewise/freight_tms_app/internal/core/domain"
	portsrepo "github.com/lanewise/freight_tms_app/internal/core/ports/repositories"
	portssvc "github.com/lanewise/freight_tms_app/internal/core/ports/services"
	"github.com/lanewise/freight_tms_app/internal/core/services"
	"github.com/lanewise/freight_tms_app/internal/dto"
	"github.com/lanewise/freight_tms_app/internal/utils"
)

// --- Mock UserRepository ---

type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	args := m.Called(ctx, username)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, limit int, nextToken *string) ([]domain.User, *string, error) {
	args := m.Called(ctx, limit, nextToken)
	var users []domain.User
	if args.Get(0) != nil {
		users = args.Get(0).([]domain.User)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return users, token, args.Error(2)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeactivateUser(ctx context.Context, userID string, updatedBy string) error {
	args := m.Called(ctx, userID, updatedBy)
	return args.Error(0)
}

// --- Test Suite ---

type UserServiceTestSuite struct {
	suite.Suite
	mockRepo *MockUserRepository
	service  portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockRepo)
}

// --- CreateUser Tests ---

func (suite *UserServiceTestSuite) TestCreateUser_Success() {
	ctx := context.Background()
	req := dto.CreateUserRequest{
		Username: "dispatcher1",
		Name:     "Dana Dispatcher",
		Password: "s3cret-pass",
	}

	suite.mockRepo.On("SaveUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Username == "dispatcher1" &&
			user.Name == "Dana Dispatcher" &&
			user.IsActive &&
			user.PasswordHash != "" &&
			user.PasswordHash != "s3cret-pass"
	})).Return(nil).Once()

	created, err := suite.service.CreateUser(ctx, req, "admin-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.UserID)
	suite.Equal("admin-1", created.CreatedBy)
	suite.True(utils.CheckPasswordHash("s3cret-pass", created.PasswordHash))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestCreateUser_DuplicateUsername() {
	ctx := context.Background()
	req := dto.CreateUserRequest{Username: "dispatcher1", Name: "Dana", Password: "s3cret-pass"}

	suite.mockRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Return(apperrors.ErrDuplicate).Once()

	created, err := suite.service.CreateUser(ctx, req, "admin-1")

	suite.Nil(created)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(409, appErr.Code)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- UpdateUser Tests ---

func (suite *UserServiceTestSuite) TestUpdateUser_RehashesPassword() {
	ctx := context.Background()
	oldHash, err := utils.HashPassword("old-password")
	suite.Require().NoError(err)

	existing := &domain.User{UserID: "user-7", Username: "dispatcher1", Name: "Dana", PasswordHash: oldHash, IsActive: true}
	newPassword := "new-password-123"

	suite.mockRepo.On("FindUserByID", ctx, "user-7").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.PasswordHash != oldHash && user.LastUpdatedBy == "admin-1"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(ctx, "user-7", dto.UpdateUserRequest{Password: &newPassword}, "admin-1")

	suite.Require().NoError(err)
	suite.True(utils.CheckPasswordHash(newPassword, updated.PasswordHash))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestUpdateUser_NameOnlyKeepsHash() {
	ctx := context.Background()
	oldHash, err := utils.HashPassword("old-password")
	suite.Require().NoError(err)

	existing := &domain.User{UserID: "user-7", Username: "dispatcher1", Name: "Dana", PasswordHash: oldHash, IsActive: true}
	newName := "Dana D."

	suite.mockRepo.On("FindUserByID", ctx, "user-7").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	updated, err := suite.service.UpdateUser(ctx, "user-7", dto.UpdateUserRequest{Name: &newName}, "admin-1")

	suite.Require().NoError(err)
	suite.Equal("Dana D.", updated.Name)
	suite.Equal(oldHash, updated.PasswordHash)
}

// --- AuthenticateUser Tests ---

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)

	user := &domain.User{UserID: "user-7", Username: "dispatcher1", PasswordHash: hash, IsActive: true}
	suite.mockRepo.On("FindUserByUsername", ctx, "dispatcher1").Return(user, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "dispatcher1", "correct-horse")

	suite.Require().NoError(err)
	suite.Equal("user-7", authed.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)

	user := &domain.User{UserID: "user-7", Username: "dispatcher1", PasswordHash: hash, IsActive: true}
	suite.mockRepo.On("FindUserByUsername", ctx, "dispatcher1").Return(user, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "dispatcher1", "wrong")

	suite.Nil(authed)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(401, appErr.Code)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownUsername() {
	ctx := context.Background()
	suite.mockRepo.On("FindUserByUsername", ctx, "nobody").Return(nil, apperrors.ErrNotFound).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "nobody", "whatever")

	suite.Nil(authed)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(401, appErr.Code, "unknown users and wrong passwords are indistinguishable")
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_DeactivatedAccount() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct-horse")
	suite.Require().NoError(err)

	user := &domain.User{UserID: "user-7", Username: "dispatcher1", PasswordHash: hash, IsActive: false}
	suite.mockRepo.On("FindUserByUsername", ctx, "dispatcher1").Return(user, nil).Once()

	authed, err := suite.service.AuthenticateUser(ctx, "dispatcher1", "correct-horse")

	suite.Nil(authed)
	var appErr *apperrors.AppError
	suite.Require().ErrorAs(err, &appErr)
	suite.Equal(403, appErr.Code)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

// --- DeactivateUser Tests ---

func (suite *UserServiceTestSuite) TestDeactivateUser() {
	ctx := context.Background()
	suite.mockRepo.On("DeactivateUser", ctx, "user-7", "admin-1").Return(nil).Once()

	err := suite.service.DeactivateUser(ctx, "user-7", "admin-1")

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestDeactivateUser_PropagatesError() {
	ctx := context.Background()
	suite.mockRepo.On("DeactivateUser", ctx, "user-7", "admin-1").Return(assert.AnError).Once()

	err := suite.service.DeactivateUser(ctx, "user-7", "admin-1")

	suite.ErrorIs(err, assert.AnError)
}

func TestUserService(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
