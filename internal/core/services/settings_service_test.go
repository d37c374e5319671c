package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lanewise/freight_tms_app/internal/apperrors"
	"github.com/lanewise/freight_tms_app/internal/core/domain"
	portsrepo "github.com/lanewise/freight_tms_app/internal/core/ports/repositories"
	portssvc "github.com/lanewise/freight_tms_app/internal/core/ports/services"
	"github.com/lanewise/freight_tms_app/internal/core/services"
)

// --- Mock SettingsRepository ---

type MockSettingsRepository struct {
	mock.Mock
}

var _ portsrepo.SettingsRepository = (*MockSettingsRepository)(nil)

func (m *MockSettingsRepository) FindSettingByKey(ctx context.Context, key string) (*domain.Setting, error) {
	args := m.Called(ctx, key)
	var setting *domain.Setting
	if args.Get(0) != nil {
		setting = args.Get(0).(*domain.Setting)
	}
	return setting, args.Error(1)
}

func (m *MockSettingsRepository) UpsertSetting(ctx context.Context, setting domain.Setting) error {
	args := m.Called(ctx, setting)
	return args.Error(0)
}

// --- Test Suite ---

// The cache is nil throughout: a nil SettingsCache degrades to misses, which
// is also how the app runs when Redis is not configured.
type SettingsServiceTestSuite struct {
	suite.Suite
	mockRepo *MockSettingsRepository
	service  portssvc.SettingsSvc
}

func (suite *SettingsServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockSettingsRepository)
	suite.service = services.NewSettingsService(suite.mockRepo, nil)
}

func (suite *SettingsServiceTestSuite) TestGetQuoteFormSettings_Stored() {
	ctx := context.Background()
	value, err := json.Marshal(domain.QuoteFormSettings{QuoteNumberPrefix: "ACME-", RequiredFields: []string{"shipperID"}})
	suite.Require().NoError(err)

	suite.mockRepo.On("FindSettingByKey", ctx, domain.SettingsKeyQuoteForm).
		Return(&domain.Setting{Key: domain.SettingsKeyQuoteForm, Value: value}, nil).Once()

	settings, err := suite.service.GetQuoteFormSettings(ctx)

	suite.Require().NoError(err)
	suite.Equal("ACME-", settings.QuoteNumberPrefix)
	suite.Equal([]string{"shipperID"}, settings.RequiredFields)
}

func (suite *SettingsServiceTestSuite) TestGetQuoteFormSettings_DefaultsWhenUnset() {
	ctx := context.Background()
	suite.mockRepo.On("FindSettingByKey", ctx, domain.SettingsKeyQuoteForm).
		Return(nil, apperrors.ErrNotFound).Once()

	settings, err := suite.service.GetQuoteFormSettings(ctx)

	suite.Require().NoError(err)
	suite.Equal(domain.DefaultQuoteNumberPrefix, settings.QuoteNumberPrefix)
}

func (suite *SettingsServiceTestSuite) TestGetQuoteFormSettings_DefaultsOnMalformedValue() {
	ctx := context.Background()
	suite.mockRepo.On("FindSettingByKey", ctx, domain.SettingsKeyQuoteForm).
		Return(&domain.Setting{Key: domain.SettingsKeyQuoteForm, Value: []byte("not json")}, nil).Once()

	settings, err := suite.service.GetQuoteFormSettings(ctx)

	suite.Require().NoError(err)
	suite.Equal(domain.DefaultQuoteNumberPrefix, settings.QuoteNumberPrefix)
}

func (suite *SettingsServiceTestSuite) TestGetQuoteFormSettings_EmptyPrefixGetsDefault() {
	ctx := context.Background()
	value, err := json.Marshal(domain.QuoteFormSettings{QuoteNumberPrefix: ""})
	suite.Require().NoError(err)

	suite.mockRepo.On("FindSettingByKey", ctx, domain.SettingsKeyQuoteForm).
		Return(&domain.Setting{Key: domain.SettingsKeyQuoteForm, Value: value}, nil).Once()

	settings, err := suite.service.GetQuoteFormSettings(ctx)

	suite.Require().NoError(err)
	suite.Equal(domain.DefaultQuoteNumberPrefix, settings.QuoteNumberPrefix)
}

func (suite *SettingsServiceTestSuite) TestSaveQuoteFormSettings() {
	ctx := context.Background()

	suite.mockRepo.On("UpsertSetting", ctx, mock.MatchedBy(func(setting domain.Setting) bool {
		var stored domain.QuoteFormSettings
		if setting.Key != domain.SettingsKeyQuoteForm {
			return false
		}
		if err := json.Unmarshal(setting.Value, &stored); err != nil {
			return false
		}
		return stored.QuoteNumberPrefix == "NEW-" && setting.LastUpdatedBy == "admin-1"
	})).Return(nil).Once()

	err := suite.service.SaveQuoteFormSettings(ctx, domain.QuoteFormSettings{QuoteNumberPrefix: "NEW-"}, "admin-1")

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestSettingsService(t *testing.T) {
	suite.Run(t, new(SettingsServiceTestSuite))
}
