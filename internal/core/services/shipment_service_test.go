package services_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lanewise/freight_tms_app/internal/core/domain"
	portsrepo "github.com/lanewise/freight_tms_app/internal/core/ports/repositories"
	portssvc "github.com/lanewise/freight_tms_app/internal/core/ports/services"
	"github.com/lanewise/freight_tms_app/internal/core/services"
	"github.com/lanewise/freight_tms_app/internal/dto"
	"github.com/lanewise/freight_tms_app/internal/platform/tasks"
)

// --- Mock ShipmentRepository ---

type MockShipmentRepository struct {
	mock.Mock
}

var _ portsrepo.ShipmentRepositoryFacade = (*MockShipmentRepository)(nil)

func (m *MockShipmentRepository) FindShipmentByID(ctx context.Context, shipmentID string) (*domain.Shipment, error) {
	args := m.Called(ctx, shipmentID)
	var shipment *domain.Shipment
	if args.Get(0) != nil {
		shipment = args.Get(0).(*domain.Shipment)
	}
	return shipment, args.Error(1)
}

func (m *MockShipmentRepository) ShipmentNumberExists(ctx context.Context, shipmentNumber string) (bool, error) {
	args := m.Called(ctx, shipmentNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockShipmentRepository) ListShipments(ctx context.Context, filter portsrepo.ListShipmentsFilter, limit int, nextToken *string) ([]domain.Shipment, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var shipments []domain.Shipment
	if args.Get(0) != nil {
		shipments = args.Get(0).([]domain.Shipment)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return shipments, token, args.Error(2)
}

func (m *MockShipmentRepository) SaveShipment(ctx context.Context, shipment domain.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *MockShipmentRepository) UpdateShipment(ctx context.Context, shipment domain.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *MockShipmentRepository) DeleteShipment(ctx context.Context, shipmentID string) error {
	args := m.Called(ctx, shipmentID)
	return args.Error(0)
}

// --- Mock SettingsSvc ---

type MockSettingsSvc struct {
	mock.Mock
}

var _ portssvc.SettingsSvc = (*MockSettingsSvc)(nil)

func (m *MockSettingsSvc) GetQuoteFormSettings(ctx context.Context) (*domain.QuoteFormSettings, error) {
	args := m.Called(ctx)
	var settings *domain.QuoteFormSettings
	if args.Get(0) != nil {
		settings = args.Get(0).(*domain.QuoteFormSettings)
	}
	return settings, args.Error(1)
}

func (m *MockSettingsSvc) SaveQuoteFormSettings(ctx context.Context, settings domain.QuoteFormSettings, requestingUserID string) error {
	args := m.Called(ctx, settings, requestingUserID)
	return args.Error(0)
}

// --- Mock LaneRateRecorder ---

type MockLaneRateRecorder struct {
	mock.Mock
}

var _ portssvc.LaneRateRecorderSvc = (*MockLaneRateRecorder)(nil)

func (m *MockLaneRateRecorder) RecordFromShipment(ctx context.Context, shipment domain.Shipment, actorUserID string) {
	m.Called(ctx, shipment, actorUserID)
}

func (m *MockLaneRateRecorder) DeleteForShipment(ctx context.Context, shipmentID string) error {
	args := m.Called(ctx, shipmentID)
	return args.Error(0)
}

// --- Test Suite ---

type ShipmentServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockShipmentRepository
	mockSettings *MockSettingsSvc
	mockRecorder *MockLaneRateRecorder
	runner       *tasks.Runner
	service      portssvc.ShipmentSvcFacade
}

func (suite *ShipmentServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockShipmentRepository)
	suite.mockSettings = new(MockSettingsSvc)
	suite.mockRecorder = new(MockLaneRateRecorder)
	suite.runner = tasks.NewRunner(slog.New(slog.NewTextHandler(io.Discard, nil)), time.Second)
	suite.service = services.NewShipmentService(suite.mockRepo, suite.mockSettings, suite.mockRecorder, suite.runner)
}

// drainRunner blocks until all dispatched background tasks have finished, so
// the recorder mock can be asserted deterministically.
func (suite *ShipmentServiceTestSuite) drainRunner() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	suite.Require().NoError(suite.runner.Wait(ctx))
}

func createShipmentRequest(status domain.ShipmentStatus) dto.CreateShipmentRequest {
	carrierID := "carrier-9"
	return dto.CreateShipmentRequest{
		Status:          status,
		CarrierID:       &carrierID,
		ModeOfTransport: "truckload",
		EquipmentType:   "53' dry van",
		Stops: []dto.StopRequest{
			{Type: domain.StopPickup, City: "Chicago", State: "IL"},
			{Type: domain.StopDropoff, City: "Dallas", State: "TX"},
		},
		CustomerRate:     decimal.NewFromInt(2000),
		CarrierCostTotal: decimal.NewFromInt(1600),
	}
}

// --- CreateShipment Tests ---

func (suite *ShipmentServiceTestSuite) TestCreateShipment_QuoteUsesConfiguredPrefix() {
	ctx := context.Background()
	req := createShipmentRequest(domain.StatusQuote)

	suite.mockSettings.On("GetQuoteFormSettings", ctx).
		Return(&domain.QuoteFormSettings{QuoteNumberPrefix: "ACME-"}, nil).Once()
	suite.mockRepo.On("ShipmentNumberExists", ctx, mock.MatchedBy(func(number string) bool {
		return strings.HasPrefix(number, "ACME-")
	})).Return(false, nil).Once()
	suite.mockRepo.On("SaveShipment", ctx, mock.AnythingOfType("domain.Shipment")).Return(nil).Once()
	suite.mockRecorder.On("RecordFromShipment", mock.Anything, mock.AnythingOfType("domain.Shipment"), "user-1").Return().Once()

	created, err := suite.service.CreateShipment(ctx, req, "user-1")
	suite.drainRunner()

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.True(strings.HasPrefix(created.ShipmentNumber, "ACME-"))
	suite.Len(created.ShipmentNumber, len("ACME-")+8)
	suite.Equal("user-1", created.CreatedBy)

	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockSettings.AssertExpectations(suite.T())
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *ShipmentServiceTestSuite) TestCreateShipment_QuotePrefixFallsBackOnSettingsError() {
	ctx := context.Background()
	req := createShipmentRequest(domain.StatusQuote)

	suite.mockSettings.On("GetQuoteFormSettings", ctx).Return(nil, assert.AnError).Once()
	suite.mockRepo.On("ShipmentNumberExists", ctx, mock.MatchedBy(func(number string) bool {
		return strings.HasPrefix(number, domain.DefaultQuoteNumberPrefix)
	})).Return(false, nil).Once()
	suite.mockRepo.On("SaveShipment", ctx, mock.AnythingOfType("domain.Shipment")).Return(nil).Once()
	suite.mockRecorder.On("RecordFromShipment", mock.Anything, mock.AnythingOfType("domain.Shipment"), "user-1").Return().Once()

	created, err := suite.service.CreateShipment(ctx, req, "user-1")
	suite.drainRunner()

	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(created.ShipmentNumber, domain.DefaultQuoteNumberPrefix))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ShipmentServiceTestSuite) TestCreateShipment_PrefixFromModeOfTransport() {
	cases := []struct {
		mode   string
		prefix string
	}{
		{"truckload", "TR"},
		{"rail-ramp", "RA"},
		{"ltl", "LT"},
		{"", domain.GeneralNumberPrefix},
	}

	for _, tc := range cases {
		suite.Run("mode_"+tc.mode, func() {
			repo := new(MockShipmentRepository)
			recorder := new(MockLaneRateRecorder)
			runner := tasks.NewRunner(slog.New(slog.NewTextHandler(io.Discard, nil)), time.Second)
			svc := services.NewShipmentService(repo, suite.mockSettings, recorder, runner)

			ctx := context.Background()
			req := createShipmentRequest(domain.StatusBooked)
			req.ModeOfTransport = tc.mode

			repo.On("ShipmentNumberExists", ctx, mock.MatchedBy(func(number string) bool {
				return strings.HasPrefix(number, tc.prefix)
			})).Return(false, nil).Once()
			repo.On("SaveShipment", ctx, mock.AnythingOfType("domain.Shipment")).Return(nil).Once()
			recorder.On("RecordFromShipment", mock.Anything, mock.AnythingOfType("domain.Shipment"), "user-1").Return().Once()

			created, err := svc.CreateShipment(ctx, req, "user-1")

			waitCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			suite.Require().NoError(runner.Wait(waitCtx))

			suite.Require().NoError(err)
			suite.True(strings.HasPrefix(created.ShipmentNumber, tc.prefix), "number %s should start with %s", created.ShipmentNumber, tc.prefix)
			repo.AssertExpectations(suite.T())
		})
	}
}

func (suite *ShipmentServiceTestSuite) TestCreateShipment_RetriesOnNumberCollision() {
	ctx := context.Background()
	req := createShipmentRequest(domain.StatusBooked)

	// first candidate collides, second is free
	suite.mockRepo.On("ShipmentNumberExists", ctx, mock.AnythingOfType("string")).Return(true, nil).Once()
	suite.mockRepo.On("ShipmentNumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockRepo.On("SaveShipment", ctx, mock.AnythingOfType("domain.Shipment")).Return(nil).Once()
	suite.mockRecorder.On("RecordFromShipment", mock.Anything, mock.AnythingOfType("domain.Shipment"), "user-1").Return().Once()

	created, err := suite.service.CreateShipment(ctx, req, "user-1")
	suite.drainRunner()

	suite.Require().NoError(err)
	suite.NotEmpty(created.ShipmentNumber)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ShipmentServiceTestSuite) TestCreateShipment_DerivesFinancialTotals() {
	ctx := context.Background()
	req := createShipmentRequest(domain.StatusBooked)
	req.FSCType = domain.FSCPercentage
	req.FSCCustomerAmount = decimal.NewFromInt(10)
	req.FSCCarrierAmount = decimal.NewFromInt(10)
	req.Accessorials = []dto.AccessorialRequest{
		{Name: "Liftgate", CustomerRate: decimal.NewFromInt(100), CarrierCost: decimal.NewFromInt(80)},
	}

	suite.mockRepo.On("ShipmentNumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockRepo.On("SaveShipment", ctx, mock.MatchedBy(func(s domain.Shipment) bool {
		// 2000 + 200 FSC + 100 accessorial = 2300; 1600 + 160 + 80 = 1840
		return s.TotalCustomerRate.Equal(decimal.NewFromInt(2300)) &&
			s.TotalCarrierCost.Equal(decimal.NewFromInt(1840)) &&
			s.GrossProfit.Equal(decimal.NewFromInt(460))
	})).Return(nil).Once()
	suite.mockRecorder.On("RecordFromShipment", mock.Anything, mock.AnythingOfType("domain.Shipment"), "user-1").Return().Once()

	created, err := suite.service.CreateShipment(ctx, req, "user-1")
	suite.drainRunner()

	suite.Require().NoError(err)
	suite.True(created.GrossProfit.Equal(decimal.NewFromInt(460)))
	suite.False(created.Margin.IsZero())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ShipmentServiceTestSuite) TestCreateShipment_StopsGetSequenceAndIDs() {
	ctx := context.Background()
	req := createShipmentRequest(domain.StatusBooked)

	suite.mockRepo.On("ShipmentNumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockRepo.On("SaveShipment", ctx, mock.MatchedBy(func(s domain.Shipment) bool {
		return len(s.Stops) == 2 &&
			s.Stops[0].Sequence == 0 && s.Stops[1].Sequence == 1 &&
			s.Stops[0].StopID != "" && s.Stops[1].StopID != ""
	})).Return(nil).Once()
	suite.mockRecorder.On("RecordFromShipment", mock.Anything, mock.AnythingOfType("domain.Shipment"), "user-1").Return().Once()

	_, err := suite.service.CreateShipment(ctx, req, "user-1")
	suite.drainRunner()

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ShipmentServiceTestSuite) TestCreateShipment_SaveErrorSkipsRecorder() {
	ctx := context.Background()
	req := createShipmentRequest(domain.StatusBooked)

	suite.mockRepo.On("ShipmentNumberExists", ctx, mock.AnythingOfType("string")).Return(false, nil).Once()
	suite.mockRepo.On("SaveShipment", ctx, mock.AnythingOfType("domain.Shipment")).Return(assert.AnError).Once()

	created, err := suite.service.CreateShipment(ctx, req, "user-1")
	suite.drainRunner()

	suite.ErrorIs(err, assert.AnError)
	suite.Nil(created)
	suite.mockRecorder.AssertNotCalled(suite.T(), "RecordFromShipment", mock.Anything, mock.Anything, mock.Anything)
}

// --- UpdateShipment Tests ---

func existingShipment() *domain.Shipment {
	carrierID := "carrier-9"
	createdAt := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	return &domain.Shipment{
		ShipmentID:      "ship-42",
		ShipmentNumber:  "TR-11111111",
		Status:          domain.StatusBooked,
		CarrierID:       &carrierID,
		ModeOfTransport: "truckload",
		Stops: []domain.Stop{
			{StopID: "s1", Sequence: 0, Type: domain.StopPickup, City: "Chicago", State: "IL"},
			{StopID: "s2", Sequence: 1, Type: domain.StopDropoff, City: "Dallas", State: "TX"},
		},
		CustomerRate:     decimal.NewFromInt(2000),
		CarrierCostTotal: decimal.NewFromInt(1600),
		AuditFields: domain.AuditFields{
			CreatedAt:     createdAt,
			CreatedBy:     "user-creator",
			LastUpdatedAt: createdAt,
			LastUpdatedBy: "user-creator",
		},
	}
}

func (suite *ShipmentServiceTestSuite) TestUpdateShipment_NumberNeverChanges() {
	ctx := context.Background()
	newStatus := domain.StatusDelivered

	suite.mockRepo.On("FindShipmentByID", ctx, "ship-42").Return(existingShipment(), nil).Once()
	suite.mockRepo.On("UpdateShipment", ctx, mock.MatchedBy(func(s domain.Shipment) bool {
		return s.ShipmentNumber == "TR-11111111" && s.Status == domain.StatusDelivered
	})).Return(nil).Once()
	suite.mockRecorder.On("RecordFromShipment", mock.Anything, mock.AnythingOfType("domain.Shipment"), "user-2").Return().Once()

	updated, err := suite.service.UpdateShipment(ctx, "ship-42", dto.UpdateShipmentRequest{Status: &newStatus}, "user-2")
	suite.drainRunner()

	suite.Require().NoError(err)
	suite.Equal("TR-11111111", updated.ShipmentNumber)
	suite.Equal("user-2", updated.LastUpdatedBy)
	suite.Equal("user-creator", updated.CreatedBy, "creation audit stamp survives updates")
	suite.mockRepo.AssertExpectations(suite.T())
	suite.mockRecorder.AssertExpectations(suite.T())
}

func (suite *ShipmentServiceTestSuite) TestUpdateShipment_RederivesTotals() {
	ctx := context.Background()
	newRate := decimal.NewFromInt(2500)

	suite.mockRepo.On("FindShipmentByID", ctx, "ship-42").Return(existingShipment(), nil).Once()
	suite.mockRepo.On("UpdateShipment", ctx, mock.MatchedBy(func(s domain.Shipment) bool {
		return s.TotalCustomerRate.Equal(decimal.NewFromInt(2500)) &&
			s.GrossProfit.Equal(decimal.NewFromInt(900))
	})).Return(nil).Once()
	suite.mockRecorder.On("RecordFromShipment", mock.Anything, mock.AnythingOfType("domain.Shipment"), "user-2").Return().Once()

	updated, err := suite.service.UpdateShipment(ctx, "ship-42", dto.UpdateShipmentRequest{CustomerRate: &newRate}, "user-2")
	suite.drainRunner()

	suite.Require().NoError(err)
	suite.True(updated.GrossProfit.Equal(decimal.NewFromInt(900)))
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ShipmentServiceTestSuite) TestUpdateShipment_NilSlicesLeaveChildrenUntouched() {
	ctx := context.Background()
	newStatus := domain.StatusDelivered

	suite.mockRepo.On("FindShipmentByID", ctx, "ship-42").Return(existingShipment(), nil).Once()
	suite.mockRepo.On("UpdateShipment", ctx, mock.MatchedBy(func(s domain.Shipment) bool {
		return len(s.Stops) == 2 && s.Stops[0].StopID == "s1"
	})).Return(nil).Once()
	suite.mockRecorder.On("RecordFromShipment", mock.Anything, mock.AnythingOfType("domain.Shipment"), "user-2").Return().Once()

	_, err := suite.service.UpdateShipment(ctx, "ship-42", dto.UpdateShipmentRequest{Status: &newStatus}, "user-2")
	suite.drainRunner()

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ShipmentServiceTestSuite) TestUpdateShipment_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindShipmentByID", ctx, "missing").Return(nil, assert.AnError).Once()

	updated, err := suite.service.UpdateShipment(ctx, "missing", dto.UpdateShipmentRequest{}, "user-2")

	suite.ErrorIs(err, assert.AnError)
	suite.Nil(updated)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateShipment", mock.Anything, mock.Anything)
}

// --- DeleteShipment Tests ---

func (suite *ShipmentServiceTestSuite) TestDeleteShipment_RemovesDerivedLaneRateFirst() {
	ctx := context.Background()

	suite.mockRecorder.On("DeleteForShipment", ctx, "ship-42").Return(nil).Once()
	suite.mockRepo.On("DeleteShipment", ctx, "ship-42").Return(nil).Once()

	err := suite.service.DeleteShipment(ctx, "ship-42", "user-2")

	suite.NoError(err)
	suite.mockRecorder.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ShipmentServiceTestSuite) TestDeleteShipment_AbortsWhenLaneRateDeleteFails() {
	ctx := context.Background()

	suite.mockRecorder.On("DeleteForShipment", ctx, "ship-42").Return(assert.AnError).Once()

	err := suite.service.DeleteShipment(ctx, "ship-42", "user-2")

	suite.ErrorIs(err, assert.AnError)
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteShipment", mock.Anything, mock.Anything)
}

// --- Read Tests ---

func (suite *ShipmentServiceTestSuite) TestGetShipmentByID() {
	ctx := context.Background()
	expected := existingShipment()

	suite.mockRepo.On("FindShipmentByID", ctx, "ship-42").Return(expected, nil).Once()

	shipment, err := suite.service.GetShipmentByID(ctx, "ship-42")

	suite.Require().NoError(err)
	suite.Equal(expected, shipment)
}

func (suite *ShipmentServiceTestSuite) TestListShipments_MapsFilter() {
	ctx := context.Background()
	status := "booked"
	shipperID := "shipper-3"
	params := dto.ListShipmentsParams{Limit: 20, Status: &status, ShipperID: &shipperID}

	expectedStatus := domain.StatusBooked
	suite.mockRepo.On("ListShipments", ctx, mock.MatchedBy(func(f portsrepo.ListShipmentsFilter) bool {
		return f.Status != nil && *f.Status == expectedStatus && f.ShipperID == &shipperID
	}), 20, (*string)(nil)).Return([]domain.Shipment{*existingShipment()}, nil, nil).Once()

	res, err := suite.service.ListShipments(ctx, params)

	suite.Require().NoError(err)
	suite.Len(res.Shipments, 1)
	suite.Nil(res.NextToken)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestShipmentService(t *testing.T) {
	suite.Run(t, new(ShipmentServiceTestSuite))
}
