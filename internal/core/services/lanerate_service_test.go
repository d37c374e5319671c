package services_test

import (
	"context"
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
)

// --- Mock LaneRateRepository ---

type MockLaneRateRepository struct {
	mock.Mock
}

var _ portsrepo.LaneRateRepositoryFacade = (*MockLaneRateRepository)(nil)

func (m *MockLaneRateRepository) FindLaneRateByID(ctx context.Context, laneRateID string) (*domain.LaneRate, error) {
	args := m.Called(ctx, laneRateID)
	var laneRate *domain.LaneRate
	if args.Get(0) != nil {
		laneRate = args.Get(0).(*domain.LaneRate)
	}
	return laneRate, args.Error(1)
}

func (m *MockLaneRateRepository) FindLaneRateBySourceShipmentID(ctx context.Context, shipmentID string) (*domain.LaneRate, error) {
	args := m.Called(ctx, shipmentID)
	var laneRate *domain.LaneRate
	if args.Get(0) != nil {
		laneRate = args.Get(0).(*domain.LaneRate)
	}
	return laneRate, args.Error(1)
}

func (m *MockLaneRateRepository) ListLaneRates(ctx context.Context, filter portsrepo.ListLaneRatesFilter, limit int, nextToken *string) ([]domain.LaneRate, *string, error) {
	args := m.Called(ctx, filter, limit, nextToken)
	var laneRates []domain.LaneRate
	if args.Get(0) != nil {
		laneRates = args.Get(0).([]domain.LaneRate)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return laneRates, token, args.Error(2)
}

func (m *MockLaneRateRepository) UpsertBySourceShipment(ctx context.Context, laneRate domain.LaneRate) (*domain.LaneRate, error) {
	args := m.Called(ctx, laneRate)
	var saved *domain.LaneRate
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.LaneRate)
	}
	return saved, args.Error(1)
}

func (m *MockLaneRateRepository) SaveLaneRate(ctx context.Context, laneRate domain.LaneRate) error {
	args := m.Called(ctx, laneRate)
	return args.Error(0)
}

func (m *MockLaneRateRepository) UpdateLaneRate(ctx context.Context, laneRate domain.LaneRate) error {
	args := m.Called(ctx, laneRate)
	return args.Error(0)
}

func (m *MockLaneRateRepository) DeleteLaneRate(ctx context.Context, laneRateID string) error {
	args := m.Called(ctx, laneRateID)
	return args.Error(0)
}

func (m *MockLaneRateRepository) DeleteBySourceShipmentID(ctx context.Context, shipmentID string) error {
	args := m.Called(ctx, shipmentID)
	return args.Error(0)
}

// --- Test Suite ---

type LaneRateServiceTestSuite struct {
	suite.Suite
	mockRepo *MockLaneRateRepository
	service  portssvc.LaneRateSvcFacade
}

func (suite *LaneRateServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockLaneRateRepository)
	suite.service = services.NewLaneRateService(suite.mockRepo)
}

func strPtr(s string) *string { return &s }

// eligibleShipment builds a shipment that passes the recorder's gate: a
// recordable status, a carrier, and complete origin/destination stops.
func eligibleShipment(status domain.ShipmentStatus) domain.Shipment {
	createdAt := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	return domain.Shipment{
		ShipmentID:      "ship-123",
		ShipmentNumber:  "QT-AB12CD34",
		Status:          status,
		CarrierID:       strPtr("carrier-9"),
		ModeOfTransport: "intermodal",
		EquipmentType:   "40' container",
		Stops: []domain.Stop{
			{StopID: "s1", Sequence: 0, Type: domain.StopPickup, City: "Chicago", State: "IL", Zip: "60632"},
			{StopID: "s2", Sequence: 1, Type: domain.StopDropoff, City: "Dallas", State: "TX", Zip: "75212"},
		},
		CustomerRate:        decimal.NewFromInt(1800),
		CarrierCostTotal:    decimal.NewFromInt(1450),
		FSCType:             domain.FSCPercentage,
		FSCCustomerAmount:   decimal.NewFromInt(20),
		FSCCarrierAmount:    decimal.NewFromInt(18),
		ChassisCustomerCost: decimal.NewFromInt(50),
		ChassisCarrierCost:  decimal.NewFromInt(35),
		Accessorials: []domain.Accessorial{
			{AccessorialID: "a1", Name: "Liftgate", CustomerRate: decimal.NewFromInt(75), CarrierCost: decimal.NewFromInt(60)},
		},
		QuoteNotes:    "quoted via email",
		InternalNotes: "carrier prefers morning pickups",
		AuditFields: domain.AuditFields{
			CreatedAt:     createdAt,
			CreatedBy:     "user-creator",
			LastUpdatedAt: createdAt,
			LastUpdatedBy: "user-creator",
		},
	}
}

// --- RecordFromShipment Tests ---

func (suite *LaneRateServiceTestSuite) TestRecordFromShipment_RecordableStatuses() {
	for _, status := range []domain.ShipmentStatus{
		domain.StatusQuote,
		domain.StatusBooked,
		domain.StatusDelivered,
		domain.StatusInvoiced,
		domain.StatusPaid,
	} {
		suite.Run(string(status), func() {
			repo := new(MockLaneRateRepository)
			svc := services.NewLaneRateService(repo)
			shipment := eligibleShipment(status)

			repo.On("UpsertBySourceShipment", mock.Anything, mock.AnythingOfType("domain.LaneRate")).
				Return(&domain.LaneRate{LaneRateID: "lr-1"}, nil).Once()

			svc.RecordFromShipment(context.Background(), shipment, "user-editor")

			repo.AssertExpectations(suite.T())
		})
	}
}

func (suite *LaneRateServiceTestSuite) TestRecordFromShipment_SkipsNonRecordableStatuses() {
	for _, status := range []domain.ShipmentStatus{
		domain.StatusQuoteSent,
		domain.StatusQuoteAccepted,
		domain.StatusQuoteRejected,
		domain.StatusDispatched,
		domain.StatusInTransit,
		domain.StatusCancelled,
		domain.StatusOnHold,
		domain.StatusProblem,
	} {
		suite.Run(string(status), func() {
			shipment := eligibleShipment(status)

			suite.service.RecordFromShipment(context.Background(), shipment, "user-editor")

			suite.mockRepo.AssertNotCalled(suite.T(), "UpsertBySourceShipment", mock.Anything, mock.Anything)
		})
	}
}

func (suite *LaneRateServiceTestSuite) TestRecordFromShipment_SkipsWithoutCarrier() {
	shipment := eligibleShipment(domain.StatusBooked)
	shipment.CarrierID = nil
	suite.service.RecordFromShipment(context.Background(), shipment, "user-editor")

	empty := eligibleShipment(domain.StatusBooked)
	empty.CarrierID = strPtr("")
	suite.service.RecordFromShipment(context.Background(), empty, "user-editor")

	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertBySourceShipment", mock.Anything, mock.Anything)
}

func (suite *LaneRateServiceTestSuite) TestRecordFromShipment_SkipsWithoutResolvableLane() {
	// no stops at all
	shipment := eligibleShipment(domain.StatusDelivered)
	shipment.Stops = nil
	suite.service.RecordFromShipment(context.Background(), shipment, "user-editor")

	// destination missing its state
	noState := eligibleShipment(domain.StatusDelivered)
	noState.Stops[1].State = ""
	suite.service.RecordFromShipment(context.Background(), noState, "user-editor")

	// origin missing its city
	noCity := eligibleShipment(domain.StatusDelivered)
	noCity.Stops[0].City = ""
	suite.service.RecordFromShipment(context.Background(), noCity, "user-editor")

	suite.mockRepo.AssertNotCalled(suite.T(), "UpsertBySourceShipment", mock.Anything, mock.Anything)
}

func (suite *LaneRateServiceTestSuite) TestRecordFromShipment_DerivedFields() {
	shipment := eligibleShipment(domain.StatusBooked)

	var captured domain.LaneRate
	suite.mockRepo.On("UpsertBySourceShipment", mock.Anything, mock.MatchedBy(func(lr domain.LaneRate) bool {
		captured = lr
		return true
	})).Return(&domain.LaneRate{LaneRateID: "lr-1"}, nil).Once()

	suite.service.RecordFromShipment(context.Background(), shipment, "user-editor")

	suite.mockRepo.AssertExpectations(suite.T())

	suite.Equal("Chicago", captured.OriginCity)
	suite.Equal("IL", captured.OriginState)
	suite.Equal("60632", captured.OriginZip)
	suite.Equal("Dallas", captured.DestinationCity)
	suite.Equal("TX", captured.DestinationState)
	suite.Equal("75212", captured.DestinationZip)

	suite.Require().NotNil(captured.CarrierID)
	suite.Equal("carrier-9", *captured.CarrierID)
	suite.Equal("intermodal", captured.ModeOfTransport)
	suite.Equal("40' container", captured.EquipmentType)

	// line haul figures are the raw inputs, never the grand totals
	suite.True(decimal.NewFromInt(1800).Equal(captured.LineHaulRate))
	suite.True(decimal.NewFromInt(1450).Equal(captured.LineHaulCost))

	suite.Require().NotNil(captured.FSCPercentage)
	suite.True(decimal.NewFromInt(20).Equal(*captured.FSCPercentage))
	suite.Require().NotNil(captured.CarrierFSCPercentage)
	suite.True(decimal.NewFromInt(18).Equal(*captured.CarrierFSCPercentage))

	suite.True(decimal.NewFromInt(50).Equal(captured.ChassisCustomerCost))
	suite.True(decimal.NewFromInt(35).Equal(captured.ChassisCarrierCost))
	suite.True(decimal.NewFromInt(75).Equal(captured.TotalAccessorialCustomer))
	suite.True(decimal.NewFromInt(60).Equal(captured.TotalAccessorialCarrier))

	suite.Equal(domain.SourceTMSShipment, captured.SourceType)
	suite.Require().NotNil(captured.SourceShipmentID)
	suite.Equal("ship-123", *captured.SourceShipmentID)
	suite.Equal("QT-AB12CD34", captured.SourceQuoteShipmentNumber)

	// the rate is dated to the shipment's creation, not the recording time
	suite.Equal(shipment.CreatedAt, captured.RateDate)
	suite.True(captured.IsActive)

	suite.Equal("user-creator", captured.CreatedBy)
	suite.Equal("user-editor", captured.LastUpdatedBy)
}

func (suite *LaneRateServiceTestSuite) TestRecordFromShipment_NoFuelSurchargeStoresNilPercentages() {
	// A shipment without a fuel surcharge is the common case; the recorded
	// rate must carry nil percentages rather than a fabricated zero.
	shipment := eligibleShipment(domain.StatusBooked)
	shipment.FSCType = domain.FSCNone
	shipment.FSCCustomerAmount = decimal.Zero
	shipment.FSCCarrierAmount = decimal.Zero

	var captured domain.LaneRate
	suite.mockRepo.On("UpsertBySourceShipment", mock.Anything, mock.MatchedBy(func(lr domain.LaneRate) bool {
		captured = lr
		return true
	})).Return(&domain.LaneRate{LaneRateID: "lr-1"}, nil).Once()

	suite.service.RecordFromShipment(context.Background(), shipment, "user-editor")

	suite.mockRepo.AssertExpectations(suite.T())
	suite.Nil(captured.FSCPercentage)
	suite.Nil(captured.CarrierFSCPercentage)
}

func (suite *LaneRateServiceTestSuite) TestRecordFromShipment_FixedFSCWithZeroLineHaulStoresNilPercentages() {
	shipment := eligibleShipment(domain.StatusBooked)
	shipment.FSCType = domain.FSCFixed
	shipment.CustomerRate = decimal.Zero
	shipment.CarrierCostTotal = decimal.Zero
	shipment.FSCCustomerAmount = decimal.NewFromInt(100)
	shipment.FSCCarrierAmount = decimal.NewFromInt(80)

	var captured domain.LaneRate
	suite.mockRepo.On("UpsertBySourceShipment", mock.Anything, mock.MatchedBy(func(lr domain.LaneRate) bool {
		captured = lr
		return true
	})).Return(&domain.LaneRate{LaneRateID: "lr-1"}, nil).Once()

	suite.service.RecordFromShipment(context.Background(), shipment, "user-editor")

	suite.mockRepo.AssertExpectations(suite.T())
	suite.Nil(captured.FSCPercentage)
	suite.Nil(captured.CarrierFSCPercentage)
}

func (suite *LaneRateServiceTestSuite) TestRecordFromShipment_NotesFollowStatus() {
	var captured domain.LaneRate
	suite.mockRepo.On("UpsertBySourceShipment", mock.Anything, mock.MatchedBy(func(lr domain.LaneRate) bool {
		captured = lr
		return true
	})).Return(&domain.LaneRate{LaneRateID: "lr-1"}, nil).Twice()

	quote := eligibleShipment(domain.StatusQuote)
	suite.service.RecordFromShipment(context.Background(), quote, "user-editor")
	suite.Equal("quoted via email", captured.Notes, "quotes carry the quote notes")

	booked := eligibleShipment(domain.StatusBooked)
	suite.service.RecordFromShipment(context.Background(), booked, "user-editor")
	suite.Equal("carrier prefers morning pickups", captured.Notes, "every other status carries the internal notes")

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LaneRateServiceTestSuite) TestRecordFromShipment_SwallowsRepositoryError() {
	shipment := eligibleShipment(domain.StatusDelivered)

	suite.mockRepo.On("UpsertBySourceShipment", mock.Anything, mock.AnythingOfType("domain.LaneRate")).
		Return(nil, assert.AnError).Once()

	// Must not panic and must not propagate anything: the shipment write has
	// already succeeded by the time the recorder runs.
	suite.NotPanics(func() {
		suite.service.RecordFromShipment(context.Background(), shipment, "user-editor")
	})

	suite.mockRepo.AssertExpectations(suite.T())
}

// --- DeleteForShipment Tests ---

func (suite *LaneRateServiceTestSuite) TestDeleteForShipment_Delegates() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteBySourceShipmentID", ctx, "ship-123").Return(nil).Once()

	err := suite.service.DeleteForShipment(ctx, "ship-123")

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LaneRateServiceTestSuite) TestDeleteForShipment_PropagatesError() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteBySourceShipmentID", ctx, "ship-123").Return(assert.AnError).Once()

	err := suite.service.DeleteForShipment(ctx, "ship-123")

	suite.ErrorIs(err, assert.AnError)
	suite.mockRepo.AssertExpectations(suite.T())
}

// --- Manual CRUD Tests ---

func (suite *LaneRateServiceTestSuite) TestCreateLaneRate_ManualEntry() {
	ctx := context.Background()
	req := dto.CreateLaneRateRequest{
		OriginCity:       "Newark",
		OriginState:      "NJ",
		DestinationCity:  "Columbus",
		DestinationState: "OH",
		ModeOfTransport:  "truckload",
		EquipmentType:    "53' dry van",
		LineHaulRate:     decimal.NewFromInt(2100),
		LineHaulCost:     decimal.NewFromInt(1800),
		ManualAccessorials: []dto.ManualAccessorialRequest{
			{Name: "Tolls", Cost: decimal.NewFromInt(120)},
		},
	}

	// No carrier on the request: a manual entry without one is still valid.
	suite.mockRepo.On("SaveLaneRate", ctx, mock.MatchedBy(func(lr domain.LaneRate) bool {
		return lr.SourceType == domain.SourceManualEntry &&
			lr.SourceShipmentID == nil &&
			lr.CarrierID == nil &&
			lr.IsActive &&
			!lr.RateDate.IsZero() &&
			len(lr.ManualAccessorials) == 1 &&
			lr.ManualAccessorials[0].ManualAccessorialID != "" &&
			lr.CreatedBy == "user-1"
	})).Return(nil).Once()

	created, err := suite.service.CreateLaneRate(ctx, req, "user-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(created)
	suite.NotEmpty(created.LaneRateID)
	suite.Equal("Newark", created.OriginCity)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LaneRateServiceTestSuite) TestCreateLaneRate_KeepsExplicitRateDate() {
	ctx := context.Background()
	rateDate := time.Date(2025, 11, 2, 0, 0, 0, 0, time.UTC)
	req := dto.CreateLaneRateRequest{
		OriginCity:       "Newark",
		OriginState:      "NJ",
		DestinationCity:  "Columbus",
		DestinationState: "OH",
		RateDate:         rateDate,
	}

	suite.mockRepo.On("SaveLaneRate", ctx, mock.MatchedBy(func(lr domain.LaneRate) bool {
		return lr.RateDate.Equal(rateDate)
	})).Return(nil).Once()

	_, err := suite.service.CreateLaneRate(ctx, req, "user-1")

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LaneRateServiceTestSuite) TestUpdateLaneRate_PartialPatch() {
	ctx := context.Background()
	existing := &domain.LaneRate{
		LaneRateID:       "lr-7",
		OriginCity:       "Newark",
		OriginState:      "NJ",
		DestinationCity:  "Columbus",
		DestinationState: "OH",
		LineHaulRate:     decimal.NewFromInt(2100),
		LineHaulCost:     decimal.NewFromInt(1800),
		SourceType:       domain.SourceManualEntry,
		IsActive:         true,
	}

	newRate := decimal.NewFromInt(2250)
	inactive := false
	req := dto.UpdateLaneRateRequest{
		LineHaulRate: &newRate,
		IsActive:     &inactive,
	}

	suite.mockRepo.On("FindLaneRateByID", ctx, "lr-7").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateLaneRate", ctx, mock.MatchedBy(func(lr domain.LaneRate) bool {
		return lr.LineHaulRate.Equal(newRate) &&
			!lr.IsActive &&
			lr.OriginCity == "Newark" && // untouched fields survive
			lr.LineHaulCost.Equal(decimal.NewFromInt(1800)) &&
			lr.LastUpdatedBy == "user-2"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateLaneRate(ctx, "lr-7", req, "user-2")

	suite.Require().NoError(err)
	suite.True(updated.LineHaulRate.Equal(newRate))
	suite.False(updated.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *LaneRateServiceTestSuite) TestDeleteLaneRate() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteLaneRate", ctx, "lr-7").Return(nil).Once()

	err := suite.service.DeleteLaneRate(ctx, "lr-7", "user-2")

	suite.NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func TestLaneRateService(t *testing.T) {
	suite.Run(t, new(LaneRateServiceTestSuite))
}
