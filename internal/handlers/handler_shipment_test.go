package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/lanewise/freight_tms_app/internal/apperrors"
	"github.com/lanewise/freight_tms_app/internal/core/domain"
	portssvc "github.com/lanewise/freight_tms_app/internal/core/ports/services"
	"github.com/lanewise/freight_tms_app/internal/dto"
	"github.com/lanewise/freight_tms_app/internal/handlers"
	"github.com/lanewise/freight_tms_app/internal/middleware"
)

// --- Mock ShipmentService ---

type MockShipmentService struct {
	mock.Mock
}

var _ portssvc.ShipmentSvcFacade = (*MockShipmentService)(nil)

func (m *MockShipmentService) GetShipmentByID(ctx context.Context, shipmentID string) (*domain.Shipment, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shipment), args.Error(1)
}

func (m *MockShipmentService) ListShipments(ctx context.Context, params dto.ListShipmentsParams) (*dto.ListShipmentsResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListShipmentsResponse), args.Error(1)
}

func (m *MockShipmentService) CreateShipment(ctx context.Context, req dto.CreateShipmentRequest, creatorUserID string) (*domain.Shipment, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shipment), args.Error(1)
}

func (m *MockShipmentService) UpdateShipment(ctx context.Context, shipmentID string, req dto.UpdateShipmentRequest, requestingUserID string) (*domain.Shipment, error) {
	args := m.Called(ctx, shipmentID, req, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shipment), args.Error(1)
}

func (m *MockShipmentService) DeleteShipment(ctx context.Context, shipmentID string, requestingUserID string) error {
	args := m.Called(ctx, shipmentID, requestingUserID)
	return args.Error(0)
}

// --- Mock DocumentService ---

type MockDocumentService struct {
	mock.Mock
}

var _ portssvc.DocumentSvc = (*MockDocumentService)(nil)

func (m *MockDocumentService) GenerateRateConfirmation(ctx context.Context, shipmentID string, requestingUserID string) (*domain.Document, error) {
	args := m.Called(ctx, shipmentID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) UploadDocument(ctx context.Context, shipmentID string, docType domain.DocumentType, fileName string, contentType string, body io.Reader, size int64, requestingUserID string) (*domain.Document, error) {
	args := m.Called(ctx, shipmentID, docType, fileName, contentType, body, size, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

func (m *MockDocumentService) GetDocument(ctx context.Context, documentID string) (*domain.Document, io.ReadCloser, error) {
	args := m.Called(ctx, documentID)
	var doc *domain.Document
	if args.Get(0) != nil {
		doc = args.Get(0).(*domain.Document)
	}
	var body io.ReadCloser
	if args.Get(1) != nil {
		body = args.Get(1).(io.ReadCloser)
	}
	return doc, body, args.Error(2)
}

func (m *MockDocumentService) ListDocumentsByShipment(ctx context.Context, shipmentID string) ([]domain.Document, error) {
	args := m.Called(ctx, shipmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Document), args.Error(1)
}

func (m *MockDocumentService) DeleteDocument(ctx context.Context, documentID string, requestingUserID string) error {
	args := m.Called(ctx, documentID, requestingUserID)
	return args.Error(0)
}

// --- Test Suite ---

type ShipmentHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockShipmentService *MockShipmentService
	mockDocumentService *MockDocumentService
	jwtSecret           string
}

func (suite *ShipmentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.mockShipmentService = new(MockShipmentService)
	suite.mockDocumentService = new(MockDocumentService)

	suite.router = gin.New()
	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterShipmentRoutes(v1, suite.mockShipmentService, suite.mockDocumentService)
}

// generateTestToken creates a signed JWT the auth middleware will accept.
func (suite *ShipmentHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *ShipmentHandlerTestSuite) doRequest(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, path, reader)
	suite.Require().NoError(err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func sampleShipment() *domain.Shipment {
	return &domain.Shipment{
		ShipmentID:     "ship-1",
		ShipmentNumber: "TR-AB12CD34",
		Status:         domain.StatusBooked,
		Stops: []domain.Stop{
			{StopID: "s1", Type: domain.StopPickup, City: "Chicago", State: "IL"},
			{StopID: "s2", Sequence: 1, Type: domain.StopDropoff, City: "Dallas", State: "TX"},
		},
		CustomerRate:      decimal.NewFromInt(2000),
		CarrierCostTotal:  decimal.NewFromInt(1600),
		TotalCustomerRate: decimal.NewFromInt(2000),
		TotalCarrierCost:  decimal.NewFromInt(1600),
		GrossProfit:       decimal.NewFromInt(400),
		Margin:            decimal.NewFromInt(20),
	}
}

// --- Tests ---

func (suite *ShipmentHandlerTestSuite) TestCreateShipment_Success() {
	token := suite.generateTestToken("user-1")
	reqBody := dto.CreateShipmentRequest{
		Status: domain.StatusBooked,
		Stops: []dto.StopRequest{
			{Type: domain.StopPickup, City: "Chicago", State: "IL"},
			{Type: domain.StopDropoff, City: "Dallas", State: "TX"},
		},
		CustomerRate:     decimal.NewFromInt(2000),
		CarrierCostTotal: decimal.NewFromInt(1600),
	}

	suite.mockShipmentService.On("CreateShipment", mock.Anything, mock.AnythingOfType("dto.CreateShipmentRequest"), "user-1").
		Return(sampleShipment(), nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/shipments", token, reqBody)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ShipmentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("TR-AB12CD34", resp.ShipmentNumber)
	suite.mockShipmentService.AssertExpectations(suite.T())
}

func (suite *ShipmentHandlerTestSuite) TestCreateShipment_RequiresToken() {
	w := suite.doRequest(http.MethodPost, "/api/v1/shipments", "", dto.CreateShipmentRequest{Status: domain.StatusBooked})

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockShipmentService.AssertNotCalled(suite.T(), "CreateShipment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ShipmentHandlerTestSuite) TestCreateShipment_InvalidBody() {
	token := suite.generateTestToken("user-1")
	req, err := http.NewRequest(http.MethodPost, "/api/v1/shipments", bytes.NewReader([]byte("{not json")))
	suite.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *ShipmentHandlerTestSuite) TestGetShipment_Success() {
	token := suite.generateTestToken("user-1")

	suite.mockShipmentService.On("GetShipmentByID", mock.Anything, "ship-1").
		Return(sampleShipment(), nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/shipments/ship-1", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ShipmentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("ship-1", resp.ShipmentID)
	suite.Len(resp.Stops, 2)
}

func (suite *ShipmentHandlerTestSuite) TestGetShipment_NotFound() {
	token := suite.generateTestToken("user-1")

	suite.mockShipmentService.On("GetShipmentByID", mock.Anything, "missing").
		Return(nil, apperrors.NewNotFoundError("shipment not found")).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/shipments/missing", token, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *ShipmentHandlerTestSuite) TestUpdateShipment_Success() {
	token := suite.generateTestToken("user-2")
	newStatus := domain.StatusDelivered
	reqBody := dto.UpdateShipmentRequest{Status: &newStatus}

	updated := sampleShipment()
	updated.Status = domain.StatusDelivered

	suite.mockShipmentService.On("UpdateShipment", mock.Anything, "ship-1", mock.AnythingOfType("dto.UpdateShipmentRequest"), "user-2").
		Return(updated, nil).Once()

	w := suite.doRequest(http.MethodPut, "/api/v1/shipments/ship-1", token, reqBody)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ShipmentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.StatusDelivered, resp.Status)
}

func (suite *ShipmentHandlerTestSuite) TestDeleteShipment_Success() {
	token := suite.generateTestToken("user-2")

	suite.mockShipmentService.On("DeleteShipment", mock.Anything, "ship-1", "user-2").Return(nil).Once()

	w := suite.doRequest(http.MethodDelete, "/api/v1/shipments/ship-1", token, nil)

	suite.Equal(http.StatusNoContent, w.Code)
	suite.mockShipmentService.AssertExpectations(suite.T())
}

func (suite *ShipmentHandlerTestSuite) TestListShipments_Success() {
	token := suite.generateTestToken("user-1")

	resp := &dto.ListShipmentsResponse{Shipments: []dto.ShipmentResponse{dto.ToShipmentResponse(sampleShipment())}}
	suite.mockShipmentService.On("ListShipments", mock.Anything, mock.MatchedBy(func(p dto.ListShipmentsParams) bool {
		return p.Limit == 20 && p.Status != nil && *p.Status == "booked"
	})).Return(resp, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/shipments?status=booked", token, nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.ListShipmentsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body.Shipments, 1)
}

func (suite *ShipmentHandlerTestSuite) TestGenerateRateConfirmation_Success() {
	token := suite.generateTestToken("user-1")

	doc := &domain.Document{DocumentID: "doc-1", ShipmentID: "ship-1", Type: domain.DocRateConfirmation, FileName: "rate-confirmation-TR-AB12CD34.pdf", ContentType: "application/pdf"}
	suite.mockDocumentService.On("GenerateRateConfirmation", mock.Anything, "ship-1", "user-1").
		Return(doc, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/shipments/ship-1/rate-confirmation", token, nil)

	suite.Equal(http.StatusCreated, w.Code)
	suite.mockDocumentService.AssertExpectations(suite.T())
}

func (suite *ShipmentHandlerTestSuite) TestGenerateRateConfirmation_NoCarrier() {
	token := suite.generateTestToken("user-1")

	suite.mockDocumentService.On("GenerateRateConfirmation", mock.Anything, "ship-1", "user-1").
		Return(nil, apperrors.NewAppError(422, "Shipment has no carrier assigned", apperrors.ErrValidation)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/shipments/ship-1/rate-confirmation", token, nil)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func TestShipmentHandler(t *testing.T) {
	suite.Run(t, new(ShipmentHandlerTestSuite))
}
