package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/mailforge/mailforge/internal/domain"
)

// MockCampaignRepository is a mock of CampaignRepository interface
type MockCampaignRepository struct {
	ctrl     *gomock.Controller
	recorder *MockCampaignRepositoryMockRecorder
}

// MockCampaignRepositoryMockRecorder is the mock recorder for MockCampaignRepository
type MockCampaignRepositoryMockRecorder struct {
	mock *MockCampaignRepository
}

// NewMockCampaignRepository creates a new mock instance
func NewMockCampaignRepository(ctrl *gomock.Controller) *MockCampaignRepository {
	mock := &MockCampaignRepository{ctrl: ctrl}
	mock.recorder = &MockCampaignRepositoryMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockCampaignRepository) EXPECT() *MockCampaignRepositoryMockRecorder {
	return m.recorder
}

// AddRecipients mocks base method
func (m *MockCampaignRepository) AddRecipients(ctx context.Context, recipients []*domain.Recipient) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddRecipients", ctx, recipients)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// AddRecipients indicates an expected call of AddRecipients
func (mr *MockCampaignRepositoryMockRecorder) AddRecipients(ctx, recipients interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddRecipients", reflect.TypeOf((*MockCampaignRepository)(nil).AddRecipients), ctx, recipients)
}

// CreateCampaign mocks base method
func (m *MockCampaignRepository) CreateCampaign(ctx context.Context, campaign *domain.Campaign) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateCampaign", ctx, campaign)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateCampaign indicates an expected call of CreateCampaign
func (mr *MockCampaignRepositoryMockRecorder) CreateCampaign(ctx, campaign interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateCampaign", reflect.TypeOf((*MockCampaignRepository)(nil).CreateCampaign), ctx, campaign)
}

// DeleteCampaign mocks base method
func (m *MockCampaignRepository) DeleteCampaign(ctx context.Context, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteCampaign", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteCampaign indicates an expected call of DeleteCampaign
func (mr *MockCampaignRepositoryMockRecorder) DeleteCampaign(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteCampaign", reflect.TypeOf((*MockCampaignRepository)(nil).DeleteCampaign), ctx, id)
}

// DeleteRecipient mocks base method
func (m *MockCampaignRepository) DeleteRecipient(ctx context.Context, campaignID int64, emailAddress string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteRecipient", ctx, campaignID, emailAddress)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteRecipient indicates an expected call of DeleteRecipient
func (mr *MockCampaignRepositoryMockRecorder) DeleteRecipient(ctx, campaignID, emailAddress interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteRecipient", reflect.TypeOf((*MockCampaignRepository)(nil).DeleteRecipient), ctx, campaignID, emailAddress)
}

// GetCampaignByID mocks base method
func (m *MockCampaignRepository) GetCampaignByID(ctx context.Context, id int64) (*domain.Campaign, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCampaignByID", ctx, id)
	ret0, _ := ret[0].(*domain.Campaign)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetCampaignByID indicates an expected call of GetCampaignByID
func (mr *MockCampaignRepositoryMockRecorder) GetCampaignByID(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCampaignByID", reflect.TypeOf((*MockCampaignRepository)(nil).GetCampaignByID), ctx, id)
}

// ListCampaigns mocks base method
func (m *MockCampaignRepository) ListCampaigns(ctx context.Context) ([]*domain.Campaign, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListCampaigns", ctx)
	ret0, _ := ret[0].([]*domain.Campaign)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListCampaigns indicates an expected call of ListCampaigns
func (mr *MockCampaignRepositoryMockRecorder) ListCampaigns(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListCampaigns", reflect.TypeOf((*MockCampaignRepository)(nil).ListCampaigns), ctx)
}

// ListRecipients mocks base method
func (m *MockCampaignRepository) ListRecipients(ctx context.Context, campaignID int64) ([]*domain.Recipient, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListRecipients", ctx, campaignID)
	ret0, _ := ret[0].([]*domain.Recipient)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListRecipients indicates an expected call of ListRecipients
func (mr *MockCampaignRepositoryMockRecorder) ListRecipients(ctx, campaignID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListRecipients", reflect.TypeOf((*MockCampaignRepository)(nil).ListRecipients), ctx, campaignID)
}

// UpdateCampaign mocks base method
func (m *MockCampaignRepository) UpdateCampaign(ctx context.Context, campaign *domain.Campaign) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateCampaign", ctx, campaign)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateCampaign indicates an expected call of UpdateCampaign
func (mr *MockCampaignRepositoryMockRecorder) UpdateCampaign(ctx, campaign interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateCampaign", reflect.TypeOf((*MockCampaignRepository)(nil).UpdateCampaign), ctx, campaign)
}

// UpdateRecipientName mocks base method
func (m *MockCampaignRepository) UpdateRecipientName(ctx context.Context, campaignID int64, emailAddress string, name string) (*domain.Recipient, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateRecipientName", ctx, campaignID, emailAddress, name)
	ret0, _ := ret[0].(*domain.Recipient)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpdateRecipientName indicates an expected call of UpdateRecipientName
func (mr *MockCampaignRepositoryMockRecorder) UpdateRecipientName(ctx, campaignID, emailAddress, name interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateRecipientName", reflect.TypeOf((*MockCampaignRepository)(nil).UpdateRecipientName), ctx, campaignID, emailAddress, name)
}
