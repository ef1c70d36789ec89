package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/mailforge/mailforge/internal/domain"
)

// MockCampaignService is a mock of CampaignService interface
type MockCampaignService struct {
	ctrl     *gomock.Controller
	recorder *MockCampaignServiceMockRecorder
}

// MockCampaignServiceMockRecorder is the mock recorder for MockCampaignService
type MockCampaignServiceMockRecorder struct {
	mock *MockCampaignService
}

// NewMockCampaignService creates a new mock instance
func NewMockCampaignService(ctrl *gomock.Controller) *MockCampaignService {
	mock := &MockCampaignService{ctrl: ctrl}
	mock.recorder = &MockCampaignServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockCampaignService) EXPECT() *MockCampaignServiceMockRecorder {
	return m.recorder
}

// AddRecipients mocks base method
func (m *MockCampaignService) AddRecipients(ctx context.Context, campaignID int64, recipients []*domain.Recipient) (*domain.AddRecipientsResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "AddRecipients", ctx, campaignID, recipients)
	ret0, _ := ret[0].(*domain.AddRecipientsResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// AddRecipients indicates an expected call of AddRecipients
func (mr *MockCampaignServiceMockRecorder) AddRecipients(ctx, campaignID, recipients interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "AddRecipients", reflect.TypeOf((*MockCampaignService)(nil).AddRecipients), ctx, campaignID, recipients)
}

// CreateCampaign mocks base method
func (m *MockCampaignService) CreateCampaign(ctx context.Context, campaign *domain.Campaign) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateCampaign", ctx, campaign)
	ret0, _ := ret[0].(error)
	return ret0
}

// CreateCampaign indicates an expected call of CreateCampaign
func (mr *MockCampaignServiceMockRecorder) CreateCampaign(ctx, campaign interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateCampaign", reflect.TypeOf((*MockCampaignService)(nil).CreateCampaign), ctx, campaign)
}

// DeleteCampaign mocks base method
func (m *MockCampaignService) DeleteCampaign(ctx context.Context, id int64) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteCampaign", ctx, id)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteCampaign indicates an expected call of DeleteCampaign
func (mr *MockCampaignServiceMockRecorder) DeleteCampaign(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteCampaign", reflect.TypeOf((*MockCampaignService)(nil).DeleteCampaign), ctx, id)
}

// DeleteRecipient mocks base method
func (m *MockCampaignService) DeleteRecipient(ctx context.Context, campaignID int64, emailAddress string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "DeleteRecipient", ctx, campaignID, emailAddress)
	ret0, _ := ret[0].(error)
	return ret0
}

// DeleteRecipient indicates an expected call of DeleteRecipient
func (mr *MockCampaignServiceMockRecorder) DeleteRecipient(ctx, campaignID, emailAddress interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "DeleteRecipient", reflect.TypeOf((*MockCampaignService)(nil).DeleteRecipient), ctx, campaignID, emailAddress)
}

// GetCampaign mocks base method
func (m *MockCampaignService) GetCampaign(ctx context.Context, id int64) (*domain.Campaign, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetCampaign", ctx, id)
	ret0, _ := ret[0].(*domain.Campaign)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetCampaign indicates an expected call of GetCampaign
func (mr *MockCampaignServiceMockRecorder) GetCampaign(ctx, id interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetCampaign", reflect.TypeOf((*MockCampaignService)(nil).GetCampaign), ctx, id)
}

// ListCampaigns mocks base method
func (m *MockCampaignService) ListCampaigns(ctx context.Context) ([]*domain.Campaign, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListCampaigns", ctx)
	ret0, _ := ret[0].([]*domain.Campaign)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListCampaigns indicates an expected call of ListCampaigns
func (mr *MockCampaignServiceMockRecorder) ListCampaigns(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListCampaigns", reflect.TypeOf((*MockCampaignService)(nil).ListCampaigns), ctx)
}

// ListRecipients mocks base method
func (m *MockCampaignService) ListRecipients(ctx context.Context, campaignID int64) ([]*domain.Recipient, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "ListRecipients", ctx, campaignID)
	ret0, _ := ret[0].([]*domain.Recipient)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// ListRecipients indicates an expected call of ListRecipients
func (mr *MockCampaignServiceMockRecorder) ListRecipients(ctx, campaignID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ListRecipients", reflect.TypeOf((*MockCampaignService)(nil).ListRecipients), ctx, campaignID)
}

// UpdateCampaign mocks base method
func (m *MockCampaignService) UpdateCampaign(ctx context.Context, campaign *domain.Campaign) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateCampaign", ctx, campaign)
	ret0, _ := ret[0].(error)
	return ret0
}

// UpdateCampaign indicates an expected call of UpdateCampaign
func (mr *MockCampaignServiceMockRecorder) UpdateCampaign(ctx, campaign interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateCampaign", reflect.TypeOf((*MockCampaignService)(nil).UpdateCampaign), ctx, campaign)
}

// UpdateRecipient mocks base method
func (m *MockCampaignService) UpdateRecipient(ctx context.Context, campaignID int64, emailAddress string, name string) (*domain.Recipient, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateRecipient", ctx, campaignID, emailAddress, name)
	ret0, _ := ret[0].(*domain.Recipient)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpdateRecipient indicates an expected call of UpdateRecipient
func (mr *MockCampaignServiceMockRecorder) UpdateRecipient(ctx, campaignID, emailAddress, name interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateRecipient", reflect.TypeOf((*MockCampaignService)(nil).UpdateRecipient), ctx, campaignID, emailAddress, name)
}
