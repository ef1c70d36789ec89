package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/mailforge/mailforge/internal/domain"
)

// MockSendService is a mock of SendService interface
type MockSendService struct {
	ctrl     *gomock.Controller
	recorder *MockSendServiceMockRecorder
}

// MockSendServiceMockRecorder is the mock recorder for MockSendService
type MockSendServiceMockRecorder struct {
	mock *MockSendService
}

// NewMockSendService creates a new mock instance
func NewMockSendService(ctrl *gomock.Controller) *MockSendService {
	mock := &MockSendService{ctrl: ctrl}
	mock.recorder = &MockSendServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockSendService) EXPECT() *MockSendServiceMockRecorder {
	return m.recorder
}

// SendCampaign mocks base method
func (m *MockSendService) SendCampaign(ctx context.Context, req domain.SendCampaignRequest) (*domain.SendResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SendCampaign", ctx, req)
	ret0, _ := ret[0].(*domain.SendResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SendCampaign indicates an expected call of SendCampaign
func (mr *MockSendServiceMockRecorder) SendCampaign(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SendCampaign", reflect.TypeOf((*MockSendService)(nil).SendCampaign), ctx, req)
}
