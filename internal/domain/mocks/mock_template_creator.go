package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/mailforge/mailforge/internal/domain"
)

// MockTemplateCreator is a mock of TemplateCreator interface
type MockTemplateCreator struct {
	ctrl     *gomock.Controller
	recorder *MockTemplateCreatorMockRecorder
}

// MockTemplateCreatorMockRecorder is the mock recorder for MockTemplateCreator
type MockTemplateCreatorMockRecorder struct {
	mock *MockTemplateCreator
}

// NewMockTemplateCreator creates a new mock instance
func NewMockTemplateCreator(ctrl *gomock.Controller) *MockTemplateCreator {
	mock := &MockTemplateCreator{ctrl: ctrl}
	mock.recorder = &MockTemplateCreatorMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockTemplateCreator) EXPECT() *MockTemplateCreatorMockRecorder {
	return m.recorder
}

// CreateTemplate mocks base method
func (m *MockTemplateCreator) CreateTemplate(ctx context.Context, req domain.CreateTemplateRequest) (*domain.Template, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateTemplate", ctx, req)
	ret0, _ := ret[0].(*domain.Template)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateTemplate indicates an expected call of CreateTemplate
func (mr *MockTemplateCreatorMockRecorder) CreateTemplate(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateTemplate", reflect.TypeOf((*MockTemplateCreator)(nil).CreateTemplate), ctx, req)
}
