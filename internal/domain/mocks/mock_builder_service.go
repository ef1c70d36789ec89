package mocks

import (
	"context"
	"reflect"

	"github.com/golang/mock/gomock"
	"github.com/mailforge/mailforge/internal/domain"
)

// MockBuilderService is a mock of BuilderService interface
type MockBuilderService struct {
	ctrl     *gomock.Controller
	recorder *MockBuilderServiceMockRecorder
}

// MockBuilderServiceMockRecorder is the mock recorder for MockBuilderService
type MockBuilderServiceMockRecorder struct {
	mock *MockBuilderService
}

// NewMockBuilderService creates a new mock instance
func NewMockBuilderService(ctrl *gomock.Controller) *MockBuilderService {
	mock := &MockBuilderService{ctrl: ctrl}
	mock.recorder = &MockBuilderServiceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use
func (m *MockBuilderService) EXPECT() *MockBuilderServiceMockRecorder {
	return m.recorder
}

// CancelDrag mocks base method
func (m *MockBuilderService) CancelDrag(ctx context.Context, sessionID string) (*domain.Session, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CancelDrag", ctx, sessionID)
	ret0, _ := ret[0].(*domain.Session)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CancelDrag indicates an expected call of CancelDrag
func (mr *MockBuilderServiceMockRecorder) CancelDrag(ctx, sessionID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CancelDrag", reflect.TypeOf((*MockBuilderService)(nil).CancelDrag), ctx, sessionID)
}

// CloseSession mocks base method
func (m *MockBuilderService) CloseSession(ctx context.Context, sessionID string) error {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CloseSession", ctx, sessionID)
	ret0, _ := ret[0].(error)
	return ret0
}

// CloseSession indicates an expected call of CloseSession
func (mr *MockBuilderServiceMockRecorder) CloseSession(ctx, sessionID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CloseSession", reflect.TypeOf((*MockBuilderService)(nil).CloseSession), ctx, sessionID)
}

// CreateSession mocks base method
func (m *MockBuilderService) CreateSession(ctx context.Context) (*domain.Session, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "CreateSession", ctx)
	ret0, _ := ret[0].(*domain.Session)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// CreateSession indicates an expected call of CreateSession
func (mr *MockBuilderServiceMockRecorder) CreateSession(ctx interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "CreateSession", reflect.TypeOf((*MockBuilderService)(nil).CreateSession), ctx)
}

// Delete mocks base method
func (m *MockBuilderService) Delete(ctx context.Context, req domain.BlockRequest) (*domain.MutationResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Delete", ctx, req)
	ret0, _ := ret[0].(*domain.MutationResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Delete indicates an expected call of Delete
func (mr *MockBuilderServiceMockRecorder) Delete(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Delete", reflect.TypeOf((*MockBuilderService)(nil).Delete), ctx, req)
}

// Drop mocks base method
func (m *MockBuilderService) Drop(ctx context.Context, req domain.DropRequest) (*domain.MutationResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Drop", ctx, req)
	ret0, _ := ret[0].(*domain.MutationResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Drop indicates an expected call of Drop
func (mr *MockBuilderServiceMockRecorder) Drop(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Drop", reflect.TypeOf((*MockBuilderService)(nil).Drop), ctx, req)
}

// Export mocks base method
func (m *MockBuilderService) Export(ctx context.Context, sessionID string) (*domain.ExportedTemplate, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Export", ctx, sessionID)
	ret0, _ := ret[0].(*domain.ExportedTemplate)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Export indicates an expected call of Export
func (mr *MockBuilderServiceMockRecorder) Export(ctx, sessionID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Export", reflect.TypeOf((*MockBuilderService)(nil).Export), ctx, sessionID)
}

// GetSession mocks base method
func (m *MockBuilderService) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetSession", ctx, sessionID)
	ret0, _ := ret[0].(*domain.Session)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// GetSession indicates an expected call of GetSession
func (mr *MockBuilderServiceMockRecorder) GetSession(ctx, sessionID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetSession", reflect.TypeOf((*MockBuilderService)(nil).GetSession), ctx, sessionID)
}

// Move mocks base method
func (m *MockBuilderService) Move(ctx context.Context, req domain.MoveBlockRequest) (*domain.MutationResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Move", ctx, req)
	ret0, _ := ret[0].(*domain.MutationResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Move indicates an expected call of Move
func (mr *MockBuilderServiceMockRecorder) Move(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Move", reflect.TypeOf((*MockBuilderService)(nil).Move), ctx, req)
}

// Palette mocks base method
func (m *MockBuilderService) Palette() []domain.PaletteEntry {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Palette")
	ret0, _ := ret[0].([]domain.PaletteEntry)
	return ret0
}

// Palette indicates an expected call of Palette
func (mr *MockBuilderServiceMockRecorder) Palette() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Palette", reflect.TypeOf((*MockBuilderService)(nil).Palette))
}

// Preview mocks base method
func (m *MockBuilderService) Preview(ctx context.Context, sessionID string) (string, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Preview", ctx, sessionID)
	ret0, _ := ret[0].(string)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Preview indicates an expected call of Preview
func (mr *MockBuilderServiceMockRecorder) Preview(ctx, sessionID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Preview", reflect.TypeOf((*MockBuilderService)(nil).Preview), ctx, sessionID)
}

// Save mocks base method
func (m *MockBuilderService) Save(ctx context.Context, sessionID string) (*domain.SaveResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Save", ctx, sessionID)
	ret0, _ := ret[0].(*domain.SaveResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Save indicates an expected call of Save
func (mr *MockBuilderServiceMockRecorder) Save(ctx, sessionID interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Save", reflect.TypeOf((*MockBuilderService)(nil).Save), ctx, sessionID)
}

// Select mocks base method
func (m *MockBuilderService) Select(ctx context.Context, req domain.BlockRequest) (*domain.MutationResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Select", ctx, req)
	ret0, _ := ret[0].(*domain.MutationResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Select indicates an expected call of Select
func (mr *MockBuilderServiceMockRecorder) Select(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Select", reflect.TypeOf((*MockBuilderService)(nil).Select), ctx, req)
}

// SetMetadata mocks base method
func (m *MockBuilderService) SetMetadata(ctx context.Context, req domain.SetMetadataRequest) (*domain.Session, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "SetMetadata", ctx, req)
	ret0, _ := ret[0].(*domain.Session)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// SetMetadata indicates an expected call of SetMetadata
func (mr *MockBuilderServiceMockRecorder) SetMetadata(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "SetMetadata", reflect.TypeOf((*MockBuilderService)(nil).SetMetadata), ctx, req)
}

// StartDrag mocks base method
func (m *MockBuilderService) StartDrag(ctx context.Context, req domain.DragRequest) (*domain.Session, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "StartDrag", ctx, req)
	ret0, _ := ret[0].(*domain.Session)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// StartDrag indicates an expected call of StartDrag
func (mr *MockBuilderServiceMockRecorder) StartDrag(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "StartDrag", reflect.TypeOf((*MockBuilderService)(nil).StartDrag), ctx, req)
}

// UpdateProperty mocks base method
func (m *MockBuilderService) UpdateProperty(ctx context.Context, req domain.UpdatePropertyRequest) (*domain.MutationResult, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "UpdateProperty", ctx, req)
	ret0, _ := ret[0].(*domain.MutationResult)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// UpdateProperty indicates an expected call of UpdateProperty
func (mr *MockBuilderServiceMockRecorder) UpdateProperty(ctx, req interface{}) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "UpdateProperty", reflect.TypeOf((*MockBuilderService)(nil).UpdateProperty), ctx, req)
}
