package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailforge/mailforge/internal/domain"
	"github.com/mailforge/mailforge/internal/domain/mocks"
	"github.com/mailforge/mailforge/pkg/logger"
)

func setupBuilderHandlerTest(t *testing.T) (*mocks.MockBuilderService, *http.ServeMux) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockBuilderService(ctrl)
	handler := NewBuilderHandler(svc, logger.NewTestLogger(t))

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return svc, mux
}

func TestBuilderHandler_Sessions(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Palette", func(t *testing.T) {
		svc, mux := setupBuilderHandlerTest(t)
		svc.EXPECT().Palette().Return(domain.Palette())

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/builder.palette", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var response struct {
			Palette []domain.PaletteEntry `json:"palette"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
		assert.Len(t, response.Palette, len(domain.Palette()))
	})

	t.Run("Create", func(t *testing.T) {
		svc, mux := setupBuilderHandlerTest(t)
		svc.EXPECT().CreateSession(gomock.Any()).Return(domain.NewSession("s1", now), nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/builder.create", nil))
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"id":"s1"`)
	})

	t.Run("Get requires session_id", func(t *testing.T) {
		_, mux := setupBuilderHandlerTest(t)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/builder.get", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "session_id is required", decodeError(t, w))
	})

	t.Run("Get expired session", func(t *testing.T) {
		svc, mux := setupBuilderHandlerTest(t)
		svc.EXPECT().GetSession(gomock.Any(), "gone").Return(nil, &domain.ErrSessionNotFound{SessionID: "gone"})

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/builder.get?session_id=gone", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "builder session not found: gone", decodeError(t, w))
	})

	t.Run("Close", func(t *testing.T) {
		svc, mux := setupBuilderHandlerTest(t)
		svc.EXPECT().CloseSession(gomock.Any(), "s1").Return(nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/builder.close", jsonBody(t, map[string]string{"session_id": "s1"})))
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestBuilderHandler_Editing(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	session := domain.NewSession("s1", now)

	t.Run("Drag rejects unknown kinds", func(t *testing.T) {
		_, mux := setupBuilderHandlerTest(t)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/builder.drag", jsonBody(t, map[string]string{"session_id": "s1", "kind": "video"})))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Drag and cancel", func(t *testing.T) {
		svc, mux := setupBuilderHandlerTest(t)
		svc.EXPECT().StartDrag(gomock.Any(), domain.DragRequest{SessionID: "s1", Kind: domain.BlockKindButton}).Return(session, nil)
		svc.EXPECT().CancelDrag(gomock.Any(), "s1").Return(session, nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/builder.drag", jsonBody(t, map[string]string{"session_id": "s1", "kind": "button"})))
		assert.Equal(t, http.StatusOK, w.Code)

		w = httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/builder.cancelDrag", jsonBody(t, map[string]string{"session_id": "s1"})))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Drop passes bounds and index through", func(t *testing.T) {
		svc, mux := setupBuilderHandlerTest(t)
		svc.EXPECT().Drop(gomock.Any(), gomock.Any()).DoAndReturn(func(_ interface{}, req domain.DropRequest) (*domain.MutationResult, error) {
			assert.Equal(t, 150.0, req.CursorY)
			require.Len(t, req.Bounds, 1)
			require.NotNil(t, req.Index)
			assert.Equal(t, 0, *req.Index)
			return &domain.MutationResult{Changed: true, Session: session}, nil
		})

		body := map[string]interface{}{
			"session_id": "s1",
			"cursor_y":   150,
			"bounds":     []map[string]float64{{"top": 0, "height": 100}},
			"index":      0,
		}
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/builder.drop", jsonBody(t, body)))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"changed":true`)
	})

	t.Run("Block operations", func(t *testing.T) {
		svc, mux := setupBuilderHandlerTest(t)
		result := &domain.MutationResult{Changed: true, Session: session}
		svc.EXPECT().Select(gomock.Any(), domain.BlockRequest{SessionID: "s1", BlockID: 4}).Return(result, nil)
		svc.EXPECT().UpdateProperty(gomock.Any(), domain.UpdatePropertyRequest{SessionID: "s1", BlockID: 4, Name: "content", Value: "Hi"}).Return(result, nil)
		svc.EXPECT().Move(gomock.Any(), domain.MoveBlockRequest{SessionID: "s1", BlockID: 4, Direction: domain.MoveUp}).Return(result, nil)
		svc.EXPECT().Delete(gomock.Any(), domain.BlockRequest{SessionID: "s1", BlockID: 4}).Return(result, nil)
		svc.EXPECT().SetMetadata(gomock.Any(), domain.SetMetadataRequest{SessionID: "s1", Name: "Welcome", Subject: "Hello"}).Return(session, nil)

		requests := []struct {
			path string
			body interface{}
		}{
			{"/api/builder.select", map[string]interface{}{"session_id": "s1", "block_id": 4}},
			{"/api/builder.updateProperty", map[string]interface{}{"session_id": "s1", "block_id": 4, "name": "content", "value": "Hi"}},
			{"/api/builder.move", map[string]interface{}{"session_id": "s1", "block_id": 4, "direction": "up"}},
			{"/api/builder.delete", map[string]interface{}{"session_id": "s1", "block_id": 4}},
			{"/api/builder.setMetadata", map[string]interface{}{"session_id": "s1", "name": "Welcome", "subject": "Hello"}},
		}
		for _, req := range requests {
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, req.path, jsonBody(t, req.body)))
			assert.Equal(t, http.StatusOK, w.Code, req.path)
		}
	})

	t.Run("Move rejects sideways", func(t *testing.T) {
		_, mux := setupBuilderHandlerTest(t)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/builder.move", jsonBody(t, map[string]interface{}{"session_id": "s1", "block_id": 4, "direction": "left"})))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid move direction: left", decodeError(t, w))
	})

	t.Run("Wrong method", func(t *testing.T) {
		_, mux := setupBuilderHandlerTest(t)
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/builder.select", nil))
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}

func TestBuilderHandler_Save(t *testing.T) {
	testCases := []struct {
		name          string
		err           error
		expectedCode  int
		expectedError string
	}{
		{"missing name", domain.NewValidationError(domain.MessageTemplateNameRequired), http.StatusBadRequest, domain.MessageTemplateNameRequired},
		{"save in progress", domain.ErrSaveInProgress, http.StatusConflict, domain.ErrSaveInProgress.Error()},
		{"store rejected", fmt.Errorf("failed to save template: %w", &domain.TemplateAPIError{StatusCode: 422, Message: "Name taken"}), http.StatusBadGateway, "Name taken"},
		{"store unreachable", errors.New("connection refused"), http.StatusInternalServerError, domain.MessageTemplateSaveFailed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc, mux := setupBuilderHandlerTest(t)
			svc.EXPECT().Save(gomock.Any(), "s1").Return(nil, tc.err)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/builder.save", jsonBody(t, map[string]string{"session_id": "s1"})))
			assert.Equal(t, tc.expectedCode, w.Code)
			assert.Equal(t, tc.expectedError, decodeError(t, w))
		})
	}

	t.Run("success", func(t *testing.T) {
		svc, mux := setupBuilderHandlerTest(t)
		svc.EXPECT().Save(gomock.Any(), "s1").Return(&domain.SaveResult{
			Template: &domain.Template{ID: 12, Name: "Welcome"},
			Session:  domain.NewSession("s1", time.Now()),
		}, nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/builder.save", jsonBody(t, map[string]string{"session_id": "s1"})))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"Welcome"`)
	})
}

func TestBuilderHandler_PreviewAndExport(t *testing.T) {
	t.Run("Preview", func(t *testing.T) {
		svc, mux := setupBuilderHandlerTest(t)
		svc.EXPECT().Preview(gomock.Any(), "s1").Return("<html><body>Hi</body></html>", nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/builder.preview?session_id=s1", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/html; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "<html><body>Hi</body></html>", w.Body.String())
	})

	t.Run("Export", func(t *testing.T) {
		svc, mux := setupBuilderHandlerTest(t)
		svc.EXPECT().Export(gomock.Any(), "s1").Return(&domain.ExportedTemplate{Filename: "Spring Sale.html", HTML: "<html></html>"}, nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/builder.export?session_id=s1", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, `attachment; filename="Spring Sale.html"`, w.Header().Get("Content-Disposition"))
		assert.Equal(t, "<html></html>", w.Body.String())
	})

	t.Run("Export unknown session", func(t *testing.T) {
		svc, mux := setupBuilderHandlerTest(t)
		svc.EXPECT().Export(gomock.Any(), "nope").Return(nil, &domain.ErrSessionNotFound{SessionID: "nope"})

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/builder.export?session_id=nope", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
