package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"icando-go/app/controllers"
	"icando-go/app/models"
	"icando-go/app/services"
	"icando-go/app/store"
)

func newRouter(t *testing.T) (*mux.Router, *services.MissionService) {
	t.Helper()
	logger, _ := test.NewNullLogger()
	svc := services.NewMissionService(store.NewMemoryStore(), logger)
	router := mux.NewRouter()
	RegisterRoutes(router, controllers.NewMissionController(svc, logger))
	return router, svc
}

func do(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestMissionLifecycle(t *testing.T) {
	router, svc := newRouter(t)

	rec := do(t, router, http.MethodPost, "/missions", map[string]string{"title": "errands"})
	require.Equal(t, http.StatusCreated, rec.Code)
	errands := decode[models.Portable](t, rec)
	assert.Equal(t, "errands", errands.Title)
	assert.Equal(t, "normal", errands.Kind)

	rec = do(t, router, http.MethodPost, "/missions/"+errands.ID+"/children", map[string]string{"title": "buy milk"})
	require.Equal(t, http.StatusCreated, rec.Code)
	milk := decode[models.Portable](t, rec)

	rec = do(t, router, http.MethodPut, "/missions/"+milk.ID, map[string]any{"completed": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[models.Portable](t, rec).Completed)

	rec = do(t, router, http.MethodGet, "/missions/keys", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"completed":["`+milk.ID+`"],"expanded":[]}`, rec.Body.String())

	rec = do(t, router, http.MethodGet, "/missions/"+errands.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sub := decode[models.Portable](t, rec)
	require.Len(t, sub.Children, 1)
	assert.Equal(t, milk.ID, sub.Children[0].ID)

	rec = do(t, router, http.MethodGet, "/missions", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	tree := decode[models.Portable](t, rec)
	assert.Equal(t, "root", tree.Kind)
	assert.Equal(t, svc.Tree(), &tree)

	rec = do(t, router, http.MethodDelete, "/missions/"+milk.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, svc.Root().Children[0].Children)
}

func TestMoveMissionRoute(t *testing.T) {
	router, svc := newRouter(t)
	a := decode[models.Portable](t, do(t, router, http.MethodPost, "/missions", map[string]string{"title": "A"}))
	b := decode[models.Portable](t, do(t, router, http.MethodPost, "/missions", map[string]string{"title": "B"}))

	rec := do(t, router, http.MethodPost, "/missions/"+b.ID+"/move", map[string]string{"target": a.ID, "position": "before"})
	require.Equal(t, http.StatusOK, rec.Code)
	tree := decode[models.Portable](t, rec)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, b.ID, tree.Children[0].ID)

	rec = do(t, router, http.MethodPost, "/missions/"+a.ID+"/move", map[string]string{"target": a.ID, "position": "into"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, router, http.MethodPost, "/missions/"+a.ID+"/move", map[string]string{"target": b.ID, "position": "under"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/missions/"+svc.Root().ID+"/move", map[string]string{"target": b.ID})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestErrorStatuses(t *testing.T) {
	router, svc := newRouter(t)

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		want   int
	}{
		{"unknown mission", http.MethodGet, "/missions/ghost", nil, http.StatusNotFound},
		{"unknown parent", http.MethodPost, "/missions/ghost/children", map[string]string{"title": "x"}, http.StatusNotFound},
		{"empty title", http.MethodPost, "/missions", map[string]string{"title": ""}, http.StatusBadRequest},
		{"bad payload", http.MethodPost, "/missions", "{", http.StatusBadRequest},
		{"bad update payload", http.MethodPut, "/missions/ghost", "[", http.StatusBadRequest},
		{"delete root", http.MethodDelete, "/missions/" + svc.Root().ID, nil, http.StatusConflict},
		{"malformed import", http.MethodPost, "/import", `{"id":"r","kind":"root"}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, router, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestExportImport(t *testing.T) {
	router, svc := newRouter(t)
	do(t, router, http.MethodPost, "/missions", map[string]string{"title": "A", "description": "first"})

	rec := do(t, router, http.MethodGet, "/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "icando.json")
	exported := rec.Body.String()

	other, otherSvc := newRouter(t)
	rec = do(t, other, http.MethodPost, "/import", exported)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, svc.Tree(), otherSvc.Tree())
}
