package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/dwalleck/TopicTracker/internal/adapter"
	"github.com/dwalleck/TopicTracker/internal/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*Router, *store.Store) {
	t.Helper()
	s, err := store.New(10)
	require.NoError(t, err)
	a := adapter.New(s)
	return NewRouter(a, s, "/messages", zerolog.Nop()), s
}

func TestRouter_HealthCheck(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_PublishThenVerify(t *testing.T) {
	router, _ := newTestRouter(t)

	form := url.Values{}
	form.Set("Action", "Publish")
	form.Set("TopicArn", "arn:aws:sns:us-east-1:000000000000:orders")
	form.Set("Message", "hello world")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	listReq := httptest.NewRequest(http.MethodGet, "/messages", nil)
	listRec := httptest.NewRecorder()
	router.Handler().ServeHTTP(listRec, listReq)

	require.Equal(t, http.StatusOK, listRec.Code)

	var msgs []map[string]any
	require.NoError(t, json.Unmarshal(listRec.Body.Bytes(), &msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, "hello world", msgs[0]["body"])
}

func TestRouter_DeleteClearsMessages(t *testing.T) {
	router, s := newTestRouter(t)

	form := url.Values{}
	form.Set("Action", "Publish")
	form.Set("TopicArn", "arn:aws:sns:us-east-1:000000000000:orders")
	form.Set("Message", "hello")

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.Handler().ServeHTTP(httptest.NewRecorder(), req)
	require.Equal(t, 1, s.Count())

	delReq := httptest.NewRequest(http.MethodDelete, "/messages", nil)
	delRec := httptest.NewRecorder()
	router.Handler().ServeHTTP(delRec, delReq)

	assert.Equal(t, http.StatusNoContent, delRec.Code)
	assert.Equal(t, 0, s.Count())
}

func TestRouter_GetByIDNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/messages/does-not-exist", nil)
	rec := httptest.NewRecorder()
	router.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
