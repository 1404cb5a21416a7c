package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika/worldsporta/backend/internal/domain"
	"github.com/vanshika/worldsporta/backend/internal/generator"
	"github.com/vanshika/worldsporta/backend/internal/kv"
	"github.com/vanshika/worldsporta/backend/internal/logging"
	"github.com/vanshika/worldsporta/backend/internal/repository"
	"github.com/vanshika/worldsporta/backend/internal/service"
)

func newTestAPI(t *testing.T) (http.Handler, *service.SiteService) {
	t.Helper()
	ns := kv.NewMemoryNamespace()
	repo := repository.New(ns, logging.Discard())
	now := time.Date(2025, 5, 4, 18, 0, 0, 0, time.UTC)
	site := service.NewSiteService(context.Background(), repo, generator.Defaults(now, "admin"), logging.Discard()).
		WithClock(func() time.Time { return now })

	router := NewRouter(logging.Discard(), RouterDependencies{
		Health: StorageHealthService{Namespace: ns},
		API:    NewAPIHandlers(logging.Discard(), site),
	})
	return router, site
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func login(t *testing.T, h http.Handler) {
	t.Helper()
	rec := do(t, h, http.MethodPost, "/session", map[string]string{"identifier": "admin", "password": "admin"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestSessionLifecycle(t *testing.T) {
	h, _ := newTestAPI(t)

	rec := do(t, h, http.MethodGet, "/session", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decode[sessionResponse](t, rec).User)

	rec = do(t, h, http.MethodPost, "/session", map[string]string{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/session", map[string]string{"email": "admin@worldsporta.com", "password": "admin"})
	require.Equal(t, http.StatusOK, rec.Code)
	session := decode[sessionResponse](t, rec)
	require.NotNil(t, session.User)
	assert.Equal(t, domain.RoleAdmin, session.User.Role)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = do(t, h, http.MethodDelete, "/session", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, decode[sessionResponse](t, do(t, h, http.MethodGet, "/session", nil)).User)
}

func TestSessionRejectsEmptyPassword(t *testing.T) {
	h, site := newTestAPI(t)

	rec := do(t, h, http.MethodPost, "/session", map[string]string{"identifier": "admin", "password": ""})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	_, signedIn := site.CurrentUser()
	assert.False(t, signedIn)
}

func TestRegisterConflict(t *testing.T) {
	h, _ := newTestAPI(t)

	rec := do(t, h, http.MethodPost, "/register", registerRequest{Username: "fan", Email: "fan@example.com", Password: "pw"})
	require.Equal(t, http.StatusCreated, rec.Code)
	session := decode[sessionResponse](t, rec)
	require.NotNil(t, session.User)
	assert.Equal(t, "fan", session.User.Username)

	rec = do(t, h, http.MethodPost, "/register", registerRequest{Username: "admin", Email: "x@example.com", Password: "pw"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodPost, "/register", map[string]string{"nickname": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestContentEndpoints(t *testing.T) {
	h, _ := newTestAPI(t)

	assert.Len(t, decode[[]domain.NewsArticle](t, do(t, h, http.MethodGet, "/news", nil)), 3)
	assert.Len(t, decode[[]domain.MatchScore](t, do(t, h, http.MethodGet, "/scores?status=live", nil)), 2)
	assert.Len(t, decode[[]domain.Product](t, do(t, h, http.MethodGet, "/products?category=Equipment", nil)), 2)

	rec := do(t, h, http.MethodGet, "/products/3", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Velocity Running Shoes", decode[domain.Product](t, rec).Name)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/products/404", nil).Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, h, http.MethodPost, "/news", nil).Code)
}

func TestCartAndCheckout(t *testing.T) {
	h, site := newTestAPI(t)

	require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/cart", cartAddRequest{ProductID: "1"}).Code)
	rec := do(t, h, http.MethodPost, "/cart", cartAddRequest{ProductID: "1"})
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[cartResponse](t, rec)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, 2, cart.Count)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPost, "/cart", cartAddRequest{ProductID: "missing"}).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodPost, "/checkout", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(t, h, http.MethodGet, "/orders", nil).Code)

	login(t, h)
	rec = do(t, h, http.MethodPost, "/checkout", nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	order := decode[domain.Order](t, rec)
	assert.Equal(t, domain.OrderProcessing, order.Status)
	assert.Equal(t, "1", order.UserID)
	assert.Zero(t, site.CartCount())

	orders := decode[[]domain.Order](t, do(t, h, http.MethodGet, "/orders", nil))
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/checkout", nil).Code)
}

func TestCartRemoveAndClear(t *testing.T) {
	h, _ := newTestAPI(t)
	for _, id := range []string{"1", "2", "2"} {
		require.Equal(t, http.StatusOK, do(t, h, http.MethodPost, "/cart", cartAddRequest{ProductID: id}).Code)
	}

	cart := decode[cartResponse](t, do(t, h, http.MethodDelete, "/cart/1", nil))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "2", cart.Items[0].ID)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	cart = decode[cartResponse](t, do(t, h, http.MethodDelete, "/cart", nil))
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Count)
	assert.Zero(t, cart.Total)
}

func TestHealthz(t *testing.T) {
	h, _ := newTestAPI(t)
	rec := do(t, h, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]any](t, rec)["status"])
}
