package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/h4ks-com/farmstead/internal/config"
	"github.com/h4ks-com/farmstead/internal/database"
	"github.com/h4ks-com/farmstead/internal/repository"
	"github.com/h4ks-com/farmstead/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const adminPassword = "admin-test-pass"

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func testConfig() *config.Config {
	return &config.Config{
		GinMode: gin.TestMode,
		JWT: config.JWTConfig{
			Secret:   "server-test-secret",
			TokenTTL: 30 * time.Minute,
		},
		CORSOrigins:          []string{"http://localhost:5173"},
		AdminDefaultPassword: adminPassword,
		ExportSigningKey:     "server-test-export-key",
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *testServer {
	gin.SetMode(gin.TestMode)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, zap.NewNop()))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	authService := services.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewTokenRepository(db),
		services.NewTokenService(cfg.JWT.Secret, cfg.JWT.TokenTTL),
		zap.NewNop(),
	)
	created, err := authService.EnsureAdmin(context.Background(), cfg.AdminDefaultPassword)
	require.NoError(t, err)
	require.True(t, created)

	return &testServer{t: t, router: New(cfg, db, zap.NewNop())}
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		var data []byte
		switch b := body.(type) {
		case string:
			data = []byte(b)
		default:
			var err error
			data, err = json.Marshal(b)
			require.NoError(s.t, err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) loginResponse(username, password string) *httptest.ResponseRecorder {
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(username, password string) string {
	w := s.loginResponse(username, password)
	require.Equal(s.t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	decode(s.t, w, &resp)
	assert.Equal(s.t, "bearer", resp.TokenType)
	require.NotEmpty(s.t, resp.AccessToken)
	return resp.AccessToken
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func createdID(t *testing.T, w *httptest.ResponseRecorder) uint {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp struct {
		ID uint `json:"id"`
	}
	decode(t, w, &resp)
	require.NotZero(t, resp.ID)
	return resp.ID
}

func TestPublicRoutes(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := s.do(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome to Farm Management API")

	w = s.do(http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"up"}`, w.Body.String())

	w = s.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "farmstead_http_requests_total")
}

func TestAuth_RequiresToken(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := s.do(http.MethodGet, "/farmers", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))

	w = s.do(http.MethodGet, "/farmers", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_BadCredentialsAreIndistinguishable(t *testing.T) {
	s := newTestServer(t, testConfig())

	wrongPassword := s.loginResponse("admin", "nope")
	unknownUser := s.loginResponse("ghost", "nope")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
	assert.Equal(t, "Bearer", wrongPassword.Header().Get("WWW-Authenticate"))
}

func TestAuth_LoginRequiresForm(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := s.do(http.MethodPost, "/token", "", map[string]string{"username": "admin", "password": adminPassword})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotContains(t, w.Body.String(), "access_token")
}

func TestAuth_RegisterAndMe(t *testing.T) {
	s := newTestServer(t, testConfig())

	w := s.do(http.MethodPost, "/users/register", "", map[string]string{"username": "alice", "password": "pw"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodPost, "/users/register", "", map[string]string{"username": "alice", "password": "other"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	token := s.login("alice", "pw")
	w = s.do(http.MethodGet, "/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var me struct {
		Username string `json:"username"`
		Role     string `json:"role"`
		IsActive bool   `json:"is_active"`
	}
	decode(t, w, &me)
	assert.Equal(t, "alice", me.Username)
	assert.Equal(t, "farmer", me.Role)
	assert.True(t, me.IsActive)
}

func TestAuth_AdminGate(t *testing.T) {
	s := newTestServer(t, testConfig())
	adminToken := s.login("admin", adminPassword)

	w := s.do(http.MethodPost, "/users/", adminToken, map[string]any{"username": "bob", "password": "pw"})
	bobID := createdID(t, w)

	bobToken := s.login("bob", "pw")
	w = s.do(http.MethodGet, "/users/", bobToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(http.MethodGet, "/users/", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var users []map[string]any
	decode(t, w, &users)
	assert.Len(t, users, 2)

	w = s.do(http.MethodPut, fmt.Sprintf("/users/%d", bobID), adminToken, `{"role": "admin"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, "/users/", bobToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPut, fmt.Sprintf("/users/%d", bobID), adminToken, `{"role": "owner"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/users/%d", bobID), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/users/me", bobToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_InactiveUserRejected(t *testing.T) {
	s := newTestServer(t, testConfig())
	adminToken := s.login("admin", adminPassword)

	w := s.do(http.MethodPost, "/users/", adminToken, map[string]any{"username": "carol", "password": "pw", "is_active": false})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	token := s.login("carol", "pw")
	w = s.do(http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "inactive user")
}

func TestAuth_RevokeToken(t *testing.T) {
	s := newTestServer(t, testConfig())
	token := s.login("admin", adminPassword)

	w := s.do(http.MethodGet, "/users/me/tokens", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tokens []struct {
		ID uint `json:"id"`
	}
	decode(t, w, &tokens)
	require.Len(t, tokens, 1)

	w = s.do(http.MethodDelete, fmt.Sprintf("/users/me/tokens/%d", tokens[0].ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginRateLimited(t *testing.T) {
	cfg := testConfig()
	cfg.Login = config.LoginConfig{RatePerMinute: 1, Burst: 1}
	s := newTestServer(t, cfg)

	s.login("admin", adminPassword)

	w := s.loginResponse("admin", adminPassword)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestFarmersAndTasks(t *testing.T) {
	s := newTestServer(t, testConfig())
	token := s.login("admin", adminPassword)

	farmerID := createdID(t, s.do(http.MethodPost, "/farmers", token, map[string]string{"name": "Ana", "phone": "555"}))

	w := s.do(http.MethodPost, "/farmers", token, map[string]string{"phone": "555"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, fmt.Sprintf("/farmers/%d", farmerID), token, map[string]string{"name": "Ana Maria"})
	require.Equal(t, http.StatusOK, w.Code)
	var farmer map[string]any
	decode(t, w, &farmer)
	assert.Equal(t, "Ana Maria", farmer["name"])
	assert.Equal(t, "", farmer["phone"])

	taskID := createdID(t, s.do(http.MethodPost, "/tasks", token, map[string]any{"description": "Weed rows", "farmer_id": farmerID}))

	w = s.do(http.MethodPost, "/tasks", token, map[string]any{"description": "Orphan", "farmer_id": 999})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodPut, fmt.Sprintf("/tasks/%d", taskID), token, `{"status": "Completed"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var task map[string]any
	decode(t, w, &task)
	assert.Equal(t, "Completed", task["status"])
	assert.Equal(t, "Weed rows", task["description"])

	w = s.do(http.MethodGet, fmt.Sprintf("/farmers/%d/tasks", farmerID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tasks []map[string]any
	decode(t, w, &tasks)
	assert.Len(t, tasks, 1)

	w = s.do(http.MethodDelete, fmt.Sprintf("/tasks/%d", taskID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, fmt.Sprintf("/tasks/%d", taskID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/farmers/%d", farmerID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, fmt.Sprintf("/farmers/%d", farmerID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodGet, "/farmers/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLandPartialUpdate(t *testing.T) {
	s := newTestServer(t, testConfig())
	token := s.login("admin", adminPassword)

	farmerID := createdID(t, s.do(http.MethodPost, "/farmers", token, map[string]string{"name": "Ana"}))
	landID := createdID(t, s.do(http.MethodPost, "/lands", token, map[string]any{
		"name": "North field", "location": "Hill", "size": 40.0, "soil_type": "loam",
	}))

	w := s.do(http.MethodPut, fmt.Sprintf("/lands/%d", landID), token, `{"size": 60.0}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var land map[string]any
	decode(t, w, &land)
	assert.Equal(t, 60.0, land["size"])
	assert.Equal(t, "North field", land["name"])
	assert.Equal(t, "loam", land["soil_type"])
	assert.Equal(t, 0.0, land["tax_amount"])

	w = s.do(http.MethodPut, fmt.Sprintf("/lands/%d", landID), token, `{"size": null}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPut, fmt.Sprintf("/lands/%d", landID), token, `{"soil_type": null}`)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &land)
	assert.Nil(t, land["soil_type"])

	w = s.do(http.MethodPut, fmt.Sprintf("/lands/%d/assign/%d", landID, farmerID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &land)
	assert.Equal(t, float64(farmerID), land["farmer_id"])

	w = s.do(http.MethodGet, fmt.Sprintf("/farmers/%d/lands", farmerID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var lands []map[string]any
	decode(t, w, &lands)
	assert.Len(t, lands, 1)

	w = s.do(http.MethodPut, "/lands/999", token, `{"size": 1}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCrops(t *testing.T) {
	s := newTestServer(t, testConfig())
	token := s.login("admin", adminPassword)

	landID := createdID(t, s.do(http.MethodPost, "/lands", token, map[string]any{"name": "South", "location": "Valley", "size": 10.0}))

	now := time.Now().UTC()
	soonID := createdID(t, s.do(http.MethodPost, "/crops", token, map[string]any{
		"land_id":               landID,
		"crop_name":             "Beans",
		"planting_date":         now.AddDate(0, 0, 7).Format("2006-01-02"),
		"expected_harvest_date": now.AddDate(0, 0, 90).Format("2006-01-02"),
	}))
	createdID(t, s.do(http.MethodPost, "/crops", token, map[string]any{
		"land_id":               landID,
		"crop_name":             "Squash",
		"planting_date":         now.AddDate(0, 0, 7).Format("2006-01-02"),
		"expected_harvest_date": now.AddDate(0, 0, 200).Format("2006-01-02"),
	}))

	w := s.do(http.MethodGet, fmt.Sprintf("/crops/land/%d", landID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var crops []map[string]any
	decode(t, w, &crops)
	assert.Len(t, crops, 2)

	w = s.do(http.MethodGet, fmt.Sprintf("/crops/land/%d/4months", landID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &crops)
	require.Len(t, crops, 1)
	assert.Equal(t, "Beans", crops[0]["crop_name"])
	assert.Equal(t, "Planned", crops[0]["status"])

	w = s.do(http.MethodPut, fmt.Sprintf("/crops/%d", soonID), token, `{"status": "Harvested", "actual_yield": 12.5}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var crop map[string]any
	decode(t, w, &crop)
	assert.Equal(t, "Harvested", crop["status"])
	assert.Equal(t, 12.5, crop["actual_yield"])

	w = s.do(http.MethodPut, fmt.Sprintf("/crops/%d", soonID), token, `{"status": "Rotten"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/crops", token, map[string]any{
		"land_id": 999, "crop_name": "Ghost", "planting_date": "2024-01-01", "expected_harvest_date": "2024-02-01",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInventoryScenario(t *testing.T) {
	s := newTestServer(t, testConfig())
	token := s.login("admin", adminPassword)

	itemID := createdID(t, s.do(http.MethodPost, "/items", token, map[string]any{"name": "Maize seed", "type": "seed", "quantity": 10, "price": 5.0}))

	w := s.do(http.MethodPost, "/transactions", token, map[string]any{"item_id": itemID, "type": "buy", "quantity": 5, "price_per_unit": 6.0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var tx map[string]any
	decode(t, w, &tx)
	assert.Equal(t, 30.0, tx["total_price"])

	w = s.do(http.MethodPost, "/transactions", token, map[string]any{"item_id": itemID, "type": "sell", "quantity": 20, "price_per_unit": 7.5, "buyer_name": "Coop"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodGet, fmt.Sprintf("/items/%d", itemID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var item map[string]any
	decode(t, w, &item)
	assert.Equal(t, -5.0, item["quantity"])

	w = s.do(http.MethodPost, "/transactions", token, map[string]any{"item_id": itemID, "type": "gift", "quantity": 1, "price_per_unit": 1.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(http.MethodPost, "/transactions", token, map[string]any{"item_id": itemID, "type": "buy", "quantity": 0, "price_per_unit": 1.0})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, fmt.Sprintf("/items/%d/transactions", itemID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var history []map[string]any
	decode(t, w, &history)
	require.Len(t, history, 2)
	assert.Equal(t, "sell", history[0]["type"])

	w = s.do(http.MethodGet, "/transactions?skip=1&limit=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &history)
	require.Len(t, history, 1)
	assert.Equal(t, "buy", history[0]["type"])

	w = s.do(http.MethodGet, "/transactions?limit=-1", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/reports/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary services.Summary
	decode(t, w, &summary)
	assert.Equal(t, int64(2), summary.Transactions.Total)
	assert.Equal(t, 30.0, summary.Transactions.TotalPurchaseAmount)
	assert.Equal(t, 150.0, summary.Transactions.TotalSalesAmount)
	assert.Equal(t, 120.0, summary.Transactions.NetProfit)

	w = s.do(http.MethodGet, "/reports/transactions/summary", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var byType services.TransactionTypeSummary
	decode(t, w, &byType)
	assert.Equal(t, int64(5), byType.Buy.TotalQuantity)
	assert.Equal(t, int64(20), byType.Sell.TotalQuantity)
	assert.Equal(t, 120.0, byType.Profit)

	w = s.do(http.MethodGet, "/reports/items", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []services.ItemReport
	decode(t, w, &items)
	require.Len(t, items, 1)
	assert.Equal(t, -5, items[0].CurrentQuantity)
	assert.Equal(t, int64(1), items[0].BuyTransactions)
	assert.Equal(t, int64(1), items[0].SellTransactions)
}

func TestLedgerExportRoundTrip(t *testing.T) {
	s := newTestServer(t, testConfig())
	token := s.login("admin", adminPassword)

	itemID := createdID(t, s.do(http.MethodPost, "/items", token, map[string]any{"name": "Hoe", "type": "tool", "quantity": 2, "price": 12.0}))
	w := s.do(http.MethodPost, "/transactions", token, map[string]any{"item_id": itemID, "type": "buy", "quantity": 3, "price_per_unit": 11.0})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, fmt.Sprintf("/items/%d/ledger", itemID), token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	exported := w.Body.String()

	var ledger services.LedgerExport
	decode(t, w, &ledger)
	assert.Equal(t, "admin", ledger.ExportedBy)
	assert.Equal(t, 5, ledger.CurrentQuantity)
	require.Len(t, ledger.Transactions, 1)

	w = s.do(http.MethodPost, "/items/ledger/verify", token, exported)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"valid":true}`, w.Body.String())

	ledger.CurrentQuantity = 500
	w = s.do(http.MethodPost, "/items/ledger/verify", token, ledger)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"valid":false}`, w.Body.String())

	w = s.do(http.MethodPost, "/items/ledger/verify", token, `{"item_id": 1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodGet, "/items/999/ledger", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssets(t *testing.T) {
	s := newTestServer(t, testConfig())
	token := s.login("admin", adminPassword)

	assetID := createdID(t, s.do(http.MethodPost, "/assets", token, map[string]any{"name": "Tractor", "type": "vehicle", "value": 1000.5}))

	w := s.do(http.MethodGet, fmt.Sprintf("/assets/%d", assetID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var asset map[string]any
	decode(t, w, &asset)
	assert.Equal(t, "Tractor", asset["name"])
	assert.NotEmpty(t, asset["purchase_date"])

	w = s.do(http.MethodPost, "/assets", token, map[string]any{"name": "Plough", "type": "tool"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/assets/%d", assetID), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(http.MethodGet, fmt.Sprintf("/assets/%d", assetID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
