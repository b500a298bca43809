package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const e2eAdminPassword = "e2e-admin-password"

type farmsteadContainer struct {
	testcontainers.Container
	URI string
}

func setupFarmstead(ctx context.Context, t *testing.T) (*farmsteadContainer, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "test-secret"
	}

	natPort := nat.Port(port + "/tcp")

	req := testcontainers.ContainerRequest{
		FromDockerfile: testcontainers.FromDockerfile{
			Context:    "../../",
			Dockerfile: "Dockerfile",
		},
		ExposedPorts: []string{string(natPort)},
		Env: map[string]string{
			"PORT":                   port,
			"GIN_MODE":               "release",
			"DATABASE_URL":           "sqlite::memory:",
			"JWT_SECRET":             jwtSecret,
			"ADMIN_DEFAULT_PASSWORD": e2eAdminPassword,
		},
		WaitingFor: wait.ForHTTP("/healthz").
			WithPort(natPort).
			WithStatusCodeMatcher(func(status int) bool {
				return status == http.StatusOK
			}).
			WithStartupTimeout(90 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})

	var farmsteadC *farmsteadContainer
	if container != nil {
		farmsteadC = &farmsteadContainer{Container: container}
	}
	if err != nil {
		return farmsteadC, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		return farmsteadC, err
	}

	mappedPort, err := container.MappedPort(ctx, natPort)
	if err != nil {
		return farmsteadC, err
	}

	farmsteadC.URI = fmt.Sprintf("http://%s:%s", host, mappedPort.Port())
	return farmsteadC, nil
}

func e2eLogin(t *testing.T, baseURL, username, password string) string {
	form := url.Values{"username": {username}, "password": {password}}
	resp, err := http.PostForm(baseURL+"/token", form)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &result))

	token, ok := result["access_token"].(string)
	require.True(t, ok, "access_token should be a string")
	return token
}

func e2eRequest(t *testing.T, method, url, token, body string) (int, map[string]interface{}) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result map[string]interface{}
	if len(data) > 0 && data[0] == '{' {
		require.NoError(t, json.Unmarshal(data, &result))
	}
	return resp.StatusCode, result
}

func TestE2E_Health(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping E2E test")
	}

	ctx := context.Background()
	farmsteadC, err := setupFarmstead(ctx, t)
	testcontainers.CleanupContainer(t, farmsteadC)
	require.NoError(t, err)

	status, result := e2eRequest(t, http.MethodGet, farmsteadC.URI+"/healthz", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "up", result["database"])

	status, _ = e2eRequest(t, http.MethodGet, farmsteadC.URI+"/farmers", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestE2E_InventoryTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping E2E test")
	}

	ctx := context.Background()
	farmsteadC, err := setupFarmstead(ctx, t)
	testcontainers.CleanupContainer(t, farmsteadC)
	require.NoError(t, err)

	token := e2eLogin(t, farmsteadC.URI, "admin", e2eAdminPassword)

	status, item := e2eRequest(t, http.MethodPost, farmsteadC.URI+"/items", token,
		`{"name": "Maize seed", "type": "seed", "quantity": 10, "price": 5.0}`)
	require.Equal(t, http.StatusOK, status)
	itemID := int(item["id"].(float64))

	status, tx := e2eRequest(t, http.MethodPost, farmsteadC.URI+"/transactions", token,
		fmt.Sprintf(`{"item_id": %d, "type": "buy", "quantity": 5, "price_per_unit": 6.0}`, itemID))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 30.0, tx["total_price"])

	status, _ = e2eRequest(t, http.MethodPost, farmsteadC.URI+"/transactions", token,
		fmt.Sprintf(`{"item_id": %d, "type": "sell", "quantity": 20, "price_per_unit": 7.5}`, itemID))
	require.Equal(t, http.StatusOK, status)

	status, item = e2eRequest(t, http.MethodGet, fmt.Sprintf("%s/items/%d", farmsteadC.URI, itemID), token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, -5.0, item["quantity"])

	status, summary := e2eRequest(t, http.MethodGet, farmsteadC.URI+"/reports/summary", token, "")
	require.Equal(t, http.StatusOK, status)
	transactions := summary["transactions"].(map[string]interface{})
	assert.Equal(t, 30.0, transactions["total_purchase_amount"])
	assert.Equal(t, 120.0, transactions["net_profit"])
}
