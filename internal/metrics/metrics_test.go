package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestInventoryTransactionsCounter(t *testing.T) {
	before := testutil.ToFloat64(InventoryTransactions.WithLabelValues("buy"))
	InventoryTransactions.WithLabelValues("buy").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(InventoryTransactions.WithLabelValues("buy")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	Logins.WithLabelValues("success").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "farmstead_auth_logins_total")
}
