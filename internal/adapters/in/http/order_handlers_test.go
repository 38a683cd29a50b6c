package http_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	apihttp "pressing/internal/adapters/in/http"
	"pressing/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func doRequest(server *apihttp.Server, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	e := echo.New()
	server.RegisterRoutes(e)

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func actorHeaders(id kernel.UUID, role string) map[string]string {
	return map[string]string{
		apihttp.HeaderActorID:   id.String(),
		apihttp.HeaderActorRole: role,
	}
}

func TestCreateOrder_RequiresActorHeaders(t *testing.T) {
	server := newWebhookServer(t, newFakeReconcileStore())

	rec := doRequest(server, http.MethodPost, "/api/v1/orders",
		`{"service_type":"express","estimated_weight_kg":2}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrder_RejectsNonClientRole(t *testing.T) {
	server := newWebhookServer(t, newFakeReconcileStore())

	rec := doRequest(server, http.MethodPost, "/api/v1/orders",
		`{"service_type":"express","estimated_weight_kg":2}`,
		actorHeaders(kernel.NewUUID(), "washer"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestCreateOrder_RejectsUnknownServiceType(t *testing.T) {
	server := newWebhookServer(t, newFakeReconcileStore())

	rec := doRequest(server, http.MethodPost, "/api/v1/orders",
		`{"service_type":"dry_ice","estimated_weight_kg":2}`,
		actorHeaders(kernel.NewUUID(), "client"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestClaimOrder_RejectsMalformedOrderID(t *testing.T) {
	server := newWebhookServer(t, newFakeReconcileStore())

	rec := doRequest(server, http.MethodPost, "/api/v1/orders/not-a-uuid/claim",
		"", actorHeaders(kernel.NewUUID(), "washer"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTransitionOrder_RejectsUnknownTarget(t *testing.T) {
	server := newWebhookServer(t, newFakeReconcileStore())

	rec := doRequest(server, http.MethodPost,
		"/api/v1/orders/"+kernel.NewUUID().String()+"/transition",
		`{"target":"teleported"}`,
		actorHeaders(kernel.NewUUID(), "washer"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCheckout_RejectsNonClientRole(t *testing.T) {
	server := newWebhookServer(t, newFakeReconcileStore())

	rec := doRequest(server, http.MethodPost,
		"/api/v1/orders/"+kernel.NewUUID().String()+"/checkout",
		"", actorHeaders(kernel.NewUUID(), "partner"))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
