package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amrmohammed249/daftari/internal/core/domain"
	"github.com/amrmohammed249/daftari/internal/core/engine"
	"github.com/amrmohammed249/daftari/internal/dto"
	"github.com/amrmohammed249/daftari/internal/middleware"
)

const testSecret = "test-secret"

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testToken(t *testing.T) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  "user-1",
		"name": "Tester",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func testRouter(t *testing.T) (*gin.Engine, *engine.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	eng := engine.New(engine.NewDefaultState())
	r := gin.New()
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(testSecret))
	registerSaleRoutes(v1, eng)
	registerItemRoutes(v1, eng)
	return r, eng
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func seedHandlerItem(t *testing.T, eng *engine.Engine, stock string) *domain.InventoryItem {
	t.Helper()
	item, err := eng.CreateItem(context.Background(), domain.Actor{ID: "seed", Name: "Seed"}, dto.CreateItemRequest{
		Name:          "Widget",
		BaseUnit:      "piece",
		PurchasePrice: mustDecimal("6"),
		SalePrice:     mustDecimal("10"),
		OpeningStock:  mustDecimal(stock),
	})
	require.NoError(t, err)
	return item
}

func TestCreateSaleEndpoint(t *testing.T) {
	r, eng := testRouter(t)
	item := seedHandlerItem(t, eng, "20")
	token := testToken(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/sales", token, gin.H{
		"date":        time.Now().Format(time.RFC3339),
		"paymentType": "CASH",
		"lines": []gin.H{
			{"itemID": item.ID, "quantity": "5", "unitPrice": "10"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.SaleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INV-000001", resp.ID)
	assert.Equal(t, "CASH", resp.PaymentType)
	assert.True(t, resp.GrandTotal.Equal(mustDecimal("50")))
}

func TestCreateSaleEndpointRejectsUnauthenticated(t *testing.T) {
	r, _ := testRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/sales", "", gin.H{})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/sales", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateSaleEndpointValidatesBody(t *testing.T) {
	r, _ := testRouter(t)
	token := testToken(t)

	// missing required fields
	w := doJSON(t, r, http.MethodPost, "/api/v1/sales", token, gin.H{"paymentType": "MAYBE"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateSaleEndpointInsufficientStock(t *testing.T) {
	r, eng := testRouter(t)
	item := seedHandlerItem(t, eng, "2")
	token := testToken(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/sales", token, gin.H{
		"date":        time.Now().Format(time.RFC3339),
		"paymentType": "CASH",
		"lines": []gin.H{
			{"itemID": item.ID, "quantity": "5", "unitPrice": "10"},
		},
	})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, item.ID, resp["itemID"])
	assert.Equal(t, "5", resp["requested"])
	assert.Equal(t, "2", resp["available"])
}

func TestGetSaleEndpointNotFound(t *testing.T) {
	r, _ := testRouter(t)
	token := testToken(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/sales/INV-000099", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestArchiveSaleEndpoint(t *testing.T) {
	r, eng := testRouter(t)
	item := seedHandlerItem(t, eng, "20")
	token := testToken(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/sales", token, gin.H{
		"date":        time.Now().Format(time.RFC3339),
		"paymentType": "CASH",
		"lines": []gin.H{
			{"itemID": item.ID, "quantity": "5", "unitPrice": "10"},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var created dto.SaleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = doJSON(t, r, http.MethodPost, "/api/v1/sales/"+created.ID+"/archive", token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// second archive conflicts
	w = doJSON(t, r, http.MethodPost, "/api/v1/sales/"+created.ID+"/archive", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	assert.True(t, eng.Snapshot().ItemByID(item.ID).Stock.Equal(mustDecimal("20")))
}
