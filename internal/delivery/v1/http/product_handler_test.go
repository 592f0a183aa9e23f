package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DRSN-tech/pricing-api/internal/repository/memory"
	"github.com/DRSN-tech/pricing-api/internal/usecase"
	"github.com/DRSN-tech/pricing-api/internal/usecase/mocks"
	"github.com/DRSN-tech/pricing-api/pkg/clock"
	"github.com/DRSN-tech/pricing-api/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 10, 1, 9, 30, 0, 0, time.UTC)

func newTestRouter(t *testing.T, repo usecase.ProductRepository, withSwagger bool) http.Handler {
	t.Helper()

	uc := usecase.NewProductUC(repo, usecase.NewDiscountedPriceCalculator(), nil, nil,
		clock.NewMockClock(fixedNow), logger.NewNop())

	r := chi.NewRouter()
	NewRouter(r, logger.NewNop()).Init(uc, withSwagger)

	return r
}

func newSeededRouter(t *testing.T) http.Handler {
	return newTestRouter(t, memory.NewProductRepo(memory.SeedProducts()...), false)
}

func doRequest(t *testing.T, h http.Handler, method, target, body string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	res := rec.Result()
	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res, string(data)
}

func TestListProducts(t *testing.T) {
	res, body := doRequest(t, newSeededRouter(t), http.MethodGet, "/api/products", "")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))
	assert.JSONEq(t, `[
		{"id":1,"name":"Product A","price":100.00,"lastUpdated":"2024-09-26T12:34:56Z"},
		{"id":2,"name":"Product B","price":200.00,"lastUpdated":"2024-09-25T10:12:34Z"}
	]`, body)
	assert.Contains(t, body, `"price":100.00`)
}

func TestRequestIDHeader(t *testing.T) {
	h := newSeededRouter(t)

	first, _ := doRequest(t, h, http.MethodGet, "/api/products", "")
	second, _ := doRequest(t, h, http.MethodGet, "/api/products/999", "")

	id1 := first.Header.Get(RequestIDHeader)
	id2 := second.Header.Get(RequestIDHeader)

	_, err := uuid.Parse(id1)
	require.NoError(t, err)
	_, err = uuid.Parse(id2)
	require.NoError(t, err)
	assert.NotEqual(t, id1, id2)
}

func TestGetPriceHistory(t *testing.T) {
	h := newSeededRouter(t)

	t.Run("existing product keeps history order", func(t *testing.T) {
		res, body := doRequest(t, h, http.MethodGet, "/api/products/1", "")

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.JSONEq(t, `{"id":1,"name":"Product A","priceHistory":[
			{"price":120.00,"date":"2024-09-01T00:00:00Z"},
			{"price":110.00,"date":"2024-08-15T00:00:00Z"},
			{"price":100.00,"date":"2024-08-10T00:00:00Z"}
		]}`, body)
	})

	t.Run("empty history is an empty array", func(t *testing.T) {
		res, body := doRequest(t, h, http.MethodGet, "/api/products/2", "")

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Contains(t, body, `"priceHistory":[]`)
	})

	t.Run("missing product", func(t *testing.T) {
		res, body := doRequest(t, h, http.MethodGet, "/api/products/999", "")

		assert.Equal(t, http.StatusNotFound, res.StatusCode)
		assert.Equal(t, "text/plain; charset=utf-8", res.Header.Get("Content-Type"))
		assert.Equal(t, "Product: 999 not found", body)
	})

	t.Run("non-integer id", func(t *testing.T) {
		res, body := doRequest(t, h, http.MethodGet, "/api/products/abc", "")

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "Invalid product id.", body)
	})
}

func TestApplyDiscount(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid discount",
			target:     "/api/products/1/apply-discount",
			body:       `{"discountPercentage": 10}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"id":1,"name":"Product A","originalPrice":100.00,"discountedPrice":90.00}`,
		},
		{
			name:       "full discount",
			target:     "/api/products/2/apply-discount",
			body:       `{"discountPercentage": 100}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"id":2,"name":"Product B","originalPrice":200.00,"discountedPrice":0.00}`,
		},
		{
			name:       "percentage above range",
			target:     "/api/products/1/apply-discount",
			body:       `{"discountPercentage": 150}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Discount percentage must be between 0 and 100.",
		},
		{
			name:       "negative percentage",
			target:     "/api/products/1/apply-discount",
			body:       `{"discountPercentage": -1}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Discount percentage must be between 0 and 100.",
		},
		{
			name:       "empty body",
			target:     "/api/products/1/apply-discount",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Discount request cannot be null.",
		},
		{
			name:       "null body",
			target:     "/api/products/1/apply-discount",
			body:       `null`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Discount request cannot be null.",
		},
		{
			name:       "malformed body",
			target:     "/api/products/1/apply-discount",
			body:       `{"discountPercentage":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid request body.",
		},
		{
			name:       "percentage as string",
			target:     "/api/products/1/apply-discount",
			body:       `{"discountPercentage": "50"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid request body.",
		},
		{
			name:       "percentage is null",
			target:     "/api/products/1/apply-discount",
			body:       `{"discountPercentage": null}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid request body.",
		},
		{
			name:       "missing percentage means no discount",
			target:     "/api/products/1/apply-discount",
			body:       `{}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"id":1,"name":"Product A","originalPrice":100.00,"discountedPrice":100.00}`,
		},
		{
			name:       "missing product wins over invalid input",
			target:     "/api/products/999/apply-discount",
			body:       `{"discountPercentage": 150}`,
			wantStatus: http.StatusNotFound,
			wantBody:   "Product: 999 not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, body := doRequest(t, newSeededRouter(t), http.MethodPost, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, res.StatusCode)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, tt.wantBody, body)
			} else {
				assert.Equal(t, tt.wantBody, body)
			}
		})
	}
}

func TestApplyDiscount_AppendsHistory(t *testing.T) {
	h := newSeededRouter(t)

	res, body := doRequest(t, h, http.MethodPost, "/api/products/1/apply-discount", `{"discountPercentage": 10}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"discountedPrice":90.00`)

	_, body = doRequest(t, h, http.MethodGet, "/api/products/1", "")
	assert.Contains(t, body, `{"price":90.00,"date":"2024-10-01T09:30:00Z"}`)

	_, body = doRequest(t, h, http.MethodGet, "/api/products", "")
	assert.Contains(t, body, `{"id":1,"name":"Product A","price":90.00,"lastUpdated":"2024-10-01T09:30:00Z"}`)
}

func TestUpdatePrice(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "valid price",
			target:     "/api/products/1/update-price",
			body:       `{"newPrice": 150}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"id":1,"name":"Product A","newPrice":150.00,"lastUpdated":"2024-10-01T09:30:00Z"}`,
		},
		{
			name:       "zero price",
			target:     "/api/products/2/update-price",
			body:       `{"newPrice": 0}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"id":2,"name":"Product B","newPrice":0.00,"lastUpdated":"2024-10-01T09:30:00Z"}`,
		},
		{
			name:       "negative price",
			target:     "/api/products/1/update-price",
			body:       `{"newPrice": -1}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "New price cannot be negative.",
		},
		{
			name:       "empty body",
			target:     "/api/products/1/update-price",
			wantStatus: http.StatusBadRequest,
			wantBody:   "Update price request cannot be null.",
		},
		{
			name:       "price is not a number",
			target:     "/api/products/1/update-price",
			body:       `{"newPrice": "cheap"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid request body.",
		},
		{
			name:       "numeric string price",
			target:     "/api/products/1/update-price",
			body:       `{"newPrice": "150"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid request body.",
		},
		{
			name:       "null price",
			target:     "/api/products/1/update-price",
			body:       `{"newPrice": null}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid request body.",
		},
		{
			name:       "boolean price",
			target:     "/api/products/1/update-price",
			body:       `{"newPrice": true}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   "Invalid request body.",
		},
		{
			name:       "price rounded to cents",
			target:     "/api/products/1/update-price",
			body:       `{"newPrice": 10.005}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"id":1,"name":"Product A","newPrice":10.01,"lastUpdated":"2024-10-01T09:30:00Z"}`,
		},
		{
			name:       "missing product",
			target:     "/api/products/999/update-price",
			body:       `{"newPrice": -5}`,
			wantStatus: http.StatusNotFound,
			wantBody:   "Product: 999 not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, body := doRequest(t, newSeededRouter(t), http.MethodPut, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, res.StatusCode)
			if tt.wantStatus == http.StatusOK {
				assert.JSONEq(t, tt.wantBody, body)
			} else {
				assert.Equal(t, tt.wantBody, body)
			}
		})
	}
}

func TestUpdatePrice_RoundedPriceIsDiscounted(t *testing.T) {
	h := newSeededRouter(t)

	res, body := doRequest(t, h, http.MethodPut, "/api/products/1/update-price", `{"newPrice": 10.005}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, `"newPrice":10.01`)

	res, body = doRequest(t, h, http.MethodPost, "/api/products/1/apply-discount", `{"discountPercentage": 50}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.JSONEq(t, `{"id":1,"name":"Product A","originalPrice":10.01,"discountedPrice":5.01}`, body)
}

func TestInternalErrorIsHidden(t *testing.T) {
	repo := new(mocks.MockProductRepository)
	repo.On("GetAll", mock.Anything).Return(nil, errors.New("connection reset by peer"))
	repo.On("GetByID", mock.Anything, int64(1)).Return(nil, errors.New("connection reset by peer"))

	h := newTestRouter(t, repo, false)

	res, body := doRequest(t, h, http.MethodGet, "/api/products", "")
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "Internal server error", body)

	res, body = doRequest(t, h, http.MethodPost, "/api/products/1/apply-discount", `{"discountPercentage": 5}`)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Equal(t, "Internal server error", body)
}

func TestHealthz(t *testing.T) {
	res, body := doRequest(t, newSeededRouter(t), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "ok", body)
}

func TestSwagger(t *testing.T) {
	res, _ := doRequest(t, newSeededRouter(t), http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusNotFound, res.StatusCode)

	h := newTestRouter(t, memory.NewProductRepo(), true)
	res, body := doRequest(t, h, http.MethodGet, "/swagger/doc.json", "")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "Product Pricing API")
	assert.Contains(t, body, "/api/products/{id}/apply-discount")
}

func TestServer_StopBeforeRun(t *testing.T) {
	srv := NewServer(http.NotFoundHandler(), &cfgForTest)
	assert.NoError(t, srv.Stop(context.Background()))
}
