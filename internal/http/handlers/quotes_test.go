package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrKriegler/go-autoquote/internal/core"
)

type stubQuoteService struct {
	policy core.Policy
	err    error
}

func (s *stubQuoteService) Create(context.Context, core.QuoteInput) (core.Policy, error) {
	return s.policy, s.err
}

func (s *stubQuoteService) Get(context.Context, string) (core.Policy, error) {
	return s.policy, s.err
}

func (s *stubQuoteService) ReplaceDrivers(context.Context, string, core.Driver, []core.Driver) (core.Policy, error) {
	return s.policy, s.err
}

func (s *stubQuoteService) ReplaceVehicles(context.Context, string, []core.Vehicle) (core.Policy, error) {
	return s.policy, s.err
}

func (s *stubQuoteService) FinalizeCoverage(context.Context, string, core.CoverageSelection) (core.Policy, error) {
	return s.policy, s.err
}

type stubBindingService struct {
	result core.BindResult
	policy core.Policy
	err    error
}

func (s *stubBindingService) Bind(context.Context, string, core.PaymentMethod, core.PaymentDetails) (core.BindResult, error) {
	return s.result, s.err
}

func (s *stubBindingService) Activate(context.Context, string) (core.Policy, error) {
	return s.policy, s.err
}

func newQuoteRouter(svc core.QuoteService, binding core.BindingService) http.Handler {
	r := chi.NewRouter()
	h := NewQuoteHandler(svc, binding, slog.New(slog.NewTextHandler(io.Discard, nil)))
	h.Mount(r)
	return r
}

func TestQuoteCreate(t *testing.T) {
	svc := &stubQuoteService{policy: core.Policy{Reference: "AQTEST2345", Status: core.PolicyStatusQuoted}}
	router := newQuoteRouter(svc, &stubBindingService{})

	body := `{"driver":{"first_name":"Maria","last_name":"Santos","email":"maria.santos@example.com","date_of_birth":"1987-04-12"}}`
	req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got core.Policy
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "AQTEST2345", got.Reference)
}

func TestQuoteCreate_InvalidJSON(t *testing.T) {
	router := newQuoteRouter(&stubQuoteService{}, &stubBindingService{})

	req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestQuoteErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", core.ErrValidation, http.StatusBadRequest},
		{"not found", core.ErrNotFound, http.StatusNotFound},
		{"conflict", core.ErrConflict, http.StatusConflict},
		{"invalid state", core.ErrInvalidState, http.StatusConflict},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newQuoteRouter(&stubQuoteService{err: tt.err}, &stubBindingService{})

			req := httptest.NewRequest(http.MethodPut, "/quotes/AQTEST2345/vehicles", strings.NewReader(`{"vehicles":[]}`))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestQuoteBind_Success(t *testing.T) {
	binding := &stubBindingService{result: core.BindResult{
		Policy:  core.Policy{Reference: "AQTEST2345", Status: core.PolicyStatusBound},
		Payment: core.Payment{Last4: "4242", TransactionID: "txn_test"},
	}}
	router := newQuoteRouter(&stubQuoteService{}, binding)

	body := `{"method":"credit_card","details":{"card_number":"4242424242424242"}}`
	req := httptest.NewRequest(http.MethodPost, "/quotes/AQTEST2345:bind", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var got core.BindResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, core.PolicyStatusBound, got.Policy.Status)
	assert.Equal(t, "4242", got.Payment.Last4)
}

func TestQuoteBind_DeclinedMapsTo402(t *testing.T) {
	binding := &stubBindingService{err: core.DeclinedError("insufficient funds")}
	router := newQuoteRouter(&stubQuoteService{}, binding)

	body := `{"method":"credit_card","details":{"card_number":"4000000000000002"}}`
	req := httptest.NewRequest(http.MethodPost, "/quotes/AQTEST2345:bind", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusPaymentRequired, rec.Code)
	assert.Contains(t, rec.Body.String(), "insufficient funds")
}
