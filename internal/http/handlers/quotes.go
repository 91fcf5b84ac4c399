package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrKriegler/go-autoquote/internal/core"
	"github.com/MrKriegler/go-autoquote/pkg/problem"
)

type QuoteHandler struct {
	Svc     core.QuoteService
	Binding core.BindingService
	Log     *slog.Logger
}

func NewQuoteHandler(svc core.QuoteService, binding core.BindingService, log *slog.Logger) *QuoteHandler {
	return &QuoteHandler{Svc: svc, Binding: binding, Log: log}
}

func (h *QuoteHandler) Mount(r chi.Router) {
	r.Route("/quotes", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/{reference}", h.Get)
		r.Put("/{reference}/drivers", h.ReplaceDrivers)
		r.Put("/{reference}/vehicles", h.ReplaceVehicles)
		r.Put("/{reference}/coverage", h.FinalizeCoverage)
		r.Post("/{reference}:bind", h.Bind)
	})
}

// Create starts a new quote, priced immediately from whatever sections arrive.
// 201: JSON; 400: bad JSON/validation; 500: internal error.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in core.QuoteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid JSON", "Body could not be decoded.")
		return
	}

	quote, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(quote); err != nil {
		h.Log.Error("failed to encode quote", "reference", quote.Reference, "err", err)
	}
}

// Get retrieves a quote by its reference.
// 200: JSON; 400: missing reference; 404: not found; 500: internal error.
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		problem.Write(w, http.StatusBadRequest, "Missing Reference", "Path parameter reference is required.")
		return
	}

	quote, err := h.Svc.Get(r.Context(), reference)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to get quote")
		return
	}

	if err := json.NewEncoder(w).Encode(quote); err != nil {
		h.Log.Error("failed to encode quote", "reference", reference, "err", err)
	}
}

type replaceDriversRequest struct {
	Driver            core.Driver   `json:"driver"`
	AdditionalDrivers []core.Driver `json:"additional_drivers,omitempty"`
}

// ReplaceDrivers replaces the entire driver section and reprices.
// 200: JSON; 400: bad JSON/validation; 404: not found; 409: quote no longer editable; 500: internal error.
func (h *QuoteHandler) ReplaceDrivers(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		problem.Write(w, http.StatusBadRequest, "Missing Reference", "Path parameter reference is required.")
		return
	}

	var req replaceDriversRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid JSON", "Body could not be decoded.")
		return
	}

	quote, err := h.Svc.ReplaceDrivers(r.Context(), reference, req.Driver, req.AdditionalDrivers)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(quote); err != nil {
		h.Log.Error("failed to encode quote", "reference", reference, "err", err)
	}
}

type replaceVehiclesRequest struct {
	Vehicles []core.Vehicle `json:"vehicles"`
}

// ReplaceVehicles replaces the entire vehicle section and reprices.
// 200: JSON; 400: bad JSON/validation; 404: not found; 409: quote no longer editable; 500: internal error.
func (h *QuoteHandler) ReplaceVehicles(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		problem.Write(w, http.StatusBadRequest, "Missing Reference", "Path parameter reference is required.")
		return
	}

	var req replaceVehiclesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid JSON", "Body could not be decoded.")
		return
	}

	quote, err := h.Svc.ReplaceVehicles(r.Context(), reference, req.Vehicles)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(quote); err != nil {
		h.Log.Error("failed to encode quote", "reference", reference, "err", err)
	}
}

// FinalizeCoverage stores the coverage selection and moves the quote to quoted.
// 200: JSON; 400: bad JSON/no vehicles; 404: not found; 409: quote no longer editable; 500: internal error.
func (h *QuoteHandler) FinalizeCoverage(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		problem.Write(w, http.StatusBadRequest, "Missing Reference", "Path parameter reference is required.")
		return
	}

	var cov core.CoverageSelection
	if err := json.NewDecoder(r.Body).Decode(&cov); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid JSON", "Body could not be decoded.")
		return
	}

	quote, err := h.Svc.FinalizeCoverage(r.Context(), reference, cov)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(quote); err != nil {
		h.Log.Error("failed to encode quote", "reference", reference, "err", err)
	}
}

type bindRequest struct {
	Method  core.PaymentMethod  `json:"method"`
	Details core.PaymentDetails `json:"details"`
}

// Bind attempts payment and converts the quote into a bound policy.
// 200: JSON; 400: bad JSON; 402: payment declined; 404: not found; 409: not in quoted status; 500: internal error.
func (h *QuoteHandler) Bind(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		problem.Write(w, http.StatusBadRequest, "Missing Reference", "Path parameter reference is required.")
		return
	}

	var req bindRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		problem.Write(w, http.StatusBadRequest, "Invalid JSON", "Body could not be decoded.")
		return
	}

	result, err := h.Binding.Bind(r.Context(), reference, req.Method, req.Details)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.Log.Error("failed to encode bind result", "reference", reference, "err", err)
	}
}
