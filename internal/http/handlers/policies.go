package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrKriegler/go-autoquote/internal/core"
	"github.com/MrKriegler/go-autoquote/pkg/problem"
)

type PolicyHandler struct {
	Policies  core.PolicyRepo
	Binding   core.BindingService
	Payments  core.PaymentRepo
	Documents core.DocumentRepo
	Events    core.EventRepo
	Log       *slog.Logger
}

func NewPolicyHandler(
	policies core.PolicyRepo,
	binding core.BindingService,
	payments core.PaymentRepo,
	documents core.DocumentRepo,
	events core.EventRepo,
	log *slog.Logger,
) *PolicyHandler {
	return &PolicyHandler{
		Policies:  policies,
		Binding:   binding,
		Payments:  payments,
		Documents: documents,
		Events:    events,
		Log:       log,
	}
}

func (h *PolicyHandler) Mount(r chi.Router) {
	r.Route("/policies", func(r chi.Router) {
		r.Get("/{reference}", h.Get)
		r.Post("/{reference}:activate", h.Activate)
		r.Get("/{reference}/documents", h.ListDocuments)
		r.Get("/{reference}/events", h.ListEvents)
		r.Get("/{reference}/payments", h.ListPayments)
	})
}

// Get retrieves a policy by its reference.
// 200: JSON; 400: missing reference; 404: not found; 500: internal error.
func (h *PolicyHandler) Get(w http.ResponseWriter, r *http.Request) {
	policy, ok := h.load(w, r)
	if !ok {
		return
	}

	if err := json.NewEncoder(w).Encode(policy); err != nil {
		h.Log.Error("failed to encode policy", "reference", policy.Reference, "err", err)
	}
}

// Activate moves a bound policy in force.
// 200: JSON; 400: missing reference; 404: not found; 409: not in bound status; 500: internal error.
func (h *PolicyHandler) Activate(w http.ResponseWriter, r *http.Request) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		problem.Write(w, http.StatusBadRequest, "Missing Reference", "Path parameter reference is required.")
		return
	}

	policy, err := h.Binding.Activate(r.Context(), reference)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, err.Error())
		return
	}

	if err := json.NewEncoder(w).Encode(policy); err != nil {
		h.Log.Error("failed to encode policy", "reference", reference, "err", err)
	}
}

// ListDocuments returns the documents generated for a policy.
// 200: JSON; 400: missing reference; 404: policy not found; 500: internal error.
func (h *PolicyHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	policy, ok := h.load(w, r)
	if !ok {
		return
	}

	docs, err := h.Documents.ListByPolicyID(r.Context(), policy.ID)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to list documents")
		return
	}
	if docs == nil {
		docs = []core.Document{}
	}

	if err := json.NewEncoder(w).Encode(docs); err != nil {
		h.Log.Error("failed to encode documents", "reference", policy.Reference, "err", err)
	}
}

// ListEvents returns the status-change history for a policy.
// 200: JSON; 400: missing reference; 404: policy not found; 500: internal error.
func (h *PolicyHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	policy, ok := h.load(w, r)
	if !ok {
		return
	}

	events, err := h.Events.ListByPolicyID(r.Context(), policy.ID)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to list events")
		return
	}
	if events == nil {
		events = []core.Event{}
	}

	if err := json.NewEncoder(w).Encode(events); err != nil {
		h.Log.Error("failed to encode events", "reference", policy.Reference, "err", err)
	}
}

// ListPayments returns the payment records for a policy. Card and bank
// details are tokenized at capture time, so there is nothing sensitive here.
// 200: JSON; 400: missing reference; 404: policy not found; 500: internal error.
func (h *PolicyHandler) ListPayments(w http.ResponseWriter, r *http.Request) {
	policy, ok := h.load(w, r)
	if !ok {
		return
	}

	payments, err := h.Payments.ListByPolicyID(r.Context(), policy.ID)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to list payments")
		return
	}
	if payments == nil {
		payments = []core.Payment{}
	}

	if err := json.NewEncoder(w).Encode(payments); err != nil {
		h.Log.Error("failed to encode payments", "reference", policy.Reference, "err", err)
	}
}

// load resolves the reference path parameter to a policy, writing the
// error response itself when resolution fails.
func (h *PolicyHandler) load(w http.ResponseWriter, r *http.Request) (core.Policy, bool) {
	reference := chi.URLParam(r, "reference")
	if reference == "" {
		problem.Write(w, http.StatusBadRequest, "Missing Reference", "Path parameter reference is required.")
		return core.Policy{}, false
	}

	policy, err := h.Policies.GetByReference(r.Context(), reference)
	if err != nil {
		writeError(r.Context(), h.Log, w, err, "Failed to get policy")
		return core.Policy{}, false
	}
	return policy, true
}
