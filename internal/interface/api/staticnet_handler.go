package api

import (
	"encoding/json"
	"net/http"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/domain"
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/usecase"
	"github.com/openshift-assisted/assisted-installer-ui-sub000/internal/validation"
)

type StaticNetworkHandler struct {
	useCase *usecase.StaticNetworkUseCase
}

func NewStaticNetworkHandler(useCase *usecase.StaticNetworkUseCase) *StaticNetworkHandler {
	return &StaticNetworkHandler{useCase: useCase}
}

type formRequest struct {
	NetworkWide domain.FormViewNetworkWideValues `json:"networkWide"`
	Hosts       []domain.FormViewHost            `json:"hosts"`
}

type errorResponse struct {
	Error       string                      `json:"error"`
	HostGroupID string                      `json:"hostGroupId,omitempty"`
	Failures    []*domain.ValidationFailure `json:"failures,omitempty"`
}

// Register mounts the handler and the metrics endpoint on mux.
func (h *StaticNetworkHandler) Register(mux *http.ServeMux, gatherer prometheus.Gatherer) {
	mux.HandleFunc("/static-network/form", h.HandleForm)
	mux.HandleFunc("/static-network/documents", h.HandleDocuments)
	mux.HandleFunc("/static-network/validate", h.HandleValidate)
	if gatherer != nil {
		mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}
}

func (h *StaticNetworkHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getForm(w, r)
	case http.MethodPut:
		h.saveForm(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *StaticNetworkHandler) HandleDocuments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	hostGroupID, ok := hostGroup(w, r)
	if !ok {
		return
	}
	configs, err := h.useCase.GetDocuments(r.Context(), hostGroupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, configs)
}

func (h *StaticNetworkHandler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var request formRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.useCase.ValidateFormValues(&request.NetworkWide, request.Hosts); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *StaticNetworkHandler) getForm(w http.ResponseWriter, r *http.Request) {
	hostGroupID, ok := hostGroup(w, r)
	if !ok {
		return
	}
	decoded, err := h.useCase.GetFormValues(r.Context(), hostGroupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decoded)
}

func (h *StaticNetworkHandler) saveForm(w http.ResponseWriter, r *http.Request) {
	hostGroupID, ok := hostGroup(w, r)
	if !ok {
		return
	}
	var request formRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	configs, err := h.useCase.SaveFormValues(r.Context(), hostGroupID, request.NetworkWide, request.Hosts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, configs)
}

func hostGroup(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.URL.Query().Get("host_group")
	if id == "" {
		http.Error(w, "Missing host_group", http.StatusBadRequest)
		return "", false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, err error) {
	var malformed *domain.MalformedDocumentError
	switch {
	case errors.Is(err, domain.ErrInternal), errors.Is(err, usecase.ErrSaveFailed):
		log.Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: usecase.ErrSaveFailed.Error()})
	case errors.As(err, &malformed):
		writeJSON(w, http.StatusConflict, errorResponse{Error: malformed.Error(), HostGroupID: malformed.HostGroupID})
	default:
		if failures := validation.Failures(err); len(failures) > 0 {
			writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "validation failed", Failures: failures})
			return
		}
		log.Err(err).Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}
