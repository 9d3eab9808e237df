package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/shoestock/internal/common"
)

type credentialsRequest struct {
	WorkerCode *string `json:"workerCode"`
	Password   *string `json:"password"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.WorkerCode == nil || req.Password == nil {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	err := h.workers.Register(r.Context(), *req.WorkerCode, *req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorConflict) {
			writeMessage(w, http.StatusConflict, "User already exists")
			return
		}
		h.serverError(w, r, err)
		return
	}

	writeMessage(w, http.StatusCreated, "User created successfully")
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.WorkerCode == nil || req.Password == nil {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	result, err := h.workers.Login(r.Context(), *req.WorkerCode, *req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeMessage(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		h.serverError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
