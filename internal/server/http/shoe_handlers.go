package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrijs2005/shoestock/internal/common"
	"github.com/dmitrijs2005/shoestock/internal/server/services"
)

func (h *Handler) getAllShoes(w http.ResponseWriter, r *http.Request) {
	shoes, err := h.shoes.ListAll(r.Context())
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shoes)
}

func (h *Handler) getShoeByCode(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	shoes, err := h.shoes.FindByCodePrefix(r.Context(), code)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "Shoe not found")
			return
		}
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shoes)
}

func (h *Handler) getShoesByType(w http.ResponseWriter, r *http.Request) {
	typeName := chi.URLParam(r, "type")

	shoes, err := h.shoes.FindByType(r.Context(), typeName)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidArgument) {
			writeMessage(w, http.StatusBadRequest, "Invalid shoe type")
			return
		}
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shoes)
}

func (h *Handler) getShoesByLocation(w http.ResponseWriter, r *http.Request) {
	loc, err := strconv.ParseInt(chi.URLParam(r, "location"), 10, 64)
	if err != nil {
		// the route pattern admits digits only, but keep the guard
		writeMessage(w, http.StatusNotFound, "No shoes found at this location")
		return
	}

	shoes, err := h.shoes.FindByLocation(r.Context(), loc)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "No shoes found at this location")
			return
		}
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shoes)
}

type updateNameRequest struct {
	Code *string `json:"code"`
	Name *string `json:"name"`
}

func (h *Handler) updateShoeName(w http.ResponseWriter, r *http.Request) {
	var req updateNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == nil || req.Name == nil {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if err := h.shoes.UpdateName(r.Context(), *req.Code, *req.Name); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "Shoe not found")
			return
		}
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type updateLocRequest struct {
	Code *string `json:"code"`
	Loc  *int64  `json:"loc"`
}

func (h *Handler) updateShoeLocation(w http.ResponseWriter, r *http.Request) {
	var req updateLocRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == nil || req.Loc == nil {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	if err := h.shoes.UpdateLocation(r.Context(), *req.Code, *req.Loc); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "Shoe not found")
			return
		}
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type addShoeRequest struct {
	Code  *string `json:"code"`
	Loc   *int64  `json:"loc"`
	Name  *string `json:"name"`
	Type  *string `json:"type"`
	Image string  `json:"image"`
}

func (h *Handler) addShoe(w http.ResponseWriter, r *http.Request) {
	var req addShoeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == nil {
		writeMessage(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	err := h.shoes.Add(r.Context(), &services.AddShoeRequest{
		Code:  *req.Code,
		Loc:   req.Loc,
		Name:  req.Name,
		Type:  req.Type,
		Image: req.Image,
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorConflict):
			writeMessage(w, http.StatusConflict, "Shoe already exists")
		case errors.Is(err, common.ErrorInvalidArgument):
			writeMessage(w, http.StatusBadRequest, "Invalid image data")
		default:
			h.serverError(w, r, err)
		}
		return
	}
	writeJSON(w, http.StatusCreated, map[string]bool{"success": true})
}

func (h *Handler) deleteShoe(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")

	if err := h.shoes.Delete(r.Context(), code); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeMessage(w, http.StatusNotFound, "Shoe not found")
			return
		}
		h.serverError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Shoe successfully deleted"})
}
