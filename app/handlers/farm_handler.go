package handlers

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/unrolled/render"

	"github.com/freshacres/go-farmstore/app/repositories"
)

type FarmHandler struct {
	farmRepo repositories.FarmRepositoryImpl
	render   *render.Render
}

func NewFarmHandler(farmRepo repositories.FarmRepositoryImpl, render *render.Render) *FarmHandler {
	return &FarmHandler{
		farmRepo: farmRepo,
		render:   render,
	}
}

func (h *FarmHandler) List(w http.ResponseWriter, r *http.Request) {
	farms, err := h.farmRepo.GetAll(r.Context())
	if err != nil {
		log.Printf("FarmHandler.List: failed to load farms: %v", err)
		http.Error(w, "failed to load farms", http.StatusInternalServerError)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, farms)
}

func (h *FarmHandler) Detail(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	farm, err := h.farmRepo.GetBySlug(r.Context(), slug)
	if err != nil {
		log.Printf("FarmHandler.Detail: failed to load farm %s: %v", slug, err)
		http.Error(w, "failed to load farm", http.StatusInternalServerError)
		return
	}
	if farm == nil {
		http.Error(w, "farm not found", http.StatusNotFound)
		return
	}

	_ = h.render.JSON(w, http.StatusOK, farm)
}
