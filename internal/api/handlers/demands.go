package handlers

import (
	"cvrp-annealing-service/internal/api/dto"
	"cvrp-annealing-service/internal/domain"
	"cvrp-annealing-service/internal/ports"
	"net/http"

	"github.com/rs/zerolog/log"
)

// DemandHandler exposes the stored demand points.
type DemandHandler struct {
	Store ports.DemandStore
}

func (h *DemandHandler) List(w http.ResponseWriter, r *http.Request) {
	points, err := h.Store.ListDemands(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list demands failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListDemandsResponse{
		Demands:     make([]dto.DemandResponse, 0, len(points)),
		TotalDemand: domain.TotalDemand(points),
	}
	for _, p := range points {
		res.Demands = append(res.Demands, toDemandResponse(p))
	}

	writeJSON(w, r, http.StatusOK, res)
}

func (h *DemandHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDemandRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Demand <= 0 {
		writeError(w, r, http.StatusBadRequest, "demand must be positive")
		return
	}

	p, err := h.Store.CreateDemand(r.Context(), req.X, req.Y, req.Demand)
	if err != nil {
		log.Error().Err(err).Msg("create demand failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusCreated, toDemandResponse(p))
}

func (h *DemandHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.ClearDemands(r.Context()); err != nil {
		log.Error().Err(err).Msg("clear demands failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toDemandResponse(p *domain.DemandPoint) dto.DemandResponse {
	return dto.DemandResponse{PointID: p.PointID, X: p.X, Y: p.Y, Demand: p.Demand}
}
