package handlers

import (
	"cvrp-annealing-service/internal/api/dto"
	"cvrp-annealing-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Str("method", r.Method).Str("path", r.URL.Path).Msg("encode failed")
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return errors.New("invalid json body")
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("body must contain only one JSON object")
	}
	return nil
}

// writeServiceError maps service errors to status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, services.ErrRunNotFound):
		writeError(w, r, http.StatusNotFound, "run not found")
	case errors.Is(err, services.ErrInfeasibleConstruction):
		writeError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, services.ErrInvalidConfiguration):
		writeError(w, r, http.StatusBadRequest, err.Error())
	default:
		log.Error().Err(err).Str("op", op).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}

func toRunResponse(s services.RunSnapshot) dto.RunResponse {
	routes := make([]dto.RouteResponse, 0, len(s.BestRoutes))
	for _, p := range s.BestRoutes {
		stops := make([]dto.StopResponse, 0, len(p.Stops))
		for _, st := range p.Stops {
			stops = append(stops, dto.StopResponse{
				PointID: st.PointID,
				Coords:  st.Point.CoordsToList(),
				Demand:  st.Demand,
			})
		}
		routes = append(routes, dto.RouteResponse{
			VehicleID: p.VehicleID,
			Capacity:  p.Capacity,
			Load:      p.Load,
			Distance:  p.Distance,
			Stops:     stops,
		})
	}

	return dto.RunResponse{
		RunID:           s.RunID,
		Seed:            s.Seed,
		Strategy:        string(s.Strategy),
		EnforceCapacity: s.EnforceCapacity,
		Depot:           s.Depot.CoordsToList(),
		Iteration:       s.Iteration,
		Temperature:     s.Temperature,
		CoolingRate:     s.CoolingRate,
		InitialDistance: s.InitialDistance,
		CurrentDistance: s.CurrentDistance,
		BestDistance:    s.BestDistance,
		BestFeasible:    s.BestFeasible,
		Progress:        services.FormatProgress(s.Iteration, s.CurrentDistance, s.BestDistance),
		Stats: dto.StatsResponse{
			Accepted:         s.Stats.Accepted,
			AcceptedWorse:    s.Stats.AcceptedWorse,
			Rejected:         s.Stats.Rejected,
			CapacityRejected: s.Stats.CapacityRejected,
			Improvements:     s.Stats.Improvements,
		},
		Routes: routes,
	}
}
