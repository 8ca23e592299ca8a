package handlers

import (
	"cvrp-annealing-service/internal/api/dto"
	"cvrp-annealing-service/internal/domain"
	"cvrp-annealing-service/internal/ports"
	"cvrp-annealing-service/internal/services"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// RunDefaults fill the fields a start request leaves zero.
type RunDefaults struct {
	Depot           domain.Point
	Fleet           services.FleetConfig
	Anneal          services.AnnealConfig
	EnforceCapacity bool
}

// RunHandler exposes optimisation runs: start, step, inspect, stream and discard.
type RunHandler struct {
	Runs     *services.RunManager
	Defaults RunDefaults
	Limiter  *StepLimiter
}

const streamWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(_ *http.Request) bool { return true },
}

func (h *RunHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req dto.StartRunRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	svcReq, err := h.buildStartRequest(req)
	if err != nil {
		writeServiceError(w, r, "start run", err)
		return
	}

	snap, err := h.Runs.Start(r.Context(), svcReq, nil)
	if err != nil {
		writeServiceError(w, r, "start run", err)
		return
	}

	writeJSON(w, r, http.StatusCreated, toRunResponse(snap))
}

func (h *RunHandler) buildStartRequest(req dto.StartRunRequest) (services.StartRunRequest, error) {
	strategy, err := services.ParseStrategy(req.Strategy)
	if err != nil {
		return services.StartRunRequest{}, err
	}

	out := services.StartRunRequest{
		Depot:           h.Defaults.Depot,
		Fleet:           h.Defaults.Fleet,
		Anneal:          h.Defaults.Anneal,
		Seed:            req.Seed,
		Strategy:        strategy,
		EnforceCapacity: h.Defaults.EnforceCapacity,
	}

	if req.Depot != nil {
		out.Depot = domain.Point{X: req.Depot.X, Y: req.Depot.Y}
	}
	if req.VehicleCount != 0 {
		out.Fleet.VehicleCount = req.VehicleCount
	}
	if req.VehicleCapacity != 0 {
		out.Fleet.CapacityPerVehicle = req.VehicleCapacity
	}
	if req.Temperature != 0 {
		out.Anneal.InitialTemperature = req.Temperature
	}
	if req.CoolingRate != 0 {
		out.Anneal.CoolingRate = req.CoolingRate
	}
	if req.EnforceCapacity != nil {
		out.EnforceCapacity = *req.EnforceCapacity
	}

	for i, p := range req.Points {
		id := p.PointID
		if id == 0 {
			id = i + 1
		}
		point, err := domain.NewDemandPoint(id, p.X, p.Y, p.Demand)
		if err != nil {
			return services.StartRunRequest{}, fmt.Errorf("%w: %v", services.ErrInvalidConfiguration, err)
		}
		out.Points = append(out.Points, point)
	}

	return out, nil
}

func (h *RunHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Runs.Get(r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, "get run", err)
		return
	}
	writeJSON(w, r, http.StatusOK, toRunResponse(snap))
}

func (h *RunHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Runs.Reset(id); err != nil {
		writeServiceError(w, r, "reset run", err)
		return
	}
	h.Limiter.Forget(id)
	w.WriteHeader(http.StatusNoContent)
}

func (h *RunHandler) Step(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req dto.StepRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	// Only known runs get a limiter.
	if _, err := h.Runs.Get(id); err != nil {
		writeServiceError(w, r, "step run", err)
		return
	}
	if !h.Limiter.Allow(id) {
		writeError(w, r, http.StatusTooManyRequests, "too many step requests")
		return
	}

	snap, err := h.Runs.Step(r.Context(), id, req.Iterations, nil)
	if err != nil {
		writeServiceError(w, r, "step run", err)
		return
	}
	writeJSON(w, r, http.StatusOK, toRunResponse(snap))
}

// Stream runs one batch and pushes every progress line over a websocket.
func (h *RunHandler) Stream(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	iterations := 1
	if raw := r.URL.Query().Get("iterations"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, r, http.StatusBadRequest, "iterations must be a positive integer")
			return
		}
		iterations = n
	}

	// Fail before upgrading so the client gets a plain HTTP status.
	if _, err := h.Runs.Get(id); err != nil {
		writeServiceError(w, r, "stream run", err)
		return
	}
	if !h.Limiter.Allow(id) {
		writeError(w, r, http.StatusTooManyRequests, "too many step requests")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("run_id", id).Msg("websocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	write := func(msg dto.StreamMessage) error {
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		return conn.WriteJSON(msg)
	}

	// A dead client must not abort the batch; stop writing after the first failure.
	var writeErr error
	reporter := ports.ReporterFunc(func(iteration int, current, best float64) {
		if writeErr != nil {
			return
		}
		writeErr = write(dto.StreamMessage{
			Type:            "progress",
			Iteration:       iteration,
			CurrentDistance: current,
			BestDistance:    best,
		})
	})

	snap, err := h.Runs.Step(r.Context(), id, iterations, reporter)
	if err != nil {
		_ = write(dto.StreamMessage{Type: "error", Error: err.Error()})
		return
	}
	if writeErr != nil {
		log.Warn().Err(writeErr).Str("run_id", id).Msg("stream client went away")
		return
	}

	res := toRunResponse(snap)
	_ = write(dto.StreamMessage{Type: "done", Run: &res})
	_ = conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(streamWriteWait),
	)
}
