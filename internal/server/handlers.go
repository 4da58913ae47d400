package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"zoned-parking/internal/logging"
	"zoned-parking/internal/parking"
)

const errLotNotCreated = "Parking lot not created. Create parking lot first"

type Handler struct {
	serviceName string
	telemetry   *parking.TelemetryProvider

	// mu guards the lot pointer only; zones lock themselves.
	mu         sync.RWMutex
	parkingLot *parking.InstrumentedLot
}

func NewHandler(serviceName string, telemetry *parking.TelemetryProvider) *Handler {
	return &Handler{
		serviceName: serviceName,
		telemetry:   telemetry,
	}
}

func (h *Handler) currentLot() *parking.InstrumentedLot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.parkingLot
}

// Lot returns the plain lot behind the current instrumented lot, or nil.
func (h *Handler) Lot() *parking.Lot {
	if il := h.currentLot(); il != nil {
		return il.Lot
	}
	return nil
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: h.serviceName,
		Meta:    extractMeta(r.Context()),
	})
}

func (h *Handler) CreateParkingLot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req ParkingLotCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	parkingLot, err := parking.NewInstrumentedLot(req.Big, req.Medium, req.Small, h.telemetry)
	if err != nil {
		if errors.Is(err, parking.ErrInvalidArgument) {
			WriteError(ctx, w, http.StatusBadRequest, err.Error())
			return
		}
		logging.Error(ctx, "failed to create parking lot", "error", err)
		WriteError(ctx, w, http.StatusInternalServerError, "Failed to create parking lot")
		return
	}

	h.mu.Lock()
	previous := h.parkingLot
	h.parkingLot = parkingLot
	h.mu.Unlock()

	if previous != nil {
		if err := previous.Close(); err != nil {
			logging.Warn(ctx, "failed to release lot metrics", "error", err)
		}
	}

	logging.Info(ctx, "parking lot created", "big", req.Big, "medium", req.Medium, "small", req.Small)

	WriteSuccess(ctx, w, "Parking lot created successfully", req)
}

func (h *Handler) AddCar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	parkingLot := h.currentLot()
	if parkingLot == nil {
		WriteError(ctx, w, http.StatusBadRequest, errLotNotCreated)
		return
	}

	var req AddCarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(ctx, w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.VehicleClass == nil {
		WriteError(ctx, w, http.StatusBadRequest, "Vehicle class is required")
		return
	}
	class := *req.VehicleClass

	if !parkingLot.AddCar(ctx, class) {
		WriteError(ctx, w, http.StatusConflict, fmt.Sprintf("Sorry, no space for %s vehicle", class))
		return
	}

	WriteSuccess(ctx, w, "Vehicle parked successfully", AddCarResponse{
		VehicleClass: class,
		Admitted:     true,
	})
}

func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	parkingLot := h.currentLot()
	if parkingLot == nil {
		WriteError(ctx, w, http.StatusBadRequest, errLotNotCreated)
		return
	}

	response := StatusResponse{Zones: []ZoneStatus{}}
	for _, st := range parkingLot.Statuses(ctx) {
		response.Capacity += st.Capacity
		response.Available += st.Available
		response.Occupied += st.Occupied()
		response.Zones = append(response.Zones, ZoneStatus{
			VehicleClass: st.Class,
			ClassID:      int(st.Class),
			Capacity:     st.Capacity,
			Occupied:     st.Occupied(),
			Available:    st.Available,
		})
	}

	WriteSuccess(ctx, w, "Status retrieved successfully", response)
}
