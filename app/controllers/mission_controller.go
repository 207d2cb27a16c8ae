package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"icando-go/app/models"
	"icando-go/app/services"
)

// maxImportSize bounds the body of POST /import.
const maxImportSize = 8 << 20

// MissionController handles HTTP requests for missions.
type MissionController struct {
	Service *services.MissionService
	Log     *logrus.Logger
}

// NewMissionController creates a new MissionController.
func NewMissionController(service *services.MissionService, logger *logrus.Logger) *MissionController {
	if logger == nil {
		logger = logrus.New()
	}
	return &MissionController{Service: service, Log: logger}
}

type missionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type moveRequest struct {
	Target   string `json:"target"`
	Position string `json:"position"`
}

type keysResponse struct {
	Completed []string `json:"completed"`
	Expanded  []string `json:"expanded"`
}

// GetTree handles GET /missions.
func (c *MissionController) GetTree(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, c.Service.Tree())
}

// GetKeys handles GET /missions/keys.
func (c *MissionController) GetKeys(w http.ResponseWriter, r *http.Request) {
	keys := c.Service.Keys()
	writeJSON(w, http.StatusOK, keysResponse{
		Completed: keys.Completed.Sorted(),
		Expanded:  keys.Expanded.Sorted(),
	})
}

// GetMission handles GET /missions/{missionID}.
func (c *MissionController) GetMission(w http.ResponseWriter, r *http.Request) {
	mission, err := c.Service.GetMission(mux.Vars(r)["missionID"])
	if err != nil {
		c.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mission)
}

// CreateMission handles POST /missions and POST /missions/{missionID}/children.
func (c *MissionController) CreateMission(w http.ResponseWriter, r *http.Request) {
	var req missionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	mission, err := c.Service.AddMission(r.Context(), mux.Vars(r)["missionID"], req.Title, req.Description)
	if err != nil {
		c.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, models.ToPortable(mission))
}

// UpdateMission handles PUT /missions/{missionID}.
func (c *MissionController) UpdateMission(w http.ResponseWriter, r *http.Request) {
	var upd services.MissionUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	mission, err := c.Service.UpdateMission(r.Context(), mux.Vars(r)["missionID"], upd)
	if err != nil {
		c.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, models.ToPortable(mission))
}

// DeleteMission handles DELETE /missions/{missionID}.
func (c *MissionController) DeleteMission(w http.ResponseWriter, r *http.Request) {
	if err := c.Service.DeleteMission(r.Context(), mux.Vars(r)["missionID"]); err != nil {
		c.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveMission handles POST /missions/{missionID}/move.
func (c *MissionController) MoveMission(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	pos, err := models.ParsePosition(req.Position)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := c.Service.MoveMission(r.Context(), mux.Vars(r)["missionID"], req.Target, pos); err != nil {
		c.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.Service.Tree())
}

// Export handles GET /export.
func (c *MissionController) Export(w http.ResponseWriter, r *http.Request) {
	data, err := c.Service.Export()
	if err != nil {
		c.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="icando.json"`)
	w.Write(data)
}

// Import handles POST /import.
func (c *MissionController) Import(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if err := c.Service.Import(r.Context(), data); err != nil {
		c.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c.Service.Tree())
}

// fail maps service and engine errors to HTTP status codes.
func (c *MissionController) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrInvalidTarget), errors.Is(err, services.ErrRootMission):
		status = http.StatusConflict
	case errors.Is(err, models.ErrMalformed), errors.Is(err, services.ErrEmptyTitle):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		c.Log.WithError(err).Error("mission request failed")
	}
	http.Error(w, err.Error(), status)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
