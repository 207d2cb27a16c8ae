package routes

import (
	"net/http"

	"icando-go/app/controllers"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all routes for the application.
func RegisterRoutes(router *mux.Router, missionController *controllers.MissionController) {
	router.HandleFunc("/missions", missionController.GetTree).Methods(http.MethodGet)
	router.HandleFunc("/missions", missionController.CreateMission).Methods(http.MethodPost)
	router.HandleFunc("/missions/keys", missionController.GetKeys).Methods(http.MethodGet)
	router.HandleFunc("/missions/{missionID}", missionController.GetMission).Methods(http.MethodGet)
	router.HandleFunc("/missions/{missionID}", missionController.UpdateMission).Methods(http.MethodPut)
	router.HandleFunc("/missions/{missionID}", missionController.DeleteMission).Methods(http.MethodDelete)
	router.HandleFunc("/missions/{missionID}/children", missionController.CreateMission).Methods(http.MethodPost)
	router.HandleFunc("/missions/{missionID}/move", missionController.MoveMission).Methods(http.MethodPost)
	router.HandleFunc("/export", missionController.Export).Methods(http.MethodGet)
	router.HandleFunc("/import", missionController.Import).Methods(http.MethodPost)
}
