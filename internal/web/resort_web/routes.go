package resort_web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"alpenworks.io/resort-services/internal/resort"
)

func (server *ResortWebServer) handleMapPage(writer http.ResponseWriter, request *http.Request) {
	query := ParseMapQuery(request.URL.Query())

	lifts, err := server.store.Lifts(request.Context())
	if err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	viewmodel := BuildMapPageVM(lifts, query.Selected, query.Session, server.pollSeconds, time.Now())

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := server.renderer.Render(writer, "layout.html", viewmodel); err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (server *ResortWebServer) handleMapPartial(writer http.ResponseWriter, request *http.Request) {
	query := ParseMapQuery(request.URL.Query())

	lifts, err := server.store.Lifts(request.Context())
	if err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	viewmodel := BuildMapOverlayVM(lifts, query.Selected, time.Now())

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := server.renderer.Render(writer, "map_overlay.html", viewmodel); err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}
}

// handleLiftDetail serves the hover panel. Read-only: hovering must
// never touch the selection.
func (server *ResortWebServer) handleLiftDetail(writer http.ResponseWriter, request *http.Request) {
	id := chi.URLParam(request, "id")

	lift, err := server.store.Lift(request.Context(), id)
	if errors.Is(err, resort.ErrUnknownLift) {
		http.Error(writer, "lift not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	viewmodel := BuildLiftDetailVM(lift)

	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := server.renderer.Render(writer, "lift_detail.html", viewmodel); err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}
}

func (server *ResortWebServer) handleMapAPI(writer http.ResponseWriter, request *http.Request) {
	query := ParseMapQuery(request.URL.Query())

	lifts, err := server.store.Lifts(request.Context())
	if err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}

	viewmodel := BuildMapOverlayVM(lifts, query.Selected, time.Now())

	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(writer).Encode(viewmodel)
}

func (server *ResortWebServer) handleHealthz(writer http.ResponseWriter, request *http.Request) {
	writer.WriteHeader(http.StatusOK)
}
