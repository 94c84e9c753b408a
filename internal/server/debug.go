package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/alexeagleson/goblin-boys/internal/domain"
)

// DebugHandler отдает последний снимок мира, опубликованный циклом
type DebugHandler struct {
	Game Game
}

func NewDebugHandler(g Game) *DebugHandler {
	return &DebugHandler{Game: g}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/maps", h.handleListMaps)
	mux.HandleFunc("/debug/entities", h.handleDumpEntities)
	mux.HandleFunc("/debug/users", h.handleListUsers)
}

// /debug/maps - список карт с количеством сущностей и игроков
func (h *DebugHandler) handleListMaps(w http.ResponseWriter, r *http.Request) {
	snap := h.Game.Snapshot()
	if snap == nil {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, snap.Maps)
}

// /debug/entities?map=1 - дамп всех сущностей на карте
func (h *DebugHandler) handleDumpEntities(w http.ResponseWriter, r *http.Request) {
	mapID, err := strconv.Atoi(r.URL.Query().Get("map"))
	if err != nil {
		http.Error(w, "map must be an integer", http.StatusBadRequest)
		return
	}

	snap := h.Game.Snapshot()
	if snap == nil {
		http.Error(w, "Map not found", http.StatusNotFound)
		return
	}
	entities, ok := snap.Entities[domain.MapID(mapID)]
	if !ok {
		http.Error(w, "Map not found", http.StatusNotFound)
		return
	}
	if len(entities) == 0 {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, entities)
}

// /debug/users - CurrentUserMaps
func (h *DebugHandler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	snap := h.Game.Snapshot()
	if snap == nil || len(snap.Users) == 0 {
		writeJSON(w, nil)
		return
	}
	writeJSON(w, snap.Users)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Пустой список отдаем как [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
