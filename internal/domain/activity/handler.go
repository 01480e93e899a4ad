package activity

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pet-companion/internal/domain/pets"
	"pet-companion/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, petsSvc *pets.Service) {
	r.Route("/pets/{name}/activity", func(ar chi.Router) {
		ar.Get("/", listActivityHandler(svc, petsSvc))
	})
}

// entryResponse es una acción de cuidado registrada.
type entryResponse struct {
	ID         string    `json:"id"`
	Pet        string    `json:"pet"`
	Action     string    `json:"action" enums:"feed,play,clean,rest"`
	XPGained   int       `json:"xp_gained"`
	OccurredAt time.Time `json:"occurred_at"`
}

// listActivityHandler godoc
// @Summary Historial de cuidados
// @Description Lista las acciones de cuidado aceptadas para la mascota del dispositivo, más recientes primero. El nombre no distingue mayúsculas.
// @Tags activity
// @Produce json
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param name path string true "Nombre de la mascota"
// @Param limit query int false "Máximo de entradas (default 50, máx 200)"
// @Success 200 {array} entryResponse
// @Failure 400 {string} string "limit inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Router /pets/{name}/activity [get]
func listActivityHandler(svc *Service, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		limit := 0
		if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				http.Error(w, "invalid limit", http.StatusBadRequest)
				return
			}
			limit = n
		}

		// El historial se guarda con el nombre del catálogo ("Fox"); "fox" lo resuelve.
		p, err := petsSvc.Get(r.Context(), claims.UserID, chi.URLParam(r, "name"))
		if err != nil {
			if errors.Is(err, pets.ErrNotFound) || errors.Is(err, pets.ErrInvalidInput) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		items, err := svc.ListByPet(r.Context(), claims.UserID, p.Name, limit)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "invalid input", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]entryResponse, 0, len(items))
		for _, e := range items {
			out = append(out, entryResponse{
				ID:         e.ID,
				Pet:        e.PetName,
				Action:     e.Action,
				XPGained:   e.XPGained,
				OccurredAt: e.OccurredAt,
			})
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
