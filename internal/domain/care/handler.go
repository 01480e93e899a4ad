package care

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"pet-companion/internal/domain/activity"
	"pet-companion/internal/domain/pets"
	"pet-companion/internal/middleware"
	"pet-companion/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, mgr *Manager, petsSvc *pets.Service, activitySvc *activity.Service, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(map[string]any{"component": "care_http"})

	r.Route("/session", func(sr chi.Router) {
		sr.Get("/", getSessionHandler(mgr))
		sr.Post("/select", selectPetHandler(mgr, petsSvc))
		sr.Post("/close", closeSessionHandler(mgr))
		sr.Post("/actions/{action}", careActionHandler(mgr, activitySvc, log))

		// Capa de render: solo la identidad de la mascota activa.
		sr.Get("/scene", sceneHandler(mgr))

		sr.Get("/stream", streamHandler(mgr, activitySvc, log))
	})
}

// selectPetRequest elige la mascota activa por nombre del catálogo.
type selectPetRequest struct {
	Pet string `json:"pet"`
}

// getSessionHandler godoc
// @Summary Estado de la sesión
// @Description Snapshot actual de la mascota activa (stats, mood, colores por stat). Sin mascota activa devuelve {"active": false}.
// @Tags session
// @Produce json
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {object} snapshotResponse
// @Failure 401 {string} string "unauthorized"
// @Router /session [get]
func getSessionHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		e, ok := mgr.Lookup(userID)
		if !ok {
			writeJSON(w, http.StatusOK, snapshotResponse{Active: false})
			return
		}
		writeJSON(w, http.StatusOK, toSnapshotResponse(e.Snapshot()))
	}
}

// selectPetHandler godoc
// @Summary Seleccionar mascota
// @Description Activa una mascota: carga sus stats una vez (defaults si no hay registro o el store falla) y arranca el decay. Si había otra activa, primero se guarda bajo su propia key.
// @Tags session
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param payload body selectPetRequest true "Nombre de la mascota (Bunny, Kitty, Puppy, Dragon, Fox, Owl o Custom)"
// @Success 200 {object} snapshotResponse
// @Failure 400 {string} string "invalid json"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "pet not found"
// @Failure 503 {string} string "shutting down"
// @Router /session/select [post]
func selectPetHandler(mgr *Manager, petsSvc *pets.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		var req selectPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := petsSvc.Get(r.Context(), userID, req.Pet)
		if err != nil {
			if errors.Is(err, pets.ErrNotFound) || errors.Is(err, pets.ErrInvalidInput) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		snap, err := mgr.Select(r.Context(), userID, PetRef{Name: p.Name, ModelURL: p.ModelURL})
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSnapshotResponse(snap))
	}
}

// closeSessionHandler godoc
// @Summary Cerrar mascota
// @Description Desactiva la mascota: detiene el decay, guarda inmediatamente las últimas stats y libera el engine si no hay streams abiertos. Idempotente.
// @Tags session
// @Produce json
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {object} snapshotResponse
// @Failure 401 {string} string "unauthorized"
// @Router /session/close [post]
func closeSessionHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		writeJSON(w, http.StatusOK, toSnapshotResponse(mgr.Close(r.Context(), userID)))
	}
}

// careActionHandler godoc
// @Summary Acción de cuidado
// @Description Aplica feed, play, clean o rest a la mascota activa. Cada acción suma XP y programa un save (debounce).
// @Tags session
// @Produce json
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Param action path string true "feed | play | clean | rest"
// @Success 200 {object} snapshotResponse
// @Failure 400 {string} string "unknown action"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {string} string "no active pet"
// @Router /session/actions/{action} [post]
func careActionHandler(mgr *Manager, activitySvc *activity.Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		a, err := ParseAction(chi.URLParam(r, "action"))
		if err != nil {
			http.Error(w, "unknown action", http.StatusBadRequest)
			return
		}

		snap, err := applyAction(r.Context(), mgr, activitySvc, log, userID, a)
		if err != nil {
			writeEngineError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSnapshotResponse(snap))
	}
}

// sceneHandler godoc
// @Summary Identidad para render
// @Description Devuelve solo el nombre y el modelo de la mascota activa; la capa de render no ve stats.
// @Tags session
// @Produce json
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param X-Debug-User-ID header string false "Solo en modo dev, ID de usuario para depuración"
// @Success 200 {object} sceneResponse
// @Failure 401 {string} string "unauthorized"
// @Router /session/scene [get]
func sceneHandler(mgr *Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireUser(w, r)
		if !ok {
			return
		}

		out := sceneResponse{}
		if e, ok := mgr.Lookup(userID); ok {
			if pet, active := e.ActivePet(); active {
				out = sceneResponse{Active: true, Pet: pet.Name, ModelURL: pet.ModelURL}
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// applyAction es compartido por POST y el stream. El historial es best
// effort: si falla se loguea y la acción igual cuenta.
func applyAction(ctx context.Context, mgr *Manager, activitySvc *activity.Service, log logger.Logger, userID string, a Action) (Snapshot, error) {
	e, ok := mgr.Lookup(userID)
	if !ok {
		return Snapshot{}, ErrNoActivePet
	}

	snap, err := e.Act(a)
	if err != nil {
		return Snapshot{}, err
	}

	if activitySvc != nil {
		_, err := activitySvc.Record(ctx, activity.RecordInput{
			UserID:   userID,
			PetName:  snap.Pet.Name,
			Action:   string(a),
			XPGained: XPFor(a),
		})
		if err != nil {
			log.Warn("record activity failed", map[string]any{"user": userID, "pet": snap.Pet.Name, "action": string(a), "error": err})
		}
	}
	return snap, nil
}

func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return claims.UserID, true
}

func writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoActivePet):
		http.Error(w, "no active pet", http.StatusConflict)
	case errors.Is(err, ErrUnknownAction):
		http.Error(w, "unknown action", http.StatusBadRequest)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, "invalid input", http.StatusBadRequest)
	case errors.Is(err, ErrShutdown):
		http.Error(w, "shutting down", http.StatusServiceUnavailable)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
