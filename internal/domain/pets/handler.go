package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-companion/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Put("/custom", setCustomPetHandler(svc))
		pr.Get("/{name}", getPetHandler(svc))
	})
}

// setCustomRequest registra el resultado del pipeline foto → modelo 3D.
type setCustomRequest struct {
	ModelURL    string `json:"model_url"`
	Description string `json:"description"`
	Glyph       string `json:"glyph"`
}

// petResponse es una entrada del catálogo.
type petResponse struct {
	Name        string     `json:"name"`
	Glyph       string     `json:"glyph"`
	Description string     `json:"description"`
	Trait       string     `json:"trait"`
	Custom      bool       `json:"custom"`
	ModelURL    string     `json:"model_url,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty"`
}

// listPetsHandler godoc
// @Summary Listar catálogo de mascotas
// @Description Devuelve las 6 mascotas del catálogo en orden fijo y, si el dispositivo registró una, la entrada "Custom" al final.
// @Tags pets
// @Produce json
// @Param X-Device-ID header string false "ID del dispositivo"
// @Success 200 {array} petResponse
// @Failure 500 {string} string "internal error"
// @Router /pets [get]
func listPetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// El catálogo es público; la identidad solo agrega la custom.
		claims, _ := middleware.GetClaims(r.Context())

		items, err := svc.List(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// getPetHandler godoc
// @Summary Obtener mascota del catálogo
// @Tags pets
// @Produce json
// @Param X-Device-ID header string false "ID del dispositivo"
// @Param name path string true "Nombre de la mascota"
// @Success 200 {object} petResponse
// @Failure 404 {string} string "pet not found"
// @Router /pets/{name} [get]
func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := middleware.GetClaims(r.Context())

		p, err := svc.Get(r.Context(), claims.UserID, chi.URLParam(r, "name"))
		if err != nil {
			if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidInput) {
				http.Error(w, "pet not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

// setCustomPetHandler godoc
// @Summary Registrar mascota custom
// @Description Registra o reemplaza la mascota "Custom" del dispositivo con el modelo ya generado por el pipeline externo.
// @Tags pets
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "ID del dispositivo"
// @Param payload body setCustomRequest true "model_url debe ser http(s) absoluta"
// @Success 200 {object} petResponse
// @Failure 400 {string} string "invalid json / model_url inválida"
// @Failure 401 {string} string "unauthorized"
// @Router /pets/custom [put]
func setCustomPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req setCustomRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.SetCustom(r.Context(), claims.UserID, CustomInput{
			ModelURL:    req.ModelURL,
			Description: req.Description,
			Glyph:       req.Glyph,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, "model_url must be an absolute http(s) url", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func toPetResponse(p Pet) petResponse {
	out := petResponse{
		Name:        p.Name,
		Glyph:       p.Glyph,
		Description: p.Description,
		Trait:       p.Trait,
		Custom:      p.Custom,
		ModelURL:    p.ModelURL,
	}
	if !p.CreatedAt.IsZero() {
		t := p.CreatedAt
		out.CreatedAt = &t
	}
	return out
}

// writeJSON está duplicado intencionalmente en handlers de distintos módulos (pets/care/activity)
// para evitar crear paquetes/helpers compartidos demasiado pronto.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
