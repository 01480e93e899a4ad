package router

import (
	"net/http"

	mem "pet-companion/internal/adapters/storage/memory"
	"pet-companion/internal/domain/activity"
	"pet-companion/internal/domain/care"
	"pet-companion/internal/domain/pets"
	"pet-companion/internal/middleware"
	"pet-companion/internal/platform/logger"
	"pet-companion/internal/platform/metrics"
	"pet-companion/internal/ports/auth"

	_ "pet-companion/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Tiempos del motor; Logger/Metrics de acá se pisan con los de abajo.
	Care care.Options

	// Opcionales: si vienen nil se usan los in-memory.
	Stats        care.Store
	PetsRepo     pets.Repository
	ActivityRepo activity.Repository

	// Publisher opcional (NATS).
	Publisher care.Publisher

	Metrics *metrics.Care
	Logger  logger.Logger
}

// NewRouter arma el handler HTTP y devuelve también el Manager de engines,
// que el caller debe cerrar con Shutdown (flush de las mascotas activas).
func NewRouter(opts Options) (http.Handler, *care.Manager) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	stats := opts.Stats
	if stats == nil {
		stats = mem.NewStatsStore()
	}
	petRepo := opts.PetsRepo
	if petRepo == nil {
		petRepo = mem.NewPetRepo()
	}
	activityRepo := opts.ActivityRepo
	if activityRepo == nil {
		activityRepo = mem.NewActivityRepo()
	}

	// Services por módulo
	careOpts := opts.Care
	careOpts.Logger = log.With(map[string]any{"component": "care"})
	careOpts.Metrics = opts.Metrics
	mgr := care.NewManager(stats, careOpts, opts.Publisher)

	petsSvc := pets.NewService(petRepo)
	activitySvc := activity.NewService(activityRepo)

	// Rutas por módulo
	pets.RegisterRoutes(r, petsSvc)
	activity.RegisterRoutes(r, activitySvc, petsSvc)
	care.RegisterRoutes(r, mgr, petsSvc, activitySvc, log)

	return r, mgr
}
