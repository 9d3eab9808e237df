package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/shoestock/internal/logging"
	"github.com/dmitrijs2005/shoestock/internal/server/config"
	"github.com/dmitrijs2005/shoestock/internal/server/repositories/workers"
	"github.com/dmitrijs2005/shoestock/internal/server/services"
)

// Handler bundles the services the route handlers call into.
type Handler struct {
	workers *services.WorkerService
	shoes   *services.ShoeService
	logger  logging.Logger
}

func NewHandler(ws *services.WorkerService, ss *services.ShoeService, logger logging.Logger) *Handler {
	return &Handler{workers: ws, shoes: ss, logger: logger}
}

// serverError answers 500 for faults outside the error taxonomy.
// These are unexpected and must be logged, never swallowed.
func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error(r.Context(), "unhandled error", "path", r.URL.Path, "error", err.Error())
	writeMessage(w, http.StatusInternalServerError, "Internal server error")
}

// BuildRouter assembles the full route tree: public auth endpoints and the
// token-guarded shoe endpoints under /main.
func BuildRouter(cfg *config.Config, logger logging.Logger, h *Handler, workerRepo workers.Repository) http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger(logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", h.register)
		r.Post("/login", h.login)
	})

	r.Route("/main", func(r chi.Router) {
		r.Use(authMiddleware([]byte(cfg.SecretKey), workerRepo))

		r.Get("/getAllShoes", h.getAllShoes)
		r.Get("/getShoe/code/{code}", h.getShoeByCode)
		r.Get("/getShoe/type/{type}", h.getShoesByType)
		r.Get("/getShoe/location/{location:[0-9]+}", h.getShoesByLocation)
		r.Post("/updateShoe/updateName", h.updateShoeName)
		r.Post("/updateShoe/updateLoc", h.updateShoeLocation)
		r.Post("/updateShoe/addShoe", h.addShoe)
		r.Delete("/deleteShoe/{code}", h.deleteShoe)
	})

	return r
}
