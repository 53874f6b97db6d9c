package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/", s.handleIndex)

	r.Route("/api/v1/datasets", func(r chi.Router) {
		r.Get("/", s.handleListDatasets)
		r.Route("/{name}", func(r chi.Router) {
			r.Get("/", s.handleGetDataset)
			r.Put("/", s.handlePutDataset)
			r.Delete("/", s.handleDeleteDataset)
			r.Get("/layout", s.handleLayout)
			r.Get("/radar.{format}", s.handleRadar)
		})
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		s.writeError(w, req, errNotFound(req.URL.Path))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody{
			Error:     errorDetail{Code: "METHOD_NOT_ALLOWED", Message: req.Method + " not allowed"},
			RequestID: requestIDFrom(req.Context()),
		})
	})
	return r
}
