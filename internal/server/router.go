package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"lcstats/pkg/logger"
)

// Router builds the HTTP handler
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Get("/", s.index)
	r.Post("/results", s.results)
	r.Get("/template.xlsx", s.downloadTemplate)

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Post("/results", s.apiResults)
		v1.Post("/results.csv", s.apiResultsCSV)
		v1.Get("/users/{username}", s.apiUser)
	})

	return r
}

// requestLogger logs each request with its status and duration
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		log := s.logger
		if id := chiMiddleware.GetReqID(r.Context()); id != "" {
			log = log.WithField("request_id", id)
		}
		logger.LogRequest(log, r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}
