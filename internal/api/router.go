package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/nikhilbhutani/speechproxy/internal/api/handlers"
	"github.com/nikhilbhutani/speechproxy/internal/api/middleware"
)

type Router struct {
	mux   *chi.Mux
	synth handlers.Synthesizer
}

func NewRouter(synth handlers.Synthesizer) *Router {
	return &Router{
		mux:   chi.NewRouter(),
		synth: synth,
	}
}

func (rt *Router) Setup() http.Handler {
	r := rt.mux

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS([]string{"*"}))

	health := handlers.NewHealthHandler()
	r.Get("/healthz", health.Healthz)

	speechH := handlers.NewSpeechHandler(rt.synth)
	r.Route("/api", func(r chi.Router) {
		// Method gating happens in the handler so that wrong methods get
		// the JSON error body.
		r.HandleFunc("/polly", speechH.Synthesize)
		r.HandleFunc("/tts", speechH.Synthesize)
		r.Get("/voices", speechH.Voices)
	})

	return r
}
