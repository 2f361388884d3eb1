package http

import (
	"net/http"

	"github.com/frontdesk/switchboard/internal/core/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	CallService *service.CallService
	Directory   registerer
	StaticPath  string
	ReadLimit   int64
}

func NewHandler(callService *service.CallService, directory registerer, staticPath string, readLimit int64) *Handler {
	return &Handler{
		CallService: callService,
		Directory:   directory,
		StaticPath:  staticPath,
		ReadLimit:   readLimit,
	}
}

func (h *Handler) NewRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	fs := http.FileServer(http.Dir(h.StaticPath))
	r.Handle("/*", fs)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	r.Get("/ws", h.ServeWS)

	return r
}
