package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/paperchat/paperchat/internal/handler/chat"
	searchHandler "github.com/paperchat/paperchat/internal/handler/search"
	middlewarePkg "github.com/paperchat/paperchat/internal/middleware"
	chatService "github.com/paperchat/paperchat/internal/service/chat"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(chatSvc *chatService.Service, searcher searchHandler.Searcher) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	chatHandler.New(chatSvc).RegisterRoutes(r)
	searchHandler.New(searcher).RegisterRoutes(r)

	return r
}
