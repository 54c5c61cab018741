package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewHandler(
	authHandler *AuthHandler,
	participantHandler *ParticipantHandler,
	voteHandler *VoteHandler,
	tallyHandler *TallyHandler,
	authMiddleware *AuthMiddleware,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		// Public real-time view, served from the cache.
		r.Get("/tally", tallyHandler.Realtime)

		r.Route("/participants", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate)
				r.Post("/{id}/votes", voteHandler.RegisterVote)
				r.Get("/{id}/my-vote", voteHandler.MyVote)
			})

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware.Authenticate, authMiddleware.RequireAdmin)
				r.Post("/", participantHandler.AddParticipant)
				r.Put("/", participantHandler.BulkReplace)
				r.Get("/", participantHandler.ListParticipants)
				r.Get("/top", participantHandler.TopParticipants)
				r.Get("/categories", participantHandler.CategoryTotals)
				r.Get("/zero-votes", participantHandler.ZeroVoteParticipants)
			})
		})

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate, authMiddleware.RequireAdmin)
			r.Post("/tally/rebuild", tallyHandler.Rebuild)
		})
	})

	return r
}
