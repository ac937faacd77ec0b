package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/lbarasti/chess-social/handlers"
	"github.com/lbarasti/chess-social/middleware"
	"github.com/lbarasti/chess-social/services"
)

// SetupRoutes wires the HTTP API. Reads are public; every write requires a
// verified identity.
func SetupRoutes(
	router *chi.Mux,
	allowedOrigins []string,
	authService services.AuthService,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	matchHandler *handlers.MatchHandler,
	challengeHandler *handlers.ChallengeHandler,
	playerHandler *handlers.PlayerHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate(authService)

	router.Route("/auth", func(r chi.Router) {
		r.Post("/session", authHandler.CreateSessionHandler)
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Get("/", tournamentHandler.ListTournamentsHandler)
		r.Get("/{tournamentID}", tournamentHandler.GetTournamentHandler)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Post("/", tournamentHandler.CreateTournamentHandler)
			r.Delete("/{tournamentID}", tournamentHandler.DeleteTournamentHandler)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Use(authenticate)
		r.Put("/{matchID}", matchHandler.UpdateMatchHandler)
		r.Post("/{matchID}/challenge", challengeHandler.ChallengeMatchHandler)
	})

	router.Route("/players", func(r chi.Router) {
		r.Get("/", playerHandler.ListPlayersHandler)
		r.Get("/autocomplete", playerHandler.AutocompleteHandler)
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
