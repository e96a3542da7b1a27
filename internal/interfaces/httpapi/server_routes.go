package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerReferenceRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/clubs", handler.ListClubs)
}

func registerSessionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/session", handler.GetSession)
	mux.HandleFunc("DELETE /v1/session", handler.ResetSession)
	mux.HandleFunc("POST /v1/session/club", handler.SelectClub)
	mux.HandleFunc("GET /v1/session/squad", handler.GetSquad)
	mux.HandleFunc("POST /v1/session/squad/sell", handler.SellPlayer)
	mux.HandleFunc("GET /v1/session/market", handler.GetMarket)
	mux.HandleFunc("POST /v1/session/market/buy", handler.BuyPlayer)
	mux.HandleFunc("POST /v1/session/market/refresh", handler.RefreshMarket)
	mux.HandleFunc("GET /v1/session/standings", handler.GetStandings)
	mux.HandleFunc("POST /v1/session/matches", handler.PlayMatch)
	mux.HandleFunc("GET /v1/session/matches", handler.ListMatches)
}

func registerCareerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/career", handler.GetCareer)
	mux.HandleFunc("POST /v1/career/submit", handler.SubmitCareer)
	mux.HandleFunc("POST /v1/career/accept", handler.AcceptCareer)
	mux.HandleFunc("POST /v1/career/cancel", handler.CancelCareer)
}
