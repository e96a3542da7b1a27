package httpapi

import (
	"net/http"
)

func (h *Handler) ListClubs(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClubs")
	defer span.End()

	clubs, err := h.seasonService.ListClubs(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list clubs failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, clubsToDTO(clubs))
}

func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSession")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(ctx, h.seasonService.Snapshot(ctx)))
}

func (h *Handler) ResetSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetSession")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(ctx, h.seasonService.Reset(ctx)))
}

func (h *Handler) SelectClub(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SelectClub")
	defer span.End()

	var req selectClubRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.seasonService.SelectClub(ctx, req.ClubID)
	if err != nil {
		h.logger.WarnContext(ctx, "select club failed", "club_id", req.ClubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, sessionToDTO(ctx, snapshot))
}

func (h *Handler) GetSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquad")
	defer span.End()

	squad, err := h.seasonService.Squad(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(squad))
}

func (h *Handler) SellPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SellPlayer")
	defer span.End()

	var req playerActionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	ledger, err := h.seasonService.Sell(ctx, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "sell player failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ledgerToDTO(ledger))
}

func (h *Handler) GetMarket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMarket")
	defer span.End()

	market, err := h.seasonService.Market(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(market))
}

func (h *Handler) BuyPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BuyPlayer")
	defer span.End()

	var req playerActionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	ledger, err := h.seasonService.Buy(ctx, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "buy player failed", "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, ledgerToDTO(ledger))
}

func (h *Handler) RefreshMarket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshMarket")
	defer span.End()

	if err := h.seasonService.RefreshMarket(ctx); err != nil {
		h.logger.WarnContext(ctx, "schedule market refresh failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	rows, err := h.seasonService.Standings(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(rows))
}

func (h *Handler) PlayMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.PlayMatch")
	defer span.End()

	played, err := h.seasonService.PlayMatch(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "play match failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playedMatchToDTO(ctx, played))
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	entries, err := h.seasonService.ListMatches(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, archivedMatchesToDTO(entries))
}
