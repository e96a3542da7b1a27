package httpapi

import "net/http"

func (h *Handler) GetCareer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCareer")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, careerToDTO(h.careerService.Get(ctx)))
}

func (h *Handler) SubmitCareer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitCareer")
	defer span.End()

	var req careerSubmitRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.careerService.Submit(ctx, req.Name, req.Position)
	if err != nil {
		h.logger.WarnContext(ctx, "submit career failed", "name", req.Name, "position", req.Position, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, careerToDTO(snapshot))
}

func (h *Handler) AcceptCareer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AcceptCareer")
	defer span.End()

	var req careerAcceptRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	snapshot, err := h.careerService.Accept(ctx, req.ClubID)
	if err != nil {
		h.logger.WarnContext(ctx, "accept career offer failed", "club_id", req.ClubID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, sessionToDTO(ctx, snapshot))
}

func (h *Handler) CancelCareer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelCareer")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, sessionToDTO(ctx, h.careerService.Cancel(ctx)))
}
