package handler

import (
	"errors"
	"net/http"

	"github.com/NiteshMarwaha/vibetrader/internal/middleware"
	"github.com/NiteshMarwaha/vibetrader/internal/model"
	"github.com/NiteshMarwaha/vibetrader/internal/service"
)

// TradeHandler handles HTTP requests for trade records.
type TradeHandler struct {
	service *service.TradeService
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(svc *service.TradeService) *TradeHandler {
	return &TradeHandler{service: svc}
}

// HandleCreateTrade handles POST /trades requests.
func (h *TradeHandler) HandleCreateTrade(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.TradeInput
	if !decodeJSON(w, r, &req) {
		return
	}

	trade, err := h.service.CreateTrade(r.Context(), user.ID, req)
	if err != nil {
		var ve *service.ValidationError
		if errors.As(err, &ve) {
			writeJSON(w, http.StatusBadRequest, errorResponse(ve.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusCreated, model.TradeEnvelope{Trade: trade})
}

// HandleListTrades handles GET /trades requests.
func (h *TradeHandler) HandleListTrades(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	trades, err := h.service.ListTrades(r.Context(), user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, model.TradeListEnvelope{Trades: trades})
}
