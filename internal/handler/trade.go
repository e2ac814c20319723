package handler

import (
	"net/http"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
	"github.com/mirae-dev/ShoreBot_Go/internal/metrics"
	"github.com/mirae-dev/ShoreBot_Go/internal/trade"
)

type ProposeTradeRequest struct {
	ProposerID      string `json:"proposer_id" validate:"required,max=100"`
	CounterpartyID  string `json:"counterparty_id" validate:"required,max=100"`
	OfferedCardID   int    `json:"offered_card_id" validate:"min=1"`
	RequestedCardID int    `json:"requested_card_id" validate:"min=1"`
}

// HandleProposeTrade opens a one-for-one trade offer
func HandleProposeTrade(svc trade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ProposeTradeRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Propose trade"); err != nil {
			return
		}

		offer, err := svc.Propose(r.Context(), req.ProposerID, req.CounterpartyID, req.OfferedCardID, req.RequestedCardID)
		if err != nil {
			respondServiceError(w, r, "Propose trade", err)
			return
		}

		log.Info("Trade proposed",
			"offer_id", offer.ID,
			"proposer", req.ProposerID,
			"counterparty", req.CounterpartyID)
		metrics.TradesProposed.Inc()

		respondJSON(w, http.StatusCreated, offer)
	}
}

type TradeActionRequest struct {
	UserID  string `json:"user_id" validate:"required,max=100"`
	OfferID string `json:"offer_id" validate:"required"`
}

// HandleAcceptTrade settles an open offer, swapping the copies
func HandleAcceptTrade(svc trade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req TradeActionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Accept trade"); err != nil {
			return
		}

		offer, err := svc.Accept(r.Context(), req.UserID, req.OfferID)
		if err != nil {
			respondServiceError(w, r, "Accept trade", err)
			return
		}

		log.Info("Trade settled", "offer_id", offer.ID, "accepted_by", req.UserID)
		metrics.TradesSettled.Inc()

		respondJSON(w, http.StatusOK, offer)
	}
}

// HandleDeclineTrade retires an open offer
func HandleDeclineTrade(svc trade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req TradeActionRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Decline trade"); err != nil {
			return
		}

		if err := svc.Decline(r.Context(), req.UserID, req.OfferID); err != nil {
			respondServiceError(w, r, "Decline trade", err)
			return
		}

		metrics.TradesDeclined.Inc()
		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgTradeDeclinedSuccess})
	}
}

// HandleGetOffer returns one trade offer by ID
func HandleGetOffer(svc trade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offerID, ok := GetQueryParam(r, w, "offer_id")
		if !ok {
			return
		}

		offer, err := svc.GetOffer(r.Context(), offerID)
		if err != nil {
			respondServiceError(w, r, "Get offer", err)
			return
		}

		respondJSON(w, http.StatusOK, offer)
	}
}

// OffersResponse is the set of offers a user proposed or received
type OffersResponse struct {
	Offers []domain.TradeOffer `json:"offers"`
}

// HandleListOffers lists a user's open and recent offers
func HandleListOffers(svc trade.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}

		offers, err := svc.ListOffers(r.Context(), userID)
		if err != nil {
			respondServiceError(w, r, "List offers", err)
			return
		}

		respondJSON(w, http.StatusOK, OffersResponse{Offers: offers})
	}
}
