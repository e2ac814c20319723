package handler

import (
	"net/http"
	"strconv"

	"github.com/mirae-dev/ShoreBot_Go/internal/domain"
	"github.com/mirae-dev/ShoreBot_Go/internal/logger"
	"github.com/mirae-dev/ShoreBot_Go/internal/market"
	"github.com/mirae-dev/ShoreBot_Go/internal/metrics"
)

type CreateListingRequest struct {
	SellerID  string `json:"seller_id" validate:"required,max=100"`
	CardID    int    `json:"card_id" validate:"min=1"`
	UnitPrice int64  `json:"unit_price" validate:"min=1"`
	Quantity  int    `json:"quantity" validate:"min=1,max=10000"`
}

// HandleCreateListing escrows copies and publishes a marketplace listing
func HandleCreateListing(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req CreateListingRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Create listing"); err != nil {
			return
		}

		listing, err := svc.CreateListing(r.Context(), req.SellerID, req.CardID, req.UnitPrice, req.Quantity)
		if err != nil {
			respondServiceError(w, r, "Create listing", err)
			return
		}

		log.Info("Listing created",
			"listing_code", listing.Code,
			"seller", req.SellerID,
			"card_id", req.CardID,
			"quantity", req.Quantity,
			"unit_price", req.UnitPrice)
		metrics.ListingsCreated.Inc()

		respondJSON(w, http.StatusCreated, listing)
	}
}

type PurchaseRequest struct {
	BuyerID     string `json:"buyer_id" validate:"required,max=100"`
	ListingCode string `json:"listing_code" validate:"required,listingcode"`
}

// HandlePurchase settles a whole listing for the buyer
func HandlePurchase(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req PurchaseRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Purchase"); err != nil {
			return
		}

		result, err := svc.Purchase(r.Context(), req.BuyerID, req.ListingCode)
		if err != nil {
			respondServiceError(w, r, "Purchase", err)
			return
		}

		log.Info("Listing sold",
			"listing_code", req.ListingCode,
			"buyer", req.BuyerID,
			"total_price", result.TotalPrice)
		metrics.ListingsSold.Inc()
		metrics.CoinsDebited.Add(float64(result.TotalPrice))
		metrics.CoinsCredited.Add(float64(result.TotalPrice))

		respondJSON(w, http.StatusOK, result)
	}
}

type CancelListingRequest struct {
	SellerID    string `json:"seller_id" validate:"required,max=100"`
	ListingCode string `json:"listing_code" validate:"required,listingcode"`
}

// HandleCancelListing returns the escrowed copies to the seller
func HandleCancelListing(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CancelListingRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Cancel listing"); err != nil {
			return
		}

		if err := svc.CancelListing(r.Context(), req.SellerID, req.ListingCode); err != nil {
			respondServiceError(w, r, "Cancel listing", err)
			return
		}

		respondJSON(w, http.StatusOK, SuccessResponse{Message: MsgListingCancelledSuccess})
	}
}

// HandleGetListing returns one listing by code
func HandleGetListing(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code, ok := GetQueryParam(r, w, "listing_code")
		if !ok {
			return
		}

		listing, err := svc.GetListing(r.Context(), code)
		if err != nil {
			respondServiceError(w, r, "Get listing", err)
			return
		}

		respondJSON(w, http.StatusOK, listing)
	}
}

// BrowseResponse is the active marketplace page
type BrowseResponse struct {
	Listings []domain.ListingView `json:"listings"`
}

// HandleBrowse lists active listings, newest first.
// Optional query params: card_id, seller_id, max_price.
func HandleBrowse(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var filter domain.ListingFilter
		if v := GetOptionalQueryParam(r, "card_id", ""); v != "" {
			cardID, err := strconv.Atoi(v)
			if err != nil {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidCardID)
				return
			}
			filter.CardID = cardID
		}
		filter.SellerID = GetOptionalQueryParam(r, "seller_id", "")
		if v := GetOptionalQueryParam(r, "max_price", ""); v != "" {
			maxPrice, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				respondError(w, http.StatusBadRequest, ErrMsgInvalidRequestSummary)
				return
			}
			filter.MaxPrice = maxPrice
		}

		listings, err := svc.Browse(r.Context(), filter)
		if err != nil {
			respondServiceError(w, r, "Browse", err)
			return
		}

		respondJSON(w, http.StatusOK, BrowseResponse{Listings: listings})
	}
}

type HouseSaleRequest struct {
	UserID   string `json:"user_id" validate:"required,max=100"`
	CardID   int    `json:"card_id" validate:"min=1"`
	Quantity int    `json:"quantity" validate:"min=1,max=10000"`
}

// HandleSellToHouse sells copies back to the house at the fixed rarity price
func HandleSellToHouse(svc market.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req HouseSaleRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Sell to house"); err != nil {
			return
		}

		result, err := svc.SellToHouse(r.Context(), req.UserID, req.CardID, req.Quantity)
		if err != nil {
			respondServiceError(w, r, "Sell to house", err)
			return
		}

		log.Info("House sale completed",
			"user_id", req.UserID,
			"card_id", req.CardID,
			"quantity", req.Quantity,
			"total", result.Total)
		metrics.HouseSales.Inc()
		metrics.CoinsCredited.Add(float64(result.Total))

		respondJSON(w, http.StatusOK, result)
	}
}
