package handler

import (
	"context"
	"errors"
	"net/http"

	"alloydb-shop/api/internal/model"
	"alloydb-shop/api/internal/repository"
	"alloydb-shop/api/internal/service"
)

type InsightService interface {
	UserOrderHistory(ctx context.Context, userID int64) ([]model.OrderHistory, error)
	ItemAverageRating(ctx context.Context, itemID int64) (*model.AverageRating, error)
	TopComplaints(ctx context.Context, itemID int64) (*model.ComplaintSummary, error)
}

// UserOrders godoc
//
//	@Summary	Order history of a user, newest first
//	@Tags		insights
//	@Produce	json
//	@Param		id	path		int	true	"User id"
//	@Success	200	{array}		model.OrderHistory
//	@Failure	404	{object}	errorResponse
//	@Failure	500	{object}	errorResponse
//	@Router		/users/{id}/orders [get]
func (h *Handler) UserOrders(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusNotFound, "User not found")
		return
	}

	history, err := h.insights.UserOrderHistory(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, r, http.StatusNotFound, "User not found")
			return
		}
		writeInternal(w, r, "failed to get user order history", err)
		return
	}
	writeJSON(w, r, http.StatusOK, history)
}

// ItemAverageRating godoc
//
//	@Summary	Average rating of an item
//	@Tags		insights
//	@Produce	json
//	@Param		id	path		int	true	"Item id"
//	@Success	200	{object}	model.AverageRating
//	@Failure	404	{object}	errorResponse
//	@Failure	500	{object}	errorResponse
//	@Router		/items/{id}/average-rating [get]
func (h *Handler) ItemAverageRating(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusNotFound, "Item not found")
		return
	}

	avg, err := h.insights.ItemAverageRating(r.Context(), id)
	if err != nil {
		writeInternal(w, r, "failed to get item average rating", err)
		return
	}
	writeJSON(w, r, http.StatusOK, avg)
}

// ItemTopComplaints godoc
//
//	@Summary	AI summary of the top complaints about an item
//	@Tags		insights
//	@Produce	json
//	@Param		id	path		int	true	"Item id"
//	@Success	200	{object}	model.ComplaintSummary
//	@Failure	404	{object}	errorResponse
//	@Failure	500	{object}	errorResponse
//	@Router		/items/{id}/top-complaints [get]
func (h *Handler) ItemTopComplaints(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, r, http.StatusNotFound, "Item not found")
		return
	}

	summary, err := h.insights.TopComplaints(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAIUnauthorized):
			logError(r, "ai service rejected the api key", err)
			writeError(w, r, http.StatusInternalServerError, "AI service API key is invalid or missing")
		case errors.Is(err, service.ErrSummaryFailed):
			logError(r, "failed to generate complaint summary", err)
			writeError(w, r, http.StatusInternalServerError, "Failed to generate complaint summary")
		default:
			writeInternal(w, r, "failed to get item comments", err)
		}
		return
	}
	writeJSON(w, r, http.StatusOK, summary)
}
