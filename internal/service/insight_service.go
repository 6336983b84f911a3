package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"alloydb-shop/api/internal/cache"
	"alloydb-shop/api/internal/logger"
	"alloydb-shop/api/internal/model"
	"alloydb-shop/api/internal/repository"
	"alloydb-shop/api/internal/service/gemini"
)

// MaxComplaintComments bounds how many comments go into one summary prompt.
const MaxComplaintComments = 50

const noCommentsMessage = "No comments found for this item"

var (
	// ErrAIUnauthorized means the generative AI service rejected or lacks the API key.
	ErrAIUnauthorized = errors.New("ai service api key is invalid or missing")
	ErrSummaryFailed  = errors.New("failed to generate complaint summary")
)

type InsightStore interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
	UserOrderHistory(ctx context.Context, userID int64) ([]model.OrderHistory, error)
	ItemAverageRating(ctx context.Context, itemID int64) (*model.AverageRating, error)
	ItemComments(ctx context.Context, itemID int64, limit int) ([]string, error)
}

// Summarizer produces free text from a prompt.
type Summarizer interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

type InsightService struct {
	store      InsightStore
	summarizer Summarizer
	cache      cache.Cache
	cacheTTL   time.Duration
}

func NewInsightService(store InsightStore, summarizer Summarizer, c cache.Cache, cacheTTL time.Duration) *InsightService {
	return &InsightService{
		store:      store,
		summarizer: summarizer,
		cache:      c,
		cacheTTL:   cacheTTL,
	}
}

// UserOrderHistory returns repository.ErrNotFound for an unknown user and an
// empty slice for a user without orders.
func (s *InsightService) UserOrderHistory(ctx context.Context, userID int64) ([]model.OrderHistory, error) {
	exists, err := s.store.UserExists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, fmt.Errorf("user %d: %w", userID, repository.ErrNotFound)
	}
	return s.store.UserOrderHistory(ctx, userID)
}

func (s *InsightService) ItemAverageRating(ctx context.Context, itemID int64) (*model.AverageRating, error) {
	return s.store.ItemAverageRating(ctx, itemID)
}

// TopComplaints summarizes the most recent comments on the item. Items
// without comments get a message and no AI call is made.
func (s *InsightService) TopComplaints(ctx context.Context, itemID int64) (*model.ComplaintSummary, error) {
	comments, err := s.store.ItemComments(ctx, itemID, MaxComplaintComments)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return &model.ComplaintSummary{ItemID: itemID, Message: noCommentsMessage}, nil
	}

	log := logger.FromContext(ctx)
	key := complaintsCacheKey(itemID, comments)
	if s.cache != nil {
		summary, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			log.Warn("complaint cache read failed", zap.Int64("item_id", itemID), zap.Error(err))
		} else if ok {
			return &model.ComplaintSummary{ItemID: itemID, Summary: summary, CommentCount: len(comments)}, nil
		}
	}

	summary, err := s.summarizer.GenerateText(ctx, buildComplaintsPrompt(comments))
	if err != nil {
		if gemini.IsAuthError(err) {
			return nil, fmt.Errorf("%w: %w", ErrAIUnauthorized, err)
		}
		return nil, fmt.Errorf("%w for item %d: %w", ErrSummaryFailed, itemID, err)
	}
	summary = strings.TrimSpace(summary)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, summary, s.cacheTTL); err != nil {
			log.Warn("complaint cache write failed", zap.Int64("item_id", itemID), zap.Error(err))
		}
	}

	return &model.ComplaintSummary{ItemID: itemID, Summary: summary, CommentCount: len(comments)}, nil
}

// complaintsCacheKey changes whenever the comment set changes, so a new
// rating never serves a stale summary.
func complaintsCacheKey(itemID int64, comments []string) string {
	h := sha256.New()
	for _, c := range comments {
		h.Write([]byte(c))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("complaints:%d:%s", itemID, hex.EncodeToString(h.Sum(nil))[:16])
}

func buildComplaintsPrompt(comments []string) string {
	var sb strings.Builder
	sb.WriteString("Here are customer comments about a product:\n\n")
	for _, c := range comments {
		sb.WriteString("- ")
		sb.WriteString(strings.TrimSpace(c))
		sb.WriteString("\n")
	}
	sb.WriteString("\nSummarize the top 3 complaints customers have about this product. ")
	sb.WriteString("Be concise and use a numbered list. If the comments contain no complaints, say so.")
	return sb.String()
}
