package service

import (
	"context"

	"alloydb-shop/api/internal/model"
)

type RatingStore interface {
	List(ctx context.Context, limit, offset int) ([]model.Rating, error)
	Get(ctx context.Context, id int64) (*model.Rating, error)
	Create(ctx context.Context, in model.RatingInput) (*model.Rating, error)
	Update(ctx context.Context, id int64, in model.RatingInput) (*model.Rating, error)
	Delete(ctx context.Context, id int64) error
}

// Dispatcher starts background sentiment analysis for a stored rating.
type Dispatcher interface {
	Dispatch(ctx context.Context, rating model.Rating)
}

// RatingService is the rating store plus sentiment analysis on every
// successful write. Reads and deletes pass straight through.
type RatingService struct {
	store      RatingStore
	dispatcher Dispatcher
}

func NewRatingService(store RatingStore, dispatcher Dispatcher) *RatingService {
	return &RatingService{store: store, dispatcher: dispatcher}
}

func (s *RatingService) List(ctx context.Context, limit, offset int) ([]model.Rating, error) {
	return s.store.List(ctx, limit, offset)
}

func (s *RatingService) Get(ctx context.Context, id int64) (*model.Rating, error) {
	return s.store.Get(ctx, id)
}

func (s *RatingService) Create(ctx context.Context, in model.RatingInput) (*model.Rating, error) {
	rating, err := s.store.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, *rating)
	return rating, nil
}

func (s *RatingService) Update(ctx context.Context, id int64, in model.RatingInput) (*model.Rating, error) {
	rating, err := s.store.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	s.dispatcher.Dispatch(ctx, *rating)
	return rating, nil
}

func (s *RatingService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
