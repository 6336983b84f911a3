package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	"alloydb-shop/api/internal/logger"
	"alloydb-shop/api/internal/metrics"
	"alloydb-shop/api/internal/model"
)

// Deps wires the stores and services behind the router. Metrics is optional.
type Deps struct {
	Users      Store[model.User, model.UserInput]
	Items      Store[model.Item, model.ItemInput]
	Orders     Store[model.Order, model.OrderInput]
	OrderItems Store[model.OrderItem, model.OrderItemInput]
	Ratings    Store[model.Rating, model.RatingInput]
	Insights   InsightService

	Logger       *zap.Logger
	Metrics      *metrics.Metrics
	CORSOrigins  []string
	MaxBodyBytes int64
}

type Handler struct {
	router   *chi.Mux
	insights InsightService
}

func NewHandler(deps Deps) *Handler {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	router := chi.NewRouter()

	// Middleware
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(logger.Middleware(log))
	router.Use(logger.Recoverer(log))
	if deps.Metrics != nil {
		router.Use(deps.Metrics.Middleware)
	}
	router.Use(cors.New(cors.Options{
		AllowedOrigins: deps.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler)
	if deps.MaxBodyBytes > 0 {
		router.Use(middleware.RequestSize(deps.MaxBodyBytes))
	}

	h := &Handler{
		router:   router,
		insights: deps.Insights,
	}

	h.registerRoutes(deps)
	return h
}

func (h *Handler) registerRoutes(deps Deps) {
	h.router.Get("/", h.Root)
	h.router.Get("/api-docs", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/api-docs/index.html", http.StatusMovedPermanently)
	})
	h.router.Get("/api-docs/*", httpSwagger.Handler(httpSwagger.URL("/api-docs/doc.json")))
	if deps.Metrics != nil {
		h.router.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	h.router.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			NewResource("User", deps.Users).Routes(r)
			r.Get("/{id}/orders", h.UserOrders)
		})
		r.Route("/items", func(r chi.Router) {
			NewResource("Item", deps.Items).Routes(r)
			r.Get("/{id}/average-rating", h.ItemAverageRating)
			r.Get("/{id}/top-complaints", h.ItemTopComplaints)
		})
		r.Route("/orders", NewResource("Order", deps.Orders).Routes)
		r.Route("/order_items", NewResource("Order Item", deps.OrderItems).Routes)
		r.Route("/ratings", NewResource("Rating", deps.Ratings).Routes)
	})
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("AlloyDB API is running!"))
}

func logError(r *http.Request, msg string, err error) {
	logger.FromContext(r.Context()).Error(msg, zap.Error(err))
}
