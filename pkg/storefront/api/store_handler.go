package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/wishyoulucky/storefront/pkg/storefront"
)

// StoreHandler serves the storefront catalog and order intake. Every row
// leaving the repository passes through the normalizer, so responses always
// carry fully-populated records.
type StoreHandler struct {
	repo     storefront.Repository
	notifier storefront.NotificationSink
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(repo storefront.Repository, notifier storefront.NotificationSink) *StoreHandler {
	return &StoreHandler{
		repo:     repo,
		notifier: notifier,
	}
}

// Routes returns the routes for the catalog and orders
func (h *StoreHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/products", h.ListProducts)
	r.Get("/products/{slug}", h.GetProduct)
	r.Get("/banners", h.ListBanners)
	r.Get("/category-banners", h.ListCategoryBanners)
	r.Post("/orders", h.CreateOrder)
	r.Get("/orders", h.ListOrders)

	return r
}

// ListProducts returns every product, normalized
func (h *StoreHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	rows, err := h.repo.ListProducts(r.Context())
	if err != nil {
		slog.Error("Failed to list products", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	products := make([]storefront.Product, 0, len(rows))
	for _, row := range rows {
		products = append(products, storefront.NormalizeProduct(row))
	}

	render.JSON(w, r, products)
}

// GetProduct returns one product by slug. A numeric ID works as a slug when
// the product has none of its own.
func (h *StoreHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	row, err := h.repo.GetProductBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, storefront.ErrProductNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to get product", "slug", slug, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	render.JSON(w, r, storefront.NormalizeProduct(row))
}

// ListBanners returns the homepage carousel banners
func (h *StoreHandler) ListBanners(w http.ResponseWriter, r *http.Request) {
	rows, err := h.repo.ListBanners(r.Context())
	if err != nil {
		slog.Error("Failed to list banners", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	banners := make([]storefront.Banner, 0, len(rows))
	for _, row := range rows {
		banners = append(banners, storefront.NormalizeBanner(row))
	}

	render.JSON(w, r, banners)
}

// ListCategoryBanners returns the per-category banners
func (h *StoreHandler) ListCategoryBanners(w http.ResponseWriter, r *http.Request) {
	rows, err := h.repo.ListCategoryBanners(r.Context())
	if err != nil {
		slog.Error("Failed to list category banners", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	banners := make([]storefront.CategoryBanner, 0, len(rows))
	for _, row := range rows {
		banners = append(banners, storefront.NormalizeCategoryBanner(row))
	}

	render.JSON(w, r, banners)
}

// CreateOrder accepts an order payload, fills in the shipping cost when the
// client sent none, persists the order and fires the order-received
// notification. Notification failures never fail the order.
func (h *StoreHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order := storefront.NormalizeOrder(raw)
	if len(order.Items) == 0 {
		http.Error(w, "Order has no items", http.StatusBadRequest)
		return
	}

	if order.ShippingCost == 0 {
		order.ShippingCost = storefront.CalculateShipping(rawItems(raw))
	}
	if order.TotalPrice == 0 {
		for _, item := range order.Items {
			order.TotalPrice += item.Price * float64(item.Quantity)
		}
		order.TotalPrice += order.ShippingCost - order.Discount
	}

	if err := h.repo.CreateOrder(r.Context(), &order); err != nil {
		slog.Error("Failed to create order", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("Order created", "order_id", order.ID, "items", len(order.Items), "total", order.TotalPrice)
	h.notifyOrderReceived(order)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, order)
}

// ListOrders returns every stored order as raw rows
func (h *StoreHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	rows, err := h.repo.ListOrders(r.Context())
	if err != nil {
		slog.Error("Failed to list orders", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	orders := make([]storefront.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, storefront.NormalizeOrder(row))
	}

	render.JSON(w, r, orders)
}

// notifyOrderReceived dispatches the notification off the request path. The
// request context ends when the response is written, so the send gets its
// own deadline.
func (h *StoreHandler) notifyOrderReceived(order storefront.Order) {
	if h.notifier == nil {
		return
	}

	event := storefront.OrderReceivedEvent{
		To:          order.Customer.Email,
		OrderID:     order.ID,
		OrderNumber: fmt.Sprintf("#%d", order.ID),
		TotalPrice:  order.TotalPrice,
		Deposit:     order.Deposit,
		Customer:    order.Customer,
		Items:       order.Items,
	}
	if order.Deposit == 0 {
		event.PaidAmount = order.TotalPrice
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := h.notifier.OrderReceived(ctx, event); err != nil {
			slog.Error("Order notification failed", "order_id", event.OrderID, "error", err)
		}
	}()
}

func rawItems(raw map[string]any) []map[string]any {
	list, ok := raw["items"].([]any)
	if !ok {
		return nil
	}
	items := make([]map[string]any, 0, len(list))
	for _, entry := range list {
		if m, ok := entry.(map[string]any); ok {
			items = append(items, m)
		}
	}
	return items
}
