package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"time"

	htmlsnapshot "github.com/goliatone/go-htmlsnapshot"
	"github.com/goliatone/go-htmlsnapshot/pkg/host"
)

// Order is the demo resource.
type Order struct {
	ID        int       `json:"id"`
	Customer  string    `json:"customer"`
	Items     []Item    `json:"items"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Item is an order line.
type Item struct {
	SKU      string  `json:"sku"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// CreateOrder is the request payload for POST /orders.
type CreateOrder struct {
	Customer string `json:"customer"`
	Items    []Item `json:"items"`
	Notes    string `json:"notes"`
}

type orderStore struct {
	mu     sync.RWMutex
	nextID int
	orders map[int]Order
	now    func() time.Time
}

func newOrderStore(now func() time.Time) *orderStore {
	s := &orderStore{nextID: 1, orders: make(map[int]Order), now: now}
	s.add(CreateOrder{
		Customer: "Ada",
		Items:    []Item{{SKU: "BOOK-1", Quantity: 2, Price: 12.5}},
		Notes:    "<b>gift wrap</b>",
	})
	s.add(CreateOrder{
		Customer: "Grace",
		Items:    []Item{{SKU: "PEN-9", Quantity: 10, Price: 1.2}, {SKU: "INK-2", Quantity: 1, Price: 4}},
	})
	return s
}

func (s *orderStore) add(in CreateOrder) Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := Order{
		ID:        s.nextID,
		Customer:  in.Customer,
		Items:     in.Items,
		Notes:     in.Notes,
		CreatedAt: s.now().UTC(),
	}
	s.orders[order.ID] = order
	s.nextID++
	return order
}

func (s *orderStore) get(id int) (Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	order, ok := s.orders[id]
	return order, ok
}

func (s *orderStore) list() []Order {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Order, 0, len(s.orders))
	for _, order := range s.orders {
		out = append(out, order)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// registerServices mounts the demo endpoints. Operation names are left empty
// where the OpenAPI resolver or the response type can name them.
func registerServices(app *htmlsnapshot.App, store *orderStore) {
	app.Handle("GET /orders", "", func(context.Context, *host.Request) (any, error) {
		return store.list(), nil
	})

	app.Handle("GET /orders/{id}", "", func(_ context.Context, req *host.Request) (any, error) {
		id, err := strconv.Atoi(req.Original.PathValue("id"))
		if err != nil {
			return nil, host.NewHTTPError(http.StatusBadRequest, fmt.Errorf("invalid order id %q", req.Original.PathValue("id")))
		}
		order, ok := store.get(id)
		if !ok {
			return nil, host.NewHTTPError(http.StatusNotFound, fmt.Errorf("order %d not found", id))
		}
		return order, nil
	})

	app.Handle("POST /orders", "CreateOrder", func(_ context.Context, req *host.Request) (any, error) {
		var in CreateOrder
		req.Dto = &in
		if err := json.NewDecoder(req.Original.Body).Decode(&in); err != nil {
			return nil, host.NewHTTPError(http.StatusBadRequest, fmt.Errorf("decode order: %w", err))
		}
		if in.Customer == "" {
			return nil, &host.HTTPError{Status: http.StatusBadRequest, Code: "ValidationError", Err: fmt.Errorf("customer is required")}
		}
		order := store.add(in)
		result := host.NewResult(order, http.StatusCreated)
		result.Header.Set("Location", fmt.Sprintf("/orders/%d", order.ID))
		return result, nil
	})

	app.Handle("GET /latest", "", func(context.Context, *host.Request) (any, error) {
		orders := store.list()
		if len(orders) == 0 {
			return nil, host.NewHTTPError(http.StatusNotFound, fmt.Errorf("no orders"))
		}
		return host.Redirect(fmt.Sprintf("/orders/%d", orders[len(orders)-1].ID), http.StatusFound), nil
	})

	app.Handle("GET /about", "About", func(context.Context, *host.Request) (any, error) {
		return "<!DOCTYPE html><html><body><h1>go-htmlsnapshot demo</h1>" +
			`<p>Try <a href="/orders">/orders</a> or <a href="/orders?format=json">/orders?format=json</a>.</p>` +
			"</body></html>", nil
	})
}
