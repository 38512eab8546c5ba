package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/birkaops/birka/internal/client/client"
	"github.com/birkaops/birka/internal/client/models"
)

type OrderService interface {
	// List returns a page of a company's orders. Zero page or limit use the
	// server defaults.
	List(ctx context.Context, companyID int64, page, limit int) (*models.OrderList, error)
	Items(ctx context.Context, orderID int64) ([]models.OrderItem, error)
}

type orderService struct {
	client client.Client
}

func NewOrderService(c client.Client) OrderService {
	return &orderService{client: c}
}

func (o *orderService) List(ctx context.Context, companyID int64, page, limit int) (*models.OrderList, error) {
	q := url.Values{"company_id": {strconv.FormatInt(companyID, 10)}}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out models.OrderList
	if err := o.client.Do(ctx, http.MethodGet, "/orders", nil, &out, client.WithQuery(q)); err != nil {
		return nil, err
	}
	return &out, nil
}

func (o *orderService) Items(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	var out []models.OrderItem
	if err := o.client.Do(ctx, http.MethodGet, fmt.Sprintf("/orders/%d/items", orderID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
