package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/joao-fontenele/handix-orderview/internal/domain"
)

var ErrUnsuccessful = errors.New("service reported failure")

// OrdersClient talks to the order service, which also serves customer
// addresses.
type OrdersClient struct {
	*Client
}

func NewOrdersClient(c *Client) *OrdersClient {
	return &OrdersClient{Client: c}
}

func (c *OrdersClient) Order(ctx context.Context, id string) (*domain.RawOrder, error) {
	var order domain.RawOrder
	if err := c.getJSON(ctx, "/orders/"+url.PathEscape(id), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *OrdersClient) CustomerOrders(ctx context.Context, customerID string) ([]domain.RawOrder, error) {
	var resp domain.CustomerOrders
	q := url.Values{"customerId": {customerID}}
	if err := c.getJSON(ctx, "/orders/customer?"+q.Encode(), &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, ErrUnsuccessful
	}
	return resp.Orders, nil
}

func (c *OrdersClient) CustomerAddresses(ctx context.Context, customerID string) ([]domain.RawAddress, error) {
	var addrs []domain.RawAddress
	if err := c.getJSON(ctx, "/addresses/customer/"+url.PathEscape(customerID), &addrs); err != nil {
		return nil, err
	}
	return addrs, nil
}

// UpdateStatus asks the order service to move an order to status. The next
// read of the order reflects it.
func (c *OrdersClient) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	body := map[string]string{"status": string(status)}
	return c.do(ctx, http.MethodPut, "/orders/"+url.PathEscape(id)+"/status", body, nil)
}
