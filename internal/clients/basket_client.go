// internal/clients/basket_client.go
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"basketservice/internal/basket"

	"github.com/google/uuid"
)

// ErrNotFound is returned when the basket or item does not exist.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx answer from the basket service.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("basket api: status %d: %s", e.StatusCode, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// BasketClient talks to the basket service over HTTP.
type BasketClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBasketClient creates a client. A nil httpClient uses http.DefaultClient.
func NewBasketClient(baseURL string, httpClient *http.Client) *BasketClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &BasketClient{baseURL: baseURL, httpClient: httpClient}
}

func (c *BasketClient) CreateBasket(ctx context.Context) (*basket.BasketDTO, error) {
	return c.do(ctx, http.MethodPost, "/baskets", struct{}{}, http.StatusCreated)
}

func (c *BasketClient) GetBasket(ctx context.Context, basketID uuid.UUID) (*basket.BasketDTO, error) {
	return c.do(ctx, http.MethodGet, fmt.Sprintf("/baskets/%s", basketID), nil, http.StatusOK)
}

func (c *BasketClient) AddItem(ctx context.Context, basketID uuid.UUID, productID string, quantity int) (*basket.BasketDTO, error) {
	body := basket.AddItemRequest{ProductID: &productID, Quantity: &quantity}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/baskets/%s/item", basketID), body, http.StatusOK)
}

// Line is one entry of a batch add.
type Line struct {
	ProductID string
	Quantity  int
}

func (c *BasketClient) AddItems(ctx context.Context, basketID uuid.UUID, lines []Line) (*basket.BasketDTO, error) {
	body := basket.BatchAddItemRequest{Items: make([]basket.AddItemRequest, 0, len(lines))}
	for _, line := range lines {
		body.Items = append(body.Items, basket.AddItemRequest{ProductID: &line.ProductID, Quantity: &line.Quantity})
	}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/baskets/%s/items", basketID), body, http.StatusOK)
}

func (c *BasketClient) RemoveItem(ctx context.Context, basketID, itemID uuid.UUID) (*basket.BasketDTO, error) {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/baskets/%s/items/%s", basketID, itemID), nil, http.StatusOK)
}

func (c *BasketClient) do(ctx context.Context, method, path string, payload any, wantStatus int) (*basket.BasketDTO, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody basket.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errBody); err == nil {
			apiErr.Message = errBody.Error
			apiErr.Code = errBody.Code
		}
		return nil, apiErr
	}

	var out basket.BasketResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode basket response: %w", err)
	}
	return &out.Basket, nil
}
