// Package invoice talks to the external invoicing service that renders the
// PDF, uploads it and emails the link to the customer.
package invoice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var ErrDispatchFailed = errors.New("invoice dispatch failed")

type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type Line struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Price    string `json:"price"`
	Total    string `json:"total"`
}

type Invoice struct {
	Number         string `json:"number"`
	Date           string `json:"date"`
	Items          []Line `json:"items"`
	Subtotal       string `json:"subtotal"`
	Discount       string `json:"discount"`
	Tax            string `json:"tax"`
	ShippingFee    string `json:"shippingFee"`
	ShippingMethod string `json:"shippingMethod"`
	Total          string `json:"total"`
	PaymentMethod  string `json:"paymentMethod"`
	ThankYou       string `json:"thankYou"`
}

type Company struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type Request struct {
	Customer Customer `json:"customer"`
	Invoice  Invoice  `json:"invoice"`
	Company  Company  `json:"company"`
}

type Response struct {
	InvoiceLink string `json:"invoiceLink"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Client posts invoice requests to the invoicing service.
type Client struct {
	HTTP    *http.Client
	BaseURL string
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{HTTP: &http.Client{Timeout: timeout}, BaseURL: url}
}

func (c *Client) Create(ctx context.Context, in Request) (*Response, error) {
	body, err := json.Marshal(in)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDispatchFailed, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrDispatchFailed, err)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		var e errorBody
		_ = json.Unmarshal(raw, &e)
		msg := e.Error
		if msg == "" {
			msg = e.Message
		}
		if msg == "" {
			msg = res.Status
		}
		return nil, fmt.Errorf("%w: %s", ErrDispatchFailed, msg)
	}

	var out Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrDispatchFailed, err)
	}
	return &out, nil
}
