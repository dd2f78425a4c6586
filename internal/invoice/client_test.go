package invoice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientCreate_OK(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"invoiceLink":"https://cdn.example/inv/ORD-1.pdf"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second)
	res, err := c.Create(context.Background(), Request{Invoice: Invoice{Number: "ORD-1"}})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/inv/ORD-1.pdf", res.InvoiceLink)
	assert.Equal(t, "ORD-1", got.Invoice.Number)
}

func TestClientCreate_ErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte(`{"error":"smtp unavailable"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 2*time.Second).Create(context.Background(), Request{})
	require.ErrorIs(t, err, ErrDispatchFailed)
	assert.Contains(t, err.Error(), "smtp unavailable")
}

func TestClientCreate_NonJSONFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, 2*time.Second).Create(context.Background(), Request{})
	require.ErrorIs(t, err, ErrDispatchFailed)
	assert.Contains(t, err.Error(), "500")
}

func TestClientCreate_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second).Create(context.Background(), Request{})
	assert.ErrorIs(t, err, ErrDispatchFailed)
}
