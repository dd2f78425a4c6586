package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("INVOICE_TIMEOUT", "")
	t.Setenv("POSTGRES_MAX_CONNS", "")

	cfg := Load()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 10*time.Second, cfg.InvoiceTimeout)
	assert.EqualValues(t, 10, cfg.MaxConns)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("PAYMENT_INGEST_KEY", "secret")
	t.Setenv("INVOICE_TIMEOUT", "3s")
	t.Setenv("POSTGRES_MAX_CONNS", "25")
	t.Setenv("COMPANY_NAME", "Dokan")

	cfg := Load()
	assert.Equal(t, ":9999", cfg.HTTPAddr)
	assert.Equal(t, "secret", cfg.IngestKey)
	assert.Equal(t, 3*time.Second, cfg.InvoiceTimeout)
	assert.EqualValues(t, 25, cfg.MaxConns)
	assert.Equal(t, "Dokan", cfg.Company.Name)
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	t.Setenv("POSTGRES_MAX_CONNS", "lots")
	t.Setenv("INVOICE_TIMEOUT", "soon")

	cfg := Load()
	assert.EqualValues(t, 10, cfg.MaxConns)
	assert.Equal(t, 10*time.Second, cfg.InvoiceTimeout)
}
