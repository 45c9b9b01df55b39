package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCents(t *testing.T) {
	tests := []struct {
		amount float64
		want   int64
	}{
		{45.5, 4550},
		{19.99, 1999},
		{0.01, 1},
		{1000, 100000},
		{0.005, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToCents(tt.amount), "amount %v", tt.amount)
	}
}

func TestNewDateOnly_UsesUTCDay(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	// 2024-03-02 03:00 in UTC+9 is still 2024-03-01 in UTC
	d := NewDateOnly(time.Date(2024, 3, 2, 3, 0, 0, 0, loc))

	assert.Equal(t, "2024-03-01", d.String())
}

func TestDateOnly_JSON(t *testing.T) {
	inv := Invoice{ID: "1", CustomerID: "c", Amount: 100, Status: InvoiceStatusPaid, Date: NewDateOnly(time.Date(2023, 12, 6, 10, 0, 0, 0, time.UTC))}

	b, err := json.Marshal(inv)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"date":"2023-12-06"`)

	var back Invoice
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, "2023-12-06", back.Date.String())
}

func TestInvoiceStatus_Valid(t *testing.T) {
	assert.True(t, InvoiceStatusPaid.Valid())
	assert.True(t, InvoiceStatusPending.Valid())
	assert.False(t, InvoiceStatus("void").Valid())
	assert.False(t, InvoiceStatus("").Valid())
}
