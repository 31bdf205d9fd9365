package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDeliveryStatus(t *testing.T) {
	cases := []struct {
		in   string
		want DeliveryStatus
		ok   bool
	}{
		{"Delivered", StatusDelivered, true},
		{"In-Transit", StatusInTransit, true},
		{"Entregado", StatusDelivered, true},
		{"Retrasado", StatusDelayed, true},
		{"Cancelado", StatusCancelled, true},
		{"En tránsito", StatusInTransit, true},
		{"delivered", "", false}, // labels are case sensitive
		{"Pending", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseDeliveryStatus(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}
