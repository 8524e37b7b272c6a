package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrder(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		want    Order
		wantErr bool
	}{
		{name: "empty key is no order", key: "", want: NoOrder},
		{name: "bantime ascending", key: "bantime_asc", want: ByTimeAsc},
		{name: "bantime descending", key: "bantime_desc", want: ByTimeDesc},
		{name: "expiration ascending", key: "expiration_asc", want: ByExpirationAsc},
		{name: "expiration descending", key: "expiration_desc", want: ByExpirationDesc},
		{name: "junk key rejected", key: "bantime; DROP TABLE ban", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOrder(tt.key)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOrderClause(t *testing.T) {
	tests := []struct {
		name       string
		order      Order
		wantClause string
		wantApply  bool
	}{
		{name: "no order has no clause", order: NoOrder, wantApply: false},
		{name: "time ascending", order: ByTimeAsc, wantClause: "bantime ASC", wantApply: true},
		{name: "time descending", order: ByTimeDesc, wantClause: "bantime DESC", wantApply: true},
		{name: "expiration ascending", order: ByExpirationAsc, wantClause: "expiration_time ASC", wantApply: true},
		{name: "expiration descending", order: ByExpirationDesc, wantClause: "expiration_time DESC", wantApply: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clause, ok := tt.order.Clause()
			assert.Equal(t, tt.wantApply, ok)
			assert.Equal(t, tt.wantClause, clause)
		})
	}
}
