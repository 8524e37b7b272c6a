package domain

import "fmt"

// Order selects the sort applied to a ban lookup. NoOrder leaves the result
// in whatever order the store returns it.
type Order int

const (
	NoOrder Order = iota
	ByTimeAsc
	ByTimeDesc
	ByExpirationAsc
	ByExpirationDesc
)

// orderClauses maps every sortable Order to its fixed ORDER BY expression.
// The clauses are static SQL fragments chosen by the service, never derived
// from request input.
var orderClauses = map[Order]string{
	ByTimeAsc:        "bantime ASC",
	ByTimeDesc:       "bantime DESC",
	ByExpirationAsc:  "expiration_time ASC",
	ByExpirationDesc: "expiration_time DESC",
}

// Clause returns the ORDER BY expression for o and whether one applies.
func (o Order) Clause() (string, bool) {
	clause, ok := orderClauses[o]
	return clause, ok
}

// orderKeys maps the wire/query-string representation to Order values. The
// empty string is the no-op default.
var orderKeys = map[string]Order{
	"":                NoOrder,
	"bantime_asc":     ByTimeAsc,
	"bantime_desc":    ByTimeDesc,
	"expiration_asc":  ByExpirationAsc,
	"expiration_desc": ByExpirationDesc,
}

// ParseOrder converts a wire order key into an Order.
func ParseOrder(key string) (Order, error) {
	order, ok := orderKeys[key]
	if !ok {
		return NoOrder, fmt.Errorf("unknown order key %q", key)
	}
	return order, nil
}

func (o Order) String() string {
	for key, order := range orderKeys {
		if order == o && key != "" {
			return key
		}
	}
	return "no_order"
}
