package models

import "time"

// QuoteOption is one priced category entry returned by the pricing service.
type QuoteOption struct {
	Category         string  `json:"category"`
	Subtotal         float64 `json:"subtotal"`
	GSTCharges       float64 `json:"gstCharges"`
	InsuranceCharges float64 `json:"insuranceCharges"`
	DiscountApplied  float64 `json:"discountApplied"`
	TotalPayable     float64 `json:"totalPayable"`
}

// Quote is the last successful pricing-service response for a draft.
type Quote struct {
	Options    []QuoteOption `json:"options"`
	ReceivedAt time.Time     `json:"receivedAt"`
}

// Option returns the entry matching the given category name, if present.
func (q *Quote) Option(category string) (QuoteOption, bool) {
	for _, opt := range q.Options {
		if opt.Category == category {
			return opt, true
		}
	}
	return QuoteOption{}, false
}
