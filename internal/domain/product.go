package domain

// Product is the catalog view a sync operates on: one row joined with its
// cover image URL and the stock quantity available at read time.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	Brand         string  `json:"brand,omitempty"`
	EAN           string  `json:"ean,omitempty"`
	Reference     string  `json:"reference,omitempty"`
	CategoryTrail string  `json:"categoryTrail,omitempty"`
	ImageURL      string  `json:"imageUrl"`
	Quantity      int     `json:"quantity"`
}
