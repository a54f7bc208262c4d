package channelengine

import "channelengine-sync/internal/domain"

// VatRateTypeStandard is the only VAT rate the integration sends.
const VatRateTypeStandard = "STANDARD"

// ProductPayload is the flat product schema the merchant API accepts. Every
// key is always serialized; optional source fields become empty strings, not
// omitted keys.
type ProductPayload struct {
	Name                      string  `json:"Name"`
	Description               string  `json:"Description"`
	MerchantProductNo         int64   `json:"MerchantProductNo"`
	Price                     float64 `json:"Price"`
	VatRateType               string  `json:"VatRateType"`
	Brand                     string  `json:"Brand"`
	Ean                       string  `json:"Ean"`
	ManufacturerProductNumber string  `json:"ManufacturerProductNumber"`
	CategoryTrail             string  `json:"CategoryTrail"`
	ImageUrl                  string  `json:"ImageUrl"`
	Quantity                  int     `json:"Quantity"`
}

// ToPayload maps a catalog product onto the merchant API schema. Pure; both
// single-product and full-catalog syncs go through this same mapping so the
// payload shape is identical either way.
func ToPayload(p domain.Product) ProductPayload {
	return ProductPayload{
		Name:                      p.Name,
		Description:               p.Description,
		MerchantProductNo:         p.ID,
		Price:                     p.Price,
		VatRateType:               VatRateTypeStandard,
		Brand:                     p.Brand,
		Ean:                       p.EAN,
		ManufacturerProductNumber: p.Reference,
		CategoryTrail:             p.CategoryTrail,
		ImageUrl:                  p.ImageURL,
		Quantity:                  p.Quantity,
	}
}

// ToPayloads maps a product list preserving order.
func ToPayloads(products []domain.Product) []ProductPayload {
	payloads := make([]ProductPayload, 0, len(products))
	for _, p := range products {
		payloads = append(payloads, ToPayload(p))
	}
	return payloads
}
