package response

import (
	"strings"

	"github.com/shopspring/decimal"
)

// UserError is a business-level error reported by the marketplace inside a
// successful transport response.
type UserError struct {
	Field   []string `json:"field,omitempty"`
	Message string   `json:"message"`
}

// JoinUserErrors flattens userErrors into one readable string.
func JoinUserErrors(errs []UserError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		if len(e.Field) > 0 {
			parts = append(parts, strings.Join(e.Field, ".")+": "+e.Message)
		} else {
			parts = append(parts, e.Message)
		}
	}
	return strings.Join(parts, "; ")
}

type RemoteVariant struct {
	ID    string          `json:"id"`
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
}

type RemoteProduct struct {
	ID       string          `json:"id"`
	Title    string          `json:"title"`
	Handle   string          `json:"handle"`
	Status   string          `json:"status"`
	Variants []RemoteVariant `json:"variants"`
}

type CreateResult struct {
	Product    *RemoteProduct `json:"product,omitempty"`
	UserErrors []UserError    `json:"userErrors,omitempty"`
}

type UpdateResult struct {
	UserErrors []UserError `json:"userErrors,omitempty"`
}

type DeleteResult struct {
	DeletedID  string      `json:"deletedId,omitempty"`
	UserErrors []UserError `json:"userErrors,omitempty"`
}

type SKUFailure struct {
	VariantID string `json:"id"`
	Message   string `json:"message"`
}

type BatchSKUResult struct {
	Successful []string     `json:"successful,omitempty"`
	Failed     []SKUFailure `json:"failed,omitempty"`
}

type Shop struct {
	Name     string `json:"name"`
	Domain   string `json:"myshopifyDomain"`
	Currency string `json:"currencyCode"`
}
