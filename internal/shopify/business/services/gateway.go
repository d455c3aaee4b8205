package services

import (
	"context"

	"shopsync_api/internal/shopify/business/models/dto/request"
	"shopsync_api/internal/shopify/business/models/dto/response"
)

// APIGateway executes named remote operations against the marketplace.
// A returned error means transport failure (timeout, network, HTTP-level);
// business rejections come back as userErrors inside the result.
type APIGateway interface {
	CreateProduct(ctx context.Context, payload request.ProductPayload) (*response.CreateResult, error)
	UpdateProductContent(ctx context.Context, productID string, fields request.ContentFields) (*response.UpdateResult, error)
	UpdateVariantPrices(ctx context.Context, productID string, updates []request.VariantPriceUpdate) (*response.UpdateResult, error)
	UpdateSingleVariant(ctx context.Context, variantID string, fields request.VariantFields) (*response.UpdateResult, error)
	BatchUpdateVariantSKUs(ctx context.Context, updates []request.SKUUpdate) (*response.BatchSKUResult, error)
	DeleteProduct(ctx context.Context, productID string) (*response.DeleteResult, error)
	GetProduct(ctx context.Context, productID string) (*response.RemoteProduct, error)
	SearchProductsBySKU(ctx context.Context, skus []string) ([]response.RemoteProduct, error)
	TestConnection(ctx context.Context) (*response.Shop, error)
}
