package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"shopsync_api/internal/shopify/business/models/dto/request"
	"shopsync_api/internal/shopify/business/models/dto/response"
	"shopsync_api/internal/shopify/business/services"
	"shopsync_api/metrics"
	"shopsync_api/pkg/logger"
)

const (
	apiVersion       = "2024-01"
	requestRateLimit = 120 // requests per minute
	requestTimeout   = 30 * time.Second
	searchPageSize   = 20
)

// GraphQLRequest is the admin API request envelope.
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors,omitempty"`
}

// ShopifyClient implements services.APIGateway over the admin GraphQL API.
// All methods report transport failure as a Go error; business rejections
// come back inside the result as userErrors.
type ShopifyClient struct {
	endpoint string
	auth     services.AuthEngine
	limiter  *rate.Limiter
	client   *http.Client
	log      logger.Logger
}

func NewShopifyClient(shopDomain string, auth services.AuthEngine, writer io.Writer) *ShopifyClient {
	return &ShopifyClient{
		endpoint: fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shopDomain, apiVersion),
		auth:     auth,
		limiter:  rate.NewLimiter(rate.Every(time.Minute/requestRateLimit), 4),
		client:   &http.Client{Timeout: requestTimeout},
		log:      logger.NewLogger(writer, "[ShopifyClient]"),
	}
}

func (c *ShopifyClient) execute(ctx context.Context, operation, query string, variables map[string]interface{}, out interface{}) error {
	err := c.run(ctx, query, variables, out)
	metrics.RecordGatewayCall(operation, err)
	if err != nil {
		c.log.Log("%s failed: %v", operation, err)
	}
	return err
}

func (c *ShopifyClient) run(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	body, err := json.Marshal(GraphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.auth.SetAuth(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(bodyBytes)))
	}

	var envelope graphQLResponse
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, e := range envelope.Errors {
			messages = append(messages, e.Message)
		}
		return fmt.Errorf("graphql errors: %s", strings.Join(messages, "; "))
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to unmarshal data: %w", err)
		}
	}
	return nil
}

// remoteProductNode mirrors the GraphQL product shape with nested variant
// connections.
type remoteProductNode struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Handle   string `json:"handle"`
	Status   string `json:"status"`
	Variants struct {
		Nodes []response.RemoteVariant `json:"nodes"`
	} `json:"variants"`
}

func (n remoteProductNode) toRemoteProduct() response.RemoteProduct {
	return response.RemoteProduct{
		ID:       n.ID,
		Title:    n.Title,
		Handle:   n.Handle,
		Status:   n.Status,
		Variants: n.Variants.Nodes,
	}
}

const productCreateMutation = `
mutation productCreate($input: ProductInput!) {
  productCreate(input: $input) {
    product {
      id title handle status
      variants(first: 100) { nodes { id sku price } }
    }
    userErrors { field message }
  }
}`

func (c *ShopifyClient) CreateProduct(ctx context.Context, payload request.ProductPayload) (*response.CreateResult, error) {
	var data struct {
		ProductCreate struct {
			Product    *remoteProductNode   `json:"product"`
			UserErrors []response.UserError `json:"userErrors"`
		} `json:"productCreate"`
	}
	err := c.execute(ctx, "createProduct", productCreateMutation, map[string]interface{}{"input": payload}, &data)
	if err != nil {
		return nil, err
	}

	result := &response.CreateResult{UserErrors: data.ProductCreate.UserErrors}
	if data.ProductCreate.Product != nil {
		rp := data.ProductCreate.Product.toRemoteProduct()
		result.Product = &rp
	}
	return result, nil
}

const productUpdateMutation = `
mutation productUpdate($input: ProductInput!) {
  productUpdate(input: $input) {
    userErrors { field message }
  }
}`

func (c *ShopifyClient) UpdateProductContent(ctx context.Context, productID string, fields request.ContentFields) (*response.UpdateResult, error) {
	input := map[string]interface{}{"id": productID}
	if fields.Title != nil {
		input["title"] = *fields.Title
	}
	if fields.DescriptionHTML != nil {
		input["descriptionHtml"] = *fields.DescriptionHTML
	}
	if fields.Vendor != nil {
		input["vendor"] = *fields.Vendor
	}
	if fields.ProductType != nil {
		input["productType"] = *fields.ProductType
	}
	if fields.Status != nil {
		input["status"] = *fields.Status
	}

	var data struct {
		ProductUpdate response.UpdateResult `json:"productUpdate"`
	}
	err := c.execute(ctx, "updateProductContent", productUpdateMutation, map[string]interface{}{"input": input}, &data)
	if err != nil {
		return nil, err
	}
	return &data.ProductUpdate, nil
}

const variantsBulkUpdateMutation = `
mutation productVariantsBulkUpdate($productId: ID!, $variants: [ProductVariantsBulkInput!]!) {
  productVariantsBulkUpdate(productId: $productId, variants: $variants) {
    userErrors { field message }
  }
}`

func (c *ShopifyClient) UpdateVariantPrices(ctx context.Context, productID string, updates []request.VariantPriceUpdate) (*response.UpdateResult, error) {
	variants := make([]map[string]interface{}, 0, len(updates))
	for _, u := range updates {
		variant := map[string]interface{}{
			"id":    u.VariantID,
			"price": u.Price.String(),
		}
		if u.CompareAtPrice != nil {
			variant["compareAtPrice"] = u.CompareAtPrice.String()
		}
		variants = append(variants, variant)
	}

	var data struct {
		ProductVariantsBulkUpdate response.UpdateResult `json:"productVariantsBulkUpdate"`
	}
	err := c.execute(ctx, "updateVariantPrices", variantsBulkUpdateMutation, map[string]interface{}{
		"productId": productID,
		"variants":  variants,
	}, &data)
	if err != nil {
		return nil, err
	}
	return &data.ProductVariantsBulkUpdate, nil
}

const variantUpdateMutation = `
mutation productVariantUpdate($input: ProductVariantInput!) {
  productVariantUpdate(input: $input) {
    userErrors { field message }
  }
}`

func (c *ShopifyClient) UpdateSingleVariant(ctx context.Context, variantID string, fields request.VariantFields) (*response.UpdateResult, error) {
	input := map[string]interface{}{"id": variantID}
	if fields.SKU != nil {
		input["sku"] = *fields.SKU
	}
	if fields.Price != nil {
		input["price"] = fields.Price.String()
	}
	if fields.Barcode != nil {
		input["barcode"] = *fields.Barcode
	}

	var data struct {
		ProductVariantUpdate response.UpdateResult `json:"productVariantUpdate"`
	}
	err := c.execute(ctx, "updateSingleVariant", variantUpdateMutation, map[string]interface{}{"input": input}, &data)
	if err != nil {
		return nil, err
	}
	return &data.ProductVariantUpdate, nil
}

// BatchUpdateVariantSKUs updates SKUs one variant at a time, partitioning
// the batch into successful and failed entries. A transport failure mid-batch
// marks the remaining variants failed rather than aborting.
func (c *ShopifyClient) BatchUpdateVariantSKUs(ctx context.Context, updates []request.SKUUpdate) (*response.BatchSKUResult, error) {
	result := &response.BatchSKUResult{}
	for _, update := range updates {
		sku := update.SKU
		res, err := c.UpdateSingleVariant(ctx, update.VariantID, request.VariantFields{SKU: &sku})
		if err != nil {
			result.Failed = append(result.Failed, response.SKUFailure{
				VariantID: update.VariantID,
				Message:   err.Error(),
			})
			continue
		}
		if len(res.UserErrors) > 0 {
			result.Failed = append(result.Failed, response.SKUFailure{
				VariantID: update.VariantID,
				Message:   response.JoinUserErrors(res.UserErrors),
			})
			continue
		}
		result.Successful = append(result.Successful, update.VariantID)
	}
	return result, nil
}

const productDeleteMutation = `
mutation productDelete($input: ProductDeleteInput!) {
  productDelete(input: $input) {
    deletedProductId
    userErrors { field message }
  }
}`

func (c *ShopifyClient) DeleteProduct(ctx context.Context, productID string) (*response.DeleteResult, error) {
	var data struct {
		ProductDelete struct {
			DeletedProductID string               `json:"deletedProductId"`
			UserErrors       []response.UserError `json:"userErrors"`
		} `json:"productDelete"`
	}
	err := c.execute(ctx, "deleteProduct", productDeleteMutation, map[string]interface{}{
		"input": map[string]interface{}{"id": productID},
	}, &data)
	if err != nil {
		return nil, err
	}
	return &response.DeleteResult{
		DeletedID:  data.ProductDelete.DeletedProductID,
		UserErrors: data.ProductDelete.UserErrors,
	}, nil
}

const productQuery = `
query product($id: ID!) {
  product(id: $id) {
    id title handle status
    variants(first: 100) { nodes { id sku price } }
  }
}`

func (c *ShopifyClient) GetProduct(ctx context.Context, productID string) (*response.RemoteProduct, error) {
	var data struct {
		Product *remoteProductNode `json:"product"`
	}
	err := c.execute(ctx, "getProduct", productQuery, map[string]interface{}{"id": productID}, &data)
	if err != nil {
		return nil, err
	}
	if data.Product == nil {
		return nil, nil
	}
	rp := data.Product.toRemoteProduct()
	return &rp, nil
}

const productSearchQuery = `
query productsBySku($query: String!, $first: Int!) {
  products(first: $first, query: $query) {
    nodes {
      id title handle status
      variants(first: 100) { nodes { id sku price } }
    }
  }
}`

func (c *ShopifyClient) SearchProductsBySKU(ctx context.Context, skus []string) ([]response.RemoteProduct, error) {
	if len(skus) == 0 {
		return nil, nil
	}

	terms := make([]string, 0, len(skus))
	for _, sku := range skus {
		terms = append(terms, "sku:"+sku)
	}

	var data struct {
		Products struct {
			Nodes []remoteProductNode `json:"nodes"`
		} `json:"products"`
	}
	err := c.execute(ctx, "searchProductsBySku", productSearchQuery, map[string]interface{}{
		"query": strings.Join(terms, " OR "),
		"first": searchPageSize,
	}, &data)
	if err != nil {
		return nil, err
	}

	products := make([]response.RemoteProduct, 0, len(data.Products.Nodes))
	for _, node := range data.Products.Nodes {
		products = append(products, node.toRemoteProduct())
	}
	return products, nil
}

const shopQuery = `
query shop {
  shop { name myshopifyDomain currencyCode }
}`

func (c *ShopifyClient) TestConnection(ctx context.Context) (*response.Shop, error) {
	var data struct {
		Shop *response.Shop `json:"shop"`
	}
	err := c.execute(ctx, "testConnection", shopQuery, nil, &data)
	if err != nil {
		return nil, err
	}
	return data.Shop, nil
}
