package builder

import (
	"shopsync_api/internal/shopify/business/models/dto/request"
)

// ProductBuilder assembles a marketplace product payload step by step.
type ProductBuilder struct {
	Title           string
	DescriptionHTML string
	Handle          string
	Vendor          string
	ProductType     string
	Status          string
	Tags            []string
	Options         []request.OptionPayload
	Variants        []request.VariantPayload
	Images          []request.ImagePayload
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{}
}

func (b *ProductBuilder) WithTitle(title string) *ProductBuilder {
	b.Title = title
	return b
}

func (b *ProductBuilder) WithDescription(descriptionHTML string) *ProductBuilder {
	b.DescriptionHTML = descriptionHTML
	return b
}

func (b *ProductBuilder) WithHandle(handle string) *ProductBuilder {
	b.Handle = handle
	return b
}

func (b *ProductBuilder) WithVendor(vendor string) *ProductBuilder {
	b.Vendor = vendor
	return b
}

func (b *ProductBuilder) WithProductType(productType string) *ProductBuilder {
	b.ProductType = productType
	return b
}

func (b *ProductBuilder) WithStatus(status string) *ProductBuilder {
	b.Status = status
	return b
}

func (b *ProductBuilder) WithTags(tags []string) *ProductBuilder {
	b.Tags = tags
	return b
}

func (b *ProductBuilder) WithOption(name string, values []string) *ProductBuilder {
	if len(values) > 0 {
		b.Options = append(b.Options, request.OptionPayload{Name: name, Values: values})
	}
	return b
}

func (b *ProductBuilder) WithVariant(variant request.VariantPayload) *ProductBuilder {
	b.Variants = append(b.Variants, variant)
	return b
}

func (b *ProductBuilder) WithImage(image request.ImagePayload) *ProductBuilder {
	b.Images = append(b.Images, image)
	return b
}

func (b *ProductBuilder) Build() (request.ProductPayload, error) {
	payload := request.ProductPayload{
		Title:           b.Title,
		DescriptionHTML: b.DescriptionHTML,
		Handle:          b.Handle,
		Vendor:          b.Vendor,
		ProductType:     b.ProductType,
		Status:          b.Status,
		Tags:            b.Tags,
		Options:         b.Options,
		Variants:        b.Variants,
		Images:          b.Images,
	}
	if payload.Variants == nil {
		payload.Variants = []request.VariantPayload{}
	}
	for i := range payload.Variants {
		if payload.Variants[i].Metafields == nil {
			payload.Variants[i].Metafields = []request.MetafieldPayload{}
		}
	}

	if err := payload.Validate(); err != nil {
		return request.ProductPayload{}, err
	}
	return payload, nil
}
