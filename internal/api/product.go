// ABOUTME: Product endpoint wrappers for the portal CRUD screens
// ABOUTME: List responses carry the meta block that drives pagination

package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// Product is a single product record.
type Product struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ProductFilter narrows a product list request. Zero values are omitted
// from the query string.
type ProductFilter struct {
	Query string
	Page  int
	Limit int
}

// ListProducts fetches a filtered product page plus its pagination meta.
func (c *Client) ListProducts(ctx context.Context, f ProductFilter) ([]Product, *Meta, error) {
	query := map[string]string{"q": f.Query}
	if f.Page > 0 {
		query["page"] = strconv.Itoa(f.Page)
	}
	if f.Limit > 0 {
		query["limit"] = strconv.Itoa(f.Limit)
	}

	var products []Product
	meta, err := c.do(ctx, http.MethodGet, routeProduct, query, nil, &products)
	if err != nil {
		return nil, nil, err
	}
	return products, meta, nil
}

// GetProduct fetches a single product by id.
func (c *Client) GetProduct(ctx context.Context, id int) (Product, error) {
	var product Product
	_, err := c.do(ctx, http.MethodGet, fmt.Sprintf("%s/%d", routeProduct, id), nil, nil, &product)
	if err != nil {
		return Product{}, err
	}
	return product, nil
}

// CreateProduct creates a product.
func (c *Client) CreateProduct(ctx context.Context, name, description string) (Product, error) {
	var product Product
	_, err := c.do(ctx, http.MethodPost, routeProduct, nil, map[string]string{
		"name":        name,
		"description": description,
	}, &product)
	if err != nil {
		return Product{}, err
	}
	return product, nil
}

// UpdateProduct replaces a product's name and description.
func (c *Client) UpdateProduct(ctx context.Context, id int, name, description string) (Product, error) {
	var product Product
	_, err := c.do(ctx, http.MethodPut, fmt.Sprintf("%s/%d", routeProduct, id), nil, map[string]string{
		"name":        name,
		"description": description,
	}, &product)
	if err != nil {
		return Product{}, err
	}
	return product, nil
}

// DeleteProduct removes a product by id.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("%s/%d", routeProduct, id), nil, nil, nil)
	return err
}
