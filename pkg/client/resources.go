package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// CompaniesClient reads /companies.
type CompaniesClient struct {
	client *Client
}

// List returns one page of companies ordered by name.
func (c *CompaniesClient) List(ctx context.Context, opts *ListOptions) (*List[Company], error) {
	var out List[Company]
	if err := c.client.get(ctx, pagePath(apiPrefix+"/companies", opts), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a company by id or by name.
func (c *CompaniesClient) Get(ctx context.Context, ref string) (*Company, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("%w: company reference is required", ErrInvalidConfig)
	}
	var out Company
	if err := c.client.get(ctx, apiPrefix+"/companies/"+url.PathEscape(ref), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PatentsClient reads /patents.
type PatentsClient struct {
	client *Client
}

// List returns one page of patents ordered by publication number.
func (c *PatentsClient) List(ctx context.Context, opts *ListOptions) (*List[Patent], error) {
	var out List[Patent]
	if err := c.client.get(ctx, pagePath(apiPrefix+"/patents", opts), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a patent by id or by publication number.
func (c *PatentsClient) Get(ctx context.Context, ref string) (*Patent, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, fmt.Errorf("%w: patent reference is required", ErrInvalidConfig)
	}
	var out Patent
	if err := c.client.get(ctx, apiPrefix+"/patents/"+url.PathEscape(ref), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InfringementClient runs checks and reads stored analyses.
type InfringementClient struct {
	client *Client
}

// Check asks the server to analyze patentID against companyName.  It is
// never retried: every attempt costs a model call and stores an analysis.
func (c *InfringementClient) Check(ctx context.Context, patentID, companyName string) (*Analysis, error) {
	var out Analysis
	req := CheckRequest{PatentID: patentID, CompanyName: companyName}
	if err := c.client.post(ctx, apiPrefix+"/infringement/check", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Get fetches a stored analysis by id.
func (c *InfringementClient) Get(ctx context.Context, id string) (*Analysis, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: analysis id is required", ErrInvalidConfig)
	}
	var out Analysis
	if err := c.client.get(ctx, apiPrefix+"/infringement/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// List returns stored analyses, newest first.
func (c *InfringementClient) List(ctx context.Context, opts *ListOptions) (*List[Analysis], error) {
	var out List[Analysis]
	if err := c.client.get(ctx, pagePath(apiPrefix+"/infringement", opts), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

//Personal.AI order the ending
