package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/AbdulKus/jshop-admin/internal/domain"
	"github.com/sirupsen/logrus"
)

const adminPrefix = "/api/v1/admin"

type CatalogClient interface {
	BaseURL() string
	SetBaseURL(base string)
	Request(ctx context.Context, method, path string, body any) (*Payload, error)

	Dashboard(ctx context.Context) (*domain.Dashboard, error)

	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, req domain.CategoryCreate) error
	UpdateCategory(ctx context.Context, code string, req domain.CategoryUpdate) error
	DeleteCategory(ctx context.Context, code string) error

	ListContacts(ctx context.Context) ([]domain.Contact, error)
	CreateContact(ctx context.Context, req domain.ContactPayload) error
	UpdateContact(ctx context.Context, code string, req domain.ContactPayload) error
	DeleteContact(ctx context.Context, code string) error

	ListLots(ctx context.Context, filter domain.LotFilter) ([]domain.Lot, error)
	CreateLot(ctx context.Context, req domain.LotPayload) error
	UpdateLot(ctx context.Context, slug string, req domain.LotPayload) error
	DeleteLot(ctx context.Context, slug string) error
	DuplicateLot(ctx context.Context, slug, newSlug string) error
	BulkCreateLots(ctx context.Context, items []any) (*domain.BulkResult, error)
}

// Payload is a successful or failed response body. A 204 produces no Payload.
type Payload struct {
	StatusCode int
	IsJSON     bool
	JSON       json.RawMessage
	Text       string
}

type catalogHTTPClient struct {
	mu      sync.RWMutex
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func NewCatalogHTTPClient(baseURL string, timeout time.Duration, logger *logrus.Logger) CatalogClient {
	return &catalogHTTPClient{
		baseURL: NormalizeAPIBase(baseURL),
		client: &http.Client{
			Timeout: timeout,
		},
		log: logger,
	}
}

// NormalizeAPIBase trims whitespace and every trailing slash.
func NormalizeAPIBase(value string) string {
	return strings.TrimRight(strings.TrimSpace(value), "/")
}

func (c *catalogHTTPClient) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

func (c *catalogHTTPClient) SetBaseURL(base string) {
	normalized := NormalizeAPIBase(base)
	c.mu.Lock()
	c.baseURL = normalized
	c.mu.Unlock()
	c.log.Infof("CatalogClient: API base set to %s", normalized)
}

// Request sends body (when non-nil) as JSON to base+path and classifies the answer.
func (c *catalogHTTPClient) Request(ctx context.Context, method, path string, body any) (*Payload, error) {
	target := c.BaseURL() + path

	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			c.log.Errorf("CatalogClient: Failed to marshal body for %s %s: %v", method, path, err)
			return nil, fmt.Errorf("failed to prepare request body: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		c.log.Errorf("CatalogClient: Failed to create request %s %s: %v", method, target, err)
		return nil, fmt.Errorf("failed to create catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.log.Debugf("CatalogClient: %s %s", method, target)
	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Errorf("CatalogClient: Failed to execute %s %s: %v", method, target, err)
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.log.Errorf("CatalogClient: Failed to read response of %s %s: %v", method, target, err)
		return nil, &TransportError{Method: method, URL: target, Err: err}
	}

	payload := &Payload{StatusCode: resp.StatusCode}
	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		if !json.Valid(raw) {
			c.log.Errorf("CatalogClient: Invalid JSON in response of %s %s (status %d)", method, target, resp.StatusCode)
			return nil, fmt.Errorf("failed to decode catalog response: invalid JSON (status %d)", resp.StatusCode)
		}
		payload.IsJSON = true
		payload.JSON = raw
	} else {
		payload.Text = string(raw)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Detail: errorDetail(payload)}
		if resp.StatusCode >= 500 {
			c.log.Errorf("CatalogClient: %s %s failed: %v", method, target, apiErr)
		} else {
			c.log.Warnf("CatalogClient: %s %s rejected: %v", method, target, apiErr)
		}
		return nil, apiErr
	}
	return payload, nil
}

// requestJSON decodes a JSON answer into out. A 204 leaves out untouched.
func (c *catalogHTTPClient) requestJSON(ctx context.Context, method, path string, body, out any) error {
	payload, err := c.Request(ctx, method, path, body)
	if err != nil {
		return err
	}
	if payload == nil || out == nil {
		return nil
	}
	if !payload.IsJSON {
		return fmt.Errorf("%s %s: %w", method, path, ErrUnexpectedPayload)
	}
	if err := json.Unmarshal(payload.JSON, out); err != nil {
		c.log.Errorf("CatalogClient: Failed to decode %s %s response: %v", method, path, err)
		return fmt.Errorf("failed to decode catalog response: %w", err)
	}
	return nil
}

func (c *catalogHTTPClient) Dashboard(ctx context.Context) (*domain.Dashboard, error) {
	var dashboard domain.Dashboard
	if err := c.requestJSON(ctx, http.MethodGet, adminPrefix+"/dashboard", nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}

func (c *catalogHTTPClient) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories := []domain.Category{}
	if err := c.requestJSON(ctx, http.MethodGet, adminPrefix+"/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (c *catalogHTTPClient) CreateCategory(ctx context.Context, req domain.CategoryCreate) error {
	c.log.Debugf("CatalogClient: Creating category %s", req.Code)
	_, err := c.Request(ctx, http.MethodPost, adminPrefix+"/categories", req)
	return err
}

func (c *catalogHTTPClient) UpdateCategory(ctx context.Context, code string, req domain.CategoryUpdate) error {
	c.log.Debugf("CatalogClient: Updating category %s", code)
	_, err := c.Request(ctx, http.MethodPatch, adminPrefix+"/categories/"+url.PathEscape(code), req)
	return err
}

func (c *catalogHTTPClient) DeleteCategory(ctx context.Context, code string) error {
	c.log.Debugf("CatalogClient: Deleting category %s", code)
	_, err := c.Request(ctx, http.MethodDelete, adminPrefix+"/categories/"+url.PathEscape(code), nil)
	return err
}

func (c *catalogHTTPClient) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	contacts := []domain.Contact{}
	if err := c.requestJSON(ctx, http.MethodGet, adminPrefix+"/contacts", nil, &contacts); err != nil {
		return nil, err
	}
	return contacts, nil
}

func (c *catalogHTTPClient) CreateContact(ctx context.Context, req domain.ContactPayload) error {
	c.log.Debugf("CatalogClient: Creating contact %s", req.Code)
	_, err := c.Request(ctx, http.MethodPost, adminPrefix+"/contacts", req)
	return err
}

func (c *catalogHTTPClient) UpdateContact(ctx context.Context, code string, req domain.ContactPayload) error {
	c.log.Debugf("CatalogClient: Updating contact %s", code)
	_, err := c.Request(ctx, http.MethodPatch, adminPrefix+"/contacts/"+url.PathEscape(code), req)
	return err
}

func (c *catalogHTTPClient) DeleteContact(ctx context.Context, code string) error {
	c.log.Debugf("CatalogClient: Deleting contact %s", code)
	_, err := c.Request(ctx, http.MethodDelete, adminPrefix+"/contacts/"+url.PathEscape(code), nil)
	return err
}

func (c *catalogHTTPClient) ListLots(ctx context.Context, filter domain.LotFilter) ([]domain.Lot, error) {
	path := adminPrefix + "/lots"
	if query := filter.Query().Encode(); query != "" {
		path += "?" + query
	}
	lots := []domain.Lot{}
	if err := c.requestJSON(ctx, http.MethodGet, path, nil, &lots); err != nil {
		return nil, err
	}
	return lots, nil
}

func (c *catalogHTTPClient) CreateLot(ctx context.Context, req domain.LotPayload) error {
	c.log.Debugf("CatalogClient: Creating lot %s", req.Slug)
	_, err := c.Request(ctx, http.MethodPost, adminPrefix+"/lots", req)
	return err
}

func (c *catalogHTTPClient) UpdateLot(ctx context.Context, slug string, req domain.LotPayload) error {
	c.log.Debugf("CatalogClient: Updating lot %s", slug)
	_, err := c.Request(ctx, http.MethodPatch, adminPrefix+"/lots/"+url.PathEscape(slug), req)
	return err
}

func (c *catalogHTTPClient) DeleteLot(ctx context.Context, slug string) error {
	c.log.Debugf("CatalogClient: Deleting lot %s", slug)
	_, err := c.Request(ctx, http.MethodDelete, adminPrefix+"/lots/"+url.PathEscape(slug), nil)
	return err
}

func (c *catalogHTTPClient) DuplicateLot(ctx context.Context, slug, newSlug string) error {
	c.log.Debugf("CatalogClient: Duplicating lot %s as %s", slug, newSlug)
	_, err := c.Request(ctx, http.MethodPost, adminPrefix+"/lots/"+url.PathEscape(slug)+"/duplicate", domain.DuplicateRequest{NewSlug: newSlug})
	return err
}

func (c *catalogHTTPClient) BulkCreateLots(ctx context.Context, items []any) (*domain.BulkResult, error) {
	c.log.Debugf("CatalogClient: Bulk creating %d lots", len(items))
	var result domain.BulkResult
	if err := c.requestJSON(ctx, http.MethodPost, adminPrefix+"/lots/bulk", domain.BulkRequest{Items: items}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
