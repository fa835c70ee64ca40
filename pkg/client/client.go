// Package client is a typed client for the storefront REST API, covering
// both the shop front and the admin panel.
package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"storefront/internal/models"

	"github.com/gofiber/fiber/v2"
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 10 * time.Second

// APIError is returned for any non-2xx response.
type APIError struct {
	Status  int
	Message string
	Fields  map[string]string // validation errors, if any
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	}
	fields := make([]string, 0, len(e.Fields))
	for _, msg := range e.Fields {
		fields = append(fields, msg)
	}
	return fmt.Sprintf("api error %d: %s (%s)", e.Status, e.Message, strings.Join(fields, "; "))
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client talks to one storefront server. It is not safe to change the token
// while requests are in flight.
type Client struct {
	baseURL string
	token   string
	timeout time.Duration
	http    *fiber.Client
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) { c.timeout = timeout }
}

// New creates a client for the server at baseURL, e.g. http://localhost:4000.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: DefaultTimeout,
		http:    &fiber.Client{UserAgent: "storefront-cli"},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	return c.token
}

// LoginResult is the response of a customer login.
type LoginResult struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Products lists the catalog, newest first when recent is set.
func (c *Client) Products(recent bool) ([]models.Product, error) {
	path := "/api/products"
	if recent {
		path += "?sort=recent"
	}
	var products []models.Product
	err := c.do(c.http.Get(c.url(path)), &products)
	return products, err
}

// Featured lists the featured products.
func (c *Client) Featured() ([]models.Product, error) {
	var products []models.Product
	err := c.do(c.http.Get(c.url("/api/products/featured")), &products)
	return products, err
}

// Register creates a customer account.
func (c *Client) Register(in models.RegisterInput) (*models.PublicUser, error) {
	var out struct {
		User models.PublicUser `json:"user"`
	}
	if err := c.do(c.http.Post(c.url("/api/register")).JSON(in), &out); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Login authenticates a customer. The returned token is not stored.
func (c *Client) Login(email, password string) (*LoginResult, error) {
	var out LoginResult
	in := models.LoginInput{Email: email, Password: password}
	if err := c.do(c.http.Post(c.url("/api/login-user")).JSON(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Recover requests the simulated password recovery.
func (c *Client) Recover(email string) (string, error) {
	var out messageResponse
	err := c.do(c.http.Post(c.url("/api/recover")).JSON(models.RecoverInput{Email: email}), &out)
	return out.Message, err
}

// AdminLogin authenticates the administrator and stores the token on the client.
func (c *Client) AdminLogin(username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	in := models.AdminLoginInput{Username: username, Password: password}
	if err := c.do(c.http.Post(c.url("/api/login-admin")).JSON(in), &out); err != nil {
		return "", err
	}
	c.token = out.Token
	return out.Token, nil
}

// AdminProducts lists every product with the dashboard statistics.
func (c *Client) AdminProducts() (*models.AdminProductList, error) {
	var out models.AdminProductList
	if err := c.do(c.http.Get(c.url("/api/admin/products")), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminProduct fetches one product.
func (c *Client) AdminProduct(id string) (*models.Product, error) {
	var out models.Product
	if err := c.do(c.http.Get(c.url("/api/admin/products/"+url.PathEscape(id))), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateProduct creates a product.
func (c *Client) CreateProduct(in models.ProductInput) (*models.Product, error) {
	var out models.Product
	if err := c.do(c.http.Post(c.url("/api/admin/products")).JSON(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProduct replaces a product.
func (c *Client) UpdateProduct(id string, in models.ProductInput) (*models.Product, error) {
	var out models.Product
	if err := c.do(c.http.Put(c.url("/api/admin/products/"+url.PathEscape(id))).JSON(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteProduct deletes a product.
func (c *Client) DeleteProduct(id string) error {
	return c.do(c.http.Delete(c.url("/api/admin/products/"+url.PathEscape(id))), nil)
}

// Users lists the registered users.
func (c *Client) Users() ([]models.User, error) {
	var users []models.User
	err := c.do(c.http.Get(c.url("/api/admin/users")), &users)
	return users, err
}

// RenameUser changes a user's name.
func (c *Client) RenameUser(id, name string) (*models.User, error) {
	var out models.User
	in := models.UserUpdateInput{Name: name}
	if err := c.do(c.http.Put(c.url("/api/admin/users/"+url.PathEscape(id))).JSON(in), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser deletes a user.
func (c *Client) DeleteUser(id string) error {
	return c.do(c.http.Delete(c.url("/api/admin/users/"+url.PathEscape(id))), nil)
}

func (c *Client) url(path string) string {
	return c.baseURL + path
}

// do sends the request and decodes a 2xx body into out. The agent is
// released by Bytes.
func (c *Client) do(a *fiber.Agent, out interface{}) error {
	if c.token != "" {
		a.Set(fiber.HeaderAuthorization, "Bearer "+c.token)
	}
	a.Set(fiber.HeaderAccept, fiber.MIMEApplicationJSON)
	a.Timeout(c.timeout)

	status, body, errs := a.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("request failed: %w", errors.Join(errs...))
	}

	if status < fiber.StatusOK || status >= fiber.StatusMultipleChoices {
		return decodeError(status, body)
	}
	if out == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func decodeError(status int, body []byte) error {
	var payload struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	apiErr := &APIError{Status: status}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		apiErr.Message = payload.Message
		apiErr.Fields = payload.Errors
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
		if apiErr.Message == "" {
			apiErr.Message = fiber.NewError(status).Message
		}
	}
	return apiErr
}
