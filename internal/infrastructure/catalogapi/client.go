// Package catalogapi — HTTP-клиент API каталога, через который работает редактор товара.
package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/DRSN-tech/product-admin/internal/delivery/v1/http/converter"
	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/DRSN-tech/product-admin/internal/editor"
	"github.com/DRSN-tech/product-admin/pkg/e"
	"github.com/DRSN-tech/product-admin/pkg/jitter"
	"github.com/DRSN-tech/product-admin/pkg/logger"
)

const (
	categoriesPath = "/api/categories"
	uploadPath     = "/api/upload"
	productsPath   = "/api/products"

	maxErrorBody = 64 << 10
)

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int // только для GET-запросов
	RetryBase  time.Duration
	RetryMax   time.Duration
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = 15 * time.Second
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 3
	}
	if c.RetryBase <= 0 {
		c.RetryBase = 200 * time.Millisecond
	}
	if c.RetryMax <= 0 {
		c.RetryMax = 5 * time.Second
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	return c
}

// Client реализует editor.CatalogAPI поверх HTTP.
type Client struct {
	cfg    Config
	http   *http.Client
	logger logger.Logger
}

var _ editor.CatalogAPI = (*Client)(nil)

func NewClient(cfg Config, log logger.Logger) *Client {
	cfg = cfg.withDefaults()
	if log == nil {
		log = logger.Nop{}
	}
	return &Client{
		cfg:    cfg,
		http:   &http.Client{Timeout: cfg.Timeout},
		logger: log,
	}
}

// Categories возвращает все категории. Временные сбои повторяются с экспоненциальной задержкой.
func (c *Client) Categories(ctx context.Context) ([]domain.Category, error) {
	const op = "Client.Categories"

	var out []converter.CategoryJSON
	err := c.withRetry(ctx, op, func() error {
		return c.do(ctx, op, http.MethodGet, categoriesPath, nil, "", &out)
	})
	if err != nil {
		return nil, err
	}

	return converter.ToDomainCategories(out), nil
}

// Product загружает один товар, чтобы открыть его в редакторе.
func (c *Client) Product(ctx context.Context, id string) (*domain.Product, error) {
	const op = "Client.Product"

	var out converter.ProductJSON
	path := productsPath + "?id=" + url.QueryEscape(id)
	err := c.withRetry(ctx, op, func() error {
		return c.do(ctx, op, http.MethodGet, path, nil, "", &out)
	})
	if err != nil {
		return nil, err
	}

	p, err := converter.ToDomainProduct(&out)
	if err != nil {
		return nil, e.NewNetworkError(op, http.StatusOK, fmt.Errorf("malformed product document: %w", err))
	}
	if out.CreatedAt != nil {
		p.CreatedAt = *out.CreatedAt
	}
	p.UpdatedAt = out.UpdatedAt

	return p, nil
}

// UploadImages отправляет все файлы одним multipart-запросом в поле file.
// Ссылки возвращаются в порядке ответа сервера.
func (c *Client) UploadImages(ctx context.Context, files []editor.File) ([]string, error) {
	const op = "Client.UploadImages"

	body, contentType, err := encodeFiles(files)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var out converter.UploadResponse
	if err := c.do(ctx, op, http.MethodPost, uploadPath, bytes.NewReader(body), contentType, &out); err != nil {
		return nil, err
	}

	return out.Links, nil
}

// CreateProduct создаёт товар. _id в тело не попадает.
func (c *Client) CreateProduct(ctx context.Context, product *domain.Product) error {
	const op = "Client.CreateProduct"

	doc := converter.FromDomainProduct(product)
	doc.ID = ""
	doc.CreatedAt, doc.UpdatedAt = nil, nil

	return c.sendJSON(ctx, op, http.MethodPost, doc)
}

// UpdateProduct обновляет товар, _id передаётся в теле запроса.
func (c *Client) UpdateProduct(ctx context.Context, product *domain.Product) error {
	const op = "Client.UpdateProduct"

	if product.ID == "" {
		return e.NewValidationError("_id", e.ErrMissingID.Error())
	}

	doc := converter.FromDomainProduct(product)
	doc.CreatedAt, doc.UpdatedAt = nil, nil

	err := c.sendJSON(ctx, op, http.MethodPut, doc)
	var nf *e.NotFoundError
	if errors.As(err, &nf) && nf.ID == "" {
		nf.ID = product.ID
	}

	return err
}

func (c *Client) sendJSON(ctx context.Context, op, method string, doc converter.ProductJSON) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return e.Wrap(op, err)
	}
	return c.do(ctx, op, method, productsPath, bytes.NewReader(data), "application/json", nil)
}

// withRetry повторяет идемпотентный запрос, пока ошибка допускает повтор.
func (c *Client) withRetry(ctx context.Context, op string, call func() error) error {
	var err error
	for attempt := 0; attempt < c.cfg.MaxRetries; attempt++ {
		err = call()
		if err == nil || !e.IsRetryable(err) || ctx.Err() != nil {
			return err
		}
		if attempt == c.cfg.MaxRetries-1 {
			break
		}

		sleepTime := jitter.ExponentialBackoff(c.cfg.RetryBase, c.cfg.RetryMax, attempt, jitter.DefaultJitter)
		c.logger.Warnf("%s failed, retrying in %v (attempt %d): %v", op, sleepTime, attempt+1, err)
		if sleepErr := jitter.Sleep(ctx, sleepTime); sleepErr != nil {
			return e.NewNetworkError(op, 0, sleepErr)
		}
	}

	return err
}

// do выполняет запрос и переводит ответ в типизированные ошибки:
// 400, 413, 415 -> ValidationError, 404 -> NotFoundError, остальное -> NetworkError.
func (c *Client) do(ctx context.Context, op, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, body)
	if err != nil {
		return e.Wrap(op, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return e.NewNetworkError(op, 0, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			_, _ = io.Copy(io.Discard, resp.Body)
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return e.NewNetworkError(op, resp.StatusCode, fmt.Errorf("decode response: %w", err))
		}
		return nil
	}

	apiErr := readError(resp)
	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return e.NewValidationError(apiErr.Field, apiErr.Message)
	case http.StatusNotFound:
		return e.NewNotFoundError(resourceOf(path), queryID(path))
	default:
		return e.NewNetworkError(op, resp.StatusCode, errors.New(apiErr.Message))
	}
}

func readError(resp *http.Response) converter.ErrorResponse {
	var apiErr converter.ErrorResponse
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(data, &apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = strings.TrimSpace(string(data))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
	}
	return apiErr
}

func encodeFiles(files []editor.File) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, f := range files {
		ct := f.ContentType
		if ct == "" {
			ct = http.DetectContentType(f.Data[:min(len(f.Data), 512)])
		}

		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, f.Name))
		h.Set("Content-Type", ct)

		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, "", err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), mw.FormDataContentType(), nil
}

func resourceOf(path string) string {
	switch {
	case strings.HasPrefix(path, productsPath):
		return "product"
	case strings.HasPrefix(path, categoriesPath):
		return "categories"
	default:
		return strings.TrimPrefix(path, "/api/")
	}
}

func queryID(path string) string {
	_, query, ok := strings.Cut(path, "?")
	if !ok {
		return ""
	}
	values, err := url.ParseQuery(query)
	if err != nil {
		return ""
	}
	return values.Get("id")
}
