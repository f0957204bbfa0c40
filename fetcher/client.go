package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hotel-catalog/models"
	"hotel-catalog/utils"
)

// CatalogSource yields the raw catalog of one kind.
type CatalogSource interface {
	FetchCatalog(ctx context.Context, kind models.Kind) ([]*models.RawItem, error)
}

// AvailabilitySource yields availability records of one kind for a window.
type AvailabilitySource interface {
	FetchAvailability(ctx context.Context, kind models.Kind, start, end time.Time) ([]*models.AvailabilityRecord, error)
}

// catalogPaths maps each kind to its collection endpoint on the hotel API.
var catalogPaths = map[models.Kind]string{
	models.KindRoom:  "/rooms",
	models.KindSpa:   "/spa/services",
	models.KindEvent: "/events",
	models.KindHall:  "/meeting-halls",
}

// HTTPError is returned for non-2xx responses.
type HTTPError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("GET %s: status %d: %s", e.URL, e.StatusCode, e.Body)
}

// Client reads catalogs and availability from the hotel REST API.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *utils.Logger
}

// NewClient creates a Client. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client, logger *utils.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}
}

// FetchCatalog implements CatalogSource.
func (c *Client) FetchCatalog(ctx context.Context, kind models.Kind) ([]*models.RawItem, error) {
	path, ok := catalogPaths[kind]
	if !ok {
		return nil, fmt.Errorf("fetcher: no endpoint for kind %q", kind)
	}

	elems, err := c.getList(ctx, c.baseURL+path)
	if err != nil {
		return nil, fmt.Errorf("fetcher: %s catalog: %w", kind, err)
	}

	items := make([]*models.RawItem, 0, len(elems))
	for i, elem := range elems {
		var dto itemDTO
		if err := json.Unmarshal(elem, &dto); err != nil {
			c.logger.Warn("[fetcher] Skipping %s record %d: %v", kind, i, err)
			continue
		}
		items = append(items, dto.toRaw(kind, c.logger))
	}
	c.logger.Info("[fetcher] Fetched %d %s items", len(items), kind)
	return items, nil
}

// FetchAvailability implements AvailabilitySource. Records with unreadable
// dates are skipped with a warning; unreadable counts become 0.
func (c *Client) FetchAvailability(ctx context.Context, kind models.Kind, start, end time.Time) ([]*models.AvailabilityRecord, error) {
	q := url.Values{}
	q.Set("start", models.FormatDay(start))
	q.Set("end", models.FormatDay(end))
	endpoint := fmt.Sprintf("%s/availability/%s?%s", c.baseURL, kind, q.Encode())

	elems, err := c.getList(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("fetcher: %s availability: %w", kind, err)
	}

	records := make([]*models.AvailabilityRecord, 0, len(elems))
	for i, elem := range elems {
		var d availabilityDTO
		if err := json.Unmarshal(elem, &d); err != nil {
			c.logger.Warn("[fetcher] Skipping %s availability record %d: %v", kind, i, err)
			continue
		}
		date, err := models.ParseDay(rawText(d.Date))
		if err != nil {
			c.logger.Warn("[fetcher] Skipping availability for %s: %v", rawText(d.ServiceID), err)
			continue
		}
		available, ok := rawNumber(d.Available)
		if !ok && len(d.Available) > 0 {
			c.logger.Warn("[fetcher] Unreadable count %s for %s, using 0", string(d.Available), rawText(d.ServiceID))
		}
		if available < 0 {
			available = 0
		}
		records = append(records, &models.AvailabilityRecord{
			ServiceID: rawText(d.ServiceID),
			Date:      date,
			Available: int(available),
		})
	}
	c.logger.Debug("[fetcher] Fetched %d %s availability records", len(records), kind)
	return records, nil
}

// getList fetches either a bare JSON array or a {"data": [...]} envelope and
// returns its elements undecoded, so one bad record cannot fail the rest.
func (c *Client) getList(ctx context.Context, endpoint string) ([]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{URL: endpoint, StatusCode: resp.StatusCode, Body: snippet(body)}
	}

	body = bytes.TrimSpace(body)
	if len(body) > 0 && body[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("decode envelope: %w", err)
		}
		body = bytes.TrimSpace(env.Data)
	}
	if len(body) == 0 || string(body) == "null" {
		return nil, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(body, &elems); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return elems, nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

// itemDTO holds every field undecoded. Sources disagree on types, so each
// field is read leniently in toRaw.
type itemDTO struct {
	ID           json.RawMessage `json:"id"`
	MongoID      json.RawMessage `json:"_id"`
	Name         json.RawMessage `json:"name"`
	Title        json.RawMessage `json:"title"`
	Description  json.RawMessage `json:"description"`
	Capacity     json.RawMessage `json:"capacity"`
	MaxOccupancy json.RawMessage `json:"maxOccupancy"`
	Price        json.RawMessage `json:"price"`
	Discount     json.RawMessage `json:"discount"`
	Category     json.RawMessage `json:"category"`
	Type         json.RawMessage `json:"type"`
	Specialist   json.RawMessage `json:"specialist"`
	Images       json.RawMessage `json:"images"`
	Image        json.RawMessage `json:"image"`
}

func (d *itemDTO) toRaw(kind models.Kind, logger *utils.Logger) *models.RawItem {
	raw := &models.RawItem{
		ID:          firstNonEmpty(rawText(d.ID), rawText(d.MongoID)),
		Kind:        kind,
		Name:        firstNonEmpty(rawText(d.Name), rawText(d.Title)),
		Description: rawText(d.Description),
		Capacity:    firstNonEmpty(rawText(d.Capacity), rawText(d.MaxOccupancy)),
		Price:       rawText(d.Price),
		Category:    firstNonEmpty(refID(d.Category), refID(d.Type)),
		Specialist:  refID(d.Specialist),
		Images:      rawStrings(d.Images),
	}
	if len(raw.Images) == 0 {
		raw.Images = rawStrings(d.Image)
	}

	disc, err := rawDiscount(d.Discount)
	if err != nil {
		logger.Warn("[fetcher] Ignoring discount on %s %s: %v", kind, raw.ID, err)
	}
	raw.Discount = disc
	return raw
}

type availabilityDTO struct {
	ServiceID json.RawMessage `json:"serviceId"`
	Date      json.RawMessage `json:"date"`
	Available json.RawMessage `json:"available"`
}

type discountDTO struct {
	Active         json.RawMessage `json:"active"`
	PublishWebsite json.RawMessage `json:"publishWebsite"`
	Type           json.RawMessage `json:"type"`
	Value          json.RawMessage `json:"value"`
	Name           json.RawMessage `json:"name"`
}

// rawDiscount reads a discount whose flags and value may arrive as strings.
// An unreadable value drops the discount.
func rawDiscount(m json.RawMessage) (*models.Discount, error) {
	m = bytes.TrimSpace(m)
	if len(m) == 0 || string(m) == "null" {
		return nil, nil
	}
	var d discountDTO
	if err := json.Unmarshal(m, &d); err != nil {
		return nil, err
	}
	value, ok := rawNumber(d.Value)
	if !ok {
		return nil, fmt.Errorf("unreadable value %s", string(d.Value))
	}
	return &models.Discount{
		Active:         rawBool(d.Active),
		PublishWebsite: rawBool(d.PublishWebsite),
		Type:           models.DiscountType(rawText(d.Type)),
		Value:          value,
		Name:           rawText(d.Name),
	}, nil
}

// rawNumber reads a number sent either bare or quoted, ignoring a trailing %.
func rawNumber(m json.RawMessage) (float64, bool) {
	s := strings.TrimSuffix(strings.TrimSpace(rawText(m)), "%")
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f, err == nil
}

func rawBool(m json.RawMessage) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(rawText(m)))
	return err == nil && b
}

// rawStrings reads a list of strings or a single string. Non-string
// entries are dropped.
func rawStrings(m json.RawMessage) []string {
	m = bytes.TrimSpace(m)
	if len(m) == 0 {
		return nil
	}
	if m[0] != '[' {
		if s := rawText(m); s != "" && m[0] == '"' {
			return []string{s}
		}
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(m, &elems); err != nil {
		return nil
	}
	var out []string
	for _, e := range elems {
		e = bytes.TrimSpace(e)
		if len(e) > 0 && e[0] == '"' {
			out = append(out, rawText(e))
		}
	}
	return out
}

// rawText renders a JSON scalar as plain text: strings are unquoted, numbers
// keep their literal form so large ids survive, null and absent become "".
func rawText(m json.RawMessage) string {
	m = bytes.TrimSpace(m)
	if len(m) == 0 || string(m) == "null" {
		return ""
	}
	if m[0] == '"' {
		var s string
		if err := json.Unmarshal(m, &s); err == nil {
			return s
		}
	}
	return string(m)
}

// refID reads a reference that is either a bare id or a populated
// {"_id": ..., "name": ...} object.
func refID(m json.RawMessage) string {
	m = bytes.TrimSpace(m)
	if len(m) > 0 && m[0] == '{' {
		var obj struct {
			ID      json.RawMessage `json:"id"`
			MongoID json.RawMessage `json:"_id"`
		}
		if err := json.Unmarshal(m, &obj); err == nil {
			return firstNonEmpty(rawText(obj.ID), rawText(obj.MongoID))
		}
		return ""
	}
	return rawText(m)
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
