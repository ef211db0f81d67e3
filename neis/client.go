// Package neis fetches school meals from the NEIS open data hub.
package neis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/schoolmeal"
	"github.com/etnz/schoolmeal/date"
)

// Client is a schoolmeal.Fetcher backed by the NEIS meal service.
type Client struct {
	cfg  Config
	http *http.Client
}

// New returns a client for cfg. A nil httpClient uses a client with a 10s timeout.
func New(cfg Config, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &Client{cfg: cfg, http: httpClient}
}

// Config returns the client configuration.
func (c *Client) Config() Config { return c.cfg }

// URL returns the address queried for the meals served on a day.
func (c *Client) URL(on date.Date) string {
	q := url.Values{}
	q.Set("ATPT_OFCDC_SC_CODE", c.cfg.OfficeCode)
	q.Set("SD_SCHUL_CODE", c.cfg.SchoolCode)
	q.Set("Type", "json")
	q.Set("MLSV_YMD", on.Compact())
	if c.cfg.APIKey != "" {
		q.Set("KEY", c.cfg.APIKey)
	}
	return c.cfg.Endpoint + "?" + q.Encode()
}

// Meals returns the meals served on a day, in service order.
//
// Failures wrap schoolmeal.ErrNetwork, schoolmeal.ErrDecode, schoolmeal.ErrMissingField
// or schoolmeal.ErrNoData, except for service errors that are returned as a *ServiceError.
func (c *Client) Meals(ctx context.Context, on date.Date) (meals []schoolmeal.Meal, err error) {
	start := time.Now()
	defer func() { observe(start, err) }()

	body, err := c.get(ctx, c.URL(on))
	if err != nil {
		return nil, err
	}

	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return nil, fmt.Errorf("%w: %v", schoolmeal.ErrDecode, err)
	}
	if err := probe(jobj); err != nil {
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", schoolmeal.ErrDecode, err)
	}
	rows, err := resp.Rows()
	if err != nil {
		return nil, err
	}
	meals = make([]schoolmeal.Meal, 0, len(rows))
	for i, row := range rows {
		m, err := row.Meal(on)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		meals = append(meals, m)
	}
	return meals, nil
}

// probe reads the result codes. A failed call carries a top level RESULT object,
// a successful one carries it in the head of the first section.
func probe(jobj any) error {
	if code, ok := lookup(jobj, "$.RESULT.CODE"); ok {
		msg, _ := lookup(jobj, "$.RESULT.MESSAGE")
		return resultError(code, msg)
	}
	if code, ok := lookup(jobj, "$.mealServiceDietInfo[0].head[1].RESULT.CODE"); ok {
		msg, _ := lookup(jobj, "$.mealServiceDietInfo[0].head[1].RESULT.MESSAGE")
		return resultError(code, msg)
	}
	return nil
}

// lookup returns the string at path, if any.
func lookup(jobj any, path string) (string, bool) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return "", false
	}
	// jsonpath may wrap a single answer in a list.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	s, ok := jval.(string)
	return s, ok
}

// get performs an HTTP GET and returns the body of a 200 response.
func (c *Client) get(ctx context.Context, addr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", schoolmeal.ErrNetwork, err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", schoolmeal.ErrNetwork, err)
	}
	defer resp.Body.Close()
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: cannot http GET %v%v: %v", schoolmeal.ErrNetwork, req.URL.Host, req.URL.Path, resp.Status)
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, resp.Body); err != nil {
		return nil, fmt.Errorf("%w: %v", schoolmeal.ErrNetwork, err)
	}
	return buf.Bytes(), nil
}
