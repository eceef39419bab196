package busapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Busmate-Lk/busmatectl/pkg/session"
)

var baseURL = "https://api.busmate.lk"

// Client interacts with the Busmate passenger REST API
type Client struct {
	httpClient *http.Client
	sess       *session.Session
}

// NewClient builds a client with the given session. A nil session is fine
// for read-only search endpoints.
func NewClient(sess *session.Session) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		sess:       sess,
	}
}

// getWithRetries attempts an HTTP GET request up to 3 times for 502/503/504/timeout errors
func (c *Client) getWithRetries(reqURL string) (*http.Response, error) {
	var lastErr error
	var resp *http.Response

	for attempt := 0; attempt < 3; attempt++ {
		req, err := http.NewRequest("GET", reqURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("User-Agent", "busmatectl/1.0 (https://github.com/Busmate-Lk/busmatectl)")
		c.sess.Authorize(req)

		resp, lastErr = c.httpClient.Do(req)

		// A transient gateway status is worth retrying just like a transport error
		if lastErr == nil && (resp.StatusCode == 502 || resp.StatusCode == 503 || resp.StatusCode == 504) {
			resp.Body.Close()
			lastErr = fmt.Errorf("transient status code: %d", resp.StatusCode)
		} else if lastErr == nil {
			return resp, nil
		}

		time.Sleep(time.Duration(attempt+1) * time.Second)
	}

	return nil, fmt.Errorf("failed after 3 attempts: %v", lastErr)
}

// getJSON runs a GET with retries and decodes the body into out
func (c *Client) getJSON(reqURL string, out any) error {
	resp, err := c.getWithRetries(reqURL)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}

	return nil
}

// SearchStops looks up stops matching a free-text query. Results are cached
// on disk briefly since stop names rarely change between CLI runs.
func (c *Client) SearchStops(query string) ([]StopSummary, error) {
	if cached, ok := readStopCache(query); ok {
		return cached, nil
	}

	reqURL := fmt.Sprintf("%s/api/passenger/stops/search?searchText=%s&page=0&size=8",
		baseURL, url.QueryEscape(query))

	var searchResp StopSearchResponse
	if err := c.getJSON(reqURL, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to search stops: %w", err)
	}

	writeStopCache(query, searchResp.Content)
	return searchResp.Content, nil
}

// FindBuses runs the aggregated passenger search, returning candidates from
// all three data tiers in one round trip.
func (c *Client) FindBuses(fromStopID, toStopID string, travelDate time.Time) (*FindMyBusResponse, error) {
	reqURL := fmt.Sprintf("%s/api/passenger/find-my-bus?fromStopId=%s&toStopId=%s&travelDate=%s",
		baseURL, url.QueryEscape(fromStopID), url.QueryEscape(toStopID), travelDate.Format("2006-01-02"))

	var findResp FindMyBusResponse
	if err := c.getJSON(reqURL, &findResp); err != nil {
		return nil, fmt.Errorf("failed to find buses: %w", err)
	}

	return &findResp, nil
}

// SearchTrips queries the trip-tier endpoint directly
func (c *Client) SearchTrips(fromStopID, toStopID string, travelDate time.Time, status string) ([]TripSummary, error) {
	reqURL := fmt.Sprintf("%s/api/passenger/trips/search?fromStopId=%s&toStopId=%s&travelDate=%s&page=0&size=20",
		baseURL, url.QueryEscape(fromStopID), url.QueryEscape(toStopID), travelDate.Format("2006-01-02"))
	if status != "" {
		reqURL += "&status=" + url.QueryEscape(status)
	}

	var searchResp TripSearchResponse
	if err := c.getJSON(reqURL, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to search trips: %w", err)
	}

	return searchResp.Content, nil
}

// GetTrip fetches the full trip detail including intermediate stops
func (c *Client) GetTrip(tripID string) (*TripDetail, error) {
	reqURL := fmt.Sprintf("%s/api/passenger/trips/%s", baseURL, url.PathEscape(tripID))

	var trip TripDetail
	if err := c.getJSON(reqURL, &trip); err != nil {
		return nil, fmt.Errorf("failed to fetch trip %s: %w", tripID, err)
	}

	return &trip, nil
}

// GetRoute fetches the route detail, the fallback source of stop sequences
// and operating days when no live trip exists.
func (c *Client) GetRoute(routeID string) (*RouteDetail, error) {
	reqURL := fmt.Sprintf("%s/api/passenger/routes/%s", baseURL, url.PathEscape(routeID))

	var route RouteDetail
	if err := c.getJSON(reqURL, &route); err != nil {
		return nil, fmt.Errorf("failed to fetch route %s: %w", routeID, err)
	}

	return &route, nil
}
