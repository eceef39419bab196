package busapi

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/Busmate-Lk/busmatectl/pkg/session"
)

func TestClient_FindBuses(t *testing.T) {
	// Mock JSON response with one record per data tier
	mockJSON := `{
		"fromStop": {"id": "stop-001", "name": "Colombo Fort", "city": "Colombo"},
		"toStop": {"id": "stop-042", "name": "Kandy", "city": "Kandy"},
		"results": [
			{
				"tripId": "trip-9",
				"routeNumber": "1",
				"actualDepartureTime": "2026-09-01T06:30:00",
				"actualArrivalTime": "2026-09-01T09:45:00"
			},
			{
				"scheduleId": "sch-4",
				"routeNumber": "1",
				"scheduledDepartureTime": "2026-09-01T07:00:00"
			},
			{
				"routeId": "route-1",
				"routeNumber": "1",
				"departureTimeAtOrigin": "08:15:00",
				"estimatedDurationMinutes": 195
			}
		]
	}`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/passenger/find-my-bus" {
			t.Errorf("expected find-my-bus path, got %s", r.URL.Path)
		}
		if r.URL.Query().Get("fromStopId") != "stop-001" {
			t.Errorf("expected fromStopId stop-001, got %s", r.URL.Query().Get("fromStopId"))
		}
		if r.URL.Query().Get("toStopId") != "stop-042" {
			t.Errorf("expected toStopId stop-042, got %s", r.URL.Query().Get("toStopId"))
		}
		if r.URL.Query().Get("travelDate") != "2026-09-01" {
			t.Errorf("expected travelDate 2026-09-01, got %s", r.URL.Query().Get("travelDate"))
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(mockJSON))
	}))
	defer server.Close()

	// Temporarily override the unexported global baseURL string
	originalBaseURL := baseURL
	baseURL = server.URL
	defer func() { baseURL = originalBaseURL }()

	client := NewClient(nil)

	travelDate := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	resp, err := client.FindBuses("stop-001", "stop-042", travelDate)
	if err != nil {
		t.Fatalf("unexpected error fetching mocked bus results: %v", err)
	}

	if resp.FromStop == nil || resp.FromStop.Name != "Colombo Fort" {
		t.Errorf("expected resolved fromStop 'Colombo Fort', got %+v", resp.FromStop)
	}
	if len(resp.Results) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(resp.Results))
	}

	first := resp.Results[0]
	if first.TripID == nil || *first.TripID != "trip-9" {
		t.Errorf("expected first candidate tripId trip-9, got %+v", first.TripID)
	}
	if first.ActualDepartureTime == nil {
		t.Errorf("expected actualDepartureTime populated on first candidate")
	}

	last := resp.Results[2]
	if last.TripID != nil || last.ScheduleID != nil {
		t.Errorf("expected static candidate without trip/schedule id, got %+v", last)
	}
	if last.DepartureTimeAtOrigin == nil || *last.DepartureTimeAtOrigin != "08:15:00" {
		t.Errorf("expected bare clock departure on static candidate, got %+v", last.DepartureTimeAtOrigin)
	}
}

func TestClient_SearchStops_SendsQuery(t *testing.T) {
	// Point the disk cache at a scratch home so it never short-circuits the server
	tempDir, err := os.MkdirTemp("", "busmatectl-client-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("searchText") != "kandy" {
			t.Errorf("expected searchText 'kandy', got %s", r.URL.Query().Get("searchText"))
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"content": [{"id": "stop-042", "name": "Kandy", "city": "Kandy"}], "totalElements": 1}`))
	}))
	defer server.Close()

	originalBaseURL := baseURL
	baseURL = server.URL
	defer func() { baseURL = originalBaseURL }()

	client := NewClient(nil)

	stops, err := client.SearchStops("kandy")
	if err != nil {
		t.Fatalf("unexpected error searching stops: %v", err)
	}
	if len(stops) != 1 || stops[0].ID != "stop-042" {
		t.Fatalf("expected single Kandy stop, got %+v", stops)
	}
}

func TestClient_AttachesSessionToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("expected bearer token header, got %q", r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id": "trip-9"}`))
	}))
	defer server.Close()

	originalBaseURL := baseURL
	baseURL = server.URL
	defer func() { baseURL = originalBaseURL }()

	client := NewClient(&session.Session{Token: "test-token"})

	if _, err := client.GetTrip("trip-9"); err != nil {
		t.Fatalf("unexpected error fetching trip: %v", err)
	}
}

func TestClient_GetWithRetries_Success(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			// Simulate a transient gateway failure twice
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	client := NewClient(nil)

	resp, err := client.getWithRetries(server.URL)
	if err != nil {
		t.Fatalf("expected retry to succeed on 3rd attempt, got error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected status 200 OK, got %d", resp.StatusCode)
	}
	if attempts != 3 {
		t.Errorf("expected exactly 3 attempts, got %d", attempts)
	}
}

func TestClient_GetWithRetries_Fail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(nil)

	_, err := client.getWithRetries(server.URL)
	if err == nil {
		t.Fatalf("expected retry to completely fail after 3 attempts, but got nil error")
	}
}

func TestClient_NonOKStatusIsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	originalBaseURL := baseURL
	baseURL = server.URL
	defer func() { baseURL = originalBaseURL }()

	client := NewClient(nil)

	if _, err := client.GetRoute("missing-route"); err == nil {
		t.Fatalf("expected error for 404 route detail, got nil")
	}
}
