package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type busCandidate struct {
	TripID              *string `json:"tripId"`
	RouteNumber         *string `json:"routeNumber"`
	ActualDepartureTime *string `json:"actualDepartureTime"`
	ScheduledDeparture  *string `json:"scheduledDepartureTime"`
	DepartureAtOrigin   *string `json:"departureTimeAtOrigin"`
}

type findResponse struct {
	Results []busCandidate `json:"results"`
}

func main() {
	// Colombo Fort -> Kandy, the busiest intercity corridor
	url := "https://api.busmate.lk/api/passenger/find-my-bus?fromStopId=stop-001&toStopId=stop-042&travelDate=2026-09-01"

	fmt.Println("Fetching live bus data from the Busmate passenger API...")

	resp, err := http.Get(url)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	var res findResponse
	err = json.Unmarshal(body, &res)
	if err != nil {
		fmt.Println("Error decoding JSON:", err)
		return
	}

	fmt.Println("\n--- 🚌 Candidates: Colombo Fort -> Kandy ---")
	for _, c := range res.Results {
		route := "?"
		if c.RouteNumber != nil {
			route = *c.RouteNumber
		}

		tier := "STATIC"
		when := c.DepartureAtOrigin
		if c.ActualDepartureTime != nil {
			tier = "REALTIME"
			when = c.ActualDepartureTime
		} else if c.ScheduledDeparture != nil {
			tier = "SCHEDULE"
			when = c.ScheduledDeparture
		}

		clock := "N/A"
		if when != nil {
			clock = *when
		}

		fmt.Printf("[%s] Route %s (%s)\n", clock, route, tier)
	}
}
