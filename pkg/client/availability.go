package client

import (
	"fmt"
	"net/url"
)

// AvailabilityClient talks to the availability service. The notifier uses it
// to confirm a slot is actually free before pinging the waiting list.
type AvailabilityClient struct {
	httpClient *HttpClient
}

func NewAvailabilityClient(baseURL string) *AvailabilityClient {
	return &AvailabilityClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *AvailabilityClient) GetDayGrid(clubID, courtID, date string) (*Response, error) {
	q := url.Values{}
	q.Set("date", date)
	path := fmt.Sprintf("/api/v1/clubs/%s/courts/%s/availability?%s",
		url.PathEscape(clubID), url.PathEscape(courtID), q.Encode())
	return c.httpClient.GET(path)
}

func (c *AvailabilityClient) GetQuote(clubID, courtID, date, startTime string) (*Response, error) {
	q := url.Values{}
	q.Set("date", date)
	q.Set("start_time", startTime)
	path := fmt.Sprintf("/api/v1/clubs/%s/courts/%s/quote?%s",
		url.PathEscape(clubID), url.PathEscape(courtID), q.Encode())
	return c.httpClient.GET(path)
}
