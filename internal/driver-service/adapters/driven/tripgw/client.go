package tripgw

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"driver-service/internal/config"
	"driver-service/internal/driver-service/core/domain/model"
	"driver-service/internal/driver-service/core/myerrors"
	"driver-service/internal/driver-service/core/ports/driven"
	"driver-service/internal/mylogger"
)

// Client talks to the Trip Service over HTTP. Calls that get a response with
// an error status return *myerrors.GatewayError with that status and body;
// calls that get no response at all (timeout, refused connection) return one
// with only the transport cause set.
type Client struct {
	baseURL string
	client  *http.Client
	log     mylogger.Logger
}

var _ driven.ITripGateway = (*Client)(nil)

func New(cfg *config.TripServiceconfig, log mylogger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
		log: log,
	}
}

func (c *Client) AvailableTrips(ctx context.Context) ([]model.Trip, error) {
	data, err := c.doRequest(ctx, http.MethodGet, "/v1/trips/available", nil)
	if err != nil {
		return nil, err
	}
	return decodeTrips(data)
}

func (c *Client) TripsByDriver(ctx context.Context, driverID string) ([]model.Trip, error) {
	path := fmt.Sprintf("/v1/trips/driver/%s", url.PathEscape(driverID))
	data, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	return decodeTrips(data)
}

func (c *Client) AcceptTrip(ctx context.Context, tripID, driverID string) (json.RawMessage, error) {
	path := fmt.Sprintf("/v1/trips/%s/accept", url.PathEscape(tripID))
	body := struct {
		DriverID string `json:"driver_id"`
	}{DriverID: driverID}
	return c.doRequest(ctx, http.MethodPost, path, body)
}

func (c *Client) CancelTrip(ctx context.Context, tripID string) (json.RawMessage, error) {
	path := fmt.Sprintf("/v1/trips/%s/cancel", url.PathEscape(tripID))
	return c.doRequest(ctx, http.MethodPatch, path, nil)
}

func (c *Client) EndTrip(ctx context.Context, tripID string, distance float64) (json.RawMessage, error) {
	path := fmt.Sprintf("/v1/trips/%s/end", url.PathEscape(tripID))
	body := struct {
		Distance float64 `json:"distance"`
	}{Distance: distance}
	return c.doRequest(ctx, http.MethodPost, path, body)
}

func (c *Client) doRequest(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &myerrors.GatewayError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &myerrors.GatewayError{Err: fmt.Errorf("reading response: %w", err)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		c.log.Warn("trip service rejected request",
			"method", method, "path", path, "status", resp.StatusCode)
		return nil, &myerrors.GatewayError{Status: resp.StatusCode, Body: data}
	}

	return data, nil
}

func decodeTrips(data json.RawMessage) ([]model.Trip, error) {
	var payload struct {
		Trips []model.Trip `json:"trips"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, &myerrors.GatewayError{Err: fmt.Errorf("decoding trips: %w", err)}
	}
	return payload.Trips, nil
}
