package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
)

type Geo struct {
	CountryCode string  `json:"countryCode"`
	CountryName string  `json:"country"`
	Region      string  `json:"regionName"`
	City        string  `json:"city"`
	Timezone    string  `json:"timezone"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lon"`
}

type geoResponse struct {
	Geo
	Status  string `json:"status"`
	Message string `json:"message"`
}

// publicIP reports whether ip is worth looking up.
func publicIP(ip string) bool {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return false
	}

	return !(parsed.IsLoopback() || parsed.IsPrivate() || parsed.IsUnspecified() || parsed.IsLinkLocalUnicast())
}

// LookupGeo asks an ip-api style endpoint (baseURL + ip) where ip is.
func LookupGeo(ctx context.Context, client *http.Client, baseURL, ip string) (*Geo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/"+ip, nil)
	if err != nil {
		return nil, err
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geo lookup: unexpected status %d", resp.StatusCode)
	}

	var body geoResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("geo lookup: %w", err)
	}

	if body.Status != "success" {
		return nil, fmt.Errorf("geo lookup: status %q: %s", body.Status, body.Message)
	}

	return &body.Geo, nil
}
