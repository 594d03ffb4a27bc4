// Package analytics records calculation submissions with request metadata.
// Recording is best-effort: failures are logged and never reach the caller.
package analytics

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/gommon/log"

	"github.com/AnnaCarter465/tax-footprint/database"
)

const (
	geoTimeout   = 5 * time.Second
	writeTimeout = 10 * time.Second
)

type IDB interface {
	InsertSubmission(ctx context.Context, s database.Submission) (string, error)
}

// Request is the metadata taken from the HTTP request.
type Request struct {
	IP             string
	UserAgent      string
	Referrer       string
	AcceptLanguage string
	SessionID      string
}

// Outcome is what the calculation produced.
type Outcome struct {
	GrossIncome   float64
	Total         float64
	EffectiveRate float64
	Inputs        interface{}
	Results       interface{}
}

type Logger struct {
	db      IDB
	client  *http.Client
	geoURL  string
	enabled bool

	wg sync.WaitGroup
}

// NewLogger returns a logger that writes to db. With enabled false, Log is
// a no-op. An empty geoURL skips geo lookups.
func NewLogger(db IDB, geoURL string, enabled bool) *Logger {
	return &Logger{
		db:      db,
		client:  &http.Client{Timeout: geoTimeout},
		geoURL:  geoURL,
		enabled: enabled,
	}
}

func (l *Logger) Enabled() bool {
	return l != nil && l.enabled
}

// Log records the submission in the background.
func (l *Logger) Log(req Request, out Outcome) {
	if !l.Enabled() {
		return
	}

	l.wg.Add(1)

	go func() {
		defer l.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		id, err := l.db.InsertSubmission(ctx, l.build(ctx, req, out))
		if err != nil {
			log.Errorf("failed to log submission: %v", err)
			return
		}

		log.Debugf("logged submission %s", id)
	}()
}

// Wait blocks until every pending Log has finished.
func (l *Logger) Wait() {
	if l == nil {
		return
	}
	l.wg.Wait()
}

func (l *Logger) build(ctx context.Context, req Request, out Outcome) database.Submission {
	s := database.Submission{
		FormData: marshal(out.Inputs),
		Results:  marshal(out.Results),
	}

	if out.GrossIncome > 0 {
		s.AnnualSalary = &out.GrossIncome
	}
	if out.Total > 0 {
		s.TotalToGovt = &out.Total
	}
	if out.EffectiveRate > 0 {
		s.EffectiveRate = &out.EffectiveRate
	}

	if req.IP != "" {
		s.IPHash = str(HashIP(req.IP))

		if l.geoURL != "" && publicIP(req.IP) {
			geo, err := LookupGeo(ctx, l.client, l.geoURL, req.IP)
			if err != nil {
				log.Warnf("failed to get geo data: %v", err)
			} else {
				s.CountryCode = str(geo.CountryCode)
				s.CountryName = str(geo.CountryName)
				s.Region = str(geo.Region)
				s.City = str(geo.City)
				s.Timezone = str(geo.Timezone)
				s.Latitude = &geo.Latitude
				s.Longitude = &geo.Longitude
			}
		}
	}

	if req.UserAgent != "" {
		ua := ParseUserAgent(req.UserAgent)
		s.UserAgent = str(truncate(req.UserAgent, 500))
		s.Browser = str(ua.Browser)
		s.OS = str(ua.OS)
		s.DeviceType = str(ua.DeviceType)
	}

	if req.Referrer != "" {
		ref := ParseReferrer(req.Referrer)
		s.Referrer = str(truncate(req.Referrer, 500))
		s.ReferrerDomain = str(ref.Domain)
		s.UTMSource = str(ref.UTMSource)
		s.UTMMedium = str(ref.UTMMedium)
		s.UTMCampaign = str(ref.UTMCampaign)
		s.UTMTerm = str(ref.UTMTerm)
		s.UTMContent = str(ref.UTMContent)
	}

	if req.SessionID != "" {
		id := ValidSessionID(req.SessionID)
		if id == "" {
			log.Warnf("invalid session id %q, dropping it", truncate(req.SessionID, 64))
		}
		s.SessionID = str(id)
	}

	if req.AcceptLanguage != "" {
		s.Language = str(truncate(PrimaryLanguage(req.AcceptLanguage), 20))
		s.Languages = str(truncate(req.AcceptLanguage, 200))
	}

	return s
}

func marshal(v interface{}) string {
	if v == nil {
		return "{}"
	}

	b, err := json.Marshal(v)
	if err != nil {
		log.Warnf("failed to encode submission payload: %v", err)
		return "{}"
	}

	return string(b)
}

// str maps "" to nil.
func str(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
