package database

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Submission is one logged calculation with request metadata. Optional
// fields are nil when unknown.
type Submission struct {
	ID        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	AnnualSalary  *float64 `db:"annual_salary"`
	TotalToGovt   *float64 `db:"total_to_govt"`
	EffectiveRate *float64 `db:"effective_rate"`
	FormData      string   `db:"form_data"` // JSON
	Results       string   `db:"results"`   // JSON

	IPHash      *string  `db:"ip_hash"`
	CountryCode *string  `db:"country_code"`
	CountryName *string  `db:"country_name"`
	Region      *string  `db:"region"`
	City        *string  `db:"city"`
	Timezone    *string  `db:"timezone"`
	Latitude    *float64 `db:"latitude"`
	Longitude   *float64 `db:"longitude"`

	UserAgent  *string `db:"user_agent"`
	Browser    *string `db:"browser"`
	OS         *string `db:"os"`
	DeviceType *string `db:"device_type"`

	Referrer       *string `db:"referrer"`
	ReferrerDomain *string `db:"referrer_domain"`
	UTMSource      *string `db:"utm_source"`
	UTMMedium      *string `db:"utm_medium"`
	UTMCampaign    *string `db:"utm_campaign"`
	UTMTerm        *string `db:"utm_term"`
	UTMContent     *string `db:"utm_content"`

	SessionID *string `db:"session_id"`
	Language  *string `db:"language"`
	Languages *string `db:"languages"`
}

// InsertSubmission stores s, filling in its id and timestamp when unset.
func (db *DB) InsertSubmission(ctx context.Context, s Submission) (string, error) {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}

	if s.CreatedAt.IsZero() {
		s.CreatedAt = now()
	}

	_, err := db.GetSQLDB().ExecContext(
		ctx,
		`
			INSERT INTO submissions (
				id, created_at, annual_salary, total_to_govt, effective_rate, form_data, results,
				ip_hash, country_code, country_name, region, city, timezone, latitude, longitude,
				user_agent, browser, os, device_type,
				referrer, referrer_domain, utm_source, utm_medium, utm_campaign, utm_term, utm_content,
				session_id, language, languages
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7,
				$8, $9, $10, $11, $12, $13, $14, $15,
				$16, $17, $18, $19,
				$20, $21, $22, $23, $24, $25, $26,
				$27, $28, $29
			)
		`,
		s.ID, s.CreatedAt, s.AnnualSalary, s.TotalToGovt, s.EffectiveRate, s.FormData, s.Results,
		s.IPHash, s.CountryCode, s.CountryName, s.Region, s.City, s.Timezone, s.Latitude, s.Longitude,
		s.UserAgent, s.Browser, s.OS, s.DeviceType,
		s.Referrer, s.ReferrerDomain, s.UTMSource, s.UTMMedium, s.UTMCampaign, s.UTMTerm, s.UTMContent,
		s.SessionID, s.Language, s.Languages,
	)
	if err != nil {
		return "", err
	}

	return s.ID, nil
}

type SubmissionStats struct {
	TotalSubmissions     int64   `json:"total_submissions"`
	AverageEffectiveRate float64 `json:"average_effective_rate"`
}

func (db *DB) SubmissionStats(ctx context.Context) (SubmissionStats, error) {
	var stats SubmissionStats

	err := db.GetSQLDB().QueryRowContext(
		ctx,
		`
			SELECT COUNT(*), COALESCE(AVG(effective_rate), 0) FROM submissions
		`,
	).Scan(&stats.TotalSubmissions, &stats.AverageEffectiveRate)
	if err != nil {
		return SubmissionStats{}, err
	}

	return stats, nil
}
