package database

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewDB("sqlite3://" + filepath.Join(t.TempDir(), "tax.db"))
	require.NoError(t, err)

	t.Cleanup(func() { db.Close() })

	require.NoError(t, db.Migrate())

	return db
}

func strPtr(s string) *string {
	return &s
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestMigrateTwice(t *testing.T) {
	db := openTestDB(t)

	assert.NoError(t, db.Migrate())
	assert.NoError(t, db.Ping(context.Background()))
}

func TestScenarioRoundTrip(t *testing.T) {
	type TC struct {
		label   *string
		inputs  string
		outputs string
	}

	tcs := []TC{
		{
			label:   strPtr("Salary only"),
			inputs:  `{"personal":{"annual_salary":240000}}`,
			outputs: `{"total":28322.44}`,
		},
		{
			label:   nil,
			inputs:  `{}`,
			outputs: `{"total":0}`,
		},
	}

	db := openTestDB(t)
	ctx := context.Background()

	for i, tc := range tcs {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			created, err := db.CreateScenario(ctx, tc.label, tc.inputs, tc.outputs)
			require.NoError(t, err)

			_, err = uuid.Parse(created.ID)
			assert.NoError(t, err)

			got, err := db.FindScenarioByID(ctx, created.ID)
			require.NoError(t, err)

			assert.Equal(t, created.ID, got.ID)
			assert.True(t, created.CreatedAt.Equal(got.CreatedAt), "%v != %v", created.CreatedAt, got.CreatedAt)
			assert.Equal(t, tc.label, got.Label)
			assert.Equal(t, tc.inputs, got.Inputs)
			assert.Equal(t, tc.outputs, got.Outputs)
		})
	}
}

func TestFindScenarioByIDNotFound(t *testing.T) {
	db := openTestDB(t)

	_, err := db.FindScenarioByID(context.Background(), uuid.NewString())

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInsertSubmission(t *testing.T) {
	type TC struct {
		submission      Submission
		wantCountryCode *string
		wantUserAgent   *string
		wantLatitude    *float64
	}

	tcs := []TC{
		{
			submission: Submission{
				FormData: `{}`,
				Results:  `{}`,
			},
		},
		{
			submission: Submission{
				AnnualSalary:  floatPtr(240_000),
				TotalToGovt:   floatPtr(28_322.44),
				EffectiveRate: floatPtr(11.8),
				FormData:      `{"personal":{"annual_salary":240000}}`,
				Results:       `{"total":28322.44}`,
				IPHash:        strPtr("ab12"),
				CountryCode:   strPtr("ZA"),
				Latitude:      floatPtr(-33.92),
				Longitude:     floatPtr(18.42),
				UserAgent:     strPtr("Mozilla/5.0 Firefox/120.0"),
				Browser:       strPtr("Firefox"),
				SessionID:     strPtr(uuid.NewString()),
				Language:      strPtr("en-ZA"),
			},
			wantCountryCode: strPtr("ZA"),
			wantUserAgent:   strPtr("Mozilla/5.0 Firefox/120.0"),
			wantLatitude:    floatPtr(-33.92),
		},
	}

	db := openTestDB(t)
	ctx := context.Background()

	for i, tc := range tcs {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			id, err := db.InsertSubmission(ctx, tc.submission)
			require.NoError(t, err)

			_, err = uuid.Parse(id)
			assert.NoError(t, err)

			var (
				countryCode *string
				userAgent   *string
				latitude    *float64
			)

			err = db.GetSQLDB().QueryRowContext(
				ctx,
				`SELECT country_code, user_agent, latitude FROM submissions WHERE id = $1`,
				id,
			).Scan(&countryCode, &userAgent, &latitude)
			require.NoError(t, err)

			assert.Equal(t, tc.wantCountryCode, countryCode)
			assert.Equal(t, tc.wantUserAgent, userAgent)
			assert.Equal(t, tc.wantLatitude, latitude)
		})
	}
}

func TestSubmissionStats(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	stats, err := db.SubmissionStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, SubmissionStats{}, stats)

	for _, rate := range []*float64{floatPtr(10), floatPtr(20), nil} {
		_, err := db.InsertSubmission(ctx, Submission{EffectiveRate: rate, FormData: `{}`, Results: `{}`})
		require.NoError(t, err)
	}

	stats, err = db.SubmissionStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.TotalSubmissions)
	assert.InDelta(t, 15, stats.AverageEffectiveRate, 1e-9)
}
