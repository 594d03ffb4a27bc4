package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/AnnaCarter465/tax-footprint/database"
	"github.com/AnnaCarter465/tax-footprint/tax"
)

type RateEditorMock struct {
	mock.Mock
}

func (o *RateEditorMock) Raw() ([]byte, error) {
	args := o.Called()
	return args.Get(0).([]byte), args.Error(1)
}

func (o *RateEditorMock) Replace(content []byte) (*tax.RateTable, error) {
	args := o.Called(content)
	return args.Get(0).(*tax.RateTable), args.Error(1)
}

type StatsDBMock struct {
	mock.Mock
}

func (o *StatsDBMock) SubmissionStats(ctx context.Context) (database.SubmissionStats, error) {
	args := o.Called(ctx)
	return args.Get(0).(database.SubmissionStats), args.Error(1)
}

type MockSetting struct {
	Args    []interface{}
	Returns []interface{}
}

func TestAdminGetRates(t *testing.T) {
	type TC struct {
		enabled  bool
		mockRaw  *MockSetting
		wantCode int
		wantBody string
	}

	tcs := []TC{
		{
			enabled: true,
			mockRaw: &MockSetting{
				Returns: []interface{}{[]byte("tax_year: \"2024/25\"\n"), nil},
			},
			wantCode: http.StatusOK,
			wantBody: "tax_year: \"2024/25\"\n",
		},
		{
			enabled:  false,
			wantCode: http.StatusForbidden,
		},
		{
			enabled: true,
			mockRaw: &MockSetting{
				Returns: []interface{}{[]byte(nil), errors.New("an error")},
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for i, tc := range tcs {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			ratesmock := new(RateEditorMock)

			if tc.mockRaw != nil {
				ratesmock.On("Raw", tc.mockRaw.Args...).Return(tc.mockRaw.Returns...)
			}

			h := NewAdminHandler(ratesmock, nil, tc.enabled)

			req := httptest.NewRequest(http.MethodGet, "/admin/rates", nil)
			rec := httptest.NewRecorder()

			e := echo.New()

			err := h.GetRates(e.NewContext(req, rec))

			assert.NoError(t, err)
			assert.Equal(t, tc.wantCode, rec.Code)

			if tc.wantBody != "" {
				assert.Equal(t, tc.wantBody, rec.Body.String())
				assert.Equal(t, "application/x-yaml", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestAdminUpdateRates(t *testing.T) {
	content := "tax_year: \"2025/26\"\nvat_rate: 0.15\n"

	type TC struct {
		enabled     bool
		reqbody     string
		contentType string
		mockReplace *MockSetting
		want        *AdminRatesResponse
		wantCode    int
		errresp     *ResponseMsg
	}

	tcs := []TC{
		{
			enabled:     true,
			reqbody:     content,
			contentType: "application/x-yaml",
			mockReplace: &MockSetting{
				Args:    []interface{}{[]byte(content)},
				Returns: []interface{}{&tax.RateTable{TaxYear: "2025/26"}, nil},
			},
			want: &AdminRatesResponse{
				Message: "Tax rates updated",
				TaxYear: "2025/26",
			},
			wantCode: http.StatusOK,
		},
		{
			enabled:     true,
			reqbody:     `{"rates_yaml": "tax_year: \"2025/26\"\nvat_rate: 0.15\n"}`,
			contentType: "application/json",
			mockReplace: &MockSetting{
				Args:    []interface{}{[]byte(content)},
				Returns: []interface{}{&tax.RateTable{TaxYear: "2025/26"}, nil},
			},
			want: &AdminRatesResponse{
				Message: "Tax rates updated",
				TaxYear: "2025/26",
			},
			wantCode: http.StatusOK,
		},
		{
			enabled:     false,
			reqbody:     content,
			contentType: "application/x-yaml",
			wantCode:    http.StatusForbidden,
			errresp: &ResponseMsg{
				Message: "Admin interface is disabled",
			},
		},
		{
			enabled:     true,
			reqbody:     "   \n",
			contentType: "application/x-yaml",
			wantCode:    http.StatusBadRequest,
			errresp: &ResponseMsg{
				Message: "No rates content provided",
			},
		},
		{
			enabled:     true,
			reqbody:     `{"rates_yaml": 42`,
			contentType: "application/json",
			wantCode:    http.StatusBadRequest,
			errresp: &ResponseMsg{
				Message: "Bad request",
			},
		},
		{
			enabled:     true,
			reqbody:     content,
			contentType: "application/x-yaml",
			mockReplace: &MockSetting{
				Args: []interface{}{[]byte(content)},
				Returns: []interface{}{
					(*tax.RateTable)(nil),
					&tax.ConfigurationError{Field: "uif_monthly_cap", Reason: "missing required field"},
				},
			},
			wantCode: http.StatusBadRequest,
			errresp: &ResponseMsg{
				Message: "Validation failed: rate configuration: uif_monthly_cap: missing required field",
			},
		},
		{
			enabled:     true,
			reqbody:     content,
			contentType: "application/x-yaml",
			mockReplace: &MockSetting{
				Args:    []interface{}{[]byte(content)},
				Returns: []interface{}{(*tax.RateTable)(nil), errors.New("disk full")},
			},
			wantCode: http.StatusInternalServerError,
			errresp: &ResponseMsg{
				Message: "Failed to update tax rates",
			},
		},
	}

	for i, tc := range tcs {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			ratesmock := new(RateEditorMock)

			if tc.mockReplace != nil {
				ratesmock.On(
					"Replace",
					tc.mockReplace.Args...,
				).Return(tc.mockReplace.Returns...)
			}

			h := NewAdminHandler(ratesmock, nil, tc.enabled)

			req := httptest.NewRequest(http.MethodPut, "/admin/rates", strings.NewReader(tc.reqbody))
			req.Header.Set("Content-Type", tc.contentType)
			rec := httptest.NewRecorder()

			e := echo.New()

			goterr := h.UpdateRates(e.NewContext(req, rec))

			assert.NoError(t, goterr)

			if tc.errresp != nil {
				assertErrResp(t, rec, tc.wantCode, *tc.errresp)
				return
			}

			var got AdminRatesResponse

			err := json.Unmarshal(rec.Body.Bytes(), &got)
			assert.NoError(t, err)

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, *tc.want, got)

			ratesmock.AssertExpectations(t)
		})
	}
}

func TestAdminUpdateRatesRejectsBadSyntax(t *testing.T) {
	ratesmock := new(RateEditorMock)

	h := NewAdminHandler(ratesmock, nil, true)

	req := httptest.NewRequest(http.MethodPut, "/admin/rates", strings.NewReader("vat_rate: [0.15\n"))
	req.Header.Set("Content-Type", "application/x-yaml")
	rec := httptest.NewRecorder()

	e := echo.New()

	err := h.UpdateRates(e.NewContext(req, rec))

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid YAML syntax")
	ratesmock.AssertNotCalled(t, "Replace", mock.Anything)
}

func TestAdminGetStats(t *testing.T) {
	type TC struct {
		withDB    bool
		mockStats *MockSetting
		want      *database.SubmissionStats
		wantCode  int
		errresp   *ResponseMsg
	}

	tcs := []TC{
		{
			withDB: true,
			mockStats: &MockSetting{
				Args: []interface{}{mock.Anything},
				Returns: []interface{}{
					database.SubmissionStats{TotalSubmissions: 12, AverageEffectiveRate: 18.5},
					nil,
				},
			},
			want:     &database.SubmissionStats{TotalSubmissions: 12, AverageEffectiveRate: 18.5},
			wantCode: http.StatusOK,
		},
		{
			withDB:   false,
			wantCode: http.StatusNotFound,
			errresp: &ResponseMsg{
				Message: "Submission logging is disabled",
			},
		},
		{
			withDB: true,
			mockStats: &MockSetting{
				Args:    []interface{}{mock.Anything},
				Returns: []interface{}{database.SubmissionStats{}, errors.New("an error")},
			},
			wantCode: http.StatusInternalServerError,
			errresp: &ResponseMsg{
				Message: "Failed to load submission stats",
			},
		},
	}

	for i, tc := range tcs {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			var h *AdminHandler

			if tc.withDB {
				dbmock := new(StatsDBMock)
				dbmock.On("SubmissionStats", tc.mockStats.Args...).Return(tc.mockStats.Returns...)
				h = NewAdminHandler(new(RateEditorMock), dbmock, true)
			} else {
				h = NewAdminHandler(new(RateEditorMock), nil, true)
			}

			req := httptest.NewRequest(http.MethodGet, "/admin/stats", nil)
			rec := httptest.NewRecorder()

			e := echo.New()

			goterr := h.GetStats(e.NewContext(req, rec))

			assert.NoError(t, goterr)

			if tc.errresp != nil {
				assertErrResp(t, rec, tc.wantCode, *tc.errresp)
				return
			}

			var got database.SubmissionStats

			err := json.Unmarshal(rec.Body.Bytes(), &got)
			assert.NoError(t, err)

			assert.Equal(t, tc.wantCode, rec.Code)
			assert.Equal(t, *tc.want, got)
		})
	}
}
