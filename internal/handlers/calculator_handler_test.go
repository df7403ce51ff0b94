package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/estate/api/internal/calculator"
	apierrors "github.com/stwalsh4118/estate/api/internal/errors"
	"github.com/stwalsh4118/estate/api/internal/logger"
	"github.com/stwalsh4118/estate/api/internal/metrics"
	"github.com/stwalsh4118/estate/api/internal/services"
)

func setupCalculatorRouter() *gin.Engine {
	handler := NewCalculatorHandler(services.NewCalculatorService(metrics.NewNop(), logger.Nop()))

	router := setupTestRouter()
	calculators := router.Group("/api/v1/calculators")
	calculators.POST("/roi", handler.ROI)
	calculators.POST("/mortgage", handler.Mortgage)
	calculators.POST("/mortgage/schedule", handler.MortgageSchedule)
	calculators.POST("/rental-yield", handler.RentalYield)
	return router
}

func post(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCalculatorHandler_ROI(t *testing.T) {
	router := setupCalculatorRouter()

	w := post(router, "/api/v1/calculators/roi", `{
		"propertyPrice": 1500000,
		"downPayment": 300000,
		"monthlyRentalIncome": 8000,
		"annualAppreciationPct": 5,
		"holdingPeriodYears": 5
	}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result calculator.ROIResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 96000.0, result.AnnualRentalIncome)
	assert.InDelta(t, 198.14078125, result.ROIPct, 1e-9)
	assert.InDelta(t, 39.62815625, result.AnnualizedROIPct, 1e-9)
}

func TestCalculatorHandler_ROI_ExplicitZeroIsAccepted(t *testing.T) {
	router := setupCalculatorRouter()

	w := post(router, "/api/v1/calculators/roi", `{
		"propertyPrice": 1000000,
		"downPayment": 200000,
		"monthlyRentalIncome": 0,
		"annualAppreciationPct": 0,
		"holdingPeriodYears": 1
	}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result calculator.ROIResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, -100.0, result.ROIPct)
}

func TestCalculatorHandler_Mortgage(t *testing.T) {
	router := setupCalculatorRouter()

	w := post(router, "/api/v1/calculators/mortgage", `{"loanAmount":1200000,"annualInterestRatePct":3.5,"termYears":25}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result calculator.AmortizationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, 300, result.Months)
	assert.InDelta(t, 6007.4828, result.MonthlyPayment, 1e-3)
}

func TestCalculatorHandler_MortgageSchedule(t *testing.T) {
	router := setupCalculatorRouter()

	w := post(router, "/api/v1/calculators/mortgage/schedule", `{"loanAmount":12000,"annualInterestRatePct":0,"termYears":1}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result struct {
		Installments []struct {
			Month   int    `json:"month"`
			Payment string `json:"payment"`
			Balance string `json:"balance"`
		} `json:"installments"`
		TotalInterest string `json:"totalInterest"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Installments, 12)
	assert.Equal(t, "1000", result.Installments[0].Payment)
	assert.Equal(t, "0", result.Installments[11].Balance)
	assert.Equal(t, "0", result.TotalInterest)
}

func TestCalculatorHandler_RentalYield(t *testing.T) {
	router := setupCalculatorRouter()

	// annualExpenses is optional
	w := post(router, "/api/v1/calculators/rental-yield", `{"propertyValue":1000000,"monthlyRent":6000}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var result calculator.YieldResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.InDelta(t, 7.2, result.GrossYieldPct, 1e-9)
	assert.InDelta(t, 7.2, result.NetYieldPct, 1e-9)
}

func TestCalculatorHandler_Errors(t *testing.T) {
	router := setupCalculatorRouter()

	tests := []struct {
		name        string
		path        string
		body        string
		wantCode    string
		wantDetails map[string]interface{}
	}{
		{
			name:     "malformed json",
			path:     "/api/v1/calculators/roi",
			body:     `{"propertyPrice":`,
			wantCode: apierrors.ErrBadRequest,
		},
		{
			name:     "wrong type",
			path:     "/api/v1/calculators/mortgage",
			body:     `{"loanAmount":"lots","annualInterestRatePct":3,"termYears":10}`,
			wantCode: apierrors.ErrBadRequest,
		},
		{
			name:     "missing field reported by json name",
			path:     "/api/v1/calculators/mortgage",
			body:     `{"loanAmount":100000,"annualInterestRatePct":3}`,
			wantCode: apierrors.ErrValidation,
			wantDetails: map[string]interface{}{
				"termYears": "This field is required",
			},
		},
		{
			name:     "zero down payment",
			path:     "/api/v1/calculators/roi",
			body:     `{"propertyPrice":1000000,"downPayment":0,"monthlyRentalIncome":5000,"annualAppreciationPct":3,"holdingPeriodYears":5}`,
			wantCode: apierrors.ErrInvalidInput,
			wantDetails: map[string]interface{}{
				"field":  "downPayment",
				"reason": "must be > 0",
			},
		},
		{
			name:     "partial month term",
			path:     "/api/v1/calculators/mortgage/schedule",
			body:     `{"loanAmount":100000,"annualInterestRatePct":3,"termYears":2.01}`,
			wantCode: apierrors.ErrInvalidInput,
			wantDetails: map[string]interface{}{
				"field":  "termYears",
				"reason": "must cover a whole number of months",
			},
		},
		{
			name:     "zero property value",
			path:     "/api/v1/calculators/rental-yield",
			body:     `{"propertyValue":0,"monthlyRent":5000}`,
			wantCode: apierrors.ErrInvalidInput,
			wantDetails: map[string]interface{}{
				"field":  "propertyValue",
				"reason": "must be > 0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(router, tt.path, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var response apierrors.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
			assert.Equal(t, tt.wantCode, response.Error.Code)
			if tt.wantDetails != nil {
				assert.Equal(t, tt.wantDetails, response.Error.Details)
			}
		})
	}
}
