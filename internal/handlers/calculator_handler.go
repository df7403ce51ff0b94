package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stwalsh4118/estate/api/internal/calculator"
	apierrors "github.com/stwalsh4118/estate/api/internal/errors"
	"github.com/stwalsh4118/estate/api/internal/models"
	"github.com/stwalsh4118/estate/api/internal/services"
)

var registerJSONNames sync.Once

// useJSONFieldNames makes binding errors report the JSON name of a field rather than
// the Go struct field name.
func useJSONFieldNames() {
	registerJSONNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "" || name == "-" {
				return f.Name
			}
			return name
		})
	})
}

// CalculatorHandler serves the investment calculators.
type CalculatorHandler struct {
	service services.CalculatorService
}

// NewCalculatorHandler creates a new CalculatorHandler instance.
func NewCalculatorHandler(service services.CalculatorService) *CalculatorHandler {
	useJSONFieldNames()
	return &CalculatorHandler{
		service: service,
	}
}

// ROIRequest is the body of POST /api/v1/calculators/roi.
// Pointers distinguish a missing field from an explicit zero.
type ROIRequest struct {
	PropertyPrice         *float64 `json:"propertyPrice" binding:"required"`
	DownPayment           *float64 `json:"downPayment" binding:"required"`
	MonthlyRentalIncome   *float64 `json:"monthlyRentalIncome" binding:"required"`
	AnnualAppreciationPct *float64 `json:"annualAppreciationPct" binding:"required"`
	HoldingPeriodYears    *float64 `json:"holdingPeriodYears" binding:"required"`
}

// MortgageRequest is the body of the mortgage endpoints.
type MortgageRequest struct {
	LoanAmount            *float64 `json:"loanAmount" binding:"required"`
	AnnualInterestRatePct *float64 `json:"annualInterestRatePct" binding:"required"`
	TermYears             *float64 `json:"termYears" binding:"required"`
}

// YieldRequest is the body of POST /api/v1/calculators/rental-yield.
// Expenses are optional and default to zero.
type YieldRequest struct {
	PropertyValue  *float64 `json:"propertyValue" binding:"required"`
	MonthlyRent    *float64 `json:"monthlyRent" binding:"required"`
	AnnualExpenses float64  `json:"annualExpenses"`
}

// ROI handles POST /api/v1/calculators/roi.
func (h *CalculatorHandler) ROI(c *gin.Context) {
	var req ROIRequest
	if !bindBody(c, &req) {
		return
	}

	result, err := h.service.ROI(c.Request.Context(), calculator.ROIInput{
		PropertyPrice:         *req.PropertyPrice,
		DownPayment:           *req.DownPayment,
		MonthlyRentalIncome:   *req.MonthlyRentalIncome,
		AnnualAppreciationPct: *req.AnnualAppreciationPct,
		HoldingPeriodYears:    *req.HoldingPeriodYears,
	})
	respondCalculation(c, result, err)
}

// Mortgage handles POST /api/v1/calculators/mortgage.
func (h *CalculatorHandler) Mortgage(c *gin.Context) {
	var req MortgageRequest
	if !bindBody(c, &req) {
		return
	}

	result, err := h.service.Mortgage(c.Request.Context(), req.input())
	respondCalculation(c, result, err)
}

// MortgageSchedule handles POST /api/v1/calculators/mortgage/schedule.
func (h *CalculatorHandler) MortgageSchedule(c *gin.Context) {
	var req MortgageRequest
	if !bindBody(c, &req) {
		return
	}

	result, err := h.service.MortgageSchedule(c.Request.Context(), req.input())
	respondCalculation(c, result, err)
}

// RentalYield handles POST /api/v1/calculators/rental-yield.
func (h *CalculatorHandler) RentalYield(c *gin.Context) {
	var req YieldRequest
	if !bindBody(c, &req) {
		return
	}

	result, err := h.service.RentalYield(c.Request.Context(), calculator.YieldInput{
		PropertyValue:  *req.PropertyValue,
		MonthlyRent:    *req.MonthlyRent,
		AnnualExpenses: req.AnnualExpenses,
	})
	respondCalculation(c, result, err)
}

func (r MortgageRequest) input() calculator.AmortizationInput {
	return calculator.AmortizationInput{
		LoanAmount:            *r.LoanAmount,
		AnnualInterestRatePct: *r.AnnualInterestRatePct,
		TermYears:             *r.TermYears,
	}
}

// bindBody decodes the JSON body into req and writes the error response on failure.
func bindBody(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		apierrors.ValidationError(c, validationErrors)
		return false
	}
	apierrors.BadRequest(c, "Request body must be a valid JSON object", nil)
	return false
}

func respondCalculation(c *gin.Context, result interface{}, err error) {
	if err != nil {
		var validationErr *models.ValidationError
		if errors.As(err, &validationErr) {
			apierrors.InvalidInput(c, validationErr)
			return
		}
		apierrors.InternalServerError(c, "Calculation failed", err)
		return
	}

	c.JSON(http.StatusOK, result)
}
