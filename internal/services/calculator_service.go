package services

import (
	"context"
	"errors"
	"time"

	"github.com/stwalsh4118/estate/api/internal/calculator"
	"github.com/stwalsh4118/estate/api/internal/logger"
	"github.com/stwalsh4118/estate/api/internal/metrics"
	"github.com/stwalsh4118/estate/api/internal/models"
)

// Calculator names used in logs and metrics.
const (
	CalcROI              = "roi"
	CalcMortgage         = "mortgage"
	CalcMortgageSchedule = "mortgage_schedule"
	CalcRentalYield      = "rental_yield"
)

// CalculatorService exposes the investment calculators.
// Every method returns a *models.ValidationError for out-of-domain input.
type CalculatorService interface {
	ROI(ctx context.Context, in calculator.ROIInput) (calculator.ROIResult, error)
	Mortgage(ctx context.Context, in calculator.AmortizationInput) (calculator.AmortizationResult, error)
	MortgageSchedule(ctx context.Context, in calculator.AmortizationInput) (calculator.Schedule, error)
	RentalYield(ctx context.Context, in calculator.YieldInput) (calculator.YieldResult, error)
}

type calculatorService struct {
	metrics *metrics.Metrics
	log     *logger.Logger
}

// NewCalculatorService creates a new instance of CalculatorService.
func NewCalculatorService(m *metrics.Metrics, log *logger.Logger) CalculatorService {
	return &calculatorService{
		metrics: m,
		log:     log,
	}
}

func (s *calculatorService) ROI(_ context.Context, in calculator.ROIInput) (calculator.ROIResult, error) {
	return observe(s, CalcROI, in, calculator.ComputeROI)
}

func (s *calculatorService) Mortgage(_ context.Context, in calculator.AmortizationInput) (calculator.AmortizationResult, error) {
	return observe(s, CalcMortgage, in, calculator.ComputeAmortization)
}

func (s *calculatorService) MortgageSchedule(_ context.Context, in calculator.AmortizationInput) (calculator.Schedule, error) {
	return observe(s, CalcMortgageSchedule, in, calculator.AmortizationSchedule)
}

func (s *calculatorService) RentalYield(_ context.Context, in calculator.YieldInput) (calculator.YieldResult, error) {
	return observe(s, CalcRentalYield, in, calculator.ComputeRentalYield)
}

// observe runs one calculator and records its outcome.
func observe[I, O any](s *calculatorService, name string, in I, compute func(I) (O, error)) (O, error) {
	started := time.Now()

	out, err := compute(in)
	switch {
	case errors.Is(err, models.ErrInvalidInput):
		s.log.Debug("Calculator input rejected", logger.Fields{
			"calculator": name,
			"error":      err.Error(),
		})
		s.metrics.ObserveCalculator(name, metrics.OutcomeInvalid, started)
	case err != nil:
		s.log.Error("Calculator failed", err, logger.Fields{"calculator": name})
		s.metrics.ObserveCalculator(name, metrics.OutcomeError, started)
	default:
		s.metrics.ObserveCalculator(name, metrics.OutcomeOK, started)
	}

	return out, err
}
