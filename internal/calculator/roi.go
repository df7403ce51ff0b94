package calculator

import "math"

// ROIInput holds the figures for a buy-and-hold projection. Currency values share one base unit;
// percentages are plain numbers (5 means 5%).
type ROIInput struct {
	PropertyPrice         float64 `json:"propertyPrice"`
	DownPayment           float64 `json:"downPayment"`
	MonthlyRentalIncome   float64 `json:"monthlyRentalIncome"`
	AnnualAppreciationPct float64 `json:"annualAppreciationPct"`
	HoldingPeriodYears    float64 `json:"holdingPeriodYears"`
}

// ROIResult carries full-precision values; rounding for display is left to the caller.
type ROIResult struct {
	AnnualRentalIncome float64 `json:"annualRentalIncome"`
	TotalRentalIncome  float64 `json:"totalRentalIncome"`
	FutureValue        float64 `json:"futureValue"`
	CapitalGain        float64 `json:"capitalGain"`
	TotalReturn        float64 `json:"totalReturn"`
	ROIPct             float64 `json:"roiPct"`
	AnnualizedROIPct   float64 `json:"annualizedRoiPct"`
}

// Validate reports the first violated precondition of in.
func (in ROIInput) Validate() error {
	var c check
	c.positive("propertyPrice", in.PropertyPrice)
	c.positive("downPayment", in.DownPayment)
	c.nonNegative("monthlyRentalIncome", in.MonthlyRentalIncome)
	c.greaterThan("annualAppreciationPct", in.AnnualAppreciationPct, -100)
	c.atLeast("holdingPeriodYears", in.HoldingPeriodYears, 1)
	return c.result()
}

// ComputeROI projects rental income plus compounded appreciation over the holding period and
// expresses the gain relative to the down payment.
func ComputeROI(in ROIInput) (ROIResult, error) {
	if err := in.Validate(); err != nil {
		return ROIResult{}, err
	}

	annualRent := in.MonthlyRentalIncome * 12
	totalRent := annualRent * in.HoldingPeriodYears
	futureValue := in.PropertyPrice * math.Pow(1+in.AnnualAppreciationPct/100, in.HoldingPeriodYears)
	capitalGain := futureValue - in.PropertyPrice
	totalReturn := totalRent + capitalGain
	roi := (totalReturn - in.DownPayment) / in.DownPayment * 100
	if err := representable(futureValue, totalRent, roi); err != nil {
		return ROIResult{}, err
	}

	return ROIResult{
		AnnualRentalIncome: annualRent,
		TotalRentalIncome:  totalRent,
		FutureValue:        futureValue,
		CapitalGain:        capitalGain,
		TotalReturn:        totalReturn,
		ROIPct:             roi,
		AnnualizedROIPct:   roi / in.HoldingPeriodYears,
	}, nil
}
