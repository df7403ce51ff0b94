package calculator

// YieldInput holds the figures for a rental yield estimate.
type YieldInput struct {
	PropertyValue  float64 `json:"propertyValue"`
	MonthlyRent    float64 `json:"monthlyRent"`
	AnnualExpenses float64 `json:"annualExpenses"`
}

// YieldResult holds gross and net yields as percentages of the property value.
// NetAnnualRent and NetYieldPct are negative when expenses exceed rent.
type YieldResult struct {
	AnnualRent    float64 `json:"annualRent"`
	NetAnnualRent float64 `json:"netAnnualRent"`
	GrossYieldPct float64 `json:"grossYieldPct"`
	NetYieldPct   float64 `json:"netYieldPct"`
}

// Validate reports the first violated precondition of in.
func (in YieldInput) Validate() error {
	var c check
	c.positive("propertyValue", in.PropertyValue)
	c.nonNegative("monthlyRent", in.MonthlyRent)
	c.nonNegative("annualExpenses", in.AnnualExpenses)
	return c.result()
}

// ComputeRentalYield returns annual rent over property value, gross and net of expenses.
func ComputeRentalYield(in YieldInput) (YieldResult, error) {
	if err := in.Validate(); err != nil {
		return YieldResult{}, err
	}

	annualRent := in.MonthlyRent * 12
	net := annualRent - in.AnnualExpenses
	gross := annualRent / in.PropertyValue * 100
	netPct := net / in.PropertyValue * 100
	if err := representable(annualRent, net, gross, netPct); err != nil {
		return YieldResult{}, err
	}

	return YieldResult{
		AnnualRent:    annualRent,
		NetAnnualRent: net,
		GrossYieldPct: gross,
		NetYieldPct:   netPct,
	}, nil
}
