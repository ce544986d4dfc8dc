// Package returns projects one-period returns for the instruments the
// advisor can allocate to.
package returns

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInput is returned when a calculator receives a principal, rate or
// period it cannot project.
var ErrInvalidInput = errors.New("invalid input")

const (
	DefaultYears  = 1.0
	DefaultMonths = 12
)

// Result is the projection of a lump-sum deposit.
type Result struct {
	Principal   float64 `json:"principal"`
	Rate        float64 `json:"rate"`
	FutureValue float64 `json:"future_value"`
	ROIPercent  float64 `json:"roi_percent"`
	Profit      float64 `json:"profit"`
}

// SIPResult is the projection of a recurring monthly contribution.
type SIPResult struct {
	MonthlyAmount float64 `json:"monthly_amount"`
	TotalInvested float64 `json:"total_invested"`
	AnnualRate    float64 `json:"annual_rate"`
	FutureValue   float64 `json:"future_value"`
	ROIPercent    float64 `json:"roi_percent"`
	Profit        float64 `json:"profit"`
}

// FixedDeposit compounds principal annually for the given number of years.
func FixedDeposit(principal, ratePercent, years float64) (Result, error) {
	if err := validate(principal, ratePercent, years); err != nil {
		return Result{}, err
	}
	fv := principal * math.Pow(1+ratePercent/100, years)
	return lumpSum(principal, ratePercent, fv), nil
}

// BankSavings compounds principal monthly, or annually when monthlyCompound
// is false.
func BankSavings(principal, ratePercent, years float64, monthlyCompound bool) (Result, error) {
	if err := validate(principal, ratePercent, years); err != nil {
		return Result{}, err
	}
	if !monthlyCompound {
		return FixedDeposit(principal, ratePercent, years)
	}
	monthlyRate := ratePercent / 12 / 100
	fv := principal * math.Pow(1+monthlyRate, 12*years)
	return lumpSum(principal, ratePercent, fv), nil
}

// SIP projects the future value of an annuity due: monthlyAmount is paid at
// the start of each of the given months.
func SIP(monthlyAmount, annualRatePercent float64, months int) (SIPResult, error) {
	if months <= 0 {
		return SIPResult{}, fmt.Errorf("%w: months must be positive, got %d", ErrInvalidInput, months)
	}
	if err := validate(monthlyAmount, annualRatePercent, 1); err != nil {
		return SIPResult{}, err
	}

	monthlyRate := annualRatePercent / 12 / 100
	n := float64(months)
	var fv float64
	if monthlyRate == 0 {
		fv = monthlyAmount * n
	} else {
		fv = monthlyAmount * ((math.Pow(1+monthlyRate, n) - 1) / monthlyRate) * (1 + monthlyRate)
	}
	invested := monthlyAmount * n

	return SIPResult{
		MonthlyAmount: monthlyAmount,
		TotalInvested: invested,
		AnnualRate:    annualRatePercent,
		FutureValue:   fv,
		ROIPercent:    (fv - invested) / invested * 100,
		Profit:        fv - invested,
	}, nil
}

// MetalROI is the percentage change from baseline to current. A zero baseline
// yields 0.
func MetalROI(current, baseline float64) float64 {
	if baseline == 0 {
		return 0
	}
	return (current - baseline) / baseline * 100
}

func lumpSum(principal, rate, fv float64) Result {
	return Result{
		Principal:   principal,
		Rate:        rate,
		FutureValue: fv,
		ROIPercent:  (fv - principal) / principal * 100,
		Profit:      fv - principal,
	}
}

// validate rejects inputs that would make the ROI undefined or meaningless.
func validate(amount, rate, period float64) error {
	switch {
	case !finite(amount) || !finite(rate) || !finite(period):
		return fmt.Errorf("%w: non-finite value", ErrInvalidInput)
	case amount <= 0:
		return fmt.Errorf("%w: amount must be positive, got %v", ErrInvalidInput, amount)
	case rate < 0:
		return fmt.Errorf("%w: rate must not be negative, got %v", ErrInvalidInput, rate)
	case period <= 0:
		return fmt.Errorf("%w: period must be positive, got %v", ErrInvalidInput, period)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
