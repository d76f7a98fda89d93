package core

import "github.com/shopspring/decimal"

func init() {
	// Monetary amounts go over the wire as JSON numbers, not quoted
	// strings; downstream consumers parse them as numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// EarningDetail is the running total for one distinct earning code within
// a fiscal year.
type EarningDetail struct {
	Code   string          `json:"earning_code"`
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// FiscalYearEarnings is the working accumulator for a single period fetch.
// It is created empty, mutated in place while paging, and never mutated
// after it is returned.
type FiscalYearEarnings struct {
	Year               int
	NetPay             decimal.Decimal
	TotalGrossEarnings decimal.Decimal
	EarningsByType     map[string]*EarningDetail
	EarningsByCategory map[string]decimal.Decimal
}

func NewFiscalYearEarnings(year int) *FiscalYearEarnings {
	return &FiscalYearEarnings{
		Year:               year,
		EarningsByType:     make(map[string]*EarningDetail),
		EarningsByCategory: make(map[string]decimal.Decimal),
	}
}

// FiscalYearResult is the serializable form of one fiscal year's earnings.
type FiscalYearResult struct {
	StartDate          string                     `json:"start_date"`
	EndDate            string                     `json:"end_date"`
	Year               int                        `json:"year"`
	NetPay             decimal.Decimal            `json:"net_pay"`
	TotalGrossEarnings decimal.Decimal            `json:"total_gross_earnings"`
	EarningsByType     map[string]EarningDetail   `json:"earnings_by_type"`
	EarningsByCategory map[string]decimal.Decimal `json:"earnings_by_category"`
}

// SummaryResult pairs the current and prior fiscal-year results. It is the
// sole output of a summary run.
type SummaryResult struct {
	CurrentFY FiscalYearResult `json:"current_fy"`
	LastFY    FiscalYearResult `json:"last_fy"`
}

// Result flattens the accumulator into its serializable form for the given
// window.
func (e *FiscalYearEarnings) Result(window FiscalYear) FiscalYearResult {
	byType := make(map[string]EarningDetail, len(e.EarningsByType))
	for code, detail := range e.EarningsByType {
		byType[code] = *detail
	}
	return FiscalYearResult{
		StartDate:          window.Start.Format(DateLayout),
		EndDate:            window.End.Format(DateLayout),
		Year:               e.Year,
		NetPay:             e.NetPay,
		TotalGrossEarnings: e.TotalGrossEarnings,
		EarningsByType:     byType,
		EarningsByCategory: e.EarningsByCategory,
	}
}
