package merge

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PayrollRunLister is the outbound port for the Merge HRIS
// employee-payroll-runs collection. One call returns one page; the caller
// drives pagination with the cursor from the previous page.
type PayrollRunLister interface {
	ListEmployeePayrollRuns(ctx context.Context, q RunQuery, cursor string) (RunPage, error)
}

// RunQuery is the fixed part of a payroll-run listing. The zero EndedAfter
// and EndedBefore values omit the server-side date filters.
type RunQuery struct {
	EmployeeID  string
	EndedAfter  time.Time
	EndedBefore time.Time
}

// RunPage is one page of the paginated collection. An empty Next cursor
// signals the end of results.
type RunPage struct {
	Results []PayrollRun `json:"results"`
	Next    string       `json:"next"`
}

// PayrollRun is a single payroll-run record as exposed by the upstream.
// Nullable upstream fields stay pointers so absent and zero are distinct.
type PayrollRun struct {
	ID        string           `json:"id"`
	NetPay    *decimal.Decimal `json:"net_pay"`
	CheckDate *string          `json:"check_date"`
	Earnings  []Earning        `json:"earnings"`
}

// Earning is one earning line of a payroll run. Type carries the upstream
// earning code.
type Earning struct {
	Type   string           `json:"type"`
	Amount *decimal.Decimal `json:"amount"`
}
