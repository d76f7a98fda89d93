package payroll

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"paysum/internal/core"
	"paysum/internal/log"
	"paysum/internal/merge"
)

// The category map's own fallback entry. The key is a fixed convention of
// the category mapping files, not a configurable default.
const (
	categoryFallbackKey = "Other Allowances or Earnings"
	defaultCategory     = "Other Allowances"
)

var ErrPartialWindow = errors.New("fiscal year start and end must be given together")

// Service aggregates employee payroll runs into fiscal-year earnings
// summaries.
type Service struct {
	runs merge.PayrollRunLister
	log  *log.Logger
}

func NewService(runs merge.PayrollRunLister, logger *log.Logger) *Service {
	return &Service{
		runs: runs,
		log:  logger.WithComponent("payroll"),
	}
}

// SummaryRequest describes one summary run.
type SummaryRequest struct {
	EmployeeID string

	// Optional explicit current fiscal-year bounds. Both or neither;
	// when absent the window is the calendar year of the current UTC day.
	CurrentFYStart time.Time
	CurrentFYEnd   time.Time

	// UseCheckDateFiltering switches from server-side ended_after/
	// ended_before filters to in-memory filtering on each run's check
	// date.
	UseCheckDateFiltering bool

	// Mapping file names; empty values fall back to the defaults.
	EarningsMapFile string
	CategoryMapFile string
}

// Summarize fetches the current and prior fiscal-year windows concurrently
// and returns the combined result. Either fetch failing fails the whole
// operation; no partial result is returned.
func (s *Service) Summarize(ctx context.Context, req SummaryRequest) (core.SummaryResult, error) {
	currentFY, err := s.currentWindow(req)
	if err != nil {
		return core.SummaryResult{}, err
	}
	lastFY := currentFY.Previous()

	earningsMap, err := LoadMapping(mappingFile(req.EarningsMapFile, DefaultEarningsMapFile))
	if err != nil {
		return core.SummaryResult{}, err
	}
	categoryMap, err := LoadMapping(mappingFile(req.CategoryMapFile, DefaultCategoryMapFile))
	if err != nil {
		return core.SummaryResult{}, err
	}

	s.log.Debug("starting fiscal year fetches",
		"employee_id", req.EmployeeID,
		"current_fy", currentFY.Year(),
		"last_fy", lastFY.Year(),
		"check_date_filtering", req.UseCheckDateFiltering)

	fetch := fetchRequest{
		employeeID:            req.EmployeeID,
		earningsMap:           earningsMap,
		categoryMap:           categoryMap,
		useCheckDateFiltering: req.UseCheckDateFiltering,
	}

	// The two windows share no mutable state: each fetch owns its
	// accumulator and the mapping tables are read-only.
	var current, last *core.FiscalYearEarnings
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.fetchPeriod(gctx, currentFY, fetch)
		return err
	})
	g.Go(func() error {
		var err error
		last, err = s.fetchPeriod(gctx, lastFY, fetch)
		return err
	})
	if err := g.Wait(); err != nil {
		return core.SummaryResult{}, err
	}

	return core.SummaryResult{
		CurrentFY: current.Result(currentFY),
		LastFY:    last.Result(lastFY),
	}, nil
}

func (s *Service) currentWindow(req SummaryRequest) (core.FiscalYear, error) {
	hasStart := !req.CurrentFYStart.IsZero()
	hasEnd := !req.CurrentFYEnd.IsZero()
	if hasStart != hasEnd {
		return core.FiscalYear{}, ErrPartialWindow
	}
	if !hasStart {
		return core.CalendarYear(time.Now().UTC().Year()), nil
	}
	return core.NewFiscalYear(req.CurrentFYStart, req.CurrentFYEnd)
}

func mappingFile(name, fallback string) string {
	if name == "" {
		return fallback
	}
	return name
}

type fetchRequest struct {
	employeeID            string
	earningsMap           map[string]string
	categoryMap           map[string]string
	useCheckDateFiltering bool
}

// fetchPeriod walks the paginated collection for one window and folds every
// accepted record into a fresh accumulator. Pages are fetched sequentially
// because each cursor comes from the previous page.
func (s *Service) fetchPeriod(ctx context.Context, window core.FiscalYear, req fetchRequest) (*core.FiscalYearEarnings, error) {
	result := core.NewFiscalYearEarnings(window.Year())

	query := merge.RunQuery{EmployeeID: req.employeeID}
	if !req.useCheckDateFiltering {
		// Server-side windowing on the runs' ended date.
		query.EndedAfter = window.Start
		query.EndedBefore = window.End
	}

	cursor := ""
	for {
		page, err := s.runs.ListEmployeePayrollRuns(ctx, query, cursor)
		if err != nil {
			return nil, err
		}

		for _, run := range page.Results {
			s.foldRun(result, window, run, req)
		}

		cursor = page.Next
		if cursor == "" {
			break
		}
	}

	s.log.Debug("fiscal year fetch complete",
		"year", result.Year,
		"earning_codes", len(result.EarningsByType),
		"categories", len(result.EarningsByCategory))
	return result, nil
}

func (s *Service) foldRun(result *core.FiscalYearEarnings, window core.FiscalYear, run merge.PayrollRun, req fetchRequest) {
	if req.useCheckDateFiltering {
		// The date check must run before net pay is touched: a run
		// outside the window contributes nothing at all.
		checkDate, ok := parseCheckDate(run.CheckDate)
		if !ok || !window.Contains(checkDate) {
			return
		}
	}

	if run.NetPay != nil {
		result.NetPay = result.NetPay.Add(*run.NetPay)
	}

	for _, earning := range run.Earnings {
		if earning.Amount == nil || earning.Amount.IsZero() {
			continue
		}
		amount := *earning.Amount
		code := earning.Type

		result.TotalGrossEarnings = result.TotalGrossEarnings.Add(amount)

		detail, ok := result.EarningsByType[code]
		if !ok {
			detail = &core.EarningDetail{Code: code, Label: resolveLabel(req.earningsMap, code)}
			result.EarningsByType[code] = detail
		}
		detail.Amount = detail.Amount.Add(amount)

		category := resolveCategory(req.categoryMap, code)
		result.EarningsByCategory[category] = result.EarningsByCategory[category].Add(amount)
	}
}

func resolveLabel(earningsMap map[string]string, code string) string {
	if label, ok := earningsMap[code]; ok {
		return label
	}
	return code
}

// resolveCategory falls back from the code's own entry to the mapping's
// generic bucket, then to the literal default.
func resolveCategory(categoryMap map[string]string, code string) string {
	if category, ok := categoryMap[code]; ok {
		return category
	}
	if category, ok := categoryMap[categoryFallbackKey]; ok {
		return category
	}
	return defaultCategory
}

// parseCheckDate accepts RFC 3339 timestamps (Z or explicit offset) and
// plain dates. Anything else makes the run unattributable to a window.
func parseCheckDate(raw *string) (time.Time, bool) {
	if raw == nil || *raw == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, *raw); err == nil {
		return t, true
	}
	if t, err := time.Parse(core.DateLayout, *raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}
