package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"paysum/internal/cli"
	"paysum/internal/core"
	"paysum/internal/merge"
	"paysum/internal/payroll"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	employeeID      string
	fyStart         string
	fyEnd           string
	checkDateFilter bool
	earningsMap     string
	categoryMap     string
	verbose         bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "paysum",
		Short: "Summarize an employee's payroll-run earnings for the current and prior fiscal years",
		Long: `paysum fetches an employee's payroll runs from the Merge HRIS API for the
current and prior fiscal-year windows and aggregates earnings into per-code
and per-category totals. The combined summary is printed as JSON on stdout.

Credentials come from MERGE_API_KEY and MERGE_ACCOUNT_TOKEN (a .env file is
picked up automatically); MERGE_REGION selects the API host.`,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.employeeID, "employee", "", "Merge employee ID (UUID)")
	cmd.Flags().StringVar(&opts.fyStart, "fy-start", "", "current fiscal year start (YYYY-MM-DD, requires --fy-end)")
	cmd.Flags().StringVar(&opts.fyEnd, "fy-end", "", "current fiscal year end (YYYY-MM-DD, requires --fy-start)")
	cmd.Flags().BoolVar(&opts.checkDateFilter, "check-date-filter", false, "filter runs in memory by check date instead of server-side ended dates")
	cmd.Flags().StringVar(&opts.earningsMap, "earnings-map", payroll.DefaultEarningsMapFile, "JSON file mapping earning codes to labels")
	cmd.Flags().StringVar(&opts.categoryMap, "category-map", payroll.DefaultCategoryMapFile, "JSON file mapping earning codes to categories")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	cobra.CheckErr(cmd.MarkFlagRequired("employee"))

	return cmd
}

func run(cmd *cobra.Command, opts options) error {
	logger := cli.SetupLogger(opts.verbose)
	cli.LoadEnvFile(logger)

	cfg, err := cli.LoadAndValidateConfig(logger)
	if err != nil {
		return err
	}

	if _, err := uuid.Parse(opts.employeeID); err != nil {
		return fmt.Errorf("invalid employee id %q: %w", opts.employeeID, err)
	}

	req := payroll.SummaryRequest{
		EmployeeID:            opts.employeeID,
		UseCheckDateFiltering: opts.checkDateFilter,
		EarningsMapFile:       opts.earningsMap,
		CategoryMapFile:       opts.categoryMap,
	}
	if req.CurrentFYStart, req.CurrentFYEnd, err = parseWindow(opts.fyStart, opts.fyEnd); err != nil {
		return err
	}

	host, err := merge.HostForRegion(cfg.Region)
	if err != nil {
		return err
	}
	client := merge.NewClient(host, cfg.MergeAPIKey, cfg.MergeAccountToken, cfg.HTTPTimeout)
	service := payroll.NewService(client, logger)

	result, err := service.Summarize(cmd.Context(), req)
	if err != nil {
		logger.Error("summary failed", "employee_id", opts.employeeID, "error", err)
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// parseWindow parses the optional explicit fiscal-year bounds. Both flags
// must be given together; the orchestrator defaults to the calendar year
// when both are absent.
func parseWindow(start, end string) (time.Time, time.Time, error) {
	if start == "" && end == "" {
		return time.Time{}, time.Time{}, nil
	}
	if start == "" || end == "" {
		return time.Time{}, time.Time{}, payroll.ErrPartialWindow
	}

	startDate, err := time.ParseInLocation(core.DateLayout, start, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --fy-start %q: %w", start, err)
	}
	endDate, err := time.ParseInLocation(core.DateLayout, end, time.UTC)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --fy-end %q: %w", end, err)
	}
	return startDate, endDate, nil
}
