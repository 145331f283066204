package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"business_valuation/pkg/core/ingest"
	"business_valuation/pkg/core/pipeline"
	"business_valuation/pkg/core/report"
	"business_valuation/pkg/core/store"
	"business_valuation/pkg/core/utils"
	"business_valuation/pkg/core/valuation"
)

var (
	inputPath    string
	saveRun      bool
	quickRevenue float64
	quickSector  string
	listingURL   string
	listingFile  string
	listingHint  string
	batchWorkers int
)

// =============================================================================
// value
// =============================================================================

func newValueCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "value",
		Short: "Value a business described in a JSON or Hjson file",
		Long: `Reads a valuation input and prints the full report.

Files ending in .hjson are read as Hjson; anything else is read as JSON,
with trailing commas and similar mistakes repaired. Use "-" for stdin.`,
		Example: `  calc-engine value --input deal.hjson --format md
  cat deal.json | calc-engine value --input - --save`,
		Args: cobra.NoArgs,
		RunE: runValue,
	}
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input file (.json or .hjson, - for stdin)")
	cmd.Flags().BoolVar(&saveRun, "save", false, "Persist the run and print its id")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runValue(cmd *cobra.Command, args []string) error {
	var in valuation.ValuationInput
	if err := readInput(cmd, inputPath, &in); err != nil {
		return err
	}

	engine, err := newEngine()
	if err != nil {
		return err
	}
	out := engine.Calculate(in)
	logger.Debug("valuation complete",
		zap.String("industry", out.IndustryData.IndustryKey),
		zap.Float64("mid", out.ValuationRange.Mid))

	rep := report.Report{Input: in, Output: out}
	if saveRun {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		rec := &store.ValuationRecord{Input: in, Output: out}
		if err := s.Save(cmd.Context(), rec); err != nil {
			return err
		}
		rep.ID = rec.ID
		fmt.Fprintf(cmd.ErrOrStderr(), "saved %s (%s)\n", rec.ID, s.Backend())
	}
	return writeReport(cmd.OutOrStdout(), rep)
}

// =============================================================================
// quick
// =============================================================================

func newQuickCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "quick",
		Short:   "Revenue-only preview range",
		Example: `  calc-engine quick --revenue 1500000 --industry "heating and air"`,
		Args:    cobra.NoArgs,
		RunE:    runQuick,
	}
	cmd.Flags().Float64Var(&quickRevenue, "revenue", 0, "Annual revenue")
	cmd.Flags().StringVar(&quickSector, "industry", "", "Industry name, key or description")
	_ = cmd.MarkFlagRequired("revenue")
	_ = cmd.MarkFlagRequired("industry")
	return cmd
}

func runQuick(cmd *cobra.Command, args []string) error {
	if quickRevenue < 0 {
		return fmt.Errorf("revenue must be at least 0, got %v", quickRevenue)
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}
	data := engine.Catalog().Lookup(quickSector)
	r := engine.QuickEstimate(quickRevenue, quickSector)

	w := cmd.OutOrStdout()
	if strings.EqualFold(outputFormat, report.FormatJSON) {
		return writeJSON(w, map[string]interface{}{
			"industry":       data.IndustryKey,
			"valuationRange": r,
		})
	}
	fmt.Fprintf(w, "%s (revenue %s)\n", data.IndustryName, valuation.FormatCurrency(quickRevenue))
	fmt.Fprintf(w, "  Low:  %s\n  Mid:  %s\n  High: %s\n",
		valuation.FormatCurrency(r.Low), valuation.FormatCurrency(r.Mid), valuation.FormatCurrency(r.High))
	return nil
}

// =============================================================================
// industries
// =============================================================================

func newIndustriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "industries",
		Short: "List supported industries and their multiples",
		Args:  cobra.NoArgs,
		RunE:  runIndustries,
	}
}

func runIndustries(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}
	catalog := engine.Catalog()

	if strings.EqualFold(outputFormat, report.FormatJSON) {
		return writeJSON(cmd.OutOrStdout(), catalog.Entries())
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "KEY\tNAME\tSDE\tEBITDA\tREVENUE")
	for _, d := range catalog.Entries() {
		fmt.Fprintf(tw, "%s\t%s\t%.2f-%.2fx\t%.2f-%.2fx\t%.2f-%.2fx\n",
			d.IndustryKey, d.IndustryName,
			d.SDE.Low, d.SDE.High,
			d.EBITDA.Low, d.EBITDA.High,
			d.Revenue.Low, d.Revenue.High)
	}
	return tw.Flush()
}

// =============================================================================
// listing
// =============================================================================

func newListingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listing",
		Short: "Import and value a business-for-sale listing",
		Long: `Fetches a listing page (or reads saved HTML), extracts its financial
figures and values the business.`,
		Example: `  calc-engine listing --url https://example.com/listing/123 --industry hvac
  calc-engine listing --file saved.html --format md --save`,
		Args: cobra.NoArgs,
		RunE: runListing,
	}
	cmd.Flags().StringVar(&listingURL, "url", "", "Listing URL")
	cmd.Flags().StringVar(&listingFile, "file", "", "Saved listing HTML")
	cmd.Flags().StringVar(&listingHint, "industry", "", "Industry to use instead of the page's")
	cmd.Flags().BoolVar(&saveRun, "save", false, "Persist the run and print its id")
	cmd.MarkFlagsMutuallyExclusive("url", "file")
	cmd.MarkFlagsOneRequired("url", "file")
	return cmd
}

// fileSource reads listing HTML from disk.
type fileSource struct{}

func (fileSource) Fetch(_ context.Context, path, industryHint string) (*ingest.ListingImport, error) {
	html, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	imp, err := ingest.ParseListingHTML(string(html), industryHint)
	if err != nil {
		return nil, err
	}
	imp.SourceURL = "file://" + path
	return imp, nil
}

func runListing(cmd *cobra.Command, args []string) error {
	engine, err := newEngine()
	if err != nil {
		return err
	}

	var source pipeline.ListingSource = ingest.NewListingFetcher(cfg.Listing.FetchTimeout, cfg.Listing.UserAgent, logger,
		ingest.AllowPrivateHosts(cfg.Listing.AllowPrivateHosts))
	target := listingURL
	if listingFile != "" {
		source, target = fileSource{}, listingFile
	}

	var repo pipeline.Repository
	if saveRun {
		s, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer store.Close()
		repo = s
	}

	res, err := pipeline.NewOrchestrator(source, engine, repo, logger).RunListing(cmd.Context(), target, listingHint)
	if err != nil {
		if errors.Is(err, ingest.ErrNoFinancials) {
			return fmt.Errorf("%s: %w", target, err)
		}
		return err
	}

	stderr := cmd.ErrOrStderr()
	if res.Listing.Title != "" {
		fmt.Fprintf(stderr, "listing: %s\n", res.Listing.Title)
	}
	for _, w := range res.Listing.Warnings {
		fmt.Fprintf(stderr, "warning: %s\n", w)
	}
	if res.RecordID != "" {
		fmt.Fprintf(stderr, "saved %s\n", res.RecordID)
	}
	return writeReport(cmd.OutOrStdout(), report.Report{ID: res.RecordID, Input: res.Listing.Input, Output: res.Output})
}

// =============================================================================
// batch
// =============================================================================

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Value many businesses from one file",
		Long: `Reads an array of valuation inputs (or an object with an "inputs" array)
and values them concurrently. Results keep the input order.`,
		Args: cobra.NoArgs,
		RunE: runBatch,
	}
	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input file (.json or .hjson, - for stdin)")
	cmd.Flags().IntVar(&batchWorkers, "concurrency", 0, "Worker count (default from config)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	var raw json.RawMessage
	if err := readInput(cmd, inputPath, &raw); err != nil {
		return err
	}
	var inputs []valuation.ValuationInput
	if err := json.Unmarshal(raw, &inputs); err != nil {
		var wrapped struct {
			Inputs []valuation.ValuationInput `json:"inputs"`
		}
		if err2 := json.Unmarshal(raw, &wrapped); err2 != nil {
			return fmt.Errorf("batch input must be an array or {\"inputs\": [...]}: %w", err)
		}
		inputs = wrapped.Inputs
	}
	if len(inputs) > cfg.Batch.MaxInputs {
		return fmt.Errorf("batch has %d inputs, limit is %d", len(inputs), cfg.Batch.MaxInputs)
	}

	workers := batchWorkers
	if workers <= 0 {
		workers = cfg.Batch.Concurrency
	}
	engine, err := newEngine()
	if err != nil {
		return err
	}
	outputs, err := pipeline.NewOrchestrator(nil, engine, nil, logger).RunBatch(cmd.Context(), inputs, workers)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if strings.EqualFold(outputFormat, report.FormatJSON) {
		return writeJSON(w, outputs)
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tINDUSTRY\tLOW\tMID\tHIGH\tGRADE")
	for i, out := range outputs {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n", i+1, out.IndustryData.IndustryKey,
			valuation.FormatCurrency(out.ValuationRange.Low),
			valuation.FormatCurrency(out.ValuationRange.Mid),
			valuation.FormatCurrency(out.ValuationRange.High),
			out.Grade)
	}
	return tw.Flush()
}

// =============================================================================
// report
// =============================================================================

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <id>",
		Short: "Render a saved valuation",
		Args:  cobra.ExactArgs(1),
		RunE:  runReport,
	}
}

func runReport(cmd *cobra.Command, args []string) error {
	if _, err := uuid.Parse(args[0]); err != nil {
		return fmt.Errorf("invalid id %q", args[0])
	}
	s, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer store.Close()

	rec, err := s.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return writeReport(cmd.OutOrStdout(), report.Report{ID: rec.ID, Input: rec.Input, Output: rec.Output})
}

// =============================================================================
// helpers
// =============================================================================

// readInput decodes path into v. Hjson files are converted first; everything
// else goes through the lenient JSON decoder.
func readInput(cmd *cobra.Command, path string, v interface{}) error {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".hjson") {
		err = utils.DecodeHJSON(data, v)
	} else {
		err = utils.DecodeLenient(data, v)
	}
	if err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func writeReport(w io.Writer, rep report.Report) error {
	body, err := report.Render(rep, outputFormat)
	if err != nil {
		return err
	}
	if _, err := w.Write(body); err != nil {
		return err
	}
	if len(body) > 0 && body[len(body)-1] != '\n' {
		_, err = io.WriteString(w, "\n")
	}
	return err
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
