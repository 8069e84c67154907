package cmd

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/onrcanogul/prod-analyzer/internal/logging"
	"github.com/onrcanogul/prod-analyzer/internal/model"
	"github.com/onrcanogul/prod-analyzer/internal/policy"
	"github.com/onrcanogul/prod-analyzer/internal/report"
	"github.com/onrcanogul/prod-analyzer/internal/scan"
	"github.com/onrcanogul/prod-analyzer/internal/support"
)

var (
	flagProfile    string
	flagFailOn     string
	flagFormat     string
	flagOutput     string
	flagPolicyPath string
	flagTier       string
	flagTop        int
)

// scanInputs is everything user input resolves to before any scanning work
// begins. Building it can only fail on invalid arguments.
type scanInputs struct {
	root      string
	profile   model.Profile
	threshold model.Severity
	format    string
	tier      report.Tier
}

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a directory's configuration files for production-unsafe settings",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		in, err := resolveScanInputs(args)
		if err != nil {
			// Invalid arguments abort before any scanning work: the caller
			// cannot possibly receive a meaningful result.
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(ExitUsage)
		}

		log, err := logging.Init(debugMode)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: failed to initialize logger: %v\n", err)
			os.Exit(ExitFailure)
		}
		defer log.Sync()

		res, err := runScan(in, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(ExitFailure)
		}

		if err := emit(res, in); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: failed to write report: %v\n", err)
			os.Exit(ExitFailure)
		}

		appendAudit(in, res)

		if !res.Passed {
			os.Exit(ExitViolations)
		}
	},
}

// resolveScanInputs validates every user-supplied argument up front.
func resolveScanInputs(args []string) (scanInputs, error) {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	profile, err := model.ParseProfile(flagProfile)
	if err != nil {
		return scanInputs{}, err
	}
	threshold, err := model.ParseSeverity(flagFailOn)
	if err != nil {
		return scanInputs{}, err
	}
	tier, err := report.ParseTier(flagTier)
	if err != nil {
		return scanInputs{}, err
	}
	format := strings.ToLower(strings.TrimSpace(flagFormat))
	switch format {
	case "", "text":
		format = "text"
	case "json", "sarif", "junit":
	default:
		return scanInputs{}, fmt.Errorf("unknown output format %q (expected text, json, sarif, or junit)", flagFormat)
	}

	return scanInputs{
		root:      root,
		profile:   profile,
		threshold: threshold,
		format:    format,
		tier:      tier,
	}, nil
}

func runScan(in scanInputs, log *zap.SugaredLogger) (*report.Result, error) {
	var pol *policy.Policy
	if flagPolicyPath != "" {
		p, err := policy.LoadStrict(flagPolicyPath)
		if err != nil {
			return nil, fmt.Errorf("cannot use policy %s: %w", flagPolicyPath, err)
		}
		pol = p
	} else {
		pol = policy.Discover(in.root, log)
	}

	return scan.Run(scan.Options{
		Root:      in.root,
		Profile:   in.profile,
		Threshold: in.threshold,
		Policy:    pol,
		Log:       log,
	})
}

// emit renders the chosen format to stdout, or atomically to --output.
func emit(res *report.Result, in scanInputs) error {
	var buf bytes.Buffer
	var err error
	switch in.format {
	case "text":
		top := res
		if flagTop > 0 {
			trimmed := *res
			trimmed.Groups = report.TopGroups(res.Groups, flagTop, model.SeverityInfo)
			top = &trimmed
		}
		report.RenderText(&buf, top, in.tier)
	case "json":
		err = report.RenderJSON(&buf, res, Version)
	case "sarif":
		err = report.RenderSARIF(&buf, res, Version)
	case "junit":
		err = report.RenderJUnit(&buf, res)
	}
	if err != nil {
		return err
	}

	if flagOutput == "" {
		_, err = os.Stdout.Write(buf.Bytes())
		return err
	}
	return support.WriteFileAtomic(flagOutput, buf.Bytes())
}

func appendAudit(in scanInputs, res *report.Result) {
	counts := make(map[string]int, len(res.Counts))
	for sev, n := range res.Counts {
		counts[sev.String()] = n
	}
	entry := support.AuditEntry{
		Profile:       in.profile.Name,
		Pass:          res.Passed,
		Threshold:     in.threshold.String(),
		MaxSeverity:   res.MaxSeverity.String(),
		Counts:        counts,
		FilesScanned:  res.Stats.FilesScanned,
		PolicyApplied: res.PolicyName,
	}
	if err := support.AppendAudit(in.root, entry); err != nil {
		fmt.Fprintf(os.Stderr, "WARNING: failed to append audit log: %v\n", err)
	}
}

func init() {
	scanCmd.Flags().StringVarP(&flagProfile, "profile", "p", "all", "Scan profile (spring, node, dotnet, django, all)")
	scanCmd.Flags().StringVar(&flagFailOn, "fail-on", "HIGH", "Fail the scan when a violation at or above this severity is found")
	scanCmd.Flags().StringVarP(&flagFormat, "format", "f", "text", "Output format (text, json, sarif, junit)")
	scanCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Write the report to a file instead of stdout")
	scanCmd.Flags().StringVar(&flagPolicyPath, "policy", "", "Explicit policy file (default: probe conventional names in the scan root)")
	scanCmd.Flags().StringVar(&flagTier, "tier", "community", "Reporting tier (community, pro)")
	scanCmd.Flags().IntVar(&flagTop, "top", 0, "Show only the first N violation groups in text output (0 = all)")
	rootCmd.AddCommand(scanCmd)
}
