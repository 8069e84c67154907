package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/onrcanogul/prod-analyzer/internal/logging"
	"github.com/onrcanogul/prod-analyzer/internal/report"
	"github.com/onrcanogul/prod-analyzer/internal/support"
)

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Rescan on configuration changes and print the report continuously",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		in, err := resolveScanInputs(args)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			os.Exit(ExitUsage)
		}
		runWatch(in, nil)
	},
}

// runWatch rescans on every filesystem change under the root, debounced so
// editor save bursts trigger one scan. The stop channel exists for tests;
// the CLI passes nil and runs until interrupted.
func runWatch(in scanInputs, stop <-chan struct{}) {
	log, err := logging.Init(debugMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: failed to initialize logger: %v\n", err)
		os.Exit(ExitFailure)
	}
	defer log.Sync()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: watch init failed: %v\n", err)
		os.Exit(ExitFailure)
	}
	defer watcher.Close()

	if err := addWatchRecursive(watcher, in.root); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: watch failed: %v\n", err)
		os.Exit(ExitFailure)
	}

	trigger := func() {
		res, err := runScan(in, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			return
		}
		report.RenderText(os.Stdout, res, in.tier)
	}
	trigger()

	var timer *time.Timer
	debounce := 300 * time.Millisecond
	for {
		select {
		case <-stop:
			return
		case ev := <-watcher.Events:
			if strings.Contains(ev.Name, string(filepath.Separator)+support.OutputDir+string(filepath.Separator)) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, trigger)
		case err := <-watcher.Errors:
			fmt.Fprintf(os.Stderr, "ERROR: watch error: %v\n", err)
		}
	}
}

func addWatchRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == support.OutputDir || d.Name() == ".git" || d.Name() == "node_modules" {
				return filepath.SkipDir
			}
			return w.Add(path)
		}
		return nil
	})
}

func init() {
	watchCmd.Flags().StringVarP(&flagProfile, "profile", "p", "all", "Scan profile (spring, node, dotnet, django, all)")
	watchCmd.Flags().StringVar(&flagFailOn, "fail-on", "HIGH", "Severity threshold for the pass/fail verdict")
	watchCmd.Flags().StringVar(&flagPolicyPath, "policy", "", "Explicit policy file")
	watchCmd.Flags().StringVar(&flagTier, "tier", "community", "Reporting tier (community, pro)")
	rootCmd.AddCommand(watchCmd)
}
