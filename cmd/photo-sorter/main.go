package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/zoidzter/photo-sorter/internal/config"
	"github.com/zoidzter/photo-sorter/internal/exif"
	"github.com/zoidzter/photo-sorter/internal/group"
	"github.com/zoidzter/photo-sorter/internal/job"
	"github.com/zoidzter/photo-sorter/internal/mapping"
	"github.com/zoidzter/photo-sorter/internal/pathutil"
	"github.com/zoidzter/photo-sorter/internal/scan"
	"github.com/zoidzter/photo-sorter/internal/visual"
)

func main() {
	os.Exit(run())
}

// run carries the real main body so deferred cleanup still fires before
// the process exits with a status code.
func run() int {
	// Command line flags
	var (
		sourceFlag    = flag.String("source", "", "Folder with unsorted photos and videos")
		destFlag      = flag.String("dest", "", "Destination folder (overrides config)")
		groupFlag     = flag.String("group", "", "Copy only the named group")
		previewFlag   = flag.Bool("preview", false, "Show the grouping without copying")
		dryRunFlag    = flag.Bool("dry-run", false, "Walk the copy without writing file contents")
		nearDupesFlag = flag.Bool("near-dupes", false, "Report visually similar images in the source")
		configFlag    = flag.String("config", "", "Path to config file")
		verboseFlag   = flag.Bool("verbose", false, "Show debug output")
	)

	flag.Parse()

	source := *sourceFlag
	if source == "" && flag.NArg() > 0 {
		source = flag.Arg(0)
	}
	if source == "" {
		fmt.Println("photo-sorter - Organize photos and videos by date, place and event")
		fmt.Println()
		fmt.Println("Usage:")
		fmt.Println("  photo-sorter -source <folder> [options]")
		fmt.Println("  photo-sorter <folder> [options]")
		fmt.Println()
		fmt.Println("For interactive mode, use: photo-sorter-tui")
		fmt.Println()
		flag.PrintDefaults()
		return 1
	}

	// Load config
	settings := config.DefaultSettings()
	if *configFlag != "" {
		var err error
		settings, err = config.Load(*configFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			return 1
		}
	}
	if *destFlag != "" {
		settings.DestinationPath = *destFlag
	}
	if *verboseFlag {
		settings.LogLevel = "debug"
	}

	logger, cleanup := config.SetupLogger(settings.LogFile, config.ParseLogLevel(settings.LogLevel))
	defer cleanup()
	slog.SetDefault(logger)

	if *nearDupesFlag {
		return runNearDupes(settings, source)
	}

	rules := group.LoadRules(settings.RulesPath)
	namer := group.NewNamer(rules, settings.Geocoder())
	builder := mapping.NewBuilder(exif.NewDefaultExtractor(), namer, settings.MappingTTL())
	store := job.NewStore()

	if *previewFlag {
		return runPreview(builder, store, source)
	}
	return runCopy(builder, store, source, settings.DestinationPath, *groupFlag, *dryRunFlag)
}

// runPreview prints the grouping a copy would produce.
func runPreview(builder *mapping.Builder, store *job.Store, source string) int {
	id := job.NewPreviewRunner(builder, store).Start(source)
	status := waitForJob(store, id)
	if status.State() == job.StateError {
		fmt.Fprintf(os.Stderr, "Error: %v\n", status.Record[job.FieldError])
		return 1
	}

	payload, _ := status.Record[job.FieldResult].(job.PreviewPayload)
	fmt.Printf("Found %s file(s) in %d group(s):\n\n",
		humanize.Comma(int64(payload.Total)), len(payload.Groups))
	for _, g := range payload.Groups {
		fmt.Printf("  %s (%d)\n", g.Name, g.Count)
		for _, sample := range g.Samples {
			fmt.Printf("    %s\n", sample)
		}
	}
	return 0
}

// runCopy submits a copy job and reports progress until it finishes.
func runCopy(builder *mapping.Builder, store *job.Store, source, dest, onlyGroup string, dryRun bool) int {
	if dryRun {
		fmt.Println("[Dry run - not copying]")
	}

	id := job.NewCopyRunner(builder, store).Start(source, dest, onlyGroup, dryRun)
	status := waitForJob(store, id)
	if status.State() == job.StateError {
		fmt.Fprintf(os.Stderr, "Error: %v\n", status.Record[job.FieldError])
		return 1
	}

	rec := status.Record
	fmt.Printf("\nComplete! Copied %v, duplicates %v, failed %v (%s)\n",
		rec[job.FieldCopied], rec[job.FieldDuplicates], rec[job.FieldFailed],
		status.Elapsed.Round(time.Second))
	if errs, ok := rec[job.FieldErrors].([]string); ok && len(errs) > 0 {
		fmt.Println()
		for _, e := range errs {
			fmt.Printf("  ! %s\n", e)
		}
		return 1
	}
	return 0
}

// runNearDupes hashes the images under source and prints near-duplicate
// pairs.
func runNearDupes(settings *config.Settings, source string) int {
	files, err := scan.Scan(pathutil.NormalizeUserPath(source), scan.DefaultExtensions, true)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}

	hasher := visual.NewHasher(visual.NewCache(settings.PhashCachePath), settings.PhashWorkers)
	hashes, err := hasher.HashAll(context.Background(), paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	pairs := visual.FindNearDuplicates(hashes, settings.PhashThreshold)
	if len(pairs) == 0 {
		fmt.Printf("No near-duplicates among %d image(s).\n", len(hashes))
		return 0
	}
	fmt.Printf("%d near-duplicate pair(s):\n\n", len(pairs))
	for _, p := range pairs {
		fmt.Printf("  [distance %2d] %s\n                %s\n",
			p.Distance, pathutil.DisplayPath(p.A), pathutil.DisplayPath(p.B))
	}
	return 0
}

// waitForJob polls the store until the job reaches a terminal state,
// printing progress lines along the way. A vanished job id is reported as
// a synthetic error state.
func waitForJob(store *job.Store, id string) job.Status {
	var lastLine string
	for {
		status, ok := store.Poll(id)
		if !ok {
			return job.Status{Record: job.Record{
				job.FieldState: job.StateError,
				job.FieldError: fmt.Sprintf("job %s not found", id),
			}}
		}
		if status.Terminal() {
			if lastLine != "" {
				fmt.Println()
			}
			return status
		}

		rec := status.Record
		if total, ok := rec[job.FieldTotal].(int); ok && total > 0 {
			line := fmt.Sprintf("\r%v/%d (%.0f%%)", rec[job.FieldProcessed], total, status.Percent)
			if g, ok := rec[job.FieldCurrentGroup].(string); ok && g != "" {
				line += " " + g
			}
			if line != lastLine {
				fmt.Print(line)
				lastLine = line
			}
		}
		time.Sleep(200 * time.Millisecond)
	}
}
