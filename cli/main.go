package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/time/rate"

	"ytbrief"
	"ytbrief/config"
	"ytbrief/pipeline"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "report":
		cmdReport(args)
	case "channel":
		cmdChannel(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		// Assume a bare URL means a report command
		cmdReport(os.Args[1:])
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `ytbrief - YouTube video transcript and summary reports

Usage:
  ytbrief report [flags] <youtube-url>     Generate a PDF report for one video
  ytbrief channel [flags] <channel>        Generate reports for recent uploads
  ytbrief help                             Show this help message

Examples:
  ytbrief https://www.youtube.com/watch?v=dQw4w9WgXcQ        # Report (default)
  ytbrief report --no-deliver <url>                          # Skip Telegram delivery
  ytbrief channel @somechannel --max 10                      # Last 10 uploads
  ytbrief channel UCxxxxxxxxxxxxxxxxxxxxxx                   # By channel ID

For help on specific command: ytbrief <command> -h
`)
}

func cmdReport(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	noDeliver := fs.Bool("no-deliver", false, "Skip Telegram delivery even when configured")
	outputDir := fs.String("dir", "", "Directory to save the report (overrides config)")
	verbose := fs.Bool("v", false, "Verbose logging")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ytbrief report [flags] <youtube-url>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	argv := fs.Args()
	if len(argv) == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing youtube-url\n")
		fs.Usage()
		os.Exit(1)
	}

	url := argv[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	checkTools(cfg)

	ctx, cancel := signalContext()
	defer cancel()

	p, err := ytbrief.BuildPipeline(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	p.Log = newLogger(*verbose)
	if *noDeliver {
		p.Deliverer = nil
	}

	steps := 6
	if p.Deliverer != nil {
		steps = 7
	}
	bar := progressbar.NewOptions(steps,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetDescription("starting"),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	p.OnStage = func(stage pipeline.Stage) {
		bar.Describe(stage.String())
		bar.Add(1)
	}

	res := p.Run(ctx, url)
	bar.Finish()

	if res.Err != nil {
		printFailure(res)
		os.Exit(1)
	}

	printResult(res)
}

func cmdChannel(args []string) {
	fs := flag.NewFlagSet("channel", flag.ExitOnError)
	max := fs.Int("max", 5, "Maximum recent uploads to process (0 = service default)")
	noDeliver := fs.Bool("no-deliver", false, "Skip Telegram delivery even when configured")
	verbose := fs.Bool("v", false, "Verbose logging")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ytbrief channel [flags] <channel>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	argv := fs.Args()
	if len(argv) == 0 {
		fmt.Fprintf(os.Stderr, "Error: missing channel (use @handle, channel ID, or URL)\n")
		fs.Usage()
		os.Exit(1)
	}

	channel := argv[0]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *noDeliver {
		cfg.TelegramBotToken = ""
		cfg.TelegramChatID = ""
	}

	checkTools(cfg)

	ctx, cancel := signalContext()
	defer cancel()

	p, err := ytbrief.BuildPipeline(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	p.Log = newLogger(*verbose)

	lister, ok := p.Metadata.(pipeline.ChannelLister)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: metadata client cannot list channels\n")
		os.Exit(1)
	}
	b := pipeline.NewBatch(p, lister)
	b.Concurrency = cfg.BatchConcurrency
	if cfg.BatchRPS > 0 {
		b.Limiter = rate.NewLimiter(rate.Limit(cfg.BatchRPS), 1)
	}

	fmt.Fprintf(os.Stderr, "Analyzing %s (up to %d videos)...\n", channel, *max)
	outcomes, err := b.Run(ctx, channel, *max)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(outcomes) == 0 {
		fmt.Println("No uploads found.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VIDEO ID\tTITLE\tSTATUS\tREPORT")

	failed := 0
	for _, o := range outcomes {
		status := "ok"
		reportPath := ""
		switch {
		case o.Failed():
			failed++
			var serr *pipeline.StageError
			if errors.As(o.Result.Err, &serr) {
				status = "failed at " + serr.Stage.String()
			} else {
				status = "failed"
			}
		case o.Result != nil && o.Result.Document != nil:
			reportPath = o.Result.Document.Path
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			o.Ref.ID, truncate(o.Ref.Title, 40), status, reportPath)
	}
	w.Flush()

	fmt.Fprintf(os.Stderr, "\nTotal: %d videos, %d failed\n", len(outcomes), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func printResult(res *pipeline.Result) {
	fmt.Printf("Video:     %s\n", res.VideoID)
	if res.Details != nil {
		fmt.Printf("Title:     %s\n", res.Details.Title)
		fmt.Printf("Channel:   %s\n", res.Details.ChannelTitle)
	}
	if res.Language != "" {
		fmt.Printf("Language:  %s\n", res.Language)
	}
	if res.SummaryPlaceholder {
		fmt.Println("Summary:   skipped (transcript too short)")
	} else if res.SummaryErr != nil {
		fmt.Printf("Summary:   unavailable (%v)\n", res.SummaryErr)
	}
	if res.Document != nil {
		fmt.Printf("Report:    %s\n", res.Document.Path)
	}
	if res.DeliveryErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: delivery failed: %v\n", res.DeliveryErr)
		fmt.Fprintf(os.Stderr, "The report file above is still available.\n")
	} else if res.State == pipeline.StateDelivered {
		fmt.Println("Delivered: yes")
	}
	fmt.Printf("Elapsed:   %s\n", res.Elapsed.Round(time.Second))
}

func printFailure(res *pipeline.Result) {
	var serr *pipeline.StageError
	if errors.As(res.Err, &serr) {
		fmt.Fprintf(os.Stderr, "Error at %s stage: %v\n", serr.Stage, serr.Err)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", res.Err)
}

// checkTools warns early when the external executables the pipeline
// shells out to are missing.
func checkTools(cfg *config.Config) {
	if _, err := exec.LookPath(cfg.YtdlpPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: yt-dlp not found at %q; audio download will fail.\n", cfg.YtdlpPath)
		fmt.Fprintf(os.Stderr, "Install: https://github.com/yt-dlp/yt-dlp\n")
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: ffmpeg not found in PATH; audio extraction will fail.\n")
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// signalContext returns a context canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
