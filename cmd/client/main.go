package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/tzuratlink/pagelink/config"
	"github.com/tzuratlink/pagelink/pkg/client"
	"github.com/tzuratlink/pagelink/pkg/otel"
	"github.com/tzuratlink/pagelink/pkg/overlay"
	"github.com/tzuratlink/pagelink/pkg/progress"
	"github.com/tzuratlink/pagelink/pkg/tagging"
)

func main() {
	urlFlag := flag.String("url", "http://localhost:8080", "pipeline server url")
	tokenFlag := flag.String("token", "", "server token")
	configFlag := flag.String("config", "", "config file (overrides url/token)")

	pdfFlag := flag.String("pdf", "", "pdf url")
	refFlag := flag.String("ref", "", "page ref range, e.g. 'Berakhot 2a:1-6'")

	finalizeFlag := flag.Bool("finalize", false, "persist the page after a successful run")

	flag.Parse()

	ctx := context.Background()

	if err := otel.Setup(ctx, "pagelink", "dev"); err != nil {
		panic(err)
	}

	if *pdfFlag == "" {
		flag.Usage()
		os.Exit(2)
	}

	service, stages := setup(*urlFlag, *tokenFlag, *configFlag)

	input := tagging.StartRequest{
		PDFURL: *pdfFlag,
	}

	if *refFlag != "" {
		input.PageRefs = []string{*refFlag}
	}

	result, err := run(ctx, service, stages, input)

	if err != nil {
		fmt.Fprintln(os.Stderr, "run failed:", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println("session:", result.SessionID)

	if result.NeedsHumanReview {
		fmt.Println("needs human review:", result.ValidationFlags)
	}

	doc, err := service.Get(ctx, result.SessionID)

	if err != nil {
		fmt.Fprintln(os.Stderr, "fetch failed:", err)
		os.Exit(1)
	}

	fmt.Println()

	printOverlays(doc)

	if *finalizeFlag {
		pageID, err := service.Finalize(ctx, result.SessionID)

		if err != nil {
			fmt.Fprintln(os.Stderr, "finalize failed:", err)
			os.Exit(1)
		}

		fmt.Println()
		fmt.Println("persisted page:", pageID)
	}
}

func setup(url, token, path string) (tagging.Service, []tagging.Stage) {
	if path != "" {
		cfg, err := config.Parse(path)

		if err != nil {
			panic(err)
		}

		service, err := cfg.Session("")

		if err != nil {
			panic(err)
		}

		return service, cfg.Stages()
	}

	options := []client.RequestOption{}

	if token != "" {
		options = append(options, client.WithToken(token))
	}

	c := client.New(url, options...)

	return &c.Sessions, tagging.Stages()
}

func run(ctx context.Context, service tagging.Service, stages []tagging.Stage, input tagging.StartRequest) (*tagging.RunResult, error) {
	tracker := progress.NewTracker(stages)
	tracker.Start()

	for event, err := range service.StartStream(ctx, input) {
		if err != nil {
			tracker.Fail()
			return nil, err
		}

		if event.Result != nil {
			tracker.Complete()
			return event.Result, nil
		}

		tracker.Observe(event.Stage)
		fmt.Printf("[%2d/%d] %s\n", len(tracker.Completed()), len(stages), event.Stage)
	}

	tracker.Fail()
	return nil, fmt.Errorf("stream ended without a result")
}

func printOverlays(doc *tagging.SessionDocument) {
	overlays := overlay.Reconstruct(doc)

	if len(overlays) == 0 {
		fmt.Println("no overlays")
		return
	}

	for _, ref := range sortedRefs(overlays) {
		entry := overlays[ref]

		fmt.Printf("%-32s %d boxes", ref, len(entry.Boxes))

		if entry.Text != "" {
			fmt.Printf("  %.40s", entry.Text)
		}

		fmt.Println()
	}
}

func sortedRefs(overlays map[string]overlay.Overlay) []string {
	refs := make([]string, 0, len(overlays))

	for ref := range overlays {
		refs = append(refs, ref)
	}

	slices.Sort(refs)

	return refs
}
