package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/alexivanou/cityweather/internal/client"
	"github.com/alexivanou/cityweather/internal/config"
	"github.com/alexivanou/cityweather/internal/ui"
	"go.uber.org/zap"
)

const usage = `Commands:
  ?text   update the search input and list suggestions
  #n      pick suggestion n and search for it
  /top    reload the top cities panel
  /quit   exit
Any other line is searched as a city name.
`

func main() {
	emoji := flag.Bool("emoji", false, "Render weather icons as emoji")
	verbose := flag.Bool("v", false, "Log fetch failures to stderr")
	flag.Parse()

	logger := zap.NewNop()
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		logger = l
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	var icons ui.IconResolver
	if *emoji {
		icons = ui.EmojiIcons
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fetcher := client.New(cfg.Client, logger.Named("client"))
	m := ui.NewModel(fetcher, cfg.Cities,
		ui.WithBatchTimeout(cfg.Client.Timeout),
		ui.WithLogger(logger.Named("ui")),
	)
	r := ui.NewRenderer(icons)

	fmt.Print(usage)
	m.LoadTopCities(ctx)
	fmt.Println(r.Render(m.State()))

	if err := run(ctx, os.Stdin, os.Stdout, m, r); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Client stopped: %v", err)
	}
}

func run(ctx context.Context, in io.Reader, out io.Writer, m *ui.Model, r *ui.Renderer) error {
	readCtx, stopReading := context.WithCancel(ctx)
	defer stopReading()

	lines, readErr := readLines(readCtx, in)
	for {
		fmt.Fprint(out, "> ")

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return <-readErr
			}
			line = l
		}

		switch {
		case line == "/quit":
			return nil
		case line == "/top":
			m.LoadTopCities(ctx)
		case strings.HasPrefix(line, "?"):
			m.SetInput(strings.TrimPrefix(line, "?"))
		case strings.HasPrefix(line, "#"):
			n, err := strconv.Atoi(strings.TrimPrefix(line, "#"))
			suggestions := m.State().Suggestions
			if err != nil || n < 1 || n > len(suggestions) {
				fmt.Fprintf(out, "no suggestion %q\n", strings.TrimPrefix(line, "#"))
				continue
			}
			// failures are already reflected in the view state
			_ = m.SelectSuggestion(ctx, suggestions[n-1])
		default:
			m.SetInput(line)
			_ = m.Search(ctx)
		}

		fmt.Fprintln(out, r.Render(m.State()))
	}
}

// readLines scans in on its own goroutine so a pending read never blocks
// cancellation. The error channel is filled before lines is closed.
func readLines(ctx context.Context, in io.Reader) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				errc <- ctx.Err()
				return
			}
		}
		errc <- scanner.Err()
	}()
	return lines, errc
}
