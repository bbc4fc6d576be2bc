package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/preston-bernstein/ecf-team-win/internal/config"
	"github.com/preston-bernstein/ecf-team-win/internal/logging"
	"github.com/preston-bernstein/ecf-team-win/internal/ratings"
	"github.com/preston-bernstein/ecf-team-win/internal/results"
	"github.com/preston-bernstein/ecf-team-win/internal/submit"
	"github.com/preston-bernstein/ecf-team-win/internal/teamwin"
)

// boardFlags collects repeated -board team1,team2 values in order.
type boardFlags []ratings.BoardEntry

func (b *boardFlags) String() string {
	parts := make([]string, 0, len(*b))
	for _, e := range *b {
		parts = append(parts, e.Team1Text+","+e.Team2Text)
	}
	return strings.Join(parts, " ")
}

func (b *boardFlags) Set(value string) error {
	team1, team2, _ := strings.Cut(value, ",")
	if strings.Contains(team2, ",") {
		return fmt.Errorf("board %q: expected team1,team2", value)
	}
	if len(*b) >= ratings.MaxBoards {
		return ratings.ErrSheetFull
	}
	*b = append(*b, ratings.BoardEntry{Team1Text: team1, Team2Text: team2})
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], config.Load(), os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, cfg config.Config, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("teamwin", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage:\n\nteamwin -board 1700,1800 [-board ,1900 ...]\n\nAsk the win-probability service for a team match result.\n\n")
		fs.PrintDefaults()
	}

	var boards boardFlags
	fs.Var(&boards, "board", "team1,team2 ratings for the next board (repeatable, either side may be empty)")
	url := fs.String("url", cfg.TeamWin.URL, "win-probability service endpoint")
	key := fs.String("key", cfg.TeamWin.APIKey, "API key sent as x-api-key")
	timeout := fs.Duration("timeout", cfg.TeamWin.Timeout, "request timeout (0 waits indefinitely)")
	asJSON := fs.Bool("json", false, "print the full outcome as JSON")
	verbose := fs.Bool("v", false, "log requests to stderr")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if len(boards) == 0 {
		fs.Usage()
		return 2
	}

	logger := logging.NewLogger(logging.Config{Level: "error", Output: io.Discard})
	if *verbose {
		logger = logging.NewLogger(logging.Config{Level: "debug", Service: config.ServiceName, Output: stderr})
	}

	client := teamwin.NewClient(teamwin.Config{
		URL:     *url,
		APIKey:  *key,
		Timeout: *timeout,
		Logger:  logger,
	})
	outcome := submit.NewController(client, logger, nil).Submit(ctx, boards, nil)

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(outcome); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	if outcome.State != submit.Success {
		fmt.Fprintln(stderr, outcome.Error)
		return 1
	}
	if !*asJSON {
		if err := printDisplay(stdout, *outcome.Display); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	return 0
}

func printDisplay(w io.Writer, display results.DisplayModel) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, section := range display.Sections {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintln(tw, section.Title)
		for _, line := range section.Lines {
			fmt.Fprintf(tw, "  %s\t%s\n", line.Label, line.Value)
		}
	}
	return tw.Flush()
}
