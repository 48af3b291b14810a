package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"airport-feedback/internal/aggregate"
	"airport-feedback/internal/client"
	"airport-feedback/internal/dashboard"
	"airport-feedback/internal/export"
	"airport-feedback/internal/logger"
)

func main() {
	_ = godotenv.Load()
	defer func() { _ = logger.Close() }()

	if err := newApp().Run(context.Background(), os.Args); err != nil {
		logger.GetLogger().Errorw("Dashboard failed", "error", err)
		_ = logger.Close()
		os.Exit(1)
	}
}

// viewFlags are shared by show and export. Flags keep parsed state, so each
// command gets its own instances.
func viewFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "window",
			Aliases: []string{"w"},
			Usage:   "all, daily, weekly, monthly or yearly",
			Value:   string(aggregate.All),
		},
		&cli.StringFlag{
			Name:  "now",
			Usage: "reference instant as RFC 3339 (default: current time)",
		},
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:  "feedback-dashboard",
		Usage: "Airport feedback charts, table and reports",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Usage:   "feedback API base URL",
				Value:   "http://localhost:5000",
				Sources: cli.EnvVars("FEEDBACK_API_URL"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "print the rating and location charts and the record table",
				Flags:  viewFlags(),
				Action: showAction,
			},
			{
				Name:  "export",
				Usage: "write the current view to a PDF or spreadsheet",
				Flags: append(viewFlags(),
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "pdf or xlsx",
						Value:   string(export.PDF),
					},
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "output path (default: feedback_report.<format>)",
					},
				),
				Action: exportAction,
			},
			{
				Name:  "submit",
				Usage: "send one feedback record",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "location", Usage: "Check-in, Arrivals or Departure", Required: true},
					&cli.StringFlag{Name: "rating", Usage: "Very Bad, Bad, Average, Good or Very Good", Required: true},
					&cli.StringFlag{Name: "reasons", Usage: "free text"},
				},
				Action: submitAction,
			},
		},
	}
}

// loadState parses the view flags and fetches the records. A failed fetch is
// logged and the view is built from an empty record list.
func loadState(ctx context.Context, cmd *cli.Command) (*dashboard.State, time.Time, error) {
	window, err := aggregate.ParseWindow(cmd.String("window"))
	if err != nil {
		return nil, time.Time{}, err
	}

	ref := time.Now()
	if raw := cmd.String("now"); raw != "" {
		ref, err = time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("invalid --now %q: %w", raw, err)
		}
	}

	state := dashboard.NewState(window)
	_ = state.Refresh(ctx, client.New(cmd.String("api")))
	return state, ref, nil
}

func showAction(ctx context.Context, cmd *cli.Command) error {
	state, ref, err := loadState(ctx, cmd)
	if err != nil {
		return err
	}
	return dashboard.Render(os.Stdout, state.View(ref), ref.Location())
}

func exportAction(ctx context.Context, cmd *cli.Command) error {
	format, err := export.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}
	state, ref, err := loadState(ctx, cmd)
	if err != nil {
		return err
	}

	out := cmd.String("out")
	if out == "" {
		out = format.FileName()
	}
	if err := state.Export(out, format, ref); err != nil {
		return fmt.Errorf("export %s: %w", out, err)
	}
	fmt.Fprintf(os.Stdout, "Wrote %s\n", out)
	return nil
}

func submitAction(ctx context.Context, cmd *cli.Command) error {
	fb, err := client.New(cmd.String("api")).Submit(ctx, cmd.String("location"), cmd.String("rating"), cmd.String("reasons"))
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Submitted %s at %s\n", fb.ID.Hex(), export.FormatDate(fb.CreatedAt, nil))
	return nil
}
