package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/riskibarqy/confidence-pool/internal/app"
	"github.com/riskibarqy/confidence-pool/internal/config"
	"github.com/riskibarqy/confidence-pool/internal/observability"
	"github.com/riskibarqy/confidence-pool/internal/platform/logging"
	"github.com/riskibarqy/confidence-pool/internal/usecase"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "scorer",
		Usage: "score weeks and inspect standings outside the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "output",
				Usage: "output format: table or json",
				Value: formatTable,
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "score",
				Usage: "score one week from its final games",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "week-id", Usage: "week to score", Required: true},
				},
				Action: withServices(func(c *cli.Context, svc *app.Services) error {
					result, err := svc.Scoring.ScoreWeek(c.Context, c.Int64("week-id"))
					if err != nil {
						return err
					}
					return printScoreWeek(c.App.Writer, c.String("output"), result)
				}),
			},
			{
				Name:  "score-pending",
				Usage: "score every week that has at least one final game",
				Action: withServices(func(c *cli.Context, svc *app.Services) error {
					result, err := svc.Scoring.ScorePending(c.Context)
					if err != nil {
						return err
					}
					if err := printScorePending(c.App.Writer, c.String("output"), result); err != nil {
						return err
					}
					if len(result.Failures) > 0 {
						return cli.Exit(fmt.Sprintf("%d week(s) failed to score", len(result.Failures)), 2)
					}
					return nil
				}),
			},
			{
				Name:  "standings",
				Usage: "print the season leaderboard",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "season-id", Usage: "season to print, 0 for the active season"},
					&cli.IntFlag{Name: "limit", Usage: "only print the top N entries"},
				},
				Action: withServices(func(c *cli.Context, svc *app.Services) error {
					seasonID := c.Int64("season-id")
					limit := c.Int("limit")

					var (
						standings usecase.SeasonStandings
						err       error
					)
					if limit > 0 {
						standings, err = svc.Standings.Leaderboard(c.Context, seasonID, limit)
					} else {
						standings, err = svc.Standings.GetStandings(c.Context, seasonID)
					}
					if err != nil {
						return err
					}
					return printStandings(c.App.Writer, c.String("output"), standings)
				}),
			},
			{
				Name:  "activate-week",
				Usage: "make a week (and its season) the active one",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "week-id", Required: true},
				},
				Action: withServices(func(c *cli.Context, svc *app.Services) error {
					week, err := svc.Schedule.ActivateWeek(c.Context, c.Int64("week-id"))
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(c.App.Writer, "week %d (season %d) is active\n", week.Number, week.SeasonID)
					return err
				}),
			},
			{
				Name:  "finalize-game",
				Usage: "record a final score",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "game-id", Required: true},
					&cli.IntFlag{Name: "home", Usage: "home team score", Required: true},
					&cli.IntFlag{Name: "away", Usage: "away team score", Required: true},
				},
				Action: withServices(func(c *cli.Context, svc *app.Services) error {
					game, err := svc.Schedule.FinalizeGame(c.Context, c.Int64("game-id"), c.Int("home"), c.Int("away"))
					if err != nil {
						return err
					}
					_, err = fmt.Fprintf(c.App.Writer, "%s %d - %d %s final\n",
						game.HomeTeam.Abbreviation, c.Int("home"), c.Int("away"), game.AwayTeam.Abbreviation)
					return err
				}),
			},
		},
	}
}

// withServices loads configuration, builds the use cases and releases them
// after the action returns.
func withServices(action func(*cli.Context, *app.Services) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger := logging.New(c.App.ErrWriter, cfg.LogLevel).With("service", "confidence-pool-scorer")
		logging.SetDefault(logger)

		shutdownTracing, err := observability.InitUptrace(cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdownTracing(context.Background()); err != nil {
				logger.Warn("shutdown uptrace", "error", err)
			}
		}()

		services, err := app.NewServices(c.Context, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := services.Close(); err != nil {
				logger.Warn("close services", "error", err)
			}
		}()

		return action(c, services)
	}
}
