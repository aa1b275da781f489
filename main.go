package main

import (
	"context"
	"os"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"

	"github.com/scicomp/merscope-transfer/internal/config"
	"github.com/scicomp/merscope-transfer/internal/excluder"
	"github.com/scicomp/merscope-transfer/internal/experiment"
	"github.com/scicomp/merscope-transfer/internal/mailer"
	"github.com/scicomp/merscope-transfer/internal/storage"
	"github.com/scicomp/merscope-transfer/internal/utils"
)

// Set at build time: go build -ldflags "-X main.version=1.2.3"
var version = "dev"

func init() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.WarnLevel)
}

func main() {
	// Load .env file if it exists so the MERSCOPE_* variables below can come from it
	_ = godotenv.Load()

	app := &cli.Command{
		Name:    "merscope-transfer",
		Usage:   "Transfer MERSCOPE experiment files",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to config file",
				Sources: cli.EnvVars("MERSCOPE_CONFIG"),
				Value:   config.DefaultConfigFilename,
			},
			&cli.BoolFlag{
				Name:    "transfer",
				Usage:   "transfer experiments (default: only report what would be copied)",
				Sources: cli.EnvVars("MERSCOPE_TRANSFER"),
			},
			&cli.BoolFlag{
				Name:    "delete",
				Usage:   "delete experiments (default: only report what would be deleted)",
				Sources: cli.EnvVars("MERSCOPE_DELETE"),
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Usage:   "chatty",
				Sources: cli.EnvVars("MERSCOPE_VERBOSE"),
			},
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "very chatty",
				Sources: cli.EnvVars("MERSCOPE_DEBUG"),
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Usage:   "glob patterns of experiment names to skip (repeat or comma-separated)",
				Sources: cli.EnvVars("MERSCOPE_EXCLUDE"),
			},
			&cli.BoolFlag{
				Name:    "notify",
				Usage:   "also show a desktop notification with the run summary",
				Sources: cli.EnvVars("MERSCOPE_NOTIFY"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			switch {
			case cmd.Bool("debug"):
				log.SetLevel(log.DebugLevel)
			case cmd.Bool("verbose"):
				log.SetLevel(log.InfoLevel)
			default:
				log.SetLevel(log.WarnLevel)
			}

			cfg, err := config.LoadConfig(cmd.String("config"))
			if err != nil {
				log.Fatalf("Failed to load config: %v", err)
			}
			if cfg.IgnoredMinimumAge() {
				log.Warnf("minimum_age %ds in config is ignored; experiments must be %s old",
					cfg.MinimumAge, config.MinimumAge)
			}

			// Flags add to the patterns from the config file
			for _, e := range cmd.StringSlice("exclude") {
				for _, pat := range strings.Split(e, ",") {
					if pat = strings.TrimSpace(pat); pat != "" {
						cfg.Exclude = append(cfg.Exclude, pat)
					}
				}
			}
			ex, err := excluder.New(cfg.Exclude)
			if err != nil {
				log.Fatalf("Failed to compile exclude patterns: %v", err)
			}

			opts := experiment.Options{
				Transfer: cmd.Bool("transfer"),
				Delete:   cmd.Bool("delete"),
			}
			proc := experiment.NewProcessor(cfg, storage.NewOS(), ex, opts)
			rep, err := proc.Run()
			if err != nil {
				log.Fatal(err)
			}

			m := mailer.New(&mailer.Config{
				Server: cfg.MailServer,
				From:   cfg.Sender,
				To:     cfg.Receivers,
			})
			sent, err := rep.Deliver(m, opts.Transfer, opts.Delete)
			if err != nil {
				log.Fatal(err)
			}
			if !sent {
				log.Info("Nothing to report")
				return nil
			}
			log.Info("Sent mail for transferred/deleted experiments")
			utils.SendNotification(cmd.Bool("notify"), "MERSCOPE transfer", rep.Summary())
			return nil
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
