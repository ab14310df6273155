package main

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/dhcpops/scoperec"
	"github.com/dhcpops/scoperec/keactrl"
	"github.com/dhcpops/scoperec/loader"
	"github.com/dhcpops/scoperec/reconcile"
	"github.com/dhcpops/scoperec/scopecfg"
	scoputil "github.com/dhcpops/scoperec/util"
)

// Builds the gateway selected on the command line.
func setupGateway(context *cli.Context) (reconcile.ScopeGateway, error) {
	switch context.String("gateway") {
	case "kea":
		url := context.String("url")
		if url == "" {
			return nil, errors.New("the control agent URL is required; use --url or SCOPEREC_CA_URL")
		}
		return keactrl.NewGateway(url, context.Duration("timeout")), nil
	case "memory":
		// An empty in-memory server: every valid scope reconciles as a
		// create. Useful for what-if runs without a reachable server.
		return reconcile.NewMemoryGateway(), nil
	default:
		return nil, errors.Errorf("unsupported gateway kind '%s'", context.String("gateway"))
	}
}

// Loads the declaration sequence named on the command line. A failure
// here is fatal for the run; no report is produced.
func loadDeclarations(context *cli.Context) ([]scopecfg.ScopeDeclaration, error) {
	declarations, err := loader.Load(context.String("declarations"), context.String("format"))
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"file":   context.String("declarations"),
		"scopes": len(declarations),
	}).Info("Loaded scope declarations")
	return declarations, nil
}

// Renders the batch-level summary of a finished run.
func logSummary(report *reconcile.RunReport, dryRun bool) {
	tally := report.Tally()
	log.WithFields(log.Fields{
		"applied": tally[reconcile.StatusApplied],
		"no_op":   tally[reconcile.StatusNoOpExists],
		"dry_run": tally[reconcile.StatusDryRun],
		"invalid": tally[reconcile.StatusInvalid],
		"errors":  tally[reconcile.StatusError],
	}).Info("Reconciliation finished")
	if dryRun {
		log.Info("Dry-run mode: no changes were made on the server")
	}
}

// Executes the apply command.
func runApply(context *cli.Context) error {
	declarations, err := loadDeclarations(context)
	if err != nil {
		return err
	}
	gateway, err := setupGateway(context)
	if err != nil {
		return err
	}

	dryRun := context.Bool("dry-run")
	report := reconcile.Run(gateway, declarations, dryRun)
	logSummary(report, dryRun)

	tally := report.Tally()
	if failed := tally[reconcile.StatusError]; failed > 0 {
		return errors.Errorf("%d of %d scopes failed", failed, len(declarations))
	}
	return nil
}

// Executes the validate command. No server is consulted.
func runValidate(context *cli.Context) error {
	declarations, err := loadDeclarations(context)
	if err != nil {
		return err
	}

	invalid := 0
	for _, decl := range declarations {
		scope, violations := scopecfg.Validate(decl)
		if len(violations) > 0 {
			invalid++
			log.WithField("scope", decl.Name).Warn(scopecfg.JoinErrors(violations))
			continue
		}
		log.WithFields(log.Fields{
			"scope":    scope.Name(),
			"scope_id": scope.ScopeID().String(),
		}).Info("Scope declaration is valid")
	}
	if invalid > 0 {
		return errors.Errorf("%d of %d scope declarations are invalid", invalid, len(declarations))
	}
	return nil
}

// Prepare urfave cli app with all flags and commands defined.
func setupApp() *cli.App {
	cli.VersionPrinter = func(c *cli.Context) {
		fmt.Println(c.App.Version)
	}

	declarationFlags := []cli.Flag{
		&cli.StringFlag{
			Name:     "declarations",
			Usage:    "The file with the scope declarations to reconcile",
			Required: true,
			Aliases:  []string{"f"},
			EnvVars:  []string{"SCOPEREC_DECLARATIONS"},
		},
		&cli.StringFlag{
			Name:    "format",
			Usage:   "Declarations file format, 'csv' or 'yaml'; derived from the file extension when not specified",
			EnvVars: []string{"SCOPEREC_FORMAT"},
		},
	}

	applyFlags := append([]cli.Flag{}, declarationFlags...)
	applyFlags = append(applyFlags,
		&cli.StringFlag{
			Name:    "url",
			Usage:   "URL of the Kea Control Agent managing the DHCP server",
			Aliases: []string{"u"},
			EnvVars: []string{"SCOPEREC_CA_URL"},
		},
		&cli.StringFlag{
			Name:    "gateway",
			Usage:   "Gateway kind, 'kea' or 'memory'",
			Value:   "kea",
			EnvVars: []string{"SCOPEREC_GATEWAY"},
		},
		&cli.DurationFlag{
			Name:    "timeout",
			Usage:   "Timeout of a single control agent call",
			Value:   10 * time.Second,
			EnvVars: []string{"SCOPEREC_TIMEOUT"},
		},
		&cli.BoolFlag{
			Name:    "dry-run",
			Usage:   "Validate and decide, but issue no mutating server call",
			Aliases: []string{"n"},
			EnvVars: []string{"SCOPEREC_DRY_RUN"},
		})

	app := &cli.App{
		Name:     "scoperec",
		Usage:    "Reconciles declared DHCPv4 scopes against a live DHCP server.",
		Version:  scoperec.Version,
		HelpName: "scoperec",
		Commands: []*cli.Command{
			{
				Name:      "apply",
				Usage:     "Reconcile the declared scopes against the server",
				UsageText: "scoperec apply -f declarations-file [-u url] [--dry-run]",
				Flags:     applyFlags,
				Action:    runApply,
			},
			{
				Name:      "validate",
				Usage:     "Validate the declared scopes without touching any server",
				UsageText: "scoperec validate -f declarations-file",
				Flags:     declarationFlags,
				Action:    runValidate,
			},
		},
	}
	return app
}

func main() {
	// Setup logging
	scoputil.SetupLogging()

	app := setupApp()
	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}
