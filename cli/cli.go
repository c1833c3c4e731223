package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/ignisVeneficus/bistro/config"
)

func Run(ctx context.Context, cfg config.Config, args []string) error {
	if len(args) == 0 {
		return runServe(ctx, cfg)
	}

	cmd := args[0]

	switch cmd {
	case "serve":
		return runServe(ctx, cfg)

	case "migrate":
		return runMigrate(ctx, cfg)

	case "placement":
		return runPlacement(cfg, args[1:], os.Stdout)

	case "-h", "--help", "help":
		printGlobalHelp()
		return nil

	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func printGlobalHelp() {
	fmt.Printf(`Usage: %s <command> [options]

Commands:
  serve       Run the HTTP API and the image probe workers (default)
  migrate     Create the database schema
  placement   Print where an image lands in a frame

Use "%s <command> --help" for command-specific options.
`, os.Args[0], os.Args[0])
}
