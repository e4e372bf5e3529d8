package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// UninstallCommand creates the uninstall command.
func UninstallCommand() *cli.Command {
	return &cli.Command{
		Name:  "uninstall",
		Usage: "Remove runtime data; also removes settings if delete_data_on_uninstall is set",
		Action: func(ctx context.Context, c *cli.Command) error {
			return uninstall(c.String("config"))
		},
	}
}

// uninstall always drops the menu snapshot cache. Persisted settings are
// only removed when the administrator opted in, so a reinstall finds the
// site configured the way it was left.
func uninstall(configPath string) error {
	env, err := openEnv(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := env.Close(); err != nil {
			fmt.Printf("Warning: failed to close database: %v\n", err)
		}
	}()

	if err := env.menus.ClearAll(); err != nil {
		return fmt.Errorf("clearing menu caches: %w", err)
	}
	fmt.Println("Removed all cached menu snapshots")

	deleteData, err := env.opts.DeleteDataOnUninstall()
	if err != nil {
		return fmt.Errorf("reading delete_data_on_uninstall: %w", err)
	}
	if !deleteData {
		fmt.Println("Settings kept (delete_data_on_uninstall is off)")
		return nil
	}

	if err := env.opts.Wipe(); err != nil {
		return fmt.Errorf("removing settings: %w", err)
	}
	fmt.Println("Removed stored settings")
	return nil
}
