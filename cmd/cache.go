package cmd

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// CacheCommand creates the cache maintenance command.
func CacheCommand() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage cached admin menu snapshots",
		Commands: []*cli.Command{
			{
				Name:  "clear",
				Usage: "Clear cached menu snapshots",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "user",
						Usage: "Clear only the snapshot of this user (login)",
					},
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Clear every user's snapshot",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return clearCache(c.String("config"), c.String("user"), c.Bool("all"))
				},
			},
		},
	}
}

func clearCache(configPath, login string, all bool) error {
	if login == "" && !all {
		return fmt.Errorf("either --user or --all is required")
	}
	if login != "" && all {
		return fmt.Errorf("--user and --all are mutually exclusive")
	}

	env, err := openEnv(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := env.Close(); err != nil {
			fmt.Printf("Warning: failed to close database: %v\n", err)
		}
	}()

	if all {
		if err := env.menus.ClearAll(); err != nil {
			return fmt.Errorf("clearing all menu caches: %w", err)
		}
		fmt.Println("Cleared menu cache for all users")
		return nil
	}

	user, err := env.store.UserByLogin(login)
	if err != nil {
		return fmt.Errorf("resolving user %q: %w", login, err)
	}
	if err := env.menus.Clear(user.ID); err != nil {
		return fmt.Errorf("clearing menu cache: %w", err)
	}
	fmt.Printf("Cleared menu cache for %s\n", login)
	return nil
}
