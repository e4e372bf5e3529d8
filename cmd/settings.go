package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
)

// SettingsCommand creates the settings command with its subcommands.
func SettingsCommand() *cli.Command {
	return &cli.Command{
		Name:  "settings",
		Usage: "Inspect and change the search settings",
		Commands: []*cli.Command{
			settingsGetCommand(),
			settingsSetCommand(),
			settingsEnableCommand(),
			settingsDisableCommand(),
			settingsTokenCommand(),
		},
	}
}

func settingsGetCommand() *cli.Command {
	return &cli.Command{
		Name:  "get",
		Usage: "Print the current settings",
		Action: func(ctx context.Context, c *cli.Command) error {
			env, err := openEnv(c.String("config"))
			if err != nil {
				return err
			}
			defer func() {
				if err := env.Close(); err != nil {
					fmt.Printf("Warning: failed to close database: %v\n", err)
				}
			}()

			disabled, err := env.opts.DisabledProviders()
			if err != nil {
				return err
			}
			shortcut, err := env.opts.Shortcut()
			if err != nil {
				return err
			}
			layout, err := env.opts.AdminBarLayout()
			if err != nil {
				return err
			}
			showURL, err := env.opts.ShowResultsURL()
			if err != nil {
				return err
			}
			deleteData, err := env.opts.DeleteDataOnUninstall()
			if err != nil {
				return err
			}

			disabledValue := "(none)"
			if len(disabled) > 0 {
				disabledValue = strings.Join(disabled, ", ")
			}
			shortcutValue := "(none)"
			if shortcut != "" {
				shortcutValue = shortcut
			}

			fmt.Printf("disabled_providers:       %s\n", disabledValue)
			fmt.Printf("search_shortcut:          %s\n", shortcutValue)
			fmt.Printf("admin_bar_layout:         %d\n", layout)
			fmt.Printf("show_results_url:         %t\n", showURL)
			fmt.Printf("delete_data_on_uninstall: %t\n", deleteData)
			return nil
		},
	}
}

func settingsSetCommand() *cli.Command {
	return &cli.Command{
		Name:  "set",
		Usage: "Change one or more settings",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "shortcut",
				Usage: "Keyboard shortcut that opens the search widget (empty to unset)",
			},
			&cli.IntFlag{
				Name:  "admin-bar-layout",
				Usage: "Admin bar layout: 0 text and icon, 1 icon only",
				Value: -1,
			},
			&cli.StringFlag{
				Name:  "show-results-url",
				Usage: "Show each result's destination URL (true/false)",
			},
			&cli.StringFlag{
				Name:  "delete-data-on-uninstall",
				Usage: "Remove stored settings on uninstall (true/false)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			env, err := openEnv(c.String("config"))
			if err != nil {
				return err
			}
			defer func() {
				if err := env.Close(); err != nil {
					fmt.Printf("Warning: failed to close database: %v\n", err)
				}
			}()

			if c.IsSet("shortcut") {
				if err := env.opts.SetShortcut(c.String("shortcut")); err != nil {
					return err
				}
			}
			if layout := c.Int("admin-bar-layout"); layout != -1 {
				if layout != 0 && layout != 1 {
					return fmt.Errorf("admin-bar-layout must be 0 or 1")
				}
				if err := env.opts.SetAdminBarLayout(layout); err != nil {
					return err
				}
			}
			if c.IsSet("show-results-url") {
				value, err := parseBoolFlag(c.String("show-results-url"))
				if err != nil {
					return fmt.Errorf("show-results-url: %w", err)
				}
				if err := env.opts.SetShowResultsURL(value); err != nil {
					return err
				}
			}
			if c.IsSet("delete-data-on-uninstall") {
				value, err := parseBoolFlag(c.String("delete-data-on-uninstall"))
				if err != nil {
					return fmt.Errorf("delete-data-on-uninstall: %w", err)
				}
				if err := env.opts.SetDeleteDataOnUninstall(value); err != nil {
					return err
				}
			}

			fmt.Println("Settings updated")
			return nil
		},
	}
}

func settingsEnableCommand() *cli.Command {
	return &cli.Command{
		Name:      "enable",
		Usage:     "Enable a search provider",
		ArgsUsage: "<provider>",
		Action: func(ctx context.Context, c *cli.Command) error {
			return toggleProvider(c, true)
		},
	}
}

func settingsDisableCommand() *cli.Command {
	return &cli.Command{
		Name:      "disable",
		Usage:     "Disable a search provider",
		ArgsUsage: "<provider>",
		Action: func(ctx context.Context, c *cli.Command) error {
			return toggleProvider(c, false)
		},
	}
}

func toggleProvider(c *cli.Command, enable bool) error {
	name := c.Args().First()
	if name == "" {
		return fmt.Errorf("provider name is required")
	}

	env, err := openEnv(c.String("config"))
	if err != nil {
		return err
	}
	defer func() {
		if err := env.Close(); err != nil {
			fmt.Printf("Warning: failed to close database: %v\n", err)
		}
	}()

	if _, err := env.registry.Get(name); err != nil {
		return err
	}

	if enable {
		if err := env.opts.EnableProvider(name); err != nil {
			return err
		}
		fmt.Printf("Provider %s enabled\n", name)
		return nil
	}
	if err := env.opts.DisableProvider(name); err != nil {
		return err
	}
	fmt.Printf("Provider %s disabled\n", name)
	return nil
}

func settingsTokenCommand() *cli.Command {
	return &cli.Command{
		Name:      "token",
		Usage:     "Mint a new API token for a user",
		ArgsUsage: "<login>",
		Action: func(ctx context.Context, c *cli.Command) error {
			login := c.Args().First()
			if login == "" {
				return fmt.Errorf("user login is required")
			}

			env, err := openEnv(c.String("config"))
			if err != nil {
				return err
			}
			defer func() {
				if err := env.Close(); err != nil {
					fmt.Printf("Warning: failed to close database: %v\n", err)
				}
			}()

			token := uuid.New().String()
			if err := env.store.SetUserToken(login, token); err != nil {
				return fmt.Errorf("setting token for %s: %w", login, err)
			}

			fmt.Printf("New API token for %s: %s\n", login, token)
			return nil
		},
	}
}

func parseBoolFlag(value string) (bool, error) {
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true, nil
	case "false", "0", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean value %q", value)
}
