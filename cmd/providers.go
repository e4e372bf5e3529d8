package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
)

var (
	enabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("35"))

	disabledStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)
)

// ProvidersCommand creates the providers command
func ProvidersCommand() *cli.Command {
	return &cli.Command{
		Name:  "providers",
		Usage: "List registered search providers and their enabled state",
		Action: func(ctx context.Context, c *cli.Command) error {
			return listProviders(c.String("config"))
		},
	}
}

func listProviders(configPath string) error {
	env, err := openEnv(configPath)
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
		return fmt.Errorf("loading disabled providers: %w", err)
	}
	disabledSet := make(map[string]bool, len(disabled))
	for _, name := range disabled {
		disabledSet[name] = true
	}

	for _, d := range env.registry.Descriptors() {
		state := enabledStyle.Render("enabled")
		name := d.Name
		if disabledSet[d.Name] {
			state = disabledStyle.Render("disabled")
			name = disabledStyle.Render(name)
		}
		fmt.Printf("%-20s %s\n", name, state)
		fmt.Printf("  %s: %s\n", d.DisplayName, d.Description)
	}

	return nil
}
