package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/urfave/cli/v3"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Define styles using lipgloss
var (
	queryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			Background(lipgloss.Color("235")).
			Padding(0, 1).
			Margin(0, 0, 1, 0)

	resultTextStyle = lipgloss.NewStyle().
			Bold(true)

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	linkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	noLinkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	noResultsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)
)

// SearchCommand creates the search command
func SearchCommand() *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Run a search the way the dashboard widget would",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "query",
				Usage: "Search query",
			},
			&cli.StringFlag{
				Name:  "user",
				Usage: "Login of the user to search as (defaults to an administrator identity)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return runSearch(c.String("config"), c.String("query"), c.String("user"))
		},
	}
}

func runSearch(configPath, query, login string) error {
	env, err := openEnv(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := env.Close(); err != nil {
			fmt.Printf("Warning: failed to close database: %v\n", err)
		}
	}()

	user, err := env.resolveUser(login)
	if err != nil {
		return fmt.Errorf("resolving user %q: %w", login, err)
	}

	results, err := env.searcher.Search(user, query)
	if err != nil {
		return fmt.Errorf("searching: %w", err)
	}

	fmt.Println(queryStyle.Render(fmt.Sprintf("Search: %q as %s", query, user.Login)))

	if len(results) == 0 {
		fmt.Println(noResultsStyle.Render("No results."))
		return nil
	}

	titleCaser := cases.Title(language.English)
	for _, r := range results {
		category := r.Description
		if category == "" {
			category = titleCaser.String("result")
		}
		fmt.Printf("%2d. %s %s\n", r.ID,
			resultTextStyle.Render(r.Text),
			categoryStyle.Render("["+category+"]"))
		if r.LinkURL != "" {
			fmt.Printf("    %s\n", linkStyle.Render(r.LinkURL))
		} else {
			fmt.Printf("    %s\n", noLinkStyle.Render("no destination available"))
		}
	}
	fmt.Printf("\n%d results\n", len(results))

	return nil
}
