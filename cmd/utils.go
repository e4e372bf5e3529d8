package cmd

import (
	"fmt"

	"github.com/aporotti/dashsearch/pkg/config"
	"github.com/aporotti/dashsearch/pkg/core"
	"github.com/aporotti/dashsearch/pkg/menu"
	"github.com/aporotti/dashsearch/pkg/providers"
	"github.com/aporotti/dashsearch/pkg/search"
	"github.com/aporotti/dashsearch/pkg/settings"
	"github.com/aporotti/dashsearch/pkg/storage"
)

// appEnv bundles everything a command needs: the loaded config, the open
// admin database and the fully wired search engine on top of it.
type appEnv struct {
	cfg      *config.Config
	store    *storage.Store
	opts     *settings.Store
	menus    *menu.Cache
	registry *core.Registry
	searcher *search.Service
}

// openEnv loads the configuration, opens the admin database and wires the
// provider registry. Callers must Close the returned env.
func openEnv(configPath string) (*appEnv, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	store, err := storage.Open(cfg.DBPath())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	opts := settings.NewStore(store)
	if err := opts.EnsureDefaults(); err != nil {
		if cerr := store.Close(); cerr != nil {
			fmt.Printf("Warning: failed to close store: %v\n", cerr)
		}
		return nil, fmt.Errorf("ensuring default settings: %w", err)
	}

	menus := menu.NewCache(store)
	registry := core.NewRegistry()
	if err := providers.RegisterAll(registry, providers.Deps{
		Store:    store,
		Menus:    menus,
		AdminURL: cfg.AdminURL,
		SiteURL:  cfg.SiteURL,
	}); err != nil {
		if cerr := store.Close(); cerr != nil {
			fmt.Printf("Warning: failed to close store: %v\n", cerr)
		}
		return nil, fmt.Errorf("registering providers: %w", err)
	}

	return &appEnv{
		cfg:      cfg,
		store:    store,
		opts:     opts,
		menus:    menus,
		registry: registry,
		searcher: search.NewService(registry, opts),
	}, nil
}

func (e *appEnv) Close() error {
	return e.store.Close()
}

// resolveUser maps a --user flag value to a stored user, defaulting to an
// administrator identity when the flag is empty so local commands behave
// like the site owner.
func (e *appEnv) resolveUser(login string) (core.User, error) {
	if login == "" {
		return core.User{ID: 0, Login: "cli", DisplayName: "CLI", Role: core.RoleAdmin}, nil
	}
	return e.store.UserByLogin(login)
}
