package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/aporotti/dashsearch/pkg/api"
	"github.com/fsnotify/fsnotify"
	"github.com/klauspost/compress/gzhttp"
	"github.com/urfave/cli/v3"
)

// ServeCommand creates the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the search API server",
		Action: func(ctx context.Context, c *cli.Command) error {
			return serve(ctx, c.String("config"))
		},
	}
}

// swappableHandler lets the running server adopt a new handler after a
// configuration reload without dropping the listener.
type swappableHandler struct {
	current atomic.Value // http.Handler
}

func (s *swappableHandler) Set(h http.Handler) {
	s.current.Store(h)
}

func (s *swappableHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.current.Load().(http.Handler).ServeHTTP(w, r)
}

// serve starts the HTTP API and keeps it running until interrupted. The
// configuration file is watched; edits are picked up without a restart
// (except for the listen address, which needs one).
func serve(ctx context.Context, configPath string) error {
	env, err := openEnv(configPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := env.Close(); err != nil {
			fmt.Printf("Warning: failed to close database: %v\n", err)
		}
	}()

	handler := &swappableHandler{}
	handler.Set(buildHandler(env))

	httpServer := &http.Server{
		Addr:    env.cfg.ListenAddr,
		Handler: gzhttp.GzipHandler(api.CorsMiddleware(handler)),
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("Serving search API on %s", env.cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Signal handling - includes SIGHUP for reload
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("Warning: failed to create config file watcher: %v", err)
	} else {
		defer func() {
			if err := watcher.Close(); err != nil {
				log.Printf("Warning: failed to close config file watcher: %v", err)
			}
		}()
		if err := watcher.Add(configPath); err != nil {
			log.Printf("Warning: failed to watch config file %s: %v", configPath, err)
		} else {
			log.Printf("Watching config file for changes: %s", configPath)
		}
	}

	reload := func() {
		newEnv, err := reloadEnv(configPath, env)
		if err != nil {
			log.Printf("Failed to reload configuration: %v", err)
			return
		}
		env = newEnv
		handler.Set(buildHandler(env))
		log.Println("Configuration reloaded successfully")
	}

	shutdown := func() error {
		fmt.Println("\nShutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}

	var watchEvents chan fsnotify.Event
	var watchErrors chan error
	if watcher != nil {
		watchEvents = watcher.Events
		watchErrors = watcher.Errors
	}

	for {
		select {
		case err := <-serverErr:
			return fmt.Errorf("http server: %w", err)
		case <-ctx.Done():
			return shutdown()
		case sig := <-sigCh:
			switch sig {
			case syscall.SIGHUP:
				log.Println("Received SIGHUP, reloading configuration...")
				reload()
			case syscall.SIGINT, syscall.SIGTERM:
				return shutdown()
			}
		case event, ok := <-watchEvents:
			if !ok {
				watchEvents = nil
				continue
			}
			// Editors often replace the file atomically, so rename and
			// remove count as changes too.
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				log.Printf("Config file changed: %s (event: %s), reloading...", event.Name, event.Op.String())

				if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
					time.Sleep(200 * time.Millisecond)
					if _, err := os.Stat(configPath); os.IsNotExist(err) {
						log.Printf("Config file was removed and not replaced, skipping reload")
						continue
					}
					if err := watcher.Add(configPath); err != nil {
						log.Printf("Warning: failed to re-watch config file: %v", err)
					}
				} else {
					time.Sleep(100 * time.Millisecond)
				}

				reload()
			}
		case err, ok := <-watchErrors:
			if !ok {
				watchErrors = nil
				continue
			}
			log.Printf("Config file watcher error: %v", err)
		}
	}
}

// buildHandler assembles the route table for the current environment.
func buildHandler(env *appEnv) http.Handler {
	server := api.NewServer(env.registry, env.store, env.searcher, env.opts, env.menus, env.cfg.MinQueryLength)
	mux := http.NewServeMux()
	server.RegisterRoutes(mux)
	return mux
}

// reloadEnv opens a fresh environment from disk and retires the old one.
// The listen address cannot change without a restart.
func reloadEnv(configPath string, old *appEnv) (*appEnv, error) {
	newEnv, err := openEnv(configPath)
	if err != nil {
		return nil, err
	}
	if newEnv.cfg.ListenAddr != old.cfg.ListenAddr {
		log.Printf("Note: listen_addr changed to %s, restart required for it to take effect", newEnv.cfg.ListenAddr)
	}
	if err := old.Close(); err != nil {
		log.Printf("Warning: failed to close previous database handle: %v", err)
	}
	return newEnv, nil
}
