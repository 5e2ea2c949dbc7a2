// stbctl drives a set-top box over its remote-control WebSocket interface.
//
// Usage:
//
//	stbctl --host 192.168.1.246 press volUp [button ...]
//	stbctl --host 192.168.1.246 versions
//	stbctl --host 192.168.1.246 power
//	stbctl --host 192.168.1.246 watch [--poll 30s]
//	stbctl version
//
// A config file can replace the --host flag:
//
//	stbctl --config stbctl.yaml press ok
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pmarean/stb8ctl/internal/config"
	"github.com/pmarean/stb8ctl/internal/remote"
	"github.com/pmarean/stb8ctl/internal/status"
	"github.com/pmarean/stb8ctl/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	host := flag.String("host", "", "box address (overrides config)")
	timeout := flag.Int("timeout", -1, "command timeout in seconds, 0 = wait forever (overrides config)")
	poll := flag.Duration("poll", 0, "watch mode: also poll power state at this interval")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: stbctl [flags] press|versions|power|watch|version ...")
		os.Exit(2)
	}

	if args[0] == "version" {
		fmt.Println("stbctl", version.String())
		return
	}

	cfg, err := resolveConfig(*configPath, *host, *timeout)
	if err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal")
		cancel()
	}()

	if err := run(ctx, cfg, logger, args, *poll); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// resolveConfig merges the config file with command-line overrides.
func resolveConfig(path, host string, timeoutSeconds int) (*config.Config, error) {
	var cfg *config.Config

	if path != "" {
		loaded, err := config.LoadAndValidate(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = &config.Config{}
		cfg.Remote.Port = config.DefaultRemotePort
		cfg.Status.Port = config.DefaultStatusPort
		seconds := config.DefaultTimeoutSeconds
		cfg.Remote.TimeoutSeconds = &seconds
	}

	if host != "" {
		cfg.Box.Host = host
	}
	if timeoutSeconds >= 0 {
		cfg.Remote.TimeoutSeconds = &timeoutSeconds
	}

	if cfg.Box.Host == "" {
		return nil, fmt.Errorf("box host is required (--host or config file)")
	}
	return cfg, nil
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger, args []string, poll time.Duration) error {
	switch args[0] {
	case "press":
		if len(args) < 2 {
			return fmt.Errorf("press: at least one button name required")
		}
		return pressButtons(ctx, cfg, logger, args[1:])

	case "versions":
		return printVersions(ctx, cfg, logger)

	case "power":
		return printPower(ctx, cfg, logger)

	case "watch":
		return watch(ctx, cfg, logger, poll)

	default:
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func dialRemote(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*remote.Remote, error) {
	return remote.Dial(ctx, remote.Config{
		Host:    cfg.Box.Host,
		Port:    cfg.Remote.Port,
		Timeout: cfg.RemoteTimeout(),
	}, logger)
}

func pressButtons(ctx context.Context, cfg *config.Config, logger *slog.Logger, buttons []string) error {
	r, err := dialRemote(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, button := range buttons {
		if err := r.PressButton(button); err != nil {
			return err
		}
		logger.Debug("button acknowledged", "button", button)
	}
	return nil
}

func printVersions(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	r, err := dialRemote(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer r.Close()

	versions, err := r.Versions()
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(versions, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func printPower(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	r, err := dialRemote(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer r.Close()

	on, err := r.IsPowerOn()
	if err != nil {
		return err
	}
	if on {
		fmt.Println("on")
	} else {
		fmt.Println("off")
	}
	return nil
}

// watch prints every power-status push until interrupted. With --poll it
// also probes the command connection at a fixed interval, which catches
// state the box never pushed.
func watch(ctx context.Context, cfg *config.Config, logger *slog.Logger, poll time.Duration) error {
	listener, err := status.Dial(ctx, status.Config{
		Host: cfg.Box.Host,
		Port: cfg.Status.Port,
		OnStatusChange: func(powerOn bool) {
			if powerOn {
				fmt.Println("power: on")
			} else {
				fmt.Println("power: off")
			}
		},
	}, logger)
	if err != nil {
		return err
	}
	defer listener.Close()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-ctx.Done()
		return nil
	})

	if poll > 0 {
		r, err := dialRemote(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer r.Close()

		g.Go(func() error {
			ticker := time.NewTicker(poll)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					on, err := r.IsPowerOn()
					if err != nil {
						return err
					}
					if on {
						fmt.Println("poll: on")
					} else {
						fmt.Println("poll: off")
					}
				}
			}
		})
	}

	logger.Info("watching status pushes", "host", cfg.Box.Host, "port", cfg.Status.Port)
	return g.Wait()
}
