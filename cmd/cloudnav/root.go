package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"cloudnav/internal/config"
	"cloudnav/internal/logging"
	"cloudnav/internal/storage"
	"cloudnav/internal/telemetry"
	"cloudnav/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

// session holds what every subcommand needs once flags are parsed.
type session struct {
	cfgFile string

	cfg       *config.Config
	log       zerolog.Logger
	logCloser io.Closer
	tel       *telemetry.Provider
}

// newRootCmd builds the command tree. The returned session must be closed
// once the command has run, whether or not it failed; see execute.
func newRootCmd() (*cobra.Command, *session) {
	s := &session{log: zerolog.Nop()}

	root := &cobra.Command{
		Use:           "cloudnav",
		Short:         "Browse cloud storage from the terminal",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" {
				return nil
			}
			return s.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return s.runBrowser(cmd)
		},
	}
	root.PersistentFlags().StringVarP(&s.cfgFile, "config", "c", "", "config file (default $XDG_CONFIG_HOME/cloudnav/config.yaml)")
	config.RegisterFlags(root.PersistentFlags())

	root.AddCommand(newLoginCmd(s), newMkdirCmd(s))
	return root, s
}

// execute runs root and then releases the session. Cobra skips post-run
// hooks when RunE fails, so the session is closed here instead.
func execute(ctx context.Context, root *cobra.Command, s *session) error {
	cmd, err := root.ExecuteContextC(ctx)
	if err != nil {
		s.log.Error().Err(err).Str("command", cmd.Name()).Msg("command failed")
	}
	return errors.Join(err, s.close(ctx))
}

func (s *session) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(s.cfgFile, cmd.Root().PersistentFlags())
	if err != nil {
		return err
	}
	s.cfg = cfg

	log, closer, err := logging.Open(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	s.log = log.With().Str("backend", cfg.Backend).Logger()
	s.logCloser = closer

	tel, err := telemetry.NewProvider(cmd.Context(), cfg.Otel.Endpoint, cfg.Otel.Insecure)
	if err != nil {
		return errors.Join(fmt.Errorf("init telemetry: %w", err), s.close(cmd.Context()))
	}
	s.tel = tel
	s.log.Info().Str("version", Version).Bool("tracing", tel.Enabled()).Msg("cloudnav starting")
	return nil
}

// close flushes traces and closes the log file. It is safe to call more
// than once and after a partial setup.
func (s *session) close(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	var errs []error
	if err := s.tel.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("flush traces: %w", err))
	}
	s.tel = nil
	if s.logCloser != nil {
		s.log = zerolog.Nop()
		errs = append(errs, s.logCloser.Close())
		s.logCloser = nil
	}
	return errors.Join(errs...)
}

// openStorage opens the configured backend wrapped with tracing. The
// returned func releases it.
func (s *session) openStorage(ctx context.Context) (storage.Manager, func(), error) {
	m, err := openBackend(ctx, s.cfg)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if c, ok := m.(storage.Closer); ok {
			if err := c.Close(); err != nil {
				s.log.Warn().Err(err).Msg("close backend")
			}
		}
	}
	return storage.NewTraced(m, s.tel.Tracer(), s.log, s.cfg.Backend), release, nil
}

func (s *session) runBrowser(cmd *cobra.Command) error {
	m, release, err := s.openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer release()

	model := ui.NewAppModel(ui.Options{
		Storage:       m,
		Log:           s.log,
		Start:         s.cfg.Start,
		Timeout:       s.cfg.Timeout,
		ToastDuration: s.cfg.ToastDuration,
	}).AsTeaModel()
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
