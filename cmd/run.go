package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/gradewise/internal/api"
	"github.com/abhisek/gradewise/internal/app"
	"github.com/abhisek/gradewise/internal/config"
	"github.com/abhisek/gradewise/internal/gradesync"
	"github.com/abhisek/gradewise/internal/logger"
	"github.com/abhisek/gradewise/internal/store"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg := loadConfig(cmd)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.Nop()
	if cfg.Log.File != "" {
		l, err := logger.NewFile(cfg.Log.Mode, cfg.Log.File)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer l.Sync()
		log = l
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if cfg.API.Token == "" {
		fmt.Fprintln(os.Stderr, "No token configured; set GRADEWISE_TOKEN or pass --token to edit weights.")
	}

	notices := &gradesync.NoticeLog{}
	adapter := gradesync.New(newClient(cfg), cfg.API.SubjectID,
		gradesync.WithNotifier(notices),
		gradesync.WithEventRepo(st.EventRepo()),
		gradesync.WithLogger(log),
	)

	return app.Run(app.Options{
		Adapter: adapter,
		Notices: notices,
		Events:  st.EventRepo(),
		Log:     log,
	})
}

func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func newClient(cfg config.Config) *api.Client {
	return api.NewClient(cfg.API.BaseURL,
		api.WithToken(cfg.API.Token),
		api.WithTimeout(cfg.API.Timeout),
	)
}

// newCLIAdapter builds an adapter for one-shot commands. Notices are
// printed to stdout (info) or stderr (errors).
func newCLIAdapter(cfg config.Config, events store.EventRepo, log *logger.Logger) *gradesync.Adapter {
	printer := gradesync.NotifierFunc(func(n gradesync.Notice) {
		if n.Level == gradesync.NoticeError {
			fmt.Fprintln(os.Stderr, n.Text)
			return
		}
		fmt.Println(n.Text)
	})
	return gradesync.New(newClient(cfg), cfg.API.SubjectID,
		gradesync.WithNotifier(printer),
		gradesync.WithEventRepo(events),
		gradesync.WithLogger(log),
	)
}

// cliLogger logs to the configured file. Without one, one-shot commands
// keep their output to the notices.
func cliLogger(cfg config.Config) (*logger.Logger, error) {
	if cfg.Log.File != "" {
		return logger.NewFile(cfg.Log.Mode, cfg.Log.File)
	}
	return logger.Nop(), nil
}
