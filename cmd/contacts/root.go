package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"contacts/internal/cms"
	"contacts/internal/config"
	"contacts/internal/contacts"
	"contacts/internal/logger"
)

// app carries the state shared by every subcommand.
type app struct {
	out    io.Writer
	errOut io.Writer
	cfg    *config.Config
	log    *logger.Logger
	repo   *contacts.Repository

	configPath string
	baseURL    string
	logLevel   string
	jsonOutput bool
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:           "contacts",
		Short:         "Manage the contact book stored in the CMS",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
	}

	root.SetOut(out)
	root.SetErr(errOut)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to YAML config file")
	flags.StringVar(&a.baseURL, "base-url", "", "CMS base URL (overrides config and "+config.EnvBaseURL+")")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.BoolVar(&a.jsonOutput, "json", false, "Print JSON instead of tables")

	root.AddCommand(
		newListCmd(a),
		newGetCmd(a),
		newCreateCmd(a),
		newUpdateCmd(a),
		newDeleteCmd(a),
		newFavoriteCmd(a),
		newSeedCmd(a),
		newConfigCmd(a),
	)

	return root
}

// setup resolves configuration in order: defaults, file, environment, flags.
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return a.fail(err)
	}

	if a.baseURL != "" {
		cfg.CMS.BaseURL = strings.TrimSuffix(a.baseURL, "/")
	}

	if a.logLevel != "" {
		cfg.Logging.Level = strings.ToLower(a.logLevel)
	}

	if err := cfg.Validate(); err != nil {
		return a.fail(err)
	}

	a.cfg = cfg
	a.log = logger.New(logger.Options{
		Writer: a.errOut,
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	return nil
}

// repository builds the repository on first use.
func (a *app) repository() *contacts.Repository {
	if a.repo != nil {
		return a.repo
	}

	client := cms.NewHTTPClient(a.cfg.CMS.BaseURL, a.log,
		cms.WithTimeout(a.cfg.CMS.GetTimeout()),
		cms.WithMaxResponseBytes(a.cfg.CMS.MaxResponseBytes()),
	)

	a.repo = contacts.NewRepository(client, contacts.Options{ForwardSearch: a.cfg.CMS.ForwardSearch}, a.log, nil)

	return a.repo
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}

func (a *app) fail(err error) error {
	fmt.Fprintf(a.errOut, "error: %v\n", err)
	return err
}
