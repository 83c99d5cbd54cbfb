package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/hiring-assistant/internal/api"
	"github.com/jonathan/hiring-assistant/internal/config"
	"github.com/jonathan/hiring-assistant/internal/fetch"
	"github.com/jonathan/hiring-assistant/internal/ingestion"
	"github.com/jonathan/hiring-assistant/internal/intake"
	"github.com/jonathan/hiring-assistant/internal/observability"
	"github.com/jonathan/hiring-assistant/internal/session"
	"github.com/jonathan/hiring-assistant/internal/workspace"
	"github.com/spf13/cobra"
)

// app is the wiring shared by the client subcommands.
type app struct {
	cfg       config.Config
	session   *session.Manager
	client    *api.Client
	workspace *workspace.Workspace
	auth      *workspace.AuthForm
	printer   *observability.Printer
	out       io.Writer
	in        *bufio.Reader
}

// resolveConfig layers the configuration: flags, then the config file, then
// environment variables, then built-in defaults.
func (o *rootOptions) resolveConfig(cmd *cobra.Command) (config.Config, error) {
	defaults := config.Defaults()
	storage, err := config.DefaultStorageFile()
	if err == nil {
		defaults.StorageFile = storage
	}

	env, err := config.FromEnv()
	if err != nil {
		return config.Config{}, err
	}
	defaults = env.MergeWithDefaults(defaults)

	var cfg config.Config
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("api-url") {
		cfg.APIURL = o.apiURL
	}
	if flags.Changed("storage-file") {
		cfg.StorageFile = o.storageFile
	}
	if o.verbose {
		cfg.Verbose = true
	}

	cfg = cfg.MergeWithDefaults(defaults)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if cfg.StorageFile == "" {
		return config.Config{}, fmt.Errorf("no session storage file: set --storage-file or HIREASSIST_STORAGE_FILE")
	}
	return cfg, nil
}

// newApp restores the persisted session and wires the client stack.
// Command-specific overrides are applied to the resolved configuration.
func (o *rootOptions) newApp(cmd *cobra.Command, overrides ...func(*config.Config)) (*app, error) {
	cfg, err := o.resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	for _, override := range overrides {
		override(&cfg)
	}

	mgr := session.NewManager(session.NewFileStorage(cfg.StorageFile), cfg.Verbose)
	mgr.Restore()

	client := api.NewClient(cfg.APIBase(), &api.Options{
		Timeout: cfg.Timeout(),
		Token:   mgr.Token,
		Verbose: cfg.Verbose,
	})

	policy := intake.Policy{
		AllowedExtensions: cfg.AllowedExtensions,
		MaxSize:           cfg.MaxFileSize(),
		Permissive:        cfg.Permissive,
		Probe:             cfg.ProbeFiles,
	}

	return &app{
		cfg:     cfg,
		session: mgr,
		client:  client,
		workspace: workspace.New(mgr, client, workspace.Options{
			JobID:   cfg.JobID,
			Policy:  policy,
			Verbose: cfg.Verbose,
		}),
		auth:    workspace.NewAuthForm(client, mgr),
		printer: observability.NewPrinter(cmd.OutOrStdout()),
		out:     cmd.OutOrStdout(),
		in:      bufio.NewReader(cmd.InOrStdin()),
	}, nil
}

// requireSession fails fast when no session was restored.
func (a *app) requireSession() error {
	if a.session.State() != session.Authenticated {
		return fmt.Errorf("%w: run 'hireassist login' first", workspace.ErrNotAuthenticated)
	}
	return nil
}

// prompt reads one line from stdin after printing label.
func (a *app) prompt(label string) (string, error) {
	_, _ = fmt.Fprint(a.out, label)
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// jdFlags are the mutually exclusive job-description inputs.
type jdFlags struct {
	text    string
	file    string
	url     string
	browser bool
}

func (f *jdFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.text, "text", "", "Job description text")
	cmd.Flags().StringVar(&f.file, "jd-file", "", "Path to a plain-text job description")
	cmd.Flags().StringVar(&f.url, "jd-url", "", "URL of a job posting")
	cmd.Flags().BoolVar(&f.browser, "browser", false, "Render --jd-url in headless Chrome when the static page has too little text")
	cmd.MarkFlagsMutuallyExclusive("text", "jd-file", "jd-url")
}

func (f *jdFlags) set() bool {
	return f.text != "" || f.file != "" || f.url != ""
}

// load reads the job description, logging the source when verbose.
func (f *jdFlags) load(cmd *cobra.Command, a *app) (*ingestion.JobDescription, error) {
	opts := &ingestion.Options{
		Fetch:      fetch.DefaultOptions(),
		UseBrowser: f.browser || a.cfg.UseBrowser,
		Verbose:    a.cfg.Verbose,
	}
	opts.Fetch.Timeout = a.cfg.Timeout()

	jd, err := ingestion.Load(cmd.Context(), ingestion.Source{Text: f.text, File: f.file, URL: f.url}, opts)
	if err != nil {
		return nil, err
	}
	if a.cfg.Verbose && jd.Location != "" {
		_, _ = fmt.Fprintf(a.out, "Loaded job description from %s (%d chars)\n", jd.Location, len(jd.Text))
	}
	return jd, nil
}
