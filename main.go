package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	stdlog "log"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"os_age_reporter/config"
	"os_age_reporter/mail"
	"os_age_reporter/probe"
	"os_age_reporter/report"
	"os_age_reporter/throttle"
)

type options struct {
	configPath string
	stateFile  string
	root       string
	noPrompt   bool
	debug      bool
	envFileErr error

	in  io.Reader
	out io.Writer
	log *zap.SugaredLogger

	now       func() time.Time
	probe     func(root string) (time.Time, error)
	newDialer func(cfg *config.AppConfig) mail.MailDialer
}

func defaultOptions(s config.Settings) *options {
	return &options{
		configPath: s.ConfigPath,
		stateFile:  s.StateFile,
		root:       s.Root,
		noPrompt:   s.NoPrompt,
		debug:      s.Debug,
		envFileErr: s.EnvFileErr,
		in:         os.Stdin,
		out:        os.Stdout,
		now:        time.Now,
		probe:      probe.InstallDate,
		newDialer:  mail.NewDialer,
	}
}

// errFatal marks a failure that has already been reported to the user.
var errFatal = errors.New("os-age-reporter: aborted")

func run(opts *options) error {
	log := opts.log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if opts.envFileErr != nil {
		log.Warnw("could not load settings.env", "error", opts.envFileErr)
	}

	configPath := opts.configPath
	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			fmt.Fprintf(opts.out, "Error: %v\n", err)
			return errFatal
		}
		configPath = p
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		var perr *config.ParseError
		switch {
		case errors.Is(err, fs.ErrNotExist):
			fmt.Fprintf(opts.out, "Error: Configuration file not found at %s\n", configPath)
			fmt.Fprintln(opts.out, "Please ensure the directory and file exist and are configured.")
		case errors.As(err, &perr):
			fmt.Fprintf(opts.out, "Error: Could not parse %s. Please check for syntax errors.\n", configPath)
		default:
			fmt.Fprintf(opts.out, "Error: %v\n", err)
		}
		log.Errorw("loading configuration failed", "path", configPath, "error", err)
		return errFatal
	}

	root := opts.root
	if root == "" {
		root = probe.DefaultRoot()
	}
	installDate, err := opts.probe(root)
	if err != nil {
		fmt.Fprintf(opts.out, "Error: Could not determine the modification time of the root directory '%s'.\n", root)
		log.Errorw("probing install date failed", "root", root, "error", err)
		return errFatal
	}

	now := opts.now()
	ageMessage := report.FormatAge(installDate, now)
	log.Debugw("computed os age", "install_date", installDate, "age", ageMessage)

	stateFile := opts.stateFile
	if stateFile == "" {
		p, err := throttle.DefaultPath()
		if err != nil {
			// Without a throttle file there is no way to honor the window.
			log.Warnw("skipping email, no throttle file location", "error", err)
		}
		stateFile = p
	}
	if stateFile != "" {
		dispatcher := mail.NewDispatcher(cfg, opts.newDialer(cfg), throttle.NewStore(stateFile), log, opts.out)
		dispatcher.SetClock(opts.now)
		dispatcher.CheckAndSend(ageMessage, now)
	}

	if err := report.Banner(opts.out, ageMessage); err != nil {
		return err
	}

	if opts.noPrompt {
		return nil
	}
	return awaitAcknowledgment(opts.in, opts.out)
}

// awaitAcknowledgment blocks until the user presses Enter or input closes.
func awaitAcknowledgment(in io.Reader, out io.Writer) error {
	fmt.Fprint(out, "Press Enter to exit...")
	_, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func setupLogger(debug bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Encoding = "console"
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncoderConfig.TimeKey = "ts"
	logger, err := cfg.Build()
	if err != nil {
		stdlog.Fatalf("failed to set up logger: %v", err)
	}
	return logger
}

func newRootCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "os-age-reporter",
		Short:         "Report how long this OS installation has existed",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if opts.log == nil {
				logger := setupLogger(opts.debug)
				defer logger.Sync() //nolint:errcheck
				opts.log = logger.Sugar()
			}
			opts.in = cmd.InOrStdin()
			opts.out = cmd.OutOrStdout()
			return run(opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", opts.configPath, "Path to config.json (default ~/.config/os-age-report/config.json)")
	cmd.Flags().StringVar(&opts.stateFile, "state-file", opts.stateFile, "Path to the last-email timestamp file (default ~/.os_age_last_email.txt)")
	cmd.Flags().StringVar(&opts.root, "root", opts.root, "Path whose modification time is the install date")
	cmd.Flags().BoolVar(&opts.noPrompt, "no-prompt", opts.noPrompt, "Exit without waiting for Enter")
	cmd.Flags().BoolVar(&opts.debug, "debug", opts.debug, "Enable debug logging")
	return cmd
}

func main() {
	settings := config.LoadSettings(config.DefaultSettingsPath())
	if err := newRootCommand(defaultOptions(settings)).Execute(); err != nil {
		if !errors.Is(err, errFatal) {
			fmt.Fprintf(os.Stdout, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
