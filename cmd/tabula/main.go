package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/ajitpratap0/tabula/pkg/config"
	"github.com/ajitpratap0/tabula/pkg/errors"
	"github.com/ajitpratap0/tabula/pkg/logger"
	"github.com/ajitpratap0/tabula/pkg/metrics"
	"github.com/ajitpratap0/tabula/pkg/tableio"
)

var version = "0.1.0"

// app carries what every subcommand needs once the root pre-run has built
// it from flags, environment and the config file
type app struct {
	v         *viper.Viper
	cfg       *config.Config
	log       *zap.Logger
	collector *metrics.Collector
	adapter   *tableio.Adapter
}

func main() {
	a := newApp()
	if err := a.execute(a.rootCommand()); err != nil {
		os.Exit(exitCode(err))
	}
}

func newApp() *app {
	return &app{v: viper.New()}
}

// execute runs root and tears down afterwards whether or not the command
// failed, so the metrics file also records failed runs
func (a *app) execute(root *cobra.Command) error {
	err := root.Execute()
	if terr := a.teardown(); err == nil {
		err = terr
	}
	return err
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "tabula",
		Short: "tabula - load, reshape and save small tables",
		Long: `tabula reads tables from delimited text or Avro container files, detects and
coerces column types, selects rows and writes the result back out, optionally
split into fixed-size chunk files.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Path to YAML configuration file")
	flags.String("log-level", "", "Log level (debug, info, warn, error)")
	flags.String("log-format", "", "Log encoding (json, console)")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file on exit")

	_ = a.v.BindPFlag("config", flags.Lookup("config"))
	_ = a.v.BindPFlag("logging.level", flags.Lookup("log-level"))
	_ = a.v.BindPFlag("logging.encoding", flags.Lookup("log-format"))
	_ = a.v.BindPFlag("metrics.file", flags.Lookup("metrics-file"))

	a.v.SetEnvPrefix("TABULA")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()
	for _, key := range []string{"text.comma", "text.compression", "text.compression_level", "binary.codec", "chunking.max_rows", "metrics.namespace"} {
		_ = a.v.BindEnv(key)
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "tabula v%s\n", version)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})
	root.AddCommand(
		a.convertCommand(),
		a.typesCommand(),
		a.coerceCommand(),
		a.rowsCommand(),
		a.printCommand(),
	)

	return root
}

// setup resolves configuration in increasing precedence: defaults, config
// file, TABULA_* environment variables, flags
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if path := a.v.GetString("config"); path != "" {
		loaded, err := config.LoadFile(path)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	overrideString(a.v, "logging.level", &cfg.Logging.Level)
	overrideString(a.v, "logging.encoding", &cfg.Logging.Encoding)
	overrideString(a.v, "text.comma", &cfg.Text.Comma)
	overrideString(a.v, "text.compression", &cfg.Text.Compression)
	overrideString(a.v, "text.compression_level", &cfg.Text.CompressionLevel)
	overrideString(a.v, "binary.codec", &cfg.Binary.Codec)
	overrideString(a.v, "metrics.namespace", &cfg.Metrics.Namespace)
	overrideString(a.v, "metrics.file", &cfg.Metrics.File)
	if a.v.IsSet("chunking.max_rows") {
		cfg.Chunking.MaxRows = a.v.GetInt("chunking.max_rows")
	}
	if cfg.Metrics.File != "" {
		cfg.Metrics.Enabled = true
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging); err != nil {
		return errors.Wrap(err, errors.ErrorTypeConfig, "invalid logging settings")
	}

	a.cfg = cfg
	a.log = logger.Get().With(zap.String("command", cmd.Name()))
	a.collector = metrics.NewCollector(cfg.Metrics.Namespace)
	a.adapter = tableio.New(cfg, logger.Get(), a.collector)
	a.log.Debug("configuration resolved",
		zap.String("compression", cfg.Text.Compression),
		zap.String("codec", cfg.Binary.Codec),
		zap.Int("max_rows", cfg.Chunking.MaxRows))
	return nil
}

func (a *app) teardown() error {
	if a.log != nil {
		_ = logger.Sync()
	}
	if a.cfg == nil || !a.cfg.Metrics.Enabled || a.cfg.Metrics.File == "" {
		return nil
	}
	if err := a.collector.WriteToTextfile(a.cfg.Metrics.File); err != nil {
		return errors.Wrap(err, errors.ErrorTypeWrite, "failed to write metrics file").
			WithDetail("path", a.cfg.Metrics.File)
	}
	return nil
}

func overrideString(v *viper.Viper, key string, dst *string) {
	if v.IsSet(key) {
		if s := v.GetString(key); s != "" {
			*dst = s
		}
	}
}

// exitCode maps error types to process exit statuses
func exitCode(err error) int {
	switch {
	case errors.IsType(err, errors.ErrorTypeNotFound), errors.IsType(err, errors.ErrorTypeFile):
		return 3
	case errors.IsType(err, errors.ErrorTypeFormat):
		return 4
	case errors.IsType(err, errors.ErrorTypeConversion), errors.IsType(err, errors.ErrorTypeColumn),
		errors.IsType(err, errors.ErrorTypeShape):
		return 5
	case errors.IsType(err, errors.ErrorTypeWrite):
		return 6
	case errors.IsType(err, errors.ErrorTypeConfig), errors.IsType(err, errors.ErrorTypeValidation):
		return 2
	default:
		return 1
	}
}
