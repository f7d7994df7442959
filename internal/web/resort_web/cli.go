package resort_web

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"alpenworks.io/resort-services/internal/common"
)

type ConfigFile struct {
	ListenAddress    string `toml:"listen_address"`
	Database         string `toml:"database"`
	Seed             string `toml:"seed"`
	TelemetryAddress string `toml:"telemetry_address"`
	PollSeconds      int    `toml:"poll_seconds"`
}

type Config struct {
	Version bool

	// Toml config path - if specified, will ignore all other args and
	// read from this config file instead
	TomlConfigPath string

	ListenAddress      string
	DatabaseConnection string
	SeedPath           string
	TelemetryAddress   string
	PollSeconds        int
}

func LoadConfigFromToml(path string) (ConfigFile, error) {
	var cfg ConfigFile
	_, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return ConfigFile{}, err
	}

	return cfg, nil
}

func ParseArgs(programName string, args []string, errOut io.Writer) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errOut)

	fs.Usage = func() {
		fmt.Fprintf(errOut, "Usage: %s [options]\n\n", programName)
		fmt.Fprintln(errOut, "Options")
		fs.PrintDefaults()
	}

	fs.BoolVar(&cfg.Version, "version", false, "Prints CLI version")

	fs.StringVar(&cfg.TomlConfigPath, "toml", "", "Ignore all other args and read from this config file instead")
	fs.StringVar(&cfg.ListenAddress, "listen", ":8080", "HTTP listen address")
	fs.StringVar(&cfg.DatabaseConnection, "database", "", "Serve lifts from this Postgres connection")
	fs.StringVar(&cfg.SeedPath, "seed", "", "Serve lifts from this TOML seed file")
	fs.StringVar(&cfg.TelemetryAddress, "telemetry", "", "Expose prometheus metrics and pprof on this address")
	fs.IntVar(&cfg.PollSeconds, "poll", 5, "Fallback refresh interval for viewers without a live socket")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Version {
		fmt.Fprintf(errOut, "%s: version %s (%s)\n", programName, common.Version, common.GitCommit)
		return Config{}, flag.ErrHelp
	}

	if cfg.TomlConfigPath != "" {
		tomlCfg, err := LoadConfigFromToml(cfg.TomlConfigPath)
		if err != nil {
			return Config{}, fmt.Errorf("LoadConfigFromToml: %w", err)
		}

		cfg.ListenAddress = tomlCfg.ListenAddress
		cfg.DatabaseConnection = tomlCfg.Database
		cfg.SeedPath = tomlCfg.Seed
		cfg.TelemetryAddress = tomlCfg.TelemetryAddress
		cfg.PollSeconds = tomlCfg.PollSeconds
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.ListenAddress == "" {
		return fmt.Errorf("Missing required argument: listen")
	}
	if cfg.DatabaseConnection != "" && cfg.SeedPath != "" {
		return fmt.Errorf("At most one of -database or -seed may be specified")
	}
	return nil
}

func Main(programName string, args []string, stdOut, errOut io.Writer) int {
	cfg, err := ParseArgs(programName, args, errOut)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(errOut, "Error:", err)
		return -1
	}

	return Run(cfg)
}
