package ingest

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/BurntSushi/toml"

	"alpenworks.io/resort-services/internal/common"
)

type ConfigFile struct {
	DefaultArea        string `toml:"area"`
	DatabaseConnection string `toml:"database"`
}

type Config struct {
	Version        bool
	TomlConfigPath string

	// Resort name or locality to geocode, e.g. "Zauchensee".
	Area string

	// Output args - exactly one of dry-run, seed-out or a database
	// connection must be chosen.
	DryRun             bool
	SeedOutPath        string
	DatabaseConnection string
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
	fs.StringVar(&cfg.TomlConfigPath, "toml", "", "Configuration file")
	fs.StringVar(&cfg.Area, "area", "", "Resort or locality to extract lifts for")

	fs.BoolVar(&cfg.DryRun, "dry-run", false, "If specified, shows what would be ingested without performing any writes")
	fs.StringVar(&cfg.SeedOutPath, "seed-out", "", "Path to write extracted lifts as a TOML seed file")
	fs.StringVar(&cfg.DatabaseConnection, "database", "", "Connection string for the target database")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Version {
		fmt.Fprintf(errOut, "%s: version %s (%s)\n", programName, common.Version, common.GitCommit)
		return cfg, flag.ErrHelp
	}

	if cfg.TomlConfigPath != "" {
		tomlCfg, err := LoadConfigFromToml(cfg.TomlConfigPath)
		if err != nil {
			return Config{}, fmt.Errorf("LoadConfigFromToml: %w", err)
		}

		if cfg.Area == "" {
			cfg.Area = tomlCfg.DefaultArea
		}
		if cfg.DatabaseConnection == "" && !cfg.DryRun && cfg.SeedOutPath == "" {
			cfg.DatabaseConnection = tomlCfg.DatabaseConnection
		}
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (cfg Config) Validate() error {
	if cfg.Area == "" {
		return fmt.Errorf("Missing required argument: area")
	}

	outputs := 0
	if cfg.DryRun {
		outputs++
	}
	if cfg.SeedOutPath != "" {
		outputs++
	}
	if cfg.DatabaseConnection != "" {
		outputs++
	}
	if outputs != 1 {
		return fmt.Errorf("Exactly one of --dry-run, --seed-out or --database must be specified")
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

	return Run(cfg, stdOut)
}
