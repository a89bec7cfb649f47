package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/cookiejar/internal/paths"
	"github.com/mesh-intelligence/cookiejar/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"
	envFileName    = ".env"
	envPrefix      = "COOKIEJAR"

	cfgKeyCapacity = "capacity"
	cfgKeyMarker   = "marker"
	cfgKeyIDs      = "ids"
	cfgKeyLogLevel = "log_level"
	cfgKeyColor    = "color"
)

// defaultConfigYAML is the content written to config.yaml on first run.
const defaultConfigYAML = `# Cookiejar configuration

# Number of cookies a new jar holds (non-negative integer)
capacity: 12

# Glyph drawn once per cookie by "show"
marker: "🍪"

# Cookie id scheme: sequence or uuid
ids: sequence

# Log level: debug, info, warn, error
log_level: warn

# Coloured shell output
color: true
`

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run, loads configDir/.env and
// ./.env into the environment when present, and lets COOKIEJAR_* variables
// override file values. A missing config.yaml is not an error.
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := ensureConfigDir(configDir); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}
	if err := loadEnvFiles(filepath.Join(configDir, envFileName), envFileName); err != nil {
		return nil, err
	}

	def := types.DefaultConfig()
	v := viper.New()
	v.SetDefault(cfgKeyCapacity, def.Capacity)
	v.SetDefault(cfgKeyMarker, def.Marker)
	v.SetDefault(cfgKeyIDs, def.IDs)
	v.SetDefault(cfgKeyLogLevel, def.LogLevel)
	v.SetDefault(cfgKeyColor, def.Color)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// loadEnvFiles loads each existing dotenv file. Variables already set in
// the environment win.
func loadEnvFiles(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// ensureConfigDir creates the config directory if it does not exist.
func ensureConfigDir(configDir string) error {
	return os.MkdirAll(configDir, 0o755)
}

// ensureDefaultConfigFile creates a default config.yaml if the file does not
// exist in the config directory.
func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, configFileExt)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// settingsFrom builds a validated Config from viper values overlaid with any
// flags the user set explicitly.
func settingsFrom(v *viper.Viper, f rootFlags, changed func(string) bool) (types.Config, error) {
	capText := v.GetString(cfgKeyCapacity)
	if changed("capacity") {
		capText = f.capacity
	}
	capacity, err := types.ParseCapacity(capText)
	if err != nil {
		return types.Config{}, err
	}

	cfg := types.Config{
		Capacity: capacity,
		Marker:   v.GetString(cfgKeyMarker),
		IDs:      v.GetString(cfgKeyIDs),
		LogLevel: v.GetString(cfgKeyLogLevel),
		Color:    v.GetBool(cfgKeyColor),
	}
	if changed("marker") {
		cfg.Marker = f.marker
	}
	if changed("ids") {
		cfg.IDs = f.ids
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if f.noColor {
		cfg.Color = false
	}

	if err := cfg.Validate(); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// loadSettings resolves the config directory, reads config.yaml and stores
// the effective settings on the app.
func (a *app) loadSettings(cmd *cobra.Command, args []string) error {
	configDir, err := paths.ResolveConfigDir(a.flags.configDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysErr(fmt.Errorf("load config: %w", err))
	}
	cfg, err := settingsFrom(v, a.flags, cmd.Flags().Changed)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	a.cfg = cfg
	return nil
}

func (a *app) newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.flags.jsonMode {
				return a.printJSONOrText(cmd.OutOrStdout(), a.cfg, "")
			}
			data, err := yaml.Marshal(&a.cfg)
			if err != nil {
				return sysErr(fmt.Errorf("marshal config: %w", err))
			}
			_, err = cmd.OutOrStdout().Write(data)
			return sysErr(err)
		},
	}
}
