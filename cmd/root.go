package cmd

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/umutgultepe/recruiting-analyst/internal/greenhouse"
	"github.com/umutgultepe/recruiting-analyst/internal/hydrate"
	"github.com/umutgultepe/recruiting-analyst/internal/jobcache"
	"github.com/umutgultepe/recruiting-analyst/internal/logger"
	"github.com/umutgultepe/recruiting-analyst/internal/secrets"
)

const (
	app = "analyst"

	defaultDomain    = "app.greenhouse.io"
	defaultCachePath = "jobs.yaml"
)

type Config struct {
	// Domain is the ATS web host used to build candidate permalinks.
	Domain      string   `mapstructure:"domain"`
	TokenFile   string   `mapstructure:"token-file"`
	CachePath   string   `mapstructure:"cache-path"`
	Departments []string `mapstructure:"departments"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "analyst pulls recruiting-pipeline data from Greenhouse and generates CSV reports",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("token-file", "GREENHOUSE_TOKEN_FILE"); err != nil {
		log.Fatalf("binding GREENHOUSE_TOKEN_FILE environment variable: %v", err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is analyst.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))

	viper.SetDefault("domain", defaultDomain)
	viper.SetDefault("cache-path", defaultCachePath)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app + ".yaml")
		viper.SetConfigType("yaml")
	}

	// A missing config file is fine (defaults and env cover the basics),
	// a malformed one is not.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}

	return config, nil
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}
	return l
}

func resolveToken(config *Config) (string, error) {
	if config == nil {
		return "", errors.New("config is required")
	}

	tokenFile := strings.TrimSpace(config.TokenFile)
	if tokenFile == "" {
		tokenFile = strings.TrimSpace(viper.GetString("token-file"))
	}

	if tokenFile == "" {
		return "", errors.New("greenhouse token file is not configured")
	}

	return secrets.Load(secrets.Source{
		Name: "greenhouse api token",
		File: tokenFile,
	})
}

func newClient(ctx context.Context, config *Config, l *zap.Logger) *greenhouse.Client {
	token, err := resolveToken(config)
	if err != nil {
		l.Fatal(
			"loading greenhouse token",
			zap.Error(err),
			zap.String("hint", "set GREENHOUSE_TOKEN_FILE environment variable or the 'token-file' key in the configuration file"),
		)
	}

	return greenhouse.New(ctx, l, token)
}

func openCache(config *Config, l *zap.Logger) *jobcache.Manager {
	manager, err := jobcache.New(config.CachePath, l)
	if err != nil {
		l.Fatal("loading job cache", zap.Error(err), zap.String("path", config.CachePath))
	}
	return manager
}

func newHydrator(client *greenhouse.Client, l *zap.Logger) *hydrate.Hydrator {
	return hydrate.New(client, l)
}

// outputWriter returns stdout or the file given via --output.
func outputWriter(cmd *cobra.Command) (io.Writer, func(), error) {
	path, _ := cmd.Flags().GetString("output")
	if path == "" {
		return os.Stdout, func() {}, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}

	return file, func() { file.Close() }, nil
}
