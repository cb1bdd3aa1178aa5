package cmd

import (
	"bytes"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cmmoran/apidocgen/internal/storage"
)

const (
	envPrefix  = "APIDOCGEN"
	levelTrace = slog.Level(-8)
)

var (
	configFiles    []string
	level, version string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "apidocgen",
	Short:        "REST API documentation from annotated Go source",
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&level, "level", "l", "info", "log level (trace, debug, info, warn, error, debug+1, etc)")
	rootCmd.PersistentFlags().StringSliceVar(&configFiles, "config", []string{}, "config file(s) - multiple config files are merged with last specified file having highest priority")

	rootCmd.PersistentFlags().String("s3-endpoint", "", "S3-compatible endpoint for s3:// locations")
	rootCmd.PersistentFlags().String("s3-region", "us-east-1", "S3 region")
	rootCmd.PersistentFlags().String("s3-access-key", "", "S3 access key")
	rootCmd.PersistentFlags().String("s3-secret-key", "", "S3 secret key")
	rootCmd.PersistentFlags().Bool("s3-use-ssl", false, "use TLS for the S3 endpoint")
	for _, name := range []string{"s3-endpoint", "s3-region", "s3-access-key", "s3-secret-key", "s3-use-ssl"} {
		_ = viper.BindPFlag("s3."+flagKey(strings.TrimPrefix(name, "s3-")), rootCmd.PersistentFlags().Lookup(name))
	}
}

func parseLevel(s string) (slog.Level, error) {
	var ll slog.Level
	if strings.EqualFold(s, "trace") {
		return levelTrace, nil
	}
	err := (&ll).UnmarshalText([]byte(s))
	return ll, err
}

// initConfig reads in .env, config file(s) and ENV variables if set.
func initConfig() {
	_ = godotenv.Load()

	ll, err := parseLevel(level)
	if err != nil {
		panic("invalid log level: " + level)
	}
	l := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       ll,
		ReplaceAttr: nil,
	}))
	slog.SetDefault(l)

	if len(configFiles) > 0 {
		// Use config file from the flag.
		viper.SetConfigFile(configFiles[0])
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/apidocgen")
		viper.SetConfigType("yaml")
		viper.SetConfigName("apidocgen")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		l.With("config", viper.ConfigFileUsed()).Info("using config file(s)")
	} else {
		l.With("error", err, "config", viper.ConfigFileUsed()).Debug("unable to use config file(s)")
	}
	if len(configFiles) > 1 {
		for _, file := range configFiles[1:] {
			if configBytes, err := os.ReadFile(file); err == nil {
				if err = viper.MergeConfig(bytes.NewReader(configBytes)); err != nil {
					l.With("error", err, "file", file).Warn("failed to merge config file")
				} else {
					l.With("file", file).Info("merged config file")
				}
			}
		}
	}
	if len(version) > 0 {
		viper.Set("version", version)
	}

	// a level from config applies only when --level was not given
	if llstr := viper.GetString("common.log.level"); llstr != "" && !rootCmd.PersistentFlags().Changed("level") {
		cl, err := parseLevel(llstr)
		if err != nil {
			panic("invalid log level: " + llstr)
		}
		l = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			AddSource:   false,
			Level:       cl,
			ReplaceAttr: nil,
		}))

		slog.SetDefault(l)
	}
}

// flagKey maps a flag name to its config key.
func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

// bindFlags binds every local flag of c under prefix, so config files and
// APIDOCGEN_<PREFIX>_<FLAG> environment variables fill unset flags. It runs
// before the command executes so commands sharing a prefix do not collide.
func bindFlags(c *cobra.Command, prefix string) error {
	var err error
	c.LocalFlags().VisitAll(func(f *pflag.Flag) {
		if err == nil {
			err = viper.BindPFlag(prefix+"."+flagKey(f.Name), f)
		}
	})
	return err
}

// locations returns the storage used for every input and output location.
func locations() *storage.Locations {
	return storage.NewLocations(&storage.S3Config{
		Endpoint:  viper.GetString("s3.endpoint"),
		Region:    viper.GetString("s3.region"),
		AccessKey: viper.GetString("s3.access_key"),
		SecretKey: viper.GetString("s3.secret_key"),
		UseSSL:    viper.GetBool("s3.use_ssl"),
	})
}
