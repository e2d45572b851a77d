package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"kisan_unnati/internal/client"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	jsonOut bool
)

// config is what kisanctl reads from file, KISAN_* env and flags
type config struct {
	APIURL    string        `mapstructure:"api_url"`
	StorePath string        `mapstructure:"store_path"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

var rootCmd = &cobra.Command{
	Use:   "kisanctl",
	Short: "Kisan Unnati command line client",
	Long: `Log in as a farmer, shopkeeper or admin, check crop price forecasts and
moderate marketplace listings.

Configuration is read from ~/.kisan/kisanctl.yaml, KISAN_* environment
variables and flags, in increasing order of precedence.

Examples:
  kisanctl login farmer ramesh@example.com
  kisanctl login shopkeeper 9876543210
  kisanctl predict-price --crop wheat --district Indore
  kisanctl admin products list`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.kisan/kisanctl.yaml)")
	rootCmd.PersistentFlags().String("api-url", "", "Kisan Unnati API base URL")
	rootCmd.PersistentFlags().String("store", "", "session store file")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "print JSON output")

	_ = viper.BindPFlag("api_url", rootCmd.PersistentFlags().Lookup("api-url"))
	_ = viper.BindPFlag("store_path", rootCmd.PersistentFlags().Lookup("store"))
}

func defaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kisan"
	}
	return filepath.Join(home, ".kisan")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("kisanctl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(defaultDir())
		viper.AddConfigPath(".")
	}

	viper.SetEnvPrefix("KISAN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("api_url", "http://localhost:5001")
	viper.SetDefault("store_path", filepath.Join(defaultDir(), "store.json"))
	viper.SetDefault("timeout", "30s")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fmt.Fprintf(os.Stderr, "Warning: failed to read config file: %v\n", err)
		}
	}
}

func loadConfig() (*config, error) {
	var cfg config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("api_url is not set")
	}
	return &cfg, nil
}

// app bundles the client components one command needs
type app struct {
	cfg      *config
	storage  *client.FileStorage
	store    *client.CredentialStore
	notifier *client.Notifier
	client   *client.Client
}

type printNavigator struct{}

func (printNavigator) Navigate(route string) {
	if !jsonOut {
		fmt.Printf("-> %s\n", route)
	}
}

func newApp() (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	storage := client.NewFileStorage(cfg.StorePath)
	store := client.NewCredentialStore(storage)
	notifier := client.NewNotifier()
	c := client.New(cfg.APIURL, store, notifier,
		client.WithNavigator(printNavigator{}),
		client.WithHTTPClient(newHTTPClient(cfg.Timeout)),
	)
	return &app{cfg: cfg, storage: storage, store: store, notifier: notifier, client: c}, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
}

func printTableHeader(w *tabwriter.Writer, cols ...string) {
	fmt.Fprintln(w, strings.Join(cols, "\t"))
}
