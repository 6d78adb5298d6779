package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/five82/garenne/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	// A .env in the working directory may carry GARENNE_* settings.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "garenne: %v\n", err)
		return 1
	}
	return 0
}

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	prefsPath  string
	apiURL     string
}

func (f *rootFlags) options() app.Options {
	return app.Options{
		ConfigPath: f.configPath,
		PrefsPath:  f.prefsPath,
		APIURL:     f.apiURL,
	}
}

// setup builds the shared environment. Callers must Close it.
func (f *rootFlags) setup() (*app.Env, error) {
	return app.Setup(f.options())
}

// runTUI is replaced in tests so the root command can be exercised without a
// terminal.
var runTUI = app.Run

func newRootCommand() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:           "garenne",
		Short:         "Console d'administration des fiches lapin",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), flags.options())
		},
	}

	cmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "chemin du fichier de configuration (optionnel)")
	cmd.PersistentFlags().StringVar(&flags.prefsPath, "prefs", "", "chemin du fichier de préférences (optionnel)")
	cmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "URL de l'API (remplace la configuration)")

	cmd.AddCommand(
		newLoginCommand(flags),
		newLogoutCommand(flags),
		newFichesCommand(flags),
		newPostsCommand(flags),
		newUsersCommand(flags),
		newLogsCommand(flags),
	)
	return cmd
}
