package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/garenne/internal/api"
	"github.com/five82/garenne/internal/app"
	"github.com/five82/garenne/internal/prefs"
	"github.com/five82/garenne/internal/session"
)

// readPassword is swapped in tests.
var readPassword = term.ReadPassword

// isTerminal reports whether stdin is interactive.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }

// errSessionExpired replaces any 401 reported to the command line.
var errSessionExpired = errors.New("session expirée, reconnectez-vous avec « garenne login »")

func newLoginCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [username]",
		Short: "Ouvrir une session et enregistrer le jeton",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.setup()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			in := bufio.NewReader(cmd.InOrStdin())
			out := cmd.OutOrStdout()

			username := ""
			if len(args) == 1 {
				username = strings.TrimSpace(args[0])
			}
			if username == "" {
				username, err = promptLine(in, out, usernamePrompt(env.Prefs.Username))
				if err != nil {
					return err
				}
				if username == "" {
					username = env.Prefs.Username
				}
			}
			if username == "" {
				return errors.New("nom d'utilisateur requis")
			}

			password, err := promptPassword(in, out)
			if err != nil {
				return err
			}

			if _, err := env.Client.Login(cmd.Context(), username, password); err != nil {
				return fmt.Errorf("connexion: %w", err)
			}

			remember := func(p *prefs.Prefs) { p.Username = username }
			if err := prefs.Update(env.PrefsPath(), remember); err != nil {
				env.Log.Warn().Err(err).Msg("save prefs failed")
			}

			fmt.Fprintf(out, "Connecté en tant que %s%s\n", username, roleSuffix(env))
			return nil
		},
	}
	return cmd
}

func newLogoutCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Supprimer le jeton enregistré",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.setup()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			if err := env.Client.Logout(); err != nil {
				return fmt.Errorf("déconnexion: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Déconnecté")
			return nil
		},
	}
}

func usernamePrompt(last string) string {
	if last == "" {
		return "Utilisateur : "
	}
	return fmt.Sprintf("Utilisateur [%s] : ", last)
}

func promptLine(in *bufio.Reader, out io.Writer, prompt string) (string, error) {
	fmt.Fprint(out, prompt)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads without echo on a terminal and falls back to a plain
// line when stdin is piped.
func promptPassword(in *bufio.Reader, out io.Writer) (string, error) {
	if !isTerminal() {
		fmt.Fprint(out, "Mot de passe : ")
		line, err := in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("read password: %w", err)
		}
		fmt.Fprintln(out)
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(out, "Mot de passe : ")
	raw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(raw), nil
}

func roleSuffix(env *app.Env) string {
	token, ok := env.Client.Token()
	if !ok {
		return ""
	}
	claims, err := session.Inspect(token)
	if err != nil || claims.Role == "" {
		return ""
	}
	return " (" + claims.Role + ")"
}

// apiError clears the stored token on 401, like the dashboard does, and turns
// it into a hint to log in again.
func apiError(env *app.Env, action string, err error) error {
	if api.IsUnauthorized(err) {
		if clearErr := env.Client.Logout(); clearErr != nil {
			env.Log.Warn().Err(clearErr).Msg("clear token failed")
		}
		return errSessionExpired
	}
	return fmt.Errorf("%s: %w", action, err)
}
