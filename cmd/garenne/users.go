package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

func newUsersCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Consulter les comptes (administrateurs)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Lister les comptes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.setup()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			users, err := env.Client.ListUsers(cmd.Context())
			if err != nil {
				return apiError(env, "chargement des comptes", err)
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("UTILISATEUR", "NOM", "EMAIL", "RÔLE")
			for _, u := range users {
				name := strings.TrimSpace(u.FirstName + " " + u.LastName)
				t.Row(u.Username, name, u.Email, u.Role)
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return nil
		},
	})
	return cmd
}
