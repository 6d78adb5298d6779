package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/five82/garenne/internal/api"
	"github.com/five82/garenne/internal/ui"
)

func newFichesCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fiches",
		Short: "Consulter et gérer les fiches lapin",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newFichesListCommand(flags),
		newFichesShowCommand(flags),
		newFichesDeleteCommand(flags),
	)
	return cmd
}

func newFichesListCommand(flags *rootFlags) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Lister les fiches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.setup()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			fiches, err := env.Client.ListFiches(cmd.Context())
			if err != nil {
				return apiError(env, "chargement des fiches", err)
			}
			shown := ui.FilterFiches(fiches, search)

			out := cmd.OutOrStdout()
			if len(shown) == 0 {
				if len(fiches) == 0 {
					fmt.Fprintln(out, "Aucune fiche.")
				} else {
					fmt.Fprintln(out, "Aucune fiche ne correspond à la recherche.")
				}
				return nil
			}
			renderFicheTable(out, shown)
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "filtrer par nom ou numéro d'arrivée")
	return cmd
}

func newFichesShowCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Afficher une fiche",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.setup()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			f, err := env.Client.GetFiche(cmd.Context(), args[0])
			if err != nil {
				return apiError(env, "lecture de la fiche", err)
			}

			out := cmd.OutOrStdout()
			row := func(label, value string) {
				if strings.TrimSpace(value) == "" {
					return
				}
				fmt.Fprintf(out, "%-16s%s\n", label, value)
			}
			row("Nom", f.Nom)
			row("N° d'arrivée", "#"+f.ArrivalNumber())
			row("Sexe", f.Sexe.Label())
			row("Poids actuel", grams(f.PoidsActuel))
			row("Arrivée", day(f.DateArriveeAssociation))
			row("Fiche créée", day(f.DateCreationFiche))
			row("Auteur", f.AuthorName())
			row("Photo", env.Client.PhotoURL(f.Photo))
			row("Identification", f.NumeroIdentification)
			row("Naissance", day(f.DateNaissance))
			row("Poids idéal", grams(f.PoidsIdeal))
			row("Vétérinaire", f.NomVeterinaire)
			row("Santé", f.ProblemesSante)
			row("Caractère", f.Caractere)
			row("id", f.ID)
			return nil
		},
	}
}

func newFichesDeleteCommand(flags *rootFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Supprimer une fiche",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.setup()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			out := cmd.OutOrStdout()
			id := args[0]
			if !yes {
				answer, err := promptLine(bufio.NewReader(cmd.InOrStdin()), out,
					"Êtes-vous sûr de vouloir supprimer cette fiche ? [o/N] ")
				if err != nil {
					return err
				}
				if !confirmed(answer) {
					fmt.Fprintln(out, "Suppression annulée")
					return nil
				}
			}

			if err := env.Client.DeleteFiche(cmd.Context(), id); err != nil {
				return apiError(env, "suppression", err)
			}
			env.Log.Info().Str("fiche_id", id).Msg("fiche deleted from cli")
			fmt.Fprintf(out, "Fiche %s supprimée\n", id)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "ne pas demander de confirmation")
	return cmd
}

func confirmed(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "o", "oui", "y", "yes":
		return true
	}
	return false
}

func renderFicheTable(w io.Writer, fiches []api.Fiche) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("N°", "NOM", "SEXE", "POIDS", "ARRIVÉE", "ID")
	for _, f := range fiches {
		t.Row(
			"#"+f.ArrivalNumber(),
			f.Nom,
			f.Sexe.Label(),
			grams(f.PoidsActuel),
			day(f.DateArriveeAssociation),
			f.ID,
		)
	}
	fmt.Fprintln(w, t.Render())
}

func grams(g *int) string {
	if g == nil {
		return ""
	}
	return fmt.Sprintf("%d g", *g)
}

func day(ts *api.Timestamp) string {
	if ts == nil || ts.IsZero() {
		return ""
	}
	return ts.Format("02/01/2006")
}
