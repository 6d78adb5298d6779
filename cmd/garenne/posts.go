package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/five82/garenne/internal/api"
	"github.com/five82/garenne/internal/session"
)

func newPostsCommand(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Consulter et rédiger les articles de suivi",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(
		newPostsListCommand(flags),
		newPostsAddCommand(flags),
	)
	return cmd
}

func newPostsListCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Lister les articles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := flags.setup()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			posts, err := env.Client.ListPosts(cmd.Context())
			if err != nil {
				return apiError(env, "chargement des articles", err)
			}

			out := cmd.OutOrStdout()
			if len(posts) == 0 {
				fmt.Fprintln(out, "Aucun article.")
				return nil
			}

			t := table.New().
				Border(lipgloss.NormalBorder()).
				Headers("TITRE", "AUTEUR", "ID")
			for _, p := range posts {
				author := "N/A"
				if p.Author != nil && p.Author.Username != "" {
					author = p.Author.Username
				}
				t.Row(p.Title, author, p.ID)
			}
			fmt.Fprintln(out, t.Render())
			return nil
		},
	}
}

func newPostsAddCommand(flags *rootFlags) *cobra.Command {
	var (
		title   string
		content string
		author  string
	)

	cmd := &cobra.Command{
		Use:   "add <fiche-id>",
		Short: "Ajouter un article à une fiche",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(title) == "" {
				return errors.New("le titre est obligatoire")
			}

			env, err := flags.setup()
			if err != nil {
				return err
			}
			defer func() { _ = env.Close() }()

			// Unlike fiches, the server keeps author_id as sent and rejects
			// unknown users, so a placeholder cannot be used here.
			if strings.TrimSpace(author) == "" {
				id, ok := sessionUserID(env.Client)
				if !ok {
					return errors.New("--author requis : la session ne contient pas d'identifiant")
				}
				author = id
			}

			post, err := env.Client.CreatePostForFiche(cmd.Context(), args[0], api.PostCreate{
				Title:    strings.TrimSpace(title),
				Content:  content,
				AuthorID: author,
			})
			if err != nil {
				return apiError(env, "création de l'article", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Article %s ajouté\n", post.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "titre de l'article")
	cmd.Flags().StringVar(&content, "content", "", "contenu de l'article")
	cmd.Flags().StringVar(&author, "author", "", "identifiant de l'auteur (par défaut celui de la session)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

// sessionUserID reads user_id from the stored token without verifying it.
func sessionUserID(store interface{ Token() (string, bool) }) (string, bool) {
	token, ok := store.Token()
	if !ok {
		return "", false
	}
	claims, err := session.Inspect(token)
	if err != nil || claims.UserID == "" {
		return "", false
	}
	return claims.UserID, true
}
