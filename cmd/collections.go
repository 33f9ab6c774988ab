package cmd

import (
	"fmt"

	"github.com/jon4hz/quotevault/internal/api/models"
	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/jon4hz/quotevault/internal/repository"
	"github.com/jon4hz/quotevault/internal/validation"
	"github.com/spf13/cobra"
)

var collectionFlags struct {
	Name        string
	Description string
	CoverColor  string
}

var collectionsCmd = &cobra.Command{
	Use:     "collections",
	Aliases: []string{"col"},
	Short:   "Manage your quote collections",
}

var collectionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your collections, most recently updated first",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			collections, err := a.engine.Collections().CollectionsNow(cmd.Context())
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			if len(collections) == 0 {
				fmt.Fprintln(w, "No collections yet.")
				return nil
			}
			for _, c := range collections {
				printCollection(w, c)
			}
			return nil
		})
	},
}

var collectionsShowCmd = &cobra.Command{
	Use:   "show <collection-id>",
	Short: "Show a collection and its quotes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			c, err := getCollection(cmd, a, args[0])
			if err != nil {
				return err
			}
			page, err := a.engine.Collections().QuotesInCollectionPaginated(cmd.Context(), c.ID, pageFlags.Page, pageSize(a))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			printCollection(w, *c)
			fmt.Fprintln(w)
			printPage(w, page)
			return nil
		})
	},
}

// collectionRequest validates the collection fields the same way the HTTP API validates its body.
func collectionRequest(name string, description *string, coverColor string) (models.CollectionRequest, error) {
	req := models.CollectionRequest{
		Name:        name,
		Description: description,
		CoverColor:  coverColor,
	}
	if err := validation.New().Validate(req); err != nil {
		return req, err
	}
	if req.CoverColor == "" {
		req.CoverColor = domain.DefaultCoverColor
	}
	return req, nil
}

func descriptionFlag(cmd *cobra.Command) *string {
	if cmd.Flags().Changed("description") {
		return &collectionFlags.Description
	}
	return nil
}

var collectionsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a collection",
	RunE: func(cmd *cobra.Command, _ []string) error {
		req, err := collectionRequest(collectionFlags.Name, descriptionFlag(cmd), collectionFlags.CoverColor)
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(a *app) error {
			c, err := a.engine.Collections().CreateCollection(cmd.Context(), req.Name, req.Description, req.CoverColor)
			if err != nil {
				return err
			}
			printCollection(cmd.OutOrStdout(), *c)
			return nil
		})
	},
}

var collectionsUpdateCmd = &cobra.Command{
	Use:   "update <collection-id>",
	Short: "Rename or restyle a collection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			current, err := getCollection(cmd, a, args[0])
			if err != nil {
				return err
			}
			name, description, color := current.Name, current.Description, current.CoverColor
			if cmd.Flags().Changed("name") {
				name = collectionFlags.Name
			}
			if cmd.Flags().Changed("description") {
				description = descriptionFlag(cmd)
			}
			if cmd.Flags().Changed("color") {
				color = collectionFlags.CoverColor
			}
			req, err := collectionRequest(name, description, color)
			if err != nil {
				return err
			}
			c, err := a.engine.Collections().UpdateCollection(cmd.Context(), current.ID, req.Name, req.Description, req.CoverColor)
			if err != nil {
				return err
			}
			printCollection(cmd.OutOrStdout(), *c)
			return nil
		})
	},
}

var collectionsDeleteCmd = &cobra.Command{
	Use:     "delete <collection-id>",
	Aliases: []string{"rm"},
	Short:   "Delete a collection",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.engine.Collections().DeleteCollection(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted collection %s.\n", args[0])
			return nil
		})
	},
}

var collectionsAddCmd = &cobra.Command{
	Use:   "add <collection-id> <quote-id>",
	Short: "Add a quote to a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := quoteExists(cmd, a, args[1]); err != nil {
				return err
			}
			if err := a.engine.Collections().AddQuoteToCollection(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s to collection %s.\n", args[1], args[0])
			return nil
		})
	},
}

var collectionsRemoveCmd = &cobra.Command{
	Use:   "remove <collection-id> <quote-id>",
	Short: "Remove a quote from a collection",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(a *app) error {
			if err := a.engine.Collections().RemoveQuoteFromCollection(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from collection %s.\n", args[1], args[0])
			return nil
		})
	},
}

func getCollection(cmd *cobra.Command, a *app, id string) (*domain.Collection, error) {
	c, err := a.engine.Collections().GetCollection(cmd.Context(), id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("%w: %s", repository.ErrCollectionNotFound, id)
	}
	return c, nil
}

func addCollectionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&collectionFlags.Name, "name", "", "Name of the collection")
	cmd.Flags().StringVar(&collectionFlags.Description, "description", "", "Optional description")
	cmd.Flags().StringVar(&collectionFlags.CoverColor, "color", "", "Cover color as hex, e.g. #6366F1")
}

func init() {
	addCollectionFlags(collectionsCreateCmd)
	_ = collectionsCreateCmd.MarkFlagRequired("name")
	addCollectionFlags(collectionsUpdateCmd)
	addPageFlags(collectionsShowCmd)

	collectionsCmd.AddCommand(
		collectionsListCmd,
		collectionsShowCmd,
		collectionsCreateCmd,
		collectionsUpdateCmd,
		collectionsDeleteCmd,
		collectionsAddCmd,
		collectionsRemoveCmd,
	)
	rootCmd.AddCommand(collectionsCmd)
}
