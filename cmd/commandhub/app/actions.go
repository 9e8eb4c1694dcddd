package app

import (
	"fmt"
	"strings"

	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"github.com/autopeer-io/commandhub/internal/commandhub/actions"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/model"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/registry"
	"github.com/autopeer-io/commandhub/internal/commandhub/core/search"
)

func newActionsCommand() *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:   "actions",
		Short: "Print the action catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The catalog is static; no handler runs here.
			reg, err := registry.New(actions.Definitions(nil)...)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderActions(search.Filter(reg.ListActions(), query)))
			return err
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Only list actions matching this search text.")
	return cmd
}

func renderActions(list []model.CommandAction) *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = 48
	table.AddRow("ID", "TITLE", "CATEGORY", "IMPACT", "MODAL", "SHORTCUT")
	for _, a := range list {
		table.AddRow(a.ID, a.Title, a.Category, a.Impact, modalKind(a), a.Shortcut)
	}
	return table
}

func modalKind(a model.CommandAction) string {
	var kinds []string
	if a.HasForm() {
		kinds = append(kinds, "form")
	}
	if a.RequiresConfirmation {
		kinds = append(kinds, "confirm")
	}
	if len(kinds) == 0 {
		return "-"
	}
	return strings.Join(kinds, "+")
}
