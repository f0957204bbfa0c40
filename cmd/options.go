package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"hotel-catalog/config"
	"hotel-catalog/models"
	"hotel-catalog/reference"
)

var optionsCmd = &cobra.Command{
	Use:   "options [kind]",
	Short: "List the category and specialist filter values per kind",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(nil)
		if err != nil {
			return err
		}
		data, err := reference.Load(cfg.ReferenceDataPath)
		if err != nil {
			return err
		}

		kinds := models.Kinds
		if len(args) == 1 {
			k, err := models.ParseKind(args[0])
			if err != nil {
				return err
			}
			kinds = []models.Kind{k}
		}
		printOptions(cmd.OutOrStdout(), data, kinds)
		return nil
	},
}

func printOptions(w io.Writer, data *reference.Data, kinds []models.Kind) {
	for _, k := range kinds {
		fmt.Fprintf(w, "%s%s%s\n", ansiBold, plural(k), ansiReset)
		printOptionList(w, "categories", data.CategoriesFor(k))
		printOptionList(w, "specialists", data.SpecialistsFor(k))
	}
}

func printOptionList(w io.Writer, title string, opts []reference.Option) {
	if len(opts) == 0 {
		return
	}
	fmt.Fprintf(w, "  %s:\n", title)
	for _, o := range opts {
		fmt.Fprintf(w, "    %-16s %s\n", o.ID, o.Name)
	}
}
