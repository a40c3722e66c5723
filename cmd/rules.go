package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gnolang/solint/internal"
	"github.com/gnolang/solint/internal/rules"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available rules and the node events they handle",
	RunE: func(cmd *cobra.Command, args []string) error {
		return listRules(cmd.OutOrStdout())
	},
}

func listRules(w io.Writer) error {
	reporter := internal.NewCollector("")
	for _, id := range rules.IDs() {
		r, err := rules.New(id, reporter, nil)
		if err != nil {
			return err
		}

		events := rules.Subscriptions(r)
		names := make([]string, 0, len(events))
		for _, event := range events {
			names = append(names, event.String())
		}
		fmt.Fprintf(w, "%s\n    %s\n", id, strings.Join(names, ", "))
	}

	aliases := rules.Aliases()
	retired := make([]string, 0, len(aliases))
	for old := range aliases {
		retired = append(retired, old)
	}
	sort.Strings(retired)
	for _, old := range retired {
		fmt.Fprintf(w, "%s (deprecated, use %s)\n", old, aliases[old])
	}
	return nil
}
