package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/group"
)

var subjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List subjects with their question and group counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return printSubjects(cmd.OutOrStdout(), newLoader(cfg), cfg.PageSize)
	},
}

var groupsCmd = &cobra.Command{
	Use:   "groups <subject>",
	Short: "List the question groups of a subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		return printGroups(cmd.OutOrStdout(), newLoader(cfg), args[0], cfg.PageSize)
	},
}

func printSubjects(w io.Writer, loader *bank.Loader, pageSize int) error {
	fmt.Fprintf(w, "%-24s  %-26s  %9s  %6s\n", "ID", "Name", "Questions", "Groups")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	for _, s := range catalog.All() {
		b, err := loader.Load(s.ID)
		if err != nil {
			fmt.Fprintf(w, "%-24s  %-26s  %9s  %6s\n", s.ID, s.Name, "-", "-")
			continue
		}
		fmt.Fprintf(w, "%-24s  %-26s  %9d  %6d\n",
			s.ID, s.Name, b.Len(), group.Count(b.Len(), pageSize))
	}
	return nil
}

func printGroups(w io.Writer, loader *bank.Loader, subjectID string, pageSize int) error {
	b, err := loader.Load(subjectID)
	if err != nil {
		return err
	}

	groups := group.Partition(b.Len(), pageSize)
	fmt.Fprintf(w, "%s: %d questions in %d groups of up to %d\n\n",
		catalog.DisplayName(subjectID), b.Len(), len(groups), pageSize)
	fmt.Fprintf(w, "%5s  %-9s  %9s\n", "Group", "Range", "Questions")
	fmt.Fprintln(w, strings.Repeat("─", 27))
	for _, g := range groups {
		fmt.Fprintf(w, "%5d  %-9s  %9d\n", g.ID, g.Label, g.Len())
	}
	return nil
}
