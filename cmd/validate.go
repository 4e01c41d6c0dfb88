package cmd

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/bank"
	"github.com/abhisek/quizdeck/internal/catalog"
)

// errInvalidBanks is returned when validation found problems, so the
// command exits non-zero.
var errInvalidBanks = errors.New("question banks have issues")

var validateCmd = &cobra.Command{
	Use:   "validate [subject]",
	Short: "Check question banks for unmarked answers and malformed entries",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		strict, _ := cmd.Flags().GetBool("strict")
		return validateBanks(cmd.OutOrStdout(), newLoader(cfg), args, strict)
	},
}

func init() {
	validateCmd.Flags().Bool("strict", false, "Fail on any issue, not only unreadable banks")
}

// validateBanks checks the named subjects, or every catalog subject and
// bank file when none are named.
func validateBanks(w io.Writer, loader *bank.Loader, subjects []string, strict bool) error {
	if len(subjects) == 0 {
		subjects = catalog.IDs()
		files, err := loader.Subjects()
		if err != nil {
			return err
		}
		for _, id := range files {
			if !slices.Contains(subjects, id) {
				fmt.Fprintf(w, "%s: bank file has no catalog entry\n", id)
				subjects = append(subjects, id)
			}
		}
	}

	var broken, issues int
	for _, id := range subjects {
		b, err := loader.Load(id)
		if err != nil {
			fmt.Fprintf(w, "%s: %v\n", id, err)
			broken++
			continue
		}

		found := bank.Validate(b)
		issues += len(found)
		if len(found) == 0 {
			fmt.Fprintf(w, "%s: %d questions, ok\n", id, b.Len())
			continue
		}
		fmt.Fprintf(w, "%s: %d questions, %d issues\n", id, b.Len(), len(found))
		for _, is := range found {
			fmt.Fprintf(w, "  %s\n", is)
		}
	}

	switch {
	case broken > 0:
		return fmt.Errorf("%w: %d unreadable", errInvalidBanks, broken)
	case strict && issues > 0:
		return fmt.Errorf("%w: %d issues", errInvalidBanks, issues)
	}
	return nil
}
