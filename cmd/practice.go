package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/catalog"
	"github.com/abhisek/quizdeck/internal/group"
	"github.com/abhisek/quizdeck/internal/quiz"
	"github.com/abhisek/quizdeck/internal/session"
	"github.com/abhisek/quizdeck/internal/ui/components"
)

var practiceCmd = &cobra.Command{
	Use:   "practice <subject> <group>",
	Short: "Answer a group of questions on the command line (no TUI)",
	Long: `Answer one group of questions line by line. Type the option number or
letter and press Enter. An empty line skips the question, "q" stops early.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		groupID, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid group %q: %w", args[1], err)
		}
		seed, _ := cmd.Flags().GetUint64("seed")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		b, err := newLoader(cfg).Load(args[0])
		if err != nil {
			return err
		}
		g, ok := group.ForID(b.Len(), cfg.PageSize, groupID)
		if !ok {
			return fmt.Errorf("group %d out of range: %s has %d groups",
				groupID, args[0], group.Count(b.Len(), cfg.PageSize))
		}

		rng := quiz.NewRand()
		if cmd.Flags().Changed("seed") {
			rng = quiz.NewSeededRand(seed)
		}
		s := session.New(args[0], g, quiz.NewDeck(rng, group.Slice(b.Questions, g), g.Start))
		return practice(cmd.InOrStdin(), cmd.OutOrStdout(), s)
	},
}

func init() {
	practiceCmd.Flags().Uint64("seed", 0, "Fixed shuffle seed for a reproducible order")
}

// practice runs s interactively over in/out and prints the summary.
func practice(in io.Reader, out io.Writer, s *session.Session) error {
	scanner := bufio.NewScanner(in)
	questions := s.Questions()

	fmt.Fprintf(out, "%s · Group %d (%s) · %d questions\n\n",
		catalog.DisplayName(s.SubjectID), s.Group.ID, s.Group.Label, len(questions))

loop:
	for i, q := range questions {
		fmt.Fprintf(out, "── Question %d/%d ──\n", i+1, len(questions))
		fmt.Fprintln(out, q.Text)
		for j, opt := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", j+1, opt)
		}

		for {
			fmt.Fprint(out, "\nYour answer: ")
			if !scanner.Scan() {
				fmt.Fprintln(out, "\n(input closed)")
				break loop
			}
			answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
			if answer == "" {
				fmt.Fprintln(out, "(skipped)")
				break
			}
			if answer == "q" {
				break loop
			}

			idx, ok := components.OptionIndex(answer)
			if !ok || !s.Select(q.ID, idx) {
				fmt.Fprintf(out, "Enter 1-%d.\n", len(q.Options))
				continue
			}
			if s.Outcome(q.ID) == session.Correct {
				fmt.Fprintln(out, "\033[32m✓ Correct!\033[0m")
			} else {
				fmt.Fprintf(out, "\033[31m✗ Wrong.\033[0m Answer: %s\n", q.CorrectText())
			}
			break
		}
		fmt.Fprintln(out)
	}

	sum := s.Summary()
	fmt.Fprintf(out, "── Summary: %d/%d correct, %d wrong, %d unanswered ──\n",
		sum.Totals.Correct, sum.Totals.Total, sum.Totals.Wrong, sum.Totals.Total-sum.Answered)
	if sum.Answered > 0 {
		fmt.Fprintf(out, "Accuracy: %.0f%%\n", sum.Accuracy*100)
	}
	return scanner.Err()
}
