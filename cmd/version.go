package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizdeck/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = selfupdate.DevVersion

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "quizdeck", version)

		check, _ := cmd.Flags().GetBool("check")
		if !check {
			return nil
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		checker := selfupdate.NewChecker(
			selfupdate.WithRepository(cfg.Update.Owner, cfg.Update.Repo),
			selfupdate.WithTimeout(15*time.Second),
		)

		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		switch {
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Fprintln(out, "Development build; no release to compare against.")
			return nil
		case errors.Is(err, selfupdate.ErrNoRelease):
			fmt.Fprintln(out, "No releases published yet.")
			return nil
		case err != nil:
			return fmt.Errorf("check for updates: %w", err)
		}

		if res.UpdateAvailable {
			fmt.Fprintf(out, "A newer version is available: %s\n%s\n", res.LatestVersion, res.ReleaseURL)
		} else {
			fmt.Fprintln(out, "You are running the latest version.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
}
