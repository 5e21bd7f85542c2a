package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var retentionCmd = &cobra.Command{
	Use:   "retention [DAYS]",
	Short: "Show or set the history retention window",
	Long:  "Show or set how many days of completion history to keep. 0 means keep forever. Setting a window prunes existing history immediately.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRetention,
}

func runRetention(cmd *cobra.Command, args []string) error {
	reg, cleanup, err := openRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	if len(args) == 0 {
		settings, err := reg.Retention()
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}
		if settings.Unlimited() {
			fmt.Println("retention: unbounded (history kept forever)")
		} else {
			fmt.Printf("retention: %d days\n", settings.RetentionDays)
		}
		return nil
	}

	days, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("retention must be a whole number of days, got %q", args[0])
	}
	if err := reg.SetRetention(days); err != nil {
		return err
	}
	if days == 0 {
		fmt.Println("retention set to unbounded")
	} else {
		fmt.Printf("retention set to %d days\n", days)
	}
	return nil
}

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Apply the retention window to stored history now",
	RunE:  runPrune,
}

func runPrune(cmd *cobra.Command, args []string) error {
	reg, cleanup, err := openRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	changed, err := reg.ApplyRetention()
	if err != nil {
		return fmt.Errorf("apply retention: %w", err)
	}
	if changed {
		fmt.Println("pruned dates outside the retention window")
	} else {
		fmt.Println("nothing to prune")
	}
	return nil
}
