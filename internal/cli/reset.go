package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete all habits and history",
	Long:  "Delete every habit and all completion history. Irreversible; asks for confirmation unless --yes is given.",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) error {
	if !resetYes {
		fmt.Print("Delete ALL habits and history? This cannot be undone. [y/N] ")
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return fmt.Errorf("read confirmation: %w", err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
		default:
			fmt.Println("aborted")
			return nil
		}
	}

	reg, cleanup, err := openRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := reg.ResetAll(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	fmt.Println("all habit data cleared")
	return nil
}
