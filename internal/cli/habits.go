package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Register a new habit",
	Long:  "Register a new habit with an empty history. Adding an existing habit changes nothing.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))
	if name == "" {
		return fmt.Errorf("habit name must not be empty")
	}

	reg, cleanup, err := openRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	if err := reg.Add(name); err != nil {
		return fmt.Errorf("add habit: %w", err)
	}
	fmt.Printf("added %q\n", name)
	return nil
}

var doneCmd = &cobra.Command{
	Use:   "done NAME",
	Short: "Mark a habit done for today",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDone,
}

func runDone(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(strings.Join(args, " "))

	reg, cleanup, err := openRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	names, err := reg.List()
	if err != nil {
		return fmt.Errorf("list habits: %w", err)
	}
	known := false
	for _, n := range names {
		if n == name {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("unknown habit %q — create it first with: habitkeep add %q", name, name)
	}

	if err := reg.MarkDone(name); err != nil {
		return fmt.Errorf("mark done: %w", err)
	}
	fmt.Printf("%q done for today\n", name)
	return nil
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all habits",
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	reg, cleanup, err := openRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	// Catch anything that aged out since the last run.
	if _, err := reg.ApplyRetention(); err != nil {
		return fmt.Errorf("apply retention: %w", err)
	}

	names, err := reg.List()
	if err != nil {
		return fmt.Errorf("list habits: %w", err)
	}
	if len(names) == 0 {
		fmt.Println("No habits yet. Create one with: habitkeep add NAME")
		return nil
	}
	for _, n := range names {
		fmt.Println(n)
	}
	return nil
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show each habit with its done-today state",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	reg, cleanup, err := openRegistry()
	if err != nil {
		return err
	}
	defer cleanup()

	if _, err := reg.ApplyRetention(); err != nil {
		return fmt.Errorf("apply retention: %w", err)
	}

	statuses, err := reg.Status()
	if err != nil {
		return fmt.Errorf("habit status: %w", err)
	}
	if len(statuses) == 0 {
		fmt.Println("No habits yet. Create one with: habitkeep add NAME")
		return nil
	}
	for _, st := range statuses {
		mark := " "
		if st.DoneToday {
			mark = "x"
		}
		fmt.Printf("[%s] %s\n", mark, st.Name)
	}
	return nil
}
