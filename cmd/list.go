package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/cwbudde/fwopt/internal/store"
)

var listDir string

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs",
	Long:  `Lists the run records stored in a result directory, newest first.`,
	RunE:  listRuns,
}

func init() {
	listCmd.Flags().StringVar(&listDir, "data", "./data", "Result directory to scan")
	rootCmd.AddCommand(listCmd)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := store.NewFSStore(listDir)
	if err != nil {
		return err
	}

	infos, err := st.ListRuns()
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Println("No runs found.")
		return nil
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].FinishedAt.After(infos[j].FinishedAt)
	})

	fmt.Printf("%-28s %-10s %-14s %-10s %-8s %s\n",
		"RUN", "ALGORITHM", "PROBLEM", "CONSTRAINT", "STEPS", "OBJECTIVE")
	for _, info := range infos {
		fmt.Printf("%-28s %-10s %-14s %-10s %-8d %.6e\n",
			info.RunID, info.Algorithm, info.Problem, info.Constraint, info.Steps, info.FinalObjective)
	}
	return nil
}
