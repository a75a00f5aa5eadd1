package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/database"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/services"
)

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd, fixStatusesCmd, trashCmd)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close(db)
		fmt.Println("schema up to date")
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demo cases into an empty collection",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close(db)

		n, err := services.NewCaseService(services.NewGormCaseStore(db), nil).SeedDemoCases()
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Println("collection not empty; nothing seeded")
			return nil
		}
		fmt.Printf("seeded %d demo cases\n", n)
		return nil
	},
}

var fixStatusesCmd = &cobra.Command{
	Use:   "fix-statuses",
	Short: "Rewrite legacy Dismissed statuses to In Court",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close(db)

		n, err := services.NewCaseService(services.NewGormCaseStore(db), nil).MigrateDismissed()
		if err != nil {
			return err
		}
		fmt.Printf("updated %d case(s)\n", n)
		return nil
	},
}

var trashCmd = &cobra.Command{
	Use:   "trash",
	Short: "List cases in the trash",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, _, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close(db)

		resp, err := services.NewCaseService(services.NewGormCaseStore(db), nil).ListTrashed()
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tCASE NUMBER\tTITLE\tDELETED AT")
		for _, c := range resp.Cases {
			deleted := "-"
			if c.DeletedAt != nil {
				deleted = c.DeletedAt.Format("2006-01-02 15:04")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", c.ID, c.CaseNumber, c.CaseTitle, deleted)
		}
		return w.Flush()
	},
}
