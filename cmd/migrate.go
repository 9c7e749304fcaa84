package cmd

import (
    "log"

    "github.com/spf13/cobra"

    "onboarding-go/config"
    "onboarding-go/database"
)

var migrateCmd = &cobra.Command{
    Use:   "migrate",
    Short: "Apply the schema to the database and exit",
    RunE: func(cmd *cobra.Command, args []string) error {
        cfg := config.Load()
        if _, err := database.Initialize(cfg.DatabasePath); err != nil {
            return err
        }
        log.Println("migrate: ok")
        return nil
    },
}
