package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ahmetcoskunkizilkaya/court-cases/internal/database"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/identity"
	"github.com/ahmetcoskunkizilkaya/court-cases/internal/services"
)

var (
	email    string
	password string
	name     string
)

func init() {
	accountCreateCmd.Flags().StringVar(&email, "email", "", "account email (required)")
	accountCreateCmd.Flags().StringVar(&password, "password", "", "account password (required)")
	_ = accountCreateCmd.MarkFlagRequired("email")
	_ = accountCreateCmd.MarkFlagRequired("password")
	accountCmd.AddCommand(accountCreateCmd)

	userCreateCmd.Flags().StringVar(&name, "name", "", "display name (required)")
	userCreateCmd.Flags().StringVar(&email, "email", "", "user email (required)")
	userCreateCmd.Flags().StringVar(&password, "password", "", "initial password (required)")
	_ = userCreateCmd.MarkFlagRequired("name")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")
	userCmd.AddCommand(userCreateCmd)

	rootCmd.AddCommand(accountCmd, userCmd)
}

var accountCmd = &cobra.Command{
	Use:   "account",
	Short: "Manage auth accounts",
}

var accountCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an auth account without a directory record",
	Long: `Create an auth account only. Use this for the allow-listed
administrators, who never have a directory record.

Examples:
  casectl account create --email admin@courtcases.com --password '...'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, cfg, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close(db)

		id, err := identity.NewProvider(db, cfg.JWTSecret, cfg.JWTAccessExpiry).CreateAccount(email, password)
		if err != nil {
			return err
		}
		fmt.Printf("account %s created for %s\n", id.UID, id.Email)
		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage directory users",
}

var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an enabled directory user with an auth account",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, cfg, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close(db)

		provider := identity.NewProvider(db, cfg.JWTSecret, cfg.JWTAccessExpiry)
		remover := services.NewUploadClient(cfg.UploaderURL, cfg.UploadTimeout)
		user, err := services.NewDirectoryService(db, provider, remover).CreateUser(name, email, password)
		if err != nil {
			return err
		}
		fmt.Printf("user %s created (uid %s)\n", user.ID, user.UID)
		return nil
	},
}
