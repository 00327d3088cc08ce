package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"tbo-go/internal/app"
	"tbo-go/internal/config"
	"tbo-go/internal/encryption"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		encrypt, _ := cmd.Flags().GetBool("encrypt")

		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		instanceID := uuid.New().String()
		cfg := config.NewConfig(instanceID, defaults["base_dir"])
		cfg.Archive.Encrypt = encrypt

		var passphrase string
		if encrypt {
			passphrase, err = readPassphrase("Archive passphrase: ", true)
			if err != nil {
				return err
			}
		}

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		if encrypt {
			enc, err := encryption.NewEncryptorFromConfig(cfg.Encryption)
			if err != nil {
				return err
			}
			if err := enc.Setup(passphrase); err != nil {
				return fmt.Errorf("generating archive keys: %w", err)
			}
			fmt.Printf("Archive keys written to %s\n", cfg.Encryption.PrivateKeyPath)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("Instance ID: %s\n", instanceID)
		fmt.Printf("Base Dir:    %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("Instance ID: %s\n", cfg.InstanceID)
		fmt.Printf("Base Dir:    %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:     %s\n", cfg.LogDir)
		fmt.Printf("Database:    %s %s\n", cfg.Database.Type, cfg.Database.DataDir)
		fmt.Printf("Archive:     %s %s (encrypt=%t)\n", cfg.Archive.Type, cfg.Archive.Root, cfg.Archive.Encrypt)
		fmt.Printf("Listen:      %s\n", cfg.Server.ListenAddr)
		fmt.Printf("CORS:        %v\n", cfg.Server.CORSOrigins)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configInitCmd.Flags().Bool("encrypt", false, "Encrypt archived snapshots; prompts for a passphrase")
}
