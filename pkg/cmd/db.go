package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/keepsake/pkg/configs"
	"github.com/yeisme/keepsake/pkg/internal/service"
	"github.com/yeisme/keepsake/pkg/internal/storage/db"
)

var (
	dbCmd = &cobra.Command{
		Use:   "db",
		Short: "Database related commands",
	}

	dbListCmd = &cobra.Command{
		Use:     "ls",
		Short:   "list all registered database types",
		Aliases: []string{"list"},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered database types:")

			for _, dbType := range db.GetRegisteredDBTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), " - "+string(dbType))
			}
		},
	}

	dbMigrateCmd = &cobra.Command{
		Use:     "migrate",
		Short:   "create or update tables",
		PreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if err := client.Migrate(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "migration done")

			return nil
		},
	}

	dbSeedCmd = &cobra.Command{
		Use:     "seed",
		Short:   "create the twelve monthly milestones and the baby firsts board",
		PreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := openDB(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if err := client.Migrate(cmd.Context()); err != nil {
				return err
			}

			res, err := service.Seed(cmd.Context(), client.GetDB())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d milestones, %d firsts\n", res.Milestones, res.Firsts)

			return nil
		},
	}
)

func openDB(cmd *cobra.Command) (*db.Client, error) {
	return db.New(cmd.Context(), configs.GetConfig().DB)
}

// registerDBCommands 注册数据库相关命令.
func registerDBCommands() {
	rootCmd.AddCommand(dbCmd)

	dbCmd.AddCommand(dbListCmd, dbMigrateCmd, dbSeedCmd)
}
