package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeisme/keepsake/pkg/cache"
	"github.com/yeisme/keepsake/pkg/configs"
	kv "github.com/yeisme/keepsake/pkg/internal/storage/kv"
)

var (
	kvCmd = &cobra.Command{
		Use:     "kv",
		Short:   "Response cache store commands",
		Aliases: []string{"cache"},
	}

	kvListCmd = &cobra.Command{
		Use:     "ls",
		Short:   "list all registered kv types",
		Aliases: []string{"list"},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered kv types:")

			for _, t := range kv.GetRegisteredKVTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), " - "+string(t))
			}
		},
	}

	// 清空响应缓存，只删除 ks.cache. 前缀下的键.
	kvFlushCmd = &cobra.Command{
		Use:     "flush",
		Short:   "drop every cached public response",
		PreRunE: loadConfig,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := kv.New(cmd.Context(), configs.GetConfig().KV)
			if err != nil {
				return err
			}
			defer func() { _ = client.Close() }()

			if err := cache.New(client).Clear(cmd.Context()); err != nil {
				return fmt.Errorf("flush cache: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), "response cache flushed")

			return nil
		},
	}
)

// registerKVCommands 注册 KV 相关命令.
func registerKVCommands() {
	rootCmd.AddCommand(kvCmd)
	kvCmd.AddCommand(kvListCmd, kvFlushCmd)
}
