package cmd

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/spf13/cobra"

	"github.com/yeisme/keepsake/pkg/configs"
)

var (
	// config 子命令.
	configCmd = &cobra.Command{
		Use:               "config",
		Short:             "config subcommands",
		PersistentPreRunE: loadConfig,
	}

	// 打印当前使用的配置文件路径.
	pathCmd = &cobra.Command{
		Use:   "path",
		Short: "print the path of the current config file",
		Run: func(cmd *cobra.Command, _ []string) {
			v := configs.GetViper()
			if v == nil || v.ConfigFileUsed() == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "no config file used (defaults and environment only)")
				return
			}

			fmt.Fprintln(cmd.OutOrStdout(), v.ConfigFileUsed())
		},
	}

	// 以 JSON 打印生效的配置，敏感字段不输出.
	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "print the effective config values",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if debug {
				configs.GetViper().Debug()
			}

			b, err := sonic.ConfigStd.MarshalIndent(configs.GetConfig(), "", "  ")
			if err != nil {
				return fmt.Errorf("marshal config: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(b))

			return nil
		},
	}
)

// registerConfigsCommands 注册配置相关命令.
func registerConfigsCommands() {
	configCmd.AddCommand(pathCmd)
	configCmd.AddCommand(debugCmd)

	rootCmd.AddCommand(configCmd)
}
