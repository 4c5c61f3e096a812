// Package cmd 提供 keepsake 命令行：启动服务以及数据库、KV、MQ、配置相关的运维子命令.
package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yeisme/keepsake/pkg/app"
	"github.com/yeisme/keepsake/pkg/configs"
)

var (
	// configPath 配置文件或所在目录.
	configPath string
	// debug 打印配置时附带 viper 调试输出.
	debug bool

	rootCmd = &cobra.Command{
		Use:          configs.AppName,
		Short:        "Backend of the first-birthday keepsake site",
		SilenceUsage: true,
		RunE:         runServe,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "start the HTTP server",
		RunE:  runServe,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", ".", "config file or directory containing config.*")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "print viper debug output")

	rootCmd.AddCommand(serveCmd)
	registerDBCommands()
	registerKVCommands()
	registerMQCommands()
	registerConfigsCommands()
}

// runServe 启动服务，收到 SIGINT/SIGTERM 后优雅退出.
func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.NewApp(ctx, configPath)
	if err != nil {
		return err
	}

	return a.Run(ctx)
}

// loadConfig 供运维子命令加载配置.
func loadConfig(*cobra.Command, []string) error {
	return configs.InitConfig(configPath)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}
