package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	mq "github.com/yeisme/keepsake/pkg/internal/storage/mq"
	"github.com/yeisme/keepsake/pkg/queue"
)

var (
	mqCmd = &cobra.Command{
		Use:   "mq",
		Short: "Event bus commands",
	}

	mqListCmd = &cobra.Command{
		Use:     "ls",
		Short:   "list all registered mq types",
		Aliases: []string{"list"},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "Registered mq types:")

			for _, t := range mq.GetRegisteredMQTypes() {
				fmt.Fprintln(cmd.OutOrStdout(), " - "+string(t))
			}
		},
	}

	mqTopicsCmd = &cobra.Command{
		Use:   "topics",
		Short: "list published event topics and their config domain",
		Run: func(cmd *cobra.Command, _ []string) {
			for _, t := range queue.Topics() {
				d, _ := queue.DomainOf(t)
				fmt.Fprintf(cmd.OutOrStdout(), "%-30s events.%s\n", t, d)
			}
		},
	}
)

// registerMQCommands 注册 MQ 相关命令.
func registerMQCommands() {
	rootCmd.AddCommand(mqCmd)
	mqCmd.AddCommand(mqListCmd, mqTopicsCmd)
}
