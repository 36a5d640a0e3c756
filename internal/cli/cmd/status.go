package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"quotepaper/internal/cli/cmd/utils"
	"quotepaper/internal/ipc"
)

func NewStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Get the status of an in-flight generation run",
		Long:  `Returns what the currently running overlay generation is doing, if any.`,
		Run: func(cmd *cobra.Command, args []string) {
			response, err := ipc.SendStatus()
			if err != nil {
				log.Info("No generation run is active")
				return
			}

			utils.PrintJSONColored(response)
		},
	}
}
