package cmd

import (
	"github.com/haierkeys/collab-note-service/global"
	internalApp "github.com/haierkeys/collab-note-service/internal/app"
	"github.com/haierkeys/collab-note-service/pkg/fileurl"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func init() {
	var configPath string

	var configCommand = &cobra.Command{
		Use:   "config [-c config_file]",
		Short: "Print the effective configuration",
		Run: func(cmd *cobra.Command, args []string) {
			if len(configPath) <= 0 {
				if fileurl.IsExist("config/config-dev.yaml") {
					configPath = "config/config-dev.yaml"
				} else if fileurl.IsExist("config.yaml") {
					configPath = "config.yaml"
				} else {
					configPath = "config/config.yaml"
				}
			}

			cfg, realpath, err := internalApp.LoadConfig(configPath)
			if err != nil {
				bootstrapLogger.Error("failed to load config", zap.Error(err))
				return
			}

			bootstrapLogger.Info("config loaded", zap.String("path", realpath))
			global.Dump(cfg)
		},
	}

	rootCmd.AddCommand(configCommand)
	configCommand.Flags().StringVarP(&configPath, "config", "c", "", "config file")
}
