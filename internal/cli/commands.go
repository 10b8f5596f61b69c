package cli

import (
	"github.com/spf13/cobra"

	"tempo/internal/config"
	"tempo/internal/log"
	"tempo/internal/schedule"
	"tempo/internal/store/remote"
)

var serverURL string

// New builds the tempo-cli root command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "tempo-cli",
		Short:         "Track and schedule time entries from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&serverURL, "server", "",
		"base URL of the tempo server (defaults to $TEMPO_BASE_URL)")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addDay(topLevel)
	addMonth(topLevel)
	addAdd(topLevel)
	addMove(topLevel)
	addRemove(topLevel)
	addCategories(topLevel)
}

// newCoordinator connects to the server and loads the collections.
func newCoordinator(cmd *cobra.Command) (*schedule.Coordinator, error) {
	baseURL := serverURL
	if baseURL == "" {
		baseURL = config.Load().RemoteBaseURL
	}

	coord := schedule.NewCoordinator(remote.NewClient(baseURL), nil, log.Default(log.ComponentCLI))
	if err := coord.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return coord, nil
}
