package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/josephwaugh312/shiftsync-tour/internal/cli"
	"github.com/josephwaugh312/shiftsync-tour/internal/logging"
	"github.com/josephwaugh312/shiftsync-tour/internal/presentation/graph"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Export the tour map visualization",
	Long:  `Outputs a Mermaid diagram (graph TD) of the step catalog. With --progress, viewed and current steps from the configured store are highlighted.`,
	Run: func(cmd *cobra.Command, args []string) {
		withProgress, _ := cmd.Flags().GetBool("progress")

		engine, err := cli.CreateEngine(cmd.Context(), runOptionsFromFlags(cmd), logging.NewNop())
		if err != nil {
			fmt.Printf("Error initializing tour engine: %v\n", err)
			os.Exit(1)
		}
		defer engine.Close(context.Background())

		var overlay *graph.GraphOverlay
		if withProgress {
			st := engine.State()
			overlay = &graph.GraphOverlay{ViewedSteps: st.ViewedSteps}
			if st.Active {
				overlay.CurrentStep = engine.Catalog()[st.StepIndex].ID
			}
		}

		fmt.Print(graph.GenerateMermaid(engine.Catalog(), overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().Bool("progress", false, "Overlay viewed and current steps from the store")
}
