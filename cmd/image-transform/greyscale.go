package main

import (
	"github.com/spf13/cobra"
)

var greyscaleCmd = &cobra.Command{
	Use:   "greyscale INPUT OUTPUT",
	Short: "Convert one image to greyscale",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if err := flags.Set("input", args[0]); err != nil {
			return err
		}
		if err := flags.Set("output", args[1]); err != nil {
			return err
		}
		return runPipeline(cmd, nil)
	},
}

func init() {
	addPipelineFlags(greyscaleCmd)
	greyscaleCmd.Flags().MarkHidden("input")
	greyscaleCmd.Flags().MarkHidden("output")
	rootCmd.AddCommand(greyscaleCmd)
}
