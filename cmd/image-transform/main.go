package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

const logLevelEnv = "IMAGE_TRANSFORM_LOG_LEVEL"

const rootLong = `image-transform converts a color image to greyscale with fixed channel
weights and can write the inverse (negative) alongside it.

Run without a subcommand to process images/lake.jpg into
image_solutions/lake_greyscale.jpg.

Environment variables:
  IMAGE_TRANSFORM_LOG_LEVEL=debug    Enable debug logging`

var rootCmd = &cobra.Command{
	Use:              "image-transform",
	Short:            "Convert images to greyscale and compute their negatives",
	Long:             rootLong,
	Args:             cobra.NoArgs,
	SilenceUsage:     true,
	PersistentPreRun: setupLogging,
	RunE:             runPipeline,
}

func init() {
	addPipelineFlags(rootCmd)
}

// setupLogging sends log output to stderr; stdout carries MCP traffic in serve mode.
func setupLogging(cmd *cobra.Command, args []string) {
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	if debugEnabled() {
		log.Printf("image-transform %s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}
}

func debugEnabled() bool {
	return os.Getenv(logLevelEnv) == "debug"
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
