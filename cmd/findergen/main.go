// Command findergen generates the implementation of Hibernate and Jakarta
// Data finder methods from repository descriptors.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	// A missing .env file is fine: flags and the environment still apply.
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "findergen",
		Short: "Generate finder method implementations",
		Long: `findergen reads repository descriptors and writes the Java classes
implementing their finder methods.

Defaults of the generate and watch flags are read from the environment
(and from a .env file in the working directory):

  FINDERGEN_TARGET    output directory
  FINDERGEN_WORKERS   number of units generated in parallel`,
		SilenceUsage: true,
	}
	cmd.AddCommand(generateCmd())
	cmd.AddCommand(watchCmd())
	return cmd
}
