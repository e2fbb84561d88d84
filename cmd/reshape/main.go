package main

import (
	"os"

	"github.com/spf13/cobra"

	convertcmder "github.com/driftwoodco/reshape/cmd/reshape/convert"
)

func main() {
	root := &cobra.Command{
		Use:   "reshape",
		Short: "Convert chat message histories between provider wire formats",
	}

	root.AddCommand(convertcmder.NewConvertCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
