package main

import (
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <remote> [local]",
	Short: "Download a file from the server",
	Long: `Download a file from the server.

The file is written to --output if set, otherwise to [local] if given.
Parent directories are created as needed. With neither, the content is
printed to stdout.

Examples:
  wstore get files/image.jpg ./downloads/image.jpg
  wstore get -i files/config.json
  wstore get files/data.json -o ./output.json`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	remotePath := args[0]

	localPath := ""
	if len(args) > 1 {
		localPath = args[1]
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	return reported(client.Get(cmd.Context(), remotePath, localPath))
}
