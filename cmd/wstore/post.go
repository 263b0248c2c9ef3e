package main

import (
	"github.com/spf13/cobra"
)

var postCmd = &cobra.Command{
	Use:   "post <local> <remote>",
	Short: "Create a new file on the server",
	Long: `Create a new file on the server.

The local file is sent as application/octet-stream.

Examples:
  wstore post ./notes.txt docs/notes.txt
  wstore -a user:pass post ./image.png images/image.png`,
	Args: cobra.ExactArgs(2),
	RunE: runPost,
}

func runPost(cmd *cobra.Command, args []string) error {
	localPath := args[0]
	remotePath := args[1]

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	return reported(client.Post(cmd.Context(), localPath, remotePath))
}
