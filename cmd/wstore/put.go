package main

import (
	"github.com/spf13/cobra"
)

var putCmd = &cobra.Command{
	Use:   "put <local> <remote>",
	Short: "Create or update a file on the server",
	Long: `Create or update a file on the server.

Examples:
  wstore put ./local/doc.pdf files/doc.pdf
  wstore put -o response.txt ./local/doc.pdf files/doc.pdf`,
	Args: cobra.ExactArgs(2),
	RunE: runPut,
}

func runPut(cmd *cobra.Command, args []string) error {
	localPath := args[0]
	remotePath := args[1]

	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	return reported(client.Put(cmd.Context(), localPath, remotePath))
}
