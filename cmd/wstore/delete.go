package main

import (
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <remote>",
	Short: "Delete a file from the server",
	Long: `Delete a file from the server.

Examples:
  wstore delete files/oldfile.txt
  wstore -a user:pass delete files/oldfile.txt`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	return reported(client.Delete(cmd.Context(), args[0]))
}
