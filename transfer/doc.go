// Package transfer provides the request/response core of the wstore client.
//
// A Client performs exactly one HTTP exchange per operation against a WebStore
// file server: Get (fetch), Post (create), Put (replace) and Delete. It builds
// the request, sends it, renders the response to its output writers and applies
// a single failure policy to every operation.
//
// # Basic Usage
//
//	creds, err := transfer.ParseCredentials("alice:secret")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	client, err := transfer.New(&transfer.Config{
//		BaseURL:     "http://localhost:4500/",
//		Credentials: creds,
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := client.Put(ctx, "./report.pdf", "docs/report.pdf"); err != nil {
//		log.Fatal(err)
//	}
//
// # Authentication
//
// Credentials are sent as HTTP Basic authentication. Which operations carry the
// Authorization header is decided by an AuthPolicy; DefaultAuthPolicy signs
// Post, Put and Delete and leaves Get anonymous.
//
// # Failure Handling
//
// Every failure writes one line to the client's error writer:
//
//	Error getting file: HTTP error! Status: 404, Message: not found
//
// With ModeReturn (the default) the error is then returned. With ModeExit the
// client terminates the process with status 1, which is what the wstore command
// uses.
package transfer
