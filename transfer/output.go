package transfer

import (
	"fmt"
	"os"
	"path/filepath"
)

// headersTitle precedes the header block when IncludeHeaders is set.
const headersTitle = "HTTP Response Headers:"

// printHeaders writes the header block followed by one blank line.
func (c *Client) printHeaders(fields []HeaderField) {
	_, _ = fmt.Fprintln(c.stdout, headersTitle)
	for _, f := range fields {
		_, _ = fmt.Fprintf(c.stdout, "%s: %s\n", f.Name, f.Value)
	}
	_, _ = fmt.Fprintln(c.stdout)
}

// render turns a successful outcome into output for op.
func (c *Client) render(op Operation, outcome *ResponseOutcome, remotePath, localPath string) error {
	outputPath := c.config.Options.OutputPath

	if op == OpFetch {
		target := outputPath
		if target == "" {
			target = localPath
		}
		if target == "" {
			_, _ = fmt.Fprintln(c.stdout, outcome.Text())
			return nil
		}
		// Raw bytes: stored files may be arbitrary binary content.
		if err := writeFile(target, outcome.Body); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(c.stdout, "File saved to %s\n", target)
		return nil
	}

	if outputPath != "" {
		if err := writeFile(outputPath, []byte(outcome.Text())); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(c.stdout, "Response saved to %s\n", outputPath)
		return nil
	}

	_, _ = fmt.Fprintln(c.stdout, confirmation(op, remotePath, localPath))
	return nil
}

// confirmation returns the fixed success message for a write operation.
func confirmation(op Operation, remotePath, localPath string) string {
	switch op {
	case OpCreate:
		return fmt.Sprintf("File %s created successfully at %s", localPath, remotePath)
	case OpReplace:
		return fmt.Sprintf("File %s updated successfully at %s", localPath, remotePath)
	default:
		return fmt.Sprintf("File %s deleted successfully", remotePath)
	}
}

// writeFile writes data to path, creating parent directories as needed. The
// file is closed before writeFile returns.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	file, err := os.Create(path) //#nosec G304 -- path is user-provided input
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	if _, err := file.Write(data); err != nil {
		_ = file.Close()
		return fmt.Errorf("write file: %w", err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}
