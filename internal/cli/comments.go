package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var commentsFlags fetchFlags

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "Stream archived comments matching the filter",
	Example: `  pullcaps comments -r golang -n 100
  pullcaps comments -a spez --after 1640995200`,
	RunE: commentsAction,
}

func init() {
	commentsFlags.register(commentsCmd)
	rootCmd.AddCommand(commentsCmd)
}

func commentsAction(cmd *cobra.Command, _ []string) error {
	flt, err := commentsFlags.buildFilter()
	if err != nil {
		return err
	}

	c, err := newClient()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	stream, err := c.Comments(flt)
	if err != nil {
		return fmt.Errorf("create comments stream: %w", err)
	}

	written, err := writeNDJSON(cmd.Context(), os.Stdout, stream, commentsFlags.limit)
	if err != nil {
		return fmt.Errorf("after %d comments: %w", written, err)
	}

	fmt.Fprintf(os.Stderr, "fetched %d comments in %d pages\n", written, stream.Pages())
	return nil
}
