package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var postsFlags fetchFlags

var postsCmd = &cobra.Command{
	Use:   "posts",
	Short: "Stream archived submissions matching the filter",
	Example: `  pullcaps posts -r golang -n 100
  pullcaps posts -a spez --before 2023-01-01T00:00:00Z
  pullcaps posts -q "generics" --sort asc`,
	RunE: postsAction,
}

func init() {
	postsFlags.register(postsCmd)
	rootCmd.AddCommand(postsCmd)
}

func postsAction(cmd *cobra.Command, _ []string) error {
	flt, err := postsFlags.buildFilter()
	if err != nil {
		return err
	}

	c, err := newClient()
	if err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	stream, err := c.Posts(flt)
	if err != nil {
		return fmt.Errorf("create posts stream: %w", err)
	}

	written, err := writeNDJSON(cmd.Context(), os.Stdout, stream, postsFlags.limit)
	if err != nil {
		return fmt.Errorf("after %d posts: %w", written, err)
	}

	fmt.Fprintf(os.Stderr, "fetched %d posts in %d pages\n", written, stream.Pages())
	return nil
}
