// Command pullcaps streams Reddit posts and comments from the PushShift
// archive to stdout as newline-delimited JSON.
package main

import (
	"os"

	"github.com/pullcaps/pushshift-client/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
