// Command coachctl is the operator CLI of the coaching backend: schema
// migrations, access tokens for bootstrapping, and read-only inspection of
// artifact history and client timelines.
package main

import (
	"fmt"
	"os"

	"github.com/heartmarshall/coaching-backend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
