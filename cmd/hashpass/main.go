// Command hashpass prints the bcrypt hash of a dashboard password for use as
// the DASHBOARD_PASSWORD environment value.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/leadpilot/leadpilot/pkg/auth"
)

func main() {
	password := flag.String("password", "", "plain password to hash")
	flag.Parse()

	if *password == "" {
		log.Fatalf("❌ -password is required")
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		log.Fatalf("❌ Failed to hash password: %v", err)
	}
	fmt.Println(hash)
}
