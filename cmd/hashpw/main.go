package main // Entry point package

import (
	"fmt" // Output formatting
	"log" // Logging library
	"os"  // Argument access

	"github.com/enactusftu/gatekeeper/internal/utils" // bcrypt helpers
)

// hashpw prints the bcrypt hash of its argument, for seeding
// ADMIN_PASSWORD_HASH in the environment.
func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: hashpw <password>")
	}
	hash, err := utils.HashPassword(os.Args[1], 0) // 0 selects the bcrypt default cost
	if err != nil {
		log.Fatalf("hash: %v", err)
	}
	fmt.Println(hash)
}
