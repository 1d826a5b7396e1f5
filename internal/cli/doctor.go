package cli

import (
	"fmt"
	"os"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: storage reachable (Load also validates the schema version
	// against the embedded migrations)
	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
		defer ctx.Store.Close()
	}

	// Check 2: server configuration
	if os.Getenv("TEND_JWT_SECRET") == "" {
		fmt.Printf("⚠ Server config: WARNING\n")
		fmt.Printf("   TEND_JWT_SECRET is not set; 'tend serve' will refuse to start\n")
	} else {
		fmt.Printf("✓ Server config: OK\n")
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed.")
	return nil
}
