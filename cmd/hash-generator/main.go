// Command hash-generator prints bcrypt hashes for seeding users directly
// into the database, using the same hasher as registration.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/dailyplan-api/internal/config"
	"github.com/phrazzld/dailyplan-api/internal/domain"
	"github.com/phrazzld/dailyplan-api/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", config.DefaultBCryptCost, "bcrypt cost")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator [-cost N] password...")
		os.Exit(2)
	}
	if err := run(os.Stdout, auth.NewBcryptHasher(*cost), flag.Args()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(w io.Writer, hasher auth.PasswordHasher, passwords []string) error {
	for _, password := range passwords {
		if _, err := domain.NewUser("seed@example.com", password); err != nil {
			return fmt.Errorf("password %q rejected: %w", password, err)
		}
		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		fmt.Fprintf(w, "Password: %s\nHash: %s\n\n", password, hash)
	}
	return nil
}
