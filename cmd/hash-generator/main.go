// Command hash-generator prints bcrypt hashes for the passwords given as
// arguments, for seeding users directly into the database.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/jobs-api/internal/service/auth"
	"github.com/spf13/pflag"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	flags := pflag.NewFlagSet("hash-generator", pflag.ContinueOnError)
	cost := flags.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return errors.New("usage: hash-generator [--cost N] PASSWORD...")
	}

	hasher, err := auth.NewBcryptHasher(*cost)
	if err != nil {
		return err
	}

	for _, password := range flags.Args() {
		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("failed to hash %q: %w", password, err)
		}
		fmt.Fprintln(out, hash)
	}
	return nil
}
