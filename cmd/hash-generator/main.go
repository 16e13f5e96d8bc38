// Command hash-generator prints the stored form of credentials: the bcrypt
// hash of a password, or the lookup hash of a presented API key as it
// appears in api_keys.hashed_key.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/phrazzld/signup-api/internal/config"
	"github.com/phrazzld/signup-api/internal/service/auth"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hash-generator", flag.ContinueOnError)
	fs.SetOutput(stderr)
	mode := fs.String("mode", "apikey", "what to hash: apikey or password")
	prefix := fs.String("prefix", config.DefaultAPIKeyPrefix, "API key prefix to strip before hashing")
	cost := fs.Int("cost", 12, "bcrypt cost for password hashes")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("usage: hash-generator [-mode apikey|password] value...")
	}

	for _, value := range fs.Args() {
		var (
			hashed string
			err    error
		)
		switch *mode {
		case "apikey":
			hashed = auth.HashAPIKey(auth.StripPrefix(value, *prefix))
		case "password":
			hashed, err = auth.NewBcryptHasher(*cost).Hash(value)
		default:
			return fmt.Errorf("unknown mode %q", *mode)
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, hashed)
	}

	return nil
}
