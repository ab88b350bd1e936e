// Package main prints a salt and salted hash for a password, in the format
// stored in the account credential columns. Useful for seeding accounts by hand.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/phrazzld/booklist-api/internal/domain"
	"github.com/phrazzld/booklist-api/internal/service/auth"
	"golang.org/x/term"
)

func main() {
	password := flag.String("password", "", "password to hash (prompted for when empty)")
	skipRules := flag.Bool("skip-rules", false, "hash the password even if it breaks the password rules")
	flag.Parse()

	pw := *password
	if pw == "" {
		var err error
		pw, err = readPassword()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading password: %v\n", err)
			os.Exit(1)
		}
	}

	if !*skipRules && !domain.IsValidPassword(pw) {
		fmt.Fprintln(os.Stderr, "Password must be 8-24 characters with a digit and one of "+domain.PasswordSpecialChars)
		os.Exit(1)
	}

	saltedHash, salt, err := auth.NewArgon2Hasher().Hash(pw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating hash: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("salt: %s\nsalted_hash: %s\n", salt, saltedHash)
}

// readPassword prompts without echo on a terminal and reads a line otherwise.
func readPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", err
		}
		return strings.TrimRight(line, "\r\n"), nil
	}

	fmt.Fprint(os.Stderr, "Password: ")
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
