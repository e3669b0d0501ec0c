// Command hashpw prints a password digest suitable for the password_hash
// field of a SEED_FILE entry.
//
// The password is prompted for on the terminal with echo disabled, or read
// from the first line of stdin when stdin is not a terminal:
//
//	hashpw --algorithm argon2id
//	printf 'secret\n' | hashpw --cost 12
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/99minutos/uuid-resolver/internal/infrastructure/security"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) error {
	var algorithm string
	var cost int

	flagSet := pflag.NewFlagSet("hashpw", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&algorithm, "algorithm", "a", security.AlgorithmBcrypt, "hash algorithm: bcrypt or argon2id")
	flagSet.IntVarP(&cost, "cost", "c", 10, "bcrypt cost (ignored for argon2id)")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	hasher, err := security.NewHasher(algorithm, cost, security.DefaultArgon2idParams())
	if err != nil {
		return err
	}

	password, err := readPassword(stdin, stderr)
	if err != nil {
		return err
	}

	digest, err := hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	fmt.Fprintln(stdout, digest)
	return nil
}

// readPassword prompts on the terminal when stdin is one, otherwise reads the
// first line of stdin.
func readPassword(stdin *os.File, stderr io.Writer) (string, error) {
	fd := int(stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(stderr, "Password: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(stderr)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return nonEmpty(string(raw))
	}
	return readLine(stdin)
}

func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return nonEmpty(strings.TrimRight(line, "\r\n"))
}

func nonEmpty(password string) (string, error) {
	if password == "" {
		return "", errors.New("password is empty")
	}
	return password, nil
}
