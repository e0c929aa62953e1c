// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command qrtoken prints and checks the tokens encoded in pokehunt QR codes.
//
//	qrtoken pokemon encode Pikachu
//	qrtoken pokemon link Pikachu -origin https://hunt.example.com
//	qrtoken pokemon batch -file names.txt
//	qrtoken gym encode fire -origin https://hunt.example.com
//	qrtoken verify -type gym -slug fire -value <hex>
//
// The secret comes from -key or QR_SECRET_KEY (a .env file is read if present).
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/rrex971/pokehunt/token"
)

const defaultOrigin = "http://localhost:3000"

// Exit codes
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var errMissingKey = errors.New("missing key: provide -key or set QR_SECRET_KEY env")

const usage = `usage:
  qrtoken pokemon encode <name> [-key K] [-origin URL]
  qrtoken pokemon link <name> [-key K] [-origin URL]
  qrtoken pokemon batch -file PATH [-key K] [-origin URL]
  qrtoken gym encode <slug> [-key K] [-origin URL]
  qrtoken gym link <slug> [-key K] [-origin URL]
  qrtoken verify -type pokemon|gym (-name N | -slug S) -value HEX [-key K]
`

func main() {
	// Missing .env is normal.
	_ = godotenv.Load()
	os.Exit(run(os.Args[1:], os.Getenv, os.Stdout, os.Stderr))
}

// run executes one command and returns the process exit code.
func run(args []string, getenv func(string) string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	var err error
	switch args[0] {
	case "pokemon":
		err = runKind(args[1:], "/catch", true, getenv, stdout)
	case "gym":
		err = runKind(args[1:], "/gym", false, getenv, stdout)
	case "verify":
		err = runVerify(args[1:], getenv, stdout)
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		err = usageError{fmt.Errorf("unknown command %q", args[0])}
	}

	if err == nil {
		return exitOK
	}
	fmt.Fprintln(stderr, err)
	var ue usageError
	switch {
	case errors.As(err, &ue):
		fmt.Fprint(stderr, usage)
		return exitUsage
	case errors.Is(err, errMissingKey), errors.Is(err, os.ErrNotExist):
		return exitUsage
	}
	return exitFailure
}

type usageError struct{ error }

func (e usageError) Unwrap() error { return e.error }

type commonFlags struct {
	key    string
	origin string
}

func (c *commonFlags) register(fs *flag.FlagSet, origin string) {
	fs.StringVar(&c.key, "key", "", "Secret key (overrides QR_SECRET_KEY env)")
	fs.StringVar(&c.origin, "origin", origin, "Origin for full links")
}

func (c commonFlags) secret(getenv func(string) string) (string, error) {
	if c.key != "" {
		return c.key, nil
	}
	if k := getenv("QR_SECRET_KEY"); k != "" {
		return k, nil
	}
	return "", errMissingKey
}

func link(origin, path, digest string) string {
	return strings.TrimRight(origin, "/") + path + "?p=" + digest
}

// parseWithArg parses flags on either side of a single positional argument.
func parseWithArg(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", usageError{err}
	}
	if fs.NArg() == 0 {
		return "", usageError{errors.New("missing name")}
	}
	arg := fs.Arg(0)
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return "", usageError{err}
	}
	if fs.NArg() != 0 {
		return "", usageError{fmt.Errorf("unexpected arguments %v", fs.Args())}
	}
	return arg, nil
}

func runKind(args []string, path string, allowBatch bool, getenv func(string) string, stdout io.Writer) error {
	if len(args) == 0 {
		return usageError{errors.New("missing subcommand")}
	}
	sub, rest := args[0], args[1:]

	fs := flag.NewFlagSet(sub, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var c commonFlags

	switch sub {
	case "encode":
		// encode prints a bare digest unless an origin is given
		c.register(fs, "")
		name, err := parseWithArg(fs, rest)
		if err != nil {
			return err
		}
		key, err := c.secret(getenv)
		if err != nil {
			return err
		}
		d := token.Digest(name, key)
		if c.origin != "" {
			fmt.Fprintln(stdout, link(c.origin, path, d))
		} else {
			fmt.Fprintln(stdout, d)
		}
		return nil

	case "link":
		c.register(fs, defaultOrigin)
		name, err := parseWithArg(fs, rest)
		if err != nil {
			return err
		}
		key, err := c.secret(getenv)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, link(c.origin, path, token.Digest(name, key)))
		return nil

	case "batch":
		if !allowBatch {
			return usageError{fmt.Errorf("unknown subcommand %q", sub)}
		}
		c.register(fs, defaultOrigin)
		var file string
		fs.StringVar(&file, "file", "", "Newline-separated names")
		if err := fs.Parse(rest); err != nil {
			return usageError{err}
		}
		if file == "" {
			return usageError{errors.New("-file is required")}
		}
		key, err := c.secret(getenv)
		if err != nil {
			return err
		}
		return batch(file, key, c.origin, path, stdout)

	default:
		return usageError{fmt.Errorf("unknown subcommand %q", sub)}
	}
}

// batch prints name,digest,link for every non-blank line of file.
func batch(file, key, origin, path string, stdout io.Writer) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		name := strings.TrimSpace(sc.Text())
		if name == "" {
			continue
		}
		d := token.Digest(name, key)
		fmt.Fprintf(stdout, "%s,%s,%s\n", name, d, link(origin, path, d))
	}
	return sc.Err()
}

func runVerify(args []string, getenv func(string) string, stdout io.Writer) error {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		c                       commonFlags
		kind, name, slug, value string
	)
	fs.StringVar(&c.key, "key", "", "Secret key (overrides QR_SECRET_KEY env)")
	fs.StringVar(&kind, "type", "", "pokemon or gym")
	fs.StringVar(&name, "name", "", "Pokemon name")
	fs.StringVar(&slug, "slug", "", "Gym slug")
	fs.StringVar(&value, "value", "", "Hex token to verify")
	if err := fs.Parse(args); err != nil {
		return usageError{err}
	}
	if value == "" {
		return usageError{errors.New("-value is required")}
	}

	key, err := c.secret(getenv)
	if err != nil {
		return err
	}

	var identifier string
	switch kind {
	case "pokemon":
		if name == "" {
			return usageError{errors.New("-name is required for pokemon verification")}
		}
		identifier = name
	case "gym":
		if slug == "" {
			return usageError{errors.New("-slug is required for gym verification")}
		}
		identifier = slug
	default:
		return usageError{fmt.Errorf("-type must be pokemon or gym, got %q", kind)}
	}

	if token.Digest(identifier, key) == strings.ToLower(value) {
		fmt.Fprintln(stdout, "OK")
	} else {
		fmt.Fprintln(stdout, "INVALID")
	}
	return nil
}
