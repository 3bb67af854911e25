// Package cli implements the interactive client: a small command loop for
// registering, logging in and validating the held token against a credgate
// server.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/credgate/credgate/internal/client/api"
	"github.com/credgate/credgate/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

type App struct {
	client *api.Client
	reader *bufio.Reader
	out    io.Writer

	// token issued by the last successful login, held only in memory
	token string
}

func NewApp(client *api.Client, in io.Reader, out io.Writer) *App {
	return &App{client: client, reader: bufio.NewReader(in), out: out}
}

// Register prompts for a username and password and creates a new account.
// The password bytes are wiped before returning.
func (a *App) Register(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.client.Register(ctx, userName, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login prompts for credentials and stores the issued token on success.
func (a *App) Login(ctx context.Context) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	token, err := a.client.Login(ctx, userName, password)
	if err != nil {
		return err
	}

	a.token = token
	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

// Validate checks the token held from the last login against the server.
func (a *App) Validate(ctx context.Context) error {
	if a.token == "" {
		return errors.New("no token held, login first")
	}

	if err := a.client.Validate(ctx, a.token); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Token is valid.")
	return nil
}

// Run reads commands until EOF or an explicit exit.
func (a *App) Run(ctx context.Context) error {
	for {
		cmd, err := getSimpleText(a.reader, "Command (register/login/validate/exit)", a.out)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		switch strings.ToLower(cmd) {
		case "register":
			err = a.Register(ctx)
		case "login":
			err = a.Login(ctx)
		case "validate":
			err = a.Validate(ctx)
		case "exit", "quit":
			return nil
		case "":
			continue
		default:
			fmt.Fprintf(a.out, "unknown command: %s\n", cmd)
			continue
		}

		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
		}
	}
}

// Main is the CLI entry point, invoked from cmd/cli.
func Main(address, tokenHeader string) {
	client := api.NewClient(address, tokenHeader)
	app := NewApp(client, os.Stdin, os.Stdout)

	if err := app.Run(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
