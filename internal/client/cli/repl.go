package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Init(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Address(ctx context.Context) error
	Create(ctx context.Context) error
	Get(ctx context.Context, args []string) error
	List(ctx context.Context) error
	Decrypt(ctx context.Context, args []string) error
	Total(ctx context.Context) error
}

// runREPL reads one command per line from reader and dispatches it to a.
// The loop exits on EOF, on "exit" or "quit", or when ctx is cancelled.
//
//	Not logged in:
//	  help, init, login, address, total, get <id>, exit
//
//	Logged in:
//	  help, create, get <id>, list, decrypt <id>, total, address, logout, exit
//
// Command errors are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("petguard %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: create, get <id>, (l)ist, decrypt <id>, total, address, logout, exit")
			} else {
				printlnFn("Available commands: init, login, address, get <id>, total, exit")
			}

		case "init":
			cmdErr = a.Init(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "address":
			cmdErr = a.Address(ctx)

		case "create":
			cmdErr = requireLogin(a, func() error { return a.Create(ctx) })

		case "get":
			if len(args) == 0 {
				printlnFn("Usage: get <id>")
				continue
			}
			cmdErr = a.Get(ctx, args)

		case "l", "list":
			cmdErr = requireLogin(a, func() error { return a.List(ctx) })

		case "decrypt":
			if len(args) == 0 {
				printlnFn("Usage: decrypt <id>")
				continue
			}
			cmdErr = requireLogin(a, func() error { return a.Decrypt(ctx, args) })

		case "total":
			cmdErr = a.Total(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn("Error:", cmdErr)
		}
	}
}

var errNotLoggedIn = errors.New("not logged in, use login first")

func requireLogin(a execIface, fn func() error) error {
	if !a.isLoggedIn() {
		return errNotLoggedIn
	}
	return fn()
}
