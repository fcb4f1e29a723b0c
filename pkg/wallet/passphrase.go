package wallet

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	trackererrors "github.com/DeBrosOfficial/assettracker/pkg/errors"
	"github.com/ethereum/go-ethereum/accounts"
	"golang.org/x/term"
)

// PassphraseFunc obtains the unlock passphrase for an account.
type PassphraseFunc func(ctx context.Context, account accounts.Account) (string, error)

type passphraseKey struct{}

// WithPassphrase attaches a request-scoped passphrase to ctx.
func WithPassphrase(ctx context.Context, passphrase string) context.Context {
	return context.WithValue(ctx, passphraseKey{}, passphrase)
}

// PassphraseFromContext returns the passphrase attached by WithPassphrase.
func PassphraseFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(passphraseKey{}).(string)
	return v, ok && v != ""
}

// ContextPassphrase reads the passphrase from the request context.
func ContextPassphrase() PassphraseFunc {
	return func(ctx context.Context, _ accounts.Account) (string, error) {
		if pw, ok := PassphraseFromContext(ctx); ok {
			return pw, nil
		}
		return "", trackererrors.ErrUserRejected
	}
}

// FilePassphrase reads the passphrase from the first line of a file.
func FilePassphrase(path string) PassphraseFunc {
	return func(_ context.Context, _ accounts.Account) (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read passphrase file: %w", err)
		}
		line, _, _ := strings.Cut(string(data), "\n")
		return strings.TrimRight(line, "\r"), nil
	}
}

// TerminalPassphrase prompts on out and reads without echo from the terminal in.
func TerminalPassphrase(in *os.File, out io.Writer) PassphraseFunc {
	return func(_ context.Context, account accounts.Account) (string, error) {
		fd := int(in.Fd())
		if !term.IsTerminal(fd) {
			return "", fmt.Errorf("stdin is not a terminal: %w", trackererrors.ErrUserRejected)
		}
		fmt.Fprintf(out, "Passphrase for %s: ", account.Address.Hex())
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		if err != nil {
			return "", err
		}
		return string(pw), nil
	}
}

// FirstPassphrase tries each source in order and returns the first non-empty passphrase.
func FirstPassphrase(sources ...PassphraseFunc) PassphraseFunc {
	return func(ctx context.Context, account accounts.Account) (string, error) {
		var lastErr error = trackererrors.ErrUserRejected
		for _, src := range sources {
			if src == nil {
				continue
			}
			pw, err := src(ctx, account)
			if err != nil {
				lastErr = err
				continue
			}
			if pw != "" {
				return pw, nil
			}
		}
		return "", lastErr
	}
}
