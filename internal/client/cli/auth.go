package cli

import (
	"context"
	"fmt"

	"github.com/drivenpass/drivenpass/internal/common"
)

// Register prompts the user for an email and password and attempts to create
// a new account.
//
// On success it prints "Success!" and returns nil. The password byte slice
// is wiped before returning.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	user, err := a.api.SignUp(ctx, email, string(password))
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Success! Registered %s (id %d)\n", user.Email, user.ID)
	return nil
}

// Login prompts the user for credentials, authenticates against the backend,
// and saves the session token for subsequent commands.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	result, err := a.api.SignIn(ctx, email, string(password))
	if err != nil {
		return err
	}

	if err := a.saveToken(result.Token); err != nil {
		return fmt.Errorf("error saving token: %w", err)
	}

	fmt.Fprintf(a.out, "Logged in as %s\n", result.User.Email)
	return nil
}
