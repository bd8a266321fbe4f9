package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/drivenpass/drivenpass/internal/common"
	"github.com/drivenpass/drivenpass/internal/server/models"
)

func parseIDArg(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("id argument required: %w", common.ErrValidation)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("id must be numeric: %w", common.ErrValidation)
	}
	return id, nil
}

func (a *App) runCredentials(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("credentials subcommand required: %w", common.ErrValidation)
	}

	switch args[0] {
	case "list":
		return a.listCredentials(ctx)
	case "get":
		return a.getCredential(ctx, args[1:])
	case "add":
		return a.addCredential(ctx)
	case "delete":
		return a.deleteCredential(ctx, args[1:])
	default:
		return fmt.Errorf("unknown credentials subcommand %q: %w", args[0], common.ErrValidation)
	}
}

func (a *App) printCredential(c *models.Credential) {
	fmt.Fprintf(a.out, "%d\t%s\t%s\t%s\t%s\n", c.ID, c.Title, c.URL, c.Username, c.Password)
}

func (a *App) listCredentials(ctx context.Context) error {
	list, err := a.api.ListCredentials(ctx)
	if err != nil {
		return err
	}
	for _, c := range list {
		a.printCredential(c)
	}
	return nil
}

func (a *App) getCredential(ctx context.Context, args []string) error {
	id, err := parseIDArg(args)
	if err != nil {
		return err
	}

	credential, err := a.api.GetCredential(ctx, id)
	if err != nil {
		return err
	}

	a.printCredential(credential)
	return nil
}

func (a *App) addCredential(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	url, err := getSimpleText(a.reader, "Enter URL", a.out)
	if err != nil {
		return err
	}
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := a.api.CreateCredential(ctx, &models.Credential{
		Title:    title,
		URL:      url,
		Username: username,
		Password: string(password),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created credential %d\n", id)
	return nil
}

func (a *App) deleteCredential(ctx context.Context, args []string) error {
	id, err := parseIDArg(args)
	if err != nil {
		return err
	}

	if err := a.api.DeleteCredential(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted credential %d\n", id)
	return nil
}
