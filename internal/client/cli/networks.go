package cli

import (
	"context"
	"fmt"

	"github.com/drivenpass/drivenpass/internal/common"
	"github.com/drivenpass/drivenpass/internal/server/models"
)

func (a *App) runNetworks(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("networks subcommand required: %w", common.ErrValidation)
	}

	switch args[0] {
	case "list":
		return a.listNetworks(ctx)
	case "get":
		return a.getNetwork(ctx, args[1:])
	case "add":
		return a.addNetwork(ctx)
	case "delete":
		return a.deleteNetwork(ctx, args[1:])
	default:
		return fmt.Errorf("unknown networks subcommand %q: %w", args[0], common.ErrValidation)
	}
}

func (a *App) printNetwork(n *models.Network) {
	fmt.Fprintf(a.out, "%d\t%s\t%s\t%s\n", n.ID, n.Title, n.Network, n.Password)
}

func (a *App) listNetworks(ctx context.Context) error {
	list, err := a.api.ListNetworks(ctx)
	if err != nil {
		return err
	}
	for _, n := range list {
		a.printNetwork(n)
	}
	return nil
}

func (a *App) getNetwork(ctx context.Context, args []string) error {
	id, err := parseIDArg(args)
	if err != nil {
		return err
	}

	network, err := a.api.GetNetwork(ctx, id)
	if err != nil {
		return err
	}

	a.printNetwork(network)
	return nil
}

func (a *App) addNetwork(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	network, err := getSimpleText(a.reader, "Enter network name", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	id, err := a.api.CreateNetwork(ctx, &models.Network{
		Title:    title,
		Network:  network,
		Password: string(password),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created network %d\n", id)
	return nil
}

func (a *App) deleteNetwork(ctx context.Context, args []string) error {
	id, err := parseIDArg(args)
	if err != nil {
		return err
	}

	if err := a.api.DeleteNetwork(ctx, id); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Deleted network %d\n", id)
	return nil
}
