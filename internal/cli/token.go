package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitkin/internal/keyring"
)

type TokenSetCmd struct {
	Token string `arg:"" optional:"" help:"WHOOP access token. Prompted for if omitted."`
}

func (c *TokenSetCmd) Run(ctx *Context) error {
	if c.Token == "" {
		input := huh.NewInput().
			Title("WHOOP access token").
			EchoMode(huh.EchoModePassword).
			Value(&c.Token)
		if err := input.Run(); err != nil {
			return err
		}
	}

	if err := keyring.SetAccessToken(c.Token); err != nil {
		return err
	}
	fmt.Println("Token stored in the OS keyring.")
	return nil
}

type TokenClearCmd struct{}

func (c *TokenClearCmd) Run(ctx *Context) error {
	if err := keyring.DeleteAccessToken(); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			fmt.Println("No token stored.")
			return nil
		}
		return err
	}
	fmt.Println("Token removed from the OS keyring.")
	return nil
}
