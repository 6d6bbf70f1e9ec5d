package system

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"anchor/internal/cli"
	"anchor/internal/keyring"
)

type KeyringSetCmd struct {
	Key string `arg:"" optional:"" help:"API key to store. Prompted for when omitted."`
}

func (c *KeyringSetCmd) Run(ctx *cli.Context) error {
	key := c.Key
	if key == "" {
		if err := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Chat API key").
				EchoMode(huh.EchoModePassword).
				Value(&key),
		)).Run(); err != nil {
			return err
		}
	}

	if err := keyring.SetAPIKey(key); err != nil {
		return err
	}
	fmt.Println("API key stored.")
	return nil
}

type KeyringDeleteCmd struct{}

func (c *KeyringDeleteCmd) Run(ctx *cli.Context) error {
	if err := keyring.DeleteAPIKey(); err != nil {
		return err
	}
	fmt.Println("API key removed.")
	return nil
}
