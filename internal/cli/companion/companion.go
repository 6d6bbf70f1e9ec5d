// Package companion holds the supportive chat commands.
package companion

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"anchor/internal/chat"
	"anchor/internal/cli"
	"anchor/internal/constants"
	"anchor/internal/keyring"
	"anchor/internal/tui/chatview"
)

type SessionCmd struct {
	Model string `help:"Chat model identifier." default:"${chat_model}"`
}

func (c *SessionCmd) Run(ctx *cli.Context) error {
	apiKey, err := keyring.GetAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no chat API key configured; run 'anchor keyring set-api-key' or set %s", constants.APIKeyEnvVar)
		}
		return err
	}

	history, err := ctx.Store.GetChatHistory()
	if err != nil {
		return err
	}

	responder := chat.NewResponder(constants.DefaultChatBaseURL, c.Model, apiKey)
	model := chatview.New(ctx.Store, responder, history)

	_, err = tea.NewProgram(model).Run()
	return err
}

type ClearCmd struct{}

func (c *ClearCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.ClearChatHistory(); err != nil {
		return err
	}
	fmt.Println("Chat history cleared.")
	return nil
}
