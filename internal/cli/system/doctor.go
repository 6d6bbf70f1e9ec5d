package system

import (
	"fmt"
	"os"
	"path/filepath"

	"anchor/internal/backup"
	"anchor/internal/cli"
	"anchor/internal/keyring"
)

type DoctorCmd struct{}

func (c *DoctorCmd) Run(ctx *cli.Context) error {
	ok := true

	storePath := ctx.Store.GetConfigPath()
	if _, err := os.Stat(storePath); err != nil {
		fmt.Printf("✗ storage: %s not found, run 'anchor init'\n", storePath)
		ok = false
	} else if err := ctx.Store.Verify(); err != nil {
		// Verify catches unreadable payloads that Load would quietly reset
		// to an empty collection.
		fmt.Printf("✗ storage: %v\n", err)
		ok = false
	} else if err := ctx.Store.Load(); err != nil {
		fmt.Printf("✗ storage: %v\n", err)
		ok = false
	} else {
		fmt.Printf("✓ storage: %s\n", storePath)
	}

	configDir := filepath.Dir(storePath)
	if info, err := os.Stat(configDir); err != nil || !info.IsDir() {
		fmt.Printf("✗ config dir: %s is not a directory\n", configDir)
		ok = false
	} else {
		fmt.Printf("✓ config dir: %s\n", configDir)
	}

	backups, err := backup.NewManager(storePath).ListBackups()
	switch {
	case err != nil:
		fmt.Printf("! backups: %v\n", err)
	case len(backups) == 0:
		fmt.Println("! backups: none yet, run 'anchor backup create'")
	default:
		fmt.Printf("✓ backups: %d available\n", len(backups))
	}

	if keyring.IsAvailable() {
		fmt.Println("✓ keyring: available")
	} else {
		fmt.Println("! keyring: unavailable, chat will rely on ANCHOR_API_KEY")
	}

	if !ok {
		return fmt.Errorf("doctor found problems")
	}
	return nil
}
