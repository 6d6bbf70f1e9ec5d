package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetAPIKey(t *testing.T) {
	gokeyring.MockInit()

	const testKey = "sk-test-1234567890"

	if err := SetAPIKey(testKey); err != nil {
		t.Fatalf("SetAPIKey failed: %v", err)
	}

	got, err := GetAPIKey()
	if err != nil {
		t.Fatalf("GetAPIKey failed: %v", err)
	}
	if got != testKey {
		t.Errorf("GetAPIKey = %q, want %q", got, testKey)
	}
}

func TestSetAPIKeyEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey(""); err == nil {
		t.Error("SetAPIKey(\"\") expected error, got nil")
	}
}

func TestGetAPIKeyNotFound(t *testing.T) {
	gokeyring.MockInit()

	_, err := GetAPIKey()
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAPIKey on empty keyring = %v, want ErrNotFound", err)
	}
}

func TestEnvVarOverridesKeyring(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey("from-keyring"); err != nil {
		t.Fatalf("SetAPIKey failed: %v", err)
	}

	t.Setenv("ANCHOR_API_KEY", "from-env")

	got, err := GetAPIKey()
	if err != nil {
		t.Fatalf("GetAPIKey failed: %v", err)
	}
	if got != "from-env" {
		t.Errorf("GetAPIKey = %q, want env override %q", got, "from-env")
	}
}

func TestDeleteAPIKey(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAPIKey("to-delete"); err != nil {
		t.Fatalf("SetAPIKey failed: %v", err)
	}
	if err := DeleteAPIKey(); err != nil {
		t.Fatalf("DeleteAPIKey failed: %v", err)
	}

	if _, err := GetAPIKey(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAPIKey after delete = %v, want ErrNotFound", err)
	}

	if err := DeleteAPIKey(); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteAPIKey twice = %v, want ErrNotFound", err)
	}
}
