package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	testConnStr := "postgres://testuser@localhost:5432/testdb?sslmode=disable"
	if err := SetConnectionString(testConnStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	retrieved, err := GetConnectionString()
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if retrieved != testConnStr {
		t.Errorf("GetConnectionString() = %q, want %q", retrieved, testConnStr)
	}
}

func TestAgentTokenIsSeparateEntry(t *testing.T) {
	gokeyring.MockInit()

	if err := SetAgentToken("tok-123"); err != nil {
		t.Fatalf("SetAgentToken() failed: %v", err)
	}
	if _, err := GetConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() error = %v, want ErrNotFound", err)
	}

	token, err := GetAgentToken()
	if err != nil || token != "tok-123" {
		t.Errorf("GetAgentToken() = %q, %v", token, err)
	}

	if err := DeleteAgentToken(); err != nil {
		t.Fatalf("DeleteAgentToken() failed: %v", err)
	}
	if _, err := GetAgentToken(); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetAgentToken() after delete error = %v, want ErrNotFound", err)
	}
}

func TestSetEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString(""); err == nil {
		t.Error("SetConnectionString(\"\") should return an error")
	}
	if err := SetAgentToken(""); err == nil {
		t.Error("SetAgentToken(\"\") should return an error")
	}
}

func TestDeleteMissing(t *testing.T) {
	gokeyring.MockInit()

	if err := DeleteConnectionString(); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteConnectionString() error = %v, want ErrNotFound", err)
	}
}

func TestIsAvailable(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("IsAvailable() = false with mock keyring")
	}
}
