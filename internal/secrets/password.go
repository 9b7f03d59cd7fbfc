package secrets

import (
	"errors"
	"fmt"
	"strings"

	"applypilot-engine/internal/config"

	"github.com/zalando/go-keyring"
)

const (
	// "Service" groups the engine's secrets in the OS keychain.
	KeyringService = "applypilot"

	// OpenAIAccount is the keychain account holding the model API key.
	OpenAIAccount = "applypilot:openai"
)

func GetOpenAIKey() (string, error) {
	key, err := keyring.Get(KeyringService, OpenAIAccount)
	if err != nil || strings.TrimSpace(key) == "" {
		return "", errors.New("OpenAI API key not found (set it via POST /api/secrets/openai)")
	}
	return key, nil
}

func SetOpenAIKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(KeyringService, OpenAIAccount, key)
}

func DeleteOpenAIKey() error {
	return keyring.Delete(KeyringService, OpenAIAccount)
}

func GetIMAPPassword(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) != "" {
		pw, err := keyring.Get(KeyringService, keyringAccount)
		if err == nil && strings.TrimSpace(pw) != "" {
			return pw, nil
		}
	}

	return "", errors.New("IMAP password not found (set it in keychain)")
}

func SetIMAPPassword(keyringAccount string, password string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(password) == "" {
		return errors.New("password is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, password)
}

func DeleteIMAPPassword(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}

func IMAPKeyringAccount(cfg config.Config) string {
	return fmt.Sprintf(
		"applypilot:imap:%s@%s",
		cfg.Email.Username,
		cfg.Email.IMAPHost,
	)
}
