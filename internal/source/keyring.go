package source

import (
	"errors"

	"github.com/zalando/go-keyring"
)

// DefaultKeyringService is the keychain service name credentials are filed
// under when none is configured.
const DefaultKeyringService = "skillvault"

// keyringSource reads credentials from the OS keychain (macOS Keychain,
// Linux Secret Service, Windows Credential Manager) via go-keyring.
type keyringSource struct {
	service string
}

// Keyring returns an OS-keychain source. Credentials are looked up as
// (service, key) keychain entries.
func Keyring(service string) Source {
	if service == "" {
		service = DefaultKeyringService
	}
	return &keyringSource{service: service}
}

func (k *keyringSource) Name() string {
	return "keyring:" + k.service
}

func (k *keyringSource) Lookup(key string) (string, bool, error) {
	value, err := keyring.Get(k.service, key)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", false, nil
		}
		// Locked or unavailable keychain is a source failure, not a miss;
		// the vault downgrades it to a warning and keeps resolving.
		return "", false, err
	}
	return value, true, nil
}
