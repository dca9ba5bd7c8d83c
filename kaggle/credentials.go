package kaggle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Credentials holds the Kaggle API username and key used for basic auth.
type Credentials struct {
	Username string
	Key      string
}

// Empty reports whether either half of the credential pair is missing.
func (c Credentials) Empty() bool {
	return c.Username == "" || c.Key == ""
}

// credentialsFile mirrors the layout of ~/.kaggle/kaggle.json.
type credentialsFile struct {
	Username string `json:"username"`
	Key      string `json:"key"`
}

// LoadCredentials resolves credentials from the environment first
// (KAGGLE_USERNAME / KAGGLE_KEY), then from ~/.kaggle/kaggle.json.
// Returns ErrMissingCredentials if neither source yields a complete pair.
func LoadCredentials() (Credentials, error) {
	creds := Credentials{
		Username: os.Getenv("KAGGLE_USERNAME"),
		Key:      os.Getenv("KAGGLE_KEY"),
	}
	if !creds.Empty() {
		return creds, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return Credentials{}, ErrMissingCredentials
	}

	path := filepath.Join(home, ".kaggle", "kaggle.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return Credentials{}, ErrMissingCredentials
	}

	var file credentialsFile
	if err := json.Unmarshal(data, &file); err != nil {
		return Credentials{}, fmt.Errorf("kaggle: malformed credentials file: %w", err)
	}

	creds = Credentials{Username: file.Username, Key: file.Key}
	if creds.Empty() {
		return Credentials{}, ErrMissingCredentials
	}
	return creds, nil
}
