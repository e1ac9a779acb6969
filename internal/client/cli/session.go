package cli

import (
	"errors"
	"io/fs"
	"os"

	"github.com/dmitrijs2005/paperkeeper/internal/filex"
	"github.com/goccy/go-json"
)

type session struct {
	UserName     string `json:"username"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// loadSession returns an empty session when the file does not exist.
func loadSession(path string) (session, error) {
	var s session
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, err
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return session{}, err
	}
	return s, nil
}

func saveSession(path string, s session) error {
	if path == "" {
		return nil
	}
	if s.AccessToken == "" {
		err := os.Remove(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return filex.WriteFileAtomic(path, data, 0o600)
}
