package session

import (
	"encoding/json"
	"fmt"

	"github.com/P3chys/scholarshub-api/internal/models"
)

// Encode serializes a user for the session store.
func Encode(u models.User) ([]byte, error) {
	blob, err := json.Marshal(u)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}
	return blob, nil
}

// Decode is the inverse of Encode. It rejects blobs without an id or with an
// unknown role.
func Decode(blob []byte) (models.User, error) {
	var u models.User
	if err := json.Unmarshal(blob, &u); err != nil {
		return models.User{}, fmt.Errorf("failed to decode user: %w", err)
	}
	if u.ID == "" || !u.Role.Valid() {
		return models.User{}, fmt.Errorf("failed to decode user: invalid identity")
	}
	return u, nil
}
