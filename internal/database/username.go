package database

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// generateUsernameBase creates a lowercase alphanumeric base from a user's name.
func generateUsernameBase(name string) string {
	var result []byte
	for _, c := range strings.ToLower(name) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			result = append(result, byte(c))
		}
	}
	if len(result) == 0 {
		return "user"
	}
	if len(result) > 12 {
		result = result[:12]
	}
	return string(result)
}

var rng = rand.New(rand.NewSource(time.Now().UnixNano()))

// GenerateUsername creates a username candidate from a name by appending
// random digits. Caller retries on the unique constraint.
func GenerateUsername(name string) string {
	base := generateUsernameBase(name)
	return fmt.Sprintf("%s%04d", base, rng.Intn(10000))
}
