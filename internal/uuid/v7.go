package uuid

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// Empty sorts before every generated id.
const Empty = "00000000-0000-0000-0000-000000000000"

var gen = uuid.NewGen()

// V7 generates a time ordered UUID
func V7() string {
	return uuid.Must(gen.NewV7()).String()
}

func V7AtTime(t time.Time) string {
	return uuid.Must(gen.NewV7AtTime(t)).String()
}

// Valid reports whether s is a UUID in canonical form.
func Valid(s string) bool {
	id, err := uuid.FromString(s)
	return err == nil && id.String() == s
}

// Named returns the same SHA-1 based UUID for the same name.
func Named(name string) string {
	return uuid.NewV5(uuid.NamespaceURL, name).String()
}
