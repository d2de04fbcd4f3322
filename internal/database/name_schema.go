package database

import (
	"crypto/sha1"
	"encoding/base32"
	"encoding/binary"
	"strings"
	"time"
)

// nameSchema derives a schema name from a test name. The part after
// "test_" is stable for the name, the tail changes every millisecond and
// sorts newer schemas first.
func nameSchema(testName string) string {
	sum := sha1.Sum([]byte(testName))
	stable := base32.HexEncoding.EncodeToString(sum[:])[:6]

	var stamp [8]byte
	binary.BigEndian.PutUint64(stamp[:], uint64(^time.Now().UnixMilli()))
	moving := base32.HexEncoding.EncodeToString(stamp[:])[8:13]

	return strings.ToLower("test_" + stable + "_" + moving)
}
