// Package hasher computes xxHash64 content hashes. They identify encoded
// blobs in the session store and let validate check output files against
// the batch report.
package hasher

import (
	"encoding/binary"
	"encoding/hex"
	"io"

	"github.com/cespare/xxhash/v2"
)

// HexLen is the length of a full hash in hex characters.
const HexLen = 16

// ContentHash returns the hex xxHash64 of data, truncated to hexLen
// characters when 0 < hexLen < HexLen.
func ContentHash(data []byte, hexLen int) string {
	return format(xxhash.Sum64(data), hexLen)
}

// ContentHashReader computes the same hash as ContentHash, streaming r.
func ContentHashReader(r io.Reader, hexLen int) (string, error) {
	h := xxhash.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return format(h.Sum64(), hexLen), nil
}

func format(sum uint64, hexLen int) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], sum)
	full := hex.EncodeToString(b[:])
	if hexLen > 0 && hexLen < len(full) {
		return full[:hexLen]
	}
	return full
}
