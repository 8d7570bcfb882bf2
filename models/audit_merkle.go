package models

import (
	"crypto/sha256"
	"encoding/hex"
)

// MerkleRoot commits to an ordered list of event hashes with a binary Merkle
// tree. Leaves are SHA256 of the hex digest string, internal nodes are SHA256
// of the concatenated child digests. A lone node at the end of a level is
// carried up to the next level unchanged, so appending a copy of the last
// hash always changes the root; the root over a single hash is its leaf
// digest. The same rule runs during verification, which makes the root
// bit-exact reproducible. Returns "" for an empty list.
func MerkleRoot(eventHashes []string) string {
	if len(eventHashes) == 0 {
		return ""
	}

	level := make([][]byte, len(eventHashes))
	for i, eventHash := range eventHashes {
		leaf := sha256.Sum256([]byte(eventHash))
		level[i] = leaf[:]
	}

	for len(level) > 1 {
		next := make([][]byte, 0, (len(level)+1)/2)
		for i := 0; i+1 < len(level); i += 2 {
			h := sha256.New()
			h.Write(level[i])
			h.Write(level[i+1])
			next = append(next, h.Sum(nil))
		}
		if len(level)%2 == 1 {
			next = append(next, level[len(level)-1])
		}
		level = next
	}

	return hex.EncodeToString(level[0])
}
