package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// HashBlock returns the hex SHA-256 of the block's canonical JSON form:
// keys sorted, data embedded verbatim.
func HashBlock(index int, timestamp float64, data string, previousHash string) (string, error) {
	payload := map[string]any{
		"index":         index,
		"timestamp":     timestamp,
		"data":          json.RawMessage(data),
		"previous_hash": previousHash,
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// VerifyChain reports whether blocks, ordered by index, form an unbroken
// chain from a genesis block.
func VerifyChain(blocks []Block) bool {
	for i, b := range blocks {
		if b.Index != i {
			return false
		}
		want := GenesisPreviousHash
		if i > 0 {
			want = blocks[i-1].Hash
		}
		if b.PreviousHash != want {
			return false
		}
		hash, err := HashBlock(b.Index, b.Timestamp, b.Data, b.PreviousHash)
		if err != nil || hash != b.Hash {
			return false
		}
	}
	return true
}
