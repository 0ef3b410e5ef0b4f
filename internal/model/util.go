package model

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/google/uuid"
)

// CreateRevisionID returns a short unique id stamped on every collection
// write so the last writer of the storage key can be traced in the logs.
func CreateRevisionID() string {
	uuid, _ := uuid.NewRandom()
	return base58.Encode(uuid[:])
}
