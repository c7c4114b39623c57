package db

import "errors"

var (
	NamespaceOwnershipTrie   = []byte("ot")
	NamespaceGenesis         = []byte("gen")
	NamespaceAdmin           = []byte("adm")
	NamespaceRoot            = []byte("root")
	NamespaceRound           = []byte("rnd")
	NamespaceGameSlot        = []byte("slot")
	NamespaceToken           = []byte("tok")
	NamespaceOwnerBalance    = []byte("obal")
	NamespaceRoundMintCount  = []byte("rmc")
	NamespaceWhitelistCount  = []byte("wlc")
	NamespaceAssetBalance    = []byte("abal")
	NamespaceNonce           = []byte("nonce")
	NamespaceCollectionState = []byte("coll")
	NamespaceStakeholders    = []byte("stk")
	NamespaceHeldBalance     = []byte("hbal")
	Separator                = []byte("|")
)

var (
	ErrCommitAfterDiscard = errors.New("Commit after discard tx is not allowed")
	ErrDoubleCommit       = errors.New("Commit occurs two times")
	ErrInvalidIterator    = errors.New("Iterator is Invalid")
)

// PrependNamespace returns namespace|key in a freshly allocated slice.
func PrependNamespace(namespace []byte, key []byte) []byte {
	if namespace == nil {
		return key
	}
	out := make([]byte, 0, len(namespace)+len(Separator)+len(key))
	out = append(out, namespace...)
	out = append(out, Separator...)
	return append(out, key...)
}

func ConvNilToBytes(byteArray []byte) []byte {
	if byteArray == nil {
		return []byte{}
	}
	return byteArray
}

// NamespaceRange returns the [start, end) key range covering every key stored
// under namespace, suitable for DB.Iterator.
func NamespaceRange(namespace []byte) ([]byte, []byte) {
	start := PrependNamespace(namespace, nil)
	end := make([]byte, len(start))
	copy(end, start)
	end[len(end)-1]++
	return start, end
}

// StripNamespace removes the namespace| prefix from a full key returned by an
// Iterator.
func StripNamespace(namespace []byte, key []byte) []byte {
	n := len(namespace) + len(Separator)
	if len(key) < n {
		return key
	}
	return key[n:]
}
