package chaincfg

import (
	"bytes"
	"sort"

	"github.com/bsv-blockchain/go-bt/v2/chainhash"
	"github.com/mr-tron/base58"
	"github.com/stycoin/stynode/errors"
)

const checksumLen = 4

// EncodeAddress prefixes payload with the network's prefix for kind, appends a
// 4 byte sha256d checksum and base58 encodes the result.
func (p *Params) EncodeAddress(kind AddressKind, payload []byte) (string, error) {
	prefix, ok := p.Base58Prefixes[kind]
	if !ok {
		return "", errors.NewInvalidArgumentError("[EncodeAddress][%s] no prefix for %s", p.Name, kind)
	}

	b := make([]byte, 0, len(prefix)+len(payload)+checksumLen)
	b = append(b, prefix...)
	b = append(b, payload...)
	b = append(b, checksum(b)...)

	return base58.Encode(b), nil
}

// DecodeAddress reverses EncodeAddress. The string must carry a valid checksum
// and start with one of this network's prefixes; anything encoded for another
// network is rejected.
func (p *Params) DecodeAddress(s string) (AddressKind, []byte, error) {
	decoded, err := base58.Decode(s)
	if err != nil {
		return 0, nil, errors.NewInvalidArgumentError("[DecodeAddress][%s] invalid base58", p.Name, err)
	}

	if len(decoded) < checksumLen+1 {
		return 0, nil, errors.NewInvalidArgumentError("[DecodeAddress][%s] address too short", p.Name)
	}

	body, sum := decoded[:len(decoded)-checksumLen], decoded[len(decoded)-checksumLen:]
	if !bytes.Equal(checksum(body), sum) {
		return 0, nil, errors.NewInvalidArgumentError("[DecodeAddress][%s] checksum mismatch", p.Name)
	}

	for _, kind := range p.kindsByPrefixLength() {
		prefix := p.Base58Prefixes[kind]
		if bytes.HasPrefix(body, prefix) {
			return kind, append([]byte(nil), body[len(prefix):]...), nil
		}
	}

	return 0, nil, errors.NewInvalidArgumentError("[DecodeAddress][%s] unknown prefix %x", p.Name, body[0])
}

// kindsByPrefixLength orders kinds longest prefix first so a 4 byte extended
// key prefix is never mistaken for a 1 byte one.
func (p *Params) kindsByPrefixLength() []AddressKind {
	kinds := append([]AddressKind(nil), AddressKinds...)

	sort.SliceStable(kinds, func(i, j int) bool {
		return len(p.Base58Prefixes[kinds[i]]) > len(p.Base58Prefixes[kinds[j]])
	})

	return kinds
}

func checksum(b []byte) []byte {
	return chainhash.DoubleHashB(b)[:checksumLen]
}

// prefixIndex records the networks and address prefixes registered with a
// Registry and rejects any that would make addresses ambiguous.
type prefixIndex struct {
	nets              map[uint32]string
	owners            []prefixOwner
	pubKeyHashAddrIDs map[byte]struct{}
	scriptHashAddrIDs map[byte]struct{}
	hdPrivToPubKeyIDs map[[4]byte][]byte
}

type prefixOwner struct {
	network string
	kind    AddressKind
	prefix  []byte
}

// collidesWith reports whether a decoder could confuse the two prefixes.
func (o prefixOwner) collidesWith(other prefixOwner) bool {
	return bytes.HasPrefix(o.prefix, other.prefix) || bytes.HasPrefix(other.prefix, o.prefix)
}

func newPrefixIndex() *prefixIndex {
	return &prefixIndex{
		nets:              make(map[uint32]string),
		pubKeyHashAddrIDs: make(map[byte]struct{}),
		scriptHashAddrIDs: make(map[byte]struct{}),
		hdPrivToPubKeyIDs: make(map[[4]byte][]byte),
	}
}

// register adds params to the index. It fails when the magic is already in
// use or when any prefix equals, or is a prefix of, a prefix already
// registered by any network, including params itself.
func (x *prefixIndex) register(params *Params) error {
	if owner, ok := x.nets[uint32(params.Net)]; ok {
		return errors.NewConfigurationError("[Register] %s uses the magic of %s", params.Name, owner, ErrDuplicateNet)
	}

	added := make([]prefixOwner, 0, len(AddressKinds))

	for _, kind := range AddressKinds {
		owner := prefixOwner{network: params.Name, kind: kind, prefix: params.Base58Prefixes[kind]}

		for _, registered := range [][]prefixOwner{x.owners, added} {
			for _, other := range registered {
				if owner.collidesWith(other) {
					return errors.NewConfigurationError("[Register] %s prefix %x for %s collides with %s prefix %x for %s",
						params.Name, owner.prefix, kind, other.network, other.prefix, other.kind, ErrPrefixCollision)
				}
			}
		}

		added = append(added, owner)
	}

	x.nets[uint32(params.Net)] = params.Name
	x.owners = append(x.owners, added...)

	if p := params.Base58Prefixes[PubKeyAddress]; len(p) == 1 {
		x.pubKeyHashAddrIDs[p[0]] = struct{}{}
	}

	if p := params.Base58Prefixes[ScriptAddress]; len(p) == 1 {
		x.scriptHashAddrIDs[p[0]] = struct{}{}
	}

	var priv [4]byte
	if p := params.Base58Prefixes[ExtSecretKey]; len(p) == len(priv) {
		copy(priv[:], p)
		x.hdPrivToPubKeyIDs[priv] = append([]byte(nil), params.Base58Prefixes[ExtPublicKey]...)
	}

	return nil
}

func (x *prefixIndex) isPubKeyHashAddrID(id byte) bool {
	_, ok := x.pubKeyHashAddrIDs[id]
	return ok
}

func (x *prefixIndex) isScriptHashAddrID(id byte) bool {
	_, ok := x.scriptHashAddrIDs[id]
	return ok
}

func (x *prefixIndex) hdPrivateKeyToPublicKeyID(id []byte) ([]byte, error) {
	if len(id) != 4 {
		return nil, ErrUnknownHDKeyID
	}

	var key [4]byte

	copy(key[:], id)

	pubBytes, ok := x.hdPrivToPubKeyIDs[key]
	if !ok {
		return nil, ErrUnknownHDKeyID
	}

	return append([]byte(nil), pubBytes...), nil
}
