package vnode

import (
	"crypto/md5"
	"encoding/binary"
	"fmt"
)

// ComponentFingerprint adapts ForgeLogic-nojs/nojs/typeid.GenerateTypeID's
// deterministic-hash technique: instead of fingerprinting a component type
// for router dispatch, it fingerprints a (type-path, instance-key) pair so
// SameVnode can tell two component VNodes at the same tree position apart
// when their instance key changes (e.g. a keyed {@for} loop swapping which
// child component occupies a slot), while treating repeated renders of the
// same instance as the same component for patch-in-place reuse.
func ComponentFingerprint(typePath, instanceKey string) uint32 {
	h := md5.Sum([]byte(fmt.Sprintf("%s#%s", typePath, instanceKey)))
	return binary.BigEndian.Uint32(h[:4])
}
