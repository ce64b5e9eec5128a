package xlate

import (
	"github.com/minio/highwayhash"
)

// fingerprintKey is fixed so fingerprints compare across processes.
var fingerprintKey = []byte("0123456789ABCDEF0123456789ABCDEF")

// fingerprint hashes the artifacts of a job. Parts are separated by a
// zero byte, which none of them contains.
func fingerprint(code string, ast, ir *Tree) uint64 {
	h, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		panic("xlate: fingerprint key: " + err.Error())
	}
	parts := []string{code, dumpString(ast), dumpString(ir)}
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(p))
	}
	return h.Sum64()
}

func dumpString(t *Tree) string {
	if t == nil {
		return ""
	}
	return t.String()
}
