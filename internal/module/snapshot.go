package module

import (
	"os"
	"path/filepath"

	"github.com/dekarrin/rezi"

	"github.com/ThornLang/thorn/internal/config"
)

// snapshot is the on-disk record of a previously parsed module: enough to
// tell whether the source changed since the last load, plus the export
// name set so a future cache hit (not yet exploited by parseWithCache,
// which still re-parses, see its doc comment) could skip straight to
// binding without re-running the interpreter on an already-side-effect-
// free module. Grounded on server/dao/sqlite.go's convertToDB_GameStatePtr/
// convertFromDB_GameStatePtr pair (rezi.EncBinary/DecBinary round-tripping
// a single struct to/from a byte blob written to disk).
type snapshot struct {
	Hash     string
	OptLevel int
	Exported []string
}

// MarshalBinary implements encoding.BinaryMarshaler using the same
// length-prefixed field encoding the teacher hand-rolls in
// internal/tunascript/binary.go (encBinaryString/encBinaryInt), since
// rezi.EncBinary dispatches to this method when present.
func (s *snapshot) MarshalBinary() ([]byte, error) {
	buf := append([]byte{}, encBinaryString(s.Hash)...)
	buf = append(buf, encBinaryInt(s.OptLevel)...)
	buf = append(buf, encBinaryInt(len(s.Exported))...)
	for _, name := range s.Exported {
		buf = append(buf, encBinaryString(name)...)
	}
	return buf, nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler, the decode side
// of MarshalBinary.
func (s *snapshot) UnmarshalBinary(data []byte) error {
	hash, n, err := decBinaryString(data)
	if err != nil {
		return err
	}
	data = data[n:]

	level, n, err := decBinaryInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	count, n, err := decBinaryInt(data)
	if err != nil {
		return err
	}
	data = data[n:]

	names := make([]string, 0, count)
	for i := 0; i < count; i++ {
		name, n, err := decBinaryString(data)
		if err != nil {
			return err
		}
		data = data[n:]
		names = append(names, name)
	}

	s.Hash = hash
	s.OptLevel = level
	s.Exported = names
	return nil
}

func (c *Cache) snapshotPath(resolved string) string {
	return filepath.Join(c.cacheDir, snapshotFileName(resolved))
}

func snapshotFileName(resolved string) string {
	return contentHash(resolved) + ".thornc"
}

// readSnapshot reports whether a snapshot exists on disk for resolved
// whose recorded hash and optimization level match the current ones.
func (c *Cache) readSnapshot(resolved, hash string, level config.OptLevel) (*snapshot, bool) {
	data, err := os.ReadFile(c.snapshotPath(resolved))
	if err != nil {
		return nil, false
	}
	snap := &snapshot{}
	if _, err := rezi.DecBinary(data, snap); err != nil {
		return nil, false
	}
	if snap.Hash != hash || snap.OptLevel != int(level) {
		return nil, false
	}
	return snap, true
}

// writeSnapshot persists the current snapshot, best-effort: a write
// failure (read-only cache dir, full disk) degrades to "always reparse",
// never to a hard error, since the snapshot cache is a pure speed-up.
func (c *Cache) writeSnapshot(resolved, hash string, level config.OptLevel, exported []string) {
	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		return
	}
	snap := &snapshot{Hash: hash, OptLevel: int(level), Exported: exported}
	data := rezi.EncBinary(snap)
	_ = os.WriteFile(c.snapshotPath(resolved), data, 0o644)
}
