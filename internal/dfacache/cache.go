// Package dfacache persists a compiled, minimized DFA to disk keyed by a
// content hash of its source rule file, so `cmd/lexgen compile` can skip
// recompiling a rule file whose text (and therefore whose DFA) hasn't
// changed. Binary encoding is done with github.com/dekarrin/rezi, the
// same library tunaq's server/dao/sqlite package uses to persist
// *game.State as a BLOB column (server/dao/sqlite/sqlite.go's
// convertToDB_GameStatePtr/convertFromDB_GameStatePtr): a type implements
// encoding.BinaryMarshaler/BinaryUnmarshaler and rezi.EncBinary/DecBinary
// do the framing.
package dfacache

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dekarrin/rezi"

	"github.com/dekarrin/lexgen/automaton"
	"github.com/dekarrin/lexgen/internal/util"
)

// HashSource returns the cache key for a rule file's raw source text.
func HashSource(src string) string {
	sum := sha256.Sum256([]byte(src))
	return hex.EncodeToString(sum[:])
}

// entry is the on-disk representation of a minimized DFA: enough to
// reconstruct an automaton.DFA[util.PositionSet] without rerunning
// subset construction or minimization. Position-set Values are not
// persisted; they are construction-time debugging aid only and a cache
// hit has no further use for them.
type entry struct {
	Start  string
	States []stateRecord
}

type stateRecord struct {
	Name      string
	Accepting bool
	Tag       int
	Edges     map[string]string
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (e entry) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	writeString(&buf, e.Start)
	writeUint32(&buf, uint32(len(e.States)))
	for _, st := range e.States {
		writeString(&buf, st.Name)
		writeBool(&buf, st.Accepting)
		writeInt32(&buf, int32(st.Tag))
		writeUint32(&buf, uint32(len(st.Edges)))
		for _, k := range util.OrderedKeys(st.Edges) {
			writeString(&buf, k)
			writeString(&buf, st.Edges[k])
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (e *entry) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)

	start, err := readString(r)
	if err != nil {
		return err
	}
	e.Start = start

	n, err := readUint32(r)
	if err != nil {
		return err
	}

	e.States = make([]stateRecord, n)
	for i := range e.States {
		name, err := readString(r)
		if err != nil {
			return err
		}
		accepting, err := readBool(r)
		if err != nil {
			return err
		}
		tag, err := readInt32(r)
		if err != nil {
			return err
		}
		numEdges, err := readUint32(r)
		if err != nil {
			return err
		}
		edges := make(map[string]string, numEdges)
		for j := uint32(0); j < numEdges; j++ {
			k, err := readString(r)
			if err != nil {
				return err
			}
			v, err := readString(r)
			if err != nil {
				return err
			}
			edges[k] = v
		}
		e.States[i] = stateRecord{Name: name, Accepting: accepting, Tag: int(tag), Edges: edges}
	}

	return nil
}

func toEntry(dfa *automaton.DFA[util.PositionSet]) entry {
	e := entry{Start: dfa.Start}
	for _, name := range dfa.States().Elements() {
		st, _ := dfa.State(name)
		e.States = append(e.States, stateRecord{
			Name:      name,
			Accepting: st.Accepting,
			Tag:       st.Tag,
			Edges:     dfa.Transitions(name),
		})
	}
	return e
}

func fromEntry(e entry) *automaton.DFA[util.PositionSet] {
	dfa := automaton.NewDFA[util.PositionSet]()
	for _, st := range e.States {
		dfa.AddState(st.Name, st.Accepting, st.Tag)
	}
	for _, st := range e.States {
		for edge, to := range st.Edges {
			dfa.AddTransition(st.Name, edge, to)
		}
	}
	dfa.Start = e.Start
	return dfa
}

// pathFor returns the cache file path for a given content hash inside dir.
func pathFor(dir, hash string) string {
	return filepath.Join(dir, hash+".dfacache")
}

// Store writes dfa's minimized form to dir, keyed by hash (see HashSource).
func Store(dir, hash string, dfa *automaton.DFA[util.PositionSet]) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	data := rezi.EncBinary(toEntry(dfa))
	return os.WriteFile(pathFor(dir, hash), data, 0o644)
}

// Load reads a previously stored DFA for hash from dir. ok is false if no
// cache entry exists.
func Load(dir, hash string) (dfa *automaton.DFA[util.PositionSet], ok bool, err error) {
	data, err := os.ReadFile(pathFor(dir, hash))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading cache entry: %w", err)
	}

	var e entry
	n, err := rezi.DecBinary(data, &e)
	if err != nil {
		return nil, false, fmt.Errorf("decoding cache entry: %w", err)
	}
	if n != len(data) {
		return nil, false, fmt.Errorf("cache entry decoded %d/%d bytes", n, len(data))
	}

	return fromEntry(e), true, nil
}

func writeString(buf *bytes.Buffer, s string) {
	writeUint32(buf, uint32(len(s)))
	buf.WriteString(s)
}

func readString(r *bytes.Reader) (string, error) {
	n, err := readUint32(r)
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := r.Read(b); err != nil {
		return "", err
	}
	return string(b), nil
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func readUint32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := r.Read(b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func writeInt32(buf *bytes.Buffer, v int32) {
	writeUint32(buf, uint32(v))
}

func readInt32(r *bytes.Reader) (int32, error) {
	v, err := readUint32(r)
	return int32(v), err
}

func writeBool(buf *bytes.Buffer, v bool) {
	if v {
		buf.WriteByte(1)
	} else {
		buf.WriteByte(0)
	}
}

func readBool(r *bytes.Reader) (bool, error) {
	b, err := r.ReadByte()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}
