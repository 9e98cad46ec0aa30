// Package luacodec is the script config backend for manifests: it
// converts between the typed model and the Lua-syntax text form kept on
// disk. Parsing executes the manifest as a real script inside the
// no-capability sandbox, then leniently coerces whatever it assigned
// into the schema; serialization emits deterministic assignment
// statements that parse back to an identical value.
package luacodec

import (
	"time"

	"github.com/pkg/errors"
	lua "github.com/yuin/gopher-lua"

	"krait/pkg/manifest"
	"krait/pkg/script"
)

// RootTable is the global namespace manifests populate; the manifest
// itself lives at krait.manifest.
const RootTable = "krait"

// ParseError reports a manifest script that failed to execute or whose
// populated table could not be coerced into the schema. It is the only
// failure mode of parsing; a bad manifest never takes the process down.
type ParseError struct {
	Detail string
}

func (e *ParseError) Error() string {
	return "failed to parse manifest: " + e.Detail
}

// Codec implements manifest.Codec on the Lua sandbox.
type Codec struct {
	// ExecTimeout caps script execution per parse call. Zero applies
	// script.DefaultExecTimeout.
	ExecTimeout time.Duration
}

var _ manifest.Codec = (*Codec)(nil)

// New returns a codec with default limits.
func New() *Codec {
	return &Codec{}
}

// Parse executes the manifest script and decodes the populated
// krait.manifest table. The script sees only the seeded root table; no
// filesystem, network or process capability is reachable from it.
func Parse(text string) (*manifest.Manifest, error) {
	return New().Parse(text)
}

func (c *Codec) Parse(text string) (*manifest.Manifest, error) {
	s := script.NewSandbox(c.ExecTimeout)
	defer s.Close()

	root := s.NewTable()
	manifestTbl := s.NewTable()
	manifestTbl.RawSetString("packages", s.NewTable())
	root.RawSetString("manifest", manifestTbl)
	s.SetGlobal(RootTable, root)

	if err := s.Run(text); err != nil {
		if errors.Is(err, script.ErrExecLimit) {
			return nil, &ParseError{Detail: "script execution exceeded limit"}
		}
		return nil, &ParseError{Detail: err.Error()}
	}

	// The script may have replaced krait.manifest wholesale instead of
	// filling in the seeded table, so re-read it after execution.
	populated, ok := root.RawGetString("manifest").(*lua.LTable)
	if !ok {
		return nil, &ParseError{Detail: "krait.manifest is not a table"}
	}
	return decodeManifest(populated)
}

func decodeManifest(tbl *lua.LTable) (*manifest.Manifest, error) {
	m := manifest.New()
	var err error

	if m.Repo, err = stringField(tbl, "repo"); err != nil {
		return nil, err
	}
	if m.LatestCommit, err = stringField(tbl, "latest_commit"); err != nil {
		return nil, err
	}
	if m.LastUpdate, err = intField(tbl, "last_update"); err != nil {
		return nil, err
	}

	packages := tbl.RawGetString("packages")
	switch {
	case packages == lua.LNil, script.Unrepresentable(packages):
	default:
		pkgTbl, ok := packages.(*lua.LTable)
		if !ok {
			return nil, &ParseError{Detail: "packages is not a table"}
		}
		if err := decodePackages(m, pkgTbl); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func decodePackages(m *manifest.Manifest, tbl *lua.LTable) error {
	return forEach(tbl, func(name string, v lua.LValue) error {
		if script.Unrepresentable(v) {
			return nil
		}
		versions, ok := v.(*lua.LTable)
		if !ok {
			return &ParseError{Detail: "package " + name + " is not a table of versions"}
		}
		return forEach(versions, func(version string, lv lua.LValue) error {
			if script.Unrepresentable(lv) {
				return nil
			}
			list, ok := lv.(*lua.LTable)
			if !ok {
				return &ParseError{Detail: "entries of " + name + "@" + version + " are not a list"}
			}
			entries, err := decodeEntries(name, version, list)
			if err != nil {
				return err
			}
			for _, entry := range entries {
				m.Merge(name, version, entry)
			}
			return nil
		})
	})
}

func decodeEntries(name, version string, list *lua.LTable) ([]manifest.PackageEntry, error) {
	entries := make([]manifest.PackageEntry, 0, list.Len())
	for i := 1; i <= list.Len(); i++ {
		v := list.RawGetInt(i)
		if script.Unrepresentable(v) {
			continue
		}
		tbl, ok := v.(*lua.LTable)
		if !ok {
			return nil, &ParseError{Detail: "entry of " + name + "@" + version + " is not a table"}
		}

		entry := manifest.PackageEntry{Contents: []manifest.ContentFile{}}
		var err error
		if entry.Path, err = stringField(tbl, "path"); err != nil {
			return nil, err
		}
		if entry.Commit, err = stringField(tbl, "commit"); err != nil {
			return nil, err
		}

		contents := tbl.RawGetString("contents")
		switch {
		case contents == lua.LNil, script.Unrepresentable(contents):
		default:
			listTbl, ok := contents.(*lua.LTable)
			if !ok {
				return nil, &ParseError{Detail: "contents of " + name + "@" + version + " is not a list"}
			}
			if entry.Contents, err = decodeContents(listTbl); err != nil {
				return nil, err
			}
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeContents(list *lua.LTable) ([]manifest.ContentFile, error) {
	files := make([]manifest.ContentFile, 0, list.Len())
	for i := 1; i <= list.Len(); i++ {
		v := list.RawGetInt(i)
		if script.Unrepresentable(v) {
			continue
		}
		tbl, ok := v.(*lua.LTable)
		if !ok {
			return nil, &ParseError{Detail: "content file is not a table"}
		}

		var file manifest.ContentFile
		var err error
		if file.Name, err = stringField(tbl, "name"); err != nil {
			return nil, err
		}
		if file.Path, err = stringField(tbl, "path"); err != nil {
			return nil, err
		}
		if file.Digest, err = stringField(tbl, "digest"); err != nil {
			return nil, err
		}
		if file.URL, err = stringField(tbl, "url"); err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

// forEach iterates string-coercible keys of tbl, propagating the first
// error. Keys that cannot be coerced to strings are skipped.
func forEach(tbl *lua.LTable, fn func(key string, v lua.LValue) error) error {
	var err error
	tbl.ForEach(func(k, v lua.LValue) {
		if err != nil {
			return
		}
		key, ok := script.AsString(k)
		if !ok {
			return
		}
		err = fn(key, v)
	})
	return err
}

// stringField reads a string-typed schema field. Absent values and
// values with no schema counterpart yield the empty string; a
// representable but wrong type is a ParseError.
func stringField(tbl *lua.LTable, key string) (string, error) {
	v := tbl.RawGetString(key)
	if v == lua.LNil || script.Unrepresentable(v) {
		return "", nil
	}
	s, ok := script.AsString(v)
	if !ok {
		return "", &ParseError{Detail: key + " is not a string"}
	}
	return s, nil
}

func intField(tbl *lua.LTable, key string) (int64, error) {
	v := tbl.RawGetString(key)
	if v == lua.LNil || script.Unrepresentable(v) {
		return 0, nil
	}
	n, ok := script.AsInt(v)
	if !ok {
		return 0, &ParseError{Detail: key + " is not an integer"}
	}
	return n, nil
}
