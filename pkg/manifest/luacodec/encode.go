package luacodec

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fvbommel/sortorder"

	"krait/pkg/manifest"
)

const header = `-- Code generated by krait; DO NOT EDIT.
-- Hand edits are lost the next time "krait generate" runs.
`

// Serialize renders m as the Lua assignment script kept on disk.
// Package names sort lexically and versions in natural order, so the
// same manifest always serializes to the same bytes regardless of map
// iteration order. Entry and content lists keep their stored order.
func Serialize(m *manifest.Manifest) (string, error) {
	return New().Serialize(m)
}

func (c *Codec) Serialize(m *manifest.Manifest) (string, error) {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\nlocal m = " + RootTable + ".manifest\n\n")

	fmt.Fprintf(&b, "m.repo = %s\n", quote(m.Repo))
	fmt.Fprintf(&b, "m.latest_commit = %s\n", quote(m.LatestCommit))
	fmt.Fprintf(&b, "m.last_update = %s\n", strconv.FormatInt(m.LastUpdate, 10))

	names := make([]string, 0, len(m.Packages))
	for name := range m.Packages {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		versions := make([]string, 0, len(m.Packages[name]))
		for version := range m.Packages[name] {
			versions = append(versions, version)
		}
		sort.Sort(sortorder.Natural(versions))

		fmt.Fprintf(&b, "\nm.packages[%s] = {}\n", quote(name))
		for _, version := range versions {
			fmt.Fprintf(&b, "m.packages[%s][%s] = {\n", quote(name), quote(version))
			for _, entry := range m.Packages[name][version] {
				writeEntry(&b, entry)
			}
			b.WriteString("}\n")
		}
	}

	return b.String(), nil
}

func writeEntry(b *strings.Builder, entry manifest.PackageEntry) {
	b.WriteString("\t{\n")
	fmt.Fprintf(b, "\t\tpath = %s,\n", quote(entry.Path))
	fmt.Fprintf(b, "\t\tcommit = %s,\n", quote(entry.Commit))
	b.WriteString("\t\tcontents = {\n")
	for _, file := range entry.Contents {
		b.WriteString("\t\t\t{\n")
		fmt.Fprintf(b, "\t\t\t\tname = %s,\n", quote(file.Name))
		fmt.Fprintf(b, "\t\t\t\tpath = %s,\n", quote(file.Path))
		fmt.Fprintf(b, "\t\t\t\tdigest = %s,\n", quote(file.Digest))
		fmt.Fprintf(b, "\t\t\t\turl = %s,\n", quote(file.URL))
		b.WriteString("\t\t\t},\n")
	}
	b.WriteString("\t\t},\n")
	b.WriteString("\t},\n")
}

// quote renders s as a Lua string literal. Quotes, backslashes and
// control characters are escaped; control bytes use three-digit decimal
// escapes so a following digit in the text cannot extend them.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, `\%03d`, c)
			} else {
				b.WriteByte(c)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}
