package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/fedragon/jpeg-metadata/metadata"
	"github.com/fedragon/jpeg-metadata/xmp"
)

type result struct {
	Path string `json:"path"`
	*metadata.Record
	Problems []string `json:"problems,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func writeJSON(w io.Writer, results []result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

func writeText(w io.Writer, results []result) error {
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "== %s\n", r.Path)
		if r.Error != "" {
			fmt.Fprintf(&b, "error: %s\n", r.Error)
			continue
		}

		writeExif(&b, r.Record)
		writeIPTC(&b, r.Record)
		if r.XMP != nil {
			b.WriteString("[xmp]\n")
			writeXMP(&b, r.XMP, 1)
		}
		for _, p := range r.Problems {
			fmt.Fprintf(&b, "problem: %s\n", p)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeExif(b *strings.Builder, record *metadata.Record) {
	if len(record.Exif) == 0 {
		return
	}
	b.WriteString("[exif]\n")
	for _, name := range sortedKeys(record.Exif) {
		if name == "thumbnail" {
			continue
		}
		fmt.Fprintf(b, "  %s: %s\n", name, record.Exif[name])
	}
	if thumb := record.Exif.Thumbnail(); thumb != nil && thumb.Format != "" {
		fmt.Fprintf(b, "  thumbnail: %s", thumb.Format)
		if len(thumb.Data) > 0 {
			fmt.Fprintf(b, ", %s", humanize.Bytes(uint64(len(thumb.Data))))
		}
		b.WriteString("\n")
	}
}

func writeIPTC(b *strings.Builder, record *metadata.Record) {
	if len(record.IPTC) == 0 {
		return
	}
	b.WriteString("[iptc]\n")
	for _, name := range sortedKeys(record.IPTC) {
		fmt.Fprintf(b, "  %s: %s\n", name, record.IPTC[name])
	}
}

func writeXMP(b *strings.Builder, n *xmp.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(b, "%s%s", indent, n.Name)
	if n.Text != "" {
		fmt.Fprintf(b, ": %s", n.Text)
	}
	b.WriteString("\n")
	for _, a := range n.Attrs {
		if strings.HasPrefix(a.Name, "xmlns:") {
			continue
		}
		fmt.Fprintf(b, "%s  @%s: %s\n", indent, a.Name, a.Value)
	}
	for _, c := range n.Children {
		writeXMP(b, c, depth+1)
	}
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
