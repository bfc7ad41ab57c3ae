package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fedragon/jpeg-metadata/jpeg"
	"github.com/fedragon/jpeg-metadata/test"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func sampleJPEG() []byte {
	order := binary.LittleEndian
	tiff := test.NewBuilder(order).
		TIFFHeader(8).
		WithDirectory(0, 0,
			test.Short(order, 0x0112, 6),
			test.ASCII(order, 0x010f, "Canon"),
		).
		Bytes()

	return test.JPEG(
		test.Segment(jpeg.MarkerAPP1, test.ExifPayload(tiff)),
		test.Segment(jpeg.MarkerAPP13, test.Photoshop(test.IPTCRecord(0x78, "Hello"))),
		test.Segment(jpeg.MarkerAPP1, test.XMPPayload(`<x:xmpmeta><dc:title>Sunset</dc:title></x:xmpmeta>`)),
	)
}

func TestParseArgs(t *testing.T) {
	configPath := writeFile(t, "jpegmeta.toml", []byte(`
xmp = true
concurrency = 3
format = "text"
tags = ["Make"]
`))

	testCases := []struct {
		name  string
		args  []string
		want  config
		files []string
	}{
		{
			name:  "Defaults",
			args:  []string{"a.jpg"},
			want:  defaultConfig(),
			files: []string{"a.jpg"},
		},
		{
			name:  "ConfigFile",
			args:  []string{"-config", configPath, "a.jpg", "b.jpg"},
			want:  config{XMP: true, Concurrency: 3, Format: formatText, Tags: []string{"Make"}},
			files: []string{"a.jpg", "b.jpg"},
		},
		{
			name:  "FlagsOverrideConfigFile",
			args:  []string{"-config", configPath, "-format", "json", "-xmp=false", "-tags", "Flash, Model", "-verbose", "a.jpg"},
			want:  config{XMP: false, Concurrency: 3, Format: formatJSON, Tags: []string{"Flash", "Model"}, Verbose: true},
			files: []string{"a.jpg"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, files, err := parseArgs(tc.args, io.Discard)
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg)
			assert.Equal(t, tc.files, files)
		})
	}
}

func TestParseArgs_Errors(t *testing.T) {
	unknownKey := writeFile(t, "bad.toml", []byte(`colour = "blue"`))

	testCases := []struct {
		name  string
		args  []string
		usage bool
	}{
		{name: "NoFiles", args: []string{"-xmp"}, usage: true},
		{name: "UnknownFlag", args: []string{"-nope", "a.jpg"}, usage: true},
		{name: "BadFormat", args: []string{"-format", "xml", "a.jpg"}, usage: true},
		{name: "BadConcurrency", args: []string{"-concurrency", "0", "a.jpg"}, usage: true},
		{name: "MissingConfig", args: []string{"-config", "/does/not/exist.toml", "a.jpg"}, usage: false},
		{name: "UnknownConfigKey", args: []string{"-config", unknownKey, "a.jpg"}, usage: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := parseArgs(tc.args, io.Discard)
			require.Error(t, err)
			assert.Equal(t, tc.usage, errors.Is(err, errUsage))
		})
	}
}

func TestRun_JSON(t *testing.T) {
	good := writeFile(t, "good.jpg", sampleJPEG())
	bad := writeFile(t, "bad.jpg", []byte("GIF89a"))

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-xmp", good, bad}, &stdout, &stderr)
	assert.Equal(t, exitFailure, code)

	var results []struct {
		Path  string                     `json:"path"`
		Exif  map[string]json.RawMessage `json:"exif"`
		IPTC  map[string]json.RawMessage `json:"iptc"`
		XMP   *struct{ Name string }     `json:"xmp"`
		Error string                     `json:"error"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &results))
	require.Len(t, results, 2)

	assert.Equal(t, good, results[0].Path)
	assert.JSONEq(t, `6`, string(results[0].Exif["Orientation"]))
	assert.JSONEq(t, `"Hello"`, string(results[0].IPTC["caption"]))
	require.NotNil(t, results[0].XMP)
	assert.Equal(t, "x:xmpmeta", results[0].XMP.Name)
	assert.Empty(t, results[0].Error)

	assert.Equal(t, bad, results[1].Path)
	assert.Contains(t, results[1].Error, "not a valid jpeg")
	assert.Contains(t, stderr.String(), "cannot extract metadata")
}

func TestRun_Text(t *testing.T) {
	good := writeFile(t, "good.jpg", sampleJPEG())

	var stdout bytes.Buffer
	code := run(context.Background(), []string{"-format", "text", "-xmp", good}, &stdout, io.Discard)
	require.Equal(t, exitOK, code)

	out := stdout.String()
	assert.Contains(t, out, "== "+good+"\n")
	assert.Contains(t, out, "[exif]\n  Make: Canon\n  Orientation: 6\n")
	assert.Contains(t, out, "[iptc]\n  caption: Hello\n")
	assert.Contains(t, out, "dc:title: Sunset\n")
}

func TestRun_Usage(t *testing.T) {
	var stderr bytes.Buffer
	code := run(context.Background(), nil, io.Discard, &stderr)

	assert.Equal(t, exitUsage, code)
	assert.Contains(t, stderr.String(), "usage: jpegmeta")
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	code := run(ctx, []string{writeFile(t, "good.jpg", sampleJPEG())}, io.Discard, io.Discard)
	assert.Equal(t, exitFailure, code)
}
