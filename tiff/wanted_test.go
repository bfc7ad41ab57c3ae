package tiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWanted(t *testing.T) {
	tags := Tags{
		"Make":        {Kind: KindText, Text: "Canon"},
		"Orientation": {Kind: KindInt, Int: 6},
		"thumbnail":   {Kind: KindThumbnail, Thumbnail: &Thumbnail{}},
	}

	w := NewWanted("Orientation", "Flash")
	assert.True(t, w.Contains("Flash"))
	assert.False(t, w.Contains("Make"))

	assert.Equal(t, Tags{"Orientation": {Kind: KindInt, Int: 6}}, w.Filter(tags))
	assert.Len(t, tags, 3)

	w.Put("thumbnail")
	assert.Len(t, w.Filter(tags), 2)
}

func TestWanted_NilKeepsEverything(t *testing.T) {
	var w *Wanted
	tags := Tags{"Make": {Kind: KindText, Text: "Canon"}}

	assert.True(t, w.Contains("anything"))
	assert.Equal(t, tags, w.Filter(tags))
}
