// Package xmp extracts the XMP packet of a JPEG and hands it to an XML parser.
package xmp

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fedragon/jpeg-metadata/bytereader"
	"github.com/fedragon/jpeg-metadata/jpeg"
)

const (
	packetStart = "<x:xmpmeta"
	packetEnd   = "xmpmeta>"
	rootName    = "x:xmpmeta"
)

var (
	// ErrNoPacket means the window found by the scanner holds no <x:xmpmeta> element.
	ErrNoPacket = errors.New("no xmpmeta element")
	// ErrParserUnavailable means XMP was requested without an XML parser to decode it.
	ErrParserUnavailable = errors.New("xml parsing not supported without a parser")
)

// Namespace is an xmlns declaration.
type Namespace struct {
	Prefix string
	URI    string
}

// Namespaces are declared on the root element of every packet, since many writers
// use these prefixes without declaring them.
var Namespaces = []Namespace{
	{Prefix: "Iptc4xmpCore", URI: "http://iptc.org/std/Iptc4xmpCore/1.0/xmlns/"},
	{Prefix: "xsi", URI: "http://www.w3.org/2001/XMLSchema-instance"},
	{Prefix: "tiff", URI: "http://ns.adobe.com/tiff/1.0/"},
	{Prefix: "plus", URI: "http://schemas.android.com/apk/lib/com.google.android.gms.plus"},
	{Prefix: "ext", URI: "http://www.gettyimages.com/xsltExtension/1.0"},
	{Prefix: "exif", URI: "http://ns.adobe.com/exif/1.0/"},
	{Prefix: "stEvt", URI: "http://ns.adobe.com/xap/1.0/sType/ResourceEvent#"},
	{Prefix: "stRef", URI: "http://ns.adobe.com/xap/1.0/sType/ResourceRef#"},
	{Prefix: "crs", URI: "http://ns.adobe.com/camera-raw-settings/1.0/"},
	{Prefix: "xapGImg", URI: "http://ns.adobe.com/xap/1.0/g/img/"},
	{Prefix: "Iptc4xmpExt", URI: "http://iptc.org/std/Iptc4xmpExt/2008-02-29/"},
}

// Extract decodes seg as Latin-1, cuts out the <x:xmpmeta> element, declares the
// missing namespaces and parses the result.
func Extract(r *bytereader.Reader, seg jpeg.Segment, parser Parser) (*Node, error) {
	if parser == nil {
		return nil, ErrParserUnavailable
	}

	text, err := r.Latin1(seg.Start, seg.Length)
	if err != nil {
		return nil, fmt.Errorf("reading xmp window: %w", err)
	}

	packet, err := Packet(text)
	if err != nil {
		return nil, err
	}

	return parser.Parse(RepairNamespaces(packet))
}

// Packet returns the text from "<x:xmpmeta" up to the end of the first "xmpmeta>" that follows it.
func Packet(text string) (string, error) {
	start := strings.Index(text, packetStart)
	if start < 0 {
		return "", ErrNoPacket
	}

	end := strings.Index(text[start+len(packetStart):], packetEnd)
	if end < 0 {
		return "", fmt.Errorf("%w: %s is not closed", ErrNoPacket, rootName)
	}
	end += start + len(packetStart) + len(packetEnd)

	return text[start:end], nil
}

// RepairNamespaces adds to the x:xmpmeta start tag the declarations of Namespaces it lacks.
func RepairNamespaces(packet string) string {
	at := strings.Index(packet, rootName)
	if at < 0 {
		return packet
	}
	at += len(rootName)

	tag := packet
	if closing := strings.IndexByte(packet[at:], '>'); closing >= 0 {
		tag = packet[:at+closing]
	}

	var b strings.Builder
	b.WriteString(packet[:at])
	for _, ns := range Namespaces {
		if strings.Contains(tag, "xmlns:"+ns.Prefix+"=") {
			continue
		}
		fmt.Fprintf(&b, ` xmlns:%s="%s"`, ns.Prefix, ns.URI)
	}
	b.WriteString(packet[at:])

	return b.String()
}
