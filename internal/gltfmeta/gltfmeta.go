// Package gltfmeta peeks into a glTF JSON chunk for reporting. It reads the
// asset block and counts top-level collections; it does not validate the
// document. Keys it does not model are kept verbatim in Others.
package gltfmeta

import (
	"encoding/json"
	"fmt"
)

// Asset is the glTF "asset" object.
type Asset struct {
	Version    string          `json:"version"`
	MinVersion string          `json:"minVersion,omitempty"`
	Generator  string          `json:"generator,omitempty"`
	Copyright  string          `json:"copyright,omitempty"`
	Extensions json.RawMessage `json:"extensions,omitempty"`
	Extras     json.RawMessage `json:"extras,omitempty"`

	Others map[string]json.RawMessage `json:"-"`
}

var assetKeys = []string{"version", "minVersion", "generator", "copyright", "extensions", "extras"}

func (a *Asset) UnmarshalJSON(data []byte) error {
	type plain Asset
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	others, err := collectOthers(data, assetKeys)
	if err != nil {
		return err
	}
	*a = Asset(p)
	a.Others = others
	return nil
}

// Counts holds the number of entries in each top-level collection.
type Counts struct {
	Scenes      int `json:"scenes"`
	Nodes       int `json:"nodes"`
	Meshes      int `json:"meshes"`
	Buffers     int `json:"buffers"`
	BufferViews int `json:"bufferViews"`
	Accessors   int `json:"accessors"`
	Materials   int `json:"materials"`
	Images      int `json:"images"`
}

// Document is the summary produced by Peek.
type Document struct {
	Asset              Asset                      `json:"asset"`
	Counts             Counts                     `json:"counts"`
	ExtensionsUsed     []string                   `json:"extensionsUsed,omitempty"`
	ExtensionsRequired []string                   `json:"extensionsRequired,omitempty"`
	Others             map[string]json.RawMessage `json:"others,omitempty"`
}

type rawDocument struct {
	Asset              *Asset            `json:"asset"`
	Scenes             []json.RawMessage `json:"scenes"`
	Nodes              []json.RawMessage `json:"nodes"`
	Meshes             []json.RawMessage `json:"meshes"`
	Buffers            []json.RawMessage `json:"buffers"`
	BufferViews        []json.RawMessage `json:"bufferViews"`
	Accessors          []json.RawMessage `json:"accessors"`
	Materials          []json.RawMessage `json:"materials"`
	Images             []json.RawMessage `json:"images"`
	ExtensionsUsed     []string          `json:"extensionsUsed"`
	ExtensionsRequired []string          `json:"extensionsRequired"`
}

// Top-level keys that Peek reads or counts. Everything else lands in
// Document.Others.
var documentKeys = []string{
	"asset", "extensionsUsed", "extensionsRequired",
	"scenes", "nodes", "meshes", "buffers", "bufferViews", "accessors", "materials", "images",
}

// Peek reads the summary fields of a glTF JSON chunk.
func Peek(data []byte) (Document, error) {
	var raw rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return Document{}, fmt.Errorf("gltfmeta: parse json chunk: %w", err)
	}
	others, err := collectOthers(data, documentKeys)
	if err != nil {
		return Document{}, fmt.Errorf("gltfmeta: parse json chunk: %w", err)
	}
	doc := Document{
		Counts: Counts{
			Scenes:      len(raw.Scenes),
			Nodes:       len(raw.Nodes),
			Meshes:      len(raw.Meshes),
			Buffers:     len(raw.Buffers),
			BufferViews: len(raw.BufferViews),
			Accessors:   len(raw.Accessors),
			Materials:   len(raw.Materials),
			Images:      len(raw.Images),
		},
		ExtensionsUsed:     raw.ExtensionsUsed,
		ExtensionsRequired: raw.ExtensionsRequired,
		Others:             others,
	}
	if raw.Asset != nil {
		doc.Asset = *raw.Asset
	}
	return doc, nil
}

func collectOthers(data []byte, known []string) (map[string]json.RawMessage, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	for _, key := range known {
		delete(all, key)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}
