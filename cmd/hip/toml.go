package main

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/Python3pkg/hip"
)

func tomlToHip(data []byte, _ string, indent int) ([]byte, error) {
	v, err := decodeTOML(data)
	if err != nil {
		return nil, err
	}
	return encodeHip(v, indent)
}

// decodeTOML decodes into plain maps and then restores document order
// from the metadata, which lists every key in the order it was defined.
func decodeTOML(data []byte) (hip.Value, error) {
	var doc map[string]any
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return hip.Value{}, fmt.Errorf("toml: %w", err)
	}

	order := make(map[string]int)
	for i, key := range md.Keys() {
		path := strings.Join(key, ".")
		if _, seen := order[path]; !seen {
			order[path] = i
		}
	}
	return fromTOML(doc, "", order)
}

// fromTOML converts one decoded TOML value. Tables in an array of tables
// share the path of the array, so their keys sort the same way.
func fromTOML(x any, path string, order map[string]int) (hip.Value, error) {
	switch t := x.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		rank := func(k string) int {
			if at, ok := order[joinPath(path, k)]; ok {
				return at
			}
			return math.MaxInt
		}
		sort.Slice(keys, func(i, j int) bool {
			ri, rj := rank(keys[i]), rank(keys[j])
			if ri != rj {
				return ri < rj
			}
			return keys[i] < keys[j]
		})

		entries := make([]hip.Entry, len(keys))
		for i, k := range keys {
			v, err := fromTOML(t[k], joinPath(path, k), order)
			if err != nil {
				return hip.Value{}, err
			}
			entries[i] = hip.Field(k, v)
		}
		return hip.Map(entries...), nil

	case []map[string]any:
		items := make([]hip.Value, len(t))
		for i, table := range t {
			v, err := fromTOML(table, path, order)
			if err != nil {
				return hip.Value{}, err
			}
			items[i] = v
		}
		return hip.Seq(items...), nil

	case []any:
		items := make([]hip.Value, len(t))
		for i, item := range t {
			v, err := fromTOML(item, path, order)
			if err != nil {
				return hip.Value{}, err
			}
			items[i] = v
		}
		return hip.Seq(items...), nil

	case time.Time:
		return hip.Str(t.Format(time.RFC3339Nano)), nil
	}

	v, err := hip.FromInterface(x)
	if err != nil {
		return hip.Value{}, fmt.Errorf("toml: %s: %w", path, err)
	}
	return v, nil
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
