package main

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/Python3pkg/hip"
	"gopkg.in/yaml.v3"
)

// ============================================================================
// Hip -> YAML
// ============================================================================

func hipToYAML(data []byte, name string, indent int) ([]byte, error) {
	v, err := hip.UnmarshalFile(data, name)
	if err != nil {
		return nil, err
	}
	return encodeYAML(v, indent)
}

// encodeYAML goes through a yaml.Node tree so mapping order is kept.
// YAML cannot indent with tabs, so indents below two become two.
func encodeYAML(v hip.Value, indent int) ([]byte, error) {
	if indent < 2 {
		indent = 2
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(yamlNode(v)); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("yaml: %w", err)
	}
	return buf.Bytes(), nil
}

func yamlNode(v hip.Value) *yaml.Node {
	switch v.Kind() {
	case hip.KindBool:
		b, _ := v.AsBool()
		return yamlScalar("!!bool", strconv.FormatBool(b))
	case hip.KindInt:
		i, _ := v.AsInt()
		return yamlScalar("!!int", strconv.FormatInt(i, 10))
	case hip.KindFloat:
		f, _ := v.AsFloat()
		return yamlScalar("!!float", yamlFloat(f))
	case hip.KindString:
		s, _ := v.AsStr()
		return yamlScalar("!!str", s)
	case hip.KindSequence:
		items, _ := v.AsSeq()
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range items {
			n.Content = append(n.Content, yamlNode(item))
		}
		return n
	case hip.KindMapping:
		entries, _ := v.AsMap()
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, e := range entries {
			n.Content = append(n.Content, yamlScalar("!!str", e.Key), yamlNode(e.Value))
		}
		return n
	}
	return yamlScalar("!!null", "null")
}

func yamlScalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func yamlFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return jsonFloat(f)
}

// ============================================================================
// YAML -> Hip
// ============================================================================

func yamlToHip(data []byte, _ string, indent int) ([]byte, error) {
	v, err := decodeYAML(data)
	if err != nil {
		return nil, err
	}
	return encodeHip(v, indent)
}

func decodeYAML(data []byte) (hip.Value, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return hip.Value{}, fmt.Errorf("yaml: %w", err)
	}
	return fromYAMLNode(&doc)
}

func fromYAMLNode(n *yaml.Node) (hip.Value, error) {
	switch n.Kind {
	case 0:
		return hip.Null(), nil
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return hip.Null(), nil
		}
		return fromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	case yaml.SequenceNode:
		items := make([]hip.Value, len(n.Content))
		for i, c := range n.Content {
			item, err := fromYAMLNode(c)
			if err != nil {
				return hip.Value{}, err
			}
			items[i] = item
		}
		return hip.Seq(items...), nil
	case yaml.MappingNode:
		entries := make([]hip.Entry, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return hip.Value{}, fmt.Errorf("yaml: line %d: mapping key must be a scalar", k.Line)
			}
			value, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return hip.Value{}, err
			}
			entries = append(entries, hip.Field(k.Value, value))
		}
		return hip.Map(entries...), nil
	case yaml.ScalarNode:
		return fromYAMLScalar(n)
	}
	return hip.Value{}, fmt.Errorf("yaml: line %d: unsupported node kind %d", n.Line, n.Kind)
}

func fromYAMLScalar(n *yaml.Node) (hip.Value, error) {
	switch n.ShortTag() {
	case "!!null":
		return hip.Null(), nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return hip.Value{}, fmt.Errorf("yaml: %w", err)
		}
		return hip.Bool(b), nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return hip.Int(i), nil
		}
		fallthrough
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return hip.Value{}, fmt.Errorf("yaml: %w", err)
		}
		return hip.Float(f), nil
	}
	return hip.Str(n.Value), nil
}
