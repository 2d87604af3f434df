// Package yamljson converts between YAML and rawjson values, keeping mapping
// order.
//
// Only the JSON-compatible subset of YAML is accepted: mapping keys must be
// strings and merge keys are not supported. Timestamps and binary scalars
// decode as strings.
package yamljson

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/openbindings/jsonmodel-go/rawjson"
)

const (
	nullTag      = "!!null"
	boolTag      = "!!bool"
	strTag       = "!!str"
	intTag       = "!!int"
	floatTag     = "!!float"
	timestampTag = "!!timestamp"
	binaryTag    = "!!binary"
	mergeTag     = "!!merge"
)

// Parse decodes the first YAML document in data. Aliases are expanded;
// an anchor that contains itself, or expansion that grows far beyond the
// source document, is an error.
func Parse(data []byte) (any, error) {
	var n yaml.Node
	if err := yaml.Unmarshal(data, &n); err != nil {
		return nil, err
	}
	if n.Kind == 0 {
		return nil, fmt.Errorf("yamljson: empty document")
	}
	d := &decoder{expanding: map[*yaml.Node]bool{}}
	return d.node(&n)
}

type decoder struct {
	// expanding holds the anchors whose aliases are being inlined.
	expanding  map[*yaml.Node]bool
	aliasDepth int

	decodeCount int
	aliasCount  int
}

// These bounds match the ones yaml.v3 applies when decoding into Go values.
const (
	aliasRatioRangeLow  = 400000
	aliasRatioRangeHigh = 4000000
	aliasRatioRange     = float64(aliasRatioRangeHigh - aliasRatioRangeLow)
)

func allowedAliasRatio(decodeCount int) float64 {
	switch {
	case decodeCount <= aliasRatioRangeLow:
		return 0.99
	case decodeCount >= aliasRatioRangeHigh:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(decodeCount-aliasRatioRangeLow)/aliasRatioRange)
	}
}

func (d *decoder) node(n *yaml.Node) (any, error) {
	d.decodeCount++
	if d.aliasDepth > 0 {
		d.aliasCount++
	}
	if d.aliasCount > 100 && d.decodeCount > 1000 &&
		float64(d.aliasCount)/float64(d.decodeCount) > allowedAliasRatio(d.decodeCount) {
		return nil, posErrorf(n, "document contains excessive aliasing")
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return d.node(n.Content[0])
	case yaml.AliasNode:
		return d.alias(n)
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := d.node(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		o := rawjson.NewObject()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind == yaml.AliasNode {
				k = k.Alias
			}
			if k == nil || k.Kind != yaml.ScalarNode {
				return nil, posErrorf(n.Content[i], "mapping key must be a scalar")
			}
			if k.ShortTag() == mergeTag {
				return nil, posErrorf(k, "merge keys are not supported")
			}
			val, err := d.node(v)
			if err != nil {
				return nil, err
			}
			o.Set(k.Value, val)
		}
		return o, nil
	case yaml.ScalarNode:
		return scalar(n)
	}
	return nil, posErrorf(n, "unsupported node kind %d", n.Kind)
}

func (d *decoder) alias(n *yaml.Node) (any, error) {
	if n.Alias == nil {
		return nil, posErrorf(n, "unknown anchor %q", n.Value)
	}
	if d.expanding[n.Alias] {
		return nil, posErrorf(n, "anchor %q value contains itself", n.Value)
	}
	d.expanding[n.Alias] = true
	d.aliasDepth++
	defer func() {
		delete(d.expanding, n.Alias)
		d.aliasDepth--
	}()
	return d.node(n.Alias)
}

// rxAnyOctalYaml11 matches YAML 1.1 style octal literals, 8 and 9 included.
var rxAnyOctalYaml11 = regexp.MustCompile(`^[-+]?0[0-9_]+$`)

func scalar(n *yaml.Node) (any, error) {
	tag := n.ShortTag()
	// Untagged values like 01289 resolve to floats; treat them as strings.
	if n.Style&yaml.TaggedStyle == 0 && tag == floatTag && rxAnyOctalYaml11.MatchString(n.Value) {
		tag = strTag
	}
	switch tag {
	case nullTag:
		return nil, nil
	case strTag, timestampTag, binaryTag:
		return n.Value, nil
	case boolTag:
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, posErrorf(n, "invalid bool %q", n.Value)
		}
		return b, nil
	case intTag:
		if json.Valid([]byte(n.Value)) {
			return json.Number(n.Value), nil
		}
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, posErrorf(n, "invalid integer %q", n.Value)
		}
		return json.Number(strconv.FormatInt(i, 10)), nil
	case floatTag:
		if json.Valid([]byte(n.Value)) {
			return json.Number(n.Value), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, posErrorf(n, "invalid float %q", n.Value)
		}
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, posErrorf(n, "%s is not representable in JSON", n.Value)
		}
		return json.Number(strconv.FormatFloat(f, 'g', -1, 64)), nil
	}
	return nil, posErrorf(n, "unsupported tag %s", tag)
}

func posErrorf(n *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("yamljson: line %d: %s", n.Line, fmt.Sprintf(format, args...))
}

// Marshal encodes a rawjson value as YAML.
func Marshal(v any) ([]byte, error) {
	n, err := ToNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(n)
}

// ToNode builds the YAML node tree of a rawjson value.
func ToNode(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: nullTag, Value: "null"}, nil
	case bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: boolTag, Value: strconv.FormatBool(x)}, nil
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: x}, nil
	case json.Number:
		tag := floatTag
		if _, err := strconv.ParseInt(string(x), 10, 64); err == nil {
			tag = intTag
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: string(x)}, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, e := range x {
			c, err := ToNode(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	case *rawjson.Object:
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for k, e := range x.Entries() {
			c, err := ToNode(e)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: strTag, Value: k}, c)
		}
		return n, nil
	default:
		g, err := rawjson.FromGo(v)
		if err != nil {
			return nil, err
		}
		return ToNode(g)
	}
}
