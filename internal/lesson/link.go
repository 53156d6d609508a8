package lesson

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

type linkState uint8

const (
	linkAbsent linkState = iota
	linkNull
	linkPresent
)

// Link is a node reference with three states. Absent means the list variant
// has no such pointer, Null means the pointer exists but is empty, and
// Present carries the id of the target node.
type Link struct {
	state linkState
	id    string
}

// NoLink returns an absent link.
func NoLink() Link { return Link{} }

// NullLink returns a link that exists and points nowhere.
func NullLink() Link { return Link{state: linkNull} }

// LinkTo returns a link to the node with the given id.
func LinkTo(id string) Link { return Link{state: linkPresent, id: id} }

// IsAbsent reports whether the pointer field does not exist.
func (l Link) IsAbsent() bool { return l.state == linkAbsent }

// IsNull reports whether the pointer exists and is empty.
func (l Link) IsNull() bool { return l.state == linkNull }

// Target returns the referenced node id, if any.
func (l Link) Target() (string, bool) {
	return l.id, l.state == linkPresent
}

// IsZero lets encoding/json omit absent links with omitzero.
func (l Link) IsZero() bool { return l.state == linkAbsent }

func (l Link) String() string {
	switch l.state {
	case linkNull:
		return "null"
	case linkPresent:
		return l.id
	default:
		return "<absent>"
	}
}

func (l Link) MarshalJSON() ([]byte, error) {
	if l.state == linkPresent {
		return json.Marshal(l.id)
	}
	return []byte("null"), nil
}

// UnmarshalJSON is only invoked when the field is present, so a literal null
// becomes NullLink.
func (l *Link) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*l = NullLink()
		return nil
	}
	var id string
	if err := json.Unmarshal(b, &id); err != nil {
		return fmt.Errorf("link must be a node id or null: %w", err)
	}
	*l = LinkTo(id)
	return nil
}

// linkFromYAML converts a mapping value node. yaml.v3 never hands null
// scalars to field unmarshalers, so Node decodes its links itself.
func linkFromYAML(v *yaml.Node) (Link, error) {
	if v.Kind != yaml.ScalarNode {
		return Link{}, fmt.Errorf("line %d: link must be a scalar", v.Line)
	}
	if v.ShortTag() == "!!null" {
		return NullLink(), nil
	}
	return LinkTo(v.Value), nil
}

func (l *Link) UnmarshalYAML(value *yaml.Node) error {
	v, err := linkFromYAML(value)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// UnmarshalYAML decodes a node, keeping the difference between a missing
// next/prev key and an explicit null.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	type plain Node
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	p.Next, p.Prev = NoLink(), NoLink()

	for i := 0; i+1 < len(value.Content); i += 2 {
		key, val := value.Content[i], value.Content[i+1]
		var err error
		switch key.Value {
		case "next":
			p.Next, err = linkFromYAML(val)
		case "prev":
			p.Prev, err = linkFromYAML(val)
		}
		if err != nil {
			return fmt.Errorf("node %s: %w", p.ID, err)
		}
	}

	*n = Node(p)
	return nil
}
