// Package treefile reads styled document trees from YAML.
//
// A document is a single root node. Element nodes have a tag, an inline
// style string and children; text nodes have only text:
//
//	tag: html
//	style: "font-size: 14px"
//	children:
//	  - tag: div
//	    style: "float: left; width: 100px"
//	    children:
//	      - text: hello
package treefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strconv"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"l14flow/pkg/css"
	"l14flow/pkg/layout"
)

// ErrEmptyDocument is returned for a file with no root node.
var ErrEmptyDocument = errors.New("empty document")

// Node is one node of a tree file.
type Node struct {
	Tag      string  `yaml:"tag"`
	Style    string  `yaml:"style"`
	Text     string  `yaml:"text"`
	Children []*Node `yaml:"children"`
}

// Load reads and converts the tree file at name.
func Load(name string) (*layout.StyledNode, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read tree file: %w", err)
	}
	root, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return root, nil
}

// Parse decodes a tree document, validates it and converts it into a
// styled tree. All validation problems are reported together.
func Parse(r io.Reader) (*layout.StyledNode, error) {
	var root Node
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyDocument
		}
		return nil, fmt.Errorf("decode tree: %w", err)
	}
	if err := root.validate("/"); err != nil {
		return nil, err
	}
	if root.Tag == "" {
		return nil, fmt.Errorf("/: root must be an element")
	}
	return root.styled(), nil
}

func (n *Node) validate(at string) error {
	var errs error
	switch {
	case n.Tag == "" && n.Text == "":
		errs = multierr.Append(errs, fmt.Errorf("%s: node has neither tag nor text", at))
	case n.Tag != "" && n.Text != "":
		errs = multierr.Append(errs, fmt.Errorf("%s: node has both tag and text", at))
	case n.Tag == "" && (n.Style != "" || len(n.Children) > 0):
		errs = multierr.Append(errs, fmt.Errorf("%s: text node cannot have style or children", at))
	}
	for i, child := range n.Children {
		childAt := path.Join(at, strconv.Itoa(i))
		if child == nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: null child", childAt))
			continue
		}
		errs = multierr.Append(errs, child.validate(childAt))
	}
	return errs
}

func (n *Node) styled() *layout.StyledNode {
	if n.Tag == "" {
		return &layout.StyledNode{Text: n.Text}
	}
	out := &layout.StyledNode{Tag: n.Tag, Style: css.ParseInlineStyle(n.Style)}
	for _, child := range n.Children {
		out.Children = append(out.Children, child.styled())
	}
	return out
}
