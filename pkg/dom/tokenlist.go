// Package dom holds the DOMTokenList: an ordered set of tokens kept in an
// element attribute such as class.
package dom

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSyntax is returned for an empty token.
	ErrSyntax = errors.New("syntax error: the token must not be empty")
	// ErrInvalidCharacter is returned for a token containing ASCII whitespace.
	ErrInvalidCharacter = errors.New("invalid character: the token must not contain whitespace")
)

// Element is the attribute storage a token list reads and writes.
type Element interface {
	GetAttribute(name string) (string, bool)
	SetAttribute(name, value string)
}

// Attributes is a map-backed Element.
type Attributes map[string]string

func (a Attributes) GetAttribute(name string) (string, bool) {
	v, ok := a[name]
	return v, ok
}

func (a Attributes) SetAttribute(name, value string) { a[name] = value }

// TokenList views one attribute of an element as an ordered set of tokens.
// Every read parses the attribute afresh; every mutation rewrites it
// serialized, with duplicates removed and single spaces.
type TokenList struct {
	element Element
	attr    string
}

func NewTokenList(element Element, attr string) *TokenList {
	return &TokenList{element: element, attr: attr}
}

// ClassList is the token list over the class attribute.
func ClassList(element Element) *TokenList { return NewTokenList(element, "class") }

func (tl *TokenList) tokens() []string {
	attr, _ := tl.element.GetAttribute(tl.attr)
	var out []string
	for _, t := range strings.Fields(attr) {
		if !containsToken(out, t) {
			out = append(out, t)
		}
	}
	return out
}

func (tl *TokenList) set(tokens []string) {
	tl.element.SetAttribute(tl.attr, strings.Join(tokens, " "))
}

func validateToken(token string) error {
	if token == "" {
		return ErrSyntax
	}
	if strings.ContainsAny(token, " \t\n\r\f") {
		return fmt.Errorf("%q: %w", token, ErrInvalidCharacter)
	}
	return nil
}

func validateTokens(tokens []string) error {
	for _, t := range tokens {
		if err := validateToken(t); err != nil {
			return err
		}
	}
	return nil
}

func (tl *TokenList) Len() int { return len(tl.tokens()) }

// Value is the attribute value as stored.
func (tl *TokenList) Value() string {
	v, _ := tl.element.GetAttribute(tl.attr)
	return v
}

func (tl *TokenList) SetValue(v string) { tl.element.SetAttribute(tl.attr, v) }

func (tl *TokenList) String() string { return strings.Join(tl.tokens(), " ") }

// Item returns the token at index i.
func (tl *TokenList) Item(i int) (string, bool) {
	tokens := tl.tokens()
	if i < 0 || i >= len(tokens) {
		return "", false
	}
	return tokens[i], true
}

func (tl *TokenList) Contains(token string) bool {
	return containsToken(tl.tokens(), token)
}

// Add appends the tokens not already present. Nothing changes if any token
// is invalid.
func (tl *TokenList) Add(tokens ...string) error {
	if err := validateTokens(tokens); err != nil {
		return err
	}
	cur := tl.tokens()
	for _, t := range tokens {
		if !containsToken(cur, t) {
			cur = append(cur, t)
		}
	}
	tl.set(cur)
	return nil
}

// Remove drops the given tokens.
func (tl *TokenList) Remove(tokens ...string) error {
	if err := validateTokens(tokens); err != nil {
		return err
	}
	cur := tl.tokens()
	for _, t := range tokens {
		cur = removeToken(cur, t)
	}
	tl.set(cur)
	return nil
}

// Toggle removes token if present and adds it otherwise, and reports
// whether it is present afterwards. A non-nil force makes it add-only
// (true) or remove-only (false).
func (tl *TokenList) Toggle(token string, force *bool) (bool, error) {
	if err := validateToken(token); err != nil {
		return false, err
	}
	cur := tl.tokens()
	present := containsToken(cur, token)
	switch {
	case present && (force == nil || !*force):
		tl.set(removeToken(cur, token))
		return false, nil
	case !present && (force == nil || *force):
		tl.set(append(cur, token))
		return true, nil
	}
	return present, nil
}

// Replace swaps oldToken for newToken in place and reports whether
// oldToken was present.
func (tl *TokenList) Replace(oldToken, newToken string) (bool, error) {
	if err := validateTokens([]string{oldToken, newToken}); err != nil {
		return false, err
	}
	cur := tl.tokens()
	idx := -1
	for i, t := range cur {
		if t == oldToken {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	out := make([]string, 0, len(cur))
	for i, t := range cur {
		switch {
		case i == idx:
			if !containsToken(out, newToken) {
				out = append(out, newToken)
			}
		case t == newToken:
			if !containsToken(out, newToken) {
				out = append(out, t)
			}
		default:
			out = append(out, t)
		}
	}
	tl.set(out)
	return true, nil
}

func containsToken(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}

func removeToken(tokens []string, token string) []string {
	result := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != token {
			result = append(result, t)
		}
	}
	return result
}
