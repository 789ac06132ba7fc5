package taxme

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Role is the semantic meaning of a column header or of a cell value, independently
// of the text a given data source uses to express it.
type Role int

const (
	// Column roles.
	RoleDate Role = iota
	RoleType
	RoleUnitPrice
	RoleQuantity
	RoleClosedPositionQuantity
	RoleGain
	RoleIsTaxed

	// Value roles.
	RoleTypeBuy
	RoleTypeSell
	RoleYes
	RoleNo
	RoleNotAvailable
)

var roleNames = [...]string{
	RoleDate:                   "Date",
	RoleType:                   "Type",
	RoleUnitPrice:              "UnitPrice",
	RoleQuantity:               "Quantity",
	RoleClosedPositionQuantity: "ClosedPositionQuantity",
	RoleGain:                   "Gain",
	RoleIsTaxed:                "IsTaxed",
	RoleTypeBuy:                "Type.Buy",
	RoleTypeSell:               "Type.Sell",
	RoleYes:                    "Yes",
	RoleNo:                     "No",
	RoleNotAvailable:           "NotAvailable",
}

// ColumnRoles are the roles that must be found in a ledger header.
var ColumnRoles = []Role{RoleDate, RoleType, RoleUnitPrice, RoleQuantity, RoleClosedPositionQuantity, RoleGain, RoleIsTaxed}

// Roles lists every role, in declaration order.
func Roles() []Role {
	roles := make([]Role, len(roleNames))
	for i := range roleNames {
		roles[i] = Role(i)
	}
	return roles
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "unknown"
	}
	return roleNames[r]
}

// ParseRole parses a role name as written in a labels file.
func ParseRole(s string) (Role, error) {
	for i, name := range roleNames {
		if name == s {
			return Role(i), nil
		}
	}
	return 0, fmt.Errorf("%w: role %q", ErrUnknownLabel, s)
}

// LabelSchema maps roles to the text a data source uses for them, and back.
//
// A LabelSchema is immutable once created.
type LabelSchema struct {
	text map[Role]string
	role map[string]Role
}

// NewLabelSchema creates a schema from the token of every role.
//
// Every role must be defined, and no two roles can share the same token.
func NewLabelSchema(tokens map[Role]string) (*LabelSchema, error) {
	s := &LabelSchema{
		text: make(map[Role]string, len(tokens)),
		role: make(map[string]Role, len(tokens)),
	}
	for _, r := range Roles() {
		t, ok := tokens[r]
		if !ok {
			return nil, fmt.Errorf("%w: %s is not defined", ErrIncompleteSchema, r)
		}
		if other, exists := s.role[t]; exists {
			return nil, fmt.Errorf("%w: %q is used by both %s and %s", ErrAmbiguousLabel, t, other, r)
		}
		s.text[r] = t
		s.role[t] = r
	}
	return s, nil
}

// Resolve returns the text used for role r.
func (s *LabelSchema) Resolve(r Role) (string, error) {
	t, ok := s.text[r]
	if !ok {
		return "", fmt.Errorf("%w: role %s", ErrUnknownLabel, r)
	}
	return t, nil
}

// Identify returns the role expressed by text.
func (s *LabelSchema) Identify(text string) (Role, error) {
	r, ok := s.role[text]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, text)
	}
	return r, nil
}

// mustResolve is for roles already checked at construction.
func (s *LabelSchema) mustResolve(r Role) string {
	t, err := s.Resolve(r)
	if err != nil {
		panic(err)
	}
	return t
}

// DecodeLabelSchema reads a labels file: one `role=token` definition per line, empty
// lines are ignored. The token is everything after the first '='.
func DecodeLabelSchema(r io.Reader) (*LabelSchema, error) {
	tokens := make(map[Role]string)
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		name, token, found := strings.Cut(line, "=")
		if !found {
			return nil, fmt.Errorf("%w: line %d: %q has no '='", ErrMalformedLabels, lineNumber, line)
		}
		role, err := ParseRole(name)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		if _, exists := tokens[role]; exists {
			return nil, fmt.Errorf("%w: line %d: %s is defined twice", ErrMalformedLabels, lineNumber, role)
		}
		tokens[role] = token
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read labels: %w", err)
	}
	return NewLabelSchema(tokens)
}
