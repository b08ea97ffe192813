package domain

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Positions of the two principal-bearing statements every policy template
// carries by convention.
const (
	// AdminStatementIndex is bound to the account root ARN.
	AdminStatementIndex = 0
	// OperationalStatementIndex is bound to the resolved caller principal ARN.
	OperationalStatementIndex = 1
)

// PolicyPrincipal is the principal field of a policy statement.
type PolicyPrincipal struct {
	AWS string `json:"AWS"`
}

// PolicyStatement is a single statement of a key policy.
type PolicyStatement struct {
	Sid       string          `json:"Sid,omitempty"`
	Effect    string          `json:"Effect"`
	Principal PolicyPrincipal `json:"Principal"`
	Action    []string        `json:"Action"`
	Resource  string          `json:"Resource"`
}

// PolicyDocument is a structured key access policy. Templates carry empty
// principal slots; a bound document has every slot filled with a concrete ARN.
type PolicyDocument struct {
	Version   string            `json:"Version"`
	ID        string            `json:"Id,omitempty"`
	Statement []PolicyStatement `json:"Statement"`
}

// Clone returns a deep copy of the document. Templates are shared read-only
// across concurrent invocations, so binding always operates on a copy.
func (d *PolicyDocument) Clone() *PolicyDocument {
	out := &PolicyDocument{
		Version:   d.Version,
		ID:        d.ID,
		Statement: make([]PolicyStatement, len(d.Statement)),
	}
	for i, stmt := range d.Statement {
		stmt.Action = slices.Clone(stmt.Action)
		out.Statement[i] = stmt
	}
	return out
}

// JSON renders the document in the form submitted to the provider.
// Field order is fixed by the struct definition, so rendering the same
// document twice yields byte-identical output.
func (d *PolicyDocument) JSON() (string, error) {
	raw, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("failed to marshal policy document: %w", err)
	}
	return string(raw), nil
}

// ParsePolicyDocument decodes a policy document from JSON.
func ParsePolicyDocument(raw []byte) (*PolicyDocument, error) {
	var doc PolicyDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse policy document: %w", err)
	}
	return &doc, nil
}
