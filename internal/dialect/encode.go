package dialect

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// IdentifierEncoder writes schema, table and column names in the form the
// target engine accepts.
type IdentifierEncoder interface {
	EncodeSchemaName(name string, sb *strings.Builder)
	EncodeTableName(name string, sb *strings.Builder)
	EncodeColumnName(name string, sb *strings.Builder)
}

// Quoting selects an IdentifierEncoder by name.
type Quoting string

const (
	// QuotingANSI wraps identifiers in double quotes.
	QuotingANSI Quoting = "ansi"
	// QuotingNone writes identifiers verbatim.
	QuotingNone Quoting = "none"
)

// EncoderFor returns the encoder for a quoting mode.
func EncoderFor(q Quoting) (IdentifierEncoder, error) {
	switch q {
	case QuotingANSI, "":
		return QuotedIdentifiers{}, nil
	case QuotingNone:
		return PlainIdentifiers{}, nil
	default:
		return nil, fmt.Errorf("unknown quoting mode %q: must be %q or %q", q, QuotingANSI, QuotingNone)
	}
}

// QuotedIdentifiers double-quotes every identifier, doubling embedded quotes.
// Names are NFC-normalized first so visually equal names encode identically.
type QuotedIdentifiers struct{}

func (QuotedIdentifiers) EncodeSchemaName(name string, sb *strings.Builder) { quote(name, sb) }
func (QuotedIdentifiers) EncodeTableName(name string, sb *strings.Builder)  { quote(name, sb) }
func (QuotedIdentifiers) EncodeColumnName(name string, sb *strings.Builder) { quote(name, sb) }

func quote(name string, sb *strings.Builder) {
	sb.WriteByte('"')
	sb.WriteString(strings.ReplaceAll(norm.NFC.String(name), `"`, `""`))
	sb.WriteByte('"')
}

// PlainIdentifiers writes identifiers unchanged.
type PlainIdentifiers struct{}

func (PlainIdentifiers) EncodeSchemaName(name string, sb *strings.Builder) { sb.WriteString(name) }
func (PlainIdentifiers) EncodeTableName(name string, sb *strings.Builder)  { sb.WriteString(name) }
func (PlainIdentifiers) EncodeColumnName(name string, sb *strings.Builder) { sb.WriteString(name) }

// Qualify writes `schema.table` (or just `table` when schema is empty).
func Qualify(enc IdentifierEncoder, schema, table string) string {
	var sb strings.Builder
	if schema != "" {
		enc.EncodeSchemaName(schema, &sb)
		sb.WriteByte('.')
	}
	enc.EncodeTableName(table, &sb)
	return sb.String()
}

// Column returns the encoded form of a column name.
func Column(enc IdentifierEncoder, name string) string {
	var sb strings.Builder
	enc.EncodeColumnName(name, &sb)
	return sb.String()
}
