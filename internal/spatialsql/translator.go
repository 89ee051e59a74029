package spatialsql

import (
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/tdgeo/internal/dialect"
	"github.com/roach88/tdgeo/internal/spatialir"
)

// Translator turns spatial IR into Teradata SQL.
//
// A Translator holds no per-call state and is safe for concurrent use.
// Everything that depends on the targeted table travels in the
// *dialect.QueryContext given to each call.
type Translator struct {
	encoder   dialect.IdentifierEncoder
	looseBBox bool
	logger    *slog.Logger
}

// Option configures a Translator.
type Option func(*Translator)

// WithLooseBBox records the loose bounding-box setting.
//
// The flag is stored and reported by LooseBBoxEnabled; BBOX predicates are
// translated as ST_Intersects whatever its value.
func WithLooseBBox(enabled bool) Option {
	return func(t *Translator) { t.looseBBox = enabled }
}

// WithLogger sets the logger used for index-narrowing diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Translator) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a Translator that encodes identifiers with enc.
// A nil enc falls back to dialect.QuotedIdentifiers.
func New(enc dialect.IdentifierEncoder, opts ...Option) *Translator {
	if enc == nil {
		enc = dialect.QuotedIdentifiers{}
	}
	t := &Translator{
		encoder: enc,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// LooseBBoxEnabled returns the loose bounding-box setting.
func (t *Translator) LooseBBoxEnabled() bool {
	return t.looseBBox
}

// Capabilities returns the predicate kinds this translator can push down.
func (t *Translator) Capabilities() Capabilities {
	return DefaultCapabilities()
}

// Translate writes the SQL for a whole predicate tree to w.
//
// Logical nodes are rendered here; spatial leaves go through Visit. On error
// the output written so far is not usable SQL.
func (t *Translator) Translate(w io.Writer, qc *dialect.QueryContext, p spatialir.Predicate) error {
	sw := &sqlWriter{w: w}
	return t.translate(sw, qc, p)
}

// TranslateString translates p into a string.
// It returns "" together with any error.
func (t *Translator) TranslateString(qc *dialect.QueryContext, p spatialir.Predicate) (string, error) {
	var sb strings.Builder
	if err := t.Translate(&sb, qc, p); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// Visit translates one spatial node and returns extra unchanged.
//
// Comparison nodes go to the comparison mapper and DistanceBuffer nodes to
// the distance mapper. Logical nodes are rejected; use Translate for trees.
func (t *Translator) Visit(w io.Writer, qc *dialect.QueryContext, node spatialir.Predicate, extra any) (any, error) {
	sw := &sqlWriter{w: w}
	if err := t.visit(sw, qc, node); err != nil {
		return extra, err
	}
	return extra, nil
}

func (t *Translator) visit(sw *sqlWriter, qc *dialect.QueryContext, node spatialir.Predicate) error {
	if spatialir.IsNil(node) {
		return invalid(spatialir.KindUnknown, "nil predicate (%T)", node)
	}
	switch n := node.(type) {
	case spatialir.Comparison:
		return t.visitComparison(sw, qc, n)
	case *spatialir.Comparison:
		return t.visitComparison(sw, qc, *n)
	case spatialir.DistanceBuffer:
		return t.visitDistance(sw, qc, n)
	case *spatialir.DistanceBuffer:
		return t.visitDistance(sw, qc, *n)
	default:
		return invalid(spatialir.KindUnknown, "%T is not a spatial predicate", node)
	}
}

func (t *Translator) translate(sw *sqlWriter, qc *dialect.QueryContext, p spatialir.Predicate) error {
	if spatialir.IsNil(p) {
		return invalid(spatialir.KindUnknown, "nil predicate (%T)", p)
	}
	switch pred := p.(type) {
	case spatialir.And:
		return t.translateJunction(sw, qc, pred.Predicates, " AND ", "1 = 1")
	case *spatialir.And:
		return t.translateJunction(sw, qc, pred.Predicates, " AND ", "1 = 1")
	case spatialir.Or:
		return t.translateJunction(sw, qc, pred.Predicates, " OR ", "1 = 0")
	case *spatialir.Or:
		return t.translateJunction(sw, qc, pred.Predicates, " OR ", "1 = 0")
	case spatialir.Not:
		return t.translateNot(sw, qc, pred.Predicate)
	case *spatialir.Not:
		return t.translateNot(sw, qc, pred.Predicate)
	default:
		return t.visit(sw, qc, p)
	}
}

// translateJunction joins children with op. A single child is written bare,
// an empty list becomes the identity clause.
func (t *Translator) translateJunction(sw *sqlWriter, qc *dialect.QueryContext, children []spatialir.Predicate, op, identity string) error {
	switch len(children) {
	case 0:
		sw.WriteString(identity)
		return sw.Err()
	case 1:
		return t.translate(sw, qc, children[0])
	}

	sw.WriteString("(")
	for i, child := range children {
		if i > 0 {
			sw.WriteString(op)
		}
		if err := t.translate(sw, qc, child); err != nil {
			return err
		}
	}
	sw.WriteString(")")
	return sw.Err()
}

func (t *Translator) translateNot(sw *sqlWriter, qc *dialect.QueryContext, child spatialir.Predicate) error {
	if spatialir.IsNil(child) {
		return invalid(spatialir.KindUnknown, "NOT requires a predicate")
	}
	sw.WriteString("NOT (")
	if err := t.translate(sw, qc, child); err != nil {
		return err
	}
	sw.WriteString(")")
	return sw.Err()
}

// writeIndexPrefix writes the tessellation restriction when one applies.
func (t *Translator) writeIndexPrefix(sw *sqlWriter, qc *dialect.QueryContext, prop spatialir.Property, env spatialir.Envelope) {
	if clause := t.indexClause(qc, prop, env); clause != nil {
		sw.WriteString(clause.String())
	}
}

// sqlWriter keeps the first write error and drops every later write.
type sqlWriter struct {
	w   io.Writer
	err error
}

func (s *sqlWriter) WriteString(str string) {
	if s.err != nil {
		return
	}
	if _, err := io.WriteString(s.w, str); err != nil {
		s.err = ioError(err)
	}
}

// Err returns the first write failure as an IO_ERROR TranslateError.
func (s *sqlWriter) Err() error {
	return s.err
}
