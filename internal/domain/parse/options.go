// Package parse turns raw recognition oracle replies into structured
// per-member contribution extractions.
package parse

// Option applies a configuration option to the Parser.
type Option func(*Parser)

// WithDropUnparsable discards matched rows whose value cannot be coerced to
// a number. The default records them with contribution 0, which keeps the
// member visible in the output for the operator to correct.
func WithDropUnparsable(drop bool) Option {
	return func(p *Parser) {
		p.dropUnparsable = drop
	}
}
