// Package mockoracle provides a local stand-in for the vision oracle.
//
// It speaks just enough of the OpenAI-compatible chat-completions
// protocol to let the recognition pipeline run end to end without a
// real credential, answering every request with a synthetic leaderboard
// reply. Reply shapes cover the formats real models have been seen to
// produce: a clean JSON array, the same array inside a markdown fence,
// and a loose text rendering.
package mockoracle

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
)

// Reply formats the generator can produce.
const (
	FormatJSON   = "json"
	FormatFenced = "fenced"
	FormatText   = "text"
	FormatRandom = "random"
)

// Contribution value bounds for generated members.
const (
	minContribution = 0
	maxContribution = 20000
)

// Generator produces synthetic leaderboard replies.
type Generator struct {
	members int
	format  string
	faker   *gofakeit.Faker
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithMembers sets how many members each reply carries.
func WithMembers(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.members = n
		}
	}
}

// WithFormat fixes the reply format. FormatRandom picks one per reply.
func WithFormat(format string) Option {
	return func(g *Generator) {
		switch format {
		case FormatJSON, FormatFenced, FormatText, FormatRandom:
			g.format = format
		}
	}
}

// WithSeed makes the generator deterministic.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.faker = gofakeit.New(seed)
	}
}

// NewGenerator creates a generator with default configuration.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		members: 10,
		format:  FormatRandom,
		faker:   gofakeit.New(0),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// memberRow is one generated leaderboard line.
type memberRow struct {
	ID           string
	Contribution float64
}

// Reply renders one synthetic leaderboard answer. The coins flag picks
// which bilingual key labels the contribution column.
func (g *Generator) Reply(coins bool) string {
	rows := make([]memberRow, g.members)
	for i := range rows {
		rows[i] = memberRow{
			ID:           g.faker.Gamertag(),
			Contribution: float64(g.faker.IntRange(minContribution, maxContribution)),
		}
	}

	format := g.format
	if format == FormatRandom {
		format = []string{FormatJSON, FormatFenced, FormatText}[rand.Intn(3)]
	}

	key := "金幣捐獻"
	if !coins {
		key = "活躍貢獻"
	}

	switch format {
	case FormatFenced:
		return "```json\n" + g.renderJSON(rows, key) + "\n```"
	case FormatText:
		return g.renderText(rows, key)
	default:
		return g.renderJSON(rows, key)
	}
}

func (g *Generator) renderJSON(rows []memberRow, key string) string {
	items := make([]map[string]interface{}, len(rows))
	for i, row := range rows {
		items[i] = map[string]interface{}{
			"會員ID": row.ID,
			key:     row.Contribution,
		}
	}
	out, _ := json.Marshal(items)
	return string(out)
}

func (g *Generator) renderText(rows []memberRow, key string) string {
	var b strings.Builder
	for _, row := range rows {
		fmt.Fprintf(&b, "會員ID: %s\n%s: %.0f\n\n", row.ID, key, row.Contribution)
	}
	return b.String()
}
