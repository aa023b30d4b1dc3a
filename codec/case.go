package codec

import (
	"fmt"
	"strings"
	"unicode"
)

// CaseStrategy maps Go field names to JSON keys for fields whose json tag
// does not name them.
type CaseStrategy int

const (
	// Preserve uses the Go field name unchanged.
	Preserve CaseStrategy = iota
	// CamelCase lowers the first word: CreatedAt -> createdAt, ID -> id.
	CamelCase
	// SnakeCase lowers all words and joins them with underscores: CreatedAt -> created_at.
	SnakeCase
)

// String returns the configuration name of the strategy.
func (s CaseStrategy) String() string {
	switch s {
	case Preserve:
		return "preserve"
	case CamelCase:
		return "camel"
	case SnakeCase:
		return "snake"
	default:
		return "unknown"
	}
}

// ParseCaseStrategy parses a strategy name as written in config files.
// The empty string means Preserve.
func ParseCaseStrategy(name string) (CaseStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "preserve":
		return Preserve, nil
	case "camel", "camelcase":
		return CamelCase, nil
	case "snake", "snakecase", "snake_case":
		return SnakeCase, nil
	default:
		return Preserve, fmt.Errorf("codec: unknown case strategy %q", name)
	}
}

// FieldName converts a Go field name into a JSON key.
func (s CaseStrategy) FieldName(name string) string {
	switch s {
	case CamelCase:
		return joinCamel(splitWords(name))
	case SnakeCase:
		return joinSnake(splitWords(name))
	default:
		return name
	}
}

// splitWords breaks an identifier on underscores, lower-to-upper transitions
// and the end of an acronym (HTTPStatus -> HTTP, Status).
func splitWords(name string) []string {
	var words []string
	for _, part := range strings.Split(name, "_") {
		if part == "" {
			continue
		}
		runes := []rune(part)
		start := 0
		for i := 1; i < len(runes); i++ {
			prev, cur := runes[i-1], runes[i]
			if !unicode.IsUpper(cur) {
				continue
			}
			endsAcronym := unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || endsAcronym {
				words = append(words, string(runes[start:i]))
				start = i
			}
		}
		words = append(words, string(runes[start:]))
	}
	return words
}

func joinCamel(words []string) string {
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(strings.ToLower(w))
			continue
		}
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		b.WriteString(string(runes))
	}
	return b.String()
}

func joinSnake(words []string) string {
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, "_")
}
