/*
Package convline parses textual conversion rules of the form used by
Chinese Wikipedia conversion groups:

	zh-cn:雾都孤儿; zh-tw:孤雛淚; zh-hk:苦海孤雛;
	zh-cn:计算机; zh-tw:電腦;

Each line declares the preferred phrase per variant; converting toward a
target variant maps every other listed phrase to the target's phrase.
A line may instead declare a single unconditional pair:

	孤雛淚 => 雾都孤儿

Rule parsing is intentionally outside the engine core. Use this package
to feed custom dictionaries into a zhconv.Converters cache.
*/
package convline

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/zhconv/zhconv"
)

// Conv is one parsed conversion rule line.
type Conv struct {
	// texts holds the declared phrase per variant for bidirectional
	// lines; nil for unconditional pair lines.
	texts map[zhconv.Variant]string
	// from/to hold a unidirectional pair; from is empty otherwise.
	from, to string
	// toVariant restricts a unidirectional pair to one target; only
	// meaningful when targeted is set.
	toVariant zhconv.Variant
	targeted  bool
}

// fallbacks lists, per target variant, the variants whose declared text
// stands in when the target itself is not listed on a line.
var fallbacks = map[zhconv.Variant][]zhconv.Variant{
	zhconv.ZhHans: {zhconv.ZhCN, zhconv.ZhSG, zhconv.ZhMY},
	zhconv.ZhHant: {zhconv.ZhTW, zhconv.ZhHK, zhconv.ZhMO},
	zhconv.ZhCN:   {zhconv.ZhHans, zhconv.ZhSG, zhconv.ZhMY},
	zhconv.ZhSG:   {zhconv.ZhCN, zhconv.ZhHans, zhconv.ZhMY},
	zhconv.ZhMY:   {zhconv.ZhSG, zhconv.ZhCN, zhconv.ZhHans},
	zhconv.ZhTW:   {zhconv.ZhHant, zhconv.ZhHK, zhconv.ZhMO},
	zhconv.ZhHK:   {zhconv.ZhHant, zhconv.ZhMO, zhconv.ZhTW},
	zhconv.ZhMO:   {zhconv.ZhHK, zhconv.ZhHant, zhconv.ZhTW},
}

// Parse parses one rule line. Empty lines and lines starting with '#'
// or "//" yield (nil, nil).
func Parse(line string) (*Conv, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "//") {
		return nil, nil
	}
	if from, to, ok := strings.Cut(line, "=>"); ok && !strings.Contains(from, ":") {
		from, to = strings.TrimSpace(from), strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(to), ";"))
		if from == "" {
			return nil, fmt.Errorf("convline: pair with empty source: %q", line)
		}
		c := &Conv{from: from, to: to}
		// "FROM => zh-tw:TO" restricts the pair to one target.
		if name, text, ok := strings.Cut(to, ":"); ok {
			if v, err := zhconv.ParseVariant(name); err == nil {
				c.to = strings.TrimSpace(text)
				c.toVariant = v
				c.targeted = true
			}
		}
		return c, nil
	}
	texts := make(map[zhconv.Variant]string)
	for _, part := range strings.Split(line, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, text, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("convline: missing variant prefix in %q", part)
		}
		v, err := zhconv.ParseVariant(name)
		if err != nil {
			return nil, fmt.Errorf("convline: %q: %w", part, err)
		}
		texts[v] = strings.TrimSpace(text)
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("convline: no variant entries in %q", line)
	}
	return &Conv{texts: texts}, nil
}

// servesTarget reports whether a targeted unidirectional pair applies
// when converting toward target, directly or through the fallback order.
func (c *Conv) servesTarget(target zhconv.Variant) bool {
	if c.toVariant == target {
		return true
	}
	for _, fb := range fallbacks[target] {
		if fb == c.toVariant {
			return true
		}
	}
	return false
}

// textFor resolves the phrase a line declares for a target variant,
// consulting the fallback order when the target is not listed.
func (c *Conv) textFor(target zhconv.Variant) (string, bool) {
	if t, ok := c.texts[target]; ok {
		return t, true
	}
	for _, fb := range fallbacks[target] {
		if t, ok := c.texts[fb]; ok {
			return t, true
		}
	}
	return "", false
}

// PairsFor renders the line as source -> target phrase pairs for one
// conversion target. Lines that declare nothing usable for the target
// yield no pairs.
func (c *Conv) PairsFor(target zhconv.Variant) []zhconv.RulePair {
	if c.from != "" {
		if c.targeted && !c.servesTarget(target) {
			return nil
		}
		return []zhconv.RulePair{{From: c.from, To: c.to}}
	}
	to, ok := c.textFor(target)
	if !ok || to == "" {
		return nil
	}
	pairs := make([]zhconv.RulePair, 0, len(c.texts))
	for _, from := range c.texts {
		if from == "" || from == to {
			continue
		}
		pairs = append(pairs, zhconv.RulePair{From: from, To: to})
	}
	return pairs
}

// Reader streams parsed rules out of a rule file, one line at a time.
// Next returns io.EOF when the input is exhausted.
type Reader struct {
	scanner *bufio.Scanner
}

func NewReader(r io.Reader) *Reader {
	return &Reader{scanner: bufio.NewScanner(r)}
}

// Next returns the next non-empty rule line.
func (r *Reader) Next() (*Conv, error) {
	for r.scanner.Scan() {
		conv, err := Parse(r.scanner.Text())
		if err != nil {
			return nil, err
		}
		if conv != nil {
			return conv, nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

// Register parses all rules from r and registers their pairs for the
// target variant at the given priority. Duplicate sources within the
// input collapse to the last occurrence before registration, matching
// the engine's last-write-wins merge policy.
func Register(c *zhconv.Converters, target zhconv.Variant, priority int, r io.Reader) error {
	cr := NewReader(r)
	merged := make(map[string]string)
	var order []string
	for {
		conv, err := cr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		for _, p := range conv.PairsFor(target) {
			if _, seen := merged[p.From]; !seen {
				order = append(order, p.From)
			}
			merged[p.From] = p.To
		}
	}
	if len(merged) == 0 {
		return nil
	}
	pairs := make([]zhconv.RulePair, 0, len(merged))
	for _, from := range order {
		pairs = append(pairs, zhconv.RulePair{From: from, To: merged[from]})
	}
	return c.AddConvPairs(target, priority, pairs...)
}
