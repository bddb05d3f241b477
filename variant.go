package zhconv

import "strings"

// Variant is a named conversion target: a Chinese script plus an optional
// regional lexical convention. The set of variants is closed and known at
// build time.
type Variant uint8

// The supported conversion targets.
const (
	// Zh is the identity target; converting to it changes nothing.
	Zh Variant = iota
	// ZhHans is script-level Simplified Chinese, no regional phrases.
	ZhHans
	// ZhHant is script-level Traditional Chinese, no regional phrases.
	ZhHant
	// ZhCN is Simplified Chinese with mainland China phrases.
	ZhCN
	// ZhSG is Simplified Chinese with Singapore phrases.
	ZhSG
	// ZhMY is Simplified Chinese with Malaysia phrases.
	ZhMY
	// ZhTW is Traditional Chinese with Taiwan phrases.
	ZhTW
	// ZhHK is Traditional Chinese with Hong Kong phrases.
	ZhHK
	// ZhMO is Traditional Chinese with Macau phrases.
	ZhMO

	variantCount = iota
)

var variantNames = [variantCount]string{
	Zh:     "zh",
	ZhHans: "zh-Hans",
	ZhHant: "zh-Hant",
	ZhCN:   "zh-CN",
	ZhSG:   "zh-SG",
	ZhMY:   "zh-MY",
	ZhTW:   "zh-TW",
	ZhHK:   "zh-HK",
	ZhMO:   "zh-MO",
}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return "zh-invalid"
}

// Valid reports whether v is one of the declared variants.
func (v Variant) Valid() bool {
	return int(v) < variantCount
}

// ParseVariant resolves a variant identifier such as "zh-Hant", "zh_tw"
// or "ZH-CN". Matching is case-insensitive and treats '_' like '-'.
// Unresolvable identifiers yield an UnknownVariantError.
func ParseVariant(name string) (Variant, error) {
	s := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), "_", "-"))
	for v, n := range variantNames {
		if s == strings.ToLower(n) {
			return Variant(v), nil
		}
	}
	return Zh, &UnknownVariantError{Name: name}
}

// StageID identifies one literal-substitution pass. Stages are reusable
// across variant chains: all Traditional-family targets share StageToHant.
type StageID string

// The built-in stages.
const (
	// StageToHant converts any-script input to Traditional characters.
	StageToHant StageID = "zh2Hant"
	// StageToHans converts any-script input to Simplified characters.
	StageToHans StageID = "zh2Hans"
)

// Scope tags a record group with the regional convention it serves.
// ScopeBase records apply to every target of their stage; regional scopes
// override them during the table merge.
type Scope string

// The built-in scopes.
const (
	ScopeBase Scope = ""
	ScopeTW   Scope = "TW"
	ScopeHK   Scope = "HK"
	ScopeCN   Scope = "CN"
)

// StageRef selects one merged rule table: the stage's base group plus the
// scope's override group.
type StageRef struct {
	Stage StageID
	Scope Scope
}

// Resolver maps variants to their ordered stage chains. It is static
// data: resolution is a pure lookup, and the same variant always yields
// the same chain.
type Resolver map[Variant][]StageRef

// DefaultResolver returns the built-in variant chains. Regional variants
// resolve to a single merged stage (script base plus regional overrides),
// mirroring the table layout of the MediaWiki conversion data; Macau
// shares the Hong Kong tables, Singapore and Malaysia share the mainland
// tables.
func DefaultResolver() Resolver {
	return Resolver{
		Zh:     {},
		ZhHans: {{Stage: StageToHans, Scope: ScopeBase}},
		ZhHant: {{Stage: StageToHant, Scope: ScopeBase}},
		ZhCN:   {{Stage: StageToHans, Scope: ScopeCN}},
		ZhSG:   {{Stage: StageToHans, Scope: ScopeCN}},
		ZhMY:   {{Stage: StageToHans, Scope: ScopeCN}},
		ZhTW:   {{Stage: StageToHant, Scope: ScopeTW}},
		ZhHK:   {{Stage: StageToHant, Scope: ScopeHK}},
		ZhMO:   {{Stage: StageToHant, Scope: ScopeHK}},
	}
}

// Chain resolves a variant to its ordered stage list.
func (r Resolver) Chain(v Variant) ([]StageRef, error) {
	chain, ok := r[v]
	if !ok {
		return nil, &UnknownVariantError{Name: v.String()}
	}
	return chain, nil
}
