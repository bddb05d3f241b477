package zhconv

import (
	_ "embed"
	"sync"

	"github.com/zhconv/zhconv/rulepack"
)

// builtinBlob is the embedded rule pack, produced by the offline pack
// pipeline from the MediaWiki conversion tables. It is trusted input:
// failing to decompress or parse it means the binary was built from a
// broken artifact.
//
//go:embed data/convtables.bin.xz
var builtinBlob []byte

var (
	builtinOnce sync.Once
	builtin     *Converters
)

// Default returns the process-wide converter cache backed by the
// embedded rule tables. The tables are decompressed and parsed on first
// call; concurrent first callers share the one load. It panics if the
// embedded blob is corrupt, which indicates a defective build rather
// than a runtime condition.
func Default() *Converters {
	builtinOnce.Do(func() {
		store, err := NewStoreFromBlob(builtinBlob)
		if err != nil {
			panic("zhconv: embedded rule tables are corrupt: " + err.Error())
		}
		builtin = NewConverters(store, nil)
	})
	return builtin
}

// BuiltinFingerprint returns the BLAKE3 digest of the embedded rule-pack
// artifact, for build reproducibility checks. The digest identifies the
// artifact; it is not verified against anything at runtime.
func BuiltinFingerprint() string {
	return rulepack.Fingerprint(builtinBlob)
}

// Convert converts text to the requested variant using the embedded
// tables. It fails with an UnknownVariantError when the variant does not
// resolve to a known stage chain.
func Convert(text string, variant Variant) (string, error) {
	return Default().Convert(text, variant)
}

// mustConvert backs the per-variant wrappers, which only pass variants
// with known chains.
func mustConvert(text string, variant Variant) string {
	out, err := Default().Convert(text, variant)
	if err != nil {
		panic("zhconv: builtin chain missing for " + variant.String())
	}
	return out
}

// ToHans converts text to script-level Simplified Chinese.
func ToHans(text string) string { return mustConvert(text, ZhHans) }

// ToHant converts text to script-level Traditional Chinese.
func ToHant(text string) string { return mustConvert(text, ZhHant) }

// ToCN converts text to Simplified Chinese with mainland phrases.
func ToCN(text string) string { return mustConvert(text, ZhCN) }

// ToSG converts text to Simplified Chinese with Singapore phrases.
func ToSG(text string) string { return mustConvert(text, ZhSG) }

// ToMY converts text to Simplified Chinese with Malaysia phrases.
func ToMY(text string) string { return mustConvert(text, ZhMY) }

// ToTW converts text to Traditional Chinese with Taiwan phrases.
func ToTW(text string) string { return mustConvert(text, ZhTW) }

// ToHK converts text to Traditional Chinese with Hong Kong phrases.
func ToHK(text string) string { return mustConvert(text, ZhHK) }

// ToMO converts text to Traditional Chinese with Macau phrases.
func ToMO(text string) string { return mustConvert(text, ZhMO) }
