package zhconv

import "sort"

// Script and variant detection scores text by how much of it the
// converters toward each candidate would rewrite: the more a converter
// toward Traditional wants to change, the less Traditional the text is.

func builtinConverter(v Variant) *Converter {
	conv, err := Default().Converter(v)
	if err != nil {
		panic("zhconv: builtin chain missing for " + v.String())
	}
	return conv
}

// IsHans reports whether text looks like Simplified rather than
// Traditional Chinese. Equivalent to IsHansProbability(text) > 0.5.
func IsHans(text string) bool {
	return IsHansProbability(text) > 0.5
}

// IsHansProbability estimates in [0, 1] how likely text is Simplified
// rather than Traditional Chinese. 0.5 means undeterminable, which is
// also the answer for text containing no convertible phrase at all.
func IsHansProbability(text string) float64 {
	nonHant := float64(builtinConverter(ZhHant).CountMatched(text))
	nonHans := float64(builtinConverter(ZhHans).CountMatched(text))
	if nonHant+nonHans == 0 {
		return 0.5
	}
	return nonHant / (nonHans + nonHant)
}

// InferVariant guesses the regional variant of text. Possible return
// values are only ZhCN, ZhTW and ZhHK; ties resolve in that order.
func InferVariant(text string) Variant {
	nonCN := builtinConverter(ZhCN).CountMatched(text)
	nonTW := builtinConverter(ZhTW).CountMatched(text)
	nonHK := builtinConverter(ZhHK).CountMatched(text)
	switch {
	case nonCN <= nonTW && nonCN <= nonHK:
		return ZhCN
	case nonTW <= nonCN && nonTW <= nonHK:
		return ZhTW
	default:
		return ZhHK
	}
}

// VariantScore pairs a candidate variant with a confidence level in
// [0, 1].
type VariantScore struct {
	Variant    Variant
	Confidence float64
}

// InferVariantConfidence scores the script and regional candidates for
// text, most confident first.
func InferVariantConfidence(text string) []VariantScore {
	nonCN := float64(builtinConverter(ZhCN).CountMatched(text))
	nonTW := float64(builtinConverter(ZhTW).CountMatched(text))
	nonHK := float64(builtinConverter(ZhHK).CountMatched(text))
	nonHant := float64(builtinConverter(ZhHant).CountMatched(text))
	nonHans := float64(builtinConverter(ZhHans).CountMatched(text))

	total := nonCN + nonTW + nonHK - nonHant
	score := func(v Variant, non float64) VariantScore {
		if total <= 0 {
			return VariantScore{Variant: v, Confidence: 0}
		}
		return VariantScore{Variant: v, Confidence: 1 - min(non, total)/total}
	}
	scores := []VariantScore{
		score(ZhCN, nonCN),
		score(ZhTW, nonTW),
		score(ZhHK, nonHK),
		score(ZhHans, nonHans),
		score(ZhHant, nonHant),
	}
	sort.SliceStable(scores, func(i, j int) bool { return scores[i].Confidence > scores[j].Confidence })
	return scores
}
