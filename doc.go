/*
Package zhconv converts Chinese text between script variants (Simplified,
Traditional) and regional lexical conventions (mainland China, Taiwan,
Hong Kong, Macau, Singapore, Malaysia).

Conversion applies large phrase-substitution rule tables with an
Aho-Corasick automaton using the leftmost-longest matching strategy, so a
whole regional phrase like 计算机 wins over the character-by-character
conversion that would otherwise apply at the same position. The rule data
ships embedded in the binary, xz-compressed, and is decompressed and
compiled lazily on first use of a variant. Compiled matchers are immutable
and shared across all conversion calls.

Basic usage:

	out, err := zhconv.Convert("阿拉伯联合酋长国", zhconv.ZhTW)
	// out == "阿拉伯聯合大公國"

or, for well-known targets, the convenience wrappers:

	zhconv.ToHant("天干物燥 小心火烛")   // "天乾物燥 小心火燭"
	zhconv.ToHans("天乾物燥 小心火燭")   // "天干物燥 小心火烛"

Custom phrase rules can be registered at a priority and take precedence
over the embedded tables:

	c := zhconv.Default()
	err := c.AddConvPairs(zhconv.ZhTW, 10, zhconv.RulePair{From: "軟件", To: "軟體"})

The rule tables derive from the conversion data maintained by MediaWiki
and Chinese Wikipedia. Conversion is never meant to be 100% accurate for
professional text; callers needing topic-specific vocabulary should
register additional rules, for example parsed from conversion-group lines
with package convline.

Further reading:

	https://zh.wikipedia.org/wiki/Help:中文维基百科的繁简、地区词处理
	https://github.com/BYVoid/OpenCC
*/
package zhconv

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'zhconv'
func tracer() tracing.Trace {
	return tracing.Select("zhconv")
}
