package zhconv

import "testing"

func TestIsHans(t *testing.T) {
	if !IsHans("软件和计算机的发展") {
		t.Fatalf("simplified sample misdetected as traditional")
	}
	if IsHans("軟體與電腦的發展") {
		t.Fatalf("traditional sample misdetected as simplified")
	}
}

func TestIsHansProbabilityNeutralText(t *testing.T) {
	if p := IsHansProbability("hello, world"); p != 0.5 {
		t.Fatalf("text with no convertible phrase should score 0.5, got %f", p)
	}
	if IsHans("hello, world") {
		t.Fatalf("neutral text must not be classified as simplified")
	}
}

func TestInferVariant(t *testing.T) {
	cases := []struct {
		text string
		want Variant
	}{
		{"软件和网络", ZhCN},
		{"軟體與網路", ZhTW},
		{"的士和巴士", ZhHK},
	}
	for _, c := range cases {
		if got := InferVariant(c.text); got != c.want {
			t.Fatalf("InferVariant(%q) = %s, want %s", c.text, got, c.want)
		}
	}
}

func TestInferVariantConfidenceOrdering(t *testing.T) {
	scores := InferVariantConfidence("軟體與網路")
	if len(scores) != 5 {
		t.Fatalf("expected 5 candidates, got %d", len(scores))
	}
	for i := 1; i < len(scores); i++ {
		if scores[i].Confidence > scores[i-1].Confidence {
			t.Fatalf("scores not sorted: %v", scores)
		}
	}
	if top := scores[0].Variant; top != ZhTW && top != ZhHant {
		t.Fatalf("traditional Taiwan sample should rank zh-TW or zh-Hant first, got %s", top)
	}
}
