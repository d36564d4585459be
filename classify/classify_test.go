package classify

import (
	"testing"

	"github.com/dshills/modal/parse"
)

func simple(key string) *parse.Motion {
	return &parse.Motion{Kind: parse.MotionSimple, Key: key}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		m    *parse.Motion
		want Class
	}{
		{"word exclusive", simple("w"), Class{Charwise, false}},
		{"word end inclusive", simple("e"), Class{Charwise, true}},
		{"line end inclusive", simple("$"), Class{Charwise, true}},
		{"down linewise", simple("j"), Class{Linewise, false}},
		{"document end linewise inclusive", simple("G"), Class{Linewise, true}},
		{"unclassified defaults charwise exclusive", simple("h"), Class{Charwise, false}},
		{
			"find char always inclusive",
			&parse.Motion{Kind: parse.MotionChar, Key: "f", Char: "x"},
			Class{Charwise, true},
		},
		{
			"till char always inclusive",
			&parse.Motion{Kind: parse.MotionChar, Key: "t", Char: "x"},
			Class{Charwise, true},
		},
		{
			"search always inclusive",
			&parse.Motion{Kind: parse.MotionSearch, Key: "/", Pattern: "abc"},
			Class{Charwise, true},
		},
		{
			"search repeat always inclusive",
			&parse.Motion{Kind: parse.MotionSearchRepeat, Key: "n"},
			Class{Charwise, true},
		},
		{
			"line mark linewise",
			&parse.Motion{Kind: parse.MotionMark, Key: "'", Style: parse.MarkLine, Mark: "a"},
			Class{Linewise, false},
		},
		{
			"exact mark charwise exclusive",
			&parse.Motion{Kind: parse.MotionMark, Key: "`", Style: parse.MarkExact, Mark: "a"},
			Class{Charwise, false},
		},
		{
			"prefixed looked up by head+tail",
			&parse.Motion{Kind: parse.MotionPrefixed, Key: "gg", Head: "g", Tail: "g"},
			Class{Linewise, false},
		},
		{
			"prefixed inclusive",
			&parse.Motion{Kind: parse.MotionPrefixed, Key: "g_", Head: "g", Tail: "_"},
			Class{Charwise, true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.m); got != tt.want {
				t.Errorf("Classify(%v) = %+v, want %+v", tt.m, got, tt.want)
			}
		})
	}
}

func TestResolveForcedOverride(t *testing.T) {
	tests := []struct {
		name   string
		m      *parse.Motion
		forced parse.ForcedKind
		want   Class
	}{
		{"force line over charwise", simple("w"), parse.ForcedLine, Class{Linewise, false}},
		{"force char over linewise", simple("j"), parse.ForcedChar, Class{Charwise, false}},
		{"force block", simple("w"), parse.ForcedBlock, Class{Blockwise, false}},
		{"no force keeps natural", simple("j"), parse.ForcedNone, Class{Linewise, false}},
		{"force keeps inclusiveness", simple("$"), parse.ForcedLine, Class{Linewise, true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Resolve(tt.m, tt.forced); got != tt.want {
				t.Errorf("Resolve = %+v, want %+v", got, tt.want)
			}
		})
	}
}
