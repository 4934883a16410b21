package plan

import (
	"strings"
	"testing"
)

func TestWatermarkAppendsDrawtext(t *testing.T) {
	clips, probes := clipsOfDurations(5, 3)

	p := compileForTest(t, clips, probes, Options{Watermark: "© clipmerge"})

	overlays := nodesByFilter(p.Nodes, "drawtext")
	if len(overlays) != 1 {
		t.Fatalf("expected one drawtext node, got %d", len(overlays))
	}
	node := overlays[0]

	if node.Inputs[0] != "outv" {
		t.Fatalf("drawtext reads %q; want outv", node.Inputs[0])
	}
	if p.FinalVideo != "wm" {
		t.Fatalf("final video label = %q; want wm", p.FinalVideo)
	}
	if p.FinalAudio != "outa" {
		t.Fatalf("watermark must not touch audio; final audio = %q", p.FinalAudio)
	}

	for _, expected := range []string{
		"x=w-text_w-24",
		"y=h-text_h-24",
		"fontcolor=white@0.85",
		"box=1",
		"boxcolor=black@0.4",
		"shadowcolor=black@0.6",
	} {
		if !strings.Contains(node.Args, expected) {
			t.Fatalf("drawtext args missing %q: %s", expected, node.Args)
		}
	}

	// The overlay is the last node in the program.
	if last := p.Nodes[len(p.Nodes)-1]; last.Filter != "drawtext" {
		t.Fatalf("last node = %s; want drawtext", last.Filter)
	}
}

func TestWatermarkWithQuotesEmitsParsableArgs(t *testing.T) {
	clips, probes := clipsOfDurations(5, 3)

	p := compileForTest(t, clips, probes, Options{Watermark: "It's 100%, live: now"})

	overlays := nodesByFilter(p.Nodes, "drawtext")
	if len(overlays) != 1 {
		t.Fatalf("expected one drawtext node, got %d", len(overlays))
	}
	args := overlays[0].Args

	if !strings.Contains(args, `text=It\'s 100\%\, live\: now`) {
		t.Fatalf("args missing escaped text: %s", args)
	}
	if strings.Contains(args, "text='") {
		t.Fatalf("text value must not be quoted: %s", args)
	}

	// A quote opens a literal ffmpeg string and cannot itself be quoted,
	// so every quote in the emitted args must be backslash-escaped.
	for i := 0; i < len(args); i++ {
		if args[i] != '\'' {
			continue
		}
		if i == 0 || args[i-1] != '\\' {
			t.Fatalf("unescaped quote at %d in %q", i, args)
		}
	}

	// The options after the text value must stay intact.
	for _, expected := range []string{"fontsize=28", "box=1", "x=w-text_w-24"} {
		if !strings.Contains(args, expected) {
			t.Fatalf("args lost option %q: %s", expected, args)
		}
	}
}

func TestEmptyWatermarkAddsNoNode(t *testing.T) {
	clips, probes := clipsOfDurations(5, 3)

	p := compileForTest(t, clips, probes, Options{Watermark: "   "})
	if n := len(nodesByFilter(p.Nodes, "drawtext")); n != 0 {
		t.Fatalf("blank watermark emitted %d drawtext node(s)", n)
	}
	if p.FinalVideo != "outv" {
		t.Fatalf("final video label = %q; want outv", p.FinalVideo)
	}
}

func TestEscapeTextCoversReservedCharacters(t *testing.T) {
	cases := map[string]string{
		"plain text":       "plain text",
		"a,b":              `a\,b`,
		"12:30":            `12\:30`,
		"it's":             `it\'s`,
		"a;b":              `a\;b`,
		"[tag]":            `\[tag\]`,
		"100%":             `100\%`,
		`back\slash`:       `back\\slash`,
		"Don't Stop, Now:": `Don\'t Stop\, Now\:`,
	}

	for input, want := range cases {
		if got := EscapeText(input); got != want {
			t.Fatalf("EscapeText(%q) = %q; want %q", input, got, want)
		}
	}
}

func TestEscapeTextIsIdempotent(t *testing.T) {
	inputs := []string{
		"Don't Stop, Believin'",
		`already \, escaped \: here`,
		`mixed, raw \; and [escaped\]`,
		`trailing backslash \`,
		"100% plain",
	}

	for _, input := range inputs {
		once := EscapeText(input)
		twice := EscapeText(once)
		if once != twice {
			t.Fatalf("EscapeText not idempotent on %q: %q != %q", input, once, twice)
		}
	}
}

func TestEscapeTextLeavesNoUnescapedReservedChars(t *testing.T) {
	escaped := EscapeText(`quotes ' commas , colons : percent % brackets []`)
	for i := 0; i < len(escaped); i++ {
		if reservedTextChar(escaped[i]) && escaped[i] != '\\' {
			if i == 0 || escaped[i-1] != '\\' {
				t.Fatalf("unescaped %q at %d in %q", escaped[i], i, escaped)
			}
		}
	}
}
