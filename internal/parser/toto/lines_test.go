package toto

import (
	"reflect"
	"testing"
)

const testMarkup = `<html><head>
<script>var x = "script noise";</script>
<style>.a { color: red; }</style>
</head><body>
<nav><span>Alles</span></nav>
<h2>  Race   Winner </h2>
<div><p>Verstappen, Max</p><p>1,50</p></div>
<noscript>Enable JavaScript</noscript>
</body></html>`

func TestExtractTextLines(t *testing.T) {
	lines, err := ExtractTextLines(testMarkup, false)
	if err != nil {
		t.Fatalf("ExtractTextLines: %v", err)
	}
	want := []string{"Alles", "Race Winner", "Verstappen, Max", "1,50", "Enable JavaScript"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}

func TestExtractTextLinesDropNoscript(t *testing.T) {
	lines, err := ExtractTextLines(testMarkup, true)
	if err != nil {
		t.Fatalf("ExtractTextLines: %v", err)
	}
	for _, l := range lines {
		if l == "Enable JavaScript" {
			t.Errorf("noscript content leaked into lines: %v", lines)
		}
	}
}

func TestExtractTextLinesSplitsTextNodes(t *testing.T) {
	lines, err := ExtractTextLines("<p>one\ntwo</p>", false)
	if err != nil {
		t.Fatalf("ExtractTextLines: %v", err)
	}
	want := []string{"one", "two"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("lines = %v, want %v", lines, want)
	}
}
