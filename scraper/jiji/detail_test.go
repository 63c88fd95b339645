package jiji

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func docFrom(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestFilterImageURLs(t *testing.T) {
	doc := docFrom(t, `
		<html><body>
			<img src="https://cdn.example.com/a.jpg?crop=1">
			<img src="https://cdn.example.com/b.jpg">
			<img src="https://cdn.example.com/a.jpg">
			<img src="https://cdn.example.com/badge-top-seller.png">
			<img src="https://cdn.example.com/placeholder.png">
			<img src="https://cdn.example.com/icon.svg">
			<img src="data:image/gif;base64,R0lGOD">
			<img src="http://cdn.example.com/insecure.jpg">
			<img alt="no source">
		</body></html>`)

	got := filterImageURLs(doc)
	want := []string{
		"https://cdn.example.com/a.jpg",
		"https://cdn.example.com/b.jpg",
	}

	if len(got) != len(want) {
		t.Fatalf("urls = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("urls = %v; want %v", got, want)
		}
	}
}

func TestFilterImageURLsEmptyPage(t *testing.T) {
	doc := docFrom(t, `<html><body><p>nothing here</p></body></html>`)
	if got := filterImageURLs(doc); len(got) != 0 {
		t.Errorf("urls = %v; want none", got)
	}
}
