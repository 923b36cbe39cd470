// Package view はHTMLページの描画を担います。
// ハンドラーは構造化されたデータだけを渡し、マークアップはここで組み立てます。
package view

import (
	"html/template"
	"net/url"
	"strconv"
)

// テンプレート名
const (
	Signup     = "signup.html"
	Login      = "login.html"
	Registered = "registered.html"
	Welcome    = "welcome.html"
	Catalog    = "catalog.html"
	Exercise   = "exercise.html"
)

// WelcomeData はログイン後ページの表示内容です。
type WelcomeData struct {
	Name string
}

// ExerciseCard は一覧・詳細に表示する1件分の種目です。
type ExerciseCard struct {
	ID           string
	Name         string
	Level        string
	Equipment    string
	Muscles      string
	Instructions string
	Image        string
}

// PageLink はページ送りのリンクです。
type PageLink struct {
	Number int
	URL    string
	Active bool
}

// CatalogData は一覧ページの表示内容です。
type CatalogData struct {
	Exercises   []ExerciseCard
	Search      string
	CurrentPage int
	TotalPages  int
	Pages       []PageLink
}

// ExerciseData は詳細ページの表示内容です。
type ExerciseData struct {
	Exercises []ExerciseCard
}

// PageLinks は 1..totalPages のリンクを作ります。検索語があれば引き継ぎます。
func PageLinks(search string, currentPage, totalPages int) []PageLink {
	links := make([]PageLink, 0, totalPages)
	for page := 1; page <= totalPages; page++ {
		q := url.Values{}
		if search != "" {
			q.Set("search", search)
		}
		q.Set("page", strconv.Itoa(page))
		links = append(links, PageLink{
			Number: page,
			URL:    "/?" + q.Encode(),
			Active: page == currentPage,
		})
	}
	return links
}

// ImagePath は画像の相対パスを配信URLに変換します。
func ImagePath(rel string) string {
	if rel == "" {
		return ""
	}
	return "/exercises/" + rel
}

// Templates は全ページのテンプレートを返します。
func Templates() *template.Template {
	t := template.New("pages")
	for name, body := range pages {
		template.Must(t.New(name).Parse(body))
	}
	return t
}
