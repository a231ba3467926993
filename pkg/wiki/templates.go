package wiki

// Template is one wiki template suggestion.
type Template struct {
	Name        string
	Text        string
	Description string
}

// Templates returns the templates that apply to the two lookups. The
// Japanese result picks the main template; the English edition is only
// mentioned when the Japanese one has no article.
func Templates(ja, en CheckResult) []Template {
	var out []Template

	jaTitle := ja.Resolved()

	switch {
	case !ja.Exists:
		out = append(out, Template{
			Name:        "ウィキペディア無し",
			Text:        "{{ウィキペディア無し}}",
			Description: "日本語版に記事なし",
		})
	case ja.IsDisambiguation:
		out = append(out, Template{
			Name:        "ウィキペディア曖昧さ回避",
			Text:        "{{ウィキペディア曖昧さ回避|" + jaTitle + "}}",
			Description: "曖昧さ回避ページ",
		})
	case ja.IsRedirect:
		out = append(out,
			Template{
				Name:        "ウィキペディア",
				Text:        "{{ウィキペディア|" + jaTitle + "}}",
				Description: "日本語版Wikipedia（リダイレクト解決済み）",
			},
			Template{
				Name:        "ウィキペディア2",
				Text:        "{{ウィキペディア2|" + jaTitle + "}}",
				Description: "記事名と表示名が異なる場合",
			},
		)
	default:
		out = append(out, Template{
			Name:        "ウィキペディア",
			Text:        "{{ウィキペディア|" + jaTitle + "}}",
			Description: "日本語版Wikipediaリンク",
		})
	}

	if en.Exists && !ja.Exists {
		out = append(out, Template{
			Name:        "ウィキペディア英語版",
			Text:        "{{ウィキペディア英語版|" + en.Resolved() + "}}",
			Description: "英語版のみに存在",
		})
	}

	return out
}

// Templates returns the templates for b. A failed side contributes nothing:
// without the Japanese result no template is chosen, and without the English
// result the English-only template is skipped.
func (b Both) Templates() []Template {
	if b.JAErr != nil {
		return nil
	}

	en := b.EN
	if b.ENErr != nil {
		en = CheckResult{Lang: English}
	}

	return Templates(b.JA, en)
}
