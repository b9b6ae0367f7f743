package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"conduit-tui/internal/entity"
)

func (m Model) View() string {
	switch m.screen {
	case screenLogin:
		return m.loginView()
	case screenArticle:
		return m.articleView()
	case screenSettings:
		return m.settingsView()
	default:
		return m.feedView()
	}
}

// formField renders one labelled input line. Masking replaces each rune
// with an asterisk, one per character rather than one per byte.
func formField(label, value string, focused, masked bool) string {
	if masked {
		value = strings.Repeat("*", utf8.RuneCountInString(value))
	}
	cursor := ""
	if focused {
		cursor = "▌"
	}
	line := fmt.Sprintf("%-10s %s%s", label, value, cursor)
	if focused {
		return selectedStyle.Render(line)
	}
	return line
}

func (m Model) feedView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("conduit"))
	if viewer := m.sess.Viewer(); viewer != nil {
		b.WriteString(dimStyle.Render("  signed in as " + viewer.Username()))
	}
	b.WriteString("\n\n")

	b.WriteString(m.tabsView())
	b.WriteString("\n\n")

	if errors := m.feed.Errors(); len(errors) > 0 {
		for _, e := range errors {
			b.WriteString(errorStyle.Render("! "+e) + "\n")
		}
		b.WriteString(helpStyle.Render("press x to dismiss") + "\n\n")
	}

	articles := m.feed.Articles()
	switch {
	case m.loading:
		b.WriteString(dimStyle.Render("Loading articles...") + "\n")
	case articles.Total == 0:
		b.WriteString(dimStyle.Render("No articles are here... yet.") + "\n")
	default:
		for i, article := range articles.Values {
			b.WriteString(m.articlePreview(article, i == m.cursor))
		}
	}

	if totalPages := articles.TotalPages(); totalPages > 1 {
		b.WriteString("\n" + dimStyle.Render(fmt.Sprintf("page %d/%d", m.page, totalPages)) + "\n")
	}

	if len(m.tags) > 0 {
		b.WriteString("\n" + dimStyle.Render("Popular tags: "))
		for i, tag := range m.tags {
			if i >= 9 {
				break
			}
			b.WriteString(tagStyle.Render(fmt.Sprintf("%d:%s ", i+1, tag)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + helpStyle.Render(m.feedHelp()))
	return b.String()
}

func (m Model) feedHelp() string {
	parts := []string{"j/k move", "h/l page", "tab feed", "enter read", "r refresh", "q quit"}
	if m.feed.CanFavorite() {
		parts = append([]string{"f favorite"}, parts...)
	}
	if m.sess.LoggedIn() {
		parts = append(parts, "s settings", "L logout")
	} else {
		parts = append(parts, "L login")
	}
	return strings.Join(parts, " · ")
}

func (m Model) tabsView() string {
	render := func(label string, active bool) string {
		if active {
			return activeTabStyle.Render(label)
		}
		return tabStyle.Render(label)
	}

	var tabs []string
	tabs = append(tabs, render("Global Feed", m.tab == tabGlobal))
	if m.sess.LoggedIn() {
		tabs = append(tabs, render("Your Feed", m.tab == tabPersonal))
	}
	if m.tab == tabTag {
		tabs = append(tabs, render("#"+m.tag.String(), true))
	}
	return strings.Join(tabs, " ")
}

func (m Model) articlePreview(article entity.Article, selected bool) string {
	var b strings.Builder

	marker := "  "
	titleLine := article.Title
	if selected {
		marker = "> "
		titleLine = selectedStyle.Render(titleLine)
	}

	heart := fmt.Sprintf("♡ %d", article.FavoritesCount)
	if article.Favorited {
		heart = favoritedStyle.Render(fmt.Sprintf("♥ %d", article.FavoritesCount))
	}

	b.WriteString(marker + titleLine + "  " + heart + "\n")
	b.WriteString("  " + dimStyle.Render(article.Author.Username()+" · "+article.CreatedAt.Display()) + "\n")
	b.WriteString("  " + dimStyle.Render(article.Description) + "\n")
	if len(article.TagList) > 0 {
		var tags []string
		for _, tag := range article.TagList {
			tags = append(tags, "#"+tag.String())
		}
		b.WriteString("  " + tagStyle.Render(strings.Join(tags, " ")) + "\n")
	}
	b.WriteString("\n")
	return b.String()
}

func (m Model) articleView() string {
	var b strings.Builder

	for _, e := range m.articleErrors {
		b.WriteString(errorStyle.Render("! "+e) + "\n")
	}

	if m.article == nil {
		b.WriteString(dimStyle.Render("Loading article...") + "\n")
		b.WriteString("\n" + helpStyle.Render("esc back"))
		return b.String()
	}

	article := m.article
	b.WriteString(titleStyle.Render(article.Title) + "\n")

	authorLine := article.Author.Username() + " · " + article.CreatedAt.Display()
	if entity.Followed(article.Author) {
		authorLine += " · following"
	}
	heart := fmt.Sprintf("♡ %d", article.FavoritesCount)
	if article.Favorited {
		heart = favoritedStyle.Render(fmt.Sprintf("♥ %d", article.FavoritesCount))
	}
	b.WriteString(dimStyle.Render(authorLine) + "  " + heart + "\n\n")

	b.WriteString(article.Body + "\n\n")

	b.WriteString(titleStyle.Render("Comments") + "\n")
	if len(m.comments) == 0 {
		b.WriteString(dimStyle.Render("No comments yet.") + "\n")
	}
	for i, comment := range m.comments {
		marker := "  "
		if i == m.commentCursor {
			marker = "> "
		}
		b.WriteString(marker + comment.Body + "\n")
		b.WriteString("  " + dimStyle.Render(comment.Author.Username()+" · "+comment.CreatedAt.Display()) + "\n")
	}

	if m.composing {
		b.WriteString("\n" + "comment: " + m.commentDraft + "▌" + "\n")
		b.WriteString(helpStyle.Render("enter post · esc cancel"))
		return b.String()
	}

	help := []string{"esc back"}
	if m.sess.LoggedIn() {
		help = append(help, "f favorite", "w follow", "c comment", "d delete comment")
	}
	b.WriteString("\n" + helpStyle.Render(strings.Join(help, " · ")))
	return b.String()
}

func (m Model) loginView() string {
	var b strings.Builder
	l := m.login

	if l.mode == modeRegister {
		b.WriteString(titleStyle.Render("Sign up") + "\n\n")
	} else {
		b.WriteString(titleStyle.Render("Sign in") + "\n\n")
	}

	for _, p := range l.problems {
		b.WriteString(errorStyle.Render("! "+p) + "\n")
	}
	if len(l.problems) > 0 {
		b.WriteString("\n")
	}

	idx := 0
	if l.mode == modeRegister {
		b.WriteString(formField("username", l.username, l.focus == idx, false) + "\n")
		idx++
	}
	b.WriteString(formField("email", l.email, l.focus == idx, false) + "\n")
	idx++
	b.WriteString(formField("password", l.password, l.focus == idx, true) + "\n")

	if l.busy {
		b.WriteString("\n" + dimStyle.Render("Submitting...") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("tab next field · enter submit · ctrl+t switch sign in/up · esc cancel"))
	return b.String()
}

func (m Model) settingsView() string {
	var b strings.Builder
	s := m.settings

	b.WriteString(titleStyle.Render("Your Settings") + "\n\n")

	for _, p := range s.problems {
		b.WriteString(errorStyle.Render("! "+p) + "\n")
	}
	if len(s.problems) > 0 {
		b.WriteString("\n")
	}

	if !s.loaded {
		b.WriteString(dimStyle.Render("Loading settings...") + "\n")
		b.WriteString("\n" + helpStyle.Render("esc back"))
		return b.String()
	}

	b.WriteString(formField("image", s.image, s.focus == 0, false) + "\n")
	b.WriteString(formField("username", s.username, s.focus == 1, false) + "\n")
	b.WriteString(formField("bio", s.bio, s.focus == 2, false) + "\n")
	b.WriteString(formField("email", s.email, s.focus == 3, false) + "\n")
	b.WriteString(formField("password", s.password, s.focus == 4, true) + "\n")
	b.WriteString(dimStyle.Render("leave password blank to keep the current one") + "\n")

	if s.busy {
		b.WriteString("\n" + dimStyle.Render("Saving...") + "\n")
	}

	b.WriteString("\n" + helpStyle.Render("tab next field · enter save · esc cancel"))
	return b.String()
}
