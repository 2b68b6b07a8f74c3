package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/backendgen/backendgen/internal/core/project"
	"github.com/backendgen/backendgen/internal/defs"
	"github.com/backendgen/backendgen/internal/ui"
	"github.com/backendgen/backendgen/pkg/models"
)

func renderInfoCard(t *ui.Theme, msg string) string {
	return t.Card.Render(t.Primary.Render(msg))
}

func renderWarningCard(t *ui.Theme, msg string) string {
	return t.Card.Render(t.SymWarning() + " " + msg)
}

// targetNotice says where the project goes and whether the directory is new.
func targetNotice(target *project.Target) string {
	where := target.Dir
	if target.InPlace {
		where = "the current directory"
	}
	switch {
	case target.Created:
		return "Creating " + where
	case target.NonEmpty:
		return "Scaffolding into non-empty " + where
	default:
		return "Scaffolding into " + where
	}
}

// shellQuote single-quotes s unless every character is safe in a POSIX shell word.
func shellQuote(s string) string {
	safe := s != "" && !strings.ContainsFunc(s, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return false
		}
		return !strings.ContainsRune("@%+=:,./_-", r)
	})
	if safe {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// renderSummary lists what the run wrote, kept and warned about.
func renderSummary(t *ui.Theme, r *project.Result) string {
	lines := []string{
		t.SymSuccess() + " " + t.Bold.Render("Project ready: "+r.PackageName),
		t.Muted.Render(r.Dir),
		"",
		fmt.Sprintf("%s %d files written", t.SymSuccess(), len(r.Written)),
	}
	if len(r.Skipped) > 0 {
		lines = append(lines, fmt.Sprintf("%s %d existing files kept", t.SymProgress(), len(r.Skipped)))
		for _, p := range r.Skipped {
			lines = append(lines, "    "+t.Muted.Render(p))
		}
	}
	lines = append(lines,
		fmt.Sprintf("%s %d dependencies, %d dev dependencies", t.SymSuccess(), len(r.Runtime), len(r.Dev)),
	)
	if r.ORMInitialized {
		lines = append(lines, t.SymSuccess()+" prisma initialized")
	}
	for _, w := range r.Warnings {
		lines = append(lines, t.SymWarning()+" "+t.Warn.Render(w))
	}
	return t.Card.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// nextStepsMarkdown builds the follow-up instructions for a generated project.
func nextStepsMarkdown(target *project.Target, a models.AnswerSet, manager string) string {
	var b strings.Builder
	b.WriteString("## Next steps\n\n```sh\n")
	if !target.InPlace {
		fmt.Fprintf(&b, "cd %s\n", shellQuote(a.ProjectName()))
	}
	if a.Database().UsesORM() {
		fmt.Fprintf(&b, "%s run prisma:migrate\n", manager)
	}
	fmt.Fprintf(&b, "%s run dev\n", manager)
	b.WriteString("```\n\n")

	switch a.Database() {
	case models.DatabasePrisma:
		fmt.Fprintf(&b, "- Set `DATABASE_URL` in `%s` to your PostgreSQL connection string.\n", defs.DotEnv)
	case models.DatabaseMongoose:
		fmt.Fprintf(&b, "- Set `MONGO_URI` in `%s` to your MongoDB connection string.\n", defs.DotEnv)
	}
	if a.JSONWebToken() {
		fmt.Fprintf(&b, "- Replace `JWT_SECRET` in `%s` before deploying.\n", defs.DotEnv)
	}
	if a.Express() {
		b.WriteString("- Check the server with `GET /health`.\n")
	}
	return b.String()
}

// renderNextSteps renders nextStepsMarkdown with glamour. Rendering errors
// fall back to the raw markdown.
func renderNextSteps(t *ui.Theme, target *project.Target, a models.AnswerSet, manager string) string {
	md := nextStepsMarkdown(target, a, manager)

	style := glamour.WithAutoStyle()
	if t.NoColor {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(80))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
