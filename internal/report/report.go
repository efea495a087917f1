// Package report produit le bilan de progression d'un utilisateur (HTML puis PDF).
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/MassBabyGeek/StudyHub-backend/internal/gamification"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
)

// Data contenu du bilan
type Data struct {
	User        model.UserProfile
	Progress    gamification.Progress
	Rank        *model.UserRank
	GeneratedAt time.Time
}

var progressTemplate = template.Must(template.New("progress").Funcs(template.FuncMap{
	"percent": func(v float64) string { return fmt.Sprintf("%.0f%%", v) },
	"date":    func(t time.Time) string { return t.Format("02/01/2006") },
	"inc":     func(v int) int { return v + 1 },
}).Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.User.Name}} - StudyHub</title>
<style>
  body { font-family: Helvetica, Arial, sans-serif; color: #1f2933; margin: 0; }
  h1 { font-size: 22pt; margin-bottom: 4pt; }
  .muted { color: #7b8794; font-size: 10pt; }
  .trophy { font-size: 40pt; }
  .bar { background: #e4e7eb; border-radius: 6px; height: 14px; width: 100%; }
  .fill { background: #3ebd93; border-radius: 6px; height: 14px; }
  table { border-collapse: collapse; margin-top: 16pt; width: 100%; }
  td { border-bottom: 1px solid #e4e7eb; padding: 6pt 0; }
</style>
</head>
<body>
  <h1>{{.User.Name}}</h1>
  <div class="muted">Member since {{date .User.JoinDate}} · generated {{date .GeneratedAt}}</div>

  <p><span class="trophy">{{.Progress.Rank.Trophy}}</span> {{.Progress.Rank.Title}}</p>

  <div class="bar"><div class="fill" style="width: {{percent .Progress.Percent}}"></div></div>
  <p>Level {{.Progress.Level}} · {{percent .Progress.Percent}} towards level {{.Progress.Level | inc}}</p>

  <table>
    <tr><td>Score</td><td>{{.Progress.Score}}</td></tr>
    <tr><td>Next level at</td><td>{{.Progress.NextLevelAt}}</td></tr>
    <tr><td>Points to go</td><td>{{.Progress.PointsToLevel}}</td></tr>
    {{- with .Rank}}
    <tr><td>Leaderboard</td><td>#{{.Rank}} of {{.TotalUsers}}</td></tr>
    {{- end}}
  </table>
</body>
</html>
`))

// RenderHTML applique le gabarit du bilan
func RenderHTML(data Data) (string, error) {
	var buf bytes.Buffer
	if err := progressTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render progress report: %w", err)
	}
	return buf.String(), nil
}

// Filename nom du PDF téléchargé
func Filename(user model.UserProfile) string {
	return fmt.Sprintf("studyhub-progress-%s.pdf", user.ID)
}
