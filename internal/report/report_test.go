package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MassBabyGeek/StudyHub-backend/internal/gamification"
	model "github.com/MassBabyGeek/StudyHub-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHTML(t *testing.T) {
	joined := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	html, err := RenderHTML(Data{
		User:        model.UserProfile{ID: "u1", Name: "Ada <script>", JoinDate: joined},
		Progress:    gamification.ProgressFor("u1", 33),
		Rank:        &model.UserRank{UserID: "u1", Rank: 2, TotalUsers: 40},
		GeneratedAt: joined.AddDate(0, 6, 0),
	})
	require.NoError(t, err)

	assert.Contains(t, html, "Ada &lt;script&gt;")
	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "Member since 01/03/2026")
	assert.Contains(t, html, "Level 5")
	assert.Contains(t, html, "towards level 6")
	assert.Contains(t, html, "📘")
	assert.Contains(t, html, "Learner")
	assert.Contains(t, html, "#2 of 40")
}

func TestRenderHTMLWithoutRank(t *testing.T) {
	html, err := RenderHTML(Data{
		User:     model.UserProfile{ID: "u1", Name: "Ada"},
		Progress: gamification.ProgressFor("u1", 0),
	})
	require.NoError(t, err)
	assert.NotContains(t, html, "Leaderboard")
	assert.Contains(t, html, "Level 1")
}

func TestRenderWithoutChromium(t *testing.T) {
	r := NewPDFRenderer(time.Second)
	r.lookPath = func(string) (string, error) { return "", errors.New("not found") }

	_, err := r.Render(context.Background(), "<html></html>")
	require.ErrorIs(t, err, ErrPDFDependencyMissing)
	assert.False(t, r.Available())
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "studyhub-progress-u1.pdf", Filename(model.UserProfile{ID: "u1"}))
}
