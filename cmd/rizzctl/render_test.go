package main

import (
	"strings"
	"testing"

	"github.com/rizzcalc/rizz-web/internal/logic"
	"github.com/rizzcalc/rizz-web/internal/models"
)

func TestRenderResult(t *testing.T) {
	tests := []struct {
		name  string
		res   models.AnalysisResult
		share string
		want  []string
		not   []string
	}{
		{
			name:  "W with meme",
			res:   models.AnalysisResult{Score: 70, Suggestions: []string{"Ask more questions"}, Reasoning: "Confident"},
			share: "https://rizz.example.com/share?url=x",
			want:  []string{"70/100", "W RIZZ", "Ask more questions", "Confident", "https://rizz.example.com/share?url=x"},
		},
		{
			name: "L without meme",
			res:  models.AnalysisResult{Score: 12},
			want: []string{"12/100", "L RIZZ"},
			not:  []string{"Share:", "Feedback"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, vintage := range []bool{false, true} {
				out := renderResult(newStyles(vintage), tt.res, tt.share)
				for _, w := range tt.want {
					if !strings.Contains(out, w) {
						t.Errorf("vintage=%v: output missing %q", vintage, w)
					}
				}
				for _, n := range tt.not {
					if strings.Contains(out, n) {
						t.Errorf("vintage=%v: output should not contain %q", vintage, n)
					}
				}
			}
		})
	}
}

func TestRenderLeaderboard(t *testing.T) {
	if out := renderLeaderboard(newStyles(false), nil); !strings.Contains(out, "No scores yet") {
		t.Errorf("empty leaderboard = %q", out)
	}

	entries := logic.Rank([]models.LeaderboardEntry{
		{Nickname: "casanova", AvgRizz: 91, TotalScores: 3},
		{Nickname: "", AvgRizz: 50},
	})
	out := renderLeaderboard(newStyles(false), entries)
	for _, want := range []string{"casanova", "91/100", "3 scores", "Anonymous", "50/100"} {
		if !strings.Contains(out, want) {
			t.Errorf("leaderboard missing %q", want)
		}
	}
}

func TestNewRootCmd(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"analyze", "leaderboard", "share", "theme"} {
		if _, _, err := root.Find([]string{name}); err != nil {
			t.Errorf("missing subcommand %q: %v", name, err)
		}
	}
}

func TestShareCmd(t *testing.T) {
	root := newRootCmd()
	var out strings.Builder
	root.SetOut(&out)
	root.SetArgs([]string{"share", "--origin", "https://rizz.example.com", "http://memes.example.com/m.png"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	want := "https://rizz.example.com/share?url=https%3A%2F%2Fmemes.example.com%2Fm.png\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestThemeCmd(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	run := func(args ...string) string {
		root := newRootCmd()
		var out strings.Builder
		root.SetOut(&out)
		root.SetArgs(append([]string{"theme"}, args...))
		if err := root.Execute(); err != nil {
			t.Fatalf("theme %v: %v", args, err)
		}
		return out.String()
	}

	if out := run(); !strings.HasPrefix(out, "vintage theme: off") {
		t.Errorf("default = %q", out)
	}
	if out := run("toggle"); !strings.HasPrefix(out, "vintage theme: on") {
		t.Errorf("after toggle = %q", out)
	}
	if out := run(); !strings.HasPrefix(out, "vintage theme: on") {
		t.Errorf("toggle should persist, got %q", out)
	}
	if out := run("off"); !strings.HasPrefix(out, "vintage theme: off") {
		t.Errorf("after off = %q", out)
	}
}
