package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/flashbox/internal/domain"
	"github.com/alexanderramin/flashbox/internal/progress"
	"github.com/alexanderramin/flashbox/internal/session"
)

const masteryBarWidth = 12

// TopicRow is one subtopic line of the topics listing.
type TopicRow struct {
	Topic    domain.TopicKey
	Progress progress.TopicProgress
}

// FormatTopics renders the catalog's subtopics with their mastery bars.
// The unit name is printed once per run of rows.
func FormatTopics(course string, rows []TopicRow) string {
	if len(rows) == 0 {
		return RenderBox(course, Dim("The catalog has no topics."))
	}

	headers := []string{"UNIT", "SUBTOPIC", "CARDS", "MASTERY", "KNOWN"}
	out := make([][]string, 0, len(rows))
	prevUnit := ""
	total := 0
	for _, r := range rows {
		unit := ""
		if r.Topic.Unit != prevUnit {
			unit = Bold(r.Topic.Unit)
			prevUnit = r.Topic.Unit
		}
		p := r.Progress
		total += p.Total()
		known := Dim("not started")
		if p.Started() {
			known = fmt.Sprintf("%d/%d", p.Known, p.Total())
		}
		out = append(out, []string{
			unit,
			r.Topic.Sub,
			strconv.Itoa(p.Total()),
			RenderMasteryBar(p.Known, p.Somewhat, p.Total(), masteryBarWidth),
			known,
		})
	}

	var b strings.Builder
	b.WriteString(RenderTableAligned(headers, out, []int{2}))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%s across %s. Study with: flashbox study --topic \"Unit/Subtopic\"",
		Pluralize(total, "card"), Pluralize(len(rows), "subtopic"))))
	return RenderBox(course, b.String())
}

// FormatBoxCounts renders how many catalog cards sit in each box.
func FormatBoxCounts(course string, counts domain.BoxCounts) string {
	total := counts.Total()
	headers := []string{"BOX", "LEVEL", "CARDS", "SHARE"}
	rows := make([][]string, 0, len(domain.AllBoxes))
	for _, box := range domain.AllBoxes {
		n := counts[box]
		share := 0.0
		if total > 0 {
			share = float64(n) / float64(total)
		}
		rows = append(rows, []string{
			strconv.Itoa(int(box)),
			BoxIndicator(box),
			strconv.Itoa(n),
			RenderProgress(share, 10),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTableAligned(headers, rows, []int{2}))
	if total == 0 {
		b.WriteString("\n" + Dim("No cards in the catalog."))
	} else if counts[domain.BoxUnseen] == total {
		b.WriteString("\n" + Dim("No progress yet. Start with: flashbox study --all"))
	}
	return RenderBox(course+" progress", b.String())
}

// FormatHistory renders recorded sessions, newest first, followed by the
// terms most often rated weak.
func FormatHistory(reports []*domain.SessionReport, weak []domain.TermStat, now time.Time) string {
	if len(reports) == 0 {
		return RenderBox("History", Dim("No sessions recorded yet."))
	}

	headers := []string{"WHEN", "TOPICS", "CARDS", "KNOW WELL", "DURATION"}
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		pct := r.Counts.KnowWellPct()
		rows = append(rows, []string{
			HumanTimestampFrom(r.RecordedAt, now),
			truncate(r.Topics, 40),
			strconv.Itoa(r.Counts.Total()),
			BoxColor(pctBox(pct)).Render(fmt.Sprintf("%d%%", pct)),
			FormatSeconds(r.DurationSeconds),
		})
	}

	var b strings.Builder
	b.WriteString(RenderTableAligned(headers, rows, []int{2, 3}))

	if len(weak) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Needs work"))
		b.WriteString("\n")
		for _, w := range weak {
			b.WriteString(fmt.Sprintf("  %s %s  %s\n",
				BoxColor(w.LastBox).Render("●"),
				Bold(w.Key.Term),
				Dim(fmt.Sprintf("%s / %s, %d of %d weak", w.Key.Unit, w.Key.Sub, w.DontKnow+w.Somewhat, w.Ratings)),
			))
		}
	}
	return RenderBox("History", strings.TrimRight(b.String(), "\n"))
}

// FormatSummary renders the end-of-session result.
func FormatSummary(s session.Summary) string {
	var b strings.Builder
	c := s.Counts
	b.WriteString(fmt.Sprintf("%s  %d\n", StyleRed.Render("Don't Know"), c.DontKnow))
	b.WriteString(fmt.Sprintf("%s    %d\n", StyleYellow.Render("Somewhat"), c.Somewhat))
	b.WriteString(fmt.Sprintf("%s   %d\n", StyleGreen.Render("Know Well"), c.KnowWell))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Know well:"), RenderProgress(float64(s.KnowWellPct)/100, 20)))
	b.WriteString(fmt.Sprintf("%s %s\n", Dim("Time:"), FormatDuration(s.Duration)))
	b.WriteString("\n")
	b.WriteString(Bold(s.Message()))
	if s.WeakCards > 0 {
		b.WriteString("\n")
		b.WriteString(Dim(fmt.Sprintf("%s to review.", Pluralize(s.WeakCards, "weak card"))))
	}
	return RenderBox("Session complete", b.String())
}

// FormatIdentity renders the stored learner identity.
func FormatIdentity(email string) string {
	if email == "" {
		return Dim("No learner identity stored. Set one with: flashbox login EMAIL")
	}
	return fmt.Sprintf("%s %s", Dim("Studying as"), Bold(email))
}

func pctBox(pct int) domain.Box {
	switch {
	case pct >= 75:
		return domain.BoxKnowWell
	case pct >= 50:
		return domain.BoxSomewhat
	default:
		return domain.BoxDontKnow
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
