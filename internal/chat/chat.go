// Package chat готовит переписку и входящие к показу: группировка по дням,
// сторона пузыря, подписи времени.
package chat

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ignatzorin/skill-connector/internal/models"
)

const (
	LabelToday     = "Today"
	LabelYesterday = "Yesterday"

	dayLabelLayout  = "Jan 2"
	timeLabelLayout = "3:04 PM"
	dateLabelLayout = "1/2/2006"
)

// Bubble — одно сообщение в ленте.
type Bubble struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	IsOwn     bool      `json:"is_own"`
	IsRead    bool      `json:"is_read"`
	TimeLabel string    `json:"time_label"`
	SentAt    time.Time `json:"sent_at"`
}

// DayGroup — сообщения одного календарного дня.
type DayGroup struct {
	Label    string   `json:"label"`
	Messages []Bubble `json:"messages"`
}

// Formatter считает календарные дни в заданной зоне относительно now.
type Formatter struct {
	loc *time.Location
	now func() time.Time
}

// NewFormatter создаёт форматтер. nil loc означает time.Local.
func NewFormatter(loc *time.Location) *Formatter {
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{loc: loc, now: time.Now}
}

// WithClock подменяет часы (для тестов и CLI).
func (f *Formatter) WithClock(now func() time.Time) *Formatter {
	cp := *f
	cp.now = now
	return &cp
}

// GroupByDay группирует ленту по дням в порядке появления.
// Сообщения одного дня попадают в одну группу, даже если лента пришла не по порядку.
func (f *Formatter) GroupByDay(messages []models.Message, self uuid.UUID) []DayGroup {
	groups := make([]DayGroup, 0)
	index := make(map[string]int)

	for _, m := range messages {
		sent := m.CreatedAt.In(f.loc)
		key := sent.Format(time.DateOnly)

		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, DayGroup{Label: f.DayLabel(m.CreatedAt.Time), Messages: []Bubble{}})
		}

		groups[i].Messages = append(groups[i].Messages, Bubble{
			ID:        m.ID,
			Text:      m.Message,
			IsOwn:     m.SenderID == self,
			IsRead:    m.IsRead,
			TimeLabel: sent.Format(timeLabelLayout),
			SentAt:    m.CreatedAt.Time,
		})
	}

	return groups
}

// DayLabel возвращает "Today", "Yesterday" или "Jan 2".
func (f *Formatter) DayLabel(t time.Time) string {
	day := truncateDay(t.In(f.loc))
	today := truncateDay(f.now().In(f.loc))

	switch {
	case day.Equal(today):
		return LabelToday
	case day.Equal(today.AddDate(0, 0, -1)):
		return LabelYesterday
	default:
		return day.Format(dayLabelLayout)
	}
}

// TimeLabel возвращает время сообщения как "3:04 PM".
func (f *Formatter) TimeLabel(t time.Time) string {
	return t.In(f.loc).Format(timeLabelLayout)
}

// RelativeLabel — подпись времени во входящих: "Just now", "5m ago", "3h ago",
// "2d ago", а начиная с недели — дата "1/2/2006".
func (f *Formatter) RelativeLabel(t time.Time) string {
	diff := f.now().Sub(t)

	mins := int(diff / time.Minute)
	hours := int(diff / time.Hour)
	days := int(diff / (24 * time.Hour))

	switch {
	case mins < 1:
		return "Just now"
	case mins < 60:
		return strconv.Itoa(mins) + "m ago"
	case hours < 24:
		return strconv.Itoa(hours) + "h ago"
	case days < 7:
		return strconv.Itoa(days) + "d ago"
	default:
		return t.In(f.loc).Format(dateLabelLayout)
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// InboxRow — строка списка диалогов.
type InboxRow struct {
	PartnerID   uuid.UUID `json:"partner_id"`
	PartnerName string    `json:"partner_name"`
	Initial     string    `json:"initial"`
	Preview     string    `json:"preview"`
	TimeLabel   string    `json:"time_label"`
	UnreadCount int       `json:"unread_count"`
	// ShowUnread — бейдж показывается только для входящих непрочитанных.
	ShowUnread bool `json:"show_unread"`
}

// Inbox фильтрует диалоги по имени собеседника (без учёта регистра) и строит строки.
func (f *Formatter) Inbox(conversations []models.ConversationSummary, search string) []InboxRow {
	needle := strings.ToLower(strings.TrimSpace(search))

	rows := make([]InboxRow, 0, len(conversations))
	for _, c := range conversations {
		if needle != "" && !strings.Contains(strings.ToLower(c.PartnerName), needle) {
			continue
		}

		preview := c.LastMessage
		if c.IsSender {
			preview = "You: " + preview
		}

		rows = append(rows, InboxRow{
			PartnerID:   c.PartnerID,
			PartnerName: c.PartnerName,
			Initial:     Initial(c.PartnerName),
			Preview:     preview,
			TimeLabel:   f.RelativeLabel(c.LastMessageTime.Time),
			UnreadCount: c.UnreadCount,
			ShowUnread:  c.UnreadCount > 0 && !c.IsSender,
		})
	}
	return rows
}

// UnreadTotal — сумма непрочитанных входящих.
func UnreadTotal(conversations []models.ConversationSummary) int {
	total := 0
	for _, c := range conversations {
		if !c.IsSender {
			total += c.UnreadCount
		}
	}
	return total
}

// Initial — первая буква имени для аватара.
func Initial(name string) string {
	for _, r := range strings.TrimSpace(name) {
		return strings.ToUpper(string(r))
	}
	return "?"
}
