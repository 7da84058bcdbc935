package services

import (
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/PrayerWall/models"
)

// Mailer is the part of the Resend client used to deliver notices.
type Mailer interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type NoticeOptions struct {
	APIKey     string
	From       string
	Moderators []string
}

// ModerationNoticeService e-mails the moderators whenever an item enters review.
// Without an API key or recipients it stays disabled and sends nothing.
type ModerationNoticeService struct {
	mailer     Mailer
	from       string
	moderators []string
	logger     *slog.Logger
}

func NewModerationNoticeService(opts NoticeOptions, logger *slog.Logger) *ModerationNoticeService {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.APIKey == "" {
		logger.Warn("RESEND_API_KEY not set, moderation notices are disabled")
		return &ModerationNoticeService{logger: logger}
	}
	return NewModerationNoticeServiceWithMailer(resend.NewClient(opts.APIKey).Emails, opts, logger)
}

func NewModerationNoticeServiceWithMailer(mailer Mailer, opts NoticeOptions, logger *slog.Logger) *ModerationNoticeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModerationNoticeService{
		mailer:     mailer,
		from:       opts.From,
		moderators: append([]string{}, opts.Moderators...),
		logger:     logger,
	}
}

// Enabled reports whether notices will actually be sent.
func (s *ModerationNoticeService) Enabled() bool {
	return s != nil && s.mailer != nil && len(s.moderators) > 0
}

// NotifyPending tells the moderators about a newly submitted item.
func (s *ModerationNoticeService) NotifyPending(item models.PrayerItem) error {
	if !s.Enabled() {
		return nil
	}

	subject := fmt.Sprintf("New prayer request #%d awaiting review", item.Prayer_Item_ID)
	if item.Title != nil {
		subject = fmt.Sprintf("New prayer request awaiting review: %s", *item.Title)
	}

	params := &resend.SendEmailRequest{
		From:    s.from,
		To:      s.moderators,
		Subject: subject,
		Html:    pendingNoticeHTML(item),
		Text:    pendingNoticeText(item),
	}

	sent, err := s.mailer.Send(params)
	if err != nil {
		s.logger.Error("failed to send moderation notice", "prayer_id", item.Prayer_Item_ID, "error", err)
		return fmt.Errorf("send moderation notice: %w", err)
	}

	s.logger.Info("moderation notice sent", "prayer_id", item.Prayer_Item_ID, "email_id", sent.Id)
	return nil
}

func pendingNoticeHTML(item models.PrayerItem) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body>
    <h2>Prayer request awaiting review</h2>
    <p><strong>%s</strong> submitted a request on %s.</p>
    <p>%s</p>
    <p>Categories: %s</p>
</body>
</html>`,
		html.EscapeString(item.Author_Name),
		html.EscapeString(item.Submitted_Date),
		html.EscapeString(item.Description),
		html.EscapeString(strings.Join(item.Category, ", ")),
	)
}

func pendingNoticeText(item models.PrayerItem) string {
	return fmt.Sprintf("Prayer request awaiting review\n\n%s submitted a request on %s.\n\n%s\n\nCategories: %s\n",
		item.Author_Name, item.Submitted_Date, item.Description, strings.Join(item.Category, ", "))
}
