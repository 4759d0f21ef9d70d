package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/ornakala-backend/config"
	"github.com/oksasatya/ornakala-backend/internal/domain/entity"
	"github.com/oksasatya/ornakala-backend/pkg/mailer"
	tpl "github.com/oksasatya/ornakala-backend/pkg/mailer/templates"
)

// JobPublisher is satisfied by helpers.RabbitPublisher.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Notifier enqueues account notification emails. A nil Notifier, a nil
// publisher or MAIL_SEND_ENABLED=false all turn it into a no-op.
// Password reset tokens are never sent through it.
type Notifier struct {
	Pub    JobPublisher
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewNotifier(pub JobPublisher, cfg *config.Config, logger *logrus.Logger) *Notifier {
	return &Notifier{Pub: pub, Cfg: cfg, Logger: logger}
}

func (n *Notifier) enabled() bool {
	return n != nil && n.Pub != nil && n.Cfg != nil && n.Cfg.MailSendEnabled
}

func (n *Notifier) publish(ctx context.Context, to, template string, data map[string]any) {
	job := mailer.EmailJob{To: to, Template: template, Data: data}
	if err := n.Pub.PublishJSON(ctx, job); err != nil && n.Logger != nil {
		n.Logger.WithError(err).WithField("template", template).Warn("failed to publish email job")
	}
}

func (n *Notifier) Welcome(ctx context.Context, u *entity.User) {
	if !n.enabled() {
		return
	}
	data := tpl.NewWelcomeData(n.Cfg, u.FullName(), u.Email.String(), tpl.WithTime(time.Now()))
	n.publish(ctx, u.Email.String(), tpl.Welcome, data)
}

func (n *Notifier) LoginNotification(ctx context.Context, u *entity.User, ip, userAgent string) {
	if !n.enabled() {
		return
	}
	data := tpl.NewLoginNotificationData(n.Cfg, u.FullName(), u.Email.String(),
		tpl.WithTime(time.Now()),
		tpl.WithIP(ip),
		tpl.WithUserAgent(userAgent),
	)
	n.publish(ctx, u.Email.String(), tpl.LoginNotification, data)
}

func (n *Notifier) ProfileUpdated(ctx context.Context, u *entity.User, changes map[string]string) {
	if !n.enabled() {
		return
	}
	data := tpl.NewProfileUpdatedData(n.Cfg, u.FullName(), u.Email.String(), changes, tpl.WithTime(time.Now()))
	n.publish(ctx, u.Email.String(), tpl.ProfileUpdated, data)
}

func (n *Notifier) KYCSubmitted(ctx context.Context, u *entity.User, k *entity.KYC) {
	if !n.enabled() {
		return
	}
	data := tpl.NewKYCSubmittedData(n.Cfg, k.LegalName, u.Email.String(), string(k.Status), tpl.WithTime(time.Now()))
	n.publish(ctx, u.Email.String(), tpl.KYCSubmitted, data)
}
