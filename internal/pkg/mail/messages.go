package mail

import (
	"errors"
	"fmt"
	"time"

	"github.com/mip-institute/mip-backend/internal/pkg/config"
	"github.com/mip-institute/mip-backend/internal/pkg/security"
)

// Contact mail categories accepted by the public send endpoint.
const (
	MailTypeHR   = "hr"
	MailTypeInfo = "info"
)

var ErrInvalidMailType = errors.New("invalid mail_type, must be 'hr' or 'info'")

// Messages builds the outgoing mail texts. Texts are customer-facing and in
// Russian, matching the portal this service feeds into.
type Messages struct {
	mailCfg     config.MailConfig
	frontendCfg config.FrontendConfig
}

// NewMessages creates a message builder.
func NewMessages(mailCfg config.MailConfig, frontendCfg config.FrontendConfig) *Messages {
	return &Messages{mailCfg: mailCfg, frontendCfg: frontendCfg}
}

// AccessMessage builds the personal-account access mail sent after a
// confirmed payment. The embedded link carries the signed login token.
func (m *Messages) AccessMessage(email, firstName, lastName string) (subject, body string) {
	link := security.BuildLoginLink(m.frontendCfg.UsersLoginURL, email, firstName, lastName, time.Now())

	subject = "Доступ к Личному кабинету MIP"
	body = fmt.Sprintf(
		"Вы получили доступ к Личному кабинету на сайте mip.institute. \n"+
			"Перейдите по ссылке для его активации: %s \n"+
			"\n"+
			"Логин для входа: %s \n"+
			"Пароль для входа: %s \n"+
			"\n"+
			"\n"+
			"С Уважением, \n"+
			"Команда mip.institute",
		link.URL, email, link.Password,
	)
	return subject, body
}

// ContactMessage builds an inbound contact-form mail and picks its internal
// recipient by category.
func (m *Messages) ContactMessage(mailType, email, name, phone, message string) (recipient, subject, body string, err error) {
	switch mailType {
	case MailTypeHR:
		recipient = m.mailCfg.HREmail
		subject = "Предложение о партнёрстве - Форма обратной связи: хочу стать частью вашей команды"
	case MailTypeInfo:
		recipient = m.mailCfg.InfoEmail
		subject = "Общая информация"
	default:
		return "", "", "", ErrInvalidMailType
	}

	body = fmt.Sprintf(
		"Имя: %s \n"+
			"Телефон: %s \n"+
			"Email: %s \n"+
			"\n"+
			"Сообщение: \n"+
			"%s",
		name, phone, email, message,
	)
	return recipient, subject, body, nil
}
