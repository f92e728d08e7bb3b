package mail

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"os_age_reporter/config"
	"os_age_reporter/throttle"
)

// MailDialer allows mocking gomail.Dialer
type MailDialer interface {
	DialAndSend(...*gomail.Message) error
}

// NewDialer constructs the real gomail dialer. gomail upgrades the connection
// with STARTTLS when the server offers it and logs in with the configured
// credentials.
func NewDialer(cfg *config.AppConfig) MailDialer {
	return gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
}

// DeliveryError wraps any failure to hand the report to the SMTP server.
type DeliveryError struct {
	Err error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("failed to send email: %v", e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Dispatcher emails the report and records successful deliveries.
type Dispatcher struct {
	cfg    *config.AppConfig
	dialer MailDialer
	store  *throttle.Store
	log    *zap.SugaredLogger
	out    io.Writer
	now    func() time.Time
}

func NewDispatcher(cfg *config.AppConfig, dialer MailDialer, store *throttle.Store, log *zap.SugaredLogger, out io.Writer) *Dispatcher {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if out == nil {
		out = io.Discard
	}
	return &Dispatcher{
		cfg:    cfg,
		dialer: dialer,
		store:  store,
		log:    log,
		out:    out,
		now:    time.Now,
	}
}

// SetClock replaces the time source used to stamp successful deliveries.
func (d *Dispatcher) SetClock(now func() time.Time) {
	d.now = now
}

func (d *Dispatcher) buildMessage(body string) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("Subject", d.cfg.EmailSubject)
	m.SetHeader("From", d.cfg.EmailSender)
	m.SetHeader("To", d.cfg.EmailRecipient...)
	m.SetBody("text/plain", body)
	return m
}

// SendReport delivers body to the configured recipients. Every failure comes
// back as a *DeliveryError and leaves the throttle file untouched.
func (d *Dispatcher) SendReport(body string) error {
	if err := d.cfg.Require(config.AllKeys...); err != nil {
		return &DeliveryError{Err: err}
	}

	if err := d.dialer.DialAndSend(d.buildMessage(body)); err != nil {
		return &DeliveryError{Err: err}
	}

	fmt.Fprintln(d.out, "Email sent successfully!")
	d.log.Infow("report emailed",
		"server", d.cfg.SMTPHost,
		"port", d.cfg.SMTPPort,
		"recipients", len(d.cfg.EmailRecipient),
	)

	// The mail is out, so this is not a DeliveryError; the next run sends again.
	if err := d.store.RecordSent(d.now()); err != nil {
		fmt.Fprintf(d.out, "Error: Failed to send email. %v\n", err)
		d.log.Warnw("could not record delivery time", "path", d.store.Path, "error", err)
	}
	return nil
}

// CheckAndSend sends body unless a delivery was recorded within the throttle
// window. Delivery failures are reported and swallowed. It returns true when
// the email went out.
func (d *Dispatcher) CheckAndSend(body string, now time.Time) bool {
	if !d.store.ShouldSend(now) {
		fmt.Fprintln(d.out, "Skipping email: An email has been sent in the last 24 hours.")
		d.log.Debugw("delivery throttled", "path", d.store.Path)
		return false
	}

	fmt.Fprintln(d.out, "Attempting to send email...")
	if err := d.SendReport(body); err != nil {
		cause := err
		var derr *DeliveryError
		if errors.As(err, &derr) {
			cause = derr.Err
		}
		fmt.Fprintf(d.out, "Error: Failed to send email. %v\n", cause)
		d.log.Errorw("report delivery failed", "server", d.cfg.SMTPHost, "error", cause)
		return false
	}
	return true
}
