package notify

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/gollllden/Done/internal/catalog"
	"github.com/gollllden/Done/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

type CampaignKind string

const (
	CampaignMonday CampaignKind = "monday"
	CampaignFriday CampaignKind = "friday"
)

func (k CampaignKind) Valid() bool {
	return k == CampaignMonday || k == CampaignFriday
}

var ErrNoRecipient = errors.New("notify: recipient email is empty")

var pages = []string{
	"confirmation", "business", "contact", "message", "campaign_monday", "campaign_friday",
}

// Templates renders every outbound email. Each page shares the layout.
type Templates struct {
	business string
	pages    map[string]*template.Template
}

type view struct {
	Subject    string
	Business   string
	Booking    models.Booking
	Name       string
	Email      string
	Topic      string
	CustomerID string
	Paragraphs []string
	Services   []string
}

func NewTemplates(business string) (*Templates, error) {
	base, err := template.ParseFS(templateFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	t := &Templates{business: business, pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		clone, err := base.Clone()
		if err != nil {
			return nil, err
		}
		page, err := clone.ParseFS(templateFS, "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		t.pages[name] = page
	}
	return t, nil
}

func (t *Templates) render(page string, v view) (string, error) {
	v.Business = t.business
	var buf bytes.Buffer
	if err := t.pages[page].ExecuteTemplate(&buf, "layout", v); err != nil {
		return "", fmt.Errorf("render %s: %w", page, err)
	}
	return buf.String(), nil
}

// BookingConfirmation is sent to the customer. Bookings without an email
// yield ErrNoRecipient.
func (t *Templates) BookingConfirmation(b models.Booking) (EmailMessage, error) {
	if strings.TrimSpace(b.Email) == "" {
		return EmailMessage{}, ErrNoRecipient
	}
	subject := t.business + " - Booking Confirmation"
	html, err := t.render("confirmation", view{Subject: subject, Booking: b})
	if err != nil {
		return EmailMessage{}, err
	}
	body := fmt.Sprintf(
		"Hi %s,\n\nYour booking for %s on %s at %s has been received.\nBooking ID: %s\nCustomer ID: %s\n",
		b.Name, b.ServiceName, b.Date, b.Time, b.BookingID, b.CustomerID,
	)
	return EmailMessage{To: b.Email, ToName: b.Name, Subject: subject, Body: body, HTML: html}, nil
}

// BusinessNotification alerts the business inbox about a new booking.
func (t *Templates) BusinessNotification(b models.Booking, to string) (EmailMessage, error) {
	if strings.TrimSpace(to) == "" {
		return EmailMessage{}, ErrNoRecipient
	}
	subject := fmt.Sprintf("New Booking: %s - %s", b.ServiceName, b.Date)
	html, err := t.render("business", view{Subject: subject, Booking: b})
	if err != nil {
		return EmailMessage{}, err
	}
	body := fmt.Sprintf(
		"New booking %s (%s)\n%s on %s at %s\nCustomer: %s, %s, %s\nAddress: %s\n",
		b.BookingID, b.CustomerID, b.ServiceName, b.Date, b.Time, b.Name, b.Phone, b.Email, b.Address,
	)
	return EmailMessage{To: to, Subject: subject, Body: body, HTML: html}, nil
}

type ContactForm struct {
	Name    string
	Email   string
	Subject string
	Message string
}

func (t *Templates) Contact(f ContactForm, to string) (EmailMessage, error) {
	if strings.TrimSpace(to) == "" {
		return EmailMessage{}, ErrNoRecipient
	}
	subject := fmt.Sprintf("New website inquiry from %s: %s", f.Name, f.Subject)
	html, err := t.render("contact", view{
		Subject:    subject,
		Name:       f.Name,
		Email:      f.Email,
		Topic:      f.Subject,
		Paragraphs: paragraphs(f.Message),
	})
	if err != nil {
		return EmailMessage{}, err
	}
	body := fmt.Sprintf("From: %s <%s>\nSubject: %s\n\n%s\n", f.Name, f.Email, f.Subject, f.Message)
	return EmailMessage{To: to, Subject: subject, Body: body, HTML: html}, nil
}

// AdminMessage wraps free text written in the dashboard composer.
func (t *Templates) AdminMessage(to, toName, subject, message, customerID string) (EmailMessage, error) {
	if strings.TrimSpace(to) == "" {
		return EmailMessage{}, ErrNoRecipient
	}
	html, err := t.render("message", view{
		Subject:    subject,
		Name:       toName,
		CustomerID: customerID,
		Paragraphs: paragraphs(message),
	})
	if err != nil {
		return EmailMessage{}, err
	}
	return EmailMessage{To: to, ToName: toName, Subject: subject, Body: message, HTML: html}, nil
}

func (t *Templates) Campaign(kind CampaignKind, to, name string) (EmailMessage, error) {
	if strings.TrimSpace(to) == "" {
		return EmailMessage{}, ErrNoRecipient
	}
	if name == "" {
		name = "Valued Customer"
	}

	var subject, page, body string
	switch kind {
	case CampaignMonday:
		subject = "Start Your Week Fresh - " + t.business
		page = "campaign_monday"
		body = "Start your week fresh! Book any service this week and save 30% with code GOLDY."
	case CampaignFriday:
		subject = "Weekend Ready? Get Your Cleaning Done - " + t.business
		page = "campaign_friday"
		body = "Weekend ready? Book a weekend cleaning and save 30% with code GOLDY."
	default:
		return EmailMessage{}, fmt.Errorf("notify: unknown campaign %q", kind)
	}

	var services []string
	for _, s := range catalog.All() {
		services = append(services, s.Title)
	}
	html, err := t.render(page, view{Subject: subject, Name: name, Services: services})
	if err != nil {
		return EmailMessage{}, err
	}
	return EmailMessage{To: to, ToName: name, Subject: subject, Body: "Hi " + name + ",\n\n" + body, HTML: html}, nil
}

func paragraphs(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
