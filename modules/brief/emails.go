package brief

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/a-h/templ"

	"github.com/stroomai/leadgen/pkg/sanitizer"
)

type alertData struct {
	Submission Submission
	SiteName   string
	ReceivedAt time.Time
}

type confirmationData struct {
	Name           string
	SiteName       string
	ResponseWindow string
	Submission     Submission
}

func operatorSubject(s Submission) string {
	tag := s.Contact.Company
	if tag == "" {
		tag = string(s.Project.Stage)
	}
	return sanitizer.SingleLine(fmt.Sprintf("New project brief: %s (%s)", s.Contact.Name, tag))
}

func confirmationSubject(siteName string) string {
	return sanitizer.SingleLine("We received your project brief - " + siteName)
}

func mailtoLink(address, subject string) string {
	return "mailto:" + url.PathEscape(address) + "?subject=" + url.PathEscape(subject)
}

type row struct{ label, value string }

func briefRows(s Submission) []row {
	company := s.Contact.Company
	if company == "" {
		company = "Not provided"
	}
	return []row{
		{"Name", s.Contact.Name},
		{"Email", s.Contact.Email},
		{"Company", company},
		{"Stage", s.Project.Stage.Label()},
		{"Timeline", s.Project.Timeline.Label()},
		{"Data", s.Technical.DataAvailability.Label()},
		{"Deliverables", s.Technical.ExpectedDeliverables},
		{"Engagement", s.Engagement.Model.Label()},
		{"Budget", s.Engagement.BudgetRange.Label()},
	}
}

// errWriter keeps the first write error so templates can write unchecked.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) printf(format string, args ...any) {
	if e.err != nil {
		return
	}
	_, e.err = fmt.Fprintf(e.w, format, args...)
}

func esc(s string) string { return sanitizer.EscapeHTML(s) }

func operatorAlertHTML(d alertData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		s := d.Submission
		ew := &errWriter{w: w}
		reply := mailtoLink(s.Contact.Email, "Re: your project brief")

		ew.printf(`<!doctype html><html><body style="font-family:sans-serif;color:#111">`)
		ew.printf(`<h2>New project brief from %s</h2>`, esc(s.Contact.Name))
		ew.printf(`<p>Received %s via %s.</p>`, esc(d.ReceivedAt.UTC().Format(time.RFC1123)), esc(d.SiteName))
		ew.printf(`<table cellpadding="6" style="border-collapse:collapse">`)
		for _, r := range briefRows(s) {
			ew.printf(`<tr><th align="left" style="border-bottom:1px solid #ddd">%s</th><td style="border-bottom:1px solid #ddd">%s</td></tr>`,
				esc(r.label), esc(r.value))
		}
		ew.printf(`</table>`)
		ew.printf(`<h3>Project description</h3><p style="white-space:pre-wrap">%s</p>`, esc(s.Project.Description))
		ew.printf(`<p><a href="%s">Reply to %s</a></p>`, esc(reply), esc(s.Contact.Name))
		ew.printf(`</body></html>`)
		return ew.err
	})
}

func operatorAlertText(d alertData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		s := d.Submission
		ew := &errWriter{w: w}

		ew.printf("New project brief from %s\n", s.Contact.Name)
		ew.printf("Received %s via %s.\n\n", d.ReceivedAt.UTC().Format(time.RFC1123), d.SiteName)
		for _, r := range briefRows(s) {
			ew.printf("%-13s %s\n", r.label+":", r.value)
		}
		ew.printf("\nProject description:\n%s\n\n", s.Project.Description)
		ew.printf("Reply: %s\n", mailtoLink(s.Contact.Email, "Re: your project brief"))
		return ew.err
	})
}

func confirmationHTML(d confirmationData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.printf(`<!doctype html><html><body style="font-family:sans-serif;color:#111">`)
		ew.printf(`<p>Hi %s,</p>`, esc(d.Name))
		ew.printf(`<p>Thanks for sending us your project brief. We review every submission personally and will get back to you within %s.</p>`,
			esc(d.ResponseWindow))
		ew.printf(`<p>For your records, here is what you told us:</p><ul>`)
		for _, r := range briefRows(d.Submission) {
			ew.printf(`<li><strong>%s:</strong> %s</li>`, esc(r.label), esc(r.value))
		}
		ew.printf(`</ul><p>If anything changes, just reply to this email.</p>`)
		ew.printf(`<p>The %s team</p></body></html>`, esc(d.SiteName))
		return ew.err
	})
}

func confirmationText(d confirmationData) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		ew := &errWriter{w: w}
		ew.printf("Hi %s,\n\n", d.Name)
		ew.printf("Thanks for sending us your project brief. We review every submission personally and will get back to you within %s.\n\n", d.ResponseWindow)
		ew.printf("For your records, here is what you told us:\n")
		var b strings.Builder
		for _, r := range briefRows(d.Submission) {
			fmt.Fprintf(&b, "  %s: %s\n", r.label, r.value)
		}
		ew.printf("%s\nIf anything changes, just reply to this email.\n\nThe %s team\n", b.String(), d.SiteName)
		return ew.err
	})
}
