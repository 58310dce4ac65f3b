package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// AlertData fills the business alert template.
type AlertData struct {
	CompanyName  string
	Name         string
	Email        string
	Phone        string
	Service      string
	Message      string
	SubmissionID string
	SubmittedAt  string
}

// AutoReplyData fills the customer acknowledgment template.
type AutoReplyData struct {
	CompanyName    string
	Tagline        string
	FirstName      string
	Service        string
	WebsiteURL     string
	SupportEmail   string
	SupportPhone   string
	WhatsAppURL    string
	ResponseWindow string
}

const alertTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>New Contact Form Submission</title></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #86a788; border-bottom: 2px solid #86a788; padding-bottom: 10px;">New Contact Form Submission</h2>
    <div style="background-color: #f9f9f9; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <h3 style="color: #333; margin-top: 0;">Contact Details</h3>
        <p><strong>Name:</strong> {{.Name}}</p>
        <p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
        <p><strong>Phone:</strong> {{.Phone}}</p>
        <p><strong>Service Interest:</strong> {{.Service}}</p>
        <p><strong>Reference:</strong> {{.SubmissionID}}</p>
    </div>
    <div style="background-color: #fff; padding: 20px; border-left: 4px solid #86a788; margin: 20px 0;">
        <h3 style="color: #333; margin-top: 0;">Message</h3>
        <p style="white-space: pre-wrap;">{{.Message}}</p>
    </div>
    <hr style="border: none; border-top: 1px solid #ddd; margin: 30px 0;">
    <p style="color: #666; font-size: 12px; text-align: center;">
        This email was sent from the {{.CompanyName}} contact form at {{.SubmittedAt}}
    </p>
</body>
</html>`

const autoReplyTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Thank You for Your Inquiry</title></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #86a788; border-bottom: 2px solid #86a788; padding-bottom: 10px;">Thank You for Your Inquiry</h2>
    <p>Dear {{.FirstName}},</p>
    <p>Thank you for reaching out to {{.CompanyName}}! We have received your inquiry regarding <strong>{{.Service}}</strong> and appreciate your interest in our services.</p>
    <div style="background-color: #f9f9f9; padding: 20px; border-radius: 8px; margin: 20px 0;">
        <h3 style="color: #333; margin-top: 0;">What's Next?</h3>
        <ul style="color: #555;">
            <li>Our team will review your requirements within {{.ResponseWindow}}</li>
            <li>We'll prepare a customized solution proposal</li>
            <li>A project specialist will contact you to discuss next steps</li>
        </ul>
    </div>
    <p>In the meantime, feel free to explore our services or contact us directly:</p>
    <p>Email: <a href="mailto:{{.SupportEmail}}">{{.SupportEmail}}</a></p>
    <p>Phone: {{.SupportPhone}}</p>
    {{- if .WhatsAppURL}}
    <p>WhatsApp: <a href="{{.WhatsAppURL}}">Chat with us</a></p>
    {{- end}}
    {{- if .WebsiteURL}}
    <p>Website: <a href="{{.WebsiteURL}}">{{.WebsiteURL}}</a></p>
    {{- end}}
    <p>Best regards,<br><strong>The {{.CompanyName}} Team</strong></p>
    <hr style="border: none; border-top: 1px solid #ddd; margin: 30px 0;">
    <p style="color: #666; font-size: 12px; text-align: center;">{{.CompanyName}}{{if .Tagline}} | {{.Tagline}}{{end}}</p>
</body>
</html>`

var templates = template.Must(
	template.Must(template.New("alert").Parse(alertTemplate)).
		New("auto_reply").Parse(autoReplyTemplate),
)

// RenderAlert renders the business alert body. Values are HTML-escaped.
func RenderAlert(data AlertData) (string, error) {
	return render("alert", data)
}

// RenderAutoReply renders the customer acknowledgment body.
func RenderAutoReply(data AutoReplyData) (string, error) {
	return render("auto_reply", data)
}

func render(name string, data any) (string, error) {
	var body bytes.Buffer
	if err := templates.ExecuteTemplate(&body, name, data); err != nil {
		return "", fmt.Errorf("failed to execute %s template: %w", name, err)
	}
	return body.String(), nil
}
