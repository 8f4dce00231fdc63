package mailer

import (
	"errors"
	"fmt"
	"os"

	"github.com/matcornic/hermes/v2"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

var ErrNotConfigured = errors.New("mailer: SENDGRID_API_KEY not set")

func product() hermes.Hermes {
	return hermes.Hermes{
		Product: hermes.Product{
			Name: "PawsGram",
			Link: os.Getenv("APP_URL"),
		},
	}
}

// SendPasswordReset emails a reset link carrying the one-shot token.
func SendPasswordReset(toEmail, toName, token string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return ErrNotConfigured
	}

	resetURL := fmt.Sprintf("%s/password/reset?token=%s", os.Getenv("APP_URL"), token)

	email := hermes.Email{
		Body: hermes.Body{
			Name: toName,
			Intros: []string{
				"You have received this email because a password reset request for your PawsGram account was received.",
			},
			Actions: []hermes.Action{
				{
					Instructions: "Click the button below to reset your password. The link expires in one hour.",
					Button: hermes.Button{
						Text: "Reset your password",
						Link: resetURL,
					},
				},
			},
			Outros: []string{
				"If you did not request a password reset, no further action is required on your part.",
			},
		},
	}

	h := product()
	htmlBody, err := h.GenerateHTML(email)
	if err != nil {
		return fmt.Errorf("render reset email: %w", err)
	}
	textBody, err := h.GeneratePlainText(email)
	if err != nil {
		return fmt.Errorf("render reset email: %w", err)
	}

	from := mail.NewEmail("PawsGram", os.Getenv("MAIL_FROM"))
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, "Reset your PawsGram password", to, textBody, htmlBody)

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("send reset email: sendgrid status %d", response.StatusCode)
	}
	return nil
}
