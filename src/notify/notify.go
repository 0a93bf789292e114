package notify

import (
	"context"
	"ctoc/src/config"
	"ctoc/src/types"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/google/uuid"
	"github.com/wneessen/go-mail"
)

// Notifier sends one-off messages over sms, whatsapp or email. It is invoked
// by callers after a reservation commits, never inside the booking
// transaction.
type Notifier struct {
	sns  *sns.Client
	mail *mail.Client
	cfg  *config.Config
}

func NewNotifier(snsClient *sns.Client, mailClient *mail.Client, cfg *config.Config) *Notifier {
	return &Notifier{sns: snsClient, mail: mailClient, cfg: cfg}
}

// Send delivers text to a destination over the given channel and returns the
// provider's delivery id.
func (n *Notifier) Send(ctx context.Context, to string, channel types.NotifyChannel, text string) (string, error) {
	switch channel {
	case types.CHANNEL_SMS, types.CHANNEL_WHATSAPP:
		return n.sendSMS(ctx, to, text)
	case types.CHANNEL_EMAIL:
		return n.sendMail(ctx, to, "Welcome to CtoC Broker!", text)
	default:
		return "", fmt.Errorf("unsupported channel: %s", channel)
	}
}

func (n *Notifier) sendSMS(ctx context.Context, to string, text string) (string, error) {
	number := strings.TrimPrefix(to, "whatsapp:")
	input := &sns.PublishInput{
		PhoneNumber: aws.String(number),
		Message:     aws.String(text),
	}
	if n.cfg.SMSFrom != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(n.cfg.SMSFrom),
			},
		}
	}
	output, err := n.sns.Publish(ctx, input)
	if err != nil {
		log.Printf("Error publishing SMS to %s: %s\n", number, err.Error())
		return "", err
	}
	log.Printf("SMS sent: %s\n", *output.MessageId)
	return *output.MessageId, nil
}

func (n *Notifier) sendMail(ctx context.Context, to string, subject string, body string) (string, error) {
	msg := mail.NewMsg()
	if err := msg.From(n.cfg.MailFrom); err != nil {
		log.Printf("Failed to set From address: %s\n", err.Error())
		return "", err
	}
	if err := msg.To(to); err != nil {
		log.Printf("Failed to set To address: %s\n", err.Error())
		return "", err
	}
	messageId := uuid.New().String()
	msg.SetMessageIDWithValue(messageId)
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)
	if err := n.mail.DialAndSendWithContext(ctx, msg); err != nil {
		return "", err
	}
	log.Printf("Email sent: %s\n", messageId)
	return messageId, nil
}
