package lib

import (
	"ctoc/src/config"
	"log"
	"strconv"

	"github.com/wneessen/go-mail"
)

func NewSMTPClient(cfg *config.Config) (*mail.Client, error) {
	port, err := strconv.Atoi(cfg.SMTPPort)
	if err != nil {
		port = 587
	}
	c, err := mail.NewClient(
		cfg.SMTPHost,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUsername),
		mail.WithPassword(cfg.SMTPPassword),
	)
	if err != nil {
		log.Printf("Could not initialize smtp client: %s\n", err.Error())
		return nil, err
	}
	return c, nil
}
