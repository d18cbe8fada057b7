// Copyright (c) IdRelay
// SPDX-License-Identifier: Apache-2.0

// Package email delivers operator notifications over SMTP.
package email

import (
	"bytes"
	"net/mail"
	"strconv"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/idrelay/idrelay/pkg/errors"
)

var (
	errMissingTemplate = errors.New("missing e-mail template file")
	errParseTemplate   = errors.New("parse e-mail template failed")
	errExecTemplate    = errors.New("execute e-mail template failed")
	errSendMail        = errors.New("sending e-mail failed")
)

type email struct {
	To      []string
	From    string
	Subject string
	Header  string
	Content string
	Footer  string
}

// Config is the SMTP agent configuration.
type Config struct {
	Host        string `env:"HOST"         envDefault:"localhost"`
	Port        string `env:"PORT"         envDefault:"25"`
	Username    string `env:"USERNAME"     envDefault:""`
	Password    string `env:"PASSWORD"     envDefault:""`
	FromAddress string `env:"FROM_ADDRESS" envDefault:""`
	FromName    string `env:"FROM_NAME"    envDefault:""`
	Template    string `env:"TEMPLATE"     envDefault:"email.tmpl"`
}

// Agent sends templated mail.
type Agent struct {
	conf *Config
	tmpl *template.Template
	dial *gomail.Dialer
}

// New creates a new mail agent.
func New(c *Config) (*Agent, error) {
	a := &Agent{conf: c}
	port, err := strconv.Atoi(c.Port)
	if err != nil {
		return a, err
	}
	a.dial = gomail.NewDialer(c.Host, port, c.Username, c.Password)

	tmpl, err := template.ParseFiles(c.Template)
	if err != nil {
		return a, errors.Wrap(errParseTemplate, err)
	}
	a.tmpl = tmpl

	return a, nil
}

// Send renders the template and mails it to the recipients.
func (a *Agent) Send(to []string, from, subject, header, content, footer string) error {
	if a.tmpl == nil {
		return errMissingTemplate
	}

	buff := new(bytes.Buffer)
	e := email{
		To:      to,
		From:    from,
		Subject: subject,
		Header:  header,
		Content: content,
		Footer:  footer,
	}
	if from == "" {
		addr := mail.Address{Name: a.conf.FromName, Address: a.conf.FromAddress}
		e.From = addr.String()
	}
	if err := a.tmpl.Execute(buff, e); err != nil {
		return errors.Wrap(errExecTemplate, err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", e.From)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", buff.String())

	if err := a.dial.DialAndSend(m); err != nil {
		return errors.Wrap(errSendMail, err)
	}

	return nil
}
