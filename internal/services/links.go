package services

import (
	"net/url"
	"strings"
)

// Links builds the absolute URLs placed in emails
type Links struct {
	Origin string
}

func NewLinks(origin string) Links {
	return Links{Origin: strings.TrimRight(origin, "/")}
}

func (l Links) VerifyEmail(token string) string {
	return l.Origin + "/verify-email?token=" + url.QueryEscape(token)
}

func (l Links) ResetPassword(token string) string {
	return l.Origin + "/reset-password?token=" + url.QueryEscape(token)
}
