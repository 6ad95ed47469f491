package git

import (
	"strings"

	"git.home.luguber.info/inful/pagesmith/internal/foundation/errors"
)

// Reasons attached to classified fetch errors under the "reason" key.
const (
	ReasonAuth     = "auth"
	ReasonNotFound = "not_found"
	ReasonNetwork  = "network"
	ReasonProtocol = "protocol"
	ReasonRef      = "ref"
)

// ClassifyError wraps a go-git failure as a template_source error. The
// reason context key narrows it down where the message allows.
func ClassifyError(err error, op, url string) error {
	if err == nil {
		return nil
	}
	if _, ok := errors.AsClassified(err); ok {
		return err
	}

	builder := errors.TemplateSourceError("template repository "+op+" failed").
		WithCause(err).
		WithContext("op", op).
		WithContext("url", url)

	l := strings.ToLower(err.Error())
	switch {
	case strings.Contains(l, "authentication") || strings.Contains(l, "not authorized") || strings.Contains(l, "invalid credentials"):
		builder.WithContext("reason", ReasonAuth)
	case strings.Contains(l, "reference not found") || strings.Contains(l, "couldn't find remote ref"):
		builder.WithContext("reason", ReasonRef)
	case strings.Contains(l, "repository not found") || strings.Contains(l, "not found") || strings.Contains(l, "does not exist"):
		builder.WithContext("reason", ReasonNotFound)
	case strings.Contains(l, "timeout") || strings.Contains(l, "connection reset") || strings.Contains(l, "no route to host") || strings.Contains(l, "remote hung up"):
		builder.WithContext("reason", ReasonNetwork)
	case strings.Contains(l, "unsupported protocol") || strings.Contains(l, "protocol not supported"):
		builder.WithContext("reason", ReasonProtocol)
	}
	return builder.Build()
}

// IsTransient reports a classified fetch error whose reason is network.
func IsTransient(err error) bool {
	ce, ok := errors.AsClassified(err)
	if !ok {
		return false
	}
	reason, _ := ce.Context().GetString("reason")
	return reason == ReasonNetwork
}
