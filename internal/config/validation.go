package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError describes one invalid field.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors collects every problem found in one pass.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors.
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add appends a validation error.
func (ve *ValidationErrors) Add(field, message string, value interface{}) {
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	})
}

// Validate checks cfg for values the client cannot work with.
func (c Config) Validate() error {
	var errs ValidationErrors

	if strings.TrimSpace(c.Server.BaseURL) == "" {
		errs.Add("server.baseURL", "is required", c.Server.BaseURL)
	} else if u, err := url.Parse(c.Server.BaseURL); err != nil || u.Host == "" ||
		(u.Scheme != "http" && u.Scheme != "https") {
		errs.Add("server.baseURL", "must be an absolute http or https URL", c.Server.BaseURL)
	}
	if c.Server.Timeout < 0 {
		errs.Add("server.timeout", "must not be negative", c.Server.Timeout)
	}

	switch c.Session.Store {
	case StoreFile:
	case StoreRedis:
		if strings.TrimSpace(c.Session.Redis.Addr) == "" {
			errs.Add("session.redis.addr", "is required when session.store is redis", c.Session.Redis.Addr)
		}
		if c.Session.Redis.DB < 0 {
			errs.Add("session.redis.db", "must not be negative", c.Session.Redis.DB)
		}
	default:
		errs.Add("session.store", fmt.Sprintf("must be %q or %q", StoreFile, StoreRedis), c.Session.Store)
	}

	if c.Refresh.Timeout < 0 {
		errs.Add("refresh.timeout", "must not be negative", c.Refresh.Timeout)
	}
	if c.Refresh.ProactiveMargin < 0 {
		errs.Add("refresh.proactiveMargin", "must not be negative", c.Refresh.ProactiveMargin)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		errs.Add("logging.format", `must be "text" or "json"`, c.Logging.Format)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
