package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Keys every delivery needs. Loading does not enforce them; see Require.
const (
	KeyEmailSubject   = "email_subject"
	KeyEmailSender    = "email_sender"
	KeyEmailRecipient = "email_recipient"
	KeySMTPServer     = "smtp_server"
	KeySMTPPort       = "smtp_port"
	KeySMTPUsername   = "smtp_username"
	KeySMTPPassword   = "smtp_password"
)

// AllKeys lists the configuration keys in file order.
var AllKeys = []string{
	KeyEmailSubject,
	KeyEmailSender,
	KeyEmailRecipient,
	KeySMTPServer,
	KeySMTPPort,
	KeySMTPUsername,
	KeySMTPPassword,
}

type AppConfig struct {
	EmailSubject   string
	EmailSender    string
	EmailRecipient []string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPass       string

	present  map[string]bool
	badValue map[string]error
	shapeErr error
}

// ParseError reports a configuration file that is not valid JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DefaultPath returns ~/.config/os-age-report/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "os-age-report", "config.json"), nil
}

// Load reads the JSON configuration at path. A missing file yields an error
// matching fs.ErrNotExist, a syntax error a *ParseError. Values of the wrong
// type are not load errors; Require reports them.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("configuration file not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}

	cfg := &AppConfig{
		present:  make(map[string]bool),
		badValue: make(map[string]error),
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		cfg.shapeErr = fmt.Errorf("configuration is not a JSON object")
		return cfg, nil
	}
	for k, v := range raw {
		if string(v) == "null" {
			continue
		}
		cfg.present[k] = true
		if err := cfg.decodeKey(k, v); err != nil {
			cfg.badValue[k] = err
		}
	}
	return cfg, nil
}

func (c *AppConfig) decodeKey(key string, v json.RawMessage) error {
	switch key {
	case KeyEmailSubject:
		return json.Unmarshal(v, &c.EmailSubject)
	case KeyEmailSender:
		return json.Unmarshal(v, &c.EmailSender)
	case KeyEmailRecipient:
		return json.Unmarshal(v, &c.EmailRecipient)
	case KeySMTPServer:
		return json.Unmarshal(v, &c.SMTPHost)
	case KeySMTPPort:
		return decodePort(v, &c.SMTPPort)
	case KeySMTPUsername:
		return json.Unmarshal(v, &c.SMTPUser)
	case KeySMTPPassword:
		return json.Unmarshal(v, &c.SMTPPass)
	}
	return nil
}

// decodePort accepts a JSON integer or a string holding one.
func decodePort(v json.RawMessage, port *int) error {
	if err := json.Unmarshal(v, port); err == nil {
		return nil
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return fmt.Errorf("not a port number: %s", v)
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a port number: %q", s)
	}
	*port = n
	return nil
}

// Require returns an error naming every key among keys that the file did not
// set or set to a value of the wrong type.
func (c *AppConfig) Require(keys ...string) error {
	if c.shapeErr != nil {
		return c.shapeErr
	}
	var missing, invalid []string
	for _, k := range keys {
		switch {
		case !c.present[k]:
			missing = append(missing, k)
		case c.badValue[k] != nil:
			invalid = append(invalid, fmt.Sprintf("%s (%v)", k, c.badValue[k]))
		}
	}
	sort.Strings(missing)
	sort.Strings(invalid)

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "missing configuration key(s): "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		problems = append(problems, "invalid configuration value(s): "+strings.Join(invalid, ", "))
	}
	if len(problems) == 0 {
		return nil
	}
	return errors.New(strings.Join(problems, "; "))
}
