// Package scenario drives the class core from a small line-oriented command
// language. A Session stands in for a language front end: it turns class
// literals, method definitions and super expressions into calls against
// classes.Core.
package scenario

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/example/jsclass/access"
	"github.com/example/jsclass/classes"
	"github.com/example/jsclass/runtime"
)

// Config configures a Session.
type Config struct {
	Realm  runtime.RealmConfig
	Logger *slog.Logger
}

// Session holds the bindings created by earlier commands.
type Session struct {
	realm  *runtime.Realm
	core   *classes.Core
	policy *access.Policy
	quiet  map[*runtime.Object]bool
	env    *runtime.Environment
	log    *slog.Logger
}

func NewSession(cfg Config) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Session{
		realm:  runtime.NewRealmWithConfig(cfg.Realm),
		policy: access.NewPolicy(),
		quiet:  make(map[*runtime.Object]bool),
		env:    runtime.NewEnvironment(nil),
		log:    logger,
	}
	s.core = classes.New(s.realm, classes.Config{
		Gate:     s.policy,
		Reporter: s.reportDenial,
		Logger:   logger,
	})
	return s
}

func (s *Session) Realm() *runtime.Realm { return s.realm }

func (s *Session) Core() *classes.Core { return s.core }

// Names lists the bound names, sorted.
func (s *Session) Names() []string {
	return s.env.Names()
}

// Lookup reads a binding by name.
func (s *Session) Lookup(name string) (*runtime.Value, error) {
	return s.env.Get(name)
}

// Run executes src line by line and returns the value of the last command.
// It stops at the first failing line.
func (s *Session) Run(src string) (*runtime.Value, error) {
	result := runtime.Undefined
	for i, line := range strings.Split(src, "\n") {
		v, err := s.Exec(line)
		if err != nil {
			return nil, &LineError{Line: i + 1, Err: err}
		}
		if v != nil {
			result = v
		}
	}
	return result, nil
}

// Exec executes a single command. Blank and comment lines yield nil.
func (s *Session) Exec(line string) (*runtime.Value, error) {
	toks, err := tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(toks) == 0 {
		return nil, nil
	}
	cmd, ok := commands[toks[0].text]
	if !ok {
		if len(toks) == 1 {
			return s.ref(toks[0])
		}
		return nil, runtime.NewSyntaxError("unknown_command", runtime.NewString(toks[0].text))
	}
	if len(toks)-1 < cmd.minArgs {
		return nil, runtime.NewSyntaxError("bad_command", runtime.NewString(cmd.usage))
	}
	s.log.Debug("exec", slog.String("command", toks[0].text), slog.Int("args", len(toks)-1))
	return cmd.run(s, toks[1:])
}

// LineError locates a failure inside a multi-line script.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// FormatError renders err the way an uncaught exception is reported.
func (s *Session) FormatError(err error) string {
	var lineErr *LineError
	prefix := ""
	if errors.As(err, &lineErr) {
		prefix = fmt.Sprintf("line %d: ", lineErr.Line)
		err = lineErr.Err
	}
	if runtime.KindOf(err) == runtime.ThrownValue {
		return prefix + "Uncaught " + runtime.Inspect(s.realm.ErrorValue(err))
	}
	return prefix + "Uncaught " + s.realm.ErrorValue(err).ToString()
}

func (s *Session) reportDenial(obj *runtime.Object, key runtime.PropertyKey, mode access.Mode, d access.Decision) error {
	if s.quiet[obj] {
		return nil
	}
	return access.ReportAsError(obj, key, mode, d)
}

func (s *Session) declare(name, kind string, v *runtime.Value) error {
	if !isIdentifier(name) {
		return runtime.NewSyntaxError("bad_literal", runtime.NewString(name))
	}
	return s.env.Declare(name, kind, v)
}
