package form

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-formbind/pkg/rules"
)

// Change describes a state mutation delivered to subscribers after it has
// been fully applied.
type Change struct {
	Field string
	Value string
	// Valid is the form validity after the change.
	Valid bool
	// Reset is set when the change was produced by Reset; Field is empty.
	Reset bool
}

// SubmitFunc receives the form snapshot when a submission passes validation.
type SubmitFunc func(values Snapshot) error

// Option configures a Form at construction time.
type Option func(*Form)

// WithDefault declares a field and its default value. Declaration order is
// preserved in snapshots.
func WithDefault(name, value string) Option {
	return func(f *Form) {
		f.declare(name, value)
	}
}

// WithDefaults declares several fields at once, in sorted key order. Use
// WithDefault when the order matters.
func WithDefaults(values map[string]string) Option {
	return func(f *Form) {
		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			f.declare(key, values[key])
		}
	}
}

// WithMode selects when surfaced results refresh before the first submit.
func WithMode(mode Mode) Option {
	return func(f *Form) {
		if mode != "" {
			f.mode = mode
		}
	}
}

// WithReValidateMode selects when surfaced results refresh after a submit
// attempt.
func WithReValidateMode(mode Mode) Option {
	return func(f *Form) {
		if mode != "" {
			f.reValidateMode = mode
		}
	}
}

// WithLogger routes debug records through logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithID overrides the generated form instance id.
func WithID(id string) Option {
	return func(f *Form) {
		if trimmed := strings.TrimSpace(id); trimmed != "" {
			f.id = trimmed
		}
	}
}

// Form owns the field values, rule sets and validation state of one screen.
// Field binders hold a pointer to the Form and read through it, so every read
// observes the latest write.
type Form struct {
	mu sync.RWMutex

	id             string
	mode           Mode
	reValidateMode Mode
	logger         *slog.Logger

	order      []string
	defaults   map[string]string
	values     map[string]string
	sets       map[string]rules.Set
	dependents map[string][]string
	results    map[string]rules.Result
	touched    map[string]bool
	dirty      map[string]bool

	valid       bool
	submitCount int

	listeners    map[int]func(Change)
	nextListener int
}

// New builds a Form seeded with the declared defaults.
func New(options ...Option) *Form {
	f := &Form{
		mode:           ModeOnChange,
		reValidateMode: ModeOnChange,
		logger:         slog.New(slog.DiscardHandler),
		defaults:       make(map[string]string),
		values:         make(map[string]string),
		sets:           make(map[string]rules.Set),
		dependents:     make(map[string][]string),
		results:        make(map[string]rules.Result),
		touched:        make(map[string]bool),
		dirty:          make(map[string]bool),
		listeners:      make(map[int]func(Change)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.id == "" {
		f.id = uuid.NewString()
	}
	f.valid = f.computeValidLocked()
	return f
}

// ID returns the form instance id.
func (f *Form) ID() string {
	return f.id
}

// Mode returns the configured validation mode.
func (f *Form) Mode() Mode {
	return f.mode
}

// Names lists the declared fields in declaration order.
func (f *Form) Names() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.order...)
}

// Has reports whether name is a declared field.
func (f *Form) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.values[name]
	return ok
}

// Register declares the rule set for name, declaring the field with an empty
// default if needed. Rule sets are immutable once declared.
func (f *Form) Register(name string, declared ...rules.Rule) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrFieldNameRequired
	}

	f.mu.Lock()
	err := f.registerLocked(name, declared)
	f.mu.Unlock()
	if err != nil {
		return err
	}

	f.logger.Debug("form: rules declared", "form_id", f.id, "field", name, "rules", len(declared))
	return nil
}

func (f *Form) registerLocked(name string, declared []rules.Rule) error {
	if _, exists := f.sets[name]; exists {
		return fmt.Errorf("%w: %s", ErrRulesDeclared, name)
	}
	set, err := rules.NewSet(name, declared...)
	if err != nil {
		return fmt.Errorf("form: register %s: %w", name, err)
	}
	f.declare(name, "")
	f.sets[name] = set
	for _, dep := range set.DependsOn() {
		f.dependents[dep] = append(f.dependents[dep], name)
	}
	f.valid = f.computeValidLocked()
	return nil
}

// Value returns the current value of name, or "" for unknown fields.
func (f *Form) Value(name string) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values[name]
}

// Watch returns the current value of name. It exists for parity with
// reactive form APIs; use WatchFunc to be notified of changes.
func (f *Form) Watch(name string) string {
	return f.Value(name)
}

// WatchFunc calls fn with the new value every time name changes or the form
// is reset. The returned function cancels the subscription.
func (f *Form) WatchFunc(name string, fn func(value string)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	return f.Subscribe(func(change Change) {
		if change.Reset {
			fn(f.Value(name))
			return
		}
		if change.Field == name {
			fn(change.Value)
		}
	})
}

// Subscribe registers fn for every applied change.
func (f *Form) Subscribe(fn func(Change)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	f.mu.Lock()
	id := f.nextListener
	f.nextListener++
	f.listeners[id] = fn
	f.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.listeners, id)
			f.mu.Unlock()
		})
	}
}

// SetOption adjusts a single SetValue call.
type SetOption func(*setConfig)

type setConfig struct {
	validate bool
	touch    bool
	dirty    bool
}

// ShouldValidate forces validation of the field (and its dependents) even when
// the mode would not validate on change.
func ShouldValidate() SetOption {
	return func(cfg *setConfig) { cfg.validate = true }
}

// ShouldTouch marks the field as touched.
func ShouldTouch() SetOption {
	return func(cfg *setConfig) { cfg.touch = true }
}

// ShouldDirty recomputes the dirty flag against the field default.
func ShouldDirty() SetOption {
	return func(cfg *setConfig) { cfg.dirty = true }
}

// SetValue writes value into the form state. Without ShouldValidate the
// surfaced result is left as is; form validity is always recomputed.
func (f *Form) SetValue(name, value string, options ...SetOption) error {
	var cfg setConfig
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	f.mu.Lock()
	if _, ok := f.values[name]; !ok {
		f.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	f.values[name] = value
	if cfg.touch {
		f.touched[name] = true
	}
	if cfg.dirty {
		f.markDirtyLocked(name)
	}
	if cfg.validate {
		f.validateWithDependentsLocked(name)
	}
	f.valid = f.computeValidLocked()
	change := Change{Field: name, Value: value, Valid: f.valid}
	listeners := f.listenersLocked()
	f.mu.Unlock()

	f.logger.Debug("form: value set", "form_id", f.id, "field", name, "validate", cfg.validate, "valid", change.Valid)
	dispatch(listeners, change)
	return nil
}

// change is the default binder write path: write, mark dirty, then validate
// according to the active mode.
func (f *Form) change(name, value string) error {
	f.mu.Lock()
	if _, ok := f.values[name]; !ok {
		f.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	f.values[name] = value
	f.markDirtyLocked(name)
	validated := false
	if f.activeModeLocked().validatesOn(triggerChange, f.touched[name]) {
		f.validateWithDependentsLocked(name)
		validated = true
	}
	f.valid = f.computeValidLocked()
	change := Change{Field: name, Value: value, Valid: f.valid}
	listeners := f.listenersLocked()
	f.mu.Unlock()

	f.logger.Debug("form: value changed", "form_id", f.id, "field", name, "validated", validated, "valid", change.Valid)
	dispatch(listeners, change)
	return nil
}

func (f *Form) blur(name string) error {
	f.mu.Lock()
	if _, ok := f.values[name]; !ok {
		f.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	f.touched[name] = true
	if f.activeModeLocked().validatesOn(triggerBlur, true) {
		f.validateLocked(name)
	}
	change := Change{Field: name, Value: f.values[name], Valid: f.valid}
	listeners := f.listenersLocked()
	f.mu.Unlock()

	f.logger.Debug("form: field blurred", "form_id", f.id, "field", name)
	dispatch(listeners, change)
	return nil
}

// Trigger validates the named fields, or every field when none are given, and
// surfaces the results regardless of mode. It reports whether all of them are
// valid.
func (f *Form) Trigger(names ...string) bool {
	f.mu.Lock()
	if len(names) == 0 {
		names = append([]string(nil), f.order...)
	}
	ok := true
	for _, name := range names {
		if !f.validateLocked(name).Valid {
			ok = false
		}
	}
	f.valid = f.computeValidLocked()
	f.mu.Unlock()
	return ok
}

// Result returns the surfaced validation result of name.
func (f *Form) Result(name string) rules.Result {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if res, ok := f.results[name]; ok {
		return res
	}
	return rules.Valid(name)
}

// Error returns the surfaced message of name, or "" when valid.
func (f *Form) Error(name string) string {
	return f.Result(name).Message
}

// Errors returns the surfaced failing results keyed by field name.
func (f *Form) Errors() map[string]rules.Result {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]rules.Result)
	for name, res := range f.results {
		if !res.Valid {
			out[name] = res
		}
	}
	return out
}

// IsValid reports whether every rule set passes against the current values.
func (f *Form) IsValid() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.valid
}

// IsTouched reports whether name has been blurred.
func (f *Form) IsTouched(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.touched[name]
}

// IsDirty reports whether name differs from its default.
func (f *Form) IsDirty(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dirty[name]
}

// SubmitCount reports how many times Submit ran since the last reset.
func (f *Form) SubmitCount() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.submitCount
}

// Values returns a snapshot of the current state.
func (f *Form) Values() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return NewSnapshot(f.order, f.values)
}

// Defaults returns a snapshot of the declared defaults.
func (f *Form) Defaults() Snapshot {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return NewSnapshot(f.order, f.defaults)
}

// Reset restores every field to its default and clears surfaced results,
// touched and dirty flags and the submit count.
func (f *Form) Reset() {
	f.mu.Lock()
	for _, name := range f.order {
		f.values[name] = f.defaults[name]
	}
	f.results = make(map[string]rules.Result)
	f.touched = make(map[string]bool)
	f.dirty = make(map[string]bool)
	f.submitCount = 0
	f.valid = f.computeValidLocked()
	change := Change{Reset: true, Valid: f.valid}
	listeners := f.listenersLocked()
	f.mu.Unlock()

	f.logger.Debug("form: reset", "form_id", f.id, "valid", change.Valid)
	dispatch(listeners, change)
}

// Submit validates every field and, when the form is valid, calls onValid
// with a snapshot of the state. It reports whether onValid ran; an invalid
// form is not an error.
func (f *Form) Submit(onValid SubmitFunc) (bool, error) {
	f.mu.Lock()
	f.submitCount++
	for _, name := range f.order {
		f.validateLocked(name)
	}
	f.valid = f.computeValidLocked()
	valid := f.valid
	snapshot := NewSnapshot(f.order, f.values)
	listeners := f.listenersLocked()
	f.mu.Unlock()

	dispatch(listeners, Change{Valid: valid})

	if !valid {
		f.logger.Debug("form: submit blocked", "form_id", f.id, "errors", len(f.Errors()))
		return false, nil
	}
	f.logger.Debug("form: submit", "form_id", f.id)
	if onValid == nil {
		return true, nil
	}
	if err := onValid(snapshot); err != nil {
		return true, fmt.Errorf("form: submit: %w", err)
	}
	return true, nil
}

func (f *Form) declare(name, value string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if _, exists := f.values[name]; exists {
		return
	}
	f.order = append(f.order, name)
	f.defaults[name] = value
	f.values[name] = value
}

func (f *Form) activeModeLocked() Mode {
	if f.submitCount > 0 {
		return f.reValidateMode
	}
	return f.mode
}

func (f *Form) markDirtyLocked(name string) {
	if f.values[name] != f.defaults[name] {
		f.dirty[name] = true
		return
	}
	delete(f.dirty, name)
}

func (f *Form) validateWithDependentsLocked(name string) {
	f.validateLocked(name)
	for _, dependent := range f.dependents[name] {
		f.validateLocked(dependent)
	}
}

func (f *Form) validateLocked(name string) rules.Result {
	set, ok := f.sets[name]
	if !ok {
		res := rules.Valid(name)
		delete(f.results, name)
		return res
	}
	res := set.Evaluate(f.values[name], f.lookupLocked)
	if res.Valid {
		delete(f.results, name)
	} else {
		f.results[name] = res
	}
	return res
}

func (f *Form) computeValidLocked() bool {
	for name, set := range f.sets {
		if !set.Evaluate(f.values[name], f.lookupLocked).Valid {
			return false
		}
	}
	return true
}

func (f *Form) lookupLocked(name string) string {
	return f.values[name]
}

func (f *Form) listenersLocked() []func(Change) {
	if len(f.listeners) == 0 {
		return nil
	}
	ids := make([]int, 0, len(f.listeners))
	for id := range f.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(Change), 0, len(ids))
	for _, id := range ids {
		out = append(out, f.listeners[id])
	}
	return out
}

func dispatch(listeners []func(Change), change Change) {
	for _, fn := range listeners {
		fn(change)
	}
}
