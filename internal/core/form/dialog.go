// Package form implements the create/edit modal: local form state, required
// field checks, one submit request, and a refresh callback on success.
package form

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"coop-console/internal/core/domain"
)

// Mode distinguishes create from edit
type Mode int

const (
	Create Mode = iota
	Edit
)

// Status is the dialog's submit state
type Status int

const (
	Idle Status = iota
	Submitting
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Succeeded:
		return "success"
	case Failed:
		return "error"
	}
	return "unknown"
}

// File is an upload attached to the form
type File struct {
	Field   string
	Name    string
	Content io.Reader
}

// Submission is what the submitter sends
type Submission struct {
	Mode    Mode
	ID      string
	Payload map[string]any
	File    *File
}

// Submitter performs the request for a submission
type Submitter func(ctx context.Context, sub Submission) error

// Config describes one dialog
type Config struct {
	// Label names the record in messages ("loan")
	Label string
	// Action names the operation in failure messages; defaults to "save"
	Action   string
	Required []string
	Numeric  []string
	// Labels maps field keys to display names for validation messages
	Labels  map[string]string
	Submit  Submitter
	OnSaved func(ctx context.Context)
}

// ValidationError lists the empty required fields, or the fields that are
// not numbers
type ValidationError struct {
	Missing    []string
	NotNumeric []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "Please fill in the required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.NotNumeric) > 0 {
		parts = append(parts, "Please enter a number for: "+strings.Join(e.NotNumeric, ", "))
	}
	return strings.Join(parts, ". ")
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrValidation
}

// Dialog is the state of one modal
type Dialog struct {
	cfg     Config
	numeric map[string]bool

	mu     sync.Mutex
	open   bool
	mode   Mode
	id     string
	values map[string]string
	file   *File
	status Status
	errMsg string
}

// New creates a closed dialog
func New(cfg Config) *Dialog {
	if cfg.Action == "" {
		cfg.Action = "save"
	}
	numeric := make(map[string]bool, len(cfg.Numeric))
	for _, f := range cfg.Numeric {
		numeric[f] = true
	}
	return &Dialog{cfg: cfg, numeric: numeric, values: map[string]string{}}
}

// OpenCreate opens the dialog with empty values
func (d *Dialog) OpenCreate() {
	d.reset(Create, "", nil)
}

// OpenEdit opens the dialog on an existing record
func (d *Dialog) OpenEdit(id string, values map[string]string) {
	d.reset(Edit, id, values)
}

func (d *Dialog) reset(mode Mode, id string, values map[string]string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.open = true
	d.mode = mode
	d.id = id
	d.values = make(map[string]string, len(values))
	for k, v := range values {
		d.values[k] = v
	}
	d.file = nil
	d.status = Idle
	d.errMsg = ""
}

// Close hides the dialog and discards its state
func (d *Dialog) Close() {
	d.mu.Lock()
	d.open = false
	d.mu.Unlock()
}

// IsOpen reports whether the dialog is shown
func (d *Dialog) IsOpen() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.open
}

// Set updates one field
func (d *Dialog) Set(field, value string) {
	d.mu.Lock()
	d.values[field] = value
	d.mu.Unlock()
}

// SetAll updates several fields
func (d *Dialog) SetAll(values map[string]string) {
	d.mu.Lock()
	for k, v := range values {
		d.values[k] = v
	}
	d.mu.Unlock()
}

// Attach sets the file upload; nil removes it
func (d *Dialog) Attach(f *File) {
	d.mu.Lock()
	d.file = f
	d.mu.Unlock()
}

// Values returns a copy of the form values
func (d *Dialog) Values() map[string]string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[string]string, len(d.values))
	for k, v := range d.values {
		out[k] = v
	}
	return out
}

// Mode is create or edit
func (d *Dialog) Mode() Mode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// Status is the submit state
func (d *Dialog) Status() Status {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.status
}

// Error is the inline message shown in the modal
func (d *Dialog) Error() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.errMsg
}

// Validate checks required and numeric fields
func (d *Dialog) Validate() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, err := d.payloadLocked()
	return err
}

// Payload converts the values into a request body
func (d *Dialog) Payload() (map[string]any, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.payloadLocked()
}

func (d *Dialog) label(field string) string {
	if l, ok := d.cfg.Labels[field]; ok {
		return l
	}
	return field
}

func (d *Dialog) payloadLocked() (map[string]any, error) {
	verr := &ValidationError{}
	for _, f := range d.cfg.Required {
		if strings.TrimSpace(d.values[f]) == "" {
			verr.Missing = append(verr.Missing, d.label(f))
		}
	}

	payload := make(map[string]any, len(d.values))
	for k, v := range d.values {
		v = strings.TrimSpace(v)
		if v == "" {
			// an edit clears the field; a create leaves it out
			if d.mode == Edit {
				if d.numeric[k] {
					payload[k] = nil
				} else {
					payload[k] = ""
				}
			}
			continue
		}
		if d.numeric[k] {
			n, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
			if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
				verr.NotNumeric = append(verr.NotNumeric, d.label(k))
				continue
			}
			payload[k] = n
			continue
		}
		payload[k] = v
	}

	if len(verr.Missing) > 0 || len(verr.NotNumeric) > 0 {
		sortByConfig(verr.NotNumeric, d.cfg.Numeric, d.label)
		return nil, verr
	}
	return payload, nil
}

// sortByConfig orders labels the way their fields were declared, so the
// message does not depend on map iteration
func sortByConfig(labels, order []string, label func(string) string) {
	pos := make(map[string]int, len(order))
	for i, f := range order {
		pos[label(f)] = i
	}
	for i := 1; i < len(labels); i++ {
		for j := i; j > 0 && pos[labels[j]] < pos[labels[j-1]]; j-- {
			labels[j], labels[j-1] = labels[j-1], labels[j]
		}
	}
}

// Submit validates, sends one request and, on success, closes the dialog and
// calls OnSaved once. On failure the dialog stays open with an inline message.
func (d *Dialog) Submit(ctx context.Context) error {
	d.mu.Lock()
	if !d.open {
		d.mu.Unlock()
		return domain.ErrClosed
	}
	if d.status == Submitting {
		d.mu.Unlock()
		return domain.ErrBusy
	}

	payload, err := d.payloadLocked()
	if err != nil {
		d.status = Failed
		d.errMsg = err.Error()
		d.mu.Unlock()
		return err
	}

	d.status = Submitting
	d.errMsg = ""
	sub := Submission{Mode: d.mode, ID: d.id, Payload: payload, File: d.file}
	d.mu.Unlock()

	err = d.cfg.Submit(ctx, sub)

	d.mu.Lock()
	if err != nil {
		d.status = Failed
		d.errMsg = failureMessage(d.cfg.Action, d.cfg.Label, err)
		d.mu.Unlock()
		return fmt.Errorf("%s %s: %w", d.cfg.Action, d.cfg.Label, err)
	}
	d.status = Succeeded
	d.open = false
	onSaved := d.cfg.OnSaved
	d.mu.Unlock()

	if onSaved != nil {
		onSaved(ctx)
	}
	return nil
}

func failureMessage(action, label string, err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Error()
	}
	if msg := domain.ServerMessage(err); msg != "" {
		return msg
	}
	return "Failed to " + action + " " + label
}
