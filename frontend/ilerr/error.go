package ilerr

import (
	"fmt"
	"log/slog"

	"github.com/cottand/ileinfer/util"
)

// Errors is an ordered list of diagnostics. A nil *Errors is empty.
type Errors struct {
	errs []IleError
}

func (r *Errors) With(err ...IleError) *Errors {
	if r == nil {
		return &Errors{errs: err}
	}
	r.errs = append(r.errs, err...)
	return r
}

func (r *Errors) Merge(err *Errors) *Errors {
	if r == nil {
		return err
	}
	if err == nil {
		return r
	}
	if len(err.errs) == 0 {
		return r
	}
	return r.With(err.errs...)
}

func (r *Errors) Errors() []IleError {
	if r == nil {
		return nil
	}
	return r.errs
}

func (r *Errors) Len() int {
	if r == nil {
		return 0
	}
	return len(r.errs)
}

func (r *Errors) HasError() bool {
	if r == nil {
		return false
	}
	return len(r.errs) > 0
}

// Codes returns the ErrCode of every error, in order
func (r *Errors) Codes() []ErrCode {
	codes := make([]ErrCode, 0, r.Len())
	for _, err := range r.Errors() {
		codes = append(codes, err.Code())
	}
	return codes
}

// Err returns nil when there are no errors, and otherwise
// a single error listing all of them
func (r *Errors) Err() error {
	if !r.HasError() {
		return nil
	}
	return fmt.Errorf("%d errors found:\n%s", r.Len(), util.JoinErrorsWith("\t", r.errs, "\n"))
}

func (r *Errors) LogValue() slog.Value {
	var vals []slog.Attr
	for i, v := range r.Errors() {
		vals = append(vals, slog.Attr{
			Key: fmt.Sprint("e", i),
			Value: slog.GroupValue(
				slog.Attr{
					Key:   "msg",
					Value: slog.StringValue(FormatWithCode(v)),
				},
			),
		})
	}
	return slog.GroupValue(vals...)
}
