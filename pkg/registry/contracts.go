package registry

import (
	"io"

	"github.com/goliatone/go-snowform/pkg/model"
)

// Props carries everything a component needs to render a single control.
type Props struct {
	Name        string              `json:"name"`
	ID          string              `json:"id"`
	Type        string              `json:"type"`
	Value       any                 `json:"value,omitempty"`
	Placeholder string              `json:"placeholder,omitempty"`
	Disabled    bool                `json:"disabled,omitempty"`
	Required    bool                `json:"required,omitempty"`
	Invalid     bool                `json:"invalid,omitempty"`
	Autofocus   bool                `json:"autofocus,omitempty"`
	Options     []model.FieldOption `json:"options,omitempty"`
	Attrs       map[string]string   `json:"attrs,omitempty"`
	DescribedBy string              `json:"describedBy,omitempty"`
}

// Component renders the control for one field.
type Component func(w io.Writer, props Props) error

// LabelProps describes a field label.
type LabelProps struct {
	For      string `json:"for"`
	Text     string `json:"text"`
	Required bool   `json:"required,omitempty"`
	Invalid  bool   `json:"invalid,omitempty"`
}

// DescriptionProps describes the help text rendered under a control. HTML is
// set when the text was supplied as sanitized markup.
type DescriptionProps struct {
	ID   string `json:"id"`
	Text string `json:"text"`
	HTML bool   `json:"html,omitempty"`
}

// ErrorMessageProps describes a field error message.
type ErrorMessageProps struct {
	ID      string `json:"id"`
	Message string `json:"message"`
}

type (
	LabelRenderer        func(w io.Writer, props LabelProps) error
	DescriptionRenderer  func(w io.Writer, props DescriptionProps) error
	ErrorMessageRenderer func(w io.Writer, props ErrorMessageProps) error
)

// FormUI groups the chrome rendered around every control. Nil slots are
// unset.
type FormUI struct {
	Label        LabelRenderer
	Description  DescriptionRenderer
	ErrorMessage ErrorMessageRenderer
}

// Merge returns ui with every nil slot filled from fallback.
func (ui FormUI) Merge(fallback FormUI) FormUI {
	if ui.Label == nil {
		ui.Label = fallback.Label
	}
	if ui.Description == nil {
		ui.Description = fallback.Description
	}
	if ui.ErrorMessage == nil {
		ui.ErrorMessage = fallback.ErrorMessage
	}
	return ui
}

// SubmitButtonProps describes the submit control.
type SubmitButtonProps struct {
	Label    string `json:"label"`
	Loading  bool   `json:"loading,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
	Class    string `json:"class,omitempty"`
}

// SubmitButton renders the submit control.
type SubmitButton func(w io.Writer, props SubmitButtonProps) error

// TranslationFunc localizes a key.
type TranslationFunc func(key string) string
