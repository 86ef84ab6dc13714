package components

// Built-in component type names. Input-family types share the input partial
// and only differ by the HTML input type they render.
const (
	NameText          = "text"
	NameEmail         = "email"
	NamePassword      = "password"
	NameTime          = "time"
	NameDatetimeLocal = "datetime-local"
	NameTel           = "tel"
	NameURL           = "url"
	NameColor         = "color"
	NameFile          = "file"
	NameTextarea      = "textarea"
	NameSelect        = "select"
	NameCheckbox      = "checkbox"
	NameRadio         = "radio"
	NameNumber        = "number"
	NameDate          = "date"
)

// Partial keys resolved through WithPartials and theme manifests.
const (
	PartialInput       = "forms.input"
	PartialTextarea    = "forms.textarea"
	PartialSelect      = "forms.select"
	PartialCheckbox    = "forms.checkbox"
	PartialRadio       = "forms.radio"
	PartialNumber      = "forms.number"
	PartialDate        = "forms.date"
	PartialLabel       = "forms.label"
	PartialDescription = "forms.description"
	PartialError       = "forms.error"
	PartialSubmit      = "forms.submit"
)

var inputTypes = []string{
	NameText,
	NameEmail,
	NamePassword,
	NameTime,
	NameDatetimeLocal,
	NameTel,
	NameURL,
	NameColor,
	NameFile,
}

// DefaultPartials maps every partial key to its embedded template.
func DefaultPartials() map[string]string {
	return map[string]string{
		PartialInput:       "forms/input.tmpl",
		PartialTextarea:    "forms/textarea.tmpl",
		PartialSelect:      "forms/select.tmpl",
		PartialCheckbox:    "forms/checkbox.tmpl",
		PartialRadio:       "forms/radio.tmpl",
		PartialNumber:      "forms/number.tmpl",
		PartialDate:        "forms/date.tmpl",
		PartialLabel:       "forms/label.tmpl",
		PartialDescription: "forms/description.tmpl",
		PartialError:       "forms/error.tmpl",
		PartialSubmit:      "forms/submit.tmpl",
	}
}
