package resolve

import (
	"github.com/goliatone/go-snowform/pkg/model"
	"github.com/goliatone/go-snowform/pkg/registry"
)

// FieldOverride customises a single field. Zero values leave the lower
// layers in charge.
type FieldOverride struct {
	Label           string              `json:"label,omitempty" yaml:"label,omitempty"`
	Description     string              `json:"description,omitempty" yaml:"description,omitempty"`
	DescriptionHTML string              `json:"descriptionHtml,omitempty" yaml:"descriptionHtml,omitempty"`
	Placeholder     string              `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Type            string              `json:"type,omitempty" yaml:"type,omitempty"`
	Options         []model.FieldOption `json:"options,omitempty" yaml:"options,omitempty"`
	Render          registry.Component  `json:"-" yaml:"-"`
	Disabled        bool                `json:"disabled,omitempty" yaml:"disabled,omitempty"`
	Hidden          bool                `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	Attrs           map[string]string   `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Messages        map[string]string   `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// Overrides maps field names to overrides.
type Overrides map[string]FieldOverride

// Merge returns o with unset attributes taken from base. Maps merge key by
// key with o winning.
func (o FieldOverride) Merge(base FieldOverride) FieldOverride {
	out := base
	if o.Label != "" {
		out.Label = o.Label
	}
	if o.Description != "" {
		out.Description = o.Description
	}
	if o.DescriptionHTML != "" {
		out.DescriptionHTML = o.DescriptionHTML
	}
	if o.Placeholder != "" {
		out.Placeholder = o.Placeholder
	}
	if o.Type != "" {
		out.Type = o.Type
	}
	if len(o.Options) > 0 {
		out.Options = o.Options
	}
	if o.Render != nil {
		out.Render = o.Render
	}
	out.Disabled = o.Disabled || base.Disabled
	out.Hidden = o.Hidden || base.Hidden
	out.Attrs = mergeStrings(base.Attrs, o.Attrs)
	out.Messages = mergeStrings(base.Messages, o.Messages)
	return out
}

// Merge combines two override sets, o winning per field attribute.
func (o Overrides) Merge(base Overrides) Overrides {
	if len(o) == 0 && len(base) == 0 {
		return nil
	}
	out := make(Overrides, len(base)+len(o))
	for name, override := range base {
		out[name] = override
	}
	for name, override := range o {
		out[name] = override.Merge(out[name])
	}
	return out
}

// Lookup returns the override for name, if any.
func (o Overrides) Lookup(name string) (*FieldOverride, bool) {
	override, ok := o[name]
	if !ok {
		return nil, false
	}
	return &override, true
}

func mergeStrings(base, top map[string]string) map[string]string {
	if len(base) == 0 && len(top) == 0 {
		return nil
	}
	out := make(map[string]string, len(base)+len(top))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range top {
		out[key] = value
	}
	return out
}
